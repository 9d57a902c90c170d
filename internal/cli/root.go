package cli

import (
	"github.com/spf13/cobra"

	"github.com/bryanwahyu/openai-status/internal/config"
)

type options struct {
	cfgFile  string
	logLevel string
	// newApp is replaced in tests
	newApp func(cfgPath, logLevel string) (*app, error)
}

func (o *options) app() (*app, error) {
	path := o.cfgFile
	if path == "" {
		path = config.Path()
	}
	return o.newApp(path, o.logLevel)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{newApp: newApp})
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "openai-status",
		Short: "Health-check probe for Azure OpenAI deployments",
		Long: `Discovers Azure OpenAI accounts and their chat deployments, sends each a
canned chat request, and uploads the per-deployment latency log as CSV.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $CONFIG_PATH or ./config.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	root.AddCommand(
		newServeCmd(opts),
		newRunCmd(opts),
		newAccountsCmd(opts),
		newDeploymentsCmd(opts),
	)
	return root
}

// Execute executes the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
