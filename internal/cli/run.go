package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRunCmd(opts *options) *cobra.Command {
	var (
		families []string
		regions  []string
		login    bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Probe every matching deployment once and upload the call log",
		Example: `  # Probe the configured model families
  openai-status run

  # Only gpt-4o deployments in two regions
  openai-status run --model-family gpt-4o --region eastus,swedencentral`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app()
			if err != nil {
				return err
			}
			if len(families) == 0 {
				families = a.cfg.Probe.ModelFamilies
			}
			if len(regions) == 0 {
				regions = a.cfg.Probe.Regions
			}

			run := a.prober.RunAll
			if login {
				run = a.prober.RunScheduled
			}
			sum, err := run(cmd.Context(), families, regions)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), sum.String())
			return err
		},
	}
	cmd.Flags().StringSliceVar(&families, "model-family", nil, "model families to probe (default from config)")
	cmd.Flags().StringSliceVar(&regions, "region", nil, "only probe accounts in these locations")
	cmd.Flags().BoolVar(&login, "login", false, "log in with the configured service principal first")
	return cmd
}
