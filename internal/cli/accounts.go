package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/openai-status/internal/domain/accounts"
	"github.com/bryanwahyu/openai-status/internal/domain/deployments"
)

func newAccountsCmd(opts *options) *cobra.Command {
	var (
		regions []string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the discovered OpenAI accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app()
			if err != nil {
				return err
			}
			set, err := a.directory.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}
			list := set.FilterByRegion(regions).List()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), list)
			}
			return writeAccounts(cmd.OutOrStdout(), list)
		},
	}
	cmd.Flags().StringSliceVar(&regions, "region", nil, "only list accounts in these locations")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newDeploymentsCmd(opts *options) *cobra.Command {
	var (
		family string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "deployments <account>",
		Short: "List the deployments of one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app()
			if err != nil {
				return err
			}
			list, err := a.catalog.ListDeployments(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if family != "" {
				list = deployments.ChatDeployments(list, family)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), list)
			}
			return writeDeployments(cmd.OutOrStdout(), list)
		},
	}
	cmd.Flags().StringVar(&family, "model-family", "", "only chat deployments of this model")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeAccounts(w io.Writer, list []accounts.ServiceAccount) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLOCATION\tKIND\tENDPOINT")
	for _, a := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.Name, a.Location, a.Kind, a.Endpoint)
	}
	return tw.Flush()
}

func writeDeployments(w io.Writer, list []deployments.Deployment) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DEPLOYMENT\tTYPE\tMODEL\tVERSION")
	for _, d := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.ID, d.Capability, d.Model, d.Version)
	}
	return tw.Flush()
}
