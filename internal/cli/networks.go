package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"walletd/internal/networks"
)

func newNetworksCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "Inspect the network registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fmt.Errorf("networks requires a subcommand: list|show")
		},
	}

	var asJSON bool
	list := &cobra.Command{
		Use:     "list",
		Short:   "List configured networks",
		Example: "  walletd networks list\n  walletd networks list --json",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := buildRegistry(cmd, opts)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(reg.ListAll())
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tRPC\tTESTNET\tDEFAULT")
			for _, d := range reg.ListAll() {
				def := ""
				if d.ID == reg.DefaultID() {
					def = "*"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", d.ID, d.Name, d.RPCURL, d.IsTestnet, def)
			}
			return tw.Flush()
		},
	}
	list.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	show := &cobra.Command{
		Use:     "show [id]",
		Short:   "Show one network (default network when id is omitted)",
		Example: "  walletd networks show octra-testnet",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := buildRegistry(cmd, opts)
			if err != nil {
				return err
			}
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			d, err := reg.Lookup(id)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(d)
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

func buildRegistry(cmd *cobra.Command, opts *Options) (*networks.Registry, error) {
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return networks.NewRegistry(cfg.DefaultNetwork, cfg.Networks...)
}
