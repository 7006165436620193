package main

import (
	"github.com/spf13/cobra"
)

func newRulesCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect the rule tables",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective rule tables as YAML",
		Long: `Print the rule tables after applying the --rules file and PACKKIT_* environment
overrides on top of the built-in defaults.

Examples:
  PACKKIT_DEFAULTS__CAP=8 packlist rules show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := g.loadRules()
			if err != nil {
				return err
			}
			data, err := r.Dump()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	return cmd
}
