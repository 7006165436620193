package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rushteam/packkit/catalog"
	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/filter"
)

func newCatalogCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage catalog snapshots",
	}
	cmd.AddCommand(newCatalogPushCmd(g), newCatalogShowCmd(g), newBlacklistCmd(g))
	return cmd
}

// defaultBlacklistKey 是黑名单在 Store 中的默认 key。
const defaultBlacklistKey = "packkit:blacklist"

func newCatalogPushCmd(g *globalOptions) *cobra.Command {
	var (
		blacklist    []string
		blacklistKey string
	)
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Validate a catalog and publish it to the store",
		Long: `Validate a catalog (--catalog, or the built-in one) and publish it as a JSON
snapshot under --catalog-key. With --blacklist the item blacklist is published
in the same batch. Requires --redis-addr.

Examples:
  packlist catalog push --catalog items.yaml --redis-addr localhost:6379
  packlist catalog push --blacklist snacks,instant_noodles --redis-addr localhost:6379`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := g.openStore()
			if err != nil {
				return err
			}
			if s == nil {
				return fmt.Errorf("catalog push: --redis-addr is required")
			}
			defer s.Close()

			cat := catalog.Default()
			if g.catalogPath != "" {
				if cat, err = catalog.LoadFile(g.catalogPath); err != nil {
					return err
				}
			}
			var extra map[string][]byte
			if len(blacklist) > 0 {
				data, err := filter.EncodeBlacklist(blacklist)
				if err != nil {
					return err
				}
				extra = map[string][]byte{blacklistKey: data}
			}
			if err := catalog.SaveToStore(cmd.Context(), s, g.catalogKey, cat, extra); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pushed %d items to %s\n", cat.Len(), g.catalogKey)
			if len(blacklist) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "blacklisted %d items under %s\n", len(blacklist), blacklistKey)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&blacklist, "blacklist", nil, "item ids to publish as the blacklist")
	cmd.Flags().StringVar(&blacklistKey, "blacklist-key", defaultBlacklistKey, "store key of the blacklist")
	return cmd
}

func newCatalogShowCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective catalog as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := g.openStore()
			if err != nil {
				return err
			}
			if s != nil {
				defer s.Close()
			}
			cat, err := g.loadCatalog(cmd.Context(), s)
			if core.IsStoreNotFound(err) {
				return fmt.Errorf("no catalog snapshot under %s, run `packlist catalog push` first: %w", g.catalogKey, err)
			}
			if err != nil {
				return err
			}
			data, err := catalog.Marshal(cat)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func newBlacklistCmd(g *globalOptions) *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "blacklist [item-id...]",
		Short: "Replace the item blacklist in the store",
		Long: `Replace the item blacklist stored under --key. Items on the list are dropped
by pipelines that configure a blacklist filter with the same key. Without item ids
the blacklist is removed. Requires --redis-addr.

Examples:
  packlist catalog blacklist instant_noodles snacks --redis-addr localhost:6379`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.openStore()
			if err != nil {
				return err
			}
			if s == nil {
				return fmt.Errorf("catalog blacklist: --redis-addr is required")
			}
			defer s.Close()

			if err := filter.NewStoreAdapter(s).SetBlacklist(cmd.Context(), key, args); err != nil {
				return err
			}
			if len(args) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "cleared blacklist %s\n", key)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "blacklisted %d items under %s\n", len(args), key)
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", defaultBlacklistKey, "store key of the blacklist")
	return cmd
}
