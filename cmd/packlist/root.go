package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rushteam/packkit/catalog"
	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/rules"
	"github.com/rushteam/packkit/store"
)

// globalOptions 是所有子命令共享的数据源参数。
type globalOptions struct {
	logLevel    string
	catalogPath string
	rulesPath   string
	redisAddr   string
	redisDB     int
	catalogKey  string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "packlist",
		Short: "Generate trip packing lists",
		Long: `packlist - packing-list recommendations for a trip
  - scores every catalog item against the trip (weather, activities, trip type)
  - filters, caps and orders the survivors
  - prints the list grouped by category`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	pf.StringVar(&opts.catalogPath, "catalog", "", "catalog file (.yaml/.json); built-in catalog when empty")
	pf.StringVar(&opts.rulesPath, "rules", "", "rules override file (.yaml)")
	pf.StringVar(&opts.redisAddr, "redis-addr", "", "redis address for catalog snapshots and blacklists")
	pf.IntVar(&opts.redisDB, "redis-db", 0, "redis database")
	pf.StringVar(&opts.catalogKey, "catalog-key", catalog.DefaultStoreKey, "store key of the catalog snapshot")

	root.AddCommand(newRecommendCmd(opts))
	root.AddCommand(newCatalogCmd(opts))
	root.AddCommand(newRulesCmd(opts))
	return root
}

func (o *globalOptions) logger() zerolog.Logger {
	level, err := zerolog.ParseLevel(o.logLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// openStore 在配置了 --redis-addr 时连接 Redis，否则返回 nil。
func (o *globalOptions) openStore() (core.Store, error) {
	if o.redisAddr == "" {
		return nil, nil
	}
	s, err := store.NewRedisStore(o.redisAddr, o.redisDB)
	if err != nil {
		if core.IsUnavailable(err) {
			return nil, fmt.Errorf("check --redis-addr %s: %w", o.redisAddr, err)
		}
		return nil, err
	}
	return s, nil
}

// loadCatalog 按优先级选择目录来源：--catalog 文件 > Store 快照 > 内置目录。
func (o *globalOptions) loadCatalog(ctx context.Context, s core.Store) (*catalog.Catalog, error) {
	switch {
	case o.catalogPath != "":
		return catalog.LoadFile(o.catalogPath)
	case s != nil:
		return catalog.LoadFromStore(ctx, s, o.catalogKey)
	default:
		return catalog.Default(), nil
	}
}

func (o *globalOptions) loadRules() (*rules.Rules, error) {
	r, err := rules.Load(o.rulesPath)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	return r, nil
}
