package engine

import (
	"github.com/rushteam/packkit/catalog"
	"github.com/rushteam/packkit/config"
	_ "github.com/rushteam/packkit/config/builders"
	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/filter"
	"github.com/rushteam/packkit/model"
	"github.com/rushteam/packkit/pipeline"
	"github.com/rushteam/packkit/rank"
	"github.com/rushteam/packkit/recall"
	"github.com/rushteam/packkit/rerank"
	"github.com/rushteam/packkit/rules"
)

// DefaultPipeline 返回标准链路：目录召回 → 打分 → 过滤 → 类别截断 → 最终排序。
func DefaultPipeline(cat *catalog.Catalog, r *rules.Rules) *pipeline.Pipeline {
	if cat == nil {
		cat = catalog.Default()
	}
	if r == nil {
		r = rules.Default()
	}
	return &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.Catalog{Catalog: cat},
			&rank.ScoreNode{Model: model.NewTripModel(r)},
			&filter.FilterNode{Filters: filter.Defaults(r)},
			&rerank.CategoryCapNode{Rules: r},
			&rank.PriorityNode{Rules: r},
		},
	}
}

// BuildPipeline 根据配置构建 Pipeline，目录、配置表与存储（可为 nil）会注入每个 Node。
// cfg 为 nil 时返回 DefaultPipeline。
func BuildPipeline(cfg *pipeline.Config, cat *catalog.Catalog, r *rules.Rules, s core.Store) (*pipeline.Pipeline, error) {
	if cfg == nil {
		return DefaultPipeline(cat, r), nil
	}
	if err := config.ValidatePipelineConfig(cfg); err != nil {
		return nil, err
	}
	if cat == nil {
		cat = catalog.Default()
	}
	if r == nil {
		r = rules.Default()
	}
	shared := map[string]interface{}{
		config.SharedCatalog: cat,
		config.SharedRules:   r,
	}
	if s != nil {
		shared[config.SharedStore] = s
	}
	return cfg.BuildPipeline(config.DefaultFactory(), shared)
}
