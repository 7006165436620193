package rerank

import (
	"context"

	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/pipeline"
)

// TopNNode 在最终排序后截取前 N 个物品，用于精简版清单（例如通知卡片只展示前 10 项）。
// 默认 Pipeline 不包含它，需要时在 Pipeline 配置中追加 rerank.topn。
type TopNNode struct {
	// N <= 0 时不截断
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.TripContext,
	items []*core.ScoredItem,
) ([]*core.ScoredItem, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}

var _ pipeline.Node = (*TopNNode)(nil)
