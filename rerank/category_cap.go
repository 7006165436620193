package rerank

import (
	"context"
	"sort"

	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/pipeline"
	"github.com/rushteam/packkit/rules"
)

// CategoryCapNode 按类别分组、按 ID 去重，并把每个类别截断到配置的上限。
//
// 截断前组内按目录顺序重排，因此保留的是目录中靠前的物品，而不一定是分数最高的；
// 这样同一行程多次生成的清单保持稳定。类别按首次出现的顺序展开。
type CategoryCapNode struct {
	Rules *rules.Rules
}

func (n *CategoryCapNode) Name() string {
	return "rerank.category_cap"
}

func (n *CategoryCapNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *CategoryCapNode) Process(
	_ context.Context,
	_ *core.TripContext,
	items []*core.ScoredItem,
) ([]*core.ScoredItem, error) {
	if len(items) == 0 {
		return items, nil
	}
	r := n.Rules
	if r == nil {
		r = rules.Default()
	}

	order := make([]string, 0, 16)
	groups := make(map[string][]*core.ScoredItem, 16)
	seen := make(map[string]struct{}, len(items))

	for _, it := range items {
		if it == nil {
			continue
		}
		if _, dup := seen[it.ID()]; dup {
			continue
		}
		seen[it.ID()] = struct{}{}

		cate := it.Item.CategoryKey()
		if _, ok := groups[cate]; !ok {
			order = append(order, cate)
		}
		groups[cate] = append(groups[cate], it)
	}

	out := make([]*core.ScoredItem, 0, len(seen))
	for _, cate := range order {
		g := groups[cate]
		sort.SliceStable(g, func(i, j int) bool {
			return g[i].Item.Position < g[j].Item.Position
		})
		if limit := r.Cap(cate); len(g) > limit {
			g = g[:limit]
		}
		out = append(out, g...)
	}
	return out, nil
}

var _ pipeline.Node = (*CategoryCapNode)(nil)
