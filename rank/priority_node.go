package rank

import (
	"context"
	"sort"

	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/pipeline"
	"github.com/rushteam/packkit/rules"
)

// PriorityNode 是最终排序：多级比较，每一级只在上一级相等时生效。
//  1. 当前行程最优先的证件（国际行程的护照、国内行程对应国家的身份证）
//  2. 关键证件（护照、身份证、驾照、学生证、信用卡）
//  3. 必需品
//  4. 分数降序
//  5. 目录顺序升序
type PriorityNode struct {
	Rules *rules.Rules
}

func (n *PriorityNode) Name() string        { return "rank.priority" }
func (n *PriorityNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *PriorityNode) Process(
	_ context.Context,
	tctx *core.TripContext,
	items []*core.ScoredItem,
) ([]*core.ScoredItem, error) {
	if len(items) < 2 {
		return items, nil
	}
	r := n.Rules
	if r == nil {
		r = rules.Default()
	}
	highest := r.HighestPriorityDocuments(tctx.TripType, tctx.OriginCountry)

	out := make([]*core.ScoredItem, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if x, y := core.HasTag(highest, a.ID()), core.HasTag(highest, b.ID()); x != y {
			return x
		}
		if x, y := r.IsCritical(a.ID()), r.IsCritical(b.ID()); x != y {
			return x
		}
		if x, y := r.IsEssential(a.ID()), r.IsEssential(b.ID()); x != y {
			return x
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		return a.Item.Position < b.Item.Position
	})
	return out, nil
}

var _ pipeline.Node = (*PriorityNode)(nil)
