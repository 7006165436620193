package filter

import (
	"context"

	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/rules"
)

// ActivityRelevanceFilter 处理声明了具体活动、但与本次行程活动没有交集的物品：
// 只有分数比阈值高出 RelevanceBuffer 及以上时才保留（说明它本身足够通用）。
type ActivityRelevanceFilter struct {
	Rules *rules.Rules
}

func (f *ActivityRelevanceFilter) Name() string {
	return "filter.activity_relevance"
}

func (f *ActivityRelevanceFilter) ShouldFilter(
	_ context.Context,
	tctx *core.TripContext,
	item *core.ScoredItem,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	acts := item.Item.Attributes.Activities
	if len(acts) == 0 || core.HasTag(acts, core.AnyTag) {
		return false, nil
	}
	for _, a := range acts {
		if tctx.HasActivity(a) {
			return false, nil
		}
	}
	r := rulesOrDefault(f.Rules)
	threshold := r.Threshold(item.Item.CategoryKey(), tctx.Activities)
	return item.Score < threshold+r.RelevanceBuffer, nil
}
