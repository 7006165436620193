package filter

import (
	"context"

	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/rules"
)

// ThresholdFilter 剔除分数低于类别阈值的物品。阈值会按所选活动调整。
type ThresholdFilter struct {
	Rules *rules.Rules
}

func (f *ThresholdFilter) Name() string {
	return "filter.threshold"
}

func (f *ThresholdFilter) ShouldFilter(
	_ context.Context,
	tctx *core.TripContext,
	item *core.ScoredItem,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	threshold := rulesOrDefault(f.Rules).Threshold(item.Item.CategoryKey(), tctx.Activities)
	return item.Score < threshold, nil
}
