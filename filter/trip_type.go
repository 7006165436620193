package filter

import (
	"context"

	"github.com/rushteam/packkit/core"
)

// TripTypeFilter 严格按行程类型过滤：标记为 international 的物品不出现在国内行程中，反之亦然。
// 未标记行程类型的物品不受影响。
type TripTypeFilter struct{}

func (f *TripTypeFilter) Name() string {
	return "filter.trip_type"
}

func (f *TripTypeFilter) ShouldFilter(
	_ context.Context,
	tctx *core.TripContext,
	item *core.ScoredItem,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	tt := item.Item.Attributes.TripType
	if tt == "" {
		return false, nil
	}
	switch tctx.TripType {
	case core.TripDomestic, core.TripInternational:
		return tt != tctx.TripType, nil
	}
	return false, nil
}
