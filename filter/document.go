package filter

import (
	"context"

	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/rules"
)

// ExcludedDocumentFilter 剔除与当前行程不符的证件：
// 出境行程剔除身份证，国内行程剔除护照和其他国家的身份证。
type ExcludedDocumentFilter struct {
	Rules *rules.Rules
}

func (f *ExcludedDocumentFilter) Name() string {
	return "filter.excluded_document"
}

func (f *ExcludedDocumentFilter) ShouldFilter(
	_ context.Context,
	tctx *core.TripContext,
	item *core.ScoredItem,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	excluded := rulesOrDefault(f.Rules).ExcludedDocuments(tctx.TripType, tctx.OriginCountry)
	return core.HasTag(excluded, item.ID()), nil
}

func rulesOrDefault(r *rules.Rules) *rules.Rules {
	if r == nil {
		return rules.Default()
	}
	return r
}
