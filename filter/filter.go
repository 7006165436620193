package filter

import (
	"context"

	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/rules"
)

// Filter 是过滤器的抽象接口，用于判断一个候选是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断 item 是否应该被过滤
	ShouldFilter(ctx context.Context, tctx *core.TripContext, item *core.ScoredItem) (bool, error)
}

// Preparer 由需要按请求预取数据的过滤器实现（例如从 Store 读取黑名单）。
// FilterNode 每次 Process 只调用一次 Prepare，并用返回的过滤器判断本次所有候选。
type Preparer interface {
	Prepare(ctx context.Context, tctx *core.TripContext) (Filter, error)
}

// Defaults 返回固定顺序的四条行程规则：证件排除 -> 阈值 -> 行程类型 -> 活动相关性。
func Defaults(r *rules.Rules) []Filter {
	return []Filter{
		&ExcludedDocumentFilter{Rules: r},
		&ThresholdFilter{Rules: r},
		&TripTypeFilter{},
		&ActivityRelevanceFilter{Rules: r},
	}
}
