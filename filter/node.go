package filter

import (
	"context"

	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/metrics"
	"github.com/rushteam/packkit/pipeline"
	"github.com/rushteam/packkit/pkg/utils"
)

// FilterNode 是过滤 Node，可以组合多个过滤器进行过滤。
// 过滤器按顺序执行，任何一个返回 true，该物品就会被过滤掉。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string {
	return "filter"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	tctx *core.TripContext,
	items []*core.ScoredItem,
) ([]*core.ScoredItem, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	filters := n.prepare(ctx, tctx)
	out := make([]*core.ScoredItem, 0, len(items))
	dropped := make(map[string]int, len(filters))

	for _, item := range items {
		if item == nil {
			continue
		}

		shouldFilter := false
		filterReason := ""

		for _, f := range filters {
			ok, err := f.ShouldFilter(ctx, tctx, item)
			if err != nil {
				// 过滤器错误时跳过该过滤器，不中断流程
				continue
			}
			if ok {
				shouldFilter = true
				filterReason = f.Name()
				break
			}
		}

		if shouldFilter {
			dropped[filterReason]++
			item.PutLabel("filtered", utils.Label{
				Value:  "true",
				Source: filterReason,
			})
			continue
		}

		out = append(out, item)
	}

	for name, cnt := range dropped {
		metrics.RecordFiltered(name, cnt)
	}
	return out, nil
}

// prepare 为本次请求生成过滤器列表。Prepare 失败的过滤器本次跳过，与单个过滤器出错时的处理一致。
func (n *FilterNode) prepare(ctx context.Context, tctx *core.TripContext) []Filter {
	filters := n.Filters
	copied := false
	for i, f := range n.Filters {
		p, ok := f.(Preparer)
		if !ok {
			continue
		}
		if !copied {
			filters = append([]Filter(nil), n.Filters...)
			copied = true
		}
		prepared, err := p.Prepare(ctx, tctx)
		if err != nil {
			prepared = nil
		}
		filters[i] = prepared
	}
	if !copied {
		return filters
	}
	out := filters[:0]
	for _, f := range filters {
		if f != nil {
			out = append(out, f)
		}
	}
	return out
}

var _ pipeline.Node = (*FilterNode)(nil)
