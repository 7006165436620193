package filter

import (
	"context"

	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/pkg/dsl"
)

// ExprFilter 是运营规则过滤器：表达式为 true 时剔除物品。
// 例如 `item.category == "Skiing" && trip.avg_temp > 15`。
type ExprFilter struct {
	Program *dsl.Program
}

// NewExprFilter 编译表达式并创建过滤器。
func NewExprFilter(expr string) (*ExprFilter, error) {
	p, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{Program: p}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	tctx *core.TripContext,
	item *core.ScoredItem,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Program == nil {
		return false, nil
	}
	return f.Program.Evaluate(item, tctx)
}
