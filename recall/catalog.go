package recall

import (
	"context"

	"github.com/rushteam/packkit/catalog"
	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/pipeline"
	"github.com/rushteam/packkit/pkg/utils"
)

// Catalog 是目录召回源：按目录顺序为每个物品生成一个候选。
// 同时实现了 Source 和 Node 接口，可以直接放在 Pipeline 开头。
type Catalog struct {
	Catalog *catalog.Catalog
}

func (r *Catalog) Name() string        { return "recall.catalog" }
func (r *Catalog) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，忽略上游输入，直接调用 Recall
func (r *Catalog) Process(
	ctx context.Context,
	tctx *core.TripContext,
	_ []*core.ScoredItem,
) ([]*core.ScoredItem, error) {
	return r.Recall(ctx, tctx)
}

// Recall 实现 Source 接口
func (r *Catalog) Recall(
	_ context.Context,
	_ *core.TripContext,
) ([]*core.ScoredItem, error) {
	if r.Catalog == nil {
		return nil, nil
	}
	items := r.Catalog.Items()
	out := make([]*core.ScoredItem, 0, len(items))
	for _, it := range items {
		s := core.NewScoredItem(it)
		s.PutLabel("recall_source", utils.Label{Value: "catalog", Source: "recall"})
		out = append(out, s)
	}
	return out, nil
}

var _ Source = (*Catalog)(nil)
var _ pipeline.Node = (*Catalog)(nil)
