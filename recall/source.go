package recall

import (
	"context"

	"github.com/rushteam/packkit/core"
)

// Source 表示一个可复用的候选来源。
type Source interface {
	Name() string
	Recall(ctx context.Context, tctx *core.TripContext) ([]*core.ScoredItem, error)
}
