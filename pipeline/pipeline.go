package pipeline

import (
	"context"
	"fmt"

	"github.com/rushteam/packkit/core"
)

// Pipeline 把打包推荐拆成可组合的 Node 链：
// 召回（目录）→ 打分 → 过滤 → 类别截断 → 最终排序。
type Pipeline struct {
	Nodes []Node

	// Observer 在每个 Node 完成后回调（可选），用于打点/调试。
	Observer func(node Node, in, out int)
}

func (p *Pipeline) Run(
	ctx context.Context,
	tctx *core.TripContext,
	items []*core.ScoredItem,
) ([]*core.ScoredItem, error) {
	cur := items
	for _, node := range p.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := node.Process(ctx, tctx, cur)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", node.Name(), err)
		}
		if p.Observer != nil {
			p.Observer(node, len(cur), len(next))
		}
		cur = next
	}
	return cur, nil
}
