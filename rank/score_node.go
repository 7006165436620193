package rank

import (
	"context"
	"strconv"

	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/model"
	"github.com/rushteam/packkit/pipeline"
	"github.com/rushteam/packkit/pkg/utils"
)

// ScoreNode 使用 RankModel 为每个候选打分。
// - 写入 labels：rank_model 以及 score.* 各项得分（用于 explain）
// - 更新 item.Score；不改变顺序（后续阶段依赖目录顺序）
type ScoreNode struct {
	Model model.RankModel
}

func (n *ScoreNode) Name() string        { return "rank.score" }
func (n *ScoreNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *ScoreNode) Process(
	_ context.Context,
	tctx *core.TripContext,
	items []*core.ScoredItem,
) ([]*core.ScoredItem, error) {
	if n.Model == nil || len(items) == 0 {
		return items, nil
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		b, err := n.Model.Score(it.Item, tctx)
		if err != nil {
			return nil, err
		}
		it.Score = b.Total()
		it.PutLabel("rank_model", utils.Label{Value: n.Model.Name(), Source: "rank"})
		putScoreLabel(it, "score.category", b.Category)
		putScoreLabel(it, "score.essential", b.Essential)
		putScoreLabel(it, "score.activity", b.Activity)
		putScoreLabel(it, "score.weather", b.Weather)
		putScoreLabel(it, "score.temperature", b.Temperature)
		putScoreLabel(it, "score.trip_type", b.TripType)
		putScoreLabel(it, "score.duration", b.Duration)
	}
	return items, nil
}

func putScoreLabel(it *core.ScoredItem, key string, v float64) {
	it.Labels[key] = utils.Label{Value: strconv.FormatFloat(v, 'f', 2, 64), Source: "rank"}
}

var _ pipeline.Node = (*ScoreNode)(nil)
