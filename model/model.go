package model

import "github.com/rushteam/packkit/core"

// RankModel 是打分阶段的最小抽象：输入目录物品与行程，输出 0–100 的匹配分及其构成。
// 实现必须是纯函数：不修改 item，也不依赖请求之间的状态。
type RankModel interface {
	Name() string
	Score(item *core.Item, tctx *core.TripContext) (Breakdown, error)
}

// Breakdown 是各项得分。Total 为求和后截断到 [0,100] 的最终分。
type Breakdown struct {
	Category    float64
	Essential   float64
	Activity    float64
	Weather     float64
	Temperature float64
	TripType    float64
	Duration    float64
}

// Sum 返回未截断的合计。
func (b Breakdown) Sum() float64 {
	return b.Category + b.Essential + b.Activity + b.Weather + b.Temperature + b.TripType + b.Duration
}

// Total 先求和再截断。两项必需品加成可以叠加超过上限，截断只在最后做一次。
func (b Breakdown) Total() float64 {
	return Clamp(b.Sum(), MinScore, MaxScore)
}

const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Clamp 把 v 限制在 [lo, hi]。
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
