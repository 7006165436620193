package pipeline

import (
	"context"

	"github.com/rushteam/packkit/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall Kind = "recall" // 召回阶段：从目录生成候选集
	KindFilter Kind = "filter" // 过滤阶段：剔除不符合约束的候选
	KindRank   Kind = "rank"   // 排序阶段：打分或按多级规则排序
	KindReRank Kind = "rerank" // 重排阶段：按类别去重、截断
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态，方便召回生成、过滤截断、重排等操作。
//
// Node 不得修改 ScoredItem.Item 指向的目录物品；只能改写 Score/Labels 或返回新的切片。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		tctx *core.TripContext,
		items []*core.ScoredItem,
	) ([]*core.ScoredItem, error)
}

// NodeBuilder 根据配置构建 Node。
type NodeBuilder func(map[string]interface{}) (Node, error)
