// Package packkit 是一个行程打包清单推荐工具包（Packing Kit）。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（目录召回 → 打分 → 过滤 → 类别截断 → 最终排序），再由 Composer 分组输出
// - Labels-first: 各项得分与过滤原因以 labels 记录在候选上，支持 explain / 观测
// - 配置即数据: 优先级、阈值、上限、证件规则、子类顺序都是配置表，随目录一起版本化
package packkit

import (
	"github.com/rushteam/packkit/engine"
	"github.com/rushteam/packkit/pipeline"
)

// 轻量 facade：便于用户直接 import "packkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind
type Engine = engine.Engine

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindRank   = pipeline.KindRank
	KindReRank = pipeline.KindReRank
)

// NewEngine 创建引擎；目录或配置表传 nil 时使用内置数据。
var NewEngine = engine.New
