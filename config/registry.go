package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rushteam/packkit/pipeline"
)

// 使用配置驱动时，需在 main 或入口处 import _ "github.com/rushteam/packkit/config/builders"
// 以触发内置 Node（recall.catalog、rank.score、filter、rerank.category_cap、rank.priority 等）的 init 注册。

// 共享依赖的注入 key：engine.BuildPipeline 把它们写入每个 Node 的 config。
const (
	SharedCatalog = "catalog" // *catalog.Catalog
	SharedRules   = "rules"   // *rules.Rules
	SharedStore   = "store"   // core.Store，可选
)

// NodeBuilder 与 pipeline.NodeBuilder 一致：根据 config 构建 Node。
// 各组件在 init 中调用 Register(typeName, builder) 即可被配置驱动。
type NodeBuilder = pipeline.NodeBuilder

var (
	defaultBuilders   = make(map[string]NodeBuilder)
	defaultBuildersMu sync.RWMutex
)

// Register 注册一种 Node 的构建逻辑，供 DefaultFactory 与配置驱动使用。
// 建议在各组件的 init 中调用，例如：func init() { config.Register("rank.score", BuildScoreNode) }
func Register(typeName string, builder NodeBuilder) {
	if typeName == "" || builder == nil {
		return
	}
	defaultBuildersMu.Lock()
	defer defaultBuildersMu.Unlock()
	defaultBuilders[typeName] = builder
}

// SupportedTypes 返回当前已注册的 Node 类型列表（排序），用于错误提示与校验。
func SupportedTypes() []string {
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	return supportedLocked()
}

// DefaultFactory 返回基于当前注册表构建的 NodeFactory，包含所有通过 Register 注册的 Node 类型。
func DefaultFactory() *pipeline.NodeFactory {
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	f := pipeline.NewNodeFactory()
	for typeName, builder := range defaultBuilders {
		f.Register(typeName, builder)
	}
	return f
}

// ValidatePipelineConfig 在构建前检查所有 node 类型均已注册，错误信息带上已支持的类型列表。
func ValidatePipelineConfig(cfg *pipeline.Config) error {
	if cfg == nil {
		return nil
	}
	defaultBuildersMu.RLock()
	defer defaultBuildersMu.RUnlock()
	for i, nc := range cfg.Pipeline.Nodes {
		if nc.Type == "" {
			return fmt.Errorf("node %d: missing type", i)
		}
		if _, ok := defaultBuilders[nc.Type]; !ok {
			return fmt.Errorf("node %d: unsupported type %q (supported: %v)", i, nc.Type, supportedLocked())
		}
	}
	return nil
}

func supportedLocked() []string {
	types := make([]string, 0, len(defaultBuilders))
	for t := range defaultBuilders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
