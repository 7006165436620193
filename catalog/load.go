package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/rushteam/packkit/core"
)

// Format 是目录文件格式。
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// DefaultStoreKey 是目录快照在 Store 中的默认 key。
const DefaultStoreKey = "packkit:catalog"

// document 是目录文件的顶层结构（YAML/JSON 通用）。
type document struct {
	Version string      `yaml:"version,omitempty" json:"version,omitempty"`
	Items   []core.Item `yaml:"items" json:"items"`
}

//go:embed data/items.yaml
var defaultItems []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default 返回内置目录。内置数据有缺陷属于编写错误，直接 panic。
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultItems, FormatYAML)
		if err != nil {
			panic("catalog: invalid built-in catalog: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Parse 解析目录数据。
func Parse(data []byte, format Format) (*Catalog, error) {
	var doc document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown catalog format: %s", format)
	}
	return New(doc.Items)
}

// LoadFile 按扩展名（.yaml/.yml/.json）加载目录文件。
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Parse(data, FormatOf(path))
}

// FormatOf 根据文件扩展名推断格式，默认 YAML。
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Marshal 把目录编码为 JSON（用于发布到 Store）。
func Marshal(c *Catalog) ([]byte, error) {
	doc := document{Items: make([]core.Item, 0, c.Len())}
	for _, it := range c.items {
		doc.Items = append(doc.Items, *it)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}
	return data, nil
}

// LoadFromStore 从 Store 读取目录快照（JSON）。
func LoadFromStore(ctx context.Context, s core.Store, key string) (*Catalog, error) {
	if key == "" {
		key = DefaultStoreKey
	}
	data, err := s.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get catalog %s from %s: %w", key, s.Name(), err)
	}
	return Parse(data, FormatJSON)
}

// SaveToStore 把目录快照和 extra 中的配套数据（例如黑名单）用一次 BatchSet 写入 Store，
// 读取方不会看到新目录配旧名单的中间状态（Redis 下为同一个 pipeline）。
func SaveToStore(ctx context.Context, s core.Store, key string, c *Catalog, extra map[string][]byte) error {
	if key == "" {
		key = DefaultStoreKey
	}
	if _, clash := extra[key]; clash {
		return fmt.Errorf("extra entry overwrites catalog key %s", key)
	}
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	kvs := make(map[string][]byte, len(extra)+1)
	for k, v := range extra {
		kvs[k] = v
	}
	kvs[key] = data
	if err := s.BatchSet(ctx, kvs); err != nil {
		return fmt.Errorf("publish catalog %s on %s: %w", key, s.Name(), err)
	}
	return nil
}
