package rules

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix 是环境变量覆盖的前缀。嵌套层级用双下划线分隔，例如：
//
//	PACKKIT_DEFAULTS__THRESHOLD=30   -> defaults.threshold
//	PACKKIT_RELEVANCE_BUFFER=20      -> relevance_buffer
const EnvPrefix = "PACKKIT_"

// Load 按层加载配置表：
//  1. 内置默认表（DefaultTables）
//  2. YAML 文件（path 为空时跳过）；map 按 key 合并，列表整体替换
//  3. 环境变量（优先级最高）
//
// 默认表先编码为 YAML 再载入，这样各张表是嵌套 map，文件里只写一个类别时
// 其余类别保留默认值。
func Load(path string) (*Rules, error) {
	k := koanf.New(".")

	defaults, err := yamlv3.Marshal(DefaultTables())
	if err != nil {
		return nil, fmt.Errorf("encode default rules: %w", err)
	}
	if err := k.Load(rawbytes.Provider(defaults), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load default rules: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("rules file %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load rules file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load rules env: %w", err)
	}

	var r Rules
	if err := k.Unmarshal("", &r); err != nil {
		return nil, fmt.Errorf("unmarshal rules: %w", err)
	}
	return New(r)
}

// envTransformFunc: PACKKIT_DEFAULTS__CAP -> defaults.cap
func envTransformFunc(key string) string {
	key = strings.TrimPrefix(key, EnvPrefix)
	key = strings.ToLower(key)
	return strings.ReplaceAll(key, "__", ".")
}

// Dump 以 YAML 输出当前生效的配置表，供 `packlist rules show` 使用。
func (r *Rules) Dump() ([]byte, error) {
	data, err := yamlv3.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal rules: %w", err)
	}
	return data, nil
}
