// Package conv 提供 Node 配置（YAML/JSON 解析得到的 map[string]any）的取值工具。
package conv

import "strconv"

// ToFloat64 将数值型 any 转为 float64。YAML 解析整数得到 int，JSON 得到 float64。
func ToFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}

// ConvertSlice 逐个转换切片元素，转换失败的元素被跳过。
func ConvertSlice[T, U any](s []T, convert func(T) (U, bool)) []U {
	if s == nil {
		return nil
	}
	out := make([]U, 0, len(s))
	for _, e := range s {
		if u, ok := convert(e); ok {
			out = append(out, u)
		}
	}
	return out
}

// SliceAnyToString 把配置里的 ID 列表转为 []string。
// 支持 []string 与 []any；数字元素按整数格式化（YAML 里未加引号的数字 ID）。
func SliceAnyToString(v any) []string {
	switch raw := v.(type) {
	case []string:
		return raw
	case []any:
		return ConvertSlice(raw, func(e any) (string, bool) {
			if s, ok := e.(string); ok {
				return s, true
			}
			if f, ok := ToFloat64(e); ok {
				return strconv.FormatFloat(f, 'f', 0, 64), true
			}
			return "", false
		})
	default:
		return nil
	}
}

// ConfigGet 按 key 取 T，取不到或类型不符时返回 defaultVal。
func ConfigGet[T any](m map[string]any, key string, defaultVal T) T {
	v, ok := m[key]
	if !ok {
		return defaultVal
	}
	t, ok := v.(T)
	if !ok {
		return defaultVal
	}
	return t
}

// ConfigGetInt64 取整数配置，兼容 int / int64 / uint64 / float64。
func ConfigGetInt64(m map[string]any, key string, defaultVal int64) int64 {
	v, ok := m[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case int:
		return int64(val)
	case int64:
		return val
	case uint64:
		return int64(val)
	case float64:
		return int64(val)
	default:
		return defaultVal
	}
}
