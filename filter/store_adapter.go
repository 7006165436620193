package filter

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/rushteam/packkit/core"
)

// StoreAdapter 将 core.Store 适配为过滤器所需的存储接口。
// 黑名单以 JSON 字符串数组存放在单个 key 下。
type StoreAdapter struct {
	store core.Store
}

// NewStoreAdapter 创建一个 core.Store 适配器。
func NewStoreAdapter(s core.Store) *StoreAdapter {
	return &StoreAdapter{store: s}
}

// GetBlacklist 用一次 BatchGet 读取多个 key 下的黑名单并按 key 顺序合并。
func (a *StoreAdapter) GetBlacklist(ctx context.Context, keys ...string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	vals, err := a.store.BatchGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("get blacklist from %s: %w", a.store.Name(), err)
	}

	var out []string
	for _, key := range keys {
		data, ok := vals[key]
		if !ok {
			continue
		}
		var ids []string
		if err := json.Unmarshal(data, &ids); err != nil {
			return nil, fmt.Errorf("decode blacklist %s: %w", key, err)
		}
		out = append(out, ids...)
	}
	return out, nil
}

// SetBlacklist 覆盖写入黑名单；ids 为空时删除该 key。
func (a *StoreAdapter) SetBlacklist(ctx context.Context, key string, ids []string) error {
	if len(ids) == 0 {
		return a.store.Delete(ctx, key)
	}
	data, err := EncodeBlacklist(ids)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, key, data)
}

// EncodeBlacklist 把名单编码为 Store 中的存放格式，供批量发布使用。
func EncodeBlacklist(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("encode blacklist: %w", err)
	}
	return data, nil
}
