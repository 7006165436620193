package filter

import (
	"context"

	"github.com/rushteam/packkit/core"
)

// BlacklistFilter 是黑名单过滤器，剔除运营下架的物品（例如召回后发现文案有误的物品）。
// 在 FilterNode 中使用时，Store 中的黑名单每次请求只读取一次。
type BlacklistFilter struct {
	// ItemIDs 是内存中的黑名单物品 ID 列表
	ItemIDs []string

	// Store 用于从存储中读取黑名单（可选）
	Store BlacklistStore

	// Keys 是 Store 中的黑名单 key，多个 key 的名单合并生效
	Keys []string
}

// BlacklistStore 是黑名单存储接口。
type BlacklistStore interface {
	// GetBlacklist 读取并合并多个 key 下的黑名单；不存在的 key 视为空名单
	GetBlacklist(ctx context.Context, keys ...string) ([]string, error)
}

// NewBlacklistFilter 创建一个黑名单过滤器。
func NewBlacklistFilter(itemIDs []string, storeAdapter *StoreAdapter, keys ...string) *BlacklistFilter {
	var store BlacklistStore
	if storeAdapter != nil {
		store = storeAdapter
	}
	return &BlacklistFilter{
		ItemIDs: itemIDs,
		Store:   store,
		Keys:    keys,
	}
}

func (f *BlacklistFilter) Name() string {
	return "filter.blacklist"
}

// Prepare 一次性读取 Store 中的名单，返回只查内存的过滤器。
func (f *BlacklistFilter) Prepare(ctx context.Context, _ *core.TripContext) (Filter, error) {
	if f.Store == nil || len(f.Keys) == 0 {
		return f, nil
	}
	stored, err := f.Store.GetBlacklist(ctx, f.Keys...)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(f.ItemIDs)+len(stored))
	ids = append(ids, f.ItemIDs...)
	ids = append(ids, stored...)
	return &BlacklistFilter{ItemIDs: ids}, nil
}

func (f *BlacklistFilter) ShouldFilter(
	ctx context.Context,
	_ *core.TripContext,
	item *core.ScoredItem,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	if core.HasTag(f.ItemIDs, item.ID()) {
		return true, nil
	}

	if f.Store != nil && len(f.Keys) > 0 {
		blacklist, err := f.Store.GetBlacklist(ctx, f.Keys...)
		if err != nil {
			return false, err
		}
		return core.HasTag(blacklist, item.ID()), nil
	}

	return false, nil
}

var (
	_ Filter   = (*BlacklistFilter)(nil)
	_ Preparer = (*BlacklistFilter)(nil)
)
