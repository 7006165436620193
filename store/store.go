// Package store 提供 core.Store 的实现：MemoryStore（测试/单机）与 RedisStore（多实例共享目录快照与黑名单）。
//
// 此包只包含实现，接口定义在 core 包。
//
//	var s core.Store = store.NewMemoryStore()
package store

import "github.com/rushteam/packkit/core"

// ErrNotFound 与 core.ErrStoreNotFound 相同，便于调用方直接引用本包。
var ErrNotFound = core.ErrStoreNotFound
