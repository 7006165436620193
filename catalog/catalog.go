// Package catalog 提供只读的物品目录。
//
// 目录在进程启动时加载一次；加载时为每个物品分配稳定的序号（Position），
// 之后所有阶段只通过指针读取物品，从不修改。序号只用于确定性的平局裁决。
package catalog

import (
	"fmt"

	"github.com/rushteam/packkit/core"
)

// Catalog 是不可变的物品集合（arena + index）。并发读安全。
type Catalog struct {
	items []*core.Item
	byID  map[string]*core.Item
}

// New 校验物品并建立索引。items 中的 map/slice 之后归目录所有，调用方不应再修改。
func New(items []core.Item) (*Catalog, error) {
	arena := make([]core.Item, len(items))
	copy(arena, items)

	c := &Catalog{
		items: make([]*core.Item, 0, len(arena)),
		byID:  make(map[string]*core.Item, len(arena)),
	}
	for i := range arena {
		it := &arena[i]
		if err := validateItem(it); err != nil {
			return nil, err
		}
		if _, dup := c.byID[it.ID]; dup {
			return nil, core.NewDataIntegrityError(core.ModuleCatalog, it.ID, "id", "duplicate id")
		}
		it.Position = i
		c.items = append(c.items, it)
		c.byID[it.ID] = it
	}
	return c, nil
}

func validateItem(it *core.Item) error {
	if it.ID == "" {
		return core.NewDataIntegrityError(core.ModuleCatalog, "", "id", "empty id")
	}
	if it.Name[core.LangEN] == "" {
		return core.NewDataIntegrityError(core.ModuleCatalog, it.ID, "name", "missing English name")
	}
	if it.Category[core.LangEN] == "" {
		return core.NewDataIntegrityError(core.ModuleCatalog, it.ID, "category", "missing English category")
	}
	switch it.QuantityLogic.Type {
	case core.QuantityFixed, core.QuantityPerDay:
	default:
		return core.NewDataIntegrityError(core.ModuleCatalog, it.ID, "quantity_logic",
			fmt.Sprintf("unknown type %q", it.QuantityLogic.Type))
	}
	if it.QuantityLogic.Value < 0 {
		return core.NewDataIntegrityError(core.ModuleCatalog, it.ID, "quantity_logic", "negative value")
	}
	a := it.Attributes
	if a.HasTempRange() && *a.TempMin > *a.TempMax {
		return core.NewDataIntegrityError(core.ModuleCatalog, it.ID, "attributes", "temp_min greater than temp_max")
	}
	switch a.TripType {
	case "", core.TripDomestic, core.TripInternational:
	default:
		return core.NewDataIntegrityError(core.ModuleCatalog, it.ID, "trip_type",
			fmt.Sprintf("unknown trip type %q", a.TripType))
	}
	return nil
}

// Items 返回按目录顺序排列的物品指针（新切片，物品本身只读）。
func (c *Catalog) Items() []*core.Item {
	out := make([]*core.Item, len(c.items))
	copy(out, c.items)
	return out
}

// Get 按 ID 查找物品。
func (c *Catalog) Get(id string) (*core.Item, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Len 返回物品数量。
func (c *Catalog) Len() int { return len(c.items) }

// Categories 返回按首次出现顺序排列的类别键。
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 16)
	for _, it := range c.items {
		key := it.CategoryKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
