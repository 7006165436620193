// Package compose 把排序后的候选组装成按类别分组的打包清单。
package compose

import (
	"net/url"
	"strings"

	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/rules"
)

// DestinationPlaceholder 是物品 URL 模板中的目的地占位符。
const DestinationPlaceholder = "{destination}"

// 链接说明文案前缀，按语言选择，未登记的语言使用英文。
var notePrefix = map[string]string{
	core.LangEN: "Search link: ",
	"zh":        "搜索链接：",
}

// ProcessedItem 是输出给调用方的清单条目。
type ProcessedItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Emoji    string  `json:"emoji"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Note     string  `json:"note,omitempty"`
	URL      string  `json:"url,omitempty"`
	Score    float64 `json:"score"`
}

// Group 是一个类别分组，Group 为本地化后的类别名。
type Group struct {
	Group string          `json:"category"`
	Items []ProcessedItem `json:"items"`
}

// GroupedOutput 是按首次出现顺序排列的分组清单。
type GroupedOutput []Group

// Len 返回所有分组中的条目总数。
func (g GroupedOutput) Len() int {
	n := 0
	for _, grp := range g {
		n += len(grp.Items)
	}
	return n
}

// Composer 负责本地化、数量计算、链接生成与类内子类排序。
type Composer struct {
	Rules *rules.Rules
}

// New 创建 Composer；r 为 nil 时使用内置配置表。
func New(r *rules.Rules) *Composer {
	if r == nil {
		r = rules.Default()
	}
	return &Composer{Rules: r}
}

type entry struct {
	key  string // 英文类别键，用于查子类表
	item ProcessedItem
}

// Compose 组装清单。物品缺少请求语言和英文的名称/类别时返回 DataIntegrityError。
func (c *Composer) Compose(items []*core.ScoredItem, tctx *core.TripContext) (GroupedOutput, error) {
	order := make([]string, 0, 16)
	groups := make(map[string][]entry, 16)

	for _, it := range items {
		if it == nil {
			continue
		}
		p, err := c.process(it, tctx)
		if err != nil {
			return nil, err
		}
		if _, ok := groups[p.Category]; !ok {
			order = append(order, p.Category)
		}
		groups[p.Category] = append(groups[p.Category], entry{key: it.Item.CategoryKey(), item: p})
	}

	out := make(GroupedOutput, 0, len(order))
	for _, name := range order {
		out = append(out, Group{Group: name, Items: c.reorder(groups[name])})
	}
	return out, nil
}

func (c *Composer) process(it *core.ScoredItem, tctx *core.TripContext) (ProcessedItem, error) {
	item := it.Item
	name, ok := item.Name.Resolve(tctx.Lang)
	if !ok {
		return ProcessedItem{}, core.NewDataIntegrityError(core.ModuleCompose, item.ID, "name", "missing English name")
	}
	category, ok := item.Category.Resolve(tctx.Lang)
	if !ok {
		return ProcessedItem{}, core.NewDataIntegrityError(core.ModuleCompose, item.ID, "category", "missing English category")
	}

	p := ProcessedItem{
		ID:       item.ID,
		Name:     name,
		Emoji:    item.Emoji,
		Category: category,
		Quantity: item.QuantityLogic.Quantity(tctx.DurationDays),
		Score:    it.Score,
	}
	if item.URL != "" {
		p.URL = ExpandURL(item.URL, tctx.Destination)
		p.Note = Note(p.URL, tctx.Lang)
	}
	return p, nil
}

// reorder 按子类表逐个桶输出，表中未覆盖的物品按原顺序追加在后面。
func (c *Composer) reorder(entries []entry) []ProcessedItem {
	out := make([]ProcessedItem, 0, len(entries))
	buckets, ok := c.Rules.SubCategoriesFor(entries[0].key)
	if !ok {
		for _, e := range entries {
			out = append(out, e.item)
		}
		return out
	}

	used := make([]bool, len(entries))
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		if _, dup := index[e.item.ID]; !dup {
			index[e.item.ID] = i
		}
	}
	for _, b := range buckets {
		for _, id := range b.Items {
			if i, ok := index[id]; ok && !used[i] {
				used[i] = true
				out = append(out, entries[i].item)
			}
		}
	}
	for i, e := range entries {
		if !used[i] {
			out = append(out, e.item)
		}
	}
	return out
}

// ExpandURL 把目的地百分号编码后替换进 URL 模板（空格编码为 %20）。
func ExpandURL(tmpl, destination string) string {
	enc := strings.ReplaceAll(url.QueryEscape(destination), "+", "%20")
	return strings.ReplaceAll(tmpl, DestinationPlaceholder, enc)
}

// Note 返回本地化的链接说明。
func Note(link, lang string) string {
	prefix, ok := notePrefix[lang]
	if !ok {
		// zh-CN / zh-TW 等按主语言匹配
		base, _, _ := strings.Cut(lang, "-")
		prefix, ok = notePrefix[base]
	}
	if !ok {
		prefix = notePrefix[core.LangEN]
	}
	return prefix + link
}
