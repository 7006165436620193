package core

import (
	"math"

	"github.com/rushteam/packkit/pkg/utils"
)

// LangEN 是兜底语言；目录中每个物品至少要有英文名称与类别。
const LangEN = "en"

// AnyTag 表示物品对活动/天气不做限定。
const AnyTag = "any"

// LocalizedText 是语言代码 -> 文案的映射。
type LocalizedText map[string]string

// Resolve 返回 lang 对应的文案，缺失时回退到英文；英文也缺失时 ok=false。
func (t LocalizedText) Resolve(lang string) (string, bool) {
	if s, ok := t[lang]; ok && s != "" {
		return s, true
	}
	if s, ok := t[LangEN]; ok && s != "" {
		return s, true
	}
	return "", false
}

// Attributes 描述物品的适用条件。
type Attributes struct {
	Activities        []string `yaml:"activities" json:"activities"`
	WeatherConditions []string `yaml:"weather_condition" json:"weather_condition"`
	TempMin           *float64 `yaml:"temp_min,omitempty" json:"temp_min,omitempty"`
	TempMax           *float64 `yaml:"temp_max,omitempty" json:"temp_max,omitempty"`
	TripType          string   `yaml:"trip_type,omitempty" json:"trip_type,omitempty"` // domestic / international / 空
	OriginCountries   []string `yaml:"origin_country,omitempty" json:"origin_country,omitempty"`
}

// HasTempRange 报告物品是否声明了完整的温度区间。
func (a Attributes) HasTempRange() bool {
	return a.TempMin != nil && a.TempMax != nil
}

// 数量规则类型
const (
	QuantityFixed  = "fixed"
	QuantityPerDay = "per_day"
)

// QuantityLogic 决定打包数量：固定值或按天数乘以系数。
type QuantityLogic struct {
	Type  string  `yaml:"type" json:"type"`
	Value float64 `yaml:"value" json:"value"`
}

// Quantity 根据行程天数计算数量。per_day 向上取整。
func (q QuantityLogic) Quantity(durationDays int) int {
	if q.Type == QuantityPerDay {
		return int(math.Ceil(float64(durationDays) * q.Value))
	}
	return int(q.Value)
}

// Item 是目录中的物品记录，加载后只读。
// Position 是加载时分配的稳定序号，仅用于确定性的平局裁决。
type Item struct {
	ID            string        `yaml:"id" json:"id"`
	Name          LocalizedText `yaml:"name" json:"name"`
	Category      LocalizedText `yaml:"category" json:"category"`
	Emoji         string        `yaml:"emoji" json:"emoji"`
	Attributes    Attributes    `yaml:"attributes" json:"attributes"`
	QuantityLogic QuantityLogic `yaml:"quantity_logic" json:"quantity_logic"`
	URL           string        `yaml:"url,omitempty" json:"url,omitempty"`

	Position int `yaml:"-" json:"-"`
}

// CategoryKey 返回用于查配置表的类别键（英文类别名）。
func (it *Item) CategoryKey() string {
	return it.Category[LangEN]
}

// ScoredItem 是推荐链路中的承载结构：目录物品（只读）+ 本次请求的分数与标签。
// Labels 用于解释（各项得分、过滤原因）；Score 用于阈值与排序。
type ScoredItem struct {
	Item   *Item
	Score  float64
	Labels map[string]utils.Label
}

func NewScoredItem(item *Item) *ScoredItem {
	return &ScoredItem{
		Item:   item,
		Labels: make(map[string]utils.Label),
	}
}

// ID 是 Item.ID 的便捷访问。
func (s *ScoredItem) ID() string { return s.Item.ID }

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (s *ScoredItem) PutLabel(key string, lbl utils.Label) {
	if s.Labels == nil {
		s.Labels = make(map[string]utils.Label)
	}
	if old, ok := s.Labels[key]; ok {
		s.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	s.Labels[key] = lbl
}

// HasTag 判断 tags 中是否包含 tag。
func HasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
