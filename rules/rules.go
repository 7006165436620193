// Package rules 承载打包推荐用到的全部静态配置表：类别优先级、分数阈值、
// 活动阈值调整、类别上限、必需/关键证件集合、证件优先级与排除规则、类内子类顺序。
//
// 配置表随物品目录一起版本化，进程启动时加载一次，之后只读；
// 所有查询方法都不修改内部状态，可被并发请求共享。
package rules

import (
	"fmt"
	"strings"

	"github.com/rushteam/packkit/core"
)

// Defaults 是未在表中登记的类别使用的默认值。
type Defaults struct {
	Priority  float64 `koanf:"priority" yaml:"priority"`
	Threshold float64 `koanf:"threshold" yaml:"threshold"`
	Cap       int     `koanf:"cap" yaml:"cap"`
}

// Bucket 是类内子类：按表中顺序输出的一组物品 ID。
type Bucket struct {
	Name  string   `koanf:"name" yaml:"name"`
	Items []string `koanf:"items" yaml:"items"`
}

// DocumentRule 描述某种行程组合下的证件规则。
// Highest 是最优先展示的证件；Excluded 是无条件剔除的证件。
type DocumentRule struct {
	Highest  []string `koanf:"highest" yaml:"highest"`
	Excluded []string `koanf:"excluded" yaml:"excluded"`
}

// DocumentRules 按行程类型（及出发国家）给出证件规则。
type DocumentRules struct {
	International DocumentRule `koanf:"international" yaml:"international"`
	// Domestic 按出发国家代码（大写）索引
	Domestic map[string]DocumentRule `koanf:"domestic" yaml:"domestic"`
	// DomesticDefault 用于未登记的出发国家：展示所有身份证件
	DomesticDefault DocumentRule `koanf:"domestic_default" yaml:"domestic_default"`
	// Fallback 用于无法识别的行程类型
	Fallback DocumentRule `koanf:"fallback" yaml:"fallback"`
}

// Rules 是全部静态配置表。通过 New / Default / Load 获得的实例已编译好查询索引。
type Rules struct {
	Defaults        Defaults `koanf:"defaults" yaml:"defaults"`
	ThresholdFloor  float64  `koanf:"threshold_floor" yaml:"threshold_floor"`
	RelevanceBuffer float64  `koanf:"relevance_buffer" yaml:"relevance_buffer"`

	CategoryPriority    map[string]float64            `koanf:"category_priority" yaml:"category_priority"`
	ScoreThreshold      map[string]float64            `koanf:"score_threshold" yaml:"score_threshold"`
	ActivityAdjustments map[string]map[string]float64 `koanf:"activity_adjustments" yaml:"activity_adjustments"`
	MaxItemsPerCategory map[string]int                `koanf:"max_items_per_category" yaml:"max_items_per_category"`

	EssentialItems              []string `koanf:"essential_items" yaml:"essential_items"`
	InternationalEssentialItems []string `koanf:"international_essential_items" yaml:"international_essential_items"`
	CriticalDocuments           []string `koanf:"critical_documents" yaml:"critical_documents"`

	Documents     DocumentRules       `koanf:"documents" yaml:"documents"`
	SubCategories map[string][]Bucket `koanf:"sub_categories" yaml:"sub_categories"`

	essential     set
	intlEssential set
	critical      set
}

type set map[string]struct{}

func newSet(ids []string) set {
	s := make(set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s set) has(id string) bool {
	_, ok := s[id]
	return ok
}

// New 校验并编译配置表。返回后调用方不应再修改 r 中的 map/slice。
func New(r Rules) (*Rules, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	out := r
	out.essential = newSet(r.EssentialItems)
	out.intlEssential = newSet(r.InternationalEssentialItems)
	out.critical = newSet(r.CriticalDocuments)
	return &out, nil
}

// Validate 检查配置表自身的一致性。
func (r *Rules) Validate() error {
	if r.Defaults.Cap <= 0 {
		return rulesError("defaults.cap must be positive, got %d", r.Defaults.Cap)
	}
	if r.ThresholdFloor < 0 {
		return rulesError("threshold_floor must not be negative")
	}
	for cat, n := range r.MaxItemsPerCategory {
		if n <= 0 {
			return rulesError("max_items_per_category[%s] must be positive, got %d", cat, n)
		}
	}
	for cat, buckets := range r.SubCategories {
		seen := make(map[string]string)
		for _, b := range buckets {
			for _, id := range b.Items {
				if prev, ok := seen[id]; ok {
					return rulesError("sub_categories[%s]: item %q listed in both %q and %q", cat, id, prev, b.Name)
				}
				seen[id] = b.Name
			}
		}
	}
	return nil
}

func rulesError(format string, args ...any) error {
	return core.NewDomainError(core.ModuleRules, core.ErrorCodeDataIntegrity, "rules: "+fmt.Sprintf(format, args...))
}

// Priority 返回类别优先级（0–100），未登记的类别使用默认值。
func (r *Rules) Priority(category string) float64 {
	if p, ok := r.CategoryPriority[category]; ok {
		return p
	}
	return r.Defaults.Priority
}

// BaseThreshold 返回类别的基础阈值（不含活动调整）。
func (r *Rules) BaseThreshold(category string) float64 {
	if t, ok := r.ScoreThreshold[category]; ok {
		return t
	}
	return r.Defaults.Threshold
}

// Threshold 返回考虑了所选活动后的阈值。多个活动的调整累加；
// 发生过调整时结果不低于 ThresholdFloor。
func (r *Rules) Threshold(category string, activities []string) float64 {
	t := r.BaseThreshold(category)
	adjusted := false
	for _, a := range UniqueTags(activities) {
		if delta, ok := r.ActivityAdjustments[a][category]; ok {
			t += delta
			adjusted = true
		}
	}
	if adjusted && t < r.ThresholdFloor {
		t = r.ThresholdFloor
	}
	return t
}

// Cap 返回类别的最大物品数。
func (r *Rules) Cap(category string) int {
	if n, ok := r.MaxItemsPerCategory[category]; ok {
		return n
	}
	return r.Defaults.Cap
}

func (r *Rules) IsEssential(id string) bool              { return r.essential.has(id) }
func (r *Rules) IsInternationalEssential(id string) bool { return r.intlEssential.has(id) }
func (r *Rules) IsCritical(id string) bool               { return r.critical.has(id) }

// documentRule 选出行程组合对应的证件规则。
func (r *Rules) documentRule(tripType, originCountry string) DocumentRule {
	switch tripType {
	case core.TripInternational:
		return r.Documents.International
	case core.TripDomestic:
		if rule, ok := r.Documents.Domestic[strings.ToUpper(originCountry)]; ok {
			return rule
		}
		return r.Documents.DomesticDefault
	default:
		return r.Documents.Fallback
	}
}

// HighestPriorityDocuments 返回当前行程最相关的证件（排序第一梯队）。
func (r *Rules) HighestPriorityDocuments(tripType, originCountry string) []string {
	return r.documentRule(tripType, originCountry).Highest
}

// ExcludedDocuments 返回当前行程下应无条件剔除的证件。
func (r *Rules) ExcludedDocuments(tripType, originCountry string) []string {
	return r.documentRule(tripType, originCountry).Excluded
}

// SubCategoriesFor 返回类别的子类顺序表；没有表的类别保持排序结果。
func (r *Rules) SubCategoriesFor(category string) ([]Bucket, bool) {
	b, ok := r.SubCategories[category]
	return b, ok && len(b) > 0
}

// UniqueTags 按首次出现顺序去重。
func UniqueTags(tags []string) []string {
	if len(tags) < 2 {
		return tags
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
