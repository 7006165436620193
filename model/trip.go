package model

import (
	"math"
	"strings"

	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/rules"
)

// 各项权重（满分）
const (
	WeightCategory    = 25.0
	WeightEssential   = 20.0
	WeightActivity    = 20.0
	WeightWeather     = 15.0
	WeightTemperature = 10.0
	WeightTripType    = 10.0
)

// 部分得分系数与加成
const (
	anyActivityFactor    = 0.3 // 不限活动的物品
	anyWeatherFactor     = 0.5 // 不限天气的物品
	untypedTripFactor    = 0.3 // 未声明行程类型的物品
	tempNearRange        = 5.0 // 距区间中点多少度以内给部分分
	tempNearFactor       = 0.7
	originCountryBonus   = 5.0
	comfortLongTripBonus = 5.0
	comfortLongTripDays  = 7
	medicalLongTripBonus = 3.0
	medicalLongTripDays  = 5
)

// TripModel 是行程匹配打分模型：类别优先级、必需品加成、活动、天气、温度、行程类型、时长加成。
type TripModel struct {
	Rules *rules.Rules
}

func NewTripModel(r *rules.Rules) *TripModel {
	if r == nil {
		r = rules.Default()
	}
	return &TripModel{Rules: r}
}

func (m *TripModel) Name() string { return "trip" }

func (m *TripModel) Score(it *core.Item, tctx *core.TripContext) (Breakdown, error) {
	category := it.CategoryKey()
	attrs := it.Attributes
	return Breakdown{
		Category:    m.Rules.Priority(category) / 100 * WeightCategory,
		Essential:   m.essentialScore(it.ID, tctx),
		Activity:    ActivityScore(attrs.Activities, tctx.Activities),
		Weather:     WeatherScore(attrs.WeatherConditions, tctx.WeatherCode),
		Temperature: TemperatureScore(attrs, tctx.AvgTemp),
		TripType:    TripTypeScore(attrs, tctx.TripType, tctx.OriginCountry),
		Duration:    DurationBonus(category, tctx.DurationDays),
	}, nil
}

func (m *TripModel) essentialScore(id string, tctx *core.TripContext) float64 {
	var s float64
	if m.Rules.IsEssential(id) {
		s += WeightEssential
	}
	if tctx.IsInternational() && m.Rules.IsInternationalEssential(id) {
		s += WeightEssential
	}
	return s
}

// ActivityScore：不限活动给 30%；否则按所选活动的命中比例给分，未选活动为 0。
func ActivityScore(itemActivities, selected []string) float64 {
	if core.HasTag(itemActivities, core.AnyTag) {
		return WeightActivity * anyActivityFactor
	}
	selected = rules.UniqueTags(selected)
	if len(selected) == 0 {
		return 0
	}
	hit := 0
	for _, a := range selected {
		if core.HasTag(itemActivities, a) {
			hit++
		}
	}
	return WeightActivity * float64(hit) / float64(len(selected))
}

// WeatherScore：不限天气给 50%；归一化后的天气类别命中给满分。
func WeatherScore(itemWeather []string, weatherCode string) float64 {
	if core.HasTag(itemWeather, core.AnyTag) {
		return WeightWeather * anyWeatherFactor
	}
	if core.HasTag(itemWeather, core.NormalizeWeather(weatherCode)) {
		return WeightWeather
	}
	return 0
}

// TemperatureScore：落在区间内给满分；距区间中点不超过 5 度给线性递减的部分分。
func TemperatureScore(attrs core.Attributes, avgTemp float64) float64 {
	if !attrs.HasTempRange() {
		return 0
	}
	lo, hi := *attrs.TempMin, *attrs.TempMax
	if avgTemp >= lo && avgTemp <= hi {
		return WeightTemperature
	}
	dist := math.Abs(avgTemp - (lo+hi)/2)
	if dist <= tempNearRange {
		return WeightTemperature * (1 - dist/tempNearRange) * tempNearFactor
	}
	return 0
}

// TripTypeScore：类型一致给满分（国内行程且出发国命中再加 5）；未声明类型给 30%。
func TripTypeScore(attrs core.Attributes, tripType, originCountry string) float64 {
	if attrs.TripType == "" {
		return WeightTripType * untypedTripFactor
	}
	if attrs.TripType != tripType {
		return 0
	}
	s := WeightTripType
	if tripType == core.TripDomestic && core.HasTag(attrs.OriginCountries, strings.ToUpper(originCountry)) {
		s += originCountryBonus
	}
	return s
}

// DurationBonus：长行程给舒适用品与医药包额外加分。
func DurationBonus(category string, durationDays int) float64 {
	switch {
	case category == rules.CategoryComfort && durationDays > comfortLongTripDays:
		return comfortLongTripBonus
	case category == rules.CategoryMedical && durationDays > medicalLongTripDays:
		return medicalLongTripBonus
	}
	return 0
}

var _ RankModel = (*TripModel)(nil)
