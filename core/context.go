package core

import "github.com/rushteam/packkit/pkg/utils"

// 行程类型
const (
	TripDomestic      = "domestic"
	TripInternational = "international"
)

// TripContext 承载一次请求的行程信息，贯穿整个 Pipeline 透传。
// 由上游（HTTP 层）组装：天气、地理编码等外部调用都在引擎之外完成。
type TripContext struct {
	DurationDays  int      `json:"durationDays" validate:"min=1"`
	AvgTemp       float64  `json:"avgTemp"`
	WeatherCode   string   `json:"weatherCode"`
	Activities    []string `json:"activities"`
	Lang          string   `json:"lang" validate:"required"`
	TripType      string   `json:"tripType" validate:"oneof=domestic international"`
	OriginCountry string   `json:"originCountry"`
	Destination   string   `json:"destination"`

	// Labels 是请求级标签，可驱动自定义 Node 行为
	Labels map[string]utils.Label `json:"-"`

	// Params 是请求级附加参数，例如 CEL 规则里引用的业务开关
	Params map[string]any `json:"-"`
}

// IsInternational 判断是否为出境行程。
func (t *TripContext) IsInternational() bool {
	return t.TripType == TripInternational
}

// HasActivity 判断是否选中了某个活动。
func (t *TripContext) HasActivity(activity string) bool {
	return HasTag(t.Activities, activity)
}

// PutLabel 写入请求级 Label。
func (t *TripContext) PutLabel(key string, lbl utils.Label) {
	if t.Labels == nil {
		t.Labels = make(map[string]utils.Label)
	}
	if old, ok := t.Labels[key]; ok {
		t.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	t.Labels[key] = lbl
}
