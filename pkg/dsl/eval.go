package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/packkit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("trip", cel.DynType),
	)
}

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Program 是编译好的规则表达式，可被并发请求复用。
//
// 表达式语法（CEL 标准语法）：
//   - 物品：item.id / item.category / item.score / item.activities / item.trip_type
//   - 行程：trip.duration_days / trip.avg_temp / trip.weather / trip.activities / trip.trip_type / trip.params
//   - 请求标签：trip.labels.channel == "mini_program"
//   - 标签：label.recall_source == "catalog" / label["score.activity"] != null
//
// 示例：
//   - `item.category == "Skiing" && trip.avg_temp > 15` → 天气暖和时不带滑雪装备
//   - `"activity_camping" in item.activities && trip.duration_days < 2`
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式。表达式必须返回 bool。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// String 返回原始表达式。
func (p *Program) String() string { return p.expr }

// Evaluate 对单个候选求值。
func (p *Program) Evaluate(item *core.ScoredItem, tctx *core.TripContext) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(item, tctx))
	if err != nil {
		// 访问不存在的 key 会报错，应先用 label.key != null 判断
		return false, fmt.Errorf("eval error: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

func buildInput(it *core.ScoredItem, tctx *core.TripContext) map[string]interface{} {
	labels := make(map[string]interface{}, len(it.Labels))
	for k, v := range it.Labels {
		labels[k] = v.Value
	}

	a := it.Item.Attributes
	item := map[string]interface{}{
		"id":                it.Item.ID,
		"category":          it.Item.CategoryKey(),
		"score":             it.Score,
		"activities":        stringsOrEmpty(a.Activities),
		"weather_condition": stringsOrEmpty(a.WeatherConditions),
		"trip_type":         a.TripType,
		"origin_country":    stringsOrEmpty(a.OriginCountries),
		"position":          it.Item.Position,
	}

	trip := map[string]interface{}{}
	if tctx != nil {
		params := tctx.Params
		if params == nil {
			params = map[string]any{}
		}
		tripLabels := make(map[string]interface{}, len(tctx.Labels))
		for k, v := range tctx.Labels {
			tripLabels[k] = v.Value
		}
		trip = map[string]interface{}{
			"duration_days":  tctx.DurationDays,
			"avg_temp":       tctx.AvgTemp,
			"weather":        core.NormalizeWeather(tctx.WeatherCode),
			"activities":     stringsOrEmpty(tctx.Activities),
			"lang":           tctx.Lang,
			"trip_type":      tctx.TripType,
			"origin_country": tctx.OriginCountry,
			"destination":    tctx.Destination,
			"params":         params,
			"labels":         tripLabels,
		}
	}

	return map[string]interface{}{
		"item":  item,
		"label": labels,
		"trip":  trip,
	}
}

func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
