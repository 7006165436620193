package core

import "strings"

// 归一化后的天气类别
const (
	WeatherRainy   = "rainy"
	WeatherSnowy   = "snowy"
	WeatherSunny   = "sunny"
	WeatherClouds  = "clouds"
	WeatherSpecial = "special"
)

var weatherAliases = map[string]string{
	"thunderstorm": WeatherRainy,
	"drizzle":      WeatherRainy,
	"rain":         WeatherRainy,
	"snow":         WeatherSnowy,
	"clear":        WeatherSunny,
	"clouds":       WeatherClouds,
	"mist":         WeatherSpecial,
	"smoke":        WeatherSpecial,
	"haze":         WeatherSpecial,
	"dust":         WeatherSpecial,
	"fog":          WeatherSpecial,
	"sand":         WeatherSpecial,
	"ash":          WeatherSpecial,
	"squall":       WeatherSpecial,
	"tornado":      WeatherSpecial,
}

// NormalizeWeather 把天气服务的原始状态码（如 "Clear"、"Drizzle"）映射为物品标签使用的类别。
// 已经是归一化类别或无法识别的值按小写原样返回。
func NormalizeWeather(code string) string {
	c := strings.ToLower(strings.TrimSpace(code))
	if n, ok := weatherAliases[c]; ok {
		return n
	}
	return c
}
