// Package metrics 提供打包推荐引擎的 Prometheus 指标。
//
// 指标：
//   - packkit_requests_total{status}：请求数（ok / invalid / error）
//   - packkit_request_duration_seconds：单次推荐耗时
//   - packkit_items_filtered_total{filter}：各过滤器剔除的物品数
//   - packkit_output_items：每次输出的物品总数
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 请求状态
const (
	StatusOK      = "ok"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "packkit_requests_total",
			Help: "Total number of packing-list recommendations by status",
		},
		[]string{"status"},
	)

	// RequestDuration 覆盖校验、Pipeline 与组装。整条链路是内存计算，桶从 50µs 起。
	RequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "packkit_request_duration_seconds",
			Help:    "Duration of packing-list recommendations in seconds",
			Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		},
	)

	ItemsFilteredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "packkit_items_filtered_total",
			Help: "Total number of items dropped, by filter",
		},
		[]string{"filter"},
	)

	OutputItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "packkit_output_items",
			Help:    "Number of items in each packing list",
			Buckets: prometheus.LinearBuckets(0, 10, 12),
		},
	)
)

// RecordRequest 记录一次推荐请求。
func RecordRequest(status string, d time.Duration, items int) {
	RequestsTotal.WithLabelValues(status).Inc()
	RequestDuration.Observe(d.Seconds())
	if status == StatusOK {
		OutputItems.Observe(float64(items))
	}
}

// RecordFiltered 记录某个过滤器剔除的物品数。
func RecordFiltered(filter string, n int) {
	if n <= 0 {
		return
	}
	ItemsFilteredTotal.WithLabelValues(filter).Add(float64(n))
}
