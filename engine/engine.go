// Package engine 把目录、配置表、Pipeline 与 Composer 组装成可并发调用的打包清单推荐引擎。
//
// 引擎本身无状态：目录与配置表在启动时加载一次，之后只读；每次请求都生成新的候选与输出。
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rushteam/packkit/catalog"
	"github.com/rushteam/packkit/compose"
	"github.com/rushteam/packkit/core"
	"github.com/rushteam/packkit/metrics"
	"github.com/rushteam/packkit/pipeline"
	"github.com/rushteam/packkit/rules"
)

// DefaultMaxConcurrent 是 RecommendMany 的默认并发上限。
const DefaultMaxConcurrent = 8

// Engine 是打包清单推荐引擎。
type Engine struct {
	catalog  *catalog.Catalog
	rules    *rules.Rules
	pipeline *pipeline.Pipeline
	composer *compose.Composer
	logger   zerolog.Logger

	maxConcurrent int
}

// Option 配置 Engine。
type Option func(*Engine)

// WithLogger 设置日志。默认不输出。
//
//nolint:gocritic // zerolog.Logger 按值传递
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithPipeline 替换默认 Pipeline（例如由 YAML 配置构建的 Pipeline）。引擎不会修改 p。
func WithPipeline(p *pipeline.Pipeline) Option {
	return func(e *Engine) { e.pipeline = p }
}

// WithComposer 替换默认 Composer。
func WithComposer(c *compose.Composer) Option {
	return func(e *Engine) { e.composer = c }
}

// WithMaxConcurrent 设置 RecommendMany 的并发上限。
func WithMaxConcurrent(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxConcurrent = n
		}
	}
}

// New 创建引擎。cat / r 为 nil 时使用内置目录与配置表。
func New(cat *catalog.Catalog, r *rules.Rules, opts ...Option) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	if r == nil {
		r = rules.Default()
	}
	e := &Engine{
		catalog:       cat,
		rules:         r,
		logger:        zerolog.Nop(),
		maxConcurrent: DefaultMaxConcurrent,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With().Str("component", "packing").Logger()
	if e.pipeline == nil {
		e.pipeline = DefaultPipeline(cat, r)
	} else {
		// 调用方的 Pipeline 可能被多个引擎共用，Observer 只设置在副本上
		p := *e.pipeline
		e.pipeline = &p
	}
	if e.composer == nil {
		e.composer = compose.New(r)
	}
	if e.pipeline.Observer == nil {
		logger := e.logger
		e.pipeline.Observer = func(node pipeline.Node, in, out int) {
			logger.Trace().
				Str("node", node.Name()).
				Str("kind", string(node.Kind())).
				Int("in", in).
				Int("out", out).
				Msg("node done")
		}
	}

	e.logger.Info().
		Int("catalog_items", cat.Len()).
		Int("nodes", len(e.pipeline.Nodes)).
		Msg("packing engine initialized")
	return e
}

// Catalog 返回引擎使用的目录。
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Rules 返回引擎使用的配置表。
func (e *Engine) Rules() *rules.Rules { return e.rules }

// Recommend 为一次行程生成分组打包清单。
// 行程信息不合法时返回 INVALID_INPUT；目录数据缺陷时返回 DataIntegrityError。
//
//nolint:gocritic // TripContext 按值传递，请求之间互不影响
func (e *Engine) Recommend(ctx context.Context, tctx core.TripContext) (compose.GroupedOutput, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := e.logger.With().
		Str("destination", tctx.Destination).
		Str("trip_type", tctx.TripType).
		Int("duration_days", tctx.DurationDays).
		Logger()

	if err := tctx.Validate(); err != nil {
		metrics.RecordRequest(metrics.StatusInvalid, time.Since(start), 0)
		logger.Debug().Err(err).Msg("invalid trip context")
		return nil, err
	}

	items, err := e.pipeline.Run(ctx, &tctx, nil)
	if err != nil {
		metrics.RecordRequest(metrics.StatusError, time.Since(start), 0)
		return nil, fmt.Errorf("run pipeline: %w", err)
	}

	out, err := e.composer.Compose(items, &tctx)
	if err != nil {
		metrics.RecordRequest(metrics.StatusError, time.Since(start), 0)
		logger.Error().Err(err).Msg("compose packing list")
		return nil, fmt.Errorf("compose: %w", err)
	}

	elapsed := time.Since(start)
	metrics.RecordRequest(metrics.StatusOK, elapsed, out.Len())
	logger.Debug().
		Int("items", out.Len()).
		Int("groups", len(out)).
		Dur("latency", elapsed).
		Msg("packing list complete")
	return out, nil
}

// RecommendMany 并发处理多个行程，结果与输入一一对应。任一请求失败时返回第一个错误。
func (e *Engine) RecommendMany(ctx context.Context, trips []core.TripContext) ([]compose.GroupedOutput, error) {
	results := make([]compose.GroupedOutput, len(trips))
	if len(trips) == 0 {
		return results, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(e.maxConcurrent)
	for i := range trips {
		i := i
		eg.Go(func() error {
			out, err := e.Recommend(egCtx, trips[i])
			if err != nil {
				return fmt.Errorf("trip %d: %w", i, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
