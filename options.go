package mediator

import (
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/dep2p/go-mediator/config"
	pkgif "github.com/dep2p/go-mediator/pkg/interfaces"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 基础配置（WithConfig 或默认值）
	cfg *config.Config

	// 单项覆盖，在 cfg 之后应用
	queueCapacity         *int
	maxConcurrentHandlers *int
	closeTimeout          *time.Duration

	// 钩子
	onError     pkgif.ErrorHook
	onUnhandled pkgif.UnhandledEventHook

	// 可观测性
	registerer     prometheus.Registerer
	namespace      string
	reporters      []pkgif.DispatchReporter
	tracerProvider trace.TracerProvider

	// 时间源
	clock clock.Clock
}

// newOptions 创建默认选项
func newOptions() *options {
	return &options{
		cfg: config.NewConfig(),
	}
}

// apply 依次应用选项
func (o *options) apply(opts []Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return err
		}
	}
	return nil
}

// busConfig 合并单项覆盖后返回总线配置
func (o *options) busConfig() (config.BusConfig, error) {
	bc := o.cfg.Bus
	if o.queueCapacity != nil {
		bc.QueueCapacity = *o.queueCapacity
	}
	if o.maxConcurrentHandlers != nil {
		bc.MaxConcurrentHandlers = *o.maxConcurrentHandlers
	}
	if o.closeTimeout != nil {
		bc.CloseTimeout = config.Duration(*o.closeTimeout)
	}
	if err := bc.Validate(); err != nil {
		return bc, err
	}
	return bc, nil
}

// ============================================================================
//                              配置选项
// ============================================================================

// WithConfig 使用完整配置
//
// 配置在调用 WithConfig 时即被验证并复制，之后对 cfg 的修改不影响构建；
// 验证错误在 Build 时返回。单项选项覆盖其中的字段。
// cfg.Log 非空时同时调整全局日志。
func WithConfig(cfg *config.Config) Option {
	if cfg == nil {
		return func(*options) error {
			return errors.New("mediator: config must not be nil")
		}
	}
	if err := cfg.Validate(); err != nil {
		return func(*options) error { return err }
	}
	snapshot := config.CloneConfig(cfg)
	return func(o *options) error {
		o.cfg = config.CloneConfig(snapshot)
		return nil
	}
}

// WithQueueCapacity 设置事件队列容量
//
// 队列满时 Publish 阻塞直到有空位或 ctx 结束。
func WithQueueCapacity(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("%w: queue capacity must be positive, got %d", ErrInvalidConfig, n)
		}
		o.queueCapacity = &n
		return nil
	}
}

// WithMaxConcurrentHandlers 限制单个事件同时运行的处理器数量
//
// 0 表示不限；1 表示同一事件的处理器按注册顺序依次执行。
func WithMaxConcurrentHandlers(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("%w: max concurrent handlers must not be negative, got %d", ErrInvalidConfig, n)
		}
		o.maxConcurrentHandlers = &n
		return nil
	}
}

// WithCloseTimeout 设置 fx 停止时等待事件投递完成的时间
func WithCloseTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return fmt.Errorf("%w: close timeout must not be negative, got %s", ErrInvalidConfig, d)
		}
		o.closeTimeout = &d
		return nil
	}
}

// ============================================================================
//                              钩子选项
// ============================================================================

// WithErrorHook 设置事件处理器失败钩子
func WithErrorHook(hook pkgif.ErrorHook) Option {
	return func(o *options) error {
		o.onError = hook
		return nil
	}
}

// WithUnhandledEventHook 设置事件无处理器钩子
func WithUnhandledEventHook(hook pkgif.UnhandledEventHook) Option {
	return func(o *options) error {
		o.onUnhandled = hook
		return nil
	}
}

// ============================================================================
//                              可观测性选项
// ============================================================================

// WithMetricsRegisterer 指定 Prometheus 注册器
//
// 默认使用 prometheus.DefaultRegisterer。配置中 EnableMetrics 为 false 时忽略。
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) error {
		if reg == nil {
			return errors.New("mediator: metrics registerer must not be nil")
		}
		o.registerer = reg
		return nil
	}
}

// WithMetricsNamespace 设置指标命名空间，默认 "mediator"
func WithMetricsNamespace(namespace string) Option {
	return func(o *options) error {
		o.namespace = namespace
		return nil
	}
}

// WithReporter 追加自定义指标上报器
func WithReporter(r pkgif.DispatchReporter) Option {
	return func(o *options) error {
		if r == nil {
			return errors.New("mediator: reporter must not be nil")
		}
		o.reporters = append(o.reporters, r)
		return nil
	}
}

// WithTracerProvider 指定 TracerProvider 并启用 span
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) error {
		if tp == nil {
			return errors.New("mediator: tracer provider must not be nil")
		}
		o.tracerProvider = tp
		return nil
	}
}

// WithClock 指定时间源，测试中可传入 clock.NewMock()
func WithClock(c clock.Clock) Option {
	return func(o *options) error {
		if c == nil {
			return errors.New("mediator: clock must not be nil")
		}
		o.clock = c
		return nil
	}
}
