package mediator

import (
	"context"
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/dep2p/go-mediator/internal/core/delivery"
	"github.com/dep2p/go-mediator/internal/core/dispatch"
	"github.com/dep2p/go-mediator/internal/core/handler"
	"github.com/dep2p/go-mediator/internal/core/metrics"
	"github.com/dep2p/go-mediator/internal/core/resource"
	pkgif "github.com/dep2p/go-mediator/pkg/interfaces"
	"github.com/dep2p/go-mediator/pkg/lib/log"
	"github.com/dep2p/go-mediator/pkg/types"
)

var logger = log.Logger("mediator")

// tracerName span 的 instrumentation 名称
const tracerName = "github.com/dep2p/go-mediator"

// ============================================================================
//                              BusBuilder - 总线构建器
// ============================================================================

// BusBuilder 收集资源和处理器，Build 后得到不可变的 Bus
//
// 注册函数不是方法（Go 方法不能带类型参数），统一以构建器为第一个参数：
//
//	b := mediator.NewBuilder()
//	mediator.AppendResource[UserRepository](b, repo)
//	mediator.AddCommandHandler1(b, createUser)
//	mediator.AddEventHandler(b, onUserCreated)
//	bus, err := b.Build()
//
// 构建器可以被多个 goroutine 同时注册，但 Build 只能调用一次。
type BusBuilder struct {
	mu        sync.Mutex
	opts      []Option
	resources *resource.Builder
	commands  *dispatch.CommandTable
	events    *dispatch.EventTable
	built     bool
}

// NewBuilder 创建总线构建器，选项在 Build 时应用
func NewBuilder(opts ...Option) *BusBuilder {
	return &BusBuilder{
		opts:      opts,
		resources: resource.NewBuilder(),
		commands:  dispatch.NewCommandTable(),
		events:    dispatch.NewEventTable(),
	}
}

// With 追加选项
func (b *BusBuilder) With(opts ...Option) *BusBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opts = append(b.opts, opts...)
	return b
}

// mutate 在锁内执行注册，构建后注册会 panic
func (b *BusBuilder) mutate(what string, id types.TypeID, fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.built {
		panic(fmt.Sprintf("mediator: cannot %s %s after Build", what, id))
	}
	fn()
}

// AppendResource 以声明类型 T 为键注册资源
//
// 同一类型重复注册时后者覆盖前者。T 可以是接口类型，
// 处理器必须以完全相同的类型声明依赖才能取到。
func AppendResource[T any](b *BusBuilder, v T) *BusBuilder {
	id := types.TypeFor[T]()
	b.mutate("append resource", id, func() {
		resource.Insert(b.resources, v)
		logger.Debug("注册资源", "type", id.Name(), "count", b.resources.Len())
	})
	return b
}

// addCommand 注册命令处理器，重复注册 panic
func addCommand(b *BusBuilder, h handler.Handler) *BusBuilder {
	id := h.RequestType()
	b.mutate("add command handler for", id, func() {
		b.commands.Register(id, h)
	})
	logger.Debug("注册命令处理器", "request", id.Name(), "response", h.ResponseType().Name(), "deps", len(h.Dependencies()))
	return b
}

// addEvent 追加事件处理器
func addEvent(b *BusBuilder, h handler.Handler) *BusBuilder {
	id := h.RequestType()
	b.mutate("add event handler for", id, func() {
		b.events.Register(id, h)
	})
	logger.Debug("注册事件处理器", "event", id.Name(), "deps", len(h.Dependencies()))
	return b
}

// ============================================================================
//                              Build
// ============================================================================

// Build 应用选项并构建总线
//
// 总线自身以 *Bus 类型加入资源容器，处理器可以声明 *Bus 依赖并在内部
// 再次 Send 或 Publish。构建成功后后台投递循环立即启动。
// 重复调用返回 ErrAlreadyBuilt。
func (b *BusBuilder) Build() (*Bus, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.built {
		return nil, ErrAlreadyBuilt
	}

	o := newOptions()
	if err := o.apply(b.opts); err != nil {
		return nil, fmt.Errorf("mediator: apply options: %w", err)
	}
	bc, err := o.busConfig()
	if err != nil {
		return nil, err
	}
	if o.cfg.Log.Level != "" || o.cfg.Log.Format != "" {
		log.Configure(o.cfg.Log.Level, o.cfg.Log.Format)
	}

	reporter, err := o.reporter(bc.EnableMetrics)
	if err != nil {
		return nil, fmt.Errorf("mediator: register metrics: %w", err)
	}
	clk := o.clock
	if clk == nil {
		clk = clock.New()
	}
	tracer := o.tracer(bc.EnableTracing)

	bus := &Bus{
		commands:     b.commands,
		events:       b.events,
		reporter:     reporter,
		tracer:       tracer,
		clock:        clk,
		closeTimeout: bc.CloseTimeout.Duration(),
	}
	bus.loop = delivery.NewLoop(delivery.NewQueue(bc.QueueCapacity), b.events, delivery.Config{
		MaxConcurrentHandlers: bc.MaxConcurrentHandlers,
		Clock:                 clk,
		Tracer:                tracer,
		Reporter:              reporter,
		OnError:               o.onError,
		OnUnhandled:           o.onUnhandled,
	})

	// 先放入总线再冻结，处理器即可依赖 *Bus
	resource.Insert(b.resources, bus)
	bus.container = b.resources.Build()

	if err := bus.loop.Start(context.Background(), bus.container); err != nil {
		return nil, err
	}
	b.built = true

	logger.Info("总线已构建",
		"commands", b.commands.Len(),
		"events", len(b.events.Types()),
		"eventHandlers", b.events.Total(),
		"resources", bus.container.Len(),
		"queueCapacity", bc.QueueCapacity)
	for _, id := range bus.MissingResources() {
		logger.Warn("处理器依赖的资源未注册，调用时将返回 ErrResourceNotFound", "type", id)
	}
	return bus, nil
}

// reporter 组合 Prometheus 收集器与自定义 reporter
func (o *options) reporter(enableMetrics bool) (pkgif.DispatchReporter, error) {
	reporters := append([]pkgif.DispatchReporter(nil), o.reporters...)
	if enableMetrics {
		reg := o.registerer
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		c, err := metrics.Register(reg, o.namespace)
		if err != nil {
			return nil, err
		}
		reporters = append(reporters, c)
	}
	return metrics.Multi(reporters...), nil
}

// tracer 选择 span 来源：显式 provider，其次全局 provider，否则 noop
func (o *options) tracer(enableTracing bool) trace.Tracer {
	switch {
	case o.tracerProvider != nil:
		return o.tracerProvider.Tracer(tracerName)
	case enableTracing:
		return otel.GetTracerProvider().Tracer(tracerName)
	default:
		return noop.NewTracerProvider().Tracer(tracerName)
	}
}
