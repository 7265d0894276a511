package delivery

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/dep2p/go-mediator/internal/core/dispatch"
	"github.com/dep2p/go-mediator/internal/core/handler"
	"github.com/dep2p/go-mediator/internal/core/resource"
	pkgif "github.com/dep2p/go-mediator/pkg/interfaces"
	"github.com/dep2p/go-mediator/pkg/lib/log"
	"github.com/dep2p/go-mediator/pkg/types"
)

var logger = log.Logger("core/delivery")

// ============================================================================
//                              配置
// ============================================================================

// Config 投递循环配置
type Config struct {
	// MaxConcurrentHandlers 单个信封同时运行的处理器上限，0 表示不限
	MaxConcurrentHandlers int

	// Clock 时间源，默认真实时钟
	Clock clock.Clock

	// Tracer 为每次处理器调用创建 span，默认 noop
	Tracer trace.Tracer

	// Reporter 指标上报，默认丢弃
	Reporter pkgif.DispatchReporter

	// OnError 处理器失败钩子
	OnError pkgif.ErrorHook

	// OnUnhandled 事件无处理器钩子
	OnUnhandled pkgif.UnhandledEventHook
}

func (c *Config) applyDefaults() {
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Tracer == nil {
		c.Tracer = noop.NewTracerProvider().Tracer("")
	}
	if c.Reporter == nil {
		c.Reporter = pkgif.NopReporter{}
	}
}

// ============================================================================
//                              Loop - 投递循环
// ============================================================================

// Loop 后台投递循环
type Loop struct {
	queue  *Queue
	events *dispatch.EventTable
	cfg    Config

	// 以下字段在 Start 中设置，之后只读
	ctx       context.Context
	container *resource.Container

	started atomic.Bool
	done    chan struct{}

	// 统计
	published       atomic.Uint64
	delivered       atomic.Uint64
	unhandled       atomic.Uint64
	handlerRuns     atomic.Uint64
	handlerFailures atomic.Uint64
}

// NewLoop 创建投递循环
func NewLoop(queue *Queue, events *dispatch.EventTable, cfg Config) *Loop {
	cfg.applyDefaults()
	return &Loop{
		queue:  queue,
		events: events,
		cfg:    cfg,
		done:   make(chan struct{}),
	}
}

// Start 启动后台 goroutine
//
// ctx 只提供值，其取消不会中断投递；停止循环使用 Stop。
// c 为所有事件处理器共享的资源容器。
func (l *Loop) Start(ctx context.Context, c *resource.Container) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	l.ctx = context.WithoutCancel(ctx)
	l.container = c

	go l.run()

	logger.Info("事件投递循环已启动",
		"queueCapacity", l.queue.Cap(),
		"maxConcurrentHandlers", l.cfg.MaxConcurrentHandlers)
	return nil
}

// Stop 关闭队列并等待已入队的信封全部投递完成
//
// ctx 结束时提前返回 ctx 错误，剩余信封继续在后台投递。重复调用安全。
func (l *Loop) Stop(ctx context.Context) error {
	l.queue.Close()

	if !l.started.Load() {
		return nil
	}

	select {
	case <-l.done:
		return nil
	default:
	}

	select {
	case <-l.done:
		return nil
	case <-ctx.Done():
		logger.Warn("等待事件投递完成超时", "pending", l.queue.Len(), "error", ctx.Err())
		return fmt.Errorf("delivery: stop: %w", ctx.Err())
	}
}

// Done 循环退出后关闭
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Stats 返回投递统计快照
func (l *Loop) Stats() types.DeliveryStats {
	return types.DeliveryStats{
		Published:       l.published.Load(),
		Delivered:       l.delivered.Load(),
		Unhandled:       l.unhandled.Load(),
		HandlerRuns:     l.handlerRuns.Load(),
		HandlerFailures: l.handlerFailures.Load(),
		QueueDepth:      l.queue.Len(),
		QueueCapacity:   l.queue.Cap(),
	}
}

// Publish 把事件放入队列
//
// 事件被复制进信封后立即返回，不等待投递。
func Publish[E any](ctx context.Context, l *Loop, evt E) error {
	env := NewEnvelope(evt, l.cfg.Clock.Now(), trace.SpanContextFromContext(ctx))
	if err := l.queue.Enqueue(ctx, env); err != nil {
		logger.Debug("事件入队失败", "event", env.Type, "error", err)
		return err
	}

	l.published.Add(1)
	l.cfg.Reporter.EventPublished(env.Type)
	l.cfg.Reporter.QueueDepth(l.queue.Len())
	logger.Debug("事件已入队", "event", env.Type, "envelope", env.ID)
	return nil
}

// run 按 FIFO 逐个投递，队列关闭且取空后退出
func (l *Loop) run() {
	defer close(l.done)

	for env := range l.queue.Out() {
		l.deliver(env)
	}

	logger.Info("事件投递循环已停止", "delivered", l.delivered.Load())
}

// deliver 并发执行信封的所有处理器，全部结束后返回
func (l *Loop) deliver(env *Envelope) {
	l.cfg.Reporter.EventDequeued(env.Type, l.cfg.Clock.Since(env.EnqueuedAt))
	l.cfg.Reporter.QueueDepth(l.queue.Len())
	defer l.delivered.Add(1)

	handlers := l.events.Lookup(env.Type)
	if len(handlers) == 0 {
		l.unhandled.Add(1)
		l.cfg.Reporter.EventUnhandled(env.Type)
		logger.Debug("事件没有处理器，已丢弃", "event", env.Type, "envelope", env.ID)
		if l.cfg.OnUnhandled != nil {
			l.callHook(l.ctx, l.cfg.OnUnhandled, &types.DeliveryFailure{
				EnvelopeID:   env.ID,
				Event:        env.Type,
				HandlerIndex: types.NoHandlerIndex,
				Err:          fmt.Errorf("%w: %s", ErrNoEventHandler, env.Type),
			})
		}
		return
	}

	var g errgroup.Group
	if l.cfg.MaxConcurrentHandlers > 0 {
		g.SetLimit(l.cfg.MaxConcurrentHandlers)
	}

	// 每个处理器写自己的槽位
	errs := make([]error, len(handlers))
	for i, h := range handlers {
		g.Go(func() error {
			errs[i] = l.invoke(env, i, h)
			return nil
		})
	}
	_ = g.Wait()

	if err := multierr.Combine(errs...); err != nil {
		logger.Warn("事件处理器失败",
			"event", env.Type,
			"envelope", env.ID,
			"failed", len(multierr.Errors(err)),
			"handlers", len(handlers),
			"error", err)
		return
	}
	logger.Debug("事件已投递", "event", env.Type, "envelope", env.ID, "handlers", len(handlers))
}

// invoke 执行单个处理器
func (l *Loop) invoke(env *Envelope, index int, h handler.Handler) (err error) {
	opts := []trace.SpanStartOption{
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("mediator.event", env.Type.String()),
			attribute.String("mediator.envelope_id", env.ID),
			attribute.Int("mediator.handler_index", index),
		),
	}
	if env.Origin.IsValid() {
		opts = append(opts, trace.WithLinks(trace.Link{SpanContext: env.Origin}))
	}
	ctx, span := l.cfg.Tracer.Start(l.ctx, "mediator.event "+env.Type.Name(), opts...)
	defer span.End()

	start := l.cfg.Clock.Now()
	defer func() {
		if rec := recover(); rec != nil {
			err = &handler.PanicError{Request: env.Type, Value: rec, Stack: debug.Stack()}
		}
		err = l.finish(ctx, span, env, index, l.cfg.Clock.Since(start), err)
	}()

	_, err = h.Handle(ctx, l.container, env.Payload())
	return err
}

// finish 记录单个处理器的结果，失败时返回 *types.DeliveryFailure
func (l *Loop) finish(ctx context.Context, span trace.Span, env *Envelope, index int, elapsed time.Duration, err error) error {
	l.handlerRuns.Add(1)
	l.cfg.Reporter.EventHandled(env.Type, elapsed, err)

	if err == nil {
		span.SetStatus(codes.Ok, "")
		return nil
	}

	l.handlerFailures.Add(1)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	failure := &types.DeliveryFailure{
		EnvelopeID:   env.ID,
		Event:        env.Type,
		HandlerIndex: index,
		Err:          err,
	}
	if l.cfg.OnError != nil {
		l.callHook(ctx, l.cfg.OnError, failure)
	}
	return failure
}

// callHook 调用钩子，钩子 panic 不影响投递循环
func (l *Loop) callHook(ctx context.Context, hook func(context.Context, *types.DeliveryFailure), failure *types.DeliveryFailure) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("投递钩子 panic", "event", failure.Event, "panic", rec)
		}
	}()
	hook(ctx, failure)
}
