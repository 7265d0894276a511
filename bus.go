package mediator

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dep2p/go-mediator/internal/core/delivery"
	"github.com/dep2p/go-mediator/internal/core/dispatch"
	"github.com/dep2p/go-mediator/internal/core/handler"
	"github.com/dep2p/go-mediator/internal/core/resource"
	pkgif "github.com/dep2p/go-mediator/pkg/interfaces"
	"github.com/dep2p/go-mediator/pkg/types"
)

// ============================================================================
//                              Bus - 命令/事件总线
// ============================================================================

// Bus 进程内命令/事件总线
//
// 由 BusBuilder.Build 创建，之后路由表与资源容器都不再变化，
// Send 与 Publish 可以被任意多个 goroutine 并发调用。
type Bus struct {
	commands  *dispatch.CommandTable
	events    *dispatch.EventTable
	container *resource.Container
	loop      *delivery.Loop

	reporter     pkgif.DispatchReporter
	tracer       trace.Tracer
	clock        clock.Clock
	closeTimeout time.Duration

	closing atomic.Bool
	closed  atomic.Bool
}

// Send 在调用方 goroutine 上执行命令处理器并返回其响应
//
// 返回的错误：
//   - ErrHandlerNotFound: 请求类型没有处理器
//   - ErrResourceNotFound: 处理器依赖的资源缺失（*ResourceError）
//   - ErrCast: 类型擦除与恢复不一致（*CastError）
//   - ErrHandlerPanic: 处理器 panic（*PanicError）
//   - *HandlerError: 处理器返回的业务错误，可用 GetHandlerError 取回
func Send[Req Command[Res], Res any](ctx context.Context, b *Bus, req Req) (Res, error) {
	var zero Res
	id := types.TypeFor[Req]()

	ctx, span := b.tracer.Start(ctx, "mediator.send "+id.Name(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("mediator.request", id.String())))
	defer span.End()

	start := b.clock.Now()
	res, err := b.commands.Dispatch(ctx, b.container, id, req)
	var out Res
	if err == nil {
		out, err = response[Res](res)
	}
	b.reporter.CommandDispatched(id, b.clock.Since(start), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Debug("命令处理失败", "request", id.Name(), "error", err)
		return zero, err
	}
	span.SetStatus(codes.Ok, "")
	return out, nil
}

// response 把擦除的响应恢复为 Res，nil 视为零值
func response[Res any](res any) (Res, error) {
	var zero Res
	if res == nil {
		return zero, nil
	}
	out, ok := res.(Res)
	if !ok {
		return zero, &handler.CastError{Expected: types.TypeFor[Res](), Actual: types.TypeOf(res)}
	}
	return out, nil
}

// Publish 把事件复制进信封并放入投递队列
//
// 入队后立即返回，不等待处理器执行。队列满时阻塞，直到有空位或 ctx 结束；
// 总线关闭后返回 ErrEventPublishing。
//
// 事件以值复制进信封，实现 Clone（值或指针接收者）的事件改用 Clone；
// 未实现 Clone 的指针类型事件与发布方共享同一对象。
//
// 事件处理器内再次 Publish 时，若队列已满会阻塞投递循环本身，直到 ctx 结束
// 或总线开始关闭（此时返回 ErrEventPublishing），这种场景应传入带超时的 ctx。
func Publish[E Event](ctx context.Context, b *Bus, evt E) error {
	id := types.TypeFor[E]()

	ctx, span := b.tracer.Start(ctx, "mediator.publish "+id.Name(),
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(attribute.String("mediator.event", id.String())))
	defer span.End()

	if err := delivery.Publish(ctx, b.loop, evt); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Close 停止接收事件，并等待已入队的事件投递完成
//
// ctx 结束时返回包装 ctx 错误的 error，剩余事件继续在后台投递，
// 可以再次调用 Close 继续等待。Close 之后 Send 仍然可用，
// Publish 返回 ErrEventPublishing。
func (b *Bus) Close(ctx context.Context) error {
	if b.closing.CompareAndSwap(false, true) {
		logger.Info("正在关闭总线", "pending", b.loop.Stats().QueueDepth)
	}
	if err := b.loop.Stop(ctx); err != nil {
		return fmt.Errorf("mediator: close: %w", err)
	}
	if b.closed.CompareAndSwap(false, true) {
		logger.Info("总线已关闭", "delivered", b.loop.Stats().Delivered)
	}
	return nil
}

// Done 投递循环退出后关闭
func (b *Bus) Done() <-chan struct{} {
	return b.loop.Done()
}

// Stats 返回事件投递统计快照
func (b *Bus) Stats() types.DeliveryStats {
	return b.loop.Stats()
}

// CommandTypes 返回已注册命令的请求类型
func (b *Bus) CommandTypes() []types.TypeID {
	return b.commands.Types()
}

// EventTypes 返回已注册处理器的事件类型
func (b *Bus) EventTypes() []types.TypeID {
	return b.events.Types()
}

// EventHandlerCount 返回事件类型的处理器数量
func (b *Bus) EventHandlerCount(id types.TypeID) int {
	return b.events.Len(id)
}

// ResourceTypes 返回资源容器中的类型（包含 *Bus 自身）
func (b *Bus) ResourceTypes() []types.TypeID {
	return b.container.Types()
}

// MissingResources 返回处理器声明了但容器中没有的依赖类型，按类型名排序
func (b *Bus) MissingResources() []types.TypeID {
	seen := make(map[types.TypeID]struct{})
	var missing []types.TypeID
	check := func(h handler.Handler) {
		for _, dep := range h.Dependencies() {
			if _, dup := seen[dep]; dup || b.container.Contains(dep) {
				continue
			}
			seen[dep] = struct{}{}
			missing = append(missing, dep)
		}
	}

	for _, id := range b.commands.Types() {
		if h, ok := b.commands.Lookup(id); ok {
			check(h)
		}
	}
	for _, id := range b.events.Types() {
		for _, h := range b.events.Lookup(id) {
			check(h)
		}
	}

	sort.Slice(missing, func(i, j int) bool { return missing[i].String() < missing[j].String() })
	return missing
}
