package interfaces

import (
	"context"
	"time"

	"github.com/dep2p/go-mediator/pkg/types"
)

// ============================================================================
//                              DispatchReporter - 分发指标契约
// ============================================================================

// DispatchReporter 分发过程的指标上报接口
//
// 实现必须并发安全：命令在调用方 goroutine 上报，
// 事件在投递循环及其派生的 goroutine 上报。
type DispatchReporter interface {
	// CommandDispatched 一次 Send 完成
	CommandDispatched(request types.TypeID, elapsed time.Duration, err error)

	// EventPublished 事件入队
	EventPublished(event types.TypeID)

	// EventDequeued 事件出队，wait 为排队时长
	EventDequeued(event types.TypeID, wait time.Duration)

	// EventHandled 单个事件处理器执行完成
	EventHandled(event types.TypeID, elapsed time.Duration, err error)

	// EventUnhandled 事件没有处理器
	EventUnhandled(event types.TypeID)

	// QueueDepth 当前队列深度
	QueueDepth(depth int)
}

// ============================================================================
//                              钩子
// ============================================================================

// ErrorHook 事件处理器失败钩子
//
// 在处理器所在的 goroutine 上同步调用，不得阻塞。
type ErrorHook func(ctx context.Context, failure *types.DeliveryFailure)

// UnhandledEventHook 事件没有处理器时的钩子
//
// failure.Err 包装 ErrNoEventHandler，HandlerIndex 为 types.NoHandlerIndex。
type UnhandledEventHook func(ctx context.Context, failure *types.DeliveryFailure)

// NopReporter 丢弃所有指标的 DispatchReporter
type NopReporter struct{}

var _ DispatchReporter = NopReporter{}

func (NopReporter) CommandDispatched(types.TypeID, time.Duration, error) {}
func (NopReporter) EventPublished(types.TypeID)                         {}
func (NopReporter) EventDequeued(types.TypeID, time.Duration)           {}
func (NopReporter) EventHandled(types.TypeID, time.Duration, error)     {}
func (NopReporter) EventUnhandled(types.TypeID)                         {}
func (NopReporter) QueueDepth(int)                                      {}
