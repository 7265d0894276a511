package delivery

import (
	"errors"
	"fmt"

	"github.com/dep2p/go-mediator/pkg/types"
)

// ============================================================================
//                              错误定义
// ============================================================================

var (
	// ErrEventPublishing 事件未能入队
	ErrEventPublishing = errors.New("delivery: event publishing failed")

	// ErrQueueClosed 队列已关闭
	ErrQueueClosed = errors.New("delivery: queue closed")

	// ErrNoEventHandler 事件没有注册处理器
	//
	// 只上报给钩子，不返回给发布方。
	ErrNoEventHandler = errors.New("delivery: no event handler registered")

	// ErrAlreadyStarted 投递循环已启动
	ErrAlreadyStarted = errors.New("delivery: loop already started")
)

// PublishError 入队失败
//
// errors.Is(err, ErrEventPublishing) 恒成立，Cause 为具体原因
// （ErrQueueClosed 或 ctx 错误）。
type PublishError struct {
	Event types.TypeID
	Cause error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrEventPublishing, e.Event, e.Cause)
}

func (e *PublishError) Unwrap() error {
	return e.Cause
}

// Is 使 errors.Is(err, ErrEventPublishing) 成立
func (e *PublishError) Is(target error) bool {
	return target == ErrEventPublishing
}
