package mediator

import (
	"errors"

	"github.com/dep2p/go-mediator/config"
	"github.com/dep2p/go-mediator/internal/core/delivery"
	"github.com/dep2p/go-mediator/internal/core/dispatch"
	"github.com/dep2p/go-mediator/internal/core/handler"
	"github.com/dep2p/go-mediator/pkg/types"
)

// 公共错误定义
var (
	// ────────────────────────────────────────────────────────────────────────
	// 命令分发错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrHandlerNotFound 请求类型没有注册命令处理器
	ErrHandlerNotFound = dispatch.ErrHandlerNotFound

	// ErrResourceNotFound 处理器依赖的资源不存在
	ErrResourceNotFound = handler.ErrResourceNotFound

	// ErrCast 类型擦除与恢复不一致
	ErrCast = handler.ErrCast

	// ErrHandlerPanic 处理器 panic
	ErrHandlerPanic = handler.ErrHandlerPanic

	// ErrHandler 处理器返回了业务错误
	ErrHandler = handler.ErrHandler

	// ────────────────────────────────────────────────────────────────────────
	// 事件发布错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrEventPublishing 事件未能入队
	ErrEventPublishing = delivery.ErrEventPublishing

	// ErrQueueClosed 总线已关闭
	ErrQueueClosed = delivery.ErrQueueClosed

	// ErrNoEventHandler 事件没有处理器，只传给 UnhandledEventHook
	ErrNoEventHandler = delivery.ErrNoEventHandler

	// ────────────────────────────────────────────────────────────────────────
	// 构建错误
	// ────────────────────────────────────────────────────────────────────────

	// ErrAlreadyBuilt BusBuilder 已经构建过
	ErrAlreadyBuilt = errors.New("mediator: bus already built")

	// ErrInvalidConfig 配置无效
	ErrInvalidConfig = config.ErrInvalidConfig
)

// 结构化错误类型
type (
	// CastError 请求或响应类型不匹配
	CastError = handler.CastError

	// ResourceError 缺失的资源
	ResourceError = handler.ResourceError

	// PanicError 处理器 panic 的恢复值
	PanicError = handler.PanicError

	// HandlerError 携带处理器返回的原始错误
	HandlerError = handler.HandlerError

	// PublishError 事件发布失败
	PublishError = delivery.PublishError

	// DeliveryFailure 事件处理器失败，传给 ErrorHook
	DeliveryFailure = types.DeliveryFailure
)

// GetHandlerError 从 err 中取出处理器返回的原始错误
//
// 只有原始错误的动态类型与 E 完全相同时才返回 true；
// 接口类型或其他类型一律返回零值和 false。
//
//	if nf, ok := mediator.GetHandlerError[*UserNotFound](err); ok {
//	    ...
//	}
func GetHandlerError[E any](err error) (E, bool) {
	return handler.As[E](err)
}
