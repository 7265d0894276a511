package types

import "fmt"

// ============================================================================
//                              DeliveryFailure - 事件投递失败
// ============================================================================

// NoHandlerIndex 事件没有处理器时 DeliveryFailure.HandlerIndex 的取值
const NoHandlerIndex = -1

// DeliveryFailure 单个事件处理器的失败记录
//
// 事件错误不会返回给发布方，只通过钩子、日志和指标暴露。
type DeliveryFailure struct {
	// EnvelopeID 信封 ID
	EnvelopeID string

	// Event 事件类型
	Event TypeID

	// HandlerIndex 处理器在注册顺序中的下标；无处理器时为 NoHandlerIndex
	HandlerIndex int

	// Err 失败原因
	Err error
}

// Error 实现 error 接口
func (f *DeliveryFailure) Error() string {
	if f.HandlerIndex == NoHandlerIndex {
		return fmt.Sprintf("event %s (%s): %v", f.Event, f.EnvelopeID, f.Err)
	}
	return fmt.Sprintf("event %s (%s) handler #%d: %v", f.Event, f.EnvelopeID, f.HandlerIndex, f.Err)
}

// Unwrap 返回失败原因
func (f *DeliveryFailure) Unwrap() error {
	return f.Err
}
