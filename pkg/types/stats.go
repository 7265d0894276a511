package types

// ============================================================================
//                              DeliveryStats - 事件投递统计
// ============================================================================

// DeliveryStats 事件投递统计信息
//
// 由后台投递循环维护，通过 Bus.Stats() 读取快照。
type DeliveryStats struct {
	// Published 已入队的事件数
	Published uint64

	// Delivered 已完成投递的事件数（含无处理器的事件）
	Delivered uint64

	// Unhandled 无处理器而被丢弃的事件数
	Unhandled uint64

	// HandlerRuns 事件处理器执行次数
	HandlerRuns uint64

	// HandlerFailures 事件处理器失败次数
	HandlerFailures uint64

	// QueueDepth 当前排队中的事件数
	QueueDepth int

	// QueueCapacity 队列容量
	QueueCapacity int
}

// InFlight 返回已入队但尚未完成投递的事件数
func (s DeliveryStats) InFlight() uint64 {
	if s.Delivered >= s.Published {
		return 0
	}
	return s.Published - s.Delivered
}

// FailureRate 返回处理器失败率
func (s DeliveryStats) FailureRate() float64 {
	if s.HandlerRuns == 0 {
		return 0
	}
	return float64(s.HandlerFailures) / float64(s.HandlerRuns)
}
