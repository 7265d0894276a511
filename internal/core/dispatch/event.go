package dispatch

import (
	"github.com/dep2p/go-mediator/internal/core/handler"
	"github.com/dep2p/go-mediator/pkg/types"
)

// ============================================================================
//                              EventTable - 事件分发表
// ============================================================================

// EventTable 事件分发表
//
// 同一事件类型可注册多个处理器，保留注册顺序；执行时并发，不依赖该顺序。
type EventTable struct {
	handlers map[types.TypeID][]handler.Handler
	total    int
}

// NewEventTable 创建事件分发表
func NewEventTable() *EventTable {
	return &EventTable{handlers: make(map[types.TypeID][]handler.Handler)}
}

// Register 追加事件处理器
func (t *EventTable) Register(id types.TypeID, h handler.Handler) {
	t.handlers[id] = append(t.handlers[id], h)
	t.total++
	logger.Debug("事件处理器已注册", "event", id, "index", len(t.handlers[id])-1)
}

// Lookup 返回事件类型的处理器列表，可能为空
//
// 返回的切片与表共享底层数组，调用方不得修改。
func (t *EventTable) Lookup(id types.TypeID) []handler.Handler {
	return t.handlers[id]
}

// Len 返回事件类型的处理器数量
func (t *EventTable) Len(id types.TypeID) int {
	return len(t.handlers[id])
}

// Total 返回所有事件处理器的总数
func (t *EventTable) Total() int {
	return t.total
}

// Types 返回至少有一个处理器的事件类型，按类型名排序
func (t *EventTable) Types() []types.TypeID {
	return sortedKeys(t.handlers)
}
