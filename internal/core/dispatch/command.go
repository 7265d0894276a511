package dispatch

import (
	"context"
	"fmt"
	"sort"

	"github.com/dep2p/go-mediator/internal/core/handler"
	"github.com/dep2p/go-mediator/internal/core/resource"
	"github.com/dep2p/go-mediator/pkg/lib/log"
	"github.com/dep2p/go-mediator/pkg/types"
)

var logger = log.Logger("core/dispatch")

// ============================================================================
//                              CommandTable - 命令分发表
// ============================================================================

// CommandTable 命令分发表
type CommandTable struct {
	handlers map[types.TypeID]handler.Handler
}

// NewCommandTable 创建命令分发表
func NewCommandTable() *CommandTable {
	return &CommandTable{handlers: make(map[types.TypeID]handler.Handler)}
}

// Register 注册命令处理器
//
// 同一请求类型重复注册属于接线错误，立即 panic，不会等到调用时才暴露。
func (t *CommandTable) Register(id types.TypeID, h handler.Handler) {
	if _, exists := t.handlers[id]; exists {
		panic(fmt.Sprintf("dispatch: route already exists for type %s", id))
	}
	t.handlers[id] = h
	logger.Debug("命令处理器已注册", "request", id, "response", h.ResponseType(), "deps", len(h.Dependencies()))
}

// Lookup 查找命令处理器
func (t *CommandTable) Lookup(id types.TypeID) (handler.Handler, bool) {
	h, ok := t.handlers[id]
	return h, ok
}

// Dispatch 查找唯一处理器并在当前 goroutine 上调用
func (t *CommandTable) Dispatch(ctx context.Context, c *resource.Container, id types.TypeID, req any) (any, error) {
	h, ok := t.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHandlerNotFound, id)
	}
	return h.Handle(ctx, c, req)
}

// Len 返回已注册的命令类型数
func (t *CommandTable) Len() int {
	return len(t.handlers)
}

// Types 返回所有已注册的请求类型，按类型名排序
func (t *CommandTable) Types() []types.TypeID {
	return sortedKeys(t.handlers)
}

func sortedKeys[V any](m map[types.TypeID]V) []types.TypeID {
	ids := make([]types.TypeID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
