package resource

import (
	"sort"
	"sync"

	"github.com/dep2p/go-mediator/pkg/lib/log"
	"github.com/dep2p/go-mediator/pkg/types"
)

var logger = log.Logger("core/resource")

// ============================================================================
//                              Builder - 构建器
// ============================================================================

// Builder 资源构建器
//
// 同一类型重复写入时后写覆盖前写，不报错。
type Builder struct {
	mu      sync.Mutex
	entries map[types.TypeID]any
}

// NewBuilder 创建资源构建器
func NewBuilder() *Builder {
	return &Builder{entries: make(map[types.TypeID]any)}
}

// Insert 以类型参数 T 为键写入资源
func Insert[T any](b *Builder, v T) {
	b.put(types.TypeFor[T](), v)
}

func (b *Builder) put(id types.TypeID, v any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.entries[id]; exists {
		logger.Debug("资源被覆盖", "type", id)
	}
	b.entries[id] = v
}

// Len 返回已写入的资源类型数
func (b *Builder) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Build 冻结当前内容，返回只读容器
//
// 返回的容器持有独立副本，之后对 Builder 的写入不影响它。
func (b *Builder) Build() *Container {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries := make(map[types.TypeID]any, len(b.entries))
	for id, v := range b.entries {
		entries[id] = v
	}
	logger.Debug("资源容器已冻结", "count", len(entries))
	return &Container{entries: entries}
}

// ============================================================================
//                              Container - 只读容器
// ============================================================================

// Container 只读资源容器
//
// nil 容器视为空容器。
type Container struct {
	entries map[types.TypeID]any
}

// Lookup 按类型标识精确查找资源
func (c *Container) Lookup(id types.TypeID) (any, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.entries[id]
	return v, ok
}

// Get 按类型参数 T 精确查找资源
//
// 不做子类型或接口匹配：以具体类型写入的资源不能以接口类型取出。
func Get[T any](c *Container) (T, bool) {
	var zero T
	v, ok := c.Lookup(types.TypeFor[T]())
	if !ok {
		return zero, false
	}
	if v == nil {
		// 以接口类型写入的 nil 值
		return zero, true
	}
	t, ok := v.(T)
	return t, ok
}

// Contains 检查是否存在指定类型的资源
func (c *Container) Contains(id types.TypeID) bool {
	_, ok := c.Lookup(id)
	return ok
}

// Len 返回资源类型数
func (c *Container) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Types 返回所有资源类型，按类型名排序
func (c *Container) Types() []types.TypeID {
	if c == nil {
		return nil
	}
	ids := make([]types.TypeID, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
