package delivery

import (
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/dep2p/go-mediator/pkg/types"
)

// ============================================================================
//                              Envelope - 队列信封
// ============================================================================

// Cloner 自定义复制语义的事件
//
// 事件含切片、map 等引用字段时实现 Clone，返回与原值不共享可变状态的副本。
// 值接收者与指针接收者的 Clone 都会被识别。未实现时使用 Go 的值复制，
// 指针类型的事件此时与发布方共享同一对象。
type Cloner[E any] interface {
	Clone() E
}

// Envelope 排队中的事件
//
// 构造时已与发布方的值脱离；每次调用 Payload 得到一份独立副本，
// 同一信封的多个处理器互不干扰。
type Envelope struct {
	// ID 信封唯一标识（UUIDv7，按时间有序）
	ID string

	// Type 事件类型
	Type types.TypeID

	// EnqueuedAt 入队时间
	EnqueuedAt time.Time

	// Origin 发布方的 span 上下文，投递时作为链接
	Origin trace.SpanContext

	payload func() any
}

// NewEnvelope 构造信封
func NewEnvelope[E any](evt E, at time.Time, origin trace.SpanContext) *Envelope {
	env := &Envelope{
		ID:         newEnvelopeID(),
		Type:       types.TypeFor[E](),
		EnqueuedAt: at,
		Origin:     origin,
	}

	if clone, ok := clonerFor[E](evt); ok {
		detached := clone(evt)
		env.payload = func() any { return clone(detached) }
		return env
	}

	detached := evt
	env.payload = func() any { return detached }
	return env
}

// clonerFor 查找 E 或 *E 上的 Clone 方法
func clonerFor[E any](evt E) (func(E) E, bool) {
	if _, ok := any(evt).(Cloner[E]); ok {
		return func(v E) E { return any(v).(Cloner[E]).Clone() }, true
	}
	if _, ok := any(&evt).(Cloner[E]); ok {
		return func(v E) E { return any(&v).(Cloner[E]).Clone() }, true
	}
	return nil, false
}

// Payload 返回事件的一份独立副本
func (e *Envelope) Payload() any {
	return e.payload()
}

// newEnvelopeID 生成信封 ID
func newEnvelopeID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
