package delivery

import (
	"context"
	"sync"
)

// ============================================================================
//                              Queue - 有界信封队列
// ============================================================================

// DefaultQueueCapacity 默认队列容量
const DefaultQueueCapacity = 1024

// Queue 有界 FIFO 信封队列
//
// 基于带缓冲的 channel。满时 Enqueue 阻塞（背压），关闭后 Enqueue 失败；
// 关闭前已入队的信封仍可被取出。
type Queue struct {
	// mu 读锁覆盖整个入队过程，写锁用于关闭，
	// 保证 close(ch) 时没有进行中的发送
	mu     sync.RWMutex
	ch     chan *Envelope
	closed bool

	// closing 先于写锁关闭，唤醒阻塞中的 Enqueue 使其释放读锁
	closing     chan struct{}
	closingOnce sync.Once
}

// NewQueue 创建队列，capacity <= 0 时使用默认容量
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Queue{
		ch:      make(chan *Envelope, capacity),
		closing: make(chan struct{}),
	}
}

// Enqueue 入队
//
// 队列满时阻塞直到有空位或 ctx 结束。
func (q *Queue) Enqueue(ctx context.Context, env *Envelope) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	select {
	case <-q.closing:
		return &PublishError{Event: env.Type, Cause: ErrQueueClosed}
	default:
	}
	if q.closed {
		return &PublishError{Event: env.Type, Cause: ErrQueueClosed}
	}

	// 有空位时不受已取消的 ctx 影响
	select {
	case q.ch <- env:
		return nil
	default:
	}

	select {
	case q.ch <- env:
		return nil
	case <-ctx.Done():
		return &PublishError{Event: env.Type, Cause: ctx.Err()}
	case <-q.closing:
		return &PublishError{Event: env.Type, Cause: ErrQueueClosed}
	}
}

// Close 关闭队列，重复调用无副作用
//
// 因队列满而阻塞的 Enqueue 立即返回 ErrQueueClosed，Close 不会等待消费方腾出空位。
func (q *Queue) Close() {
	q.closingOnce.Do(func() { close(q.closing) })

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
}

// Closed 检查队列是否已关闭
func (q *Queue) Closed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

// Out 返回出队 channel，关闭且取空后结束
func (q *Queue) Out() <-chan *Envelope {
	return q.ch
}

// Len 返回排队中的信封数
func (q *Queue) Len() int {
	return len(q.ch)
}

// Cap 返回队列容量
func (q *Queue) Cap() int {
	return cap(q.ch)
}
