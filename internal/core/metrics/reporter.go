package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	pkgif "github.com/dep2p/go-mediator/pkg/interfaces"
	"github.com/dep2p/go-mediator/pkg/lib/log"
	"github.com/dep2p/go-mediator/pkg/types"
)

var logger = log.Logger("core/metrics")

// ============================================================================
//                              注册
// ============================================================================

// Register 创建收集器并注册到 reg
//
// 同一命名空间的收集器已经注册过时复用已有实例，
// 多个总线共享同一个注册器时指标累加到一起。
func Register(reg prometheus.Registerer, namespace string) (*Collector, error) {
	c := NewCollector(namespace)
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*Collector); ok {
				logger.Debug("复用已注册的指标收集器", "namespace", namespace)
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

// ============================================================================
//                              Multi - 扇出上报
// ============================================================================

// Multi 把每次上报转发给所有 reporter
//
// 没有 reporter 时返回 NopReporter，只有一个时直接返回它。
func Multi(reporters ...pkgif.DispatchReporter) pkgif.DispatchReporter {
	out := make(multi, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			out = append(out, r)
		}
	}
	switch len(out) {
	case 0:
		return pkgif.NopReporter{}
	case 1:
		return out[0]
	}
	return out
}

type multi []pkgif.DispatchReporter

func (m multi) CommandDispatched(request types.TypeID, elapsed time.Duration, err error) {
	for _, r := range m {
		r.CommandDispatched(request, elapsed, err)
	}
}

func (m multi) EventPublished(event types.TypeID) {
	for _, r := range m {
		r.EventPublished(event)
	}
}

func (m multi) EventDequeued(event types.TypeID, wait time.Duration) {
	for _, r := range m {
		r.EventDequeued(event, wait)
	}
}

func (m multi) EventHandled(event types.TypeID, elapsed time.Duration, err error) {
	for _, r := range m {
		r.EventHandled(event, elapsed, err)
	}
}

func (m multi) EventUnhandled(event types.TypeID) {
	for _, r := range m {
		r.EventUnhandled(event)
	}
}

func (m multi) QueueDepth(depth int) {
	for _, r := range m {
		r.QueueDepth(depth)
	}
}
