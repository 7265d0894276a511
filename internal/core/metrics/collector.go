package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-mediator/internal/core/delivery"
	"github.com/dep2p/go-mediator/internal/core/dispatch"
	"github.com/dep2p/go-mediator/internal/core/handler"
	pkgif "github.com/dep2p/go-mediator/pkg/interfaces"
	"github.com/dep2p/go-mediator/pkg/types"
)

// DefaultNamespace 默认指标命名空间
const DefaultNamespace = "mediator"

// 结果标签取值
const (
	OutcomeOK            = "ok"
	OutcomeError         = "error"
	OutcomeNotFound      = "not_found"
	OutcomeMissingDep    = "missing_resource"
	OutcomePanic         = "panic"
	OutcomeCast          = "cast"
	OutcomePublishFailed = "publish_failed"
)

// ============================================================================
//                              Collector - Prometheus 指标
// ============================================================================

// Collector 基于 Prometheus 的 DispatchReporter 实现
//
// 自身实现 prometheus.Collector，注册一次即可导出全部指标。
type Collector struct {
	commands        *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	published       *prometheus.CounterVec
	handled         *prometheus.CounterVec
	handlerDuration *prometheus.HistogramVec
	unhandled       *prometheus.CounterVec
	queueWait       prometheus.Histogram
	queueDepth      prometheus.Gauge
}

var (
	_ pkgif.DispatchReporter = (*Collector)(nil)
	_ prometheus.Collector   = (*Collector)(nil)
)

// NewCollector 创建指标收集器，namespace 为空时使用 DefaultNamespace
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Collector{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "command",
			Name:      "dispatched_total",
			Help:      "Commands dispatched through Send, by request type and outcome.",
		}, []string{"request", "outcome"}),
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "command",
			Name:      "duration_seconds",
			Help:      "Time spent in Send, by request type.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"request"}),
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "event",
			Name:      "published_total",
			Help:      "Events enqueued for delivery, by event type.",
		}, []string{"event"}),
		handled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "event",
			Name:      "handled_total",
			Help:      "Event handler invocations, by event type and outcome.",
		}, []string{"event", "outcome"}),
		handlerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "event",
			Name:      "handler_duration_seconds",
			Help:      "Time spent in a single event handler, by event type.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"event"}),
		unhandled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "event",
			Name:      "unhandled_total",
			Help:      "Events dropped because no handler was registered.",
		}, []string{"event"}),
		queueWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "wait_seconds",
			Help:      "Time an envelope spent in the delivery queue.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "depth",
			Help:      "Envelopes currently waiting in the delivery queue.",
		}),
	}
}

// Describe 实现 prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, col := range c.collectors() {
		col.Describe(ch)
	}
}

// Collect 实现 prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, col := range c.collectors() {
		col.Collect(ch)
	}
}

func (c *Collector) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		c.commands, c.commandDuration,
		c.published, c.handled, c.handlerDuration, c.unhandled,
		c.queueWait, c.queueDepth,
	}
}

// CommandDispatched 实现 DispatchReporter
func (c *Collector) CommandDispatched(request types.TypeID, elapsed time.Duration, err error) {
	c.commands.WithLabelValues(request.String(), Outcome(err)).Inc()
	c.commandDuration.WithLabelValues(request.String()).Observe(elapsed.Seconds())
}

// EventPublished 实现 DispatchReporter
func (c *Collector) EventPublished(event types.TypeID) {
	c.published.WithLabelValues(event.String()).Inc()
}

// EventDequeued 实现 DispatchReporter
func (c *Collector) EventDequeued(_ types.TypeID, wait time.Duration) {
	c.queueWait.Observe(wait.Seconds())
}

// EventHandled 实现 DispatchReporter
func (c *Collector) EventHandled(event types.TypeID, elapsed time.Duration, err error) {
	c.handled.WithLabelValues(event.String(), Outcome(err)).Inc()
	c.handlerDuration.WithLabelValues(event.String()).Observe(elapsed.Seconds())
}

// EventUnhandled 实现 DispatchReporter
func (c *Collector) EventUnhandled(event types.TypeID) {
	c.unhandled.WithLabelValues(event.String()).Inc()
}

// QueueDepth 实现 DispatchReporter
func (c *Collector) QueueDepth(depth int) {
	c.queueDepth.Set(float64(depth))
}

// Outcome 把分发错误归类为结果标签
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, dispatch.ErrHandlerNotFound):
		return OutcomeNotFound
	case errors.Is(err, handler.ErrResourceNotFound):
		return OutcomeMissingDep
	case errors.Is(err, handler.ErrHandlerPanic):
		return OutcomePanic
	case errors.Is(err, handler.ErrCast):
		return OutcomeCast
	case errors.Is(err, delivery.ErrEventPublishing):
		return OutcomePublishFailed
	default:
		return OutcomeError
	}
}
