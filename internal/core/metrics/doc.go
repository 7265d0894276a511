// Package metrics 提供分发过程的 Prometheus 指标
//
// Collector 实现 interfaces.DispatchReporter，由 Bus 在 Send、Publish
// 和事件投递过程中调用，同时实现 prometheus.Collector：
//
//	c := metrics.NewCollector("")
//	prometheus.MustRegister(c)
//
// 导出的指标（默认命名空间 mediator）：
//   - command_dispatched_total{request,outcome}
//   - command_duration_seconds{request}
//   - event_published_total{event}
//   - event_handled_total{event,outcome}
//   - event_handler_duration_seconds{event}
//   - event_unhandled_total{event}
//   - queue_wait_seconds
//   - queue_depth
package metrics
