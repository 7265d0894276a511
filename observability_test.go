package mediator_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	mediator "github.com/dep2p/go-mediator"
	"github.com/dep2p/go-mediator/config"
	pkgif "github.com/dep2p/go-mediator/pkg/interfaces"
	"github.com/dep2p/go-mediator/pkg/types"
)

// TestMetrics_Registered 测试 Prometheus 指标
func TestMetrics_Registered(t *testing.T) {
	reg := prometheus.NewRegistry()

	b := newBuilder(mediator.WithMetricsRegisterer(reg), mediator.WithMetricsNamespace("bus"))
	mediator.AddCommandHandler(b, ping)
	mediator.AddEventHandler(b, func(context.Context, UserCreated) error { return nil })
	bus := build(t, b)

	ctx := context.Background()
	_, err := mediator.Send(ctx, bus, Ping{Msg: "m"})
	require.NoError(t, err)
	_, err = mediator.Send(ctx, bus, GetUser{})
	require.Error(t, err)
	require.NoError(t, mediator.Publish(ctx, bus, UserCreated{ID: 1}))
	require.NoError(t, mediator.Publish(ctx, bus, Orphan{}))

	closeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	require.NoError(t, bus.Close(closeCtx))

	count, err := testutil.GatherAndCount(reg, "bus_command_dispatched_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "ok 与 not_found 两个序列")

	count, err = testutil.GatherAndCount(reg, "bus_event_published_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(reg, "bus_event_unhandled_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	t.Log("✅ 命令与事件指标已导出")
}

// TestMetrics_Disabled 测试关闭指标
func TestMetrics_Disabled(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg := config.NewConfig()
	cfg.Bus.EnableMetrics = false

	b := newBuilder(mediator.WithConfig(cfg), mediator.WithMetricsRegisterer(reg))
	mediator.AddCommandHandler(b, ping)
	bus := build(t, b)

	_, err := mediator.Send(context.Background(), bus, Ping{})
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Empty(t, families)

	t.Log("✅ EnableMetrics=false 时不注册指标")
}

// durationReporter 记录命令耗时
type durationReporter struct {
	pkgif.NopReporter

	mu      sync.Mutex
	elapsed []time.Duration
	waits   []time.Duration
}

func (r *durationReporter) CommandDispatched(_ types.TypeID, elapsed time.Duration, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.elapsed = append(r.elapsed, elapsed)
}

func (r *durationReporter) EventDequeued(_ types.TypeID, wait time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.waits = append(r.waits, wait)
}

// TestReporter_WithClock 测试自定义 reporter 与时间源
func TestReporter_WithClock(t *testing.T) {
	mock := clock.NewMock()
	rep := &durationReporter{}

	b := newBuilder(mediator.WithClock(mock), mediator.WithReporter(rep))
	mediator.AppendResource(b, mock)
	mediator.AddCommandHandler1(b, func(_ context.Context, c *clock.Mock, p Ping) (string, error) {
		c.Add(250 * time.Millisecond)
		return p.Msg, nil
	})
	mediator.AddEventHandler(b, func(context.Context, UserCreated) error { return nil })
	bus := build(t, b)

	_, err := mediator.Send(context.Background(), bus, Ping{Msg: "tick"})
	require.NoError(t, err)

	require.NoError(t, mediator.Publish(context.Background(), bus, UserCreated{}))
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, bus.Close(ctx))

	rep.mu.Lock()
	defer rep.mu.Unlock()
	assert.Equal(t, []time.Duration{250 * time.Millisecond}, rep.elapsed)
	assert.Equal(t, []time.Duration{0}, rep.waits)

	t.Log("✅ 耗时按注入的时间源计算")
}

// TestTracing_Spans 测试命令与事件的 span
func TestTracing_Spans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	b := newBuilder(mediator.WithTracerProvider(tp))
	mediator.AddCommandHandler(b, ping)
	mediator.AddEventHandler(b, func(context.Context, UserCreated) error { return nil })
	mediator.AddEventHandler(b, func(context.Context, UserCreated) error { return &UserNotFound{} })
	bus := build(t, b)

	ctx := context.Background()
	_, err := mediator.Send(ctx, bus, Ping{Msg: "trace"})
	require.NoError(t, err)
	_, err = mediator.Send(ctx, bus, GetUser{})
	require.Error(t, err)
	require.NoError(t, mediator.Publish(ctx, bus, UserCreated{ID: 1}))

	closeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	require.NoError(t, bus.Close(closeCtx))

	byName := map[string][]sdktrace.ReadOnlySpan{}
	for _, s := range sr.Ended() {
		byName[s.Name()] = append(byName[s.Name()], s)
	}

	require.Len(t, byName["mediator.send Ping"], 1)
	assert.Equal(t, codes.Ok, byName["mediator.send Ping"][0].Status().Code)

	require.Len(t, byName["mediator.send GetUser"], 1)
	assert.Equal(t, codes.Error, byName["mediator.send GetUser"][0].Status().Code)

	require.Len(t, byName["mediator.publish UserCreated"], 1)
	publish := byName["mediator.publish UserCreated"][0]
	assert.Equal(t, trace.SpanKindProducer, publish.SpanKind())

	handlers := byName["mediator.event UserCreated"]
	require.Len(t, handlers, 2)
	failed := 0
	for _, s := range handlers {
		assert.Equal(t, trace.SpanKindConsumer, s.SpanKind())
		require.Len(t, s.Links(), 1)
		assert.Equal(t, publish.SpanContext().SpanID(), s.Links()[0].SpanContext.SpanID())
		if s.Status().Code == codes.Error {
			failed++
		}
	}
	assert.Equal(t, 1, failed)

	t.Log("✅ span 记录命令、发布与每个事件处理器")
}
