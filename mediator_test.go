package mediator_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mediator "github.com/dep2p/go-mediator"
	"github.com/dep2p/go-mediator/pkg/types"
)

// ============================================================================
//                              测试消息
// ============================================================================

type Ping struct {
	mediator.CommandBase[string]
	Msg string
}

type GetUser struct {
	mediator.CommandBase[*User]
	ID int
}

type CreateUser struct {
	mediator.CommandBase[int]
	Name string
}

type ValidateUser struct {
	mediator.CommandBase[bool]
	Name string
}

type User struct {
	ID   int
	Name string
}

// UserNotFound 处理器返回的业务错误
type UserNotFound struct{ ID int }

func (e *UserNotFound) Error() string { return fmt.Sprintf("user %d not found", e.ID) }

// InvalidUser 校验失败
type InvalidUser struct{ Name string }

func (e *InvalidUser) Error() string { return fmt.Sprintf("invalid user name %q", e.Name) }

// codeError 值接收者实现 error
type codeError struct{ Code int }

func (e codeError) Error() string { return fmt.Sprintf("code %d", e.Code) }

// UserRepository 以接口类型注册的资源
type UserRepository interface {
	Create(name string) int
	Get(id int) (*User, bool)
}

// memRepo 内存仓储
type memRepo struct {
	mu    sync.Mutex
	next  int
	users map[int]*User
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[int]*User)}
}

func (r *memRepo) Create(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.users[r.next] = &User{ID: r.next, Name: name}
	return r.next
}

func (r *memRepo) Get(id int) (*User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	return u, ok
}

// ============================================================================
//                              辅助函数
// ============================================================================

// newBuilder 创建使用独立指标注册器的构建器
func newBuilder(opts ...mediator.Option) *mediator.BusBuilder {
	base := []mediator.Option{mediator.WithMetricsRegisterer(prometheus.NewRegistry())}
	return mediator.NewBuilder(append(base, opts...)...)
}

// build 构建总线并在测试结束时关闭
func build(t *testing.T, b *mediator.BusBuilder) *mediator.Bus {
	t.Helper()
	bus, err := b.Build()
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = bus.Close(ctx)
	})
	return bus
}

func ping(_ context.Context, p Ping) (string, error) {
	return "Pong: " + p.Msg, nil
}

// ============================================================================
//                              命令测试
// ============================================================================

// TestSend_PingPong 测试命令返回处理器结果
func TestSend_PingPong(t *testing.T) {
	b := newBuilder()
	mediator.AddCommandHandler(b, ping)
	bus := build(t, b)

	pong, err := mediator.Send(context.Background(), bus, Ping{Msg: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "Pong: hello", pong)

	t.Log("✅ 命令返回处理器结果")
}

// TestSend_Concurrent 测试并发发送互不干扰
func TestSend_Concurrent(t *testing.T) {
	b := newBuilder()
	mediator.AddCommandHandler(b, ping)
	bus := build(t, b)

	const n = 100
	results := make([]string, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = mediator.Send(context.Background(), bus, Ping{Msg: fmt.Sprintf("Ping{%d}", i)})
		}()
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, fmt.Sprintf("Pong: Ping{%d}", i), results[i])
	}

	t.Log("✅ 100 个并发命令各自得到对应响应")
}

// TestAddCommandHandler_DuplicatePanics 测试重复注册立即 panic
func TestAddCommandHandler_DuplicatePanics(t *testing.T) {
	b := newBuilder()
	mediator.AddCommandHandler(b, ping)

	defer func() {
		rec := recover()
		require.NotNil(t, rec, "重复注册应 panic")
		assert.Contains(t, fmt.Sprint(rec), "Ping")
		t.Log("✅ 重复注册命令处理器 panic")
	}()
	mediator.AddCommandHandler(b, func(context.Context, Ping) (string, error) {
		return "other", nil
	})
}

// TestSend_HandlerNotFound 测试未注册的请求类型
func TestSend_HandlerNotFound(t *testing.T) {
	b := newBuilder()
	mediator.AddCommandHandler(b, ping)
	bus := build(t, b)

	user, err := mediator.Send(context.Background(), bus, GetUser{ID: 1})
	require.Error(t, err)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, mediator.ErrHandlerNotFound)
	assert.NotErrorIs(t, err, mediator.ErrResourceNotFound)
	assert.NotErrorIs(t, err, mediator.ErrHandler)
	assert.Contains(t, err.Error(), "GetUser")

	t.Log("✅ 未注册请求返回 ErrHandlerNotFound")
}

// TestSend_MissingResource 测试依赖缺失时不执行处理器
func TestSend_MissingResource(t *testing.T) {
	b := newBuilder()
	mediator.AppendResource(b, "unrelated")
	mediator.AppendResource(b, 42)

	called := false
	mediator.AddCommandHandler1(b, func(_ context.Context, repo UserRepository, c CreateUser) (int, error) {
		called = true
		return repo.Create(c.Name), nil
	})
	bus := build(t, b)

	_, err := mediator.Send(context.Background(), bus, CreateUser{Name: "alice"})
	require.Error(t, err)
	assert.ErrorIs(t, err, mediator.ErrResourceNotFound)
	assert.False(t, called)

	var re *mediator.ResourceError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, types.TypeFor[UserRepository](), re.Type)

	// 构建后即可发现缺失的依赖
	assert.Equal(t, []types.TypeID{types.TypeFor[UserRepository]()}, bus.MissingResources())

	t.Log("✅ 缺失资源返回 ErrResourceNotFound，处理器未执行")
}

// TestAppendResource_InterfaceKey 测试资源以声明类型为键
func TestAppendResource_InterfaceKey(t *testing.T) {
	b := newBuilder()
	mediator.AppendResource[UserRepository](b, newMemRepo())
	mediator.AddCommandHandler1(b, func(_ context.Context, repo UserRepository, c CreateUser) (int, error) {
		return repo.Create(c.Name), nil
	})
	// 以具体类型声明依赖取不到接口键下的资源
	mediator.AddCommandHandler1(b, func(_ context.Context, repo *memRepo, g GetUser) (*User, error) {
		u, _ := repo.Get(g.ID)
		return u, nil
	})
	bus := build(t, b)

	id, err := mediator.Send(context.Background(), bus, CreateUser{Name: "alice"})
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	_, err = mediator.Send(context.Background(), bus, GetUser{ID: id})
	assert.ErrorIs(t, err, mediator.ErrResourceNotFound)
	assert.Equal(t, []types.TypeID{types.TypeFor[*memRepo]()}, bus.MissingResources())

	t.Log("✅ 接口类型资源只能以接口类型取回")
}

// TestAppendResource_LastWriteWins 测试同类型资源后注册覆盖先注册
func TestAppendResource_LastWriteWins(t *testing.T) {
	type greeting string

	b := newBuilder()
	mediator.AppendResource(b, greeting("first"))
	mediator.AppendResource(b, greeting("second"))
	mediator.AddCommandHandler1(b, func(_ context.Context, g greeting, p Ping) (string, error) {
		return string(g) + " " + p.Msg, nil
	})
	bus := build(t, b)

	out, err := mediator.Send(context.Background(), bus, Ping{Msg: "x"})
	require.NoError(t, err)
	assert.Equal(t, "second x", out)

	t.Log("✅ 同类型资源只保留最后一次注册")
}

// TestGetHandlerError 测试按精确类型取回业务错误
func TestGetHandlerError(t *testing.T) {
	b := newBuilder()
	mediator.AddCommandHandler(b, func(_ context.Context, g GetUser) (*User, error) {
		return nil, &UserNotFound{ID: g.ID}
	})
	mediator.AddCommandHandler(b, func(_ context.Context, p Ping) (string, error) {
		return "", codeError{Code: 7}
	})
	bus := build(t, b)

	_, err := mediator.Send(context.Background(), bus, GetUser{ID: 9})
	require.Error(t, err)
	assert.ErrorIs(t, err, mediator.ErrHandler)

	nf, ok := mediator.GetHandlerError[*UserNotFound](err)
	require.True(t, ok)
	assert.Equal(t, 9, nf.ID)

	_, ok = mediator.GetHandlerError[*InvalidUser](err)
	assert.False(t, ok)
	_, ok = mediator.GetHandlerError[error](err)
	assert.False(t, ok, "接口类型不是精确类型")

	_, err = mediator.Send(context.Background(), bus, Ping{})
	ce, ok := mediator.GetHandlerError[codeError](err)
	require.True(t, ok)
	assert.Equal(t, 7, ce.Code)

	var target *UserNotFound
	assert.False(t, errors.As(err, &target))

	t.Log("✅ 业务错误只能以原始类型取回")
}

// TestSend_Reentrant 测试处理器通过注入的 *Bus 再次发送命令
func TestSend_Reentrant(t *testing.T) {
	b := newBuilder()
	repo := newMemRepo()
	mediator.AppendResource[UserRepository](b, repo)

	mediator.AddCommandHandler(b, func(_ context.Context, v ValidateUser) (bool, error) {
		if v.Name == "" {
			return false, &InvalidUser{Name: v.Name}
		}
		return true, nil
	})
	mediator.AddCommandHandler2(b, func(ctx context.Context, r UserRepository, bus *mediator.Bus, c CreateUser) (int, error) {
		if _, err := mediator.Send(ctx, bus, ValidateUser{Name: c.Name}); err != nil {
			return 0, err
		}
		return r.Create(c.Name), nil
	})
	bus := build(t, b)

	id, err := mediator.Send(context.Background(), bus, CreateUser{Name: "bob"})
	require.NoError(t, err)
	u, ok := repo.Get(id)
	require.True(t, ok)
	assert.Equal(t, "bob", u.Name)

	_, err = mediator.Send(context.Background(), bus, CreateUser{})
	require.Error(t, err)
	invalid, ok := mediator.GetHandlerError[*InvalidUser](err)
	require.True(t, ok, "内层错误保留原始类型")
	assert.Equal(t, "", invalid.Name)

	t.Log("✅ 重入调用组合成功，内层错误类型保留")
}

// TestSend_SevenResources 测试注入 7 个资源
func TestSend_SevenResources(t *testing.T) {
	type (
		r1 int
		r2 int
		r3 int
		r4 int
		r5 int
		r6 int
		r7 int
	)

	b := newBuilder()
	mediator.AppendResource(b, r1(1))
	mediator.AppendResource(b, r2(2))
	mediator.AppendResource(b, r3(3))
	mediator.AppendResource(b, r4(4))
	mediator.AppendResource(b, r5(5))
	mediator.AppendResource(b, r6(6))
	mediator.AppendResource(b, r7(7))
	mediator.AddCommandHandler7(b, func(_ context.Context, v1 r1, v2 r2, v3 r3, v4 r4, v5 r5, v6 r6, v7 r7, _ CreateUser) (int, error) {
		return int(v1) + int(v2) + int(v3) + int(v4) + int(v5) + int(v6) + int(v7), nil
	})
	bus := build(t, b)

	sum, err := mediator.Send(context.Background(), bus, CreateUser{})
	require.NoError(t, err)
	assert.Equal(t, 28, sum)

	t.Log("✅ 7 个资源按声明顺序注入")
}

// TestSend_HandlerPanic 测试处理器 panic 转为错误
func TestSend_HandlerPanic(t *testing.T) {
	b := newBuilder()
	mediator.AddCommandHandler(b, func(context.Context, Ping) (string, error) {
		panic("boom")
	})
	bus := build(t, b)

	_, err := mediator.Send(context.Background(), bus, Ping{})
	require.Error(t, err)
	assert.ErrorIs(t, err, mediator.ErrHandlerPanic)

	var pe *mediator.PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "boom", pe.Value)

	// 总线仍然可用
	b2 := newBuilder()
	mediator.AddCommandHandler(b2, ping)
	out, err := mediator.Send(context.Background(), build(t, b2), Ping{Msg: "ok"})
	require.NoError(t, err)
	assert.Equal(t, "Pong: ok", out)

	t.Log("✅ 处理器 panic 返回 ErrHandlerPanic")
}

// TestSend_NilResponse 测试指针响应为 nil
func TestSend_NilResponse(t *testing.T) {
	b := newBuilder()
	mediator.AddCommandHandler(b, func(context.Context, GetUser) (*User, error) {
		return nil, nil
	})
	bus := build(t, b)

	u, err := mediator.Send(context.Background(), bus, GetUser{ID: 1})
	require.NoError(t, err)
	assert.Nil(t, u)

	t.Log("✅ nil 响应返回零值")
}

// TestBus_Introspection 测试路由与资源自省
func TestBus_Introspection(t *testing.T) {
	b := newBuilder()
	mediator.AppendResource[UserRepository](b, newMemRepo())
	mediator.AddCommandHandler(b, ping)
	mediator.AddCommandHandler(b, func(context.Context, GetUser) (*User, error) { return nil, nil })
	mediator.AddEventHandler(b, func(context.Context, UserCreated) error { return nil })
	mediator.AddEventHandler(b, func(context.Context, UserCreated) error { return nil })
	bus := build(t, b)

	assert.ElementsMatch(t,
		[]types.TypeID{types.TypeFor[Ping](), types.TypeFor[GetUser]()},
		bus.CommandTypes())
	assert.Equal(t, []types.TypeID{types.TypeFor[UserCreated]()}, bus.EventTypes())
	assert.Equal(t, 2, bus.EventHandlerCount(types.TypeFor[UserCreated]()))
	assert.ElementsMatch(t,
		[]types.TypeID{types.TypeFor[UserRepository](), types.TypeFor[*mediator.Bus]()},
		bus.ResourceTypes())
	assert.Empty(t, bus.MissingResources())

	t.Log("✅ 自省返回已注册的类型")
}
