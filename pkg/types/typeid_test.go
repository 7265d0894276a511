package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleCommand struct{ Name string }

type sampleRepo interface{ Find(id int) string }

type memRepo struct{}

func (memRepo) Find(int) string { return "" }

func TestTypeID(t *testing.T) {
	t.Run("TypeFor 与 TypeOf 一致", func(t *testing.T) {
		assert.Equal(t, TypeFor[sampleCommand](), TypeOf(sampleCommand{}))
		assert.Equal(t, TypeFor[*sampleCommand](), TypeOf(&sampleCommand{}))
		assert.NotEqual(t, TypeFor[sampleCommand](), TypeFor[*sampleCommand]())
	})

	t.Run("接口类型参数保留接口本身", func(t *testing.T) {
		var r sampleRepo = memRepo{}
		assert.NotEqual(t, TypeFor[sampleRepo](), TypeOf(r))
		assert.Equal(t, TypeFor[memRepo](), TypeOf(r))
	})

	t.Run("可作为 map 键", func(t *testing.T) {
		m := map[TypeID]int{TypeFor[int](): 1, TypeFor[string](): 2}
		assert.Equal(t, 1, m[TypeFor[int]()])
		assert.Equal(t, 2, m[TypeOf("x")])
	})

	t.Run("名称", func(t *testing.T) {
		assert.Equal(t, "types.sampleCommand", TypeFor[sampleCommand]().String())
		assert.Equal(t, "sampleCommand", TypeFor[sampleCommand]().Name())
		assert.Equal(t, "*sampleCommand", TypeFor[*sampleCommand]().Name())
		assert.Equal(t, "[]int", TypeFor[[]int]().Name())
		assert.Equal(t, "sampleCommand", fmt.Sprint(TypeFor[sampleCommand]().Type().Name()))
	})

	t.Run("空值", func(t *testing.T) {
		assert.True(t, EmptyTypeID.IsEmpty())
		assert.True(t, TypeOf(nil).IsEmpty())
		assert.Equal(t, "<nil>", EmptyTypeID.String())
		assert.Equal(t, "<nil>", EmptyTypeID.Name())
		assert.False(t, TypeFor[int]().IsEmpty())
		assert.True(t, TypeFor[int]() == TypeOf(1))
	})
}

func TestDeliveryStats(t *testing.T) {
	s := DeliveryStats{Published: 10, Delivered: 7, HandlerRuns: 20, HandlerFailures: 5}
	assert.Equal(t, uint64(3), s.InFlight())
	assert.InDelta(t, 0.25, s.FailureRate(), 1e-9)

	assert.Equal(t, uint64(0), DeliveryStats{}.InFlight())
	assert.Zero(t, DeliveryStats{}.FailureRate())
}

func TestDeliveryFailure(t *testing.T) {
	cause := fmt.Errorf("boom")
	f := &DeliveryFailure{EnvelopeID: "e1", Event: TypeFor[sampleCommand](), HandlerIndex: 2, Err: cause}
	assert.Equal(t, "event types.sampleCommand (e1) handler #2: boom", f.Error())
	assert.ErrorIs(t, f, cause)

	f.HandlerIndex = NoHandlerIndex
	assert.Equal(t, "event types.sampleCommand (e1): boom", f.Error())
}
