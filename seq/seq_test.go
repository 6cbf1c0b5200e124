package seq

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderingWithinHalfRange(t *testing.T) {
	a := Value(100)
	b := Value(105)
	assert.True(t, a.LT(b))
	assert.True(t, a.LTE(b))
	assert.False(t, a.GT(b))
	assert.True(t, b.GT(a))
	assert.True(t, a.LTE(a))
	assert.True(t, a.GTE(a))
}

func TestWrapAround(t *testing.T) {
	a := Value(math.MaxUint32 - 2)
	b := Value(2)
	// b lies 5 sequences after a across the wrap.
	assert.True(t, a.LT(b))
	assert.True(t, b.GT(a))
	assert.Equal(t, uint32(5), a.Distance(b))
}

func TestAddSub(t *testing.T) {
	a := Value(10)
	assert.Equal(t, Value(15), a.Add(5))
	assert.Equal(t, Value(5), a.Sub(5))
	assert.Equal(t, Value(0), Value(math.MaxUint32).Add(1))
}

func TestInRange(t *testing.T) {
	assert.True(t, Value(50).InRange(10, 100))
	assert.False(t, Value(5).InRange(10, 100))
	assert.False(t, Value(101).InRange(10, 100))
	assert.True(t, Value(10).InRange(10, 100))
	assert.True(t, Value(100).InRange(10, 100))
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, Value(10), Min(10, 20))
	assert.Equal(t, Value(20), Max(10, 20))
}
