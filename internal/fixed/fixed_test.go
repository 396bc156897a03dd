package fixed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromFloatRounding(t *testing.T) {
	v, ok := FromFloat(10.0)
	assert.True(t, ok)
	assert.Equal(t, int32(160), v)
}

func TestFromFloatRejectsOverflow(t *testing.T) {
	_, ok := FromFloat(8.87e16)
	assert.False(t, ok)
}

func TestFromFloatRejectsNaNAndInf(t *testing.T) {
	_, ok := FromFloat(float32(math.NaN()))
	assert.False(t, ok)

	_, ok = FromFloat(float32(math.Inf(1)))
	assert.False(t, ok)
}

func TestToFloatRoundTrip(t *testing.T) {
	v, _ := FromFloat(3.5)
	assert.InDelta(t, 3.5, ToFloat(v), 1e-6)
}

func TestMulDiv64(t *testing.T) {
	assert.Equal(t, int64(5), MulDiv64(10, 5, 10))
	assert.Equal(t, int64(0), MulDiv64(10, 5, 0))
}

func TestCeilDiv64(t *testing.T) {
	assert.Equal(t, int64(3), CeilDiv64(7, 3))
	assert.Equal(t, int64(-2), CeilDiv64(-7, 3))
	assert.Equal(t, int64(2), CeilDiv64(6, 3))
}
