package rasterr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWrapsSentinel(t *testing.T) {
	err := New(KindBadNumber, "edge")
	assert.True(t, errors.Is(err, ErrBadNumber))
	assert.Equal(t, "edge", err.Stage)
}

func TestIsEmptyGeometry(t *testing.T) {
	assert.True(t, IsEmptyGeometry(New(KindBadNumber, "x")))
	assert.True(t, IsEmptyGeometry(New(KindValueOverflow, "x")))
	assert.False(t, IsEmptyGeometry(New(KindOutOfMemory, "x")))
	assert.False(t, IsEmptyGeometry(errors.New("unrelated")))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "bad_number", KindBadNumber.String())
	assert.Equal(t, "value_overflow", KindValueOverflow.String())
	assert.Equal(t, "out_of_memory", KindOutOfMemory.String())
	assert.Equal(t, "none", KindNone.String())
}
