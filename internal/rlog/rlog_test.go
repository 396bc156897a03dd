package rlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopLoggerIsDisabled(t *testing.T) {
	l := Nop()
	assert.False(t, l.Enabled(nil, -100))
	assert.False(t, l.Enabled(nil, 100))
}

func TestDefaultIsNop(t *testing.T) {
	assert.NotNil(t, Default())
}
