package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type walked struct {
	left, right, coverage int32
}

func walkAll(b *Buffer) []walked {
	var out []walked
	b.Walk(func(l, r, c int32) { out = append(out, walked{l, r, c}) })
	return out
}

func TestAddIntervalMatchesDocumentedExample(t *testing.T) {
	b := New()
	// Half-covers pixel 0, fully covers pixel 1-2, half-covers pixel 3.
	b.AddInterval(4, 28)

	assert.Equal(t, []walked{
		{0, 1, 4},
		{1, 3, 8},
		{3, 4, 4},
	}, walkAll(b))
}

func TestAddIntervalSinglePixel(t *testing.T) {
	b := New()
	b.AddInterval(2, 5) // entirely inside pixel 0
	assert.Equal(t, []walked{{0, 1, 3}}, walkAll(b))
}

func TestAddIntervalFullPixelRun(t *testing.T) {
	b := New()
	b.AddInterval(0, 24) // exactly pixels 0,1,2 fully covered
	assert.Equal(t, []walked{{0, 3, 8}}, walkAll(b))
}

func TestAddIntervalAccumulatesAcrossCalls(t *testing.T) {
	b := New()
	b.AddInterval(0, 8)  // pixel 0 fully covered
	b.AddInterval(0, 8)  // pixel 0 covered twice
	assert.Equal(t, []walked{{0, 1, 16}}, walkAll(b))
}

func TestAddIntervalOverlappingRangesMerge(t *testing.T) {
	b := New()
	b.AddInterval(0, 16)  // pixels 0,1 fully covered
	b.AddInterval(8, 24)  // pixels 1,2 fully covered; pixel 1 overlaps
	assert.Equal(t, []walked{
		{0, 1, 8},
		{1, 2, 16},
		{2, 3, 8},
	}, walkAll(b))
}

func TestResetClearsIntervalsButReusesChunks(t *testing.T) {
	b := New()
	b.AddInterval(0, 8)
	assert.False(t, b.Empty())

	b.Reset()
	assert.True(t, b.Empty())

	b.AddInterval(16, 24)
	assert.Equal(t, []walked{{2, 3, 8}}, walkAll(b))
}
