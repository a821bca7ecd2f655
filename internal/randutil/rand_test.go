package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	t.Parallel()
	a, b := New(42), New(42)
	for range 10 {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}

func TestDeriveDiffersPerWorker(t *testing.T) {
	t.Parallel()
	assert.NotEqual(t, Derive(7, 0), Derive(7, 1))
	assert.Equal(t, Derive(7, 3), Derive(7, 3))
}

func TestSequenceReplaysAndSticks(t *testing.T) {
	t.Parallel()
	s := NewSequence(0.1, 0.9)
	assert.Equal(t, 0.1, s.Float64())
	assert.Equal(t, 0.9, s.Float64())
	assert.Equal(t, 0.9, s.Float64())
	assert.Equal(t, 2, s.Drawn())
	assert.Equal(t, 0, s.IntN(52))
}
