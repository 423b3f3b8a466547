package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackAndForward(t *testing.T) {
	tr := NewTrail(10)
	tr.Push("a")
	tr.Push("b")
	tr.Push("c")

	id, ok := tr.Back()
	require.True(t, ok)
	assert.Equal(t, "b", id)

	id, ok = tr.Back()
	require.True(t, ok)
	assert.Equal(t, "a", id)

	_, ok = tr.Back()
	assert.False(t, ok, "cannot step before the first entry")

	id, ok = tr.Forward()
	require.True(t, ok)
	assert.Equal(t, "b", id)
}

func TestPushAfterBackDiscardsForward(t *testing.T) {
	tr := NewTrail(10)
	tr.Push("a")
	tr.Push("b")
	tr.Push("c")
	tr.Back()
	tr.Back() // at "a"

	tr.Push("d")
	_, ok := tr.Forward()
	assert.False(t, ok, "the b/c branch is gone")

	id, ok := tr.Back()
	require.True(t, ok)
	assert.Equal(t, "a", id)
}

func TestPushDuplicateCurrentIsNoop(t *testing.T) {
	tr := NewTrail(10)
	tr.Push("a")
	tr.Push("a")
	assert.Equal(t, 1, tr.Len())
}

func TestCapacityTrimsOldest(t *testing.T) {
	tr := NewTrail(2)
	tr.Push("a")
	tr.Push("b")
	tr.Push("c")
	assert.Equal(t, 2, tr.Len())

	id, ok := tr.Back()
	require.True(t, ok)
	assert.Equal(t, "b", id)
	_, ok = tr.Back()
	assert.False(t, ok)
}

func TestZeroCapacityDisables(t *testing.T) {
	tr := NewTrail(0)
	tr.Push("a")
	assert.Zero(t, tr.Len())
	_, ok := tr.Back()
	assert.False(t, ok)
}

func TestRemoveCurrentStepsBack(t *testing.T) {
	tr := NewTrail(10)
	tr.Push("a")
	tr.Push("b")
	tr.Push("c") // current

	tr.Remove("c")
	id, ok := tr.Forward()
	assert.False(t, ok, "removed entry must not be reachable, got %q", id)

	id, ok = tr.Back()
	require.True(t, ok)
	assert.Equal(t, "a", id)
}

func TestRemoveAllEntries(t *testing.T) {
	tr := NewTrail(10)
	tr.Push("a")
	tr.Remove("a")
	assert.Zero(t, tr.Len())
	_, ok := tr.Back()
	assert.False(t, ok)

	// The trail keeps working after being emptied.
	tr.Push("b")
	assert.Equal(t, 1, tr.Len())
}

func TestClear(t *testing.T) {
	tr := NewTrail(10)
	tr.Push("a")
	tr.Push("b")
	tr.Clear()
	assert.Zero(t, tr.Len())
	_, ok := tr.Forward()
	assert.False(t, ok)
}
