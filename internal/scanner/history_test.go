package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_PushAndItems(t *testing.T) {
	h := NewHistory[int](3)
	assert.Equal(t, 0, h.Len())

	h.Push(1)
	h.Push(2)
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, []int{1, 2}, h.Items())
}

func TestHistory_EvictsOldest(t *testing.T) {
	h := NewHistory[int](3)
	for i := 1; i <= 5; i++ {
		h.Push(i)
	}

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []int{3, 4, 5}, h.Items())
}

func TestHistory_Newest(t *testing.T) {
	h := NewHistory[string](4)
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		h.Push(s)
	}

	assert.Equal(t, []string{"e", "d"}, h.Newest(2))
	assert.Equal(t, []string{"e", "d", "c", "b"}, h.Newest(10), "n capped at size")
}

func TestHistory_ZeroCapacity(t *testing.T) {
	h := NewHistory[int](0)
	h.Push(1)
	h.Push(2)
	assert.Equal(t, []int{2}, h.Items(), "degenerate capacity holds one entry")
}
