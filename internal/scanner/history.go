package scanner

// History is a fixed-capacity append-only buffer that evicts the oldest
// entry once full. Insertion order matters; random access does not.
type History[T any] struct {
	buf   []T
	start int
	size  int
}

// NewHistory creates a buffer holding at most capacity entries.
func NewHistory[T any](capacity int) *History[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &History[T]{buf: make([]T, capacity)}
}

// Push appends v, evicting the oldest entry when at capacity.
func (h *History[T]) Push(v T) {
	if h.size < len(h.buf) {
		h.buf[(h.start+h.size)%len(h.buf)] = v
		h.size++
		return
	}
	h.buf[h.start] = v
	h.start = (h.start + 1) % len(h.buf)
}

// Len returns the number of entries currently held.
func (h *History[T]) Len() int { return h.size }

// Items returns the entries oldest-first as a fresh slice.
func (h *History[T]) Items() []T {
	out := make([]T, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}

// Newest returns up to n entries, newest first.
func (h *History[T]) Newest(n int) []T {
	if n > h.size {
		n = h.size
	}
	out := make([]T, 0, n)
	for i := h.size - 1; i >= h.size-n; i-- {
		out = append(out, h.buf[(h.start+i)%len(h.buf)])
	}
	return out
}
