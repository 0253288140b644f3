// Package ring provides a fixed-capacity circular buffer.
//
// The buffer is used for the raw byte queue and the key event queue of an
// input session. It is not safe for concurrent use; producer and consumer are
// expected to run on the same goroutine.
package ring

// Ring is a fixed-capacity FIFO backed by a single slice.
//
// The producer advances tail, the consumer advances head. The buffer is full
// when tail is one slot behind head, so one slot always stays unused and an
// empty buffer (head == tail) can be told apart from a full one.
type Ring[T any] struct {
	buf  []T
	head int
	tail int
}

// New returns a pointer to a new empty ring with n slots, i.E. a usable
// capacity of n-1 elements.
// It panics if n < 2.
func New[T any](n int) *Ring[T] {
	if n < 2 {
		panic("ring: need at least two slots")
	}
	return &Ring[T]{buf: make([]T, n)}
}

// Push appends v at the tail.
// Returns false, and leaves the ring unchanged, if the ring is full.
func (r *Ring[T]) Push(v T) bool {
	next := r.advance(r.tail)
	if next == r.head {
		return false
	}
	r.buf[r.tail] = v
	r.tail = next
	return true
}

// Pop removes and returns the element at the head.
// Returns false if the ring is empty.
func (r *Ring[T]) Pop() (T, bool) {
	var zero T
	if r.Empty() {
		return zero, false
	}
	v := r.buf[r.head]
	r.buf[r.head] = zero
	r.head = r.advance(r.head)
	return v, true
}

// Peek returns the element at the head without removing it.
func (r *Ring[T]) Peek() (T, bool) {
	if r.Empty() {
		var zero T
		return zero, false
	}
	return r.buf[r.head], true
}

// Empty returns whether there are no elements in the ring.
func (r *Ring[T]) Empty() bool { return r.head == r.tail }

// Full returns whether the ring cannot take another element.
func (r *Ring[T]) Full() bool { return r.advance(r.tail) == r.head }

// Len returns the number of elements in the ring.
func (r *Ring[T]) Len() int {
	return (r.tail - r.head + len(r.buf)) % len(r.buf)
}

// Cap returns the number of elements the ring can hold.
func (r *Ring[T]) Cap() int { return len(r.buf) - 1 }

// Free returns the number of elements that can still be pushed.
func (r *Ring[T]) Free() int { return r.Cap() - r.Len() }

// Reset empties the ring.
func (r *Ring[T]) Reset() {
	var zero T
	for i := range r.buf {
		r.buf[i] = zero
	}
	r.head, r.tail = 0, 0
}

func (r *Ring[T]) advance(i int) int {
	i++
	if i == len(r.buf) {
		return 0
	}
	return i
}
