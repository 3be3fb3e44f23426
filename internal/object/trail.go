package object

// Trail is a fixed-capacity ring of recent positions. Pushing onto a full
// trail drops the oldest sample.
type Trail struct {
	buf  []Point
	next int
	n    int
}

// Reset empties the trail and sizes it for capacity samples, reusing the
// backing array when it is large enough.
func (t *Trail) Reset(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	if cap(t.buf) >= capacity {
		t.buf = t.buf[:capacity]
	} else {
		t.buf = make([]Point, capacity)
	}
	t.next = 0
	t.n = 0
}

// Push records a new sample.
func (t *Trail) Push(x, y float64) {
	if len(t.buf) == 0 {
		t.Reset(1)
	}
	t.buf[t.next] = Point{X: x, Y: y}
	t.next++
	if t.next >= len(t.buf) {
		t.next = 0
	}
	if t.n < len(t.buf) {
		t.n++
	}
}

// Len returns the number of stored samples.
func (t *Trail) Len() int {
	return t.n
}

// Cap returns the trail capacity.
func (t *Trail) Cap() int {
	return len(t.buf)
}

// At returns sample i, where 0 is the oldest.
func (t *Trail) At(i int) Point {
	idx := t.next - t.n + i
	if idx < 0 {
		idx += len(t.buf)
	}
	return t.buf[idx]
}

// Each visits samples oldest first. rank runs from just above 0 for the
// oldest sample to 1 for the newest and drives draw alpha and size.
func (t *Trail) Each(fn func(p Point, rank float64)) {
	for i := 0; i < t.n; i++ {
		fn(t.At(i), float64(i+1)/float64(t.n))
	}
}
