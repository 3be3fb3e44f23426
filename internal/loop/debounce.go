package loop

import "time"

// Debouncer keeps the latest of a burst of values and releases it once no
// new value arrived for the delay.
type Debouncer[T any] struct {
	delay   time.Duration
	pending T
	due     time.Time
	armed   bool
}

// NewDebouncer creates a debouncer with the given quiet period. A zero
// delay releases every value on the next Ready call.
func NewDebouncer[T any](delay time.Duration) *Debouncer[T] {
	return &Debouncer[T]{delay: delay}
}

// Push records v at time now, replacing any pending value and restarting
// the quiet period.
func (d *Debouncer[T]) Push(v T, now time.Time) {
	d.pending = v
	d.due = now.Add(d.delay)
	d.armed = true
}

// Ready returns the pending value once its quiet period has passed.
func (d *Debouncer[T]) Ready(now time.Time) (T, bool) {
	var zero T
	if !d.armed || now.Before(d.due) {
		return zero, false
	}
	v := d.pending
	d.pending = zero
	d.armed = false
	return v, true
}

// Pending reports whether a value is waiting.
func (d *Debouncer[T]) Pending() bool {
	return d.armed
}
