package object

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Pool recycles particles of one kind. Acquire returns a blank instance and
// Release resets it before putting it on the free list. A released instance
// must not be used or released again by the caller.
type Pool[T any] struct {
	free  []*T
	reset func(*T)
	made  int

	// Debug bookkeeping: instances currently on the free list.
	idle   map[*T]struct{}
	logger *log.Logger
}

// NewPool creates a pool that runs reset on every released instance. A nil
// reset zeroes the instance.
func NewPool[T any](reset func(*T)) *Pool[T] {
	if reset == nil {
		reset = func(v *T) {
			var zero T
			*v = zero
		}
	}
	return &Pool[T]{reset: reset}
}

// EnableDebug turns on double-release detection. Misuse is logged to logger
// and the offending release is ignored.
func (p *Pool[T]) EnableDebug(logger *log.Logger) {
	if logger == nil {
		logger = log.Default()
	}
	p.logger = logger
	p.idle = make(map[*T]struct{}, len(p.free))
	for _, v := range p.free {
		p.idle[v] = struct{}{}
	}
}

// Acquire pops a recycled instance or allocates a new one.
func (p *Pool[T]) Acquire() *T {
	n := len(p.free)
	if n == 0 {
		p.made++
		return new(T)
	}
	v := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	if p.idle != nil {
		delete(p.idle, v)
	}
	return v
}

// Release resets v and returns it to the free list.
func (p *Pool[T]) Release(v *T) {
	if v == nil {
		return
	}
	if p.idle != nil {
		if _, dup := p.idle[v]; dup {
			p.logger.Warn("pool: double release ignored", "type", fmt.Sprintf("%T", v))
			return
		}
		p.idle[v] = struct{}{}
	}
	p.reset(v)
	p.free = append(p.free, v)
}

// Idle returns the number of instances waiting on the free list.
func (p *Pool[T]) Idle() int {
	return len(p.free)
}

// Allocated returns how many instances the pool has ever constructed.
func (p *Pool[T]) Allocated() int {
	return p.made
}
