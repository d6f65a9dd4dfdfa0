package watch

import "github.com/watchkit/watch/internal"

// Signal is a steppable integer watchable, typically used to count events
// (writes, recomputes, ticks) rather than to carry a value of interest in
// its own right. Step moves it by any delta, negative ones included, and
// Reset sets it back to zero, so it is not monotonic.
type Signal struct {
	wrapped[int]
	engine *internal.CounterCore
}

func NewSignal(initial int) *Signal {
	c := internal.NewCounterCore(initial)
	return &Signal{wrapped: wrapped[int]{node: c}, engine: c}
}

func (s *Signal) Step(delta int) *Mutator[int] {
	return newMutator[int](s.engine.Step(delta))
}

func (s *Signal) Reset() *Mutator[int] {
	return newMutator[int](s.engine.Reset())
}

// IsDirty reports whether a dirty notification has fired since the last
// Read, without forcing a read of its own.
func (s *Signal) IsDirty() bool {
	return s.engine.Registry.IsDirty()
}
