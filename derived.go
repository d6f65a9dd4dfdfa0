package watch

import "github.com/watchkit/watch/internal"

// Ctx is threaded through a derived value's compute function and is the
// only way to declare a dependency. It exists as an explicit parameter,
// rather than a closure the compute function captures once, because Go has
// no generic method type parameters: Watch below needs its own type
// parameter per call, which only a free function taking Ctx can provide.
type Ctx struct {
	track func(internal.Watchable) any
}

// Watch declares w as a dependency of the derived value currently
// computing and returns its current value. Called with a Ctx from a prior,
// already-finished computation, it returns the current value without
// registering a dependency.
func Watch[T any](ctx *Ctx, w Watchable[T]) T {
	return as[T](ctx.track(w.core()))
}

// DerivedValue is the lazy-caching L2 node: its compute function runs
// again only when Read is called after a real upstream change, never
// eagerly and never twice for the same settled state.
type DerivedValue[T any] struct {
	wrapped[T]
	engine *internal.Derived
}

// NewDerived builds a derived value from compute, which receives a Ctx for
// declaring dependencies plus the previous result (and whether one exists
// yet, on the first computation).
func NewDerived[T any](compute func(ctx *Ctx, previous T, hasPrevious bool) T) *DerivedValue[T] {
	c := internal.NewDerived(func(track func(internal.Watchable) any, previous any, hasPrevious bool) any {
		ctx := &Ctx{track: track}
		var prev T
		if hasPrevious {
			prev = as[T](previous)
		}
		return compute(ctx, prev, hasPrevious)
	})
	return &DerivedValue[T]{wrapped: wrapped[T]{node: c}, engine: c}
}
