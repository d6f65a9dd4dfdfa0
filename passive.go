package watch

import "github.com/watchkit/watch/internal"

// PassiveDerived behaves like a DerivedValue, except that while it has at
// least one listener it recomputes as soon as a dependency changes instead
// of waiting for the next Read, so a pure listener that never calls Read
// still always observes the latest value on its next Read.
type PassiveDerived[T any] struct {
	wrapped[T]
	engine *internal.PassiveDerived
}

func NewPassiveDerived[T any](compute func(ctx *Ctx, previous T, hasPrevious bool) T) *PassiveDerived[T] {
	c := internal.NewPassiveDerived(func(track func(internal.Watchable) any, previous any, hasPrevious bool) any {
		ctx := &Ctx{track: track}
		var prev T
		if hasPrevious {
			prev = as[T](previous)
		}
		return compute(ctx, prev, hasPrevious)
	})
	return &PassiveDerived[T]{wrapped: wrapped[T]{node: c}, engine: c}
}
