package watch

import "github.com/watchkit/watch/internal"

// Constant lifts a fixed value into the graph. It is a valid dependency of
// a DerivedValue but never dirties or changes.
type Constant[T any] struct {
	wrapped[T]
}

func NewConstant[T any](v T) *Constant[T] {
	return &Constant[T]{wrapped: wrapped[T]{node: internal.NewConstant(v)}}
}
