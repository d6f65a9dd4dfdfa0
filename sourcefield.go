package watch

import "github.com/watchkit/watch/internal"

// SourceField holds either a directly-assigned value or a redirect to
// another Watchable[T]. Redirecting to the field's own current source is a
// no-op: it does not manufacture a dirty/change pair.
type SourceField[T any] struct {
	wrapped[T]
	engine *internal.SourceField
}

func NewSourceField[T any](initial T) *SourceField[T] {
	c := internal.NewSourceField(initial)
	return &SourceField[T]{wrapped: wrapped[T]{node: c}, engine: c}
}

func (f *SourceField[T]) SetDirect(v T) *Mutator[T] {
	return newMutator[T](f.engine.SetDirect(v))
}

func (f *SourceField[T]) SetSource(w Watchable[T]) *Mutator[T] {
	return newMutator[T](f.engine.SetSource(w.core()))
}
