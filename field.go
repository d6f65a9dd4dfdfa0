package watch

import "github.com/watchkit/watch/internal"

// Field is a mutable leaf watchable: the entry point through which outside
// code introduces new values into the graph.
type Field[T any] struct {
	wrapped[T]
	engine *internal.Field
}

func NewField[T any](initial T) *Field[T] {
	c := internal.NewField(initial)
	return &Field[T]{wrapped: wrapped[T]{node: c}, engine: c}
}

// WithEquals installs a custom equality predicate for this field, replacing
// the default comparison used to decide whether a write is significant: a
// write it considers equal to the current value is neither stored nor
// broadcast. Call it right after construction, before anything subscribes.
func (f *Field[T]) WithEquals(fn func(a, b T) bool) *Field[T] {
	f.engine.SetEquals(func(a, b any) bool { return fn(as[T](a), as[T](b)) })
	return f
}

// Set returns a Mutator that stores v when performed and notifies
// subscribers when signaled. The mutator can be chained with others via
// ChainWith before either stage runs.
func (f *Field[T]) Set(v T) *Mutator[T] {
	return newMutator[T](f.engine.Set(v))
}

// Update derives the next value from the current one at perform-time, so
// it observes any mutator already chained ahead of it in the same group.
func (f *Field[T]) Update(fn func(T) T) *Mutator[T] {
	return newMutator[T](f.engine.Update(func(v any) any { return fn(as[T](v)) }))
}
