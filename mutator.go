package watch

import "github.com/watchkit/watch/internal"

// Unit is the result type of a mutator that reports nothing meaningful,
// such as DummyMutator or the mutator produced by AllMutators.
type Unit struct{}

// Mutator is the two-phase commit handle returned by every write. Perform
// applies the write and fires dirty notifications; Signal fires the
// matching change notifications. Commit runs both back to back for the
// common case of an unchained, immediate write.
type Mutator[R any] struct {
	raw *internal.RawMutator
}

func newMutator[R any](raw *internal.RawMutator) *Mutator[R] {
	return &Mutator[R]{raw: raw}
}

func (m *Mutator[R]) Perform() R { return as[R](m.raw.Perform()) }
func (m *Mutator[R]) Signal()    { m.raw.Signal() }
func (m *Mutator[R]) Commit() R  { return as[R](m.raw.Commit()) }

func (m *Mutator[R]) rawMutator() *internal.RawMutator { return m.raw }

// anyMutator lets Compose accept a Mutator[R] for any R without itself
// needing a second type parameter.
type anyMutator interface {
	rawMutator() *internal.RawMutator
}

// ChainWith combines two mutators into one: both performs run before either
// signal, so no listener of a dependency shared between a and b can ever
// observe the graph between the two writes.
func ChainWith[A, B any](a *Mutator[A], b *Mutator[B]) *Mutator[B] {
	return newMutator[B](internal.Chain(a.raw, b.raw))
}

// ChainFunc builds the second mutator from the first's perform result,
// still under the same all-performs-then-all-signals guarantee.
func ChainFunc[A, B any](a *Mutator[A], next func(A) *Mutator[B]) *Mutator[B] {
	return newMutator[B](internal.ChainFn(a.raw, func(v any) *internal.RawMutator {
		return next(as[A](v)).raw
	}))
}

// MapMutatorResult adapts a mutator's reported result without touching the
// timing of its perform or signal stage.
func MapMutatorResult[A, B any](a *Mutator[A], fn func(A) B) *Mutator[B] {
	return newMutator[B](internal.MapMutator(a.raw, func(v any) any { return fn(as[A](v)) }))
}

// DummyMutator performs and signals nothing; useful as the identity element
// when folding a possibly-empty list of writes with AllMutators.
func DummyMutator() *Mutator[Unit] {
	return newMutator[Unit](internal.Dummy())
}

// AllMutators folds a list of mutators into a single atomic chain.
func AllMutators(ms ...*Mutator[Unit]) *Mutator[Unit] {
	raws := make([]*internal.RawMutator, len(ms))
	for i, m := range ms {
		raws[i] = m.raw
	}
	return newMutator[Unit](internal.All(raws))
}

// Compose lets a caller build a mutator imperatively: push performs its
// argument immediately, so the builder can branch on intermediate results,
// while every pushed mutator's signal is deferred until the composed
// mutator's own Signal runs.
func Compose[R any](builder func(push func(anyMutator) any)) *Mutator[R] {
	return newMutator[R](internal.Compose(func(rawPush func(*internal.RawMutator) any) {
		builder(func(m anyMutator) any { return rawPush(m.rawMutator()) })
	}))
}
