package watch

// EqualityGate suppresses value changes a caller considers insignificant.
// It is built entirely out of DerivedValue: when the custom eq reports the
// new source value equal to the previous result, the compute function hands
// back the previous result verbatim, so the gate keeps reading the old value
// and a derived value downstream of it finds nothing changed and skips its
// own recompute. The gate still forwards the source's dirty and change
// notifications as they arrive.
type EqualityGate[T any] struct {
	*DerivedValue[T]
}

func NewEqualityGate[T any](source Watchable[T], eq func(a, b T) bool) *EqualityGate[T] {
	d := NewDerived(func(ctx *Ctx, previous T, hasPrevious bool) T {
		cur := Watch(ctx, source)
		if hasPrevious && eq(previous, cur) {
			return previous
		}
		return cur
	})
	return &EqualityGate[T]{DerivedValue: d}
}
