package internal

// RawMutator is the any-erased half of the public Mutator[R]. It encapsulates
// perform-then-signal and refuses to run either stage more than once or out
// of order, which is what lets Chain guarantee no listener ever observes a
// half-applied group: every chained perform finishes before any chained
// signal runs.
type RawMutator struct {
	perform   func() (any, func())
	performed bool
	signaled  bool
	signalFn  func()
	result    any
}

func NewRawMutator(perform func() (any, func())) *RawMutator {
	return &RawMutator{perform: perform}
}

func (m *RawMutator) Perform() any {
	if m.performed {
		panic(MutationAlreadyConsumedError{})
	}
	m.performed = true
	m.result, m.signalFn = m.perform()
	return m.result
}

func (m *RawMutator) Signal() {
	if !m.performed || m.signaled {
		panic(MutationAlreadyConsumedError{})
	}
	m.signaled = true
	if m.signalFn != nil {
		m.signalFn()
	}
}

func (m *RawMutator) Commit() any {
	r := m.Perform()
	m.Signal()
	return r
}

// Chain runs a's perform then b's perform, and a's signal then b's signal.
// Because both performs land before either signal fires, an observer of a
// shared dependency can never see the graph mid-group.
func Chain(a, b *RawMutator) *RawMutator {
	return NewRawMutator(func() (any, func()) {
		a.Perform()
		rb := b.Perform()
		return rb, func() {
			a.Signal()
			b.Signal()
		}
	})
}

// ChainFn is Chain where the second mutator is built from the first's
// perform result.
func ChainFn(a *RawMutator, next func(any) *RawMutator) *RawMutator {
	return NewRawMutator(func() (any, func()) {
		ra := a.Perform()
		b := next(ra)
		rb := b.Perform()
		return rb, func() {
			a.Signal()
			b.Signal()
		}
	})
}

// MapMutator changes only the reported result; the timing of perform and
// signal is untouched.
func MapMutator(a *RawMutator, fn func(any) any) *RawMutator {
	return NewRawMutator(func() (any, func()) {
		r := a.Perform()
		return fn(r), func() { a.Signal() }
	})
}

func Dummy() *RawMutator {
	return NewRawMutator(func() (any, func()) { return nil, nil })
}

// All reduces a list of mutators into one atomic chain. An empty list
// yields a no-op mutator.
func All(ms []*RawMutator) *RawMutator {
	if len(ms) == 0 {
		return Dummy()
	}
	acc := ms[0]
	for _, m := range ms[1:] {
		acc = Chain(acc, m)
	}
	return acc
}

// Compose provides imperative mutator composition: the builder callback
// receives a push helper that performs its argument immediately (so the
// builder can branch on intermediate results) while deferring every
// pushed mutator's signal until the composed mutator itself is signaled.
func Compose(builder func(push func(*RawMutator) any)) *RawMutator {
	return NewRawMutator(func() (any, func()) {
		var signals []func()
		push := func(m *RawMutator) any {
			r := m.Perform()
			signals = append(signals, m.Signal)
			return r
		}
		builder(push)
		return nil, func() {
			for _, s := range signals {
				s()
			}
		}
	})
}
