package internal

// Field is a leaf, mutation-driven watchable: the L1 primitive of the graph.
// Every write is expressed as a RawMutator whose perform stage broadcasts
// dirty and assigns the value and whose signal stage broadcasts change, so
// a batch of field writes chained together has assigned every value before
// any change listener runs.
type Field struct {
	Registry ListenerRegistry

	value any

	// equals defaults to the package's valuesEqual when nil. SetEquals lets
	// a caller supply its own predicate, e.g. to compare slices by content
	// or ignore a field the type otherwise considers significant.
	equals func(a, b any) bool
}

func NewField(initial any) *Field {
	return &Field{value: initial}
}

// SetEquals installs a custom equality predicate. It is meant to be called
// once, right after construction, before the field has any subscribers.
func (f *Field) SetEquals(fn func(a, b any) bool) {
	f.equals = fn
}

func (f *Field) valuesEqual(a, b any) bool {
	if f.equals != nil {
		return f.equals(a, b)
	}
	return valuesEqual(a, b)
}

func (f *Field) Read() any {
	f.Registry.AssertNotDispatchingDirty()
	f.Registry.MarkRead()
	return f.value
}

func (f *Field) SubscribeDirty(l *Listener) func()  { return f.Registry.SubscribeDirty(l) }
func (f *Field) SubscribeChange(l *Listener) func() { return f.Registry.SubscribeChange(l) }

// Set returns a RawMutator rather than writing immediately: the caller
// decides when perform (store the value, fire dirty) and signal (fire
// change) actually happen, which is what lets Field writes participate in
// Chain/Compose alongside other mutators.
func (f *Field) Set(v any) *RawMutator {
	return NewRawMutator(func() (any, func()) {
		changed := !f.valuesEqual(f.value, v)
		if changed {
			f.Registry.BroadcastDirty()
			f.value = v
		}
		return v, func() {
			if changed {
				f.Registry.BroadcastChange()
			}
		}
	})
}

// Update reads the current value at perform-time (so it observes any prior
// mutator already chained ahead of it) and derives the next value from it.
func (f *Field) Update(fn func(any) any) *RawMutator {
	return NewRawMutator(func() (any, func()) {
		next := fn(f.value)
		changed := !f.valuesEqual(f.value, next)
		if changed {
			f.Registry.BroadcastDirty()
			f.value = next
		}
		return next, func() {
			if changed {
				f.Registry.BroadcastChange()
			}
		}
	})
}
