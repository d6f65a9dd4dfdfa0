package internal

// SourceField holds either a directly-assigned value or a redirect to
// another Watchable ("source"). Reading it while redirected simply forwards
// to the source; dirty and change notifications from the source are
// relayed unchanged, so downstream dependents never need to know whether a
// SourceField is redirected or holding a value of its own.
type SourceField struct {
	Registry ListenerRegistry

	direct any
	source Watchable

	srcDirtyL   *Listener
	srcChangeL  *Listener
	unsubDirty  func()
	unsubChange func()
}

func NewSourceField(initial any) *SourceField {
	return &SourceField{direct: initial}
}

func (f *SourceField) Read() any {
	f.Registry.AssertNotDispatchingDirty()
	var v any
	if f.source != nil {
		v = f.source.Read()
	} else {
		v = f.direct
	}
	f.Registry.MarkRead()
	return v
}

func (f *SourceField) peek() any {
	if f.source != nil {
		return f.source.Read()
	}
	return f.direct
}

func (f *SourceField) SubscribeDirty(l *Listener) func()  { return f.Registry.SubscribeDirty(l) }
func (f *SourceField) SubscribeChange(l *Listener) func() { return f.Registry.SubscribeChange(l) }

// SetDirect detaches any current source and assigns a plain value, exactly
// like Field.Set.
func (f *SourceField) SetDirect(v any) *RawMutator {
	return NewRawMutator(func() (any, func()) {
		old := f.peek()
		changed := !valuesEqual(old, v)
		if changed {
			f.Registry.BroadcastDirty()
		}
		f.detachSource()
		f.direct = v
		return v, func() {
			if changed {
				f.Registry.BroadcastChange()
			}
		}
	})
}

// SetSource redirects reads to w. Redirecting to the field's current source
// (compared by interface identity) is a no-op mutator: reassigning the same
// source must not manufacture a spurious dirty/change pair.
func (f *SourceField) SetSource(w Watchable) *RawMutator {
	return NewRawMutator(func() (any, func()) {
		if f.source != nil && f.source == w {
			return f.source.Read(), func() {}
		}
		old := f.peek()
		f.Registry.BroadcastDirty()
		f.detachSource()
		f.source = w
		f.attachSource()
		return nil, func() {
			if !valuesEqual(old, f.peek()) {
				f.Registry.BroadcastChange()
			}
		}
	})
}

func (f *SourceField) attachSource() {
	f.srcDirtyL = NewListener(func() { f.Registry.BroadcastDirty() })
	f.srcChangeL = NewListener(func() { f.Registry.BroadcastChange() })
	f.unsubDirty = f.source.SubscribeDirty(f.srcDirtyL)
	f.unsubChange = f.source.SubscribeChange(f.srcChangeL)
}

func (f *SourceField) detachSource() {
	if f.source == nil {
		return
	}
	f.unsubDirty()
	f.unsubChange()
	f.source = nil
}
