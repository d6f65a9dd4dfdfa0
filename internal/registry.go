package internal

// ListenerRegistry is the reusable fragment embedded in every watchable:
// fields, the counter primitive, and derived values. It owns the two
// subscriber channels (dirty, change) and the bits that make repeated
// broadcasts coalesce between reads.
type ListenerRegistry struct {
	dirtySubs  subscriberSet
	changeSubs subscriberSet

	dirty            bool
	signaled         bool
	dispatchingDirty bool

	listenerCount int

	// aff is scoped to this registry, not the process: the single-mutator-
	// thread assumption belongs to one connected graph, and two disjoint
	// graphs are free to live on two different goroutines.
	aff affinity

	// OnActivate/OnDeactivate fire when the live listener count transitions
	// 0->1 or 1->0. PassiveDerived sets OnActivate; nothing sets
	// OnDeactivate.
	OnActivate   func()
	OnDeactivate func()
}

func NewListenerRegistry() *ListenerRegistry { return &ListenerRegistry{} }

func (r *ListenerRegistry) SubscribeDirty(l *Listener) func() {
	unsub := r.dirtySubs.subscribe(l)
	r.bump(1)
	return r.onceUnsub(unsub)
}

func (r *ListenerRegistry) SubscribeChange(l *Listener) func() {
	unsub := r.changeSubs.subscribe(l)
	r.bump(1)
	return r.onceUnsub(unsub)
}

func (r *ListenerRegistry) onceUnsub(unsub func()) func() {
	done := false
	return func() {
		if done {
			return
		}
		done = true
		unsub()
		r.bump(-1)
	}
}

func (r *ListenerRegistry) bump(delta int) {
	before := r.listenerCount
	r.listenerCount += delta
	if before == 0 && r.listenerCount > 0 && r.OnActivate != nil {
		r.OnActivate()
	}
	if before > 0 && r.listenerCount == 0 && r.OnDeactivate != nil {
		r.OnDeactivate()
	}
}

// HasListeners reports whether anything is currently subscribed, on either
// channel. Throttled uses this to decide whether forcing a source read
// during its own change broadcast is worthwhile.
func (r *ListenerRegistry) HasListeners() bool { return r.listenerCount > 0 }

// BroadcastDirty is a no-op if dirty is already set: one dirty notification
// is enough per read-interval, and repeated upstream writes must coalesce.
func (r *ListenerRegistry) BroadcastDirty() {
	r.aff.check()
	if r.dirty {
		return
	}
	r.dirty = true
	r.signaled = false
	r.dispatchingDirty = true
	r.dirtySubs.each(func(l *Listener) { l.fn() })
	r.dispatchingDirty = false
}

// BroadcastChange is a no-op if a change has already been signaled since
// the last read.
func (r *ListenerRegistry) BroadcastChange() {
	if r.signaled {
		return
	}
	r.signaled = true
	r.changeSubs.each(func(l *Listener) { l.fn() })
}

func (r *ListenerRegistry) AssertNotDispatchingDirty() {
	r.aff.check()
	if r.dispatchingDirty {
		panic(ReadDuringDirtyDispatchError{})
	}
}

// MarkRead clears both bits: a successful read closes out the interval
// during which a dirty and/or a change notification may have fired.
func (r *ListenerRegistry) MarkRead() {
	r.dirty = false
	r.signaled = false
}

// ResetSignaled re-arms the change channel without a read, so the next
// BroadcastChange is not coalesced away.
func (r *ListenerRegistry) ResetSignaled() { r.signaled = false }

// ResetDirty lets Throttled re-arm the dirty channel the same way, so a
// resolving epoch's dirty broadcast isn't coalesced away by the leading
// edge's still-set dirty bit.
func (r *ListenerRegistry) ResetDirty() { r.dirty = false }

func (r *ListenerRegistry) IsDirty() bool { return r.dirty }
