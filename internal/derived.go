package internal

// ComputeFn is the any-erased shape of a derived value's recompute step. It
// receives a track function used to declare a dependency and read its
// current value in one call, plus the previous result (and whether one
// exists yet, for the first computation).
type ComputeFn func(track func(Watchable) any, previous any, hasPrevious bool) any

// Dependency is one edge in a Derived's dependency list, rebuilt from
// scratch on every slow recompute since branching compute functions can
// watch a different set of sources each time.
type Dependency struct {
	owner       *Derived
	source      Watchable
	lastValue   any
	dirtyL      *Listener
	changeL     *Listener
	unsubDirty  func()
	unsubChange func()
}

// Derived is the L2 lazy-caching engine shared by DerivedValue,
// EqualityGate (via composition) and PassiveDerived. Reads are cheap when
// nothing has changed: a dirty notification with no accompanying change
// resolves without ever calling compute again.
type Derived struct {
	Registry ListenerRegistry

	compute ComputeFn
	value   any
	hasValue bool
	deps    []*Dependency

	computing  bool
	generation int

	// OnDependencyDirty/OnDependencyChange are function fields rather than
	// fixed methods so a wrapper like PassiveDerived can splice in its own
	// per-dependency handling without re-implementing dependency bookkeeping.
	OnDependencyDirty  func(d *Dependency)
	OnDependencyChange func(d *Dependency)
}

func NewDerived(compute ComputeFn) *Derived {
	d := &Derived{compute: compute}
	d.OnDependencyDirty = d.DefaultOnDependencyDirty
	d.OnDependencyChange = d.DefaultOnDependencyChange
	return d
}

func (d *Derived) SubscribeDirty(l *Listener) func()  { return d.Registry.SubscribeDirty(l) }
func (d *Derived) SubscribeChange(l *Listener) func() { return d.Registry.SubscribeChange(l) }

func (d *Derived) Read() any {
	d.Registry.AssertNotDispatchingDirty()
	switch {
	case !d.hasValue:
		d.slowRecompute()
	case d.Registry.IsDirty():
		d.recompute()
	}
	d.Registry.MarkRead()
	return d.value
}

// recompute is the fast/slow-path decision from a dirty-but-maybe-unchanged
// state: re-read every dependency and compare it against the value observed
// when it was last tracked. Only a real mismatch earns a full slowRecompute;
// dependencies that went dirty and settled back to the same value cost
// nothing beyond the re-reads themselves.
func (d *Derived) recompute() {
	for _, dep := range d.deps {
		if !valuesEqual(dep.lastValue, dep.source.Read()) {
			d.slowRecompute()
			return
		}
	}
}

func (d *Derived) slowRecompute() {
	d.generation++
	gen := d.generation
	d.computing = true

	d.teardownDeps()
	var newDeps []*Dependency
	// track fires after a nested recomputation already began — e.g. from an
	// async continuation of a stale call — when the saved generation no
	// longer matches. That call is not this computation anymore: read the
	// value for the caller but skip registering it as a dependency, rather
	// than crash a stack this closure isn't actually running on.
	track := func(w Watchable) any {
		if !d.computing || gen != d.generation {
			return w.Read()
		}
		return d.watchDep(w, &newDeps)
	}

	prev, hasPrev := d.value, d.hasValue
	newVal := d.runCompute(track, prev, hasPrev)

	d.computing = false
	d.deps = newDeps

	changed := !hasPrev || !valuesEqual(d.value, newVal)
	d.value = newVal
	d.hasValue = true
	if changed {
		d.Registry.BroadcastChange()
	}
}

func (d *Derived) runCompute(track func(Watchable) any, prev any, hasPrev bool) (result any) {
	defer func() {
		if r := recover(); r != nil {
			d.computing = false
			// the old dependency list is already torn down, so the next Read
			// must take the slow path again rather than the dependency walk.
			d.hasValue = false
			panic(ComputationFailure{Cause: r})
		}
	}()
	return d.compute(track, prev, hasPrev)
}

func (d *Derived) watchDep(w Watchable, newDeps *[]*Dependency) any {
	dep := &Dependency{owner: d, source: w}
	dep.dirtyL = NewListener(func() { d.OnDependencyDirty(dep) })
	dep.changeL = NewListener(func() { d.OnDependencyChange(dep) })
	dep.unsubDirty = w.SubscribeDirty(dep.dirtyL)
	dep.unsubChange = w.SubscribeChange(dep.changeL)
	v := w.Read()
	dep.lastValue = v
	*newDeps = append(*newDeps, dep)
	return v
}

func (d *Derived) teardownDeps() {
	for _, dep := range d.deps {
		dep.unsubDirty()
		dep.unsubChange()
	}
	d.deps = nil
}

// DefaultOnDependencyDirty forwards the dirty notification upward
// unconditionally, honouring DirtyBeforeChange: a downstream consumer must
// see this derived value go dirty before it can possibly see it change.
func (d *Derived) DefaultOnDependencyDirty(dep *Dependency) {
	d.Registry.BroadcastDirty()
}

// DefaultOnDependencyChange forwards the change downstream unconditionally.
// It does not recompute here and does not need to: the actual recompute is
// deferred to the next Read (recompute walks lastValue against a fresh
// read of each dependency), keeping the engine lazy. What it must not skip
// is the broadcast itself, since a downstream Derived only ever learns of
// a change by subscribing to this one's change channel.
func (d *Derived) DefaultOnDependencyChange(dep *Dependency) {
	d.Registry.BroadcastChange()
}
