package internal

// PassiveDerived is a Derived that stays warm while it has listeners:
// dependency changes recompute immediately instead of waiting for the next
// Read, so a listener attached to it never observes a stale cached value
// even if it never calls Read again after the initial subscribe. With no
// listeners it degrades to the ordinary lazy behaviour of Derived.
type PassiveDerived struct {
	*Derived
}

func NewPassiveDerived(compute ComputeFn) *PassiveDerived {
	p := &PassiveDerived{Derived: NewDerived(compute)}
	p.OnDependencyChange = p.onDependencyChange
	p.Registry.OnActivate = p.onActivate
	return p
}

func (p *PassiveDerived) onDependencyChange(dep *Dependency) {
	if p.Registry.HasListeners() {
		p.slowRecompute()
		return
	}
	p.DefaultOnDependencyChange(dep)
}

// onActivate establishes a first value and a live dependency list as soon as
// something subscribes, rather than leaving the first read to a caller that
// may never come.
func (p *PassiveDerived) onActivate() {
	if !p.hasValue {
		p.slowRecompute()
	}
}
