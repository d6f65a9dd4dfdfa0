package internal

import "github.com/petermattis/goid"

// affinity records the goroutine that first drove a particular watchable
// and panics if a different one shows up later. The core has no locks and
// no atomic-memory obligations because it assumes a single mutator
// thread; this is the debug-time tripwire for that assumption. It is
// embedded per ListenerRegistry rather than shared process-wide, since
// the single-mutator-thread assumption is a property of one connected
// graph, not of the whole process: two independent graphs are free to
// live on two different goroutines as long as neither is ever touched
// from more than one.
type affinity struct {
	gid int64
	set bool
}

func (a *affinity) check() {
	g := goid.Get()
	if !a.set {
		a.gid = g
		a.set = true
		return
	}
	if a.gid != g {
		panic(ConcurrentMutationError{})
	}
}
