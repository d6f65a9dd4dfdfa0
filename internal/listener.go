package internal

import "weak"

// Listener is a zero-argument callable. Its pointer identity, not its
// value, is what a subscriberSet dedupes on: two listeners built from
// behaviourally identical closures are still distinct subscriptions.
type Listener struct{ fn func() }

func NewListener(fn func()) *Listener { return &Listener{fn: fn} }

// subscriberSet holds listeners weakly with deterministic insertion-order
// iteration. Nothing in the set keeps a listener alive; weak.Pointer lets
// entries whose owner has been collected fall away on the next iteration.
type subscriberSet struct {
	entries []weak.Pointer[Listener]
}

func (s *subscriberSet) subscribe(l *Listener) func() {
	wp := weak.Make(l)
	for _, e := range s.entries {
		if e == wp {
			return s.unsubscribeFunc(wp)
		}
	}
	s.entries = append(s.entries, wp)
	return s.unsubscribeFunc(wp)
}

func (s *subscriberSet) unsubscribeFunc(wp weak.Pointer[Listener]) func() {
	return func() {
		for i, e := range s.entries {
			if e == wp {
				s.entries = append(s.entries[:i], s.entries[i+1:]...)
				return
			}
		}
	}
}

// each invokes fn for every live listener, in insertion order, over a
// snapshot of the current membership. The snapshot means a listener that
// subscribes or unsubscribes another listener mid-iteration (including
// unsubscribing itself) cannot corrupt the walk. Listener panics are
// isolated: the first one is captured and re-raised, wrapped, once every
// listener has had a chance to run.
func (s *subscriberSet) each(fn func(*Listener)) {
	snapshot := make([]weak.Pointer[Listener], len(s.entries))
	copy(snapshot, s.entries)

	var firstFailure any
	for _, e := range snapshot {
		l := e.Value()
		if l == nil {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil && firstFailure == nil {
					firstFailure = r
				}
			}()
			fn(l)
		}()
	}
	s.compact()
	if firstFailure != nil {
		panic(ListenerFailure{Cause: firstFailure})
	}
}

func (s *subscriberSet) compact() {
	out := s.entries[:0]
	for _, e := range s.entries {
		if e.Value() != nil {
			out = append(out, e)
		}
	}
	s.entries = out
}

func (s *subscriberSet) count() int {
	n := 0
	for _, e := range s.entries {
		if e.Value() != nil {
			n++
		}
	}
	return n
}
