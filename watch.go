// Package watch implements a two-phase dependency-tracking graph: leaf
// fields and derived values that notify subscribers in two steps, a dirty
// notification that forbids reads until it resolves, followed by a change
// notification that carries a settled value. The split lets a listener
// distinguish "something upstream moved, don't read yet" from "here is the
// value you should read now", which a single change event cannot express
// once a dependency graph is more than one level deep.
package watch

import (
	"runtime"

	"github.com/watchkit/watch/internal"
)

// Watchable is implemented by every value-producing node in the graph:
// Field, DerivedValue, PassiveDerived, SourceField, EqualityGate, Signal
// and Throttled. It is sealed with an unexported method so it can only be
// implemented by types this package defines; external code composes graphs
// out of these building blocks instead of writing new node kinds against
// the (unexported) engine directly.
type Watchable[T any] interface {
	// Read resolves any pending dirty notification and returns the current
	// value. It panics if called while a dirty notification for this exact
	// watchable is in the middle of dispatching.
	Read() T

	// SubscribeDirty registers l to be called whenever this watchable
	// transitions from settled to dirty. The returned func unsubscribes;
	// the registration is held weakly and lasts only while that func is
	// reachable.
	SubscribeDirty(l func()) func()

	// SubscribeChange registers l to be called whenever this watchable
	// settles on a new value. The returned func unsubscribes; the
	// registration is held weakly and lasts only while that func is
	// reachable.
	SubscribeChange(l func()) func()

	core() internal.Watchable
}

// as performs the internal engine's any -> T cast at the one boundary where
// it is unavoidable: the generic public wrapper types have to hand a typed
// value back to their callers after the untyped engine below them has
// finished computing it.
func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

// wrapped adapts any internal.Watchable into a public Watchable[T]. All of
// the concrete public types (Field, DerivedValue, ...) embed a wrapped
// rather than reimplementing this boilerplate.
type wrapped[T any] struct {
	node internal.Watchable
}

func (w wrapped[T]) Read() T { return as[T](w.node.Read()) }

func (w wrapped[T]) SubscribeDirty(l func()) func() {
	ln := internal.NewListener(l)
	unsub := w.node.SubscribeDirty(ln)
	return func() {
		unsub()
		runtime.KeepAlive(ln)
	}
}

func (w wrapped[T]) SubscribeChange(l func()) func() {
	ln := internal.NewListener(l)
	unsub := w.node.SubscribeChange(ln)
	return func() {
		unsub()
		runtime.KeepAlive(ln)
	}
}

func (w wrapped[T]) core() internal.Watchable { return w.node }
