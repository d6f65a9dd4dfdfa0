package internal

import "time"

// Timer abstracts a single-shot cancellable delay so the epoch state
// machine below can be driven by a fake clock in tests instead of a real
// one. The public package supplies the production implementation over
// time.AfterFunc; nothing in this package touches a wall clock directly.
type Timer interface {
	Start(d time.Duration, fn func())
	Stop()
}

// Throttled coalesces a source's dirty and change notifications into at
// most one broadcast pair per interval, on both edges: the first commit
// after an idle period opens a window and its dirty and change both forward
// immediately (leading edge, together confirming the epoch), every further
// commit during that window is absorbed silently on both channels, and
// exactly one more dirty-then-change pair fires when the window resolves if
// any commit arrived while it was open (trailing edge). Reads are never
// delayed — Throttled always forwards straight to source, so a caller that
// reads eagerly always sees the current value regardless of the
// notification schedule.
type Throttled struct {
	Registry ListenerRegistry

	source   Watchable
	interval time.Duration
	timer    Timer

	dirtyL      *Listener
	changeL     *Listener
	unsubDirty  func()
	unsubChange func()

	timerRunning   bool
	epochConfirmed bool
	pending        bool
	closed         bool

	// ThrottleStart/ThrottleEnd count epoch opens and closes; the public
	// Throttling watchable is a Derived over both, true whenever an epoch
	// has opened more times than it has closed.
	ThrottleStart *CounterCore
	ThrottleEnd   *CounterCore
}

func NewThrottled(source Watchable, interval time.Duration, timer Timer) *Throttled {
	t := &Throttled{
		source:        source,
		interval:      interval,
		timer:         timer,
		ThrottleStart: NewCounterCore(0),
		ThrottleEnd:   NewCounterCore(0),
	}
	t.dirtyL = NewListener(t.onSourceDirty)
	t.changeL = NewListener(t.onSourceChange)
	t.unsubDirty = source.SubscribeDirty(t.dirtyL)
	t.unsubChange = source.SubscribeChange(t.changeL)
	return t
}

func (t *Throttled) Read() any {
	t.Registry.AssertNotDispatchingDirty()
	v := t.source.Read()
	t.Registry.MarkRead()
	return v
}

func (t *Throttled) SubscribeDirty(l *Listener) func()  { return t.Registry.SubscribeDirty(l) }
func (t *Throttled) SubscribeChange(l *Listener) func() { return t.Registry.SubscribeChange(l) }

// onSourceDirty opens a new epoch on the first dirty since idle and forwards
// it immediately (the leading edge). A dirty that arrives while an epoch is
// already active is gated exactly like a change: it only records that
// something is pending, without ever reaching this value's own dirty
// subscribers on its own. The corresponding pair is only ever broadcast
// again at onTimerFire, alongside the resolving change.
func (t *Throttled) onSourceDirty() {
	if t.closed {
		return
	}
	if !t.timerRunning {
		t.timerRunning = true
		t.epochConfirmed = false
		t.ThrottleStart.Step(1).Commit()
		t.timer.Start(t.interval, t.onTimerFire)
		t.Registry.ResetDirty()
		t.Registry.BroadcastDirty()
		return
	}
	t.pending = true
}

// onSourceChange forwards immediately if the epoch hasn't been confirmed
// yet — either there is no epoch (a change with no preceding dirty), or the
// epoch is still dirty-only, meaning this is the change that confirms the
// commit which opened it. A confirmed epoch absorbs every further change
// into pending, resolved as a pair with its dirty by onTimerFire.
func (t *Throttled) onSourceChange() {
	if t.closed {
		return
	}
	if !t.timerRunning || !t.epochConfirmed {
		if !t.timerRunning {
			t.timerRunning = true
			t.ThrottleStart.Step(1).Commit()
			t.timer.Start(t.interval, t.onTimerFire)
		}
		t.epochConfirmed = true
		t.pending = false
		t.maybeForceSourceRead()
		t.Registry.BroadcastChange()
		return
	}
	t.pending = true
}

// onTimerFire is the epoch clock. With nothing pending the epoch closes
// outright. With something pending, the epoch continues into a fresh
// cooldown window rather than closing, per the resolving-timer rule: a
// steady stream of updates keeps the epoch open and dispatches at most one
// dirty-then-change pair per interval until the stream stops. ResetDirty is
// needed before the rebroadcast since BroadcastDirty is a no-op while the
// leading edge's dirty bit is still set; BroadcastDirty then clears
// signaled as a side effect, so the change that follows never needs its
// own explicit reset.
func (t *Throttled) onTimerFire() {
	if !t.pending {
		t.timerRunning = false
		t.epochConfirmed = false
		t.ThrottleEnd.Step(1).Commit()
		return
	}
	t.pending = false
	t.Registry.ResetDirty()
	t.Registry.BroadcastDirty()
	t.maybeForceSourceRead()
	t.Registry.BroadcastChange()
	t.timer.Start(t.interval, t.onTimerFire)
}

// maybeForceSourceRead reads source once when Throttled itself has
// listeners. The read clears source's dirty and signaled bits, so source
// dispatches dirty and change again on its next write instead of coalescing
// them away.
func (t *Throttled) maybeForceSourceRead() {
	if t.Registry.HasListeners() {
		t.source.Read()
	}
}

// Close stops the pending timer and detaches from source. A Throttled
// value that has been closed silently drops further source activity.
func (t *Throttled) Close() {
	if t.closed {
		return
	}
	t.closed = true
	t.timer.Stop()
	t.unsubDirty()
	t.unsubChange()
}
