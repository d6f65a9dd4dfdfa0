package watch

import (
	"time"

	"github.com/watchkit/watch/internal"
)

// realTimer is the production internal.Timer: a single-shot cancellable
// delay over time.AfterFunc. Tests substitute a fake clock instead by
// driving internal.NewThrottled directly with their own internal.Timer.
type realTimer struct {
	t *time.Timer
}

func (r *realTimer) Start(d time.Duration, fn func()) {
	r.t = time.AfterFunc(d, fn)
}

func (r *realTimer) Stop() {
	if r.t != nil {
		r.t.Stop()
	}
}

// Throttled coalesces a source's dirty and change notifications: the first
// commit after an idle period is forwarded immediately, further commits
// within the interval are absorbed, and one trailing dirty-then-change pair
// fires when the interval ends if any arrived. Reads always go straight to
// source, so throttling only ever delays notifications, never the value
// itself.
type Throttled[T any] struct {
	wrapped[T]
	engine     *internal.Throttled
	throttling *DerivedValue[bool]
}

func NewThrottled[T any](source Watchable[T], interval time.Duration) *Throttled[T] {
	c := internal.NewThrottled(source.core(), interval, &realTimer{})
	t := &Throttled[T]{wrapped: wrapped[T]{node: c}, engine: c}
	start := wrapped[int]{node: c.ThrottleStart}
	end := wrapped[int]{node: c.ThrottleEnd}
	t.throttling = NewDerived(func(ctx *Ctx, _ bool, _ bool) bool {
		return Watch(ctx, start) > Watch(ctx, end)
	})
	return t
}

// Throttling reports whether a throttle epoch is open. It becomes true on
// the commit that opens the epoch, before any update has been held back,
// and false again once the epoch's timer finally discharges with nothing
// left pending.
func (t *Throttled[T]) Throttling() *DerivedValue[bool] { return t.throttling }

// Close stops the pending timer and detaches from source.
func (t *Throttled[T]) Close() { t.engine.Close() }
