package internal

// CounterCore is the L3 primitive behind the public Signal type: a
// steppable integer watchable. Step moves it by any delta, negative ones
// included, and Reset sets it back to zero, so it is not monotonic. It reuses exactly the
// Field two-phase write protocol; the only difference is the value domain.
type CounterCore struct {
	Registry ListenerRegistry

	value int
}

func NewCounterCore(initial int) *CounterCore {
	return &CounterCore{value: initial}
}

func (c *CounterCore) Read() any {
	c.Registry.AssertNotDispatchingDirty()
	c.Registry.MarkRead()
	return c.value
}

func (c *CounterCore) SubscribeDirty(l *Listener) func()  { return c.Registry.SubscribeDirty(l) }
func (c *CounterCore) SubscribeChange(l *Listener) func() { return c.Registry.SubscribeChange(l) }

// Step advances the counter by delta. A zero delta still performs the
// mutator's perform/signal cycle but never broadcasts, matching
// NoRedundantEvents for a no-op step.
func (c *CounterCore) Step(delta int) *RawMutator {
	return NewRawMutator(func() (any, func()) {
		changed := delta != 0
		if changed {
			c.Registry.BroadcastDirty()
			c.value += delta
		}
		return c.value, func() {
			if changed {
				c.Registry.BroadcastChange()
			}
		}
	})
}

func (c *CounterCore) Reset() *RawMutator {
	return NewRawMutator(func() (any, func()) {
		changed := c.value != 0
		if changed {
			c.Registry.BroadcastDirty()
			c.value = 0
		}
		return 0, func() {
			if changed {
				c.Registry.BroadcastChange()
			}
		}
	})
}
