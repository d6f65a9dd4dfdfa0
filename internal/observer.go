package internal

// Observer is the terminal node of a graph: a side-effecting callback
// subscribed to a watchable's change channel. It never subscribes to
// dirty, since it has nothing useful to do before a value has actually
// settled, and it resolves the new value itself so the callback never has
// to know about the read protocol.
type Observer struct {
	target   Watchable
	onChange func(v any)
	l        *Listener
	unsub    func()
	stopped  bool
}

func NewObserver(w Watchable, onChange func(v any)) *Observer {
	o := &Observer{target: w, onChange: onChange}
	o.l = NewListener(o.handleChange)
	o.unsub = w.SubscribeChange(o.l)
	return o
}

func (o *Observer) handleChange() {
	if o.stopped {
		return
	}
	o.onChange(o.target.Read())
}

func (o *Observer) Stop() {
	if o.stopped {
		return
	}
	o.stopped = true
	o.unsub()
}
