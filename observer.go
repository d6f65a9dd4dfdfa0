package watch

import "github.com/watchkit/watch/internal"

// Observer is the terminal node of a graph: a callback invoked with the
// new value every time w settles on a change. It never fires for a bare
// dirty notification.
type Observer[T any] struct {
	core *internal.Observer
}

func NewObserver[T any](w Watchable[T], onChange func(T)) *Observer[T] {
	c := internal.NewObserver(w.core(), func(v any) { onChange(as[T](v)) })
	return &Observer[T]{core: c}
}

func (o *Observer[T]) Stop() { o.core.Stop() }
