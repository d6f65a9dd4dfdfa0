package watch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/watchkit/watch"
)

func TestSourceFieldDirectValue(t *testing.T) {
	sf := watch.NewSourceField(1)
	assert.Equal(t, 1, sf.Read())

	sf.SetDirect(2).Commit()
	assert.Equal(t, 2, sf.Read())
}

func TestSourceFieldRedirectsToSource(t *testing.T) {
	sf := watch.NewSourceField(0)
	src := watch.NewField(42)

	sf.SetSource(src).Commit()
	assert.Equal(t, 42, sf.Read())

	src.Set(43).Commit()
	assert.Equal(t, 43, sf.Read())
}

func TestSourceFieldReassigningSameSourceIsNoop(t *testing.T) {
	sf := watch.NewSourceField(0)
	src := watch.NewField(1)
	sf.SetSource(src).Commit()

	dirtyCount, changeCount := 0, 0
	unsubD := sf.SubscribeDirty(func() { dirtyCount++ })
	unsubC := sf.SubscribeChange(func() { changeCount++ })
	defer unsubD()
	defer unsubC()

	sf.SetSource(src).Commit()

	assert.Zero(t, dirtyCount)
	assert.Zero(t, changeCount)
}

func TestSourceFieldForwardsDirtyThenChange(t *testing.T) {
	sf := watch.NewSourceField(0)
	src := watch.NewField(1)
	sf.SetSource(src).Commit()
	// settle sf first: until it is read, the dirty/change pair from
	// SetSource itself coalesces any further notification.
	assert.Equal(t, 1, sf.Read())

	var order []string
	unsubD := sf.SubscribeDirty(func() { order = append(order, "dirty") })
	unsubC := sf.SubscribeChange(func() { order = append(order, "change") })
	defer unsubD()
	defer unsubC()

	src.Set(2).Commit()
	assert.Equal(t, []string{"dirty", "change"}, order)
}
