package watch_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/watchkit/watch"
)

func TestFieldReadInitial(t *testing.T) {
	f := watch.NewField(7)
	assert.Equal(t, 7, f.Read())
}

func TestFieldSetCommit(t *testing.T) {
	f := watch.NewField("a")
	f.Set("b").Commit()
	assert.Equal(t, "b", f.Read())
}

func TestFieldDirtyBeforeChange(t *testing.T) {
	f := watch.NewField(1)

	var order []string
	unsubDirty := f.SubscribeDirty(func() { order = append(order, "dirty") })
	unsubChange := f.SubscribeChange(func() { order = append(order, "change") })
	defer unsubDirty()
	defer unsubChange()

	f.Set(2).Commit()

	assert.Equal(t, []string{"dirty", "change"}, order)
}

func TestFieldNoRedundantEventsOnEqualWrite(t *testing.T) {
	f := watch.NewField(5)

	dirtyCount, changeCount := 0, 0
	unsubDirty := f.SubscribeDirty(func() { dirtyCount++ })
	unsubChange := f.SubscribeChange(func() { changeCount++ })
	defer unsubDirty()
	defer unsubChange()

	f.Set(5).Commit()

	assert.Zero(t, dirtyCount)
	assert.Zero(t, changeCount)
}

func TestFieldUpdateSeesPriorValue(t *testing.T) {
	f := watch.NewField(10)
	f.Update(func(v int) int { return v + 1 }).Commit()
	assert.Equal(t, 11, f.Read())
}

func TestFieldReadDuringDirtyDispatchPanics(t *testing.T) {
	f := watch.NewField(1)
	unsub := f.SubscribeDirty(func() {
		assert.Panics(t, func() { f.Read() })
	})
	defer unsub()
	f.Set(2).Commit()
}

func TestFieldWithEqualsSuppressesWritesItConsidersEqual(t *testing.T) {
	f := watch.NewField("Alice").WithEquals(func(a, b string) bool {
		return strings.EqualFold(a, b)
	})

	changeCount := 0
	unsub := f.SubscribeChange(func() { changeCount++ })
	defer unsub()

	f.Set("ALICE").Commit()
	assert.Zero(t, changeCount, "case-only difference is not significant under this equality")
	assert.Equal(t, "Alice", f.Read(), "a write the equality considers equal is not stored")

	f.Set("Bob").Commit()
	assert.Equal(t, 1, changeCount)
}
