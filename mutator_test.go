package watch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/watchkit/watch"
)

func TestChainWithAtomicity(t *testing.T) {
	a := watch.NewField(1)
	b := watch.NewField(2)

	var seenA, seenB []int
	unsubA := a.SubscribeChange(func() { seenA = append(seenA, a.Read()) })
	unsubB := b.SubscribeChange(func() { seenB = append(seenB, b.Read()) })
	defer unsubA()
	defer unsubB()

	sum := watch.NewDerived(func(ctx *watch.Ctx, _ int, _ bool) int {
		return watch.Watch(ctx, a) + watch.Watch(ctx, b)
	})
	assert.Equal(t, 3, sum.Read())

	observed := 0
	unsubSum := sum.SubscribeChange(func() {
		// by the time sum's own change fires, both writes have already
		// been signaled: reading it here must reflect both at once.
		observed = sum.Read()
	})
	defer unsubSum()

	watch.ChainWith(a.Set(10), b.Set(20)).Commit()

	assert.Equal(t, 30, observed)
	assert.Equal(t, []int{10}, seenA)
	assert.Equal(t, []int{20}, seenB)
}

func TestMutatorPerformSignalOrderEnforced(t *testing.T) {
	f := watch.NewField(1)
	m := f.Set(2)

	assert.Panics(t, func() { m.Signal() })

	m.Perform()
	assert.Panics(t, func() { m.Perform() })

	m.Signal()
	assert.Panics(t, func() { m.Signal() })
}

func TestChainFuncUsesPerformResult(t *testing.T) {
	a := watch.NewField(1)
	b := watch.NewField(100)

	m := watch.ChainFunc(a.Set(5), func(v int) *watch.Mutator[int] {
		return b.Set(v * 2)
	})
	m.Commit()

	assert.Equal(t, 5, a.Read())
	assert.Equal(t, 10, b.Read())
}

func TestAllMutatorsEmptyIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		watch.AllMutators().Commit()
	})
}

func TestDummyMutatorProducesNoEvents(t *testing.T) {
	f := watch.NewField(1)
	calls := 0
	unsub := f.SubscribeChange(func() { calls++ })
	defer unsub()

	watch.ChainWith(watch.DummyMutator(), f.Set(2)).Commit()
	assert.Equal(t, 1, calls)
}
