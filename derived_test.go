package watch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/watchkit/watch"
)

func sum(ctx *watch.Ctx, a, b watch.Watchable[int]) int {
	return watch.Watch(ctx, a) + watch.Watch(ctx, b)
}

func TestDerivedRecomputesOnDependencyChange(t *testing.T) {
	a := watch.NewField(1)
	b := watch.NewField(2)
	d := watch.NewDerived(func(ctx *watch.Ctx, _ int, _ bool) int {
		return sum(ctx, a, b)
	})

	assert.Equal(t, 3, d.Read())

	a.Set(10).Commit()
	assert.Equal(t, 12, d.Read())
}

func TestDerivedFastPathSkipsRecomputeWhenUnobservableChange(t *testing.T) {
	a := watch.NewField(1)
	calls := 0
	d := watch.NewDerived(func(ctx *watch.Ctx, _ int, _ bool) int {
		calls++
		return watch.Watch(ctx, a)
	})

	assert.Equal(t, 1, d.Read())
	assert.Equal(t, 1, calls)

	// writing the same value dirties nothing (NoRedundantEvents), so a
	// second read must not recompute.
	a.Set(1).Commit()
	assert.Equal(t, 1, d.Read())
	assert.Equal(t, 1, calls)
}

func TestDerivedDiamondDependencyComputesOnce(t *testing.T) {
	root := watch.NewField(2)
	left := watch.NewDerived(func(ctx *watch.Ctx, _ int, _ bool) int {
		return watch.Watch(ctx, root) * 2
	})
	right := watch.NewDerived(func(ctx *watch.Ctx, _ int, _ bool) int {
		return watch.Watch(ctx, root) * 3
	})

	tipCalls := 0
	tip := watch.NewDerived(func(ctx *watch.Ctx, _ int, _ bool) int {
		tipCalls++
		return watch.Watch(ctx, left) + watch.Watch(ctx, right)
	})

	assert.Equal(t, 10, tip.Read())
	assert.Equal(t, 1, tipCalls)

	root.Set(3).Commit()
	assert.Equal(t, 15, tip.Read())
	assert.Equal(t, 2, tipCalls)
}

func TestDerivedRebuildsDependenciesOnBranch(t *testing.T) {
	useLeft := watch.NewField(true)
	left := watch.NewField("left")
	right := watch.NewField("right")

	d := watch.NewDerived(func(ctx *watch.Ctx, _ string, _ bool) string {
		if watch.Watch(ctx, useLeft) {
			return watch.Watch(ctx, left)
		}
		return watch.Watch(ctx, right)
	})

	assert.Equal(t, "left", d.Read())

	// right isn't a dependency yet; changing it must not dirty d.
	dirtyCount := 0
	unsub := d.SubscribeDirty(func() { dirtyCount++ })
	defer unsub()

	right.Set("right-changed").Commit()
	assert.Zero(t, dirtyCount)

	useLeft.Set(false).Commit()
	assert.Equal(t, "right-changed", d.Read())
}

func TestDerivedComputationPanicWraps(t *testing.T) {
	d := watch.NewDerived(func(ctx *watch.Ctx, _ int, _ bool) int {
		panic("boom")
	})

	assert.PanicsWithValue(t, watch.ComputationFailure{Cause: "boom"}, func() { d.Read() })
}
