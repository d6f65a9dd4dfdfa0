package watch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/watchkit/watch"
)

func TestSignalStepBroadcasts(t *testing.T) {
	s := watch.NewSignal(0)

	var order []string
	unsubD := s.SubscribeDirty(func() { order = append(order, "dirty") })
	unsubC := s.SubscribeChange(func() { order = append(order, "change") })
	defer unsubD()
	defer unsubC()

	s.Step(1).Commit()
	assert.Equal(t, 1, s.Read())
	assert.Equal(t, []string{"dirty", "change"}, order)
}

func TestSignalZeroStepIsNoop(t *testing.T) {
	s := watch.NewSignal(5)
	calls := 0
	unsub := s.SubscribeChange(func() { calls++ })
	defer unsub()

	s.Step(0).Commit()
	assert.Zero(t, calls)
	assert.Equal(t, 5, s.Read())
}

func TestSignalReset(t *testing.T) {
	s := watch.NewSignal(9)
	s.Reset().Commit()
	assert.Equal(t, 0, s.Read())
}

func TestSignalIsDirtyBetweenPerformAndSignal(t *testing.T) {
	s := watch.NewSignal(0)
	assert.False(t, s.IsDirty())

	m := s.Step(1)
	m.Perform()
	assert.True(t, s.IsDirty(), "a performed-but-not-yet-signaled step is dirty")

	m.Signal()
	assert.True(t, s.IsDirty(), "dirty is cleared by Read, not by Signal")

	s.Read()
	assert.False(t, s.IsDirty())
}
