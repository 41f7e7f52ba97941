package tour

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Faultbox/orrery/internal/timeline"
)

const ms = time.Millisecond

type transition struct {
	From, To State
	At       time.Duration
}

type harness struct {
	seq         *Sequencer
	deferred    *timeline.Deferred
	now         time.Duration
	transitions []transition
	visited     []string
	finishedAt  []time.Duration
}

func newHarness(t *testing.T, steps []Step, opts Options) *harness {
	h := &harness{deferred: timeline.NewDeferred(zaptest.NewLogger(t))}
	h.seq = New(h.deferred, steps, opts, func(step Step, _ int) error {
		h.visited = append(h.visited, step.Destination)
		return nil
	}, zaptest.NewLogger(t))
	h.seq.OnTransition = func(from, to State) {
		h.transitions = append(h.transitions, transition{from, to, h.now})
	}
	h.seq.Finish = func() { h.finishedAt = append(h.finishedAt, h.now) }
	return h
}

// runUntil ticks the deferred queue every step up to and including end.
func (h *harness) runUntil(end, step time.Duration) {
	for h.now+step <= end {
		h.now += step
		h.deferred.Run(h.now)
	}
}

func threeSteps() []Step {
	return []Step{
		{Destination: "mercury", DurationHint: 1000 * ms},
		{Destination: "venus", DurationHint: 1000 * ms},
		{Destination: "earth", DurationHint: 1000 * ms},
	}
}

func running(i int) State { return State{Running: true, Index: i} }

func TestSequencerTransitionTimes(t *testing.T) {
	h := newHarness(t, threeSteps(), Options{Pause: 500 * ms, ReturnDelay: 2000 * ms})

	require.NoError(t, h.seq.Start(0))
	h.runUntil(7000*ms, 100*ms)

	assert.Equal(t, []transition{
		{Idle, running(0), 0},
		{running(0), running(1), 1500 * ms},
		{running(1), running(2), 3000 * ms},
		{running(2), Idle, 4500 * ms},
	}, h.transitions)
	assert.Equal(t, []string{"mercury", "venus", "earth"}, h.visited)
	assert.Equal(t, []time.Duration{6500 * ms}, h.finishedAt)
	assert.False(t, h.seq.Running())
}

func TestSequencerCoarseFramesDoNotDrift(t *testing.T) {
	h := newHarness(t, threeSteps(), Options{Pause: 500 * ms})

	require.NoError(t, h.seq.Start(0))
	// 700ms frames land late on every boundary; the schedule still chains
	// from the due times.
	h.runUntil(4900*ms, 700*ms)

	require.Len(t, h.transitions, 4)
	assert.Equal(t, 2100*ms, h.transitions[1].At)
	assert.Equal(t, 3500*ms, h.transitions[2].At)
	assert.Equal(t, 4900*ms, h.transitions[3].At)
}

func TestSequencerSecondStartIgnored(t *testing.T) {
	h := newHarness(t, threeSteps(), Options{Pause: 500 * ms})

	require.NoError(t, h.seq.Start(0))
	h.runUntil(800*ms, 100*ms)

	err := h.seq.Start(h.now)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Equal(t, running(0), h.seq.State())
	assert.Equal(t, []string{"mercury"}, h.visited)
}

func TestSequencerNoSteps(t *testing.T) {
	h := newHarness(t, nil, Options{})
	assert.ErrorIs(t, h.seq.Start(0), ErrNoSteps)
	assert.Equal(t, Idle, h.seq.State())
}

func TestSequencerStop(t *testing.T) {
	h := newHarness(t, threeSteps(), Options{Pause: 500 * ms})

	require.NoError(t, h.seq.Start(0))
	h.runUntil(2000*ms, 100*ms)
	h.seq.Stop()
	h.runUntil(8000*ms, 100*ms)

	assert.Equal(t, Idle, h.seq.State())
	assert.Equal(t, []string{"mercury", "venus"}, h.visited)
	assert.Empty(t, h.finishedAt)
	assert.Zero(t, h.deferred.Len())

	// Stop on an idle sequencer is a no-op.
	n := len(h.transitions)
	h.seq.Stop()
	assert.Len(t, h.transitions, n)
}

func TestSequencerRestartCancelsPendingReturn(t *testing.T) {
	h := newHarness(t, threeSteps()[:1], Options{Pause: 500 * ms, ReturnDelay: 2000 * ms})

	require.NoError(t, h.seq.Start(0))
	h.runUntil(1500*ms, 100*ms)
	require.Equal(t, Idle, h.seq.State())

	// The return flight is pending; a new tour supersedes it.
	require.NoError(t, h.seq.Start(h.now))
	h.runUntil(3000*ms, 100*ms)

	assert.Empty(t, h.finishedAt, "first tour's return flight should have been cancelled")

	h.runUntil(6000*ms, 100*ms)
	assert.Equal(t, []time.Duration{5000 * ms}, h.finishedAt)
}

func TestSequencerNavigationFailureKeepsPace(t *testing.T) {
	deferred := timeline.NewDeferred(nil)
	var visited []int
	seq := New(deferred, threeSteps(), Options{Pause: 500 * ms}, func(_ Step, i int) error {
		visited = append(visited, i)
		if i == 1 {
			return errors.New("no such body")
		}
		return nil
	}, nil)

	require.NoError(t, seq.Start(0))
	for now := time.Duration(0); now <= 4500*ms; now += 500 * ms {
		deferred.Run(now)
	}

	assert.Equal(t, []int{0, 1, 2}, visited)
	assert.Equal(t, Idle, seq.State())
}

func TestSetStepsRefusedWhileRunning(t *testing.T) {
	h := newHarness(t, threeSteps(), Options{Pause: 500 * ms})
	require.NoError(t, h.seq.Start(0))

	assert.ErrorIs(t, h.seq.SetSteps(nil, Options{}), ErrAlreadyRunning)

	h.seq.Stop()
	require.NoError(t, h.seq.SetSteps(threeSteps()[:2], Options{Pause: 0}))
	assert.Len(t, h.seq.Steps(), 2)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Idle", Idle.String())
	assert.Equal(t, "Running(2)", running(2).String())
}
