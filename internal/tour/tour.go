// Package tour sequences unattended camera flights through an ordered list of
// destinations, pausing between stops and returning to an overview at the end.
package tour

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/timeline"
)

var (
	// ErrAlreadyRunning is returned by Start while a tour is in progress.
	ErrAlreadyRunning = errors.New("tour already running")
	// ErrNoSteps is returned by Start when there is nothing to visit.
	ErrNoSteps = errors.New("tour has no steps")
)

// Step is one stop of the tour.
type Step struct {
	Destination  string
	DurationHint time.Duration // Time allotted to the flight before the pause
}

// State is Idle or Running at a step index.
type State struct {
	Running bool
	Index   int
}

// Idle is the resting state.
var Idle = State{}

func (s State) String() string {
	if !s.Running {
		return "Idle"
	}
	return fmt.Sprintf("Running(%d)", s.Index)
}

// Navigator flies the camera to a stop.
type Navigator func(step Step, index int) error

// Options holds the tour timing.
type Options struct {
	Pause       time.Duration // After each step's DurationHint
	ReturnDelay time.Duration // After the last step, before Finish
}

// Sequencer is the tour state machine. Timers live on a timeline.Deferred so
// they fire on the simulation clock from the frame loop.
type Sequencer struct {
	steps    []Step
	opts     Options
	navigate Navigator
	deferred *timeline.Deferred
	log      *zap.Logger

	state      State
	stepTask   *timeline.Task
	returnTask *timeline.Task

	// Finish runs ReturnDelay after the last step; usually the overview flight.
	Finish func()
	// OnTransition observes every state change.
	OnTransition func(from, to State)
}

// New creates an idle sequencer.
func New(deferred *timeline.Deferred, steps []Step, opts Options, navigate Navigator, log *zap.Logger) *Sequencer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sequencer{
		steps:    steps,
		opts:     opts,
		navigate: navigate,
		deferred: deferred,
		log:      log,
	}
}

// State returns the current state.
func (s *Sequencer) State() State {
	return s.state
}

// Running reports whether a tour is in progress.
func (s *Sequencer) Running() bool {
	return s.state.Running
}

// Steps returns the configured stops.
func (s *Sequencer) Steps() []Step {
	return s.steps
}

// SetSteps replaces the route. It is refused while a tour is running.
func (s *Sequencer) SetSteps(steps []Step, opts Options) error {
	if s.state.Running {
		return ErrAlreadyRunning
	}
	s.steps = steps
	s.opts = opts
	return nil
}

// Start begins the tour at the first step. A second Start while running is
// ignored and reported as ErrAlreadyRunning. A pending return flight from an
// earlier tour is cancelled.
func (s *Sequencer) Start(now time.Duration) error {
	if s.state.Running {
		s.log.Debug("tour start ignored", zap.Stringer("state", s.state))
		return ErrAlreadyRunning
	}
	if len(s.steps) == 0 {
		return ErrNoSteps
	}
	s.returnTask.Cancel()
	s.returnTask = nil

	s.log.Info("tour started", zap.Int("steps", len(s.steps)))
	s.enter(0, now)
	return nil
}

// Stop abandons the tour. The camera keeps whatever flight is in progress.
func (s *Sequencer) Stop() {
	s.stepTask.Cancel()
	s.returnTask.Cancel()
	s.stepTask, s.returnTask = nil, nil
	if s.state.Running {
		s.log.Info("tour stopped", zap.Stringer("state", s.state))
		s.transition(Idle)
	}
}

func (s *Sequencer) enter(i int, now time.Duration) {
	step := s.steps[i]
	s.transition(State{Running: true, Index: i})

	if s.navigate != nil {
		if err := s.navigate(step, i); err != nil {
			// The timer still runs so the tour keeps its pace.
			s.log.Warn("tour navigation failed",
				zap.String("destination", step.Destination),
				zap.Error(err),
			)
		}
	}

	due := now + step.DurationHint + s.opts.Pause
	s.stepTask = s.deferred.After(now, step.DurationHint+s.opts.Pause, fmt.Sprintf("tour-step-%d", i), func() {
		s.stepTask = nil
		if i+1 < len(s.steps) {
			s.enter(i+1, due)
			return
		}
		s.finish(due)
	})
}

func (s *Sequencer) finish(now time.Duration) {
	s.transition(Idle)
	s.log.Info("tour finished")
	s.returnTask = s.deferred.After(now, s.opts.ReturnDelay, "tour-return", func() {
		s.returnTask = nil
		if s.Finish != nil {
			s.Finish()
		}
	})
}

func (s *Sequencer) transition(to State) {
	from := s.state
	s.state = to
	s.log.Debug("tour transition", zap.Stringer("from", from), zap.Stringer("to", to))
	if s.OnTransition != nil {
		s.OnTransition(from, to)
	}
}
