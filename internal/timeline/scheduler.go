package timeline

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Action is the work attached to a scheduled event.
type Action func() error

// Event is a one-shot effect that fires the first tick at or after Trigger.
type Event struct {
	Name    string
	Trigger time.Duration
	Fired   bool
	Action  Action
}

// Scheduler is a run-once trigger table keyed by elapsed time. Events are never
// removed or re-armed; they are evaluated in registration order every tick
// until they fire.
type Scheduler struct {
	events []*Event
	log    *zap.Logger
}

// NewScheduler creates an empty scheduler.
func NewScheduler(log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{log: log}
}

// At registers an action to run once the clock reaches trigger. It may be
// called from inside another event's action; an event registered that way
// that is already due fires in the same tick.
func (s *Scheduler) At(name string, trigger time.Duration, action Action) *Event {
	ev := &Event{Name: name, Trigger: trigger, Action: action}
	s.events = append(s.events, ev)
	s.log.Debug("event scheduled",
		zap.String("event", name),
		zap.Duration("trigger", trigger),
	)
	return ev
}

// Tick fires every due event and returns how many fired. A failing action is
// logged and does not stop later events from being evaluated.
func (s *Scheduler) Tick(now time.Duration) int {
	fired := 0
	// Index loop: actions may append while we iterate.
	for i := 0; i < len(s.events); i++ {
		ev := s.events[i]
		if ev.Fired || now < ev.Trigger {
			continue
		}
		ev.Fired = true
		fired++

		s.log.Debug("event fired",
			zap.String("event", ev.Name),
			zap.Duration("trigger", ev.Trigger),
			zap.Duration("now", now),
		)
		if err := run(ev.Action); err != nil {
			s.log.Error("event action failed",
				zap.String("event", ev.Name),
				zap.Error(err),
			)
		}
	}
	return fired
}

// Pending returns the number of events that have not fired yet.
func (s *Scheduler) Pending() int {
	n := 0
	for _, ev := range s.events {
		if !ev.Fired {
			n++
		}
	}
	return n
}

// Fired reports whether an event with the given name has fired.
func (s *Scheduler) Fired(name string) bool {
	for _, ev := range s.events {
		if ev.Name == name && ev.Fired {
			return true
		}
	}
	return false
}

// run invokes fn, turning a panic into an error.
func run(fn func() error) (err error) {
	if fn == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
