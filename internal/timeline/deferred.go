package timeline

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// Task is a pending deferred invocation. Cancel stops it from firing.
type Task struct {
	Name      string
	Due       time.Duration
	seq       uint64
	fn        func()
	cancelled bool
	done      bool
}

// Cancel prevents the task from firing. Safe to call on a nil, fired or
// already cancelled task.
func (t *Task) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
}

// Pending reports whether the task will still fire.
func (t *Task) Pending() bool {
	return t != nil && !t.cancelled && !t.done
}

// Deferred runs callbacks after a delay measured on the simulation clock.
type Deferred struct {
	tasks []*Task
	seq   uint64
	log   *zap.Logger
}

// NewDeferred creates an empty deferred queue.
func NewDeferred(log *zap.Logger) *Deferred {
	if log == nil {
		log = zap.NewNop()
	}
	return &Deferred{log: log}
}

// After schedules fn to run once the clock reaches now+delay.
func (d *Deferred) After(now, delay time.Duration, name string, fn func()) *Task {
	d.seq++
	t := &Task{Name: name, Due: now + delay, seq: d.seq, fn: fn}
	d.tasks = append(d.tasks, t)
	return t
}

// Run fires every due task in due order (ties in submission order) and drops
// fired and cancelled tasks. Tasks scheduled by a callback run on a later
// call, even when already due.
func (d *Deferred) Run(now time.Duration) int {
	var due, keep []*Task
	for _, t := range d.tasks {
		switch {
		case t.cancelled:
			d.log.Debug("deferred task dropped", zap.String("task", t.Name))
		case t.Due <= now:
			due = append(due, t)
		default:
			keep = append(keep, t)
		}
	}
	d.tasks = keep

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].Due != due[j].Due {
			return due[i].Due < due[j].Due
		}
		return due[i].seq < due[j].seq
	})

	fired := 0
	for _, t := range due {
		// An earlier callback in this batch may have cancelled it.
		if t.cancelled {
			continue
		}
		t.done = true
		fired++
		if err := run(func() error { t.fn(); return nil }); err != nil {
			d.log.Error("deferred task failed", zap.String("task", t.Name), zap.Error(err))
		}
	}
	return fired
}

// Len returns the number of tasks still queued.
func (d *Deferred) Len() int {
	return len(d.tasks)
}
