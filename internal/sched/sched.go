// Package sched runs deferred work on the host's tick. Nothing here starts a
// goroutine: tasks run inside Advance, on the caller's goroutine.
package sched

import (
	"sort"
	"time"
)

// Token identifies a scheduled task.
type Token struct {
	cancelled bool
	done      bool
}

// Cancel stops the task if it has not run yet. It reports whether it did.
func (t *Token) Cancel() bool {
	if t.done || t.cancelled {
		return false
	}
	t.cancelled = true
	return true
}

// Done reports whether the task has run.
func (t *Token) Done() bool { return t.done }

// Cancelled reports whether Cancel stopped the task.
func (t *Token) Cancelled() bool { return t.cancelled }

type task struct {
	token *Token
	at    time.Duration
	seq   uint64
	fn    func()
}

// Scheduler keeps frame tasks and timed tasks against a clock that only moves
// when Advance is called.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	frame  []task
	timed  []task
	frames uint64
}

// New returns a scheduler at time zero.
func New() *Scheduler { return &Scheduler{} }

// NextFrame runs fn on the next Advance.
func (s *Scheduler) NextFrame(fn func()) *Token {
	t := s.newTask(s.now, fn)
	s.frame = append(s.frame, t)
	return t.token
}

// After runs fn on the first Advance that moves the clock d or more past now.
func (s *Scheduler) After(d time.Duration, fn func()) *Token {
	if d < 0 {
		d = 0
	}
	t := s.newTask(s.now+d, fn)
	s.timed = append(s.timed, t)
	return t.token
}

func (s *Scheduler) newTask(at time.Duration, fn func()) task {
	s.seq++
	return task{token: &Token{}, at: at, seq: s.seq, fn: fn}
}

// Advance moves the clock by dt and runs what is due: first the frame tasks
// queued before the call, then timed tasks in deadline order. Work scheduled
// by a running task waits for the next Advance.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	s.now += dt
	s.frames++

	frame := s.frame
	s.frame = nil
	for _, t := range frame {
		s.run(t)
	}

	var due, later []task
	for _, t := range s.timed {
		if t.at <= s.now {
			due = append(due, t)
		} else {
			later = append(later, t)
		}
	}
	s.timed = later
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		s.run(t)
	}
}

func (s *Scheduler) run(t task) {
	if t.token.cancelled {
		return
	}
	t.token.done = true
	t.fn()
}

// Pending counts tasks that have neither run nor been cancelled.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.frame {
		if !t.token.cancelled {
			n++
		}
	}
	for _, t := range s.timed {
		if !t.token.cancelled {
			n++
		}
	}
	return n
}

// Now returns the scheduler clock.
func (s *Scheduler) Now() time.Duration { return s.now }

// Frames returns how many times Advance has been called.
func (s *Scheduler) Frames() uint64 { return s.frames }
