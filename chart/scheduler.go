package chart

import (
	"sort"
	"time"
)

// Scheduler runs deferred work on the goroutine that owns a Graph.
type Scheduler interface {
	// Post runs f on the next idle tick.
	Post(f func())
	// After runs f once d has elapsed.
	After(d time.Duration, f func())
}

type timer struct {
	at  time.Time
	seq uint64
	f   func()
}

// TaskQueue is a Scheduler that is driven by its owner. Nothing runs
// until Run is called, so all work happens on the caller's goroutine.
type TaskQueue struct {
	now    time.Time
	seq    uint64
	idle   []func()
	timers []timer
}

var _ Scheduler = (*TaskQueue)(nil)

func (q *TaskQueue) Post(f func()) {
	q.idle = append(q.idle, f)
}

func (q *TaskQueue) After(d time.Duration, f func()) {
	q.seq++
	q.timers = append(q.timers, timer{at: q.now.Add(d), seq: q.seq, f: f})
}

// Run advances the queue clock to now, executes the idle tasks that were
// queued before the call, and then every timer that is due. Work queued
// while running waits for the next call.
func (q *TaskQueue) Run(now time.Time) {
	if now.After(q.now) {
		q.now = now
	}
	idle := q.idle
	q.idle = nil
	for _, f := range idle {
		f()
	}
	timers := q.timers
	q.timers = nil
	var due []timer
	for _, t := range timers {
		if t.at.After(q.now) {
			q.timers = append(q.timers, t)
		} else {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	for _, t := range due {
		t.f()
	}
}

// Drain runs idle tasks until none are left or limit rounds have passed.
// Timers are not advanced.
func (q *TaskQueue) Drain(limit int) {
	for i := 0; i < limit && len(q.idle) > 0; i++ {
		q.Run(q.now)
	}
}

// Next returns the earliest time at which Run has work to do.
func (q *TaskQueue) Next() (next time.Time, ok bool) {
	if len(q.idle) > 0 {
		return q.now, true
	}
	for _, t := range q.timers {
		if !ok || t.at.Before(next) {
			next, ok = t.at, true
		}
	}
	return next, ok
}

// Len returns the number of queued tasks and timers.
func (q *TaskQueue) Len() int {
	return len(q.idle) + len(q.timers)
}
