package sapling

import "slices"

type timer struct {
	at float64
	fn func()
}

// TimerQueue holds one-shot callbacks keyed by due time in milliseconds.
// Hosts use it to implement Host.After on their own loop goroutine.
type TimerQueue struct {
	timers []timer
	due    []timer
}

// Add schedules fn to run at or after time at.
func (q *TimerQueue) Add(at float64, fn func()) {
	q.timers = append(q.timers, timer{at: at, fn: fn})
}

// Len returns the number of pending callbacks.
func (q *TimerQueue) Len() int { return len(q.timers) }

// RunDue runs every callback due at now, earliest first, and returns how
// many ran. Callbacks added while running wait for the next call.
func (q *TimerQueue) RunDue(now float64) int {
	if len(q.timers) == 0 {
		return 0
	}
	q.due = q.due[:0]
	q.timers = slices.DeleteFunc(q.timers, func(t timer) bool {
		if t.at <= now {
			q.due = append(q.due, t)
			return true
		}
		return false
	})
	slices.SortStableFunc(q.due, func(a, b timer) int {
		switch {
		case a.at < b.at:
			return -1
		case a.at > b.at:
			return 1
		}
		return 0
	})
	n := len(q.due)
	for i, t := range q.due {
		t.fn()
		q.due[i] = timer{}
	}
	return n
}
