package sapling

import (
	"slices"
	"testing"
)

func TestTimerQueueRunDue(t *testing.T) {
	var q TimerQueue
	var ran []string
	q.Add(30, func() { ran = append(ran, "c") })
	q.Add(10, func() { ran = append(ran, "a") })
	q.Add(20, func() { ran = append(ran, "b") })
	q.Add(10, func() { ran = append(ran, "a2") })

	if n := q.RunDue(5); n != 0 {
		t.Errorf("RunDue(5) = %d, want 0", n)
	}
	if n := q.RunDue(20); n != 3 {
		t.Errorf("RunDue(20) = %d, want 3", n)
	}
	if !slices.Equal(ran, []string{"a", "a2", "b"}) {
		t.Errorf("ran = %v, want [a a2 b]", ran)
	}
	if q.Len() != 1 {
		t.Errorf("Len = %d, want 1", q.Len())
	}
	q.RunDue(100)
	if !slices.Equal(ran, []string{"a", "a2", "b", "c"}) {
		t.Errorf("ran = %v", ran)
	}
}

func TestTimerQueueAddDuringRun(t *testing.T) {
	var q TimerQueue
	runs := 0
	var tick func()
	tick = func() {
		runs++
		q.Add(0, tick)
	}
	q.Add(0, tick)

	q.RunDue(0)
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
	if q.Len() != 1 {
		t.Errorf("Len = %d, want 1", q.Len())
	}
	q.RunDue(0)
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}
