package sigpad

import "testing"

func TestFrameQueue(t *testing.T) {
	q := NewFrameQueue()
	var got []int

	q.RequestFrame(func() { got = append(got, 1) })
	cancel := q.RequestFrame(func() { got = append(got, 2) })
	q.RequestFrame(func() { got = append(got, 3) })
	cancel()

	if q.Pending() != 2 {
		t.Fatalf("Pending() = %d, want 2", q.Pending())
	}
	if n := q.RunFrame(); n != 2 {
		t.Errorf("RunFrame() = %d, want 2", n)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("callbacks ran as %v, want [1 3]", got)
	}
	if q.RunFrame() != 0 {
		t.Error("empty frame ran callbacks")
	}
}

func TestFrameQueueRequestDuringFrame(t *testing.T) {
	q := NewFrameQueue()
	runs := 0
	var tick func()
	tick = func() {
		runs++
		q.RequestFrame(tick)
	}
	q.RequestFrame(tick)

	q.RunFrame()
	if runs != 1 {
		t.Fatalf("runs after one frame = %d, want 1", runs)
	}
	if q.Pending() != 1 {
		t.Errorf("Pending() = %d, want the re-request to wait", q.Pending())
	}
	q.RunFrame()
	if runs != 2 {
		t.Errorf("runs after two frames = %d, want 2", runs)
	}
}

func TestFrameQueueCancelAfterRun(t *testing.T) {
	q := NewFrameQueue()
	cancel := q.RequestFrame(func() {})
	q.RunFrame()
	other := 0
	q.RequestFrame(func() { other++ })

	cancel()
	q.RunFrame()
	if other != 1 {
		t.Error("stale cancel removed another callback")
	}
}
