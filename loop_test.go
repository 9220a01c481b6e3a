package sigpad

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEventLoopPostOrder(t *testing.T) {
	l := NewEventLoop(0)
	if l.interval != DefaultFrameInterval {
		t.Errorf("interval = %v, want %v", l.interval, DefaultFrameInterval)
	}

	var got []int
	for i := range 3 {
		l.Post(func() { got = append(got, i) })
	}
	if n := l.RunPosted(); n != 3 {
		t.Errorf("RunPosted() = %d, want 3", n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("posted callbacks ran as %v", got)
		}
	}
}

func TestEventLoopFrames(t *testing.T) {
	l := NewEventLoop(time.Millisecond)
	ran := 0
	l.RequestFrame(func() { ran++ })
	cancel := l.RequestFrame(func() { ran += 10 })
	cancel()

	if n := l.RunFrame(); n != 1 {
		t.Errorf("RunFrame() = %d, want 1", n)
	}
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
}

func TestEventLoopRun(t *testing.T) {
	l := NewEventLoop(time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	host := &testHost{w: 100, h: 50, dpr: 1}
	s := MustNew(host, WithScheduler(l))
	defer s.Close()

	var posted bool
	l.Post(func() {
		posted = true
		s.Mount()
		host.w = 150
		s.NotifyContainerResize()
		l.RequestFrame(func() {
			// Runs after the resize frame requested above.
			l.Post(cancel)
		})
	})

	err := l.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want %v", err, context.Canceled)
	}
	if !posted {
		t.Error("posted callback did not run")
	}
	if s.Width() != 150 {
		t.Errorf("Width() = %d, want 150 after the frame", s.Width())
	}
}
