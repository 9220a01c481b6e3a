package sigpad

import (
	"context"
	"sync"
	"time"
)

// DefaultFrameInterval is the frame period of an EventLoop (60 Hz).
const DefaultFrameInterval = time.Second / 60

// EventLoop runs posted callbacks and animation-frame callbacks on a single
// goroutine, the one calling Run. Everything that touches a Surface should
// be posted to the loop so that handlers never interleave mid-paint.
//
// Post and RequestFrame are safe for concurrent use.
type EventLoop struct {
	interval time.Duration

	mu     sync.Mutex
	posted []func()
	frames FrameQueue

	wake chan struct{}
}

var _ FrameScheduler = (*EventLoop)(nil)

// NewEventLoop creates a loop firing frames every interval.
// A non-positive interval selects DefaultFrameInterval.
func NewEventLoop(interval time.Duration) *EventLoop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &EventLoop{
		interval: interval,
		wake:     make(chan struct{}, 1),
	}
}

// Post queues fn to run on the loop goroutine. Callbacks run in post order.
func (l *EventLoop) Post(fn func()) {
	l.mu.Lock()
	l.posted = append(l.posted, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// RequestFrame implements FrameScheduler.
func (l *EventLoop) RequestFrame(fn func()) (cancel func()) {
	l.mu.Lock()
	c := l.frames.RequestFrame(fn)
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		c()
		l.mu.Unlock()
	}
}

// RunPosted runs the callbacks posted so far and reports how many ran.
func (l *EventLoop) RunPosted() int {
	l.mu.Lock()
	batch := l.posted
	l.posted = nil
	l.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// RunFrame runs one animation frame and reports how many callbacks ran.
func (l *EventLoop) RunFrame() int {
	l.mu.Lock()
	batch := l.frames.pending
	l.frames.pending = nil
	l.mu.Unlock()

	for _, r := range batch {
		r.fn()
	}
	return len(batch)
}

// Run processes posted callbacks and frames until ctx is done, then
// returns ctx.Err(). Posted callbacks always drain before a frame fires.
func (l *EventLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
			l.RunPosted()
		case <-ticker.C:
			l.RunPosted()
			l.RunFrame()
		}
	}
}
