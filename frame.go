package sigpad

// FrameScheduler defers work to the next animation frame, the Go
// counterpart of requestAnimationFrame. RequestFrame returns a function
// that cancels the callback if it has not run yet; calling it after the
// callback ran is a no-op.
type FrameScheduler interface {
	RequestFrame(fn func()) (cancel func())
}

// FrameQueue is a FrameScheduler driven by the host: callbacks requested
// before RunFrame run on that RunFrame call, callbacks requested while a
// frame runs wait for the next one.
//
// FrameQueue is NOT safe for concurrent use.
type FrameQueue struct {
	next    uint64
	pending []frameRequest
}

type frameRequest struct {
	id uint64
	fn func()
}

var _ FrameScheduler = (*FrameQueue)(nil)

// NewFrameQueue creates an empty frame queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// RequestFrame implements FrameScheduler.
func (q *FrameQueue) RequestFrame(fn func()) (cancel func()) {
	q.next++
	id := q.next
	q.pending = append(q.pending, frameRequest{id: id, fn: fn})
	return func() { q.cancel(id) }
}

func (q *FrameQueue) cancel(id uint64) {
	for i, r := range q.pending {
		if r.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next frame.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// RunFrame runs every callback requested before the call and reports how
// many ran.
func (q *FrameQueue) RunFrame() int {
	batch := q.pending
	q.pending = nil
	for _, r := range batch {
		r.fn()
	}
	return len(batch)
}
