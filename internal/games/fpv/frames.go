package fpv

// FrameHandle identifies a requested frame. Zero means none.
type FrameHandle uint64

// FrameQueue is a single-slot frame scheduler, the loop's equivalent of a
// display refresh callback. A host calls Fire once per refresh; the game
// requests its next frame from inside the current one. A cancelled frame
// never runs, which is what makes teardown and crash deterministic.
type FrameQueue struct {
	last    FrameHandle
	pending FrameHandle
	fn      func()
}

// Request schedules fn for the next Fire, replacing any pending request.
func (q *FrameQueue) Request(fn func()) FrameHandle {
	q.last++
	q.pending = q.last
	q.fn = fn
	return q.pending
}

// Cancel drops the pending frame if h still identifies it.
func (q *FrameQueue) Cancel(h FrameHandle) {
	if h != 0 && h == q.pending {
		q.pending = 0
		q.fn = nil
	}
}

// Pending reports whether a frame is waiting to run.
func (q *FrameQueue) Pending() bool {
	return q.pending != 0
}

// Fire runs the pending frame, if any. The slot is cleared before the
// callback runs so the callback can request its successor.
func (q *FrameQueue) Fire() bool {
	if q.pending == 0 {
		return false
	}
	fn := q.fn
	q.pending = 0
	q.fn = nil
	fn()
	return true
}
