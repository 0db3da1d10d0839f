package polymesh

import (
	"context"
	"time"
)

// FrameID identifies a pending frame request.
type FrameID uint64

// FrameSource is the host's display-refresh hook: it calls fn once, on the
// next frame, with a monotonic timestamp. Requests can be cancelled before
// they fire.
type FrameSource interface {
	RequestFrame(fn func(now time.Duration)) FrameID
	CancelFrame(id FrameID)
}

type pendingFrame struct {
	id FrameID
	fn func(now time.Duration)
}

// ManualFrames is a FrameSource whose frames fire only when Fire or Advance
// is called. It drives tests and offline rendering deterministically.
type ManualFrames struct {
	next    FrameID
	pending []pendingFrame
	now     time.Duration
}

// NewManualFrames returns a frame source with its clock at zero.
func NewManualFrames() *ManualFrames {
	return &ManualFrames{}
}

// RequestFrame implements FrameSource.
func (f *ManualFrames) RequestFrame(fn func(now time.Duration)) FrameID {
	f.next++
	f.pending = append(f.pending, pendingFrame{id: f.next, fn: fn})
	return f.next
}

// CancelFrame implements FrameSource.
func (f *ManualFrames) CancelFrame(id FrameID) {
	for i, p := range f.pending {
		if p.id == id {
			f.pending = append(f.pending[:i], f.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of outstanding requests.
func (f *ManualFrames) Pending() int {
	return len(f.pending)
}

// Now returns the clock of the last fired frame.
func (f *ManualFrames) Now() time.Duration {
	return f.now
}

// Fire runs every request made before the call with timestamp now and
// returns how many ran. Requests made by the callbacks wait for the next
// Fire, like a browser animation frame.
func (f *ManualFrames) Fire(now time.Duration) int {
	if now > f.now {
		f.now = now
	}
	batch := f.pending
	f.pending = nil
	for _, p := range batch {
		p.fn(f.now)
	}
	return len(batch)
}

// Advance moves the clock forward by d and fires pending frames.
func (f *ManualFrames) Advance(d time.Duration) int {
	return f.Fire(f.now + d)
}

// LoopFrames fires frames from a wall-clock ticker on the goroutine that
// calls Run, so callbacks never run concurrently.
type LoopFrames struct {
	ManualFrames
	refresh time.Duration
}

// NewLoopFrames returns a loop that fires at the given refresh interval.
// Non-positive intervals default to 60 Hz.
func NewLoopFrames(refresh time.Duration) *LoopFrames {
	if refresh <= 0 {
		refresh = time.Second / 60
	}
	return &LoopFrames{refresh: refresh}
}

// Run fires pending frames until ctx is done and returns ctx.Err().
func (l *LoopFrames) Run(ctx context.Context) error {
	start := time.Now()
	ticker := time.NewTicker(l.refresh)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-ticker.C:
			l.Fire(t.Sub(start))
		}
	}
}
