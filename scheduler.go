package polymesh

import "time"

// Phase is the state of the shared motion clock.
type Phase uint8

const (
	PhaseResting Phase = iota // waiting out the rest duration
	PhaseMoving               // interpolating from start to target
)

// String returns a lowercase phase name.
func (p Phase) String() string {
	if p == PhaseMoving {
		return "moving"
	}
	return "resting"
}

// animated is what a Scheduler drives once per processed frame.
type animated interface {
	retarget(cycle int)
	interpolate(elapsed, duration float64, entrance bool)
	logf(format string, args ...any)
	debugEnabled() bool
}

// Scheduler is the clock shared by every node of one mesh. It alternates a
// move phase and a rest phase forever, coalescing ticks that arrive faster
// than the configured frame rate.
//
// Each mesh owns its own Scheduler, so meshes animate independently.
type Scheduler struct {
	target animated

	frameInterval time.Duration
	duration      time.Duration
	rest          time.Duration
	fancyEntrance bool

	running bool
	src     FrameSource
	reqID   FrameID
	gen     uint64

	started    bool
	startTime  time.Duration
	lastPhase  time.Duration
	frameCount int64
	newTarget  bool
	entrance   bool
	cycle      int
	phase      Phase

	onFrame func()
}

func newScheduler(target animated) *Scheduler {
	return &Scheduler{
		target:     target,
		frameCount: -1,
		newTarget:  true,
		entrance:   true,
	}
}

// configure copies the timing options out of cfg. cfg must be normalized.
func (s *Scheduler) configure(cfg Config) {
	s.frameInterval = time.Duration(float64(time.Second) / cfg.FPS)
	if s.frameInterval <= 0 {
		s.frameInterval = 1
	}
	s.duration = time.Duration(cfg.Duration * float64(time.Second))
	s.rest = time.Duration(cfg.RestDuration * float64(time.Second))
	s.fancyEntrance = cfg.FancyEntrance
}

// OnFrame registers the callback invoked after every interpolated frame,
// typically a redraw. It is not called while resting.
func (s *Scheduler) OnFrame(fn func()) {
	s.onFrame = fn
}

// Running reports whether Start has been called without a matching Stop.
func (s *Scheduler) Running() bool {
	return s.running
}

// Phase reports the phase of the last processed frame.
func (s *Scheduler) Phase() Phase {
	return s.phase
}

// Cycle returns the number of completed move+rest cycles.
func (s *Scheduler) Cycle() int {
	return s.cycle
}

// FrameInterval returns the target time between processed frames.
func (s *Scheduler) FrameInterval() time.Duration {
	return s.frameInterval
}

// Start begins requesting frames from src. Starting a running scheduler is a
// no-op. A nil src marks the scheduler running and leaves ticking to the
// caller until Stop.
func (s *Scheduler) Start(src FrameSource) {
	if s.running {
		return
	}
	s.running = true
	s.src = src
	s.gen++
	if src != nil {
		s.request()
	}
}

// request queues the next frame of the current generation. A callback from an
// older generation finds s.gen moved on and neither ticks nor re-requests.
func (s *Scheduler) request() {
	gen := s.gen
	s.reqID = s.src.RequestFrame(func(now time.Duration) {
		s.step(gen, now)
	})
}

// Stop cancels the pending frame request and resets the frame counter, start
// time and phase boundary, so a later Start begins a fresh cycle. Stopping a
// stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	if !s.running {
		return
	}
	if s.src != nil {
		s.src.CancelFrame(s.reqID)
	}
	s.running = false
	s.reqID = 0
	s.gen++
	s.resetTiming()
}

// resetTiming clears the frame counter, start time and phase boundary so the
// next Tick begins a fresh move phase with new targets.
func (s *Scheduler) resetTiming() {
	s.started = false
	s.startTime = 0
	s.lastPhase = 0
	s.frameCount = -1
	s.newTarget = true
	s.phase = PhaseResting
}

// rewind returns the scheduler to the state of a new mesh: fresh timing, the
// cycle count at zero and the entrance curve armed again.
func (s *Scheduler) rewind() {
	s.resetTiming()
	s.cycle = 0
	s.entrance = true
}

// step is the frame callback handed to the frame source for generation gen.
func (s *Scheduler) step(gen uint64, now time.Duration) {
	if !s.running || gen != s.gen {
		return
	}
	s.Tick(now)
	// The frame callback may have stopped, restarted or refreshed the
	// scheduler. Only the generation that is still live keeps requesting.
	if s.running && gen == s.gen && s.src != nil {
		s.request()
	}
}

// Tick advances the clock to now, a monotonic timestamp. At most one frame
// is processed per frame interval; extra ticks inside the same interval are
// dropped. A stopped scheduler ignores ticks. It reports whether nodes were
// interpolated.
func (s *Scheduler) Tick(now time.Duration) bool {
	if !s.running {
		return false
	}
	if !s.started {
		s.started = true
		s.startTime = now
		s.lastPhase = now
	}
	if now < s.startTime {
		return false
	}
	frame := int64((now - s.startTime) / s.frameInterval)
	if frame <= s.frameCount {
		return false
	}
	s.frameCount = frame

	elapsed := now - s.lastPhase
	if elapsed <= s.duration {
		s.phase = PhaseMoving
		if s.newTarget {
			s.target.retarget(s.cycle)
			s.newTarget = false
		}
		s.target.interpolate(elapsed.Seconds(), s.duration.Seconds(), s.entrance && s.fancyEntrance)
		if s.onFrame != nil {
			s.onFrame()
		}
		return true
	}

	s.phase = PhaseResting
	if elapsed >= s.duration+s.rest {
		s.lastPhase = now
		s.newTarget = true
		s.entrance = false
		s.cycle++
		if s.target.debugEnabled() {
			s.target.logf("cycle %d: phase boundary at %v", s.cycle, now)
		}
	}
	return false
}
