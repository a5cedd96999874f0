package frame

import (
	"log/slog"
	"time"
)

// Stopwatch measures elapsed wall-clock time. While running, Elapsed is a
// live read against the monotonic clock; after Stop it returns the frozen
// stop−start duration.
type Stopwatch struct {
	start   time.Time
	frozen  time.Duration
	running bool
}

// Start records the current time as the reference point.
func (s *Stopwatch) Start() {
	s.start = time.Now()
	s.running = true
}

// Stop freezes the elapsed duration.
func (s *Stopwatch) Stop() {
	s.frozen = time.Since(s.start)
	s.running = false
}

func (s *Stopwatch) Running() bool { return s.running }

func (s *Stopwatch) Elapsed() time.Duration {
	if s.running {
		return time.Since(s.start)
	}
	return s.frozen
}

// Limiter paces a loop to a fixed target interval. Wait blocks until the
// target has elapsed since the previous Wait (or since NewLimiter), using a
// coarse sleep followed by a busy-poll: the sleep alone has OS-scheduler
// granularity and can overshoot, while spinning for the last stretch of the
// budget gives sub-millisecond accuracy.
type Limiter struct {
	target time.Duration
	sw     Stopwatch
	missed uint64
}

// DefaultTarget is the interval for a 60 Hz display loop.
const DefaultTarget = time.Second / 60

// NewLimiter returns a limiter measuring from now. A non-positive target
// falls back to DefaultTarget.
func NewLimiter(target time.Duration) *Limiter {
	if target <= 0 {
		target = DefaultTarget
	}
	l := &Limiter{target: target}
	l.sw.Start()
	return l
}

func (l *Limiter) Target() time.Duration { return l.target }

// Missed reports how many frames overran the target.
func (l *Limiter) Missed() uint64 { return l.missed }

// Elapsed reports the time since the current frame began.
func (l *Limiter) Elapsed() time.Duration { return l.sw.Elapsed() }

// Wait blocks until the target interval has elapsed since the frame began,
// then restarts the measurement for the next frame. A frame that already
// overran the target is recorded and not blocked on.
func (l *Limiter) Wait() {
	elapsed := l.sw.Elapsed()
	if elapsed < l.target {
		// Sleep whole milliseconds only; a sub-millisecond remainder
		// goes straight to the spin below.
		sleepMS := (l.target - elapsed).Milliseconds()
		if sleepMS > 0 {
			time.Sleep(time.Duration(sleepMS) * time.Millisecond)
		}
		for l.sw.Elapsed() < l.target {
		}
	} else {
		l.missed++
		slog.Warn("pixelview: missed frame deadline",
			"target", l.target,
			"overrun", elapsed-l.target)
	}
	l.sw.Start()
}
