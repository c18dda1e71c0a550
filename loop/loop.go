// Package loop drives the per-frame update and draw calls from a host clock.
package loop

import (
	"context"
	"time"
)

// Clock reports monotonic time in seconds.
type Clock interface {
	Now() float64
}

type ClockFunc func() float64

func (f ClockFunc) Now() float64 {
	return f()
}

// Loop calls Step and then Render once per frame on the calling goroutine.
type Loop struct {
	Clock      Clock
	Step       func(dt float64)
	Render     func()
	ShouldStop func() bool

	last    float64
	started bool
	frames  uint64
}

// Tick runs one frame and returns the elapsed time handed to Step. The
// first frame always sees zero. Large gaps are passed through as-is.
func (l *Loop) Tick() float64 {
	now := l.Clock.Now()
	var dt float64
	if l.started {
		dt = now - l.last
	}
	l.last = now
	l.started = true

	if l.Step != nil {
		l.Step(dt)
	}
	if l.Render != nil {
		l.Render()
	}
	l.frames++
	return dt
}

func (l *Loop) Frames() uint64 {
	return l.frames
}

// Run ticks every interval until ctx is done or ShouldStop reports true.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if l.ShouldStop != nil && l.ShouldStop() {
				return nil
			}
			l.Tick()
		}
	}
}
