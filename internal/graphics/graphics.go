// Package graphics drives the frame loop. The window itself lives behind the
// Window interface so the loop can run against a fake in tests.
package graphics

import (
	"context"
	"sync/atomic"
)

// Window is what the loop needs from the platform window.
type Window interface {
	ShouldClose() bool
	// PollEvents reads input and dispatches resize, pointer and click events.
	PollEvents()
	// Present draws the current scene and waits for the next frame.
	Present()
}

// Loop is the running/stopped flag of the animation. Start and Stop are
// idempotent: starting a running loop or stopping a stopped one is a no-op.
type Loop struct {
	running atomic.Bool
}

// NewLoop returns a loop that is already running.
func NewLoop() *Loop {
	l := &Loop{}
	l.running.Store(true)
	return l
}

func (l *Loop) Running() bool { return l.running.Load() }

// Start reports whether the loop was stopped before the call.
func (l *Loop) Start() bool { return l.running.CompareAndSwap(false, true) }

// Stop reports whether the loop was running before the call.
func (l *Loop) Stop() bool { return l.running.CompareAndSwap(true, false) }

// Toggle flips the loop and returns the new state.
func (l *Loop) Toggle() bool {
	for {
		cur := l.running.Load()
		if l.running.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

// Run is the frame loop. Each frame it polls events, advances the simulation
// with step while the loop is running, then presents. Events are handled to
// completion before the step that follows them. Run returns when the window
// asks to close or ctx is done. A stopped loop keeps presenting so the window
// stays responsive.
func Run(ctx context.Context, win Window, loop *Loop, step func()) error {
	for !win.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}
		win.PollEvents()
		if loop.Running() {
			step()
		}
		win.Present()
	}
	return nil
}
