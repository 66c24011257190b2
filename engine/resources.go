package engine

import (
	"sync/atomic"
	"time"
)

// --- Core Resources ---

// TimeResource wraps time data for systems
// It is updated by the App at the start of every frame
type TimeResource struct {
	// Elapsed is game time since startup (affected by pause)
	Elapsed time.Duration

	// Delta is the game time since the previous frame
	Delta time.Duration

	// FrameNumber is the current frame count
	FrameNumber int64
}

// Update advances the resource to a new elapsed time
// Delta is derived from the previous elapsed value; it never goes negative
func (tr *TimeResource) Update(elapsed time.Duration, frameNumber int64) {
	delta := elapsed - tr.Elapsed
	if delta < 0 {
		delta = 0
	}
	tr.Delta = delta
	tr.Elapsed = elapsed
	tr.FrameNumber = frameNumber
}

// ElapsedSeconds returns Elapsed in seconds
func (tr *TimeResource) ElapsedSeconds() float32 {
	return float32(tr.Elapsed.Seconds())
}

// DeltaSeconds returns Delta in seconds
func (tr *TimeResource) DeltaSeconds() float32 {
	return float32(tr.Delta.Seconds())
}

// WindowResource holds the drawable area in terminal cells
type WindowResource struct {
	Width  int
	Height int
}

// ClockResource exposes the pausable game clock to systems
type ClockResource struct {
	Clock *PausableClock
}

// ExitResource carries a shutdown request from systems to the frame loop
type ExitResource struct {
	requested atomic.Bool
}

// Request asks the frame loop to stop after the current frame
func (er *ExitResource) Request() {
	er.requested.Store(true)
}

// Requested reports whether shutdown was requested
func (er *ExitResource) Requested() bool {
	return er.requested.Load()
}

// Resource provides cached pointers to the engine singleton resources
// Initialized once per system to eliminate runtime map lookups
type Resource struct {
	Time   *TimeResource
	Window *WindowResource
	Clock  *ClockResource
	Exit   *ExitResource
}

// GetResourceStore populates Resource from the world's resource store
// Call once during system construction; pointers remain valid for application lifetime
func GetResourceStore(w *World) Resource {
	return Resource{
		Time:   MustGetResource[*TimeResource](w.Resources),
		Window: MustGetResource[*WindowResource](w.Resources),
		Clock:  MustGetResource[*ClockResource](w.Resources),
		Exit:   MustGetResource[*ExitResource](w.Resources),
	}
}
