// Package travel animates the camera from its current pose to a framing pose around a selected body,
// suspending the user orbit controller for the duration of the flight.
package travel

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/solaris/engine/body"
	"github.com/Carmen-Shannon/solaris/engine/tween"
)

// Phase is the travel lifecycle phase.
type Phase int

const (
	// Idle means the orbit controller owns the camera.
	Idle Phase = iota
	// Travelling means the travel tweens own the camera.
	Travelling
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Travelling:
		return "travelling"
	default:
		return "unknown"
	}
}

// Status is the notification published to the UI while a travel is in flight.
type Status struct {
	// Destination is the selected body's display name.
	Destination string
	// Duration is the time until both tweens are done, delays included.
	Duration time.Duration
	// Started is the travel start timestamp.
	Started time.Time
}

// State holds the current travel. One State is created per viewer and handed to the Controller on
// every call; it is owned by the render goroutine and is not safe for concurrent use.
type State struct {
	phase       Phase
	selection   *body.TrackedBody
	position    *tween.Interpolator[mgl32.Vec3]
	orientation *tween.Interpolator[mgl32.Quat]
	status      Status
	hasStatus   bool

	// anchor position at travel start, used when the anchor disappears mid-flight
	origin mgl32.Vec3
}

// NewState creates an idle State with no selection.
func NewState() *State {
	return &State{phase: Idle}
}

// Phase returns the current lifecycle phase.
func (s *State) Phase() Phase {
	return s.phase
}

// Travelling reports whether a travel is in flight.
func (s *State) Travelling() bool {
	return s.phase == Travelling
}

// Selection returns the most recently accepted selection, nil before the first one.
// The selection survives travel completion.
func (s *State) Selection() *body.TrackedBody {
	return s.selection
}

// PositionTween returns the in-flight position tween, nil while idle.
func (s *State) PositionTween() *tween.Interpolator[mgl32.Vec3] {
	return s.position
}

// OrientationTween returns the in-flight orientation tween, nil while idle.
func (s *State) OrientationTween() *tween.Interpolator[mgl32.Quat] {
	return s.orientation
}

// Status returns the published travel status.
//
// Returns:
//   - Status: the status of the in-flight travel
//   - bool: false while idle
func (s *State) Status() (Status, bool) {
	return s.status, s.hasStatus
}

func (s *State) begin(b *body.TrackedBody, origin mgl32.Vec3, pos *tween.Interpolator[mgl32.Vec3], rot *tween.Interpolator[mgl32.Quat], status Status) {
	s.selection = b
	s.origin = origin
	s.position = pos
	s.orientation = rot
	s.status = status
	s.hasStatus = true
	s.phase = Travelling
}

func (s *State) finish() {
	s.position = nil
	s.orientation = nil
	s.status = Status{}
	s.hasStatus = false
	s.phase = Idle
}
