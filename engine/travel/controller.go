package travel

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"

	"github.com/Carmen-Shannon/solaris/common"
	"github.com/Carmen-Shannon/solaris/engine/body"
	"github.com/Carmen-Shannon/solaris/engine/tween"
)

// ErrMissingAnchor is returned when a selected body cannot report its world position or bounding radius.
var ErrMissingAnchor = errors.New("travel: body has no usable anchor")

// Pose is the camera pose driven by a travel.
type Pose interface {
	Position() mgl32.Vec3
	SetPosition(p mgl32.Vec3)
	Orientation() mgl32.Quat
	SetOrientation(q mgl32.Quat)
}

// OrbitControl is the user orbit controller suspended during a travel.
type OrbitControl interface {
	SetEnabled(enabled bool)
	SetDamping(damping bool)
	SetTarget(target mgl32.Vec3)
	Update()
}

// StatusPublisher receives the travel status for display.
type StatusPublisher interface {
	// PublishTravel is called once when a travel starts.
	PublishTravel(status Status)
	// ClearTravel is called once when a travel completes.
	ClearTravel()
}

// Observer is notified of travel lifecycle events.
type Observer interface {
	TravelStarted(b *body.TrackedBody, status Status)
	TravelCompleted(b *body.TrackedBody, elapsed time.Duration)
}

// Framing places the camera relative to the selected body.
type Framing struct {
	// DistanceRatio multiplies the body's bounding radius to get the camera distance.
	DistanceRatio float32
	// YawDegrees is the horizontal framing angle.
	YawDegrees float32
	// PitchDegrees is the vertical framing angle from the horizontal.
	PitchDegrees float32
}

// TweenSettings configures one of the two travel tweens.
type TweenSettings struct {
	Duration time.Duration
	Delay    time.Duration
	Easing   tween.Easing
}

// Controller starts travels on selection and advances them once per frame.
// All methods must be called from the render goroutine.
type Controller struct {
	cam   Pose
	orbit OrbitControl

	framing     Framing
	position    TweenSettings
	orientation TweenSettings

	publisher StatusPublisher
	observers []Observer
	now       func() time.Time
	logger    zerolog.Logger
}

// NewController creates a Controller driving cam and suspending orbit while travelling.
// Defaults: framing at 7 radii, 30 degrees yaw, 10 degrees pitch; a 3 s position tween and a 2 s
// orientation tween delayed by 1 s, both easeInOutCubic.
//
// Parameters:
//   - cam: the camera pose to animate
//   - orbit: the orbit controller to suspend
//   - options: functional options
//
// Returns:
//   - *Controller: the controller
func NewController(cam Pose, orbit OrbitControl, options ...ControllerOption) *Controller {
	c := &Controller{
		cam:   cam,
		orbit: orbit,
		framing: Framing{
			DistanceRatio: 7,
			YawDegrees:    30,
			PitchDegrees:  10,
		},
		position: TweenSettings{
			Duration: 3 * time.Second,
			Easing:   tween.EaseInOutCubic,
		},
		orientation: TweenSettings{
			Duration: 2 * time.Second,
			Delay:    1 * time.Second,
			Easing:   tween.EaseInOutCubic,
		},
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Framing returns the framing in use.
func (c *Controller) Framing() Framing {
	return c.framing
}

// TargetPose computes where the camera ends up when travelling to a body at anchor with the given radius.
//
// Parameters:
//   - anchor: the body's world position
//   - radius: the body's bounding radius
//
// Returns:
//   - mgl32.Vec3: camera position
//   - mgl32.Quat: camera orientation facing the anchor
func (c *Controller) TargetPose(anchor mgl32.Vec3, radius float32) (mgl32.Vec3, mgl32.Quat) {
	offset := common.SphericalOffset(radius*c.framing.DistanceRatio, c.framing.YawDegrees, c.framing.PitchDegrees)
	pos := anchor.Add(offset)
	return pos, common.LookAtRotation(pos, anchor, common.WorldUp)
}

// Select starts a travel to b. Selections made while a travel is in flight are ignored.
//
// Parameters:
//   - st: the travel state
//   - b: the selected body
//
// Returns:
//   - bool: true if a travel started
//   - error: ErrMissingAnchor when the body cannot be framed, or a tween configuration error; st is unchanged on error
func (c *Controller) Select(st *State, b *body.TrackedBody) (bool, error) {
	if b == nil {
		return false, nil
	}
	if st.phase == Travelling {
		c.logger.Debug().Int("body", b.ID).Str("name", b.Name).Msg("selection ignored while travelling")
		return false, nil
	}

	anchor, ok := b.Position()
	if !ok {
		return false, fmt.Errorf("%w: %d (%s) has no position", ErrMissingAnchor, b.ID, b.Name)
	}
	radius, ok := b.Radius()
	if !ok {
		return false, fmt.Errorf("%w: %d (%s) has no bounds", ErrMissingAnchor, b.ID, b.Name)
	}

	targetPos, targetRot := c.TargetPose(anchor, radius)
	now := c.now()

	pos, err := tween.NewVector(c.cam.Position(), targetPos, c.position.Duration.Seconds(), c.position.Easing,
		tween.WithDelay(c.position.Delay.Seconds()), tween.WithStartTime(now))
	if err != nil {
		return false, fmt.Errorf("travel: position tween: %w", err)
	}
	rot, err := tween.NewRotation(c.cam.Orientation(), targetRot, c.orientation.Duration.Seconds(), c.orientation.Easing,
		tween.WithDelay(c.orientation.Delay.Seconds()), tween.WithStartTime(now))
	if err != nil {
		return false, fmt.Errorf("travel: orientation tween: %w", err)
	}

	c.orbit.SetEnabled(false)
	c.orbit.SetDamping(false)

	status := Status{
		Destination: b.Name,
		Duration:    time.Duration(max(pos.Total(), rot.Total()) * float64(time.Second)),
		Started:     now,
	}
	st.begin(b, anchor, pos, rot, status)

	if c.publisher != nil {
		c.publisher.PublishTravel(status)
	}
	for _, o := range c.observers {
		o.TravelStarted(b, status)
	}
	c.logger.Info().
		Int("body", b.ID).
		Str("destination", b.Name).
		Dur("duration", status.Duration).
		Msg("travel started")
	return true, nil
}

// Tick writes the current tween values onto the camera and completes the travel once both tweens are done.
// Does nothing while idle.
//
// Parameters:
//   - st: the travel state
//
// Returns:
//   - bool: true on the frame the travel completed
func (c *Controller) Tick(st *State) bool {
	if st.phase != Travelling {
		return false
	}

	now := c.now()
	c.cam.SetPosition(st.position.Value(now))
	c.cam.SetOrientation(st.orientation.Value(now))

	if !st.position.Done(now) || !st.orientation.Done(now) {
		return false
	}

	target, ok := st.selection.Position()
	if !ok {
		c.logger.Warn().Int("body", st.selection.ID).Msg("anchor vanished during travel, orbiting the start position")
		target = st.origin
	}
	c.orbit.SetEnabled(true)
	c.orbit.SetDamping(true)
	c.orbit.SetTarget(target)
	c.orbit.Update()

	elapsed := now.Sub(st.status.Started)
	selection := st.selection
	st.finish()

	if c.publisher != nil {
		c.publisher.ClearTravel()
	}
	for _, o := range c.observers {
		o.TravelCompleted(selection, elapsed)
	}
	c.logger.Info().Int("body", selection.ID).Dur("elapsed", elapsed).Msg("travel completed")
	return true
}
