package tween

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/solaris/common"
)

var (
	// ErrInvalidDuration is returned when an interpolator is built with a non-positive duration.
	ErrInvalidDuration = errors.New("tween: duration must be positive")
	// ErrUnknownEasing is returned when an easing name is not in the catalog.
	ErrUnknownEasing = errors.New("tween: unknown easing")
)

// blendFunc mixes start and end by eased progress t.
type blendFunc[T any] func(start, end T, t float32) T

// Interpolator produces an eased value between two snapshots as a pure function of elapsed time.
// Start and end are copied by value at construction, so later changes to the caller's values never leak in.
// An Interpolator is owned by a single caller and is not safe for concurrent use.
type Interpolator[T any] struct {
	start    T
	end      T
	duration float64
	delay    float64
	easing   Easing
	ease     Func
	blend    blendFunc[T]
	started  time.Time
}

// Option configures optional Interpolator parameters.
type Option func(*settings)

type settings struct {
	delay   float64
	started time.Time
}

// WithDelay holds the start value for the given number of seconds before the curve begins.
//
// Parameters:
//   - seconds: the delay in seconds (negative values are treated as 0)
//
// Returns:
//   - Option: option function to apply
func WithDelay(seconds float64) Option {
	return func(s *settings) {
		s.delay = max(seconds, 0)
	}
}

// WithStartTime overrides the monotonic start timestamp, which otherwise defaults to time.Now().
//
// Parameters:
//   - t: the start timestamp
//
// Returns:
//   - Option: option function to apply
func WithStartTime(t time.Time) Option {
	return func(s *settings) {
		s.started = t
	}
}

// NewVector creates an interpolator that blends two vectors linearly.
//
// Parameters:
//   - start, end: the end points, captured by value
//   - duration: length of the curve in seconds (must be > 0)
//   - easing: catalog name of the timing curve
//   - options: optional delay / start time
//
// Returns:
//   - *Interpolator[mgl32.Vec3]: the interpolator
//   - error: ErrInvalidDuration or ErrUnknownEasing
func NewVector(start, end mgl32.Vec3, duration float64, easing Easing, options ...Option) (*Interpolator[mgl32.Vec3], error) {
	return newInterpolator(start, end, duration, easing, lerpVec3, options)
}

// NewRotation creates an interpolator that blends two orientations along the shortest arc.
//
// Parameters:
//   - start, end: the end orientations, captured by value
//   - duration: length of the curve in seconds (must be > 0)
//   - easing: catalog name of the timing curve
//   - options: optional delay / start time
//
// Returns:
//   - *Interpolator[mgl32.Quat]: the interpolator
//   - error: ErrInvalidDuration or ErrUnknownEasing
func NewRotation(start, end mgl32.Quat, duration float64, easing Easing, options ...Option) (*Interpolator[mgl32.Quat], error) {
	return newInterpolator(start, end, duration, easing, slerpShortest, options)
}

func newInterpolator[T any](start, end T, duration float64, easing Easing, blend blendFunc[T], options []Option) (*Interpolator[T], error) {
	if !(duration > 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidDuration, duration)
	}
	ease, err := Lookup(easing)
	if err != nil {
		return nil, err
	}

	s := settings{}
	for _, opt := range options {
		opt(&s)
	}
	if s.started.IsZero() {
		s.started = time.Now()
	}

	return &Interpolator[T]{
		start:    start,
		end:      end,
		duration: duration,
		delay:    s.delay,
		easing:   easing,
		ease:     ease,
		blend:    blend,
		started:  s.started,
	}, nil
}

func (i *Interpolator[T]) Start() T {
	return i.start
}

func (i *Interpolator[T]) End() T {
	return i.end
}

func (i *Interpolator[T]) Duration() float64 {
	return i.duration
}

func (i *Interpolator[T]) Delay() float64 {
	return i.delay
}

func (i *Interpolator[T]) Easing() Easing {
	return i.easing
}

func (i *Interpolator[T]) Started() time.Time {
	return i.started
}

// Total returns delay + duration in seconds.
func (i *Interpolator[T]) Total() float64 {
	return i.delay + i.duration
}

// ValueAt samples the curve.
//
// Parameters:
//   - elapsed: seconds since the start timestamp
//
// Returns:
//   - T: exactly start before the delay has passed, exactly end once the curve is done, the eased blend otherwise
func (i *Interpolator[T]) ValueAt(elapsed float64) T {
	if elapsed <= i.delay {
		return i.start
	}
	if i.IsDone(elapsed) {
		return i.end
	}
	t := common.Clamp((elapsed-i.delay)/i.duration, 0, 1)
	return i.blend(i.start, i.end, float32(i.ease(t)))
}

// IsDone reports whether elapsed >= delay + duration.
func (i *Interpolator[T]) IsDone(elapsed float64) bool {
	return elapsed >= i.delay+i.duration
}

// Elapsed converts a timestamp into seconds since the start timestamp using the monotonic clock reading when present.
func (i *Interpolator[T]) Elapsed(now time.Time) float64 {
	return now.Sub(i.started).Seconds()
}

// Value samples the curve at the given timestamp.
func (i *Interpolator[T]) Value(now time.Time) T {
	return i.ValueAt(i.Elapsed(now))
}

// Done reports whether the curve has finished at the given timestamp.
func (i *Interpolator[T]) Done(now time.Time) bool {
	return i.IsDone(i.Elapsed(now))
}

func lerpVec3(start, end mgl32.Vec3, t float32) mgl32.Vec3 {
	return start.Add(end.Sub(start).Mul(t))
}

// slerpShortest flips end into the hemisphere of start so the blend never takes the long way round.
func slerpShortest(start, end mgl32.Quat, t float32) mgl32.Quat {
	if start.Dot(end) < 0 {
		end = end.Scale(-1)
	}
	return mgl32.QuatSlerp(start, end, t)
}
