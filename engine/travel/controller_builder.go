package travel

import (
	"time"

	"github.com/rs/zerolog"
)

// ControllerOption is a functional option for configuring a Controller.
type ControllerOption func(*Controller)

// WithFraming sets where the camera lands relative to the selected body.
//
// Parameters:
//   - f: distance ratio and angles
//
// Returns:
//   - ControllerOption: functional option to set the framing
func WithFraming(f Framing) ControllerOption {
	return func(c *Controller) {
		c.framing = f
	}
}

// WithPositionTween sets the duration, delay and easing of the position tween.
//
// Parameters:
//   - s: tween settings
//
// Returns:
//   - ControllerOption: functional option to set the position tween
func WithPositionTween(s TweenSettings) ControllerOption {
	return func(c *Controller) {
		c.position = s
	}
}

// WithOrientationTween sets the duration, delay and easing of the orientation tween.
//
// Parameters:
//   - s: tween settings
//
// Returns:
//   - ControllerOption: functional option to set the orientation tween
func WithOrientationTween(s TweenSettings) ControllerOption {
	return func(c *Controller) {
		c.orientation = s
	}
}

// WithStatusPublisher sets the UI sink for travel status.
func WithStatusPublisher(p StatusPublisher) ControllerOption {
	return func(c *Controller) {
		c.publisher = p
	}
}

// WithObserver adds a lifecycle observer. Observers are notified in the order they were added.
func WithObserver(o Observer) ControllerOption {
	return func(c *Controller) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// WithClock replaces time.Now. The clock must be monotonic.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = l
	}
}
