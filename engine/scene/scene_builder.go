package scene

import (
	"github.com/rs/zerolog"

	"github.com/Carmen-Shannon/solaris/engine/camera"
	"github.com/Carmen-Shannon/solaris/engine/hud"
	"github.com/Carmen-Shannon/solaris/engine/indicator"
	"github.com/Carmen-Shannon/solaris/engine/profiler"
	"github.com/Carmen-Shannon/solaris/engine/travel"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithController sets the orbit controller. It must drive the scene's camera.
//
// Parameters:
//   - ctrl: the orbit controller
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithController(ctrl camera.CameraController) SceneBuilderOption {
	return func(s *scene) {
		s.ctrl = ctrl
	}
}

// WithHUD attaches the overlay model. Its indicators should be the overlays the system was built with.
func WithHUD(h *hud.HUD) SceneBuilderOption {
	return func(s *scene) {
		s.hud = h
	}
}

// WithProjector replaces the default indicator projector.
func WithProjector(p *indicator.Projector) SceneBuilderOption {
	return func(s *scene) {
		s.projector = p
	}
}

// WithMetrics records selections, travels and projection counts.
func WithMetrics(m *profiler.Metrics) SceneBuilderOption {
	return func(s *scene) {
		s.metrics = m
	}
}

// WithTravelOptions passes extra options to the travel controller, applied after the scene's own.
//
// Parameters:
//   - opts: travel controller options such as framing, tween settings or a clock
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithTravelOptions(opts ...travel.ControllerOption) SceneBuilderOption {
	return func(s *scene) {
		s.travelOpts = append(s.travelOpts, opts...)
	}
}

// WithSelectionQueue sets how many selections may wait for the next frame. Defaults to 16.
func WithSelectionQueue(n int) SceneBuilderOption {
	return func(s *scene) {
		s.queueSize = max(n, 1)
	}
}

// WithComputeWorkers sets the number of worker goroutines used to advance scene nodes.
// Defaults to runtime.NumCPU()-1. A value of 1 advances nodes on the calling goroutine.
//
// Parameters:
//   - n: the number of compute workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.computeWorkers = n
	}
}

// WithLogger sets the scene logger; it is shared with the travel controller and the default projector.
func WithLogger(l zerolog.Logger) SceneBuilderOption {
	return func(s *scene) {
		s.logger = l
	}
}
