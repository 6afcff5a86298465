package indicator

import "github.com/rs/zerolog"

// ProjectorOption is a functional option for configuring a Projector.
type ProjectorOption func(*Projector)

// WithIndicatorSize sets the indicator edge length; placements are offset by half of it.
//
// Parameters:
//   - px: edge length in pixels
//
// Returns:
//   - ProjectorOption: functional option to set the size
func WithIndicatorSize(px float32) ProjectorOption {
	return func(p *Projector) {
		p.size = px
	}
}

// WithMargin sets how far outside the viewport an anchor may project before it is hidden.
//
// Parameters:
//   - px: margin in pixels
//
// Returns:
//   - ProjectorOption: functional option to set the margin
func WithMargin(px float32) ProjectorOption {
	return func(p *Projector) {
		p.margin = px
	}
}

// WithFadeDistance sets the camera-to-parent distance, in parent radii, beyond which unselected children fade.
//
// Parameters:
//   - radii: fade distance
//
// Returns:
//   - ProjectorOption: functional option to set the fade distance
func WithFadeDistance(radii float32) ProjectorOption {
	return func(p *Projector) {
		p.fade = radii
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) ProjectorOption {
	return func(p *Projector) {
		p.logger = l
	}
}
