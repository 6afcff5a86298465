// Package indicator maps tracked bodies to 2D overlay placements once per frame.
package indicator

import (
	"github.com/rs/zerolog"

	"github.com/Carmen-Shannon/solaris/common"
	"github.com/Carmen-Shannon/solaris/engine/body"
	"github.com/Carmen-Shannon/solaris/engine/camera"
)

// Frame is the read-only context of one projection pass.
type Frame struct {
	// Camera is the camera state frozen for this frame.
	Camera camera.Snapshot
	// Viewport is the drawable size in pixels.
	Viewport common.Viewport
	// Selection is the current travel selection, nil if none.
	Selection *body.TrackedBody
}

// Placement is the computed overlay state of one body.
type Placement struct {
	ID      int
	Visible bool
	// X, Y is the overlay's top-left corner in pixels; only set when Visible.
	X, Y float32
	// Opacity is 0 or 1; only set when Visible.
	Opacity float32
}

// Stats counts the outcome of one projection pass.
type Stats struct {
	Visible int
	Hidden  int
	Skipped int
}

// Projector computes indicator placements. It holds configuration only and is safe to share.
type Projector struct {
	size   float32
	margin float32
	fade   float32
	logger zerolog.Logger
}

// NewProjector creates a Projector for 40 px indicators with a 20 px off-screen margin and a moon fade
// distance of 50 parent radii.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *Projector: the projector
func NewProjector(options ...ProjectorOption) *Projector {
	p := &Projector{
		size:   40,
		margin: 20,
		fade:   50,
		logger: zerolog.Nop(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Size returns the indicator edge length in pixels.
func (p *Projector) Size() float32 {
	return p.size
}

// Margin returns the off-screen tolerance in pixels.
func (p *Projector) Margin() float32 {
	return p.margin
}

// FadeDistance returns the distance, in parent radii, beyond which unselected moons fade out.
func (p *Projector) FadeDistance() float32 {
	return p.fade
}

// Place computes the overlay state of one body without touching its overlay.
//
// Parameters:
//   - frame: the frame context
//   - reg: the registry used to resolve parents
//   - b: the body to place
//
// Returns:
//   - Placement: the placement
//   - bool: false if the body must be skipped this frame (missing anchor, overlay or position)
func (p *Projector) Place(frame Frame, reg *body.Registry, b *body.TrackedBody) (Placement, bool) {
	if !b.Ready() {
		return Placement{}, false
	}
	pos, ok := b.Position()
	if !ok {
		return Placement{}, false
	}

	out := Placement{ID: b.ID}
	if frame.Camera.ToCameraSpace(pos).Z() > 0 {
		return out, true
	}

	x, y := common.ToScreen(frame.Camera.Project(pos), frame.Viewport)
	if p.offScreen(x, y, frame.Viewport) {
		return out, true
	}

	half := p.size / 2
	out.Visible = true
	out.X = x - half
	out.Y = y - half
	out.Opacity = p.opacity(frame, reg, b)
	return out, true
}

// Project places every registered body and applies the result to its overlay.
// Hidden bodies only receive SetVisible(false); visible ones also get position and opacity.
// Applying the same frame twice leaves every overlay in the same state.
//
// Parameters:
//   - frame: the frame context
//   - reg: the tracked bodies
//
// Returns:
//   - Stats: per-outcome counts
func (p *Projector) Project(frame Frame, reg *body.Registry) Stats {
	var stats Stats
	if frame.Viewport.Empty() {
		p.logger.Debug().Msg("empty viewport, skipping indicator projection")
		stats.Skipped = reg.Len()
		return stats
	}

	for _, b := range reg.All() {
		pl, ok := p.Place(frame, reg, b)
		if !ok {
			stats.Skipped++
			continue
		}
		if !pl.Visible {
			b.Overlay.SetVisible(false)
			stats.Hidden++
			continue
		}
		b.Overlay.SetVisible(true)
		b.Overlay.SetPosition(pl.X, pl.Y)
		b.Overlay.SetOpacity(pl.Opacity)
		stats.Visible++
	}
	return stats
}

func (p *Projector) offScreen(x, y float32, vp common.Viewport) bool {
	return x < -p.margin || x > vp.Width+p.margin || y < -p.margin || y > vp.Height+p.margin
}

// opacity fades out a child body unless it is selected, its parent is close enough to the camera,
// and any current selection belongs to the same family.
func (p *Projector) opacity(frame Frame, reg *body.Registry, b *body.TrackedBody) float32 {
	if !b.HasParent {
		return 1
	}
	parent, ok := reg.Parent(b.ID)
	if !ok {
		return 1
	}
	parentPos, ok := parent.Position()
	if !ok {
		return 1
	}
	parentRadius, ok := parent.Radius()
	if !ok || parentRadius <= 0 {
		return 1
	}

	if frame.Selection != nil && frame.Selection.ID == b.ID {
		return 1
	}
	if frame.Camera.DistanceTo(parentPos)/parentRadius > p.fade {
		return 0
	}
	if frame.Selection != nil && reg.Root(frame.Selection.ID) != b.ParentID {
		return 0
	}
	return 1
}
