// Package body describes the renderable anchors tracked by camera travel and indicator projection,
// and the explicit parent/child hierarchy between them.
package body

import "github.com/go-gl/mathgl/mgl32"

// Anchor is the externally owned world transform of a body. Implementations report the
// current state each time they are asked; callers never mutate it.
type Anchor interface {
	// WorldPosition returns the current world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	//   - bool: false if the transform cannot report a position right now
	WorldPosition() (mgl32.Vec3, bool)

	// BoundingRadius returns the radius of the world-space bounding sphere.
	//
	// Returns:
	//   - float32: the radius
	//   - bool: false if no geometry is attached yet
	BoundingRadius() (float32, bool)
}

// Overlay is the externally owned 2D indicator of a body.
type Overlay interface {
	// SetVisible shows or hides the indicator.
	SetVisible(visible bool)

	// SetPosition moves the indicator's top-left corner to the given pixel coordinates.
	SetPosition(x, y float32)

	// SetOpacity sets the indicator opacity in [0, 1].
	SetOpacity(opacity float32)
}

// TrackedBody identifies one renderable anchor and its indicator.
type TrackedBody struct {
	// ID is unique within a Registry.
	ID int
	// Name is the display name, also used as the travel destination label.
	Name string
	// ParentID is the id of the parent body; only meaningful when HasParent is true.
	ParentID int
	// HasParent marks child bodies (moons).
	HasParent bool
	// Anchor is the world transform; nil means the body is skipped.
	Anchor Anchor
	// Overlay is the 2D indicator; nil means the body is skipped.
	Overlay Overlay
}

// Ready reports whether both external handles are populated.
func (b *TrackedBody) Ready() bool {
	return b != nil && b.Anchor != nil && b.Overlay != nil
}

// Position reads the anchor's world position.
//
// Returns:
//   - mgl32.Vec3: the position
//   - bool: false if the body has no anchor or the anchor cannot report a position
func (b *TrackedBody) Position() (mgl32.Vec3, bool) {
	if b == nil || b.Anchor == nil {
		return mgl32.Vec3{}, false
	}
	return b.Anchor.WorldPosition()
}

// Radius reads the anchor's bounding radius.
//
// Returns:
//   - float32: the radius
//   - bool: false if the body has no anchor or the anchor has no bounds
func (b *TrackedBody) Radius() (float32, bool) {
	if b == nil || b.Anchor == nil {
		return 0, false
	}
	return b.Anchor.BoundingRadius()
}
