// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Viewport is the size of the drawable area in pixels.
type Viewport struct {
	// Width is the drawable width in pixels.
	Width float32
	// Height is the drawable height in pixels.
	Height float32
}

// Aspect returns the width / height ratio, or 1 when the viewport has no height.
//
// Returns:
//   - float32: the aspect ratio
func (v Viewport) Aspect() float32 {
	if v.Height == 0 {
		return 1
	}
	return v.Width / v.Height
}

// Empty reports whether the viewport has no drawable area.
//
// Returns:
//   - bool: true if either dimension is zero or negative
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}
