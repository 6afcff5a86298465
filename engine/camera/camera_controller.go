package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController defines the user-facing orbit controller driving a Camera.
// Input methods only accumulate pending motion; Update applies it to the camera once per frame,
// optionally damped so motion eases out over several frames.
// While disabled the controller ignores input and Update leaves the camera untouched, which lets
// another owner (camera travel) drive the pose directly.
// Embeds both orbitCameraController and planarCameraController, enabling orbit and planar controls
// to work simultaneously from a single controller instance.
type CameraController interface {
	orbitCameraController
	planarCameraController

	// Camera returns the camera this controller drives.
	//
	// Returns:
	//   - Camera: the driven camera
	Camera() Camera

	// Enabled reports whether user input is accepted and Update moves the camera.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled enables or suspends the controller. Suspending discards pending motion.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Damping reports whether pending motion is eased out over several frames.
	//
	// Returns:
	//   - bool: true if damping is on
	Damping() bool

	// SetDamping turns damping on or off.
	//
	// Parameters:
	//   - damping: true to ease motion out
	SetDamping(damping bool)

	// DampingFactor returns the fraction of pending motion applied per Update when damping is on.
	//
	// Returns:
	//   - float32: factor in (0, 1]
	DampingFactor() float32

	// Target returns the look-at / pivot point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target position
	Target() mgl32.Vec3

	// SetTarget moves the pivot point. The camera position is kept; the next Update re-aims the camera.
	//
	// Parameters:
	//   - target: world-space coordinates
	SetTarget(target mgl32.Vec3)

	// Update derives the orbit from the camera's current position relative to the target,
	// applies pending motion, clamps to bounds and writes the pose back to the camera.
	// Does nothing while disabled.
	Update()

	// Zoom dollies toward (positive delta) or away from (negative delta) the target.
	//
	// Parameters:
	//   - delta: zoom steps scaled by ZoomSpeed
	Zoom(delta float32)
}

// orbitCameraController defines orbit-specific control methods.
// Provides third-person orbit controls using spherical coordinates (radius, azimuth, elevation)
// relative to the target/pivot point.
type orbitCameraController interface {
	// OrbitLeft rotates the camera left around the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera right around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit speed step.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit speed step.
	OrbitDown()

	// Rotate queues an orbit by the given angles, typically from a mouse drag.
	//
	// Parameters:
	//   - dAzimuth: horizontal angle in radians
	//   - dElevation: vertical angle in radians
	Rotate(dAzimuth, dElevation float32)

	// Radius returns the current distance between camera and target.
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// MinRadius returns the minimum allowed orbit radius.
	//
	// Returns:
	//   - float32: minimum zoom distance
	MinRadius() float32

	// MaxRadius returns the maximum allowed orbit radius.
	//
	// Returns:
	//   - float32: maximum zoom distance
	MaxRadius() float32

	// MinElevation returns the minimum allowed elevation angle.
	//
	// Returns:
	//   - float32: minimum elevation in radians
	MinElevation() float32

	// MaxElevation returns the maximum allowed elevation angle.
	//
	// Returns:
	//   - float32: maximum elevation in radians
	MaxElevation() float32

	// OrbitSpeed returns the keyboard orbit speed in radians per step.
	//
	// Returns:
	//   - float32: radians per orbit call
	OrbitSpeed() float32

	// MouseSensitivity returns the mouse drag sensitivity multiplier.
	//
	// Returns:
	//   - float32: radians per pixel of mouse movement
	MouseSensitivity() float32

	// ZoomSpeed returns the zoom speed multiplier.
	//
	// Returns:
	//   - float32: multiplier for zoom input
	ZoomSpeed() float32
}

// planarCameraController defines planar translation control methods.
// Provides first-person-style panning along the camera's local axes without
// changing orbit angles. Panning shifts the target; the next Update carries the camera along.
type planarCameraController interface {
	// PanRight translates along the camera's local right axis.
	// Positive delta moves right, negative moves left.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanRight(delta float32)

	// PanUp translates along the camera's local up axis.
	// Positive delta moves up, negative moves down.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanUp(delta float32)

	// PanForward translates along the camera's local forward axis (dolly).
	// Positive delta moves toward the target, negative moves away.
	//
	// Parameters:
	//   - delta: pan amount scaled by PanSpeed
	PanForward(delta float32)

	// PanSpeed returns the pan speed multiplier.
	//
	// Returns:
	//   - float32: multiplier for pan input
	PanSpeed() float32
}
