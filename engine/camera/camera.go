package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/solaris/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	position    mgl32.Vec3
	orientation mgl32.Quat
	up          mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	worldMatrix          mgl32.Mat4
	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
}

// Camera defines the interface for the perspective camera.
// The camera owns its pose (world position and orientation) and recomputes the world, view
// and projection matrices whenever the pose or the perspective settings change.
// The camera looks down its local -Z axis.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// SetPosition moves the camera without changing its orientation.
	//
	// Parameters:
	//   - p: world-space position
	SetPosition(p mgl32.Vec3)

	// Orientation returns the camera's world-space orientation.
	//
	// Returns:
	//   - mgl32.Quat: unit quaternion
	Orientation() mgl32.Quat

	// SetOrientation rotates the camera without moving it.
	//
	// Parameters:
	//   - q: world-space orientation (normalized on write)
	SetOrientation(q mgl32.Quat)

	// LookAt orients the camera toward a world-space point using the camera's up vector.
	//
	// Parameters:
	//   - target: the point to face
	LookAt(target mgl32.Vec3)

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: up vector
	Up() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// WorldMatrix returns the camera-to-world transform.
	//
	// Returns:
	//   - mgl32.Mat4: the world matrix
	WorldMatrix() mgl32.Mat4

	// ViewMatrix returns the inverse world matrix (world-to-camera transform).
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the perspective projection matrix (OpenGL clip space).
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4

	// Snapshot copies the current pose and matrices into a value that is safe to read for the rest of the frame.
	//
	// Returns:
	//   - Snapshot: the frozen camera state
	Snapshot() Snapshot

	// SetUp sets the camera's up vector used by LookAt.
	//
	// Parameters:
	//   - up: up vector
	SetUp(up mgl32.Vec3)

	// SetFov sets the vertical field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera at the origin looking down -Z with default perspective settings
// (50 degree vertical field of view, matching the viewer's default canvas camera).
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:          &sync.Mutex{},
		orientation: mgl32.QuatIdent(),
		up:          common.WorldUp,
		fov:         50.0 * (math.Pi / 180.0), // radians
		aspect:      1.0,
		near:        0.1,
		far:         2000.0,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(p mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
	c.updateMatrices()
}

func (c *cameraImpl) Orientation() mgl32.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orientation
}

func (c *cameraImpl) SetOrientation(q mgl32.Quat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orientation = q.Normalize()
	c.updateMatrices()
}

func (c *cameraImpl) LookAt(target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orientation = common.LookAtRotation(c.position, target, c.up)
	c.updateMatrices()
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) WorldMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.worldMatrix
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Position:       c.position,
		Orientation:    c.orientation,
		View:           c.viewMatrix,
		Projection:     c.projectionMatrix,
		ViewProjection: c.viewProjectionMatrix,
	}
}

func (c *cameraImpl) SetUp(up mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

// updateMatrices recalculates the world, view, projection and view-projection matrices from the pose.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	c.worldMatrix = mgl32.Translate3D(c.position[0], c.position[1], c.position[2]).Mul4(c.orientation.Mat4())
	c.viewMatrix = c.worldMatrix.Inv()
	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}

// Snapshot is a frozen copy of the camera pose and matrices for one frame.
type Snapshot struct {
	Position       mgl32.Vec3
	Orientation    mgl32.Quat
	View           mgl32.Mat4
	Projection     mgl32.Mat4
	ViewProjection mgl32.Mat4
}

// ToCameraSpace transforms a world-space point by the view matrix. Points in front of the camera have negative Z.
//
// Parameters:
//   - p: world-space point
//
// Returns:
//   - mgl32.Vec3: the point in camera space
func (s Snapshot) ToCameraSpace(p mgl32.Vec3) mgl32.Vec3 {
	return s.View.Mul4x1(p.Vec4(1)).Vec3()
}

// Project transforms a world-space point into normalized device coordinates.
//
// Parameters:
//   - p: world-space point
//
// Returns:
//   - mgl32.Vec3: normalized device coordinates (x, y in [-1, 1] when on screen)
func (s Snapshot) Project(p mgl32.Vec3) mgl32.Vec3 {
	clip := s.ViewProjection.Mul4x1(p.Vec4(1))
	if clip[3] == 0 {
		return clip.Vec3()
	}
	return clip.Vec3().Mul(1 / clip[3])
}

// DistanceTo returns the distance from the camera to a world-space point.
func (s Snapshot) DistanceTo(p mgl32.Vec3) float32 {
	return p.Sub(s.Position).Len()
}
