package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/solaris/common"
)

// cameraControllerImpl is the single implementation of CameraController.
// Supports both orbit and planar controls simultaneously. Input accumulates into pending deltas that
// Update applies against the camera's live position, so a pose written by someone else while the
// controller was disabled is picked up seamlessly once it is re-enabled.
type cameraControllerImpl struct {
	mu *sync.Mutex

	cam    Camera
	target mgl32.Vec3

	enabled       bool
	damping       bool
	dampingFactor float32

	// Pending motion, consumed by Update
	pendingAzimuth   float32
	pendingElevation float32
	pendingZoom      float32
	pendingPan       mgl32.Vec3

	// Initial placement (applied once at construction when placed is set)
	placed    bool
	radius    float32
	azimuth   float32
	elevation float32

	// Orbit constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	// Orbit speed settings
	orbitSpeed       float32
	mouseSensitivity float32
	zoomSpeed        float32

	// Planar speed
	panSpeed float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new orbit controller driving cam, enabled and damped by default.
// When a placement option (WithRadius, WithAzimuth, WithElevation) is given, the camera is moved onto
// that orbit around the target and aimed at it; otherwise the camera pose is left as is.
//
// Parameters:
//   - cam: the camera to drive
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(cam Camera, options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:  &sync.Mutex{},
		cam: cam,

		enabled:       true,
		damping:       true,
		dampingFactor: 0.05,

		radius:    250.0,
		azimuth:   0.0,
		elevation: float32(math.Pi / 6),

		minRadius:    0.01,
		maxRadius:    5000.0,
		minElevation: float32(-math.Pi/2 + 0.01),
		maxElevation: float32(math.Pi/2 - 0.01),

		orbitSpeed:       0.03,
		mouseSensitivity: 0.005,
		zoomSpeed:        0.1,

		panSpeed: 1.0,
	}

	for _, option := range options {
		option(cc)
	}

	if cc.placed {
		r := common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
		el := common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
		cam.SetPosition(cc.target.Add(orbitOffset(r, cc.azimuth, el)))
		cam.LookAt(cc.target)
	}
	return cc
}

// --- internal helpers ---

// orbitOffset converts spherical coordinates into an offset from the target.
func orbitOffset(radius, azimuth, elevation float32) mgl32.Vec3 {
	cosElev := float32(math.Cos(float64(elevation)))
	sinElev := float32(math.Sin(float64(elevation)))
	cosAzim := float32(math.Cos(float64(azimuth)))
	sinAzim := float32(math.Sin(float64(azimuth)))

	return mgl32.Vec3{
		radius * cosElev * sinAzim,
		radius * sinElev,
		radius * cosElev * cosAzim,
	}
}

// sphericalFrom is the inverse of orbitOffset.
func sphericalFrom(offset mgl32.Vec3) (radius, azimuth, elevation float32) {
	radius = offset.Len()
	if radius == 0 {
		return 0, 0, 0
	}
	azimuth = float32(math.Atan2(float64(offset[0]), float64(offset[2])))
	elevation = float32(math.Asin(float64(common.Clamp(offset[1]/radius, -1, 1))))
	return radius, azimuth, elevation
}

// localAxes computes the camera's local coordinate axes consistent with a look-at toward the target.
// Returns right, up and forward unit vectors; all zero if position and target coincide.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (right, up, forward mgl32.Vec3) {
	// backward = normalize(position - target)
	back := cc.cam.Position().Sub(cc.target)
	if back.Len() < 1e-8 {
		return
	}
	back = back.Normalize()

	// right = normalize(cross(worldUp, backward)); ry is always 0 for worldUp = (0, 1, 0)
	right = common.WorldUp.Cross(back)
	if right.Len() < 1e-8 {
		return mgl32.Vec3{}, mgl32.Vec3{}, back.Mul(-1)
	}
	right = right.Normalize()
	up = back.Cross(right)
	forward = back.Mul(-1)
	return
}

// clearPending drops queued motion. Caller must hold the mutex.
func (cc *cameraControllerImpl) clearPending() {
	cc.pendingAzimuth = 0
	cc.pendingElevation = 0
	cc.pendingZoom = 0
	cc.pendingPan = mgl32.Vec3{}
}

// --- CameraController shared methods ---

func (cc *cameraControllerImpl) Camera() Camera {
	return cc.cam
}

func (cc *cameraControllerImpl) Enabled() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.enabled
}

func (cc *cameraControllerImpl) SetEnabled(enabled bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.enabled = enabled
	if !enabled {
		cc.clearPending()
	}
}

func (cc *cameraControllerImpl) Damping() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.damping
}

func (cc *cameraControllerImpl) SetDamping(damping bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.damping = damping
}

func (cc *cameraControllerImpl) DampingFactor() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.dampingFactor
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(target mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = target
}

func (cc *cameraControllerImpl) Update() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.enabled {
		return
	}

	factor := float32(1)
	if cc.damping {
		factor = cc.dampingFactor
	}

	radius, azimuth, elevation := sphericalFrom(cc.cam.Position().Sub(cc.target))
	if radius == 0 {
		radius = cc.minRadius
	}

	azimuth += cc.pendingAzimuth * factor
	elevation += cc.pendingElevation * factor
	radius *= float32(math.Exp(float64(-cc.pendingZoom * cc.zoomSpeed * factor)))
	cc.target = cc.target.Add(cc.pendingPan.Mul(factor))

	elevation = common.Clamp(elevation, cc.minElevation, cc.maxElevation)
	radius = common.Clamp(radius, cc.minRadius, cc.maxRadius)

	cc.cam.SetPosition(cc.target.Add(orbitOffset(radius, azimuth, elevation)))
	cc.cam.LookAt(cc.target)

	if cc.damping {
		keep := 1 - factor
		cc.pendingAzimuth *= keep
		cc.pendingElevation *= keep
		cc.pendingZoom *= keep
		cc.pendingPan = cc.pendingPan.Mul(keep)
	} else {
		cc.clearPending()
	}
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.enabled {
		return
	}
	cc.pendingZoom += delta
}

// --- orbitCameraController implementation ---

func (cc *cameraControllerImpl) OrbitLeft() {
	cc.Rotate(-cc.orbitSpeed, 0)
}

func (cc *cameraControllerImpl) OrbitRight() {
	cc.Rotate(cc.orbitSpeed, 0)
}

func (cc *cameraControllerImpl) OrbitUp() {
	cc.Rotate(0, cc.orbitSpeed)
}

func (cc *cameraControllerImpl) OrbitDown() {
	cc.Rotate(0, -cc.orbitSpeed)
}

func (cc *cameraControllerImpl) Rotate(dAzimuth, dElevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.enabled {
		return
	}
	cc.pendingAzimuth += dAzimuth
	cc.pendingElevation += dElevation
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.cam.Position().Sub(cc.target).Len()
}

func (cc *cameraControllerImpl) MinRadius() float32 {
	return cc.minRadius
}

func (cc *cameraControllerImpl) MaxRadius() float32 {
	return cc.maxRadius
}

func (cc *cameraControllerImpl) MinElevation() float32 {
	return cc.minElevation
}

func (cc *cameraControllerImpl) MaxElevation() float32 {
	return cc.maxElevation
}

func (cc *cameraControllerImpl) OrbitSpeed() float32 {
	return cc.orbitSpeed
}

func (cc *cameraControllerImpl) MouseSensitivity() float32 {
	return cc.mouseSensitivity
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	return cc.zoomSpeed
}

// --- planarCameraController implementation ---

func (cc *cameraControllerImpl) pan(axis mgl32.Vec3, delta float32) {
	if !cc.enabled {
		return
	}
	cc.pendingPan = cc.pendingPan.Add(axis.Mul(delta * cc.panSpeed))
}

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	right, _, _ := cc.localAxes()
	cc.pan(right, delta)
}

func (cc *cameraControllerImpl) PanUp(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, up, _ := cc.localAxes()
	cc.pan(up, delta)
}

func (cc *cameraControllerImpl) PanForward(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	_, _, forward := cc.localAxes()
	cc.pan(forward, delta)
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	return cc.panSpeed
}
