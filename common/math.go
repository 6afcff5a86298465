package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// WorldUp is the world-space up axis shared by the camera, the orbit controller and the travel framing.
var WorldUp = mgl32.Vec3{0, 1, 0}

// SphericalOffset converts a framing triple into a Cartesian offset from the framed point.
// The pitch is measured from the horizontal and is mirrored through 180 degrees before conversion,
// which places the camera slightly above the body and on the far side of it when looking back at the origin.
//
// Parameters:
//   - radius: distance from the framed point
//   - yawDeg: horizontal angle in degrees
//   - pitchDeg: vertical angle in degrees from the horizontal
//
// Returns:
//   - mgl32.Vec3: the offset to add to the framed point
func SphericalOffset(radius, yawDeg, pitchDeg float32) mgl32.Vec3 {
	yaw := float64(yawDeg) * math.Pi / 180
	pitch := (180 - float64(pitchDeg)) * math.Pi / 180
	r := float64(radius)

	return mgl32.Vec3{
		float32(r * math.Cos(pitch) * math.Sin(yaw)),
		float32(r * math.Sin(pitch)),
		float32(r * math.Cos(pitch) * math.Cos(yaw)),
	}
}

// LookAtRotation builds the orientation of an object at eye that faces center, with its local -Z axis
// pointing at the target and its local +Y axis as close to up as possible.
// Coincident eye/center and a look direction parallel to up are resolved by nudging the backward axis
// instead of failing, so the result is always a valid unit quaternion.
//
// Parameters:
//   - eye: position of the viewer
//   - center: point to face
//   - up: preferred up direction (typically WorldUp)
//
// Returns:
//   - mgl32.Quat: the world orientation of the viewer
func LookAtRotation(eye, center, up mgl32.Vec3) mgl32.Quat {
	z := eye.Sub(center)
	if z.LenSqr() == 0 {
		z[2] = 1
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.LenSqr() == 0 {
		if math.Abs(float64(up[2])) == 1 {
			z[0] += 0.0001
		} else {
			z[2] += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	basis := mgl32.Mat4FromCols(x.Vec4(0), y.Vec4(0), z.Vec4(0), mgl32.Vec4{0, 0, 0, 1})
	return mgl32.Mat4ToQuat(basis).Normalize()
}

// ToScreen maps normalized device coordinates to pixel coordinates with the origin at the top-left corner.
//
// Parameters:
//   - ndc: normalized device coordinates in [-1, 1]
//   - vp: the viewport in pixels
//
// Returns:
//   - x, y: pixel coordinates
func ToScreen(ndc mgl32.Vec3, vp Viewport) (x, y float32) {
	x = (ndc[0] + 1) * vp.Width / 2
	y = (1 - (ndc[1]+1)/2) * vp.Height
	return x, y
}

// ScreenRay casts a world-space ray through a pixel of the viewport.
//
// Parameters:
//   - view: the camera view matrix (inverse world matrix)
//   - projection: the camera projection matrix
//   - vp: the viewport in pixels
//   - x, y: pixel coordinates with the origin at the top-left corner
//
// Returns:
//   - origin: the ray origin on the near plane
//   - dir: the unit ray direction
//   - error: error if the matrices cannot be inverted
func ScreenRay(view, projection mgl32.Mat4, vp Viewport, x, y float32) (origin, dir mgl32.Vec3, err error) {
	w, h := int(vp.Width), int(vp.Height)
	winY := vp.Height - y

	near, err := mgl32.UnProject(mgl32.Vec3{x, winY, 0}, view, projection, 0, 0, w, h)
	if err != nil {
		return origin, dir, err
	}
	far, err := mgl32.UnProject(mgl32.Vec3{x, winY, 1}, view, projection, 0, 0, w, h)
	if err != nil {
		return origin, dir, err
	}
	return near, far.Sub(near).Normalize(), nil
}

// RaySphere intersects a ray with a sphere.
//
// Parameters:
//   - origin, dir: the ray; dir must be unit length
//   - center, radius: the sphere
//
// Returns:
//   - float32: distance along the ray to the nearest intersection in front of the origin
//   - bool: true if the ray hits the sphere
func RaySphere(origin, dir, center mgl32.Vec3, radius float32) (float32, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
