package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/solaris/common"
)

const (
	kmPerLightSecond = 299_792.458
	kmPerEarthRadius = 6_371

	minRenderRadius = 0.2
	maxRenderRadius = 10
)

// ER2LS converts earth radii to light seconds.
func ER2LS(radii float64) float64 {
	return radii * kmPerEarthRadius / kmPerLightSecond
}

// Scale maps descriptor units (light seconds, earth radii) to world units.
type Scale struct {
	// DistanceScale divides every distance.
	DistanceScale float64 `mapstructure:"distanceScale"`
	// PlanetScale multiplies log-scaled radii and moon distances.
	PlanetScale float64 `mapstructure:"planetScale"`
}

// DefaultScale returns the scale the viewer ships with.
func DefaultScale() Scale {
	return Scale{DistanceScale: 5, PlanetScale: 100}
}

// RenderRadius compresses a radius in earth radii into a drawable sphere radius in [0.2, 10].
func (s Scale) RenderRadius(radiusER float64) float32 {
	return float32(common.Clamp(math.Log(ER2LS(radiusER)+1)*s.PlanetScale, minRenderRadius, maxRenderRadius))
}

// BodyPosition places a star or planet on the +Z axis.
func (s Scale) BodyPosition(b Body) mgl32.Vec3 {
	return mgl32.Vec3{0, 0, float32(b.DistanceLS / s.DistanceScale)}
}

// MoonPosition places a moon beyond its planet on the +Z axis, its planet distance exaggerated by PlanetScale.
func (s Scale) MoonPosition(parent Body, m Moon) mgl32.Vec3 {
	return mgl32.Vec3{0, 0, float32((parent.DistanceLS + m.PlanetDistanceLS*s.PlanetScale) / s.DistanceScale)}
}

// OrbitRing returns the closed polyline of an orbit ring in the XZ plane: segments+1 points with the
// first and last coinciding. The ring is centred on half of center, matching how moon orbit centres
// are expressed in doubled coordinates.
//
// Parameters:
//   - radius: orbit radius in descriptor units
//   - segments: number of segments (128 when <= 0)
//   - center: doubled ring centre
//   - distanceScale: divides the radius
//
// Returns:
//   - []mgl32.Vec3: the points
func OrbitRing(radius float64, segments int, center mgl32.Vec3, distanceScale float64) []mgl32.Vec3 {
	if segments <= 0 {
		segments = 128
	}
	r := radius / distanceScale
	half := center.Mul(0.5)

	points := make([]mgl32.Vec3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		theta := float64(i) / float64(segments) * 2 * math.Pi
		points = append(points, mgl32.Vec3{
			float32(r * math.Cos(theta)),
			0,
			float32(r * math.Sin(theta)),
		}.Add(half))
	}
	return points
}
