package game_object

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/solaris/engine/body"
)

type gameObject struct {
	mu *sync.Mutex

	id        int
	enabled   atomic.Bool
	ephemeral bool

	position      mgl32.Vec3
	scale         mgl32.Vec3
	rotation      mgl32.Vec3
	rotationSpeed mgl32.Vec3

	// radius of the attached sphere geometry before scaling; 0 means no geometry yet
	geometryRadius float32
	color          string
	texturePath    string
}

// GameObject defines the interface for a scene node carrying a sphere geometry.
// A GameObject is the world transform a tracked body anchors to: it reports its position and the
// scaled bounding radius of its geometry, and spins cosmetically while enabled.
type GameObject interface {
	body.Anchor

	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - int: the object ID
	ID() int

	// Enabled returns whether this object is enabled for rendering and spin.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Ephemeral returns whether this object is ephemeral.
	// Ephemeral objects are rendered but never registered as tracked bodies.
	//
	// Returns:
	//   - bool: true if ephemeral
	Ephemeral() bool

	// Position returns the node's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: position
	Position() mgl32.Vec3

	// Rotation returns the node's Euler rotation in radians.
	//
	// Returns:
	//   - mgl32.Vec3: rotation angles
	Rotation() mgl32.Vec3

	// RotationSpeed returns the node's spin in radians per second around each axis.
	//
	// Returns:
	//   - mgl32.Vec3: rotation speed values
	RotationSpeed() mgl32.Vec3

	// Scale returns the node's scale.
	//
	// Returns:
	//   - mgl32.Vec3: scale components
	Scale() mgl32.Vec3

	// GeometryRadius returns the radius of the attached sphere before scaling, 0 if none is attached.
	//
	// Returns:
	//   - float32: the unscaled radius
	GeometryRadius() float32

	// Color returns the fallback surface color.
	//
	// Returns:
	//   - string: CSS-style color string
	Color() string

	// TexturePath returns the surface texture path, empty when the color is used instead.
	//
	// Returns:
	//   - string: texture path
	TexturePath() string

	// WorldMatrix composes translation, rotation and scale into the node's world transform.
	//
	// Returns:
	//   - mgl32.Mat4: the world matrix
	WorldMatrix() mgl32.Mat4

	// Advance spins the node by its rotation speed over dt seconds. Disabled nodes do not move.
	//
	// Parameters:
	//   - dt: elapsed seconds
	Advance(dt float32)

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id int)

	// SetEnabled sets whether the object is enabled.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetPosition moves the node.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float32)

	// SetRotation sets the Euler rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: new rotation angles
	SetRotation(rx, ry, rz float32)

	// SetRotationSpeed sets the spin in radians per second.
	//
	// Parameters:
	//   - rx, ry, rz: new rotation speed values
	SetRotationSpeed(rx, ry, rz float32)

	// SetScale sets the node's scale.
	//
	// Parameters:
	//   - sx, sy, sz: new scale factors
	SetScale(sx, sy, sz float32)

	// SetGeometryRadius attaches (radius > 0) or detaches (radius <= 0) the sphere geometry.
	//
	// Parameters:
	//   - radius: the unscaled sphere radius
	SetGeometryRadius(radius float32)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Objects start enabled with unit scale and no geometry.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:    &sync.Mutex{},
		scale: mgl32.Vec3{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() int {
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Ephemeral() bool {
	return g.ephemeral
}

func (g *gameObject) Position() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) Rotation() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

func (g *gameObject) RotationSpeed() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotationSpeed
}

func (g *gameObject) Scale() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

func (g *gameObject) GeometryRadius() float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.geometryRadius
}

func (g *gameObject) Color() string {
	return g.color
}

func (g *gameObject) TexturePath() string {
	return g.texturePath
}

// WorldPosition implements body.Anchor. A scene node always has a position.
func (g *gameObject) WorldPosition() (mgl32.Vec3, bool) {
	return g.Position(), true
}

// BoundingRadius implements body.Anchor: the geometry radius times the largest scale component.
func (g *gameObject) BoundingRadius() (float32, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.geometryRadius <= 0 {
		return 0, false
	}
	s := max(abs32(g.scale[0]), abs32(g.scale[1]), abs32(g.scale[2]))
	return g.geometryRadius * s, true
}

func (g *gameObject) WorldMatrix() mgl32.Mat4 {
	g.mu.Lock()
	defer g.mu.Unlock()
	t := mgl32.Translate3D(g.position[0], g.position[1], g.position[2])
	r := mgl32.AnglesToQuat(g.rotation[0], g.rotation[1], g.rotation[2], mgl32.XYZ).Mat4()
	s := mgl32.Scale3D(g.scale[0], g.scale[1], g.scale[2])
	return t.Mul4(r).Mul4(s)
}

func (g *gameObject) Advance(dt float32) {
	if !g.enabled.Load() {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.rotation {
		g.rotation[i] = wrapAngle(g.rotation[i] + g.rotationSpeed[i]*dt)
	}
}

func (g *gameObject) SetID(id int) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = mgl32.Vec3{x, y, z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = mgl32.Vec3{rx, ry, rz}
}

func (g *gameObject) SetRotationSpeed(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotationSpeed = mgl32.Vec3{rx, ry, rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = mgl32.Vec3{sx, sy, sz}
}

func (g *gameObject) SetGeometryRadius(radius float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.geometryRadius = max(radius, 0)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// wrapAngle keeps an angle in [-2π, 2π] so long-running spins do not lose float precision.
func wrapAngle(a float32) float32 {
	return float32(math.Mod(float64(a), 2*math.Pi))
}
