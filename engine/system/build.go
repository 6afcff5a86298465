package system

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/solaris/engine/body"
	"github.com/Carmen-Shannon/solaris/engine/game_object"
)

// OverlayFactory creates the 2D indicator of a body.
type OverlayFactory func(id int, name string, moon bool) body.Overlay

// Ring is an orbit polyline handed to the renderer.
type Ring struct {
	BodyID int
	Points []mgl32.Vec3
}

// System is a descriptor turned into scene nodes and tracked bodies.
type System struct {
	Name     string
	Registry *body.Registry
	// Objects holds the scene node of every body, keyed by body id.
	Objects map[int]game_object.GameObject
	Rings   []Ring
}

// Build creates one scene node and one tracked body per star, planet and moon, in descriptor order with
// moons after their planet. Moons get an explicit parent link; bodies without an orbit entry get no ring.
//
// Parameters:
//   - d: a validated descriptor
//   - scale: unit mapping
//   - overlays: indicator factory, nil for bodies without indicators
//
// Returns:
//   - *System: the built system
//   - error: ErrInvalidDescriptor or a registry error
func Build(d *SystemData, scale Scale, overlays OverlayFactory) (*System, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil descriptor", ErrInvalidDescriptor)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if !(scale.DistanceScale > 0) {
		return nil, fmt.Errorf("%w: distance scale %v", ErrInvalidDescriptor, scale.DistanceScale)
	}

	sys := &System{
		Name:     d.Name,
		Registry: body.NewRegistry(),
		Objects:  make(map[int]game_object.GameObject),
	}

	add := func(id int, name string, parent int, hasParent bool, pos mgl32.Vec3, radiusER float64, visual Visual) error {
		var spin float32
		if o, ok := d.Orbit(id); ok {
			spin = float32(o.Speed)
		}
		obj := game_object.NewGameObject(
			game_object.WithID(id),
			game_object.WithPosition(pos[0], pos[1], pos[2]),
			game_object.WithSphere(scale.RenderRadius(radiusER)),
			game_object.WithRotationSpeed(0, spin, 0),
			game_object.WithSurface(visual.Color, visual.Texture),
		)
		b := &body.TrackedBody{
			ID:        id,
			Name:      name,
			ParentID:  parent,
			HasParent: hasParent,
			Anchor:    obj,
		}
		if overlays != nil {
			b.Overlay = overlays(id, name, hasParent)
		}
		if err := sys.Registry.Add(b); err != nil {
			return err
		}
		sys.Objects[id] = obj
		return nil
	}

	for _, b := range d.Bodies {
		if err := add(b.ID, b.Name, 0, false, scale.BodyPosition(b), b.Radius, b.Visual); err != nil {
			return nil, err
		}
		if b.IsStar() {
			continue
		}
		if o, ok := d.Orbit(b.ID); ok {
			sys.Rings = append(sys.Rings, Ring{BodyID: b.ID, Points: OrbitRing(o.Radius, 128, mgl32.Vec3{}, scale.DistanceScale)})
		}

		center := scale.BodyPosition(b).Mul(2)
		for _, m := range b.Moons {
			if err := add(m.ID, m.Name, b.ID, true, scale.MoonPosition(b, m), m.Radius, m.Visual); err != nil {
				return nil, err
			}
			if o, ok := d.Orbit(m.ID); ok {
				sys.Rings = append(sys.Rings, Ring{BodyID: m.ID, Points: OrbitRing(o.Radius*scale.PlanetScale, 128, center, scale.DistanceScale)})
			}
		}
	}
	return sys, nil
}

// Advance spins every enabled scene node by dt seconds.
func (s *System) Advance(dt float32) {
	for _, obj := range s.Objects {
		obj.Advance(dt)
	}
}
