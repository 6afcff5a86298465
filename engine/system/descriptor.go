// Package system loads planetary-system descriptors and turns them into scene nodes and tracked bodies.
package system

import (
	"errors"
	"fmt"
)

// ErrInvalidDescriptor is returned when a descriptor is structurally unusable.
var ErrInvalidDescriptor = errors.New("system: invalid descriptor")

// BodyTypeStar marks the emitting body of a system.
const BodyTypeStar = "Star"

// Visual describes how a body's surface is drawn.
type Visual struct {
	Texture string `yaml:"texture" json:"texture"`
	Color   string `yaml:"color" json:"color"`
}

// Moon is a body orbiting a planet.
type Moon struct {
	Name string `yaml:"name" json:"name"`
	ID   int    `yaml:"id" json:"id"`
	Type string `yaml:"type" json:"type"`
	// PlanetDistanceLS is the distance from the parent planet in light seconds.
	PlanetDistanceLS float64 `yaml:"planetDistanceLS" json:"planetDistanceLS"`
	// Radius is in earth radii.
	Radius float64 `yaml:"radius" json:"radius"`
	Visual Visual  `yaml:"visual" json:"visual"`
}

// Body is a star or planet.
type Body struct {
	Name string `yaml:"name" json:"name"`
	ID   int    `yaml:"id" json:"id"`
	Type string `yaml:"type" json:"type"`
	// DistanceLS is the distance from the system origin in light seconds.
	DistanceLS float64 `yaml:"distanceLS" json:"distanceLS"`
	// Radius is in earth radii.
	Radius float64 `yaml:"radius" json:"radius"`
	Visual Visual  `yaml:"visual" json:"visual"`
	Moons  []Moon  `yaml:"moons,omitempty" json:"moons,omitempty"`
}

// IsStar reports whether the body is the system's star.
func (b Body) IsStar() bool {
	return b.Type == BodyTypeStar
}

// Orbit is the drawn orbit ring of the body with the same id.
type Orbit struct {
	ID     int     `yaml:"id" json:"id"`
	Radius float64 `yaml:"radius" json:"radius"`
	Offset float64 `yaml:"offset" json:"offset"`
	// Speed is the cosmetic spin of the body in radians per second.
	Speed float64 `yaml:"speed" json:"speed"`
}

// SystemData is the root of a descriptor file.
type SystemData struct {
	Name   string  `yaml:"name" json:"name"`
	Orbits []Orbit `yaml:"orbits" json:"orbits"`
	Bodies []Body  `yaml:"bodies" json:"bodies"`
}

// Orbit returns the orbit with the given id.
func (d *SystemData) Orbit(id int) (Orbit, bool) {
	for _, o := range d.Orbits {
		if o.ID == id {
			return o, true
		}
	}
	return Orbit{}, false
}

// Validate checks that the descriptor has a name, at least one body, unique ids and positive radii.
//
// Returns:
//   - error: ErrInvalidDescriptor wrapped with the first problem found
func (d *SystemData) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDescriptor)
	}
	if len(d.Bodies) == 0 {
		return fmt.Errorf("%w: %s has no bodies", ErrInvalidDescriptor, d.Name)
	}

	seen := make(map[int]string)
	check := func(id int, name string, radius float64) error {
		if name == "" {
			return fmt.Errorf("%w: body %d has no name", ErrInvalidDescriptor, id)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("%w: id %d used by %s and %s", ErrInvalidDescriptor, id, prev, name)
		}
		if !(radius > 0) {
			return fmt.Errorf("%w: %s has radius %v", ErrInvalidDescriptor, name, radius)
		}
		seen[id] = name
		return nil
	}

	for _, b := range d.Bodies {
		if err := check(b.ID, b.Name, b.Radius); err != nil {
			return err
		}
		for _, m := range b.Moons {
			if err := check(m.ID, m.Name, m.Radius); err != nil {
				return err
			}
		}
	}
	return nil
}
