// Package hud holds the 2D overlay state drawn on top of the 3D view: one indicator per tracked body
// and the travel banner.
package hud

import "sync"

// Indicator is the overlay handle of one body. The projector writes it on the render goroutine
// while input callbacks toggle hover, so every field is guarded.
type Indicator struct {
	mu *sync.Mutex

	id   int
	name string
	moon bool

	visible  bool
	x, y     float32
	opacity  float32
	hovered  bool
	selected bool
}

// IndicatorState is a copy of an Indicator for drawing.
type IndicatorState struct {
	ID       int
	Name     string
	Moon     bool
	Visible  bool
	X, Y     float32
	Opacity  float32
	Hovered  bool
	Selected bool
}

// NewIndicator creates a hidden, fully opaque indicator.
//
// Parameters:
//   - id: the tracked body id
//   - name: label shown next to the marker
//   - moon: true to draw the smaller moon marker
//
// Returns:
//   - *Indicator: the indicator
func NewIndicator(id int, name string, moon bool) *Indicator {
	return &Indicator{
		mu:      &sync.Mutex{},
		id:      id,
		name:    name,
		moon:    moon,
		opacity: 1,
	}
}

func (i *Indicator) ID() int {
	return i.id
}

func (i *Indicator) Name() string {
	return i.name
}

func (i *Indicator) SetVisible(visible bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.visible = visible
}

func (i *Indicator) SetPosition(x, y float32) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.x, i.y = x, y
}

func (i *Indicator) SetOpacity(opacity float32) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.opacity = opacity
}

// SetHovered marks the indicator under the pointer.
func (i *Indicator) SetHovered(hovered bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.hovered = hovered
}

// SetSelected marks the indicator of the current selection.
func (i *Indicator) SetSelected(selected bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.selected = selected
}

// State copies the indicator.
func (i *Indicator) State() IndicatorState {
	i.mu.Lock()
	defer i.mu.Unlock()
	return IndicatorState{
		ID:       i.id,
		Name:     i.name,
		Moon:     i.moon,
		Visible:  i.visible,
		X:        i.x,
		Y:        i.y,
		Opacity:  i.opacity,
		Hovered:  i.hovered,
		Selected: i.selected,
	}
}
