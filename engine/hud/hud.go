package hud

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Carmen-Shannon/solaris/engine/body"
	"github.com/Carmen-Shannon/solaris/engine/travel"
)

// HUD owns the indicators and the travel banner. It follows travel lifecycle events to move the
// selection marker, so it is registered as a travel.Observer.
type HUD struct {
	mu *sync.Mutex

	indicators map[int]*Indicator
	order      []int
	hovered    int
	hasHover   bool
	selected   int
	hasSelect  bool

	banner *Banner
	logger zerolog.Logger
}

var _ travel.Observer = &HUD{}

// NewHUD creates an empty HUD.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - *HUD: the HUD
func NewHUD(options ...HUDOption) *HUD {
	h := &HUD{
		mu:         &sync.Mutex{},
		indicators: make(map[int]*Indicator),
		logger:     zerolog.Nop(),
	}
	for _, option := range options {
		option(h)
	}
	h.banner = NewBanner(h.logger)
	return h
}

// Banner returns the travel banner.
func (h *HUD) Banner() *Banner {
	return h.banner
}

// NewIndicator creates and registers the indicator of a body, replacing any previous one with the same id.
//
// Parameters:
//   - id: the tracked body id
//   - name: label
//   - moon: true for child bodies
//
// Returns:
//   - *Indicator: the indicator to hand to the tracked body as its overlay
func (h *HUD) NewIndicator(id int, name string, moon bool) *Indicator {
	h.mu.Lock()
	defer h.mu.Unlock()
	ind := NewIndicator(id, name, moon)
	if _, ok := h.indicators[id]; !ok {
		h.order = append(h.order, id)
	}
	h.indicators[id] = ind
	return ind
}

// Overlay is NewIndicator typed as a body overlay factory, for system.Build.
func (h *HUD) Overlay(id int, name string, moon bool) body.Overlay {
	return h.NewIndicator(id, name, moon)
}

// Indicator returns the indicator of a body, or nil.
func (h *HUD) Indicator(id int) *Indicator {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.indicators[id]
}

// Indicators copies every indicator in creation order.
func (h *HUD) Indicators() []IndicatorState {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]IndicatorState, 0, len(h.order))
	for _, id := range h.order {
		out = append(out, h.indicators[id].State())
	}
	return out
}

// Hover moves the hover highlight to the given body.
//
// Parameters:
//   - id: the hovered body
//   - ok: false to clear the highlight
func (h *HUD) Hover(id int, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.hasHover == ok && h.hovered == id {
		return
	}
	if prev := h.indicators[h.hovered]; h.hasHover && prev != nil {
		prev.SetHovered(false)
	}
	h.hovered, h.hasHover = id, ok
	if next := h.indicators[id]; ok && next != nil {
		next.SetHovered(true)
	}
}

// Hovered returns the hovered body.
//
// Returns:
//   - int: the body id
//   - bool: false if nothing is hovered
func (h *HUD) Hovered() (int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hovered, h.hasHover
}

// Select moves the selection marker to the given body.
func (h *HUD) Select(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if prev := h.indicators[h.selected]; h.hasSelect && prev != nil {
		prev.SetSelected(false)
	}
	h.selected, h.hasSelect = id, true
	if next := h.indicators[id]; next != nil {
		next.SetSelected(true)
	}
}

func (h *HUD) TravelStarted(b *body.TrackedBody, status travel.Status) {
	h.Select(b.ID)
	h.logger.Debug().Int("body", b.ID).Str("destination", status.Destination).Msg("selection marker moved")
}

func (h *HUD) TravelCompleted(b *body.TrackedBody, elapsed time.Duration) {
	h.logger.Debug().Int("body", b.ID).Dur("elapsed", elapsed).Msg("arrived")
}
