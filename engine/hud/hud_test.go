package hud

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/solaris/engine/body"
	"github.com/Carmen-Shannon/solaris/engine/travel"
)

func TestIndicator_ImplementsOverlay(t *testing.T) {
	var overlay body.Overlay = NewIndicator(3, "Earth", false)

	overlay.SetVisible(true)
	overlay.SetPosition(12, 34)
	overlay.SetOpacity(0)

	st := overlay.(*Indicator).State()
	assert.Equal(t, IndicatorState{ID: 3, Name: "Earth", Visible: true, X: 12, Y: 34, Opacity: 0}, st)
}

func TestHUD_IndicatorsInCreationOrder(t *testing.T) {
	h := NewHUD()
	h.NewIndicator(1, "Sun", false)
	h.NewIndicator(3, "Earth", false)
	h.NewIndicator(301, "Moon", true)
	h.NewIndicator(3, "Earth", false)

	states := h.Indicators()
	require.Len(t, states, 3)
	assert.Equal(t, []int{1, 3, 301}, []int{states[0].ID, states[1].ID, states[2].ID})
	assert.True(t, states[2].Moon)
	assert.Nil(t, h.Indicator(99))
}

func TestHUD_OverlayRegistersIndicator(t *testing.T) {
	h := NewHUD()

	overlay := h.Overlay(401, "Phobos", true)
	overlay.SetVisible(true)

	ind := h.Indicator(401)
	require.NotNil(t, ind)
	assert.Same(t, ind, overlay)
	assert.True(t, ind.State().Visible)
	assert.True(t, ind.State().Moon)
}

func TestHUD_HoverMovesHighlight(t *testing.T) {
	h := NewHUD()
	a := h.NewIndicator(1, "Sun", false)
	b := h.NewIndicator(2, "Mercury", false)

	h.Hover(1, true)
	assert.True(t, a.State().Hovered)

	h.Hover(2, true)
	assert.False(t, a.State().Hovered)
	assert.True(t, b.State().Hovered)

	h.Hover(0, false)
	assert.False(t, b.State().Hovered)
	_, ok := h.Hovered()
	assert.False(t, ok)
}

func TestHUD_FollowsTravelSelection(t *testing.T) {
	h := NewHUD(WithLogger(zerolog.Nop()))
	sun := h.NewIndicator(1, "Sun", false)
	earth := h.NewIndicator(3, "Earth", false)

	h.Select(1)
	h.TravelStarted(&body.TrackedBody{ID: 3, Name: "Earth"}, travel.Status{Destination: "Earth"})

	assert.False(t, sun.State().Selected)
	assert.True(t, earth.State().Selected)
}

func TestBanner_Lifecycle(t *testing.T) {
	b := NewHUD().Banner()
	start := time.Unix(100, 0)

	assert.False(t, b.Active())
	assert.Empty(t, b.Message())
	assert.Zero(t, b.Progress(start))

	b.PublishTravel(travel.Status{Destination: "Mars", Duration: 3 * time.Second, Started: start})
	assert.True(t, b.Active())
	assert.Equal(t, "Travelling to Mars", b.Message())

	assert.Zero(t, b.Progress(start.Add(400*time.Millisecond)), "bar waits for the slide-in")
	assert.InDelta(t, 0.5, b.Progress(start.Add(1750*time.Millisecond)), 1e-9)
	assert.Equal(t, 1.0, b.Progress(start.Add(5*time.Second)))

	b.ClearTravel()
	_, ok := b.Status()
	assert.False(t, ok)
	assert.Empty(t, b.Message())
}

func TestBanner_ShortTravel(t *testing.T) {
	b := NewBanner(zerolog.Nop())
	start := time.Unix(100, 0)
	b.PublishTravel(travel.Status{Destination: "Moon", Duration: 200 * time.Millisecond, Started: start})

	assert.Zero(t, b.Progress(start.Add(100*time.Millisecond)))
	assert.Equal(t, 1.0, b.Progress(start.Add(600*time.Millisecond)))
}
