package indicator

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/solaris/common"
	"github.com/Carmen-Shannon/solaris/engine/body"
	"github.com/Carmen-Shannon/solaris/engine/camera"
)

type staticAnchor struct {
	pos    mgl32.Vec3
	radius float32
	hasPos bool
}

func (a staticAnchor) WorldPosition() (mgl32.Vec3, bool) { return a.pos, a.hasPos }

func (a staticAnchor) BoundingRadius() (float32, bool) { return a.radius, a.radius > 0 }

type recordingOverlay struct {
	visible bool
	x, y    float32
	opacity float32
	calls   int
}

func (o *recordingOverlay) SetVisible(v bool) { o.visible = v; o.calls++ }

func (o *recordingOverlay) SetPosition(x, y float32) { o.x, o.y = x, y; o.calls++ }

func (o *recordingOverlay) SetOpacity(v float32) { o.opacity = v; o.calls++ }

var viewport = common.Viewport{Width: 1000, Height: 1000}

// testFrame looks down -Z from the origin with a square aspect.
func testFrame(t *testing.T, selection *body.TrackedBody) (Frame, camera.Camera) {
	t.Helper()
	cam := camera.NewCamera(camera.WithAspect(viewport.Aspect()))
	return Frame{Camera: cam.Snapshot(), Viewport: viewport, Selection: selection}, cam
}

// pointAt returns the world point that projects onto pixel (sx, sy) at the given depth.
func pointAt(cam camera.Camera, sx, sy, depth float32) mgl32.Vec3 {
	ndcX := 2*sx/viewport.Width - 1
	ndcY := 1 - 2*sy/viewport.Height
	h := depth * float32(math.Tan(float64(cam.Fov())/2))
	return mgl32.Vec3{ndcX * h * cam.Aspect(), ndcY * h, -depth}
}

func addBody(t *testing.T, reg *body.Registry, id int, pos mgl32.Vec3, radius float32, parent ...int) *body.TrackedBody {
	t.Helper()
	b := &body.TrackedBody{
		ID:      id,
		Name:    "body",
		Anchor:  staticAnchor{pos: pos, radius: radius, hasPos: true},
		Overlay: &recordingOverlay{},
	}
	if len(parent) > 0 {
		b.ParentID = parent[0]
		b.HasParent = true
	}
	require.NoError(t, reg.Add(b))
	return b
}

func TestPlace_OffScreenMargin(t *testing.T) {
	frame, cam := testFrame(t, nil)
	reg := body.NewRegistry()
	left := addBody(t, reg, 1, pointAt(cam, -25, 500, 100), 1)
	inside := addBody(t, reg, 2, pointAt(cam, 50, 500, 100), 1)
	edge := addBody(t, reg, 3, pointAt(cam, -15, 500, 100), 1)
	below := addBody(t, reg, 4, pointAt(cam, 500, 1025, 100), 1)

	p := NewProjector()

	pl, ok := p.Place(frame, reg, left)
	require.True(t, ok)
	assert.False(t, pl.Visible)

	pl, ok = p.Place(frame, reg, inside)
	require.True(t, ok)
	assert.True(t, pl.Visible)
	assert.InDelta(t, 30, pl.X, 0.05)
	assert.InDelta(t, 480, pl.Y, 0.05)
	assert.Equal(t, float32(1), pl.Opacity)

	pl, _ = p.Place(frame, reg, edge)
	assert.True(t, pl.Visible, "within the margin")

	pl, _ = p.Place(frame, reg, below)
	assert.False(t, pl.Visible)
}

func TestPlace_BehindCamera(t *testing.T) {
	frame, _ := testFrame(t, nil)
	reg := body.NewRegistry()
	b := addBody(t, reg, 1, mgl32.Vec3{0, 0, 10}, 1)

	pl, ok := NewProjector().Place(frame, reg, b)
	require.True(t, ok)
	assert.False(t, pl.Visible)
}

func TestPlace_CustomSizeAndMargin(t *testing.T) {
	frame, cam := testFrame(t, nil)
	reg := body.NewRegistry()
	b := addBody(t, reg, 1, pointAt(cam, -25, 500, 100), 1)

	pl, _ := NewProjector(WithMargin(30), WithIndicatorSize(10)).Place(frame, reg, b)
	assert.True(t, pl.Visible)
	assert.InDelta(t, -30, pl.X, 0.05)
	assert.InDelta(t, 495, pl.Y, 0.05)
}

func TestPlace_MoonFade(t *testing.T) {
	p := NewProjector()

	farReg := body.NewRegistry()
	farPlanet := addBody(t, farReg, 10, mgl32.Vec3{0, 0, -60}, 1)
	farMoon := addBody(t, farReg, 11, mgl32.Vec3{1, 0, -60}, 0.2, farPlanet.ID)

	nearReg := body.NewRegistry()
	nearPlanet := addBody(t, nearReg, 10, mgl32.Vec3{0, 0, -30}, 1)
	nearMoon := addBody(t, nearReg, 11, mgl32.Vec3{1, 0, -30}, 0.2, nearPlanet.ID)
	sibling := addBody(t, nearReg, 12, mgl32.Vec3{-1, 0, -30}, 0.2, nearPlanet.ID)
	other := addBody(t, nearReg, 20, mgl32.Vec3{0, 0, -500}, 3)

	tests := []struct {
		name      string
		reg       *body.Registry
		moon      *body.TrackedBody
		selection *body.TrackedBody
		want      float32
	}{
		{"far and unselected", farReg, farMoon, nil, 0},
		{"far but selected", farReg, farMoon, farMoon, 1},
		{"far with parent selected", farReg, farMoon, farPlanet, 0},
		{"near without selection", nearReg, nearMoon, nil, 1},
		{"near with parent selected", nearReg, nearMoon, nearPlanet, 1},
		{"near with sibling selected", nearReg, nearMoon, sibling, 1},
		{"near with other family selected", nearReg, nearMoon, other, 0},
		{"top-level body", nearReg, nearPlanet, other, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, _ := testFrame(t, tt.selection)

			pl, ok := p.Place(frame, tt.reg, tt.moon)
			require.True(t, ok)
			require.True(t, pl.Visible)
			assert.Equal(t, tt.want, pl.Opacity)
		})
	}
}

func TestPlace_Skips(t *testing.T) {
	frame, _ := testFrame(t, nil)
	reg := body.NewRegistry()
	p := NewProjector()

	noAnchor := &body.TrackedBody{ID: 1, Overlay: &recordingOverlay{}}
	noOverlay := &body.TrackedBody{ID: 2, Anchor: staticAnchor{hasPos: true}}
	noPosition := &body.TrackedBody{ID: 3, Anchor: staticAnchor{}, Overlay: &recordingOverlay{}}

	for _, b := range []*body.TrackedBody{noAnchor, noOverlay, noPosition, nil} {
		_, ok := p.Place(frame, reg, b)
		assert.False(t, ok)
	}
}

func TestProject_AppliesAndCounts(t *testing.T) {
	frame, cam := testFrame(t, nil)
	reg := body.NewRegistry()
	visible := addBody(t, reg, 1, pointAt(cam, 500, 500, 50), 1)
	behind := addBody(t, reg, 2, mgl32.Vec3{0, 0, 5}, 1)
	require.NoError(t, reg.Add(&body.TrackedBody{ID: 3, Overlay: &recordingOverlay{}}))

	behind.Overlay.(*recordingOverlay).visible = true

	stats := NewProjector().Project(frame, reg)
	assert.Equal(t, Stats{Visible: 1, Hidden: 1, Skipped: 1}, stats)

	vo := visible.Overlay.(*recordingOverlay)
	assert.True(t, vo.visible)
	assert.InDelta(t, 480, vo.x, 0.05)
	assert.InDelta(t, 480, vo.y, 0.05)
	assert.Equal(t, float32(1), vo.opacity)

	bo := behind.Overlay.(*recordingOverlay)
	assert.False(t, bo.visible)
	assert.Equal(t, 1, bo.calls, "hidden overlays only receive SetVisible")
}

func TestProject_Idempotent(t *testing.T) {
	frame, cam := testFrame(t, nil)
	reg := body.NewRegistry()
	planet := addBody(t, reg, 1, pointAt(cam, 200, 300, 80), 1)
	moon := addBody(t, reg, 2, pointAt(cam, 220, 300, 80), 0.1, planet.ID)
	p := NewProjector()

	first := p.Project(frame, reg)
	snapshot := []recordingOverlay{*planet.Overlay.(*recordingOverlay), *moon.Overlay.(*recordingOverlay)}
	second := p.Project(frame, reg)

	assert.Equal(t, first, second)
	for i, b := range []*body.TrackedBody{planet, moon} {
		got := b.Overlay.(*recordingOverlay)
		assert.Equal(t, snapshot[i].visible, got.visible)
		assert.Equal(t, snapshot[i].x, got.x)
		assert.Equal(t, snapshot[i].y, got.y)
		assert.Equal(t, snapshot[i].opacity, got.opacity)
	}
}

func TestProject_EmptyViewport(t *testing.T) {
	frame, _ := testFrame(t, nil)
	frame.Viewport = common.Viewport{}
	reg := body.NewRegistry()
	b := addBody(t, reg, 1, mgl32.Vec3{0, 0, -10}, 1)

	stats := NewProjector().Project(frame, reg)
	assert.Equal(t, Stats{Skipped: 1}, stats)
	assert.Zero(t, b.Overlay.(*recordingOverlay).calls)
}

func TestNewProjector_Defaults(t *testing.T) {
	p := NewProjector()

	assert.Equal(t, float32(40), p.Size())
	assert.Equal(t, float32(20), p.Margin())
	assert.Equal(t, float32(50), p.FadeDistance())
}
