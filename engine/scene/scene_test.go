package scene

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/solaris/common"
	"github.com/Carmen-Shannon/solaris/engine/body"
	"github.com/Carmen-Shannon/solaris/engine/camera"
	"github.com/Carmen-Shannon/solaris/engine/hud"
	"github.com/Carmen-Shannon/solaris/engine/profiler"
	"github.com/Carmen-Shannon/solaris/engine/system"
	"github.com/Carmen-Shannon/solaris/engine/travel"
)

const solYAML = `
name: Sol
orbits:
  - {id: 3, radius: 499, offset: 0, speed: 0.2}
bodies:
  - {name: Sun, id: 1, type: Star, distanceLS: 0, radius: 109, visual: {color: "#ffcc33"}}
  - name: Earth
    id: 3
    type: Planet
    distanceLS: 499
    radius: 1
    visual: {}
    moons:
      - {name: Moon, id: 301, type: Moon, planetDistanceLS: 1.28, radius: 0.273, visual: {}}
`

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

type fixture struct {
	scene   Scene
	cam     camera.Camera
	hud     *hud.HUD
	metrics *profiler.Metrics
	clock   *fakeClock
}

func newFixture(t *testing.T, camPos mgl32.Vec3, options ...SceneBuilderOption) *fixture {
	t.Helper()

	d, err := system.Parse([]byte(solYAML))
	require.NoError(t, err)
	h := hud.NewHUD()
	sys, err := system.Build(d, system.DefaultScale(), h.Overlay)
	require.NoError(t, err)

	f := &fixture{
		cam:     camera.NewCamera(camera.WithPosition(camPos.X(), camPos.Y(), camPos.Z())),
		hud:     h,
		metrics: profiler.NewMetrics(),
		clock:   &fakeClock{t: time.Unix(1000, 0)},
	}
	f.cam.LookAt(mgl32.Vec3{})

	opts := []SceneBuilderOption{
		WithActive(true),
		WithHUD(h),
		WithMetrics(f.metrics),
		WithTravelOptions(travel.WithClock(f.clock.Now)),
		WithComputeWorkers(1),
	}
	f.scene = NewScene("sol", f.cam, sys, append(opts, options...)...)
	t.Cleanup(f.scene.Close)
	f.scene.SetViewport(common.Viewport{Width: 800, Height: 600})
	return f
}

func counterValue(t *testing.T, m *profiler.Metrics, name, label, value string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestNewScene_PanicsWithoutCollaborators(t *testing.T) {
	assert.Panics(t, func() { NewScene("x", nil, &system.System{Registry: body.NewRegistry()}) })
	assert.Panics(t, func() { NewScene("x", camera.NewCamera(), nil) })
}

func TestScene_Accessors(t *testing.T) {
	f := newFixture(t, mgl32.Vec3{0, 50, 300})

	assert.Equal(t, "sol", f.scene.Name())
	assert.True(t, f.scene.Active())
	assert.Equal(t, 3, f.scene.Count())
	assert.Same(t, f.hud, f.scene.HUD())
	assert.NotNil(t, f.scene.Controller())
	assert.Equal(t, travel.Idle, f.scene.State().Phase())
	assert.InDelta(t, 800.0/600.0, f.cam.Aspect(), 1e-6)

	f.scene.SetViewport(common.Viewport{})
	assert.InDelta(t, 800.0/600.0, f.cam.Aspect(), 1e-6, "empty viewport keeps the aspect")

	unnamed := NewScene("", f.cam, f.scene.System(), WithComputeWorkers(1))
	assert.Equal(t, "Sol", unnamed.Name())
	unnamed.SetName("renamed")
	assert.Equal(t, "renamed", unnamed.Name())
}

func TestScene_SelectionTravelsOnFrame(t *testing.T) {
	f := newFixture(t, mgl32.Vec3{0, 50, 300})

	require.True(t, f.scene.RequestSelect(3))
	assert.Equal(t, travel.Idle, f.scene.State().Phase(), "selections wait for the next frame")

	f.scene.Frame(0.016)
	st := f.scene.State()
	require.Equal(t, travel.Travelling, st.Phase())
	assert.Equal(t, 3, st.Selection().ID)
	assert.False(t, f.scene.Controller().Enabled())
	assert.True(t, f.hud.Banner().Active())
	assert.Equal(t, "Travelling to Earth", f.hud.Banner().Message())
	assert.True(t, f.hud.Indicator(3).State().Selected)
	assert.Equal(t, 1.0, counterValue(t, f.metrics, "solaris_selections_total", "outcome", profiler.SelectionStarted))

	f.clock.Advance(3 * time.Second)
	f.scene.Frame(0.016)

	assert.Equal(t, travel.Idle, st.Phase())
	assert.True(t, f.scene.Controller().Enabled())
	earth, _ := st.Selection().Position()
	assert.True(t, f.scene.Controller().Target().ApproxEqualThreshold(earth, 1e-4))
	assert.False(t, f.hud.Banner().Active())
	assert.Equal(t, 1.0, counterValue(t, f.metrics, "solaris_travels_total", "event", "completed"))
}

func TestScene_SecondQueuedSelectionIgnored(t *testing.T) {
	f := newFixture(t, mgl32.Vec3{0, 50, 300})

	require.True(t, f.scene.RequestSelect(3))
	require.True(t, f.scene.RequestSelect(1))
	f.scene.Frame(0.016)

	assert.Equal(t, 3, f.scene.State().Selection().ID)
	assert.Equal(t, 1.0, counterValue(t, f.metrics, "solaris_selections_total", "outcome", profiler.SelectionIgnored))
}

func TestScene_RequestSelectRejects(t *testing.T) {
	f := newFixture(t, mgl32.Vec3{0, 50, 300}, WithSelectionQueue(1))

	assert.False(t, f.scene.RequestSelect(99), "unknown body")
	assert.True(t, f.scene.RequestSelect(1))
	assert.False(t, f.scene.RequestSelect(3), "queue full")
}

func TestScene_FailedSelectionLeavesStateIdle(t *testing.T) {
	f := newFixture(t, mgl32.Vec3{0, 50, 300})
	require.NoError(t, f.scene.System().Registry.Add(&body.TrackedBody{ID: 900, Name: "Ghost"}))

	require.True(t, f.scene.RequestSelect(900))
	f.scene.Frame(0.016)

	assert.Equal(t, travel.Idle, f.scene.State().Phase())
	assert.Nil(t, f.scene.State().Selection())
	assert.True(t, f.scene.Controller().Enabled())
	assert.Equal(t, 1.0, counterValue(t, f.metrics, "solaris_selections_total", "outcome", profiler.SelectionFailed))
}

func TestScene_CycleSelection(t *testing.T) {
	f := newFixture(t, mgl32.Vec3{0, 50, 300})

	require.True(t, f.scene.SelectPrevious())
	f.scene.Frame(0.016)
	assert.Equal(t, 301, f.scene.State().Selection().ID, "backward from nothing starts at the last body")

	f.clock.Advance(3 * time.Second)
	f.scene.Frame(0.016)

	f.scene.KeyDown(common.KeyTab)
	f.scene.Frame(0.016)
	assert.Equal(t, 1, f.scene.State().Selection().ID, "forward wraps around")
}

func TestScene_CycleResolvesAtFrame(t *testing.T) {
	f := newFixture(t, mgl32.Vec3{0, 50, 300})

	require.True(t, f.scene.RequestSelect(3))
	require.True(t, f.scene.SelectNext())
	f.scene.Frame(0.016)

	assert.Equal(t, 3, f.scene.State().Selection().ID, "the step is resolved after the earlier selection and then ignored")
	assert.Equal(t, 1.0, counterValue(t, f.metrics, "solaris_selections_total", "outcome", profiler.SelectionIgnored))
}

func TestScene_TabWhileFrameRuns(t *testing.T) {
	f := newFixture(t, mgl32.Vec3{0, 50, 300}, WithSelectionQueue(64))

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				f.scene.KeyDown(common.KeyTab)
			}
		}
	}()

	for range 200 {
		f.scene.Frame(0.016)
		f.clock.Advance(500 * time.Millisecond)
		time.Sleep(200 * time.Microsecond)
	}
	close(stop)
	<-done

	f.scene.Frame(0.016)
	f.clock.Advance(5 * time.Second)
	f.scene.Frame(0.016)
	require.NotNil(t, f.scene.State().Selection())
	assert.Equal(t, travel.Idle, f.scene.State().Phase())
}

func TestScene_PickNearest(t *testing.T) {
	tests := []struct {
		name   string
		camPos mgl32.Vec3
		want   int
	}{
		{"moon in front of its planet", mgl32.Vec3{0, 0, 200}, 301},
		{"moon behind the camera", mgl32.Vec3{0, 0, 110}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.camPos)
			f.cam.SetOrientation(mgl32.QuatIdent())

			b, ok := f.scene.Pick(400, 300)
			require.True(t, ok)
			assert.Equal(t, tt.want, b.ID)

			_, ok = f.scene.Pick(5, 5)
			assert.False(t, ok)
		})
	}
}

func TestScene_ClickAndHover(t *testing.T) {
	f := newFixture(t, mgl32.Vec3{0, 0, 110})
	f.cam.SetOrientation(mgl32.QuatIdent())

	f.scene.Hover(400, 300)
	id, ok := f.hud.Hovered()
	require.True(t, ok)
	assert.Equal(t, 3, id)
	assert.True(t, f.hud.Indicator(3).State().Hovered)

	f.scene.PointerMove(5, 5)
	_, ok = f.hud.Hovered()
	assert.False(t, ok, "moving off every body clears the hover")

	f.scene.PointerDown(common.MouseButtonLeft, 400, 300)
	f.scene.PointerUp(common.MouseButtonLeft, 401, 300)
	f.scene.Frame(0.016)
	require.NotNil(t, f.scene.State().Selection())
	assert.Equal(t, 3, f.scene.State().Selection().ID)
}

func TestScene_DragOrbitsInsteadOfClicking(t *testing.T) {
	f := newFixture(t, mgl32.Vec3{0, 50, 300})
	before := f.cam.Position()

	f.scene.PointerDown(common.MouseButtonLeft, 400, 300)
	f.scene.PointerMove(460, 300)
	f.scene.PointerUp(common.MouseButtonLeft, 460, 300)
	f.scene.Frame(0.016)

	assert.Nil(t, f.scene.State().Selection(), "a drag is not a click")
	assert.False(t, f.cam.Position().ApproxEqualThreshold(before, 1e-4))
	assert.InDelta(t, before.Len(), f.cam.Position().Len(), 1e-2, "orbiting keeps the radius")
}

func TestScene_FrameProjectsAndAdvances(t *testing.T) {
	for _, workers := range []int{1, 4} {
		f := newFixture(t, mgl32.Vec3{0, 50, 300}, WithComputeWorkers(workers))

		stats := f.scene.Frame(1)

		assert.Equal(t, 3, stats.Visible+stats.Hidden+stats.Skipped)
		assert.Zero(t, stats.Skipped)
		assert.InDelta(t, 0.2, f.scene.System().Objects[3].Rotation().Y(), 1e-6, "workers=%d", workers)
		assert.True(t, f.hud.Indicator(1).State().Visible)
	}
}
