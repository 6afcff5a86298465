package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/solaris/common"
	"github.com/Carmen-Shannon/solaris/engine/camera"
	"github.com/Carmen-Shannon/solaris/engine/scene"
	"github.com/Carmen-Shannon/solaris/engine/system"
	"github.com/Carmen-Shannon/solaris/engine/travel"
)

const marsYAML = `
name: Mars system
bodies:
  - name: Mars
    id: 4
    type: Planet
    distanceLS: 760
    radius: 0.532
    visual: {}
    moons:
      - {name: Phobos, id: 401, type: Moon, planetDistanceLS: 0.031, radius: 0.0018, visual: {}}
`

func newTestScene(t *testing.T, active bool) scene.Scene {
	t.Helper()
	d, err := system.Parse([]byte(marsYAML))
	require.NoError(t, err)
	sys, err := system.Build(d, system.DefaultScale(), nil)
	require.NoError(t, err)

	cam := camera.NewCamera(camera.WithPosition(0, 50, 400))
	s := scene.NewScene("mars", cam, sys, scene.WithActive(active), scene.WithComputeWorkers(1))
	t.Cleanup(s.Close)
	return s
}

func TestNewEngine_Defaults(t *testing.T) {
	e := NewEngine().(*engine)

	assert.Nil(t, e.Window())
	assert.NotNil(t, e.Profiler())
	assert.Equal(t, time.Second/60, e.engineTickRate)
	assert.False(t, e.profilingEnabled)
	assert.True(t, e.viewport.Empty())
}

func TestEngine_ScenesGetViewport(t *testing.T) {
	preset := newTestScene(t, true)
	e := NewEngine(WithViewport(800, 600), WithScene(0, preset))
	assert.Equal(t, common.Viewport{Width: 800, Height: 600}, preset.Viewport())

	added := newTestScene(t, true)
	e.AddScene(1, added)
	assert.Equal(t, common.Viewport{Width: 800, Height: 600}, added.Viewport())

	e.Resize(1024, 512)
	assert.Equal(t, common.Viewport{Width: 1024, Height: 512}, preset.Viewport())
	assert.Equal(t, common.Viewport{Width: 1024, Height: 512}, added.Viewport())
	assert.InDelta(t, 2.0, added.Camera().Aspect(), 1e-6)
}

func TestEngine_SceneRegistry(t *testing.T) {
	e := NewEngine()
	s := newTestScene(t, true)

	e.AddScene(3, s)
	assert.Same(t, s, e.Scene(3))
	assert.Nil(t, e.Scene(4))

	cp := e.Scenes()
	delete(cp, 3)
	assert.Len(t, e.Scenes(), 1, "Scenes returns a copy")

	e.RemoveScene(3)
	assert.Empty(t, e.Scenes())
}

func TestEngine_RenderFrameRunsActiveScenes(t *testing.T) {
	active := newTestScene(t, true)
	inactive := newTestScene(t, false)
	e := NewEngine(WithViewport(800, 600), WithScene(0, active), WithScene(1, inactive)).(*engine)

	var rendered int
	e.SetRenderCallback(func(float32) { rendered++ })

	require.True(t, active.RequestSelect(4))
	require.True(t, inactive.RequestSelect(4))
	e.renderFrame(0.016)

	assert.Equal(t, 1, rendered)
	assert.Equal(t, travel.Travelling, active.State().Phase())
	assert.Equal(t, travel.Idle, inactive.State().Phase(), "inactive scenes do not run")
}

func TestEngine_InputGoesToTopmostActiveScene(t *testing.T) {
	low := newTestScene(t, true)
	high := newTestScene(t, true)
	top := newTestScene(t, false)
	e := NewEngine(WithScene(0, low), WithScene(5, high), WithScene(9, top)).(*engine)

	assert.Same(t, high, e.inputScene())

	high.SetActive(false)
	assert.Same(t, low, e.inputScene())

	low.SetActive(false)
	assert.Nil(t, e.inputScene())
}

func TestEngine_RunHeadlessUntilQuit(t *testing.T) {
	e := NewEngine(WithTickRate(200), WithRenderFrameLimit(200))

	var ticks atomic.Int32
	e.SetTickCallback(func(float32) { ticks.Add(1) })

	go func() {
		time.Sleep(50 * time.Millisecond)
		e.SetTickRate(100)
		time.Sleep(50 * time.Millisecond)
		e.Quit()
	}()

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
	assert.Positive(t, ticks.Load())
	assert.False(t, e.(*engine).running.Load())
	e.Quit()
}

func TestEngine_SetTickRate(t *testing.T) {
	e := NewEngine().(*engine)

	e.SetTickRate(30)
	assert.Equal(t, time.Second/30, e.engineTickRate)

	e.SetTickRate(0)
	assert.Equal(t, time.Second/60, e.engineTickRate)

	e.SetRenderFrameLimit(120)
	assert.Equal(t, time.Second/120, e.renderFrameLimit)
	e.SetRenderFrameLimit(-1)
	assert.Zero(t, e.renderFrameLimit)
}
