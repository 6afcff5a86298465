package scene

import (
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/rs/zerolog"

	"github.com/Carmen-Shannon/solaris/common"
	"github.com/Carmen-Shannon/solaris/engine/body"
	"github.com/Carmen-Shannon/solaris/engine/camera"
	"github.com/Carmen-Shannon/solaris/engine/hud"
	"github.com/Carmen-Shannon/solaris/engine/indicator"
	"github.com/Carmen-Shannon/solaris/engine/profiler"
	"github.com/Carmen-Shannon/solaris/engine/system"
	"github.com/Carmen-Shannon/solaris/engine/travel"
)

// dragThreshold is how far in pixels the pointer may move between press and release for the release to count as a click.
const dragThreshold = 4

// Scene owns one planetary system and everything that looks at it: the camera and its orbit controller,
// the travel state machine, the indicator projector and the HUD.
// Frame must be called from a single goroutine; the input methods may be called from any goroutine.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Controller returns the orbit controller driving the camera between travels.
	Controller() camera.CameraController

	// System returns the loaded planetary system.
	System() *system.System

	// State returns the travel state.
	State() *travel.State

	// HUD returns the overlay model, or nil when the scene has none.
	HUD() *hud.HUD

	// Count returns the number of tracked bodies.
	Count() int

	// Viewport returns the drawable size used for projection and picking.
	Viewport() common.Viewport

	// SetViewport updates the drawable size and the camera aspect ratio.
	// Empty viewports are stored but leave the aspect untouched.
	//
	// Parameters:
	//   - vp: drawable size in pixels
	SetViewport(vp common.Viewport)

	// RequestSelect queues a selection for the next Frame. Never blocks.
	//
	// Parameters:
	//   - id: the tracked body id
	//
	// Returns:
	//   - bool: false if the id is unknown or the queue is full
	RequestSelect(id int) bool

	// SelectNext queues a step to the body after the selection current at the next Frame, in registry
	// order and wrapping around. Safe to call while Frame runs.
	SelectNext() bool

	// SelectPrevious queues a step to the body before the selection current at the next Frame.
	SelectPrevious() bool

	// Pick casts a ray through a pixel and returns the nearest body whose bounding sphere it hits.
	//
	// Parameters:
	//   - x, y: pixel coordinates with the origin at the top-left corner
	//
	// Returns:
	//   - *body.TrackedBody: the picked body
	//   - bool: false when nothing was hit
	Pick(x, y float32) (*body.TrackedBody, bool)

	// Click picks at a pixel and queues a selection of the hit body.
	//
	// Returns:
	//   - bool: true if a selection was queued
	Click(x, y float32) bool

	// Hover picks at a pixel and marks the hit body's indicator as hovered.
	Hover(x, y float32)

	// PointerDown records a mouse button press at a pixel.
	PointerDown(button int, x, y float32)

	// PointerUp records a mouse button release. A left release without a drag is a Click.
	PointerUp(button int, x, y float32)

	// PointerMove rotates the orbit on left-drag, pans on right or middle drag, and hovers otherwise.
	PointerMove(x, y float32)

	// Scroll zooms the orbit controller.
	Scroll(delta float32)

	// KeyDown handles Tab to cycle the selection and the arrow keys to orbit.
	KeyDown(keyCode uint32)

	// Frame runs one render frame: drain queued selections, update the orbit controller, tick the travel,
	// advance scene nodes and project indicators, in that order.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	//
	// Returns:
	//   - indicator.Stats: the projection outcome counts
	Frame(deltaTime float32) indicator.Stats

	// Close releases the scene's worker pool.
	Close()
}

type pointerState struct {
	button  int
	pressed bool
	dragged bool
	startX  float32
	startY  float32
	lastX   float32
	lastY   float32
}

// request is a queued selection: a body id, or a step through the registry relative to the
// selection current when the request is drained.
type request struct {
	id   int
	step int
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam  camera.Camera
	ctrl camera.CameraController
	sys  *system.System

	state      *travel.State
	travel     *travel.Controller
	travelOpts []travel.ControllerOption
	projector  *indicator.Projector
	hud        *hud.HUD
	metrics    *profiler.Metrics

	viewport common.Viewport
	pointer  pointerState

	selections chan request
	queueSize  int

	logger zerolog.Logger

	// computePool advances scene nodes in parallel. Workers persist across frames.
	computePool    worker.DynamicWorkerPool
	computeWorkers int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a scene over a built system. The camera and system are required and NewScene panics if
// either is nil. Without WithController an orbit controller is created around the camera's current pose.
// The HUD, when set, is wired as the travel status publisher and observer; Metrics likewise observes travels.
//
// Parameters:
//   - name: the name of the scene, the system name when empty
//   - cam: the camera to drive (must not be nil)
//   - sys: the planetary system (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, sys *system.System, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if sys == nil || sys.Registry == nil {
		panic("scene: NewScene requires a built System")
	}

	s := &scene{
		mu:             &sync.RWMutex{},
		name:           common.Coalesce(name, sys.Name),
		cam:            cam,
		sys:            sys,
		state:          travel.NewState(),
		queueSize:      16,
		logger:         zerolog.Nop(),
		computeWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	if s.ctrl == nil {
		s.ctrl = camera.NewCameraController(cam)
	}
	if s.projector == nil {
		s.projector = indicator.NewProjector(indicator.WithLogger(s.logger))
	}
	s.selections = make(chan request, s.queueSize)

	travelOpts := []travel.ControllerOption{travel.WithLogger(s.logger)}
	if s.hud != nil {
		travelOpts = append(travelOpts, travel.WithStatusPublisher(s.hud.Banner()), travel.WithObserver(s.hud))
	}
	if s.metrics != nil {
		travelOpts = append(travelOpts, travel.WithObserver(s.metrics))
	}
	s.travel = travel.NewController(cam, s.ctrl, append(travelOpts, s.travelOpts...)...)

	if s.computeWorkers > 1 {
		s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)
	}

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Controller() camera.CameraController {
	return s.ctrl
}

func (s *scene) System() *system.System {
	return s.sys
}

func (s *scene) State() *travel.State {
	return s.state
}

func (s *scene) HUD() *hud.HUD {
	return s.hud
}

func (s *scene) Count() int {
	return s.sys.Registry.Len()
}

func (s *scene) Viewport() common.Viewport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewport
}

func (s *scene) SetViewport(vp common.Viewport) {
	s.mu.Lock()
	s.viewport = vp
	s.mu.Unlock()
	if !vp.Empty() {
		s.cam.SetAspect(vp.Aspect())
	}
}

func (s *scene) RequestSelect(id int) bool {
	if s.sys.Registry.Get(id) == nil {
		s.logger.Debug().Int("body", id).Msg("selection of unknown body dropped")
		return false
	}
	return s.enqueue(request{id: id})
}

func (s *scene) enqueue(r request) bool {
	select {
	case s.selections <- r:
		return true
	default:
		s.logger.Debug().Int("body", r.id).Int("step", r.step).Msg("selection queue full")
		return false
	}
}

func (s *scene) SelectNext() bool {
	return s.cycle(1)
}

func (s *scene) SelectPrevious() bool {
	return s.cycle(-1)
}

// cycle queues a step through the registry. The target is resolved on the render goroutine so input
// never reads the travel state.
func (s *scene) cycle(step int) bool {
	if s.sys.Registry.Len() == 0 {
		return false
	}
	return s.enqueue(request{step: step})
}

// cycleTarget returns the body step positions away from the current selection. With no selection,
// forward starts at the first body and backward at the last.
func (s *scene) cycleTarget(step int) (*body.TrackedBody, bool) {
	all := s.sys.Registry.All()
	if len(all) == 0 {
		return nil, false
	}

	next := 0
	if step < 0 {
		next = len(all) - 1
	}
	if sel := s.state.Selection(); sel != nil {
		if idx := s.sys.Registry.Index(sel.ID); idx >= 0 {
			next = ((idx+step)%len(all) + len(all)) % len(all)
		}
	}
	return all[next], true
}

func (s *scene) Pick(x, y float32) (*body.TrackedBody, bool) {
	vp := s.Viewport()
	if vp.Empty() {
		return nil, false
	}

	snap := s.cam.Snapshot()
	origin, dir, err := common.ScreenRay(snap.View, snap.Projection, vp, x, y)
	if err != nil {
		s.logger.Debug().Err(err).Msg("pick ray")
		return nil, false
	}

	var (
		hit  *body.TrackedBody
		best = float32(math.MaxFloat32)
	)
	for _, b := range s.sys.Registry.All() {
		center, ok := b.Position()
		if !ok {
			continue
		}
		radius, ok := b.Radius()
		if !ok {
			continue
		}
		if t, ok := common.RaySphere(origin, dir, center, radius); ok && t < best {
			best = t
			hit = b
		}
	}
	return hit, hit != nil
}

func (s *scene) Click(x, y float32) bool {
	b, ok := s.Pick(x, y)
	if !ok {
		return false
	}
	return s.RequestSelect(b.ID)
}

func (s *scene) Hover(x, y float32) {
	if s.hud == nil {
		return
	}
	b, ok := s.Pick(x, y)
	if !ok {
		s.hud.Hover(0, false)
		return
	}
	s.hud.Hover(b.ID, true)
}

func (s *scene) PointerDown(button int, x, y float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointer = pointerState{
		button:  button,
		pressed: true,
		startX:  x,
		startY:  y,
		lastX:   x,
		lastY:   y,
	}
}

func (s *scene) PointerUp(button int, x, y float32) {
	s.mu.Lock()
	p := s.pointer
	s.pointer.pressed = false
	s.mu.Unlock()

	if p.pressed && p.button == button && button == common.MouseButtonLeft && !p.dragged {
		s.Click(x, y)
	}
}

func (s *scene) PointerMove(x, y float32) {
	s.mu.Lock()
	p := &s.pointer
	if !p.pressed {
		s.mu.Unlock()
		s.Hover(x, y)
		return
	}
	dx, dy := x-p.lastX, y-p.lastY
	p.lastX, p.lastY = x, y
	if !p.dragged && math.Hypot(float64(x-p.startX), float64(y-p.startY)) > dragThreshold {
		p.dragged = true
	}
	button, dragged := p.button, p.dragged
	s.mu.Unlock()

	if !dragged {
		return
	}
	switch button {
	case common.MouseButtonLeft:
		sens := s.ctrl.MouseSensitivity()
		s.ctrl.Rotate(-dx*sens, dy*sens)
	default:
		s.ctrl.PanRight(-dx)
		s.ctrl.PanUp(dy)
	}
}

func (s *scene) Scroll(delta float32) {
	s.ctrl.Zoom(delta)
}

func (s *scene) KeyDown(keyCode uint32) {
	switch keyCode {
	case common.KeyTab:
		s.SelectNext()
	case common.KeyLeft:
		s.ctrl.OrbitLeft()
	case common.KeyRight:
		s.ctrl.OrbitRight()
	case common.KeyUp:
		s.ctrl.OrbitUp()
	case common.KeyDown:
		s.ctrl.OrbitDown()
	}
}

func (s *scene) Frame(deltaTime float32) indicator.Stats {
	s.drainSelections()
	s.ctrl.Update()
	s.travel.Tick(s.state)
	s.advance(deltaTime)

	stats := s.projector.Project(indicator.Frame{
		Camera:    s.cam.Snapshot(),
		Viewport:  s.Viewport(),
		Selection: s.state.Selection(),
	}, s.sys.Registry)
	if s.metrics != nil {
		s.metrics.RecordProjection(stats)
	}
	return stats
}

// drainSelections applies every queued selection in order. Selections after the first that starts a travel
// are ignored by the travel controller.
func (s *scene) drainSelections() {
	for {
		select {
		case r := <-s.selections:
			s.apply(r)
		default:
			return
		}
	}
}

func (s *scene) apply(r request) {
	var b *body.TrackedBody
	if r.step != 0 {
		target, ok := s.cycleTarget(r.step)
		if !ok {
			return
		}
		b = target
	} else {
		b = s.sys.Registry.Get(r.id)
	}
	s.selectBody(b)
}

func (s *scene) selectBody(b *body.TrackedBody) {
	if b == nil {
		return
	}
	started, err := s.travel.Select(s.state, b)
	switch {
	case err != nil:
		s.logger.Warn().Err(err).Int("body", b.ID).Msg("selection failed")
		s.recordSelection(profiler.SelectionFailed)
	case started:
		s.recordSelection(profiler.SelectionStarted)
	default:
		s.recordSelection(profiler.SelectionIgnored)
	}
}

func (s *scene) recordSelection(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordSelection(outcome)
	}
}

// advance spins every scene node. With a compute pool the nodes are split into one batch per worker;
// a WaitGroup provides the per-frame barrier since pool.Wait() blocks until workers idle-exit.
func (s *scene) advance(deltaTime float32) {
	if s.computePool == nil || len(s.sys.Objects) < 2 {
		s.sys.Advance(deltaTime)
		return
	}

	ids := make([]int, 0, len(s.sys.Objects))
	for id := range s.sys.Objects {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	batch := (len(ids) + s.computeWorkers - 1) / s.computeWorkers
	var wg sync.WaitGroup
	taskID := 0
	for start := 0; start < len(ids); start += batch {
		chunk := ids[start:min(start+batch, len(ids))]
		wg.Add(1)
		s.computePool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				for _, id := range chunk {
					s.sys.Objects[id].Advance(deltaTime)
				}
				return nil, nil
			},
		})
		taskID++
	}
	wg.Wait()
}

func (s *scene) Close() {
	if s.computePool != nil {
		s.computePool.Stop()
	}
}
