// package viewer ties the windowing, compositing, and overlay pieces into
// the interactive model viewer: it owns renderer initialization order, the
// render loop, resize handling, and input routing.
package viewer

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/config"
	"github.com/Carmen-Shannon/oxy-view/viewer/camera"
	"github.com/Carmen-Shannon/oxy-view/viewer/compositor"
	"github.com/Carmen-Shannon/oxy-view/viewer/overlay"
	"github.com/Carmen-Shannon/oxy-view/viewer/profiler"
	"github.com/Carmen-Shannon/oxy-view/viewer/window"
)

type viewerImpl struct {
	mu *sync.Mutex

	conf config.Config

	window     window.Window
	backend    compositor.Backend
	surface    *overlay.ImageSurface
	icons      *overlay.IconCache
	hud        overlay.HudOverlay
	fps        overlay.FpsOverlay
	compositor compositor.Compositor

	tab *compositor.TabState

	fallbackAdapter bool
	frameStats      *profiler.Profiler

	// dragging is true while the left button is held outside the HUD,
	// driving orbit input on the active camera.
	dragging    bool
	lastPointer [2]float32

	quitChannel chan struct{}
	quitOnce    sync.Once
	wg          sync.WaitGroup
}

// Viewer is the interactive viewport renderer. It owns the window, the
// graphics backend, the overlays, and the render loop; callers supply and
// mutate the tab snapshot it draws.
type Viewer interface {
	// Window returns the underlying platform window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Compositor returns the frame compositor, for toggling the FPS readout
	// or substituting tints in tests.
	//
	// Returns:
	//   - compositor.Compositor: the compositor instance
	Compositor() compositor.Compositor

	// Tab returns the tab snapshot currently being drawn.
	//
	// Returns:
	//   - *compositor.TabState: the current tab
	Tab() *compositor.TabState

	// SetTab replaces the tab snapshot being drawn. Used when the host
	// application switches tabs or finishes a model import.
	//
	// Parameters:
	//   - tab: the new tab snapshot
	SetTab(tab *compositor.TabState)

	// SetScene updates the current tab's scene status. Used by the host as a
	// model import progresses.
	//
	// Parameters:
	//   - scene: the new scene status
	SetScene(scene compositor.SceneState)

	// Run starts the render loop and blocks processing window messages until
	// the window closes.
	Run()

	// Quit signals the render loop to stop. Safe to call multiple times.
	Quit()
}

var _ Viewer = &viewerImpl{}

// NewViewer creates the viewer and initializes the rendering stack in order:
// window, graphics backend, surface configuration, icon decoding, overlay
// surface, overlays, compositor. Icon decoding failure is fatal and aborts
// initialization.
//
// Parameters:
//   - options: functional options to configure the viewer
//
// Returns:
//   - Viewer: the initialized viewer
//   - error: if a required resource could not be initialized
func NewViewer(options ...ViewerBuilderOption) (Viewer, error) {
	v := &viewerImpl{
		mu:          &sync.Mutex{},
		conf:        config.Default(),
		quitChannel: make(chan struct{}),
		tab:         defaultTab(),
	}
	for _, option := range options {
		option(v)
	}

	if v.window == nil {
		v.window = window.NewWindow(
			window.WithTitle("Model Viewer"),
			window.WithSize(v.conf.WindowWidth, v.conf.WindowHeight),
		)
	}

	if v.backend == nil {
		descriptor := v.window.SurfaceDescriptor()
		if descriptor == nil {
			return nil, fmt.Errorf("viewer: window has no surface descriptor")
		}
		v.backend = compositor.NewWgpuBackend(descriptor, v.fallbackAdapter,
			compositor.WithVSync(v.conf.VSync),
		)
	}
	v.backend.ConfigureSurface(v.window.Width(), v.window.Height())

	icons, err := overlay.NewIconCache()
	if err != nil {
		return nil, fmt.Errorf("viewer: failed to load HUD icons: %w", err)
	}
	v.icons = icons

	if v.surface == nil {
		// Flush hands the composed overlay buffer to the backend, which
		// uploads it and blits it over the frame before Present.
		v.surface = overlay.NewImageSurface(v.window.Width(), v.window.Height(), v.backend.DrawOverlay)
	}

	v.hud = overlay.NewHudOverlay(icons, v.surface,
		overlay.WithActiveCamera(v.activeCameraType),
		overlay.WithFpsEnabled(func() bool { return v.compositor != nil && v.compositor.FpsEnabled() }),
	)
	v.fps = overlay.NewFpsOverlay(v.surface)
	v.compositor = compositor.NewCompositor(v.backend, v.surface, v.hud, v.fps,
		compositor.WithFpsReadout(v.conf.ShowFPS),
	)

	if v.conf.Profiling {
		v.frameStats = profiler.NewProfiler(time.Second)
	}

	v.wireInput()

	return v, nil
}

// defaultTab is a single full-surface orbit viewport with no model.
func defaultTab() *compositor.TabState {
	return &compositor.TabState{
		Slots: [compositor.MaxViewports]*compositor.ViewportSlot{
			{Rect: common.FullRect, Camera: camera.NewOrbitController()},
		},
		ActiveIndex: 0,
		Scene:       compositor.SceneEmpty(),
	}
}

func (v *viewerImpl) Window() window.Window {
	return v.window
}

func (v *viewerImpl) Compositor() compositor.Compositor {
	return v.compositor
}

func (v *viewerImpl) Tab() *compositor.TabState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tab
}

func (v *viewerImpl) SetTab(tab *compositor.TabState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tab = tab
	v.hud.Invalidate()
}

func (v *viewerImpl) SetScene(scene compositor.SceneState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.tab != nil {
		v.tab.Scene = scene
	}
}

func (v *viewerImpl) Run() {
	v.wg.Add(1)
	go v.renderLoop()
	v.window.ProcessMessages()
	v.Quit()
	v.wg.Wait()
}

func (v *viewerImpl) Quit() {
	v.quitOnce.Do(func() {
		close(v.quitChannel)
	})
}

// renderLoop draws frames until quit. Panics inside the loop are recovered
// so a render fault closes the viewer instead of crashing the process.
func (v *viewerImpl) renderLoop() {
	defer v.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("render loop recovered from panic: %v", r)
			v.Quit()
		}
	}()

	lastFrame := time.Now()

	for {
		select {
		case <-v.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastFrame).Seconds())
			lastFrame = now

			// Snapshot the tab so input callbacks on the window thread can
			// mutate it while this frame draws.
			v.mu.Lock()
			tab := v.tab.Clone()
			v.mu.Unlock()

			if err := v.compositor.Draw(tab, dt); err != nil {
				// Surface acquisition can fail transiently during resize.
				log.Printf("frame skipped: %v", err)
				time.Sleep(time.Millisecond)
			}

			if v.frameStats != nil {
				v.frameStats.Tick()
			}
		}
	}
}

// wireInput registers the window callbacks: resize reconfigures the surface,
// pointer movement feeds the HUD and camera dragging, clicks route to HUD
// icons or viewport activation, scroll zooms the active camera.
func (v *viewerImpl) wireInput() {
	v.window.SetResizeCallback(func(width, height int) {
		if width <= 0 || height <= 0 {
			return
		}
		v.backend.ConfigureSurface(width, height)
		v.surface.Resize(width, height)
		v.hud.Invalidate()
	})

	v.window.SetPointerMoveCallback(func(x, y float32) {
		v.hud.OnPointerMove(x, y)

		v.mu.Lock()
		dragging := v.dragging
		dx := x - v.lastPointer[0]
		dy := y - v.lastPointer[1]
		v.lastPointer = [2]float32{x, y}
		v.mu.Unlock()

		if dragging {
			v.orbitActive(dx, dy)
		}
	})

	v.window.SetMouseDownCallback(func(button window.MouseButton, x, y float32) {
		if button != window.MouseButtonLeft {
			return
		}
		if cat, ok := v.hud.IconAt(x, y); ok {
			v.handleIconClick(cat)
			return
		}
		v.activateViewportAt(x, y)
		v.mu.Lock()
		v.dragging = true
		v.lastPointer = [2]float32{x, y}
		v.mu.Unlock()
	})

	v.window.SetMouseUpCallback(func(button window.MouseButton, x, y float32) {
		if button != window.MouseButtonLeft {
			return
		}
		v.mu.Lock()
		v.dragging = false
		v.mu.Unlock()
	})

	v.window.SetScrollCallback(func(delta float32) {
		if cam := v.activeCamera(); cam != nil {
			cam.Zoom(delta)
		}
	})

	v.window.SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case common.KeyF:
			v.handleIconClick(overlay.IconFPS)
		case common.KeyO:
			v.handleIconClick(overlay.IconOrbit)
		case common.KeyX:
			v.handleIconClick(overlay.IconX)
		case common.KeyY:
			v.handleIconClick(overlay.IconY)
		case common.KeyZ:
			v.handleIconClick(overlay.IconZ)
		case common.Key1, common.Key2, common.Key3, common.Key4:
			v.activateViewport(int(keyCode - common.Key1))
		}
	})
}

// activateViewport makes the given slot index active, ignoring empty slots.
func (v *viewerImpl) activateViewport(index int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.tab == nil || index < 0 || index >= compositor.MaxViewports {
		return
	}
	if v.tab.Slots[index] == nil || v.tab.ActiveIndex == index {
		return
	}
	v.tab.ActiveIndex = index
	v.hud.Invalidate()
}

// handleIconClick applies a HUD icon action: camera icons swap the active
// slot's controller, the FPS icon toggles the readout.
func (v *viewerImpl) handleIconClick(cat overlay.IconCategory) {
	switch cat {
	case overlay.IconFPS:
		v.compositor.SetFpsEnabled(!v.compositor.FpsEnabled())
	case overlay.IconOrbit:
		v.setActiveCamera(camera.NewOrbitController())
	case overlay.IconX:
		v.setActiveCamera(camera.NewAxisController(camera.CameraTypeX))
	case overlay.IconY:
		v.setActiveCamera(camera.NewAxisController(camera.CameraTypeY))
	case overlay.IconZ:
		v.setActiveCamera(camera.NewAxisController(camera.CameraTypeZ))
	}
	v.hud.Invalidate()
}

// activateViewportAt makes the slot under the given pixel position the
// active slot.
func (v *viewerImpl) activateViewportAt(x, y float32) {
	v.mu.Lock()
	defer v.mu.Unlock()

	w, h := v.backend.SurfaceSize()
	if w <= 0 || h <= 0 || v.tab == nil {
		return
	}
	nx := x / float32(w)
	ny := y / float32(h)
	for i, slot := range v.tab.Slots {
		if slot == nil {
			continue
		}
		r := slot.Rect
		if nx >= r.X0 && nx < r.X1 && ny >= r.Y0 && ny < r.Y1 {
			if v.tab.ActiveIndex != i {
				v.tab.ActiveIndex = i
				v.hud.Invalidate()
			}
			return
		}
	}
}

// orbitActive converts a pointer drag delta into orbit steps on the active
// camera. Axis-locked cameras ignore the calls.
func (v *viewerImpl) orbitActive(dx, dy float32) {
	cam := v.activeCamera()
	if cam == nil {
		return
	}
	switch {
	case dx > 0:
		cam.OrbitRight()
	case dx < 0:
		cam.OrbitLeft()
	}
	switch {
	case dy > 0:
		cam.OrbitDown()
	case dy < 0:
		cam.OrbitUp()
	}
}

func (v *viewerImpl) activeCamera() camera.CameraController {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.tab == nil {
		return nil
	}
	slot := v.tab.Slots[v.tab.ActiveIndex]
	if slot == nil {
		return nil
	}
	return slot.Camera
}

func (v *viewerImpl) setActiveCamera(cam camera.CameraController) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.tab == nil {
		return
	}
	if slot := v.tab.Slots[v.tab.ActiveIndex]; slot != nil {
		slot.Camera = cam
	}
}

func (v *viewerImpl) activeCameraType() camera.CameraType {
	if cam := v.activeCamera(); cam != nil {
		return cam.Type()
	}
	return camera.CameraTypeOrbit
}
