package compositor

import (
	"fmt"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/viewer/overlay"
)

const (
	// viewportFovDegrees is the vertical field of view of every viewport.
	viewportFovDegrees = 45.0

	// viewportNear and viewportFar are the perspective clip distances shared
	// by all viewports.
	viewportNear = 0.001
	viewportFar  = 100.0

	// activeBorderWidth and inactiveBorderWidth are the viewport contour
	// thicknesses in pixels. The active viewport draws the wider contour.
	activeBorderWidth   = 4.0
	inactiveBorderWidth = 3.0
)

var (
	// inactiveTint is the neutral gray wash over non-active viewports.
	inactiveTint = common.Color{R: 0.5, G: 0.5, B: 0.5, A: 0.10}

	// activeTint distinguishes the active viewport's background.
	activeTint = common.Color{R: 0.35, G: 0.45, B: 0.60, A: 0.12}

	activeBorderColor   = common.Color{R: 1.0, G: 0.62, B: 0.1, A: 1}
	inactiveBorderColor = common.Color{R: 0.45, G: 0.45, B: 0.45, A: 1}

	splashTextColor = common.Color{R: 0.85, G: 0.85, B: 0.85, A: 1}
)

// splashGlyphWidth and splashGlyphHeight approximate the overlay font's
// glyph metrics for centering splash text.
const (
	splashGlyphWidth  = 7
	splashGlyphHeight = 13
)

// Compositor draws one frame of the multi-viewport layout: each populated
// slot gets its own viewport, projection, scene-or-splash content, tint, and
// contour, with the active slot drawn last so its contour stays on top.
// Overlays (FPS readout, HUD) composite after all viewports over the full
// surface.
type Compositor interface {
	// Draw renders one frame of the given tab snapshot.
	//
	// Draw panics when the slot at tab.ActiveIndex is nil while other slots
	// are populated; that is a layout bug in the caller.
	//
	// Parameters:
	//   - tab: the tab snapshot to draw
	//   - deltaTime: the last frame's duration in seconds
	//
	// Returns:
	//   - error: if the frame could not be started
	Draw(tab *TabState, deltaTime float32) error

	// FpsEnabled reports whether the FPS readout is drawn.
	//
	// Returns:
	//   - bool: true when the readout is enabled
	FpsEnabled() bool

	// SetFpsEnabled toggles the FPS readout.
	//
	// Parameters:
	//   - enabled: the new readout state
	SetFpsEnabled(enabled bool)
}

type compositorImpl struct {
	mu *sync.Mutex

	backend Backend
	surface overlay.Surface
	hud     overlay.HudOverlay
	fps     overlay.FpsOverlay

	showFps bool
}

var _ Compositor = &compositorImpl{}

// NewCompositor creates the frame compositor. All collaborators are
// required; NewCompositor panics if any is nil.
//
// Parameters:
//   - backend: the graphics-API backend
//   - surface: the 2D overlay surface
//   - hud: the HUD icon overlay
//   - fps: the FPS readout overlay
//   - options: functional options to configure the compositor
//
// Returns:
//   - Compositor: the newly created compositor
func NewCompositor(backend Backend, surface overlay.Surface, hud overlay.HudOverlay, fps overlay.FpsOverlay, options ...CompositorBuilderOption) Compositor {
	if backend == nil {
		panic("compositor: NewCompositor requires a non-nil Backend")
	}
	if surface == nil {
		panic("compositor: NewCompositor requires a non-nil overlay Surface")
	}
	if hud == nil {
		panic("compositor: NewCompositor requires a non-nil HudOverlay")
	}
	if fps == nil {
		panic("compositor: NewCompositor requires a non-nil FpsOverlay")
	}
	c := &compositorImpl{
		mu:      &sync.Mutex{},
		backend: backend,
		surface: surface,
		hud:     hud,
		fps:     fps,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *compositorImpl) Draw(tab *TabState, deltaTime float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tab == nil {
		return fmt.Errorf("compositor: cannot draw a nil tab")
	}

	populated := tab.populatedCount()
	active := tab.Slots[tab.ActiveIndex]
	if populated > 0 && active == nil {
		panic("compositor: active viewport slot is nil")
	}

	if err := c.backend.BeginFrame(); err != nil {
		return fmt.Errorf("compositor: failed to begin frame: %w", err)
	}

	// Non-active slots first, the active slot last so its contour and tint
	// are never overdrawn by a neighbor.
	for i, slot := range tab.Slots {
		if slot == nil || i == tab.ActiveIndex {
			continue
		}
		c.drawSlot(tab, slot, false)
	}
	if active != nil {
		c.drawSlot(tab, active, true)
	}

	// Overlays composite over the whole surface, so undo the last slot's
	// viewport restriction when the layout is partitioned.
	if populated > 1 {
		w, h := c.backend.SurfaceSize()
		c.backend.SetViewport(0, 0, w, h)
	}

	if c.showFps {
		c.fps.Draw(deltaTime)
	}

	activeRect := common.FullRect
	if active != nil {
		activeRect = active.Rect
	}
	c.hud.Draw(activeRect)
	c.surface.Flush()

	c.backend.EndFrame()
	c.backend.Present()
	return nil
}

func (c *compositorImpl) FpsEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showFps
}

func (c *compositorImpl) SetFpsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.showFps = enabled
}

// drawSlot renders one viewport slot: viewport binding, background tint,
// scene or splash, and the contour. Zero-area slots are skipped.
func (c *compositorImpl) drawSlot(tab *TabState, slot *ViewportSlot, isActive bool) {
	surfW, surfH := c.backend.SurfaceSize()
	px, py, pw, ph := slot.Rect.Pixels(surfW, surfH)
	if pw <= 0 || ph <= 0 {
		return
	}

	c.backend.SetViewport(px, py, pw, ph)

	tint := inactiveTint
	if isActive {
		tint = activeTint
	}
	c.backend.TintViewport(tint)

	fovY := float32(viewportFovDegrees * math.Pi / 180)
	aspect := float32(pw) / float32(ph)
	view := ViewportContext{
		Rect:       slot.Rect,
		PixelX:     px,
		PixelY:     py,
		PixelW:     pw,
		PixelH:     ph,
		Projection: common.Perspective(fovY, aspect, viewportNear, viewportFar),
		Active:     isActive,
	}

	if tab.Scene.Phase == ScenePhaseReady && tab.Scene.Scene != nil {
		tab.Scene.Scene.Render(view, slot.Camera)
	} else {
		c.drawSplash(view, tab.Scene)
	}

	if isActive {
		c.backend.DrawBorder(activeBorderWidth, activeBorderColor)
	} else {
		c.backend.DrawBorder(inactiveBorderWidth, inactiveBorderColor)
	}
}

// drawSplash writes the status text for a viewport with no renderable scene,
// centered in the viewport's pixel rectangle. The text rides the overlay
// surface, so it follows the surface's repaint cadence.
func (c *compositorImpl) drawSplash(view ViewportContext, state SceneState) {
	msg := splashText(state)
	x := float32(view.PixelX) + (float32(view.PixelW)-float32(len(msg)*splashGlyphWidth))/2
	y := float32(view.PixelY) + (float32(view.PixelH)+splashGlyphHeight)/2
	c.surface.DrawText(msg, x, y, splashTextColor)
}

// splashText maps a non-ready scene state to its display text. Failure text
// carries the externally supplied message verbatim.
func splashText(state SceneState) string {
	switch state.Phase {
	case ScenePhaseLoading:
		return "Loading model..."
	case ScenePhaseFailed:
		return fmt.Sprintf("Failed to load model: %s", state.FailureMessage)
	default:
		return "No model loaded"
	}
}
