package overlay

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/viewer/camera"
)

const (
	// hudIconSpacing is the horizontal gap between icons in pixels.
	hudIconSpacing = 4

	// hudPanelPadding is the padding between the icon row and the panel
	// background edge in pixels.
	hudPanelPadding = 4

	// hudMargin is the distance from the active viewport's top-right corner
	// to the panel in pixels.
	hudMargin = 8
)

// hudPanelBackground is the translucent fill behind the icon row.
var hudPanelBackground = common.Color{R: 0.1, G: 0.1, B: 0.1, A: 0.55}

// hudState is the HUD's dirty-tracking state. It is an immutable value
// updated through pure transition functions so redraw decisions can be
// tested without a graphics context.
type hudState struct {
	// dirty is true when the panel must be redrawn on the next eligible frame.
	dirty bool

	// lastRect is the active viewport rectangle used for the last draw.
	lastRect common.Rect

	// hasLast is false until the first Draw call.
	hasLast bool

	// pointer is the last known pointer position in surface pixels.
	pointer [2]float32

	// hoverRect is the screen-space rectangle of the whole panel, cached at
	// draw time for pointer enter/leave detection.
	hoverRect common.PixelRect
}

// withViewportRect marks the state dirty when the active viewport rectangle
// differs from the one last drawn. Comparison is exact per component.
func (s hudState) withViewportRect(r common.Rect) hudState {
	if !s.hasLast || r != s.lastRect {
		s.dirty = true
	}
	s.lastRect = r
	s.hasLast = true
	return s
}

// withPointer records a new pointer position and marks the state dirty when
// the pointer entered or left the cached panel rectangle, so hover
// highlighting updates on the next eligible frame.
func (s hudState) withPointer(x, y float32) hudState {
	wasInside := s.hoverRect.Contains(s.pointer[0], s.pointer[1])
	isInside := s.hoverRect.Contains(x, y)
	s.pointer = [2]float32{x, y}
	if wasInside != isInside || isInside {
		s.dirty = true
	}
	return s
}

type hudOverlay struct {
	mu *sync.Mutex

	state   hudState
	icons   *IconCache
	surface Surface

	// activeCamera reports the camera mode of the active viewport, used to
	// pick the selected icon variant.
	activeCamera func() camera.CameraType

	// fpsEnabled reports whether the FPS readout is on, which selects the
	// FPS-toggle icon.
	fpsEnabled func() bool

	// iconRects caches each icon's screen rectangle from the last draw, for
	// click hit testing.
	iconRects [IconCategoryCount]common.PixelRect
}

// HudOverlay draws the camera-mode icon panel anchored to the active
// viewport's top-right edge. The panel redraws only when its viewport
// rectangle changed or pointer movement invalidated hover highlighting.
type HudOverlay interface {
	// Draw redraws the icon panel whenever the surface is repainting this
	// frame. A repaint clears the whole surface, so the panel must be
	// re-emitted even when its own state is clean or another overlay's
	// content would erase it. When dirty but the surface is not repainting,
	// a repaint is requested for the next frame and nothing is drawn.
	//
	// Parameters:
	//   - activeRect: the active viewport's rectangle in normalized surface coordinates
	Draw(activeRect common.Rect)

	// OnPointerMove records a pointer position in surface pixels. Entering
	// or leaving the panel marks it dirty.
	//
	// Parameters:
	//   - x, y: pointer position in surface pixels
	OnPointerMove(x, y float32)

	// Dirty reports whether the panel is pending a redraw.
	//
	// Returns:
	//   - bool: true if a redraw is pending
	Dirty() bool

	// Invalidate forces a redraw on the next eligible frame, used after
	// surface resize or external damage.
	Invalidate()

	// IconAt returns the icon category at the given position, based on the
	// layout of the last draw.
	//
	// Parameters:
	//   - x, y: position in surface pixels
	//
	// Returns:
	//   - IconCategory: the icon under the position
	//   - bool: false when no icon is under the position
	IconAt(x, y float32) (IconCategory, bool)
}

var _ HudOverlay = &hudOverlay{}

// NewHudOverlay creates the HUD icon panel overlay. The icon cache and
// surface are required; NewHudOverlay panics if either is nil since the
// panel cannot function without them.
//
// Parameters:
//   - icons: the decoded icon cache, shared by reference
//   - surface: the 2D overlay surface to draw into
//   - options: functional options to configure the overlay
//
// Returns:
//   - HudOverlay: the newly created overlay
func NewHudOverlay(icons *IconCache, surface Surface, options ...HudBuilderOption) HudOverlay {
	if icons == nil {
		panic("overlay: NewHudOverlay requires a non-nil IconCache")
	}
	if surface == nil {
		panic("overlay: NewHudOverlay requires a non-nil Surface")
	}
	h := &hudOverlay{
		mu:           &sync.Mutex{},
		state:        hudState{dirty: true},
		icons:        icons,
		surface:      surface,
		activeCamera: func() camera.CameraType { return camera.CameraTypeOrbit },
		fpsEnabled:   func() bool { return false },
	}
	for _, option := range options {
		option(h)
	}
	return h
}

func (h *hudOverlay) Draw(activeRect common.Rect) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.state = h.state.withViewportRect(activeRect)
	if h.surface.WantsRedraw() {
		// The repaint cleared the surface, so the panel is re-emitted even
		// when its own state is clean.
		h.state.dirty = false
		h.drawPanel(activeRect)
		return
	}
	if h.state.dirty {
		// Deferred: repaint on the next frame rather than forcing an extra
		// full-surface repaint mid-frame.
		h.surface.RequestRedraw()
	}
}

func (h *hudOverlay) OnPointerMove(x, y float32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = h.state.withPointer(x, y)
}

func (h *hudOverlay) Dirty() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state.dirty
}

func (h *hudOverlay) Invalidate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state.dirty = true
}

func (h *hudOverlay) IconAt(x, y float32) (IconCategory, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cat := IconCategory(0); cat < IconCategoryCount; cat++ {
		if h.iconRects[cat].Contains(x, y) {
			return cat, true
		}
	}
	return 0, false
}

// drawPanel lays the five icons out left-to-right with fixed spacing,
// anchored to the top-right area of the active viewport, draws the
// translucent panel background, then each icon in its current variant.
// Caller must hold the mutex.
func (h *hudOverlay) drawPanel(activeRect common.Rect) {
	surfW, surfH := h.surface.Size()
	iconW, iconH := h.icons.IconSize()

	rowW := float32(int(IconCategoryCount)*iconW + (int(IconCategoryCount)-1)*hudIconSpacing)
	originX := activeRect.X1*float32(surfW) - rowW - hudMargin
	originY := activeRect.Y0*float32(surfH) + hudMargin

	panel := common.PixelRect{
		X: originX - hudPanelPadding,
		Y: originY - hudPanelPadding,
		W: rowW + 2*hudPanelPadding,
		H: float32(iconH) + 2*hudPanelPadding,
	}
	h.state.hoverRect = panel
	h.surface.FillRect(panel, hudPanelBackground)

	active := h.activeCamera()
	for cat := IconCategory(0); cat < IconCategoryCount; cat++ {
		x := originX + float32(int(cat)*(iconW+hudIconSpacing))
		iconRect := common.PixelRect{X: x, Y: originY, W: float32(iconW), H: float32(iconH)}
		h.iconRects[cat] = iconRect

		// Variant priority: active-camera match > pointer hover > normal.
		variant := IconNormal
		switch {
		case h.iconSelected(cat, active):
			variant = IconSelected
		case iconRect.Contains(h.state.pointer[0], h.state.pointer[1]):
			variant = IconHover
		}
		h.surface.DrawImage(h.icons.Image(cat, variant), iconRect.X, iconRect.Y)
	}
}

// iconSelected reports whether an icon represents the current mode: camera
// icons match the active camera type, the FPS toggle matches the readout
// being enabled.
func (h *hudOverlay) iconSelected(cat IconCategory, active camera.CameraType) bool {
	switch cat {
	case IconX:
		return active == camera.CameraTypeX
	case IconY:
		return active == camera.CameraTypeY
	case IconZ:
		return active == camera.CameraTypeZ
	case IconOrbit:
		return active == camera.CameraTypeOrbit
	case IconFPS:
		return h.fpsEnabled()
	default:
		return false
	}
}
