package overlay

import (
	"image"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/viewer/camera"
)

// stubSurface records draw calls and lets tests control the repaint state.
type stubSurface struct {
	wants          bool
	redrawRequests int
	width, height  int

	fills  []common.PixelRect
	images []image.Image
	texts  []string
}

func newStubSurface(width, height int) *stubSurface {
	return &stubSurface{wants: true, width: width, height: height}
}

func (s *stubSurface) WantsRedraw() bool { return s.wants }
func (s *stubSurface) RequestRedraw()    { s.redrawRequests++ }
func (s *stubSurface) Size() (int, int)  { return s.width, s.height }
func (s *stubSurface) FillRect(r common.PixelRect, c common.Color) {
	s.fills = append(s.fills, r)
}
func (s *stubSurface) DrawImage(img image.Image, x, y float32) {
	s.images = append(s.images, img)
}
func (s *stubSurface) DrawText(text string, x, y float32, c common.Color) {
	s.texts = append(s.texts, text)
}
func (s *stubSurface) Flush() {}

func mustIcons(t *testing.T) *IconCache {
	t.Helper()
	icons, err := NewIconCache()
	if err != nil {
		t.Fatalf("NewIconCache: %v", err)
	}
	return icons
}

func TestHudInitialDraw(t *testing.T) {
	surface := newStubSurface(800, 600)
	icons := mustIcons(t)
	hud := NewHudOverlay(icons, surface)

	if !hud.Dirty() {
		t.Fatal("new HUD is not dirty")
	}
	hud.Draw(common.FullRect)

	if hud.Dirty() {
		t.Fatal("HUD still dirty after drawing")
	}
	if len(surface.fills) != 1 {
		t.Fatalf("panel fills = %d, want 1", len(surface.fills))
	}
	if len(surface.images) != int(IconCategoryCount) {
		t.Fatalf("icons drawn = %d, want %d", len(surface.images), int(IconCategoryCount))
	}
}

func TestHudSkipsRedrawWhenClean(t *testing.T) {
	surface := newStubSurface(800, 600)
	hud := NewHudOverlay(mustIcons(t), surface)

	hud.Draw(common.FullRect)
	drawn := len(surface.images)

	// Clean state on a non-repainting frame: no draws and no repaint request.
	surface.wants = false
	hud.Draw(common.FullRect)
	if len(surface.images) != drawn {
		t.Fatal("HUD drew while the surface was not repainting")
	}
	if surface.redrawRequests != 0 {
		t.Fatal("clean HUD requested a repaint")
	}
}

func TestHudRepaintsWhenSurfaceRepaints(t *testing.T) {
	surface := newStubSurface(800, 600)
	hud := NewHudOverlay(mustIcons(t), surface)

	hud.Draw(common.FullRect)

	// A repaint clears the whole surface, so the panel must be re-emitted
	// even though its own state is clean.
	surface.images = nil
	hud.Draw(common.FullRect)
	if len(surface.images) != int(IconCategoryCount) {
		t.Fatal("clean HUD did not re-emit the panel on a repainting frame")
	}
}

func TestHudSurvivesExternalRepaint(t *testing.T) {
	// Drive the real overlay stack the way the compositor does, with the FPS
	// readout sharing the surface: once its refresh interval elapses it
	// requests a repaint, and the cleared buffer must still contain the panel.
	var presented *image.RGBA
	surface := NewImageSurface(800, 600, func(img *image.RGBA) { presented = img })
	hud := NewHudOverlay(mustIcons(t), surface)
	fps := NewFpsOverlay(surface)

	frame := func() {
		fps.Draw(0.1)
		hud.Draw(common.FullRect)
		surface.Flush()
	}

	// Frame 1 repaints (fresh surface); frames 2-4 accumulate until the FPS
	// refresh crosses its interval and defers; frame 5 is the FPS-triggered
	// repaint.
	for i := 0; i < 5; i++ {
		frame()
	}

	if presented == nil {
		t.Fatal("no buffer presented")
	}
	// Panel background sample for a full-surface viewport: inside the
	// right-aligned icon row's panel rectangle.
	if presented.RGBAAt(730, 20).A == 0 {
		t.Fatal("HUD panel missing from the presented buffer after the FPS-triggered repaint")
	}
}

func TestHudViewportChangeMarksDirty(t *testing.T) {
	surface := newStubSurface(800, 600)
	hud := NewHudOverlay(mustIcons(t), surface)
	hud.Draw(common.FullRect)

	half := common.Rect{X0: 0, Y0: 0, X1: 0.5, Y1: 1}
	hud.Draw(half)
	if hud.Dirty() {
		t.Fatal("dirty flag not cleared after redrawing for the new rect")
	}
	if len(surface.fills) != 2 {
		t.Fatalf("panel fills = %d, want 2 after viewport change", len(surface.fills))
	}
}

func TestHudDefersWhenSurfaceNotRepainting(t *testing.T) {
	surface := newStubSurface(800, 600)
	hud := NewHudOverlay(mustIcons(t), surface)

	surface.wants = false
	hud.Draw(common.FullRect)

	if surface.redrawRequests != 1 {
		t.Fatalf("redraw requests = %d, want 1", surface.redrawRequests)
	}
	if len(surface.images) != 0 {
		t.Fatal("HUD drew while the surface was not repainting")
	}
	if !hud.Dirty() {
		t.Fatal("deferred HUD lost its dirty flag")
	}

	// Next frame the surface repaints and the deferred draw lands.
	surface.wants = true
	hud.Draw(common.FullRect)
	if len(surface.images) != int(IconCategoryCount) {
		t.Fatal("deferred draw did not happen on the repainting frame")
	}
}

func TestHudHoverVariant(t *testing.T) {
	surface := newStubSurface(800, 600)
	icons := mustIcons(t)
	hud := NewHudOverlay(icons, surface)
	hud.Draw(common.FullRect)

	// Icon row for a full-surface viewport: right-aligned with an 8px margin.
	// The X icon is the leftmost; pointer over its center.
	cat, ok := hud.IconAt(668, 20)
	if !ok || cat != IconX {
		t.Fatalf("IconAt = (%v, %v), want (IconX, true)", cat, ok)
	}

	hud.OnPointerMove(668, 20)
	if !hud.Dirty() {
		t.Fatal("pointer entering the panel did not mark the HUD dirty")
	}

	surface.images = nil
	hud.Draw(common.FullRect)
	if surface.images[IconX] != icons.Image(IconX, IconHover) {
		t.Fatal("hovered icon not drawn with the hover variant")
	}
	if surface.images[IconY] != icons.Image(IconY, IconNormal) {
		t.Fatal("non-hovered icon not drawn with the normal variant")
	}
}

func TestHudPointerLeaveMarksDirty(t *testing.T) {
	surface := newStubSurface(800, 600)
	hud := NewHudOverlay(mustIcons(t), surface)
	hud.Draw(common.FullRect)

	hud.OnPointerMove(668, 20) // enter
	hud.Draw(common.FullRect)

	hud.OnPointerMove(100, 100) // leave
	if !hud.Dirty() {
		t.Fatal("pointer leaving the panel did not mark the HUD dirty")
	}
}

func TestHudPointerOutsideStaysClean(t *testing.T) {
	surface := newStubSurface(800, 600)
	hud := NewHudOverlay(mustIcons(t), surface)
	hud.Draw(common.FullRect)

	hud.OnPointerMove(100, 100)
	hud.OnPointerMove(120, 140)
	if hud.Dirty() {
		t.Fatal("pointer movement outside the panel marked the HUD dirty")
	}
}

func TestHudSelectedVariantPriority(t *testing.T) {
	surface := newStubSurface(800, 600)
	icons := mustIcons(t)
	hud := NewHudOverlay(icons, surface,
		WithActiveCamera(func() camera.CameraType { return camera.CameraTypeX }),
		WithFpsEnabled(func() bool { return true }),
	)
	hud.Draw(common.FullRect)

	// Selected wins over hover: the pointer is over the X icon but the X
	// camera is active.
	hud.OnPointerMove(668, 20)
	surface.images = nil
	hud.Draw(common.FullRect)

	if surface.images[IconX] != icons.Image(IconX, IconSelected) {
		t.Fatal("active camera icon not drawn with the selected variant")
	}
	if surface.images[IconFPS] != icons.Image(IconFPS, IconSelected) {
		t.Fatal("FPS toggle not drawn selected while the readout is enabled")
	}
	if surface.images[IconOrbit] != icons.Image(IconOrbit, IconNormal) {
		t.Fatal("inactive orbit icon not drawn with the normal variant")
	}
}

func TestHudInvalidate(t *testing.T) {
	surface := newStubSurface(800, 600)
	hud := NewHudOverlay(mustIcons(t), surface)
	hud.Draw(common.FullRect)

	hud.Invalidate()
	if !hud.Dirty() {
		t.Fatal("Invalidate did not mark the HUD dirty")
	}
	surface.images = nil
	hud.Draw(common.FullRect)
	if len(surface.images) != int(IconCategoryCount) {
		t.Fatal("invalidated HUD did not redraw")
	}
}

func TestHudPanelAnchor(t *testing.T) {
	surface := newStubSurface(800, 600)
	hud := NewHudOverlay(mustIcons(t), surface)

	half := common.Rect{X0: 0, Y0: 0, X1: 0.5, Y1: 1}
	hud.Draw(half)

	// The panel anchors to the active viewport's right edge (400px), not the
	// surface edge.
	if _, ok := hud.IconAt(668, 20); ok {
		t.Fatal("panel still anchored to the surface edge")
	}
	if cat, ok := hud.IconAt(268, 20); !ok || cat != IconX {
		t.Fatalf("IconAt(268, 20) = (%v, %v), want (IconX, true)", cat, ok)
	}
}

func TestHudRequiresDependencies(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil icon cache")
		}
	}()
	NewHudOverlay(nil, newStubSurface(10, 10))
}
