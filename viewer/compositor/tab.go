// package compositor implements the per-frame multi-viewport rendering
// pipeline of the model viewer: viewport partitioning, projection setup,
// draw-order rules for the active viewport, status splash screens, and the
// overlay hand-off. Scene content, cameras, and the overlay text backend are
// external capabilities; the compositor only decides what to draw, where,
// and in which order.
package compositor

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/viewer/camera"
)

// MaxViewports is the maximum number of simultaneous viewports in a tab's
// layout. Layouts of 1, 2, or 4 viewports are supported.
const MaxViewports = 4

// ScenePhase tags the lifecycle state of the scene shown in a tab.
type ScenePhase int

const (
	// ScenePhaseEmpty means no model is loaded; the empty splash is shown.
	ScenePhaseEmpty ScenePhase = iota

	// ScenePhaseLoading means a model is being imported; the loading splash is shown.
	ScenePhaseLoading

	// ScenePhaseFailed means the import failed; the failure splash with the
	// externally supplied message is shown.
	ScenePhaseFailed

	// ScenePhaseReady means the scene renders through its render capability.
	ScenePhaseReady
)

// ViewportContext describes the viewport a scene renderer draws into this
// frame: its rectangle in both normalized and pixel coordinates, the
// perspective projection established for it, and whether it is the active
// viewport.
type ViewportContext struct {
	// Rect is the viewport rectangle in normalized surface coordinates.
	Rect common.Rect

	// PixelX, PixelY are the viewport's top-left corner in pixels.
	PixelX, PixelY int

	// PixelW, PixelH are the viewport's dimensions in pixels.
	PixelW, PixelH int

	// Projection is the perspective projection matrix for this viewport
	// (column-major).
	Projection [16]float32

	// Active is true when this is the user-focused viewport.
	Active bool
}

// SceneRenderer is the scene's render capability. Render is invoked once per
// viewport per frame when a scene is loaded and issues graphics-API draw
// calls into the currently bound viewport.
type SceneRenderer interface {
	// Render draws the scene into the currently configured viewport using
	// the given camera.
	//
	// Parameters:
	//   - view: the viewport context established by the compositor
	//   - cam: the viewport's camera controller
	Render(view ViewportContext, cam camera.CameraController)
}

// SceneState is the tagged scene status supplied by the tab collaborator.
// It determines whether the compositor draws a splash or delegates to the
// scene's render capability. The compositor never interprets a failure's
// cause; it only renders the supplied message.
type SceneState struct {
	// Phase is the lifecycle tag.
	Phase ScenePhase

	// FailureMessage is the display text for ScenePhaseFailed.
	FailureMessage string

	// Scene is the render capability for ScenePhaseReady.
	Scene SceneRenderer
}

// SceneEmpty returns the state for a tab with no model.
func SceneEmpty() SceneState {
	return SceneState{Phase: ScenePhaseEmpty}
}

// SceneLoading returns the state for a tab with a model import in flight.
func SceneLoading() SceneState {
	return SceneState{Phase: ScenePhaseLoading}
}

// SceneFailed returns the state for a failed model import.
//
// Parameters:
//   - message: the externally supplied failure text
func SceneFailed(message string) SceneState {
	return SceneState{Phase: ScenePhaseFailed, FailureMessage: message}
}

// SceneReady returns the state for a loaded scene.
//
// Parameters:
//   - scene: the scene's render capability
func SceneReady(scene SceneRenderer) SceneState {
	return SceneState{Phase: ScenePhaseReady, Scene: scene}
}

// ViewportSlot associates a viewport rectangle with a camera. Slots are
// owned by the tab's layout; the compositor reads them once per frame.
type ViewportSlot struct {
	// Rect is the slot's rectangle in normalized surface coordinates.
	Rect common.Rect

	// Camera is the slot's camera controller.
	Camera camera.CameraController
}

// TabState is the per-frame snapshot the compositor draws: the ordered
// viewport slots of the active tab's layout, the active slot index, and the
// scene status. Layout and scene loading are owned externally.
//
// Exactly one active slot must exist whenever any slot is present; a nil
// slot at the active index is a caller bug and panics in Draw.
type TabState struct {
	// Slots are the layout's viewport slots. Nil entries are skipped,
	// supporting layouts with fewer than MaxViewports viewports.
	Slots [MaxViewports]*ViewportSlot

	// ActiveIndex is the index of the active (user-focused) slot.
	ActiveIndex int

	// Scene is the tab's scene status.
	Scene SceneState
}

// Clone returns a frame-local copy of the tab: the slot structs and scene
// state are copied so the render thread can draw the snapshot while input
// handlers mutate the original under their own lock. Camera controllers are
// shared by reference; they serialize their own state internally.
//
// Returns:
//   - *TabState: the copied tab, or nil for a nil receiver
func (t *TabState) Clone() *TabState {
	if t == nil {
		return nil
	}
	out := &TabState{
		ActiveIndex: t.ActiveIndex,
		Scene:       t.Scene,
	}
	for i, s := range t.Slots {
		if s != nil {
			slot := *s
			out.Slots[i] = &slot
		}
	}
	return out
}

// populatedCount returns the number of non-nil slots.
func (t *TabState) populatedCount() int {
	n := 0
	for _, s := range t.Slots {
		if s != nil {
			n++
		}
	}
	return n
}
