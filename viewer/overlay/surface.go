// package overlay implements the 2D heads-up display drawn on top of the
// viewport compositor's output: the camera-mode icon panel and the throttled
// FPS readout. Both draw into a shared Surface capability owned by the host's
// overlay-text subsystem and redraw only when their dirty conditions are met.
package overlay

import (
	"image"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// Surface is the 2D overlay drawing capability consumed by the HUD and FPS
// overlays. The surface is owned externally; overlays query WantsRedraw to
// learn whether the surface is repainting this frame, and use RequestRedraw
// to schedule a repaint on the next frame instead of forcing an extra
// full-surface repaint mid-frame.
type Surface interface {
	// WantsRedraw reports whether the surface is repainting this frame.
	// Overlay draw calls are only visible during a repainting frame.
	//
	// Returns:
	//   - bool: true if the surface accepts draw calls this frame
	WantsRedraw() bool

	// RequestRedraw hints that the surface should repaint on the next frame.
	RequestRedraw()

	// Size returns the surface dimensions in pixels.
	//
	// Returns:
	//   - width, height: surface dimensions in pixels
	Size() (width, height int)

	// FillRect fills a rectangle with a color. Alpha blends over existing content.
	//
	// Parameters:
	//   - r: the rectangle in surface pixels
	//   - c: the fill color
	FillRect(r common.PixelRect, c common.Color)

	// DrawImage draws an image with its top-left corner at (x, y).
	//
	// Parameters:
	//   - img: the image to draw
	//   - x, y: top-left position in surface pixels
	DrawImage(img image.Image, x, y float32)

	// DrawText draws a single line of text with its baseline origin at (x, y).
	//
	// Parameters:
	//   - text: the string to draw
	//   - x, y: baseline origin in surface pixels
	//   - c: the text color
	DrawText(text string, x, y float32, c common.Color)

	// Flush commits the accumulated overlay drawing to the render target.
	// Called once per frame after all overlay draw calls.
	Flush()
}
