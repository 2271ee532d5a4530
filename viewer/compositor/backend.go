package compositor

import (
	"image"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// Backend abstracts the graphics-API half of the compositor: surface
// configuration, frame begin/end, viewport binding, and the flat-color
// primitives (tint quads, border contours) the compositor composes frames
// from. The production implementation targets webgpu; tests substitute a
// recording fake.
type Backend interface {
	// ConfigureSurface (re)configures the render surface for the given pixel
	// dimensions. Must be called before the first frame and on every resize.
	//
	// Parameters:
	//   - width, height: surface dimensions in pixels
	ConfigureSurface(width, height int)

	// SurfaceSize returns the configured surface dimensions in pixels.
	//
	// Returns:
	//   - width, height: surface dimensions in pixels
	SurfaceSize() (width, height int)

	// BeginFrame acquires the next surface texture and opens a render pass
	// that clears the full surface to the background color.
	//
	// Returns:
	//   - error: if the surface texture could not be acquired
	BeginFrame() error

	// SetViewport restricts subsequent draws to the given pixel rectangle.
	// Only callable between BeginFrame and EndFrame.
	//
	// Parameters:
	//   - x, y: top-left corner in pixels
	//   - width, height: dimensions in pixels
	SetViewport(x, y, width, height int)

	// TintViewport fills the current viewport with a translucent color,
	// blended over whatever the pass has drawn so far.
	//
	// Parameters:
	//   - c: the tint color
	TintViewport(c common.Color)

	// DrawBorder draws a rectangular contour just inside the current
	// viewport's edges.
	//
	// Parameters:
	//   - lineWidth: contour thickness in pixels
	//   - c: the contour color
	DrawBorder(lineWidth float32, c common.Color)

	// DrawOverlay uploads the CPU-composed overlay buffer and draws it over
	// the full surface. Wired as the overlay surface's present callback, so
	// it runs on Flush between the overlay draws and EndFrame. The buffer
	// must match the configured surface size; mismatches during a resize are
	// skipped.
	//
	// Parameters:
	//   - img: the overlay buffer in RGBA order
	DrawOverlay(img *image.RGBA)

	// EndFrame closes the render pass and submits the frame's command buffer.
	EndFrame()

	// Present presents the submitted frame to the surface.
	Present()
}
