// package common contains common types that are used throughout this viewer. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// Rect is a rectangle in normalized surface coordinates. All four components
// are fractions in [0, 1] of the render surface, with (X0, Y0) the top-left
// corner and (X1, Y1) the bottom-right corner.
type Rect struct {
	// X0 is the left edge as a fraction of the surface width.
	X0 float32
	// Y0 is the top edge as a fraction of the surface height.
	Y0 float32
	// X1 is the right edge as a fraction of the surface width.
	X1 float32
	// Y1 is the bottom edge as a fraction of the surface height.
	Y1 float32
}

// FullRect is the rectangle covering the entire render surface.
var FullRect = Rect{X0: 0, Y0: 0, X1: 1, Y1: 1}

// Pixels converts the normalized rectangle to integer pixel bounds on a
// surface of the given dimensions. Fractions are truncated, matching the
// behavior of viewport setup on the graphics API.
//
// Parameters:
//   - width: surface width in pixels
//   - height: surface height in pixels
//
// Returns:
//   - x, y: top-left corner in pixels
//   - w, h: rectangle dimensions in pixels
func (r Rect) Pixels(width, height int) (x, y, w, h int) {
	x = int(r.X0 * float32(width))
	y = int(r.Y0 * float32(height))
	w = int((r.X1 - r.X0) * float32(width))
	h = int((r.Y1 - r.Y0) * float32(height))
	return x, y, w, h
}

// PixelRect is an axis-aligned rectangle in screen-space pixel coordinates.
// Used for HUD hit testing and overlay layout.
type PixelRect struct {
	// X is the left edge in pixels.
	X float32
	// Y is the top edge in pixels.
	Y float32
	// W is the width in pixels.
	W float32
	// H is the height in pixels.
	H float32
}

// Contains reports whether the point (px, py) lies within the rectangle.
// Points on the left/top edges are inside, points on the right/bottom edges are not.
//
// Parameters:
//   - px, py: the point to test in pixels
//
// Returns:
//   - bool: true if the point is inside the rectangle
func (r PixelRect) Contains(px, py float32) bool {
	return px >= r.X && px < r.X+r.W && py >= r.Y && py < r.Y+r.H
}

// Color is an RGBA color with components in [0, 1].
type Color struct {
	// R is the red component.
	R float32
	// G is the green component.
	G float32
	// B is the blue component.
	B float32
	// A is the alpha component.
	A float32
}
