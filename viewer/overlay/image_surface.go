package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// ImageSurface is a CPU-backed Surface implementation drawing into an
// *image.RGBA. The host presents the buffer to the render target through the
// present callback on Flush (typically by uploading it as a texture).
//
// Repaint model: the surface repaints a frame when a repaint was requested
// (or forced by Invalidate/resize). On a repainting frame the buffer is
// cleared to transparent before the first draw call; on other frames draw
// calls are ignored, matching WantsRedraw.
type ImageSurface struct {
	mu *sync.Mutex

	img     *image.RGBA
	face    font.Face
	present func(*image.RGBA)

	wants      bool
	redrawNext bool
	cleared    bool
	dirty      bool
}

var _ Surface = &ImageSurface{}

// NewImageSurface creates a CPU overlay surface of the given pixel
// dimensions. The first frame repaints unconditionally.
//
// Parameters:
//   - width, height: surface dimensions in pixels
//   - present: callback receiving the composed buffer on Flush (nil safe)
//
// Returns:
//   - *ImageSurface: the newly created surface
func NewImageSurface(width, height int, present func(*image.RGBA)) *ImageSurface {
	return &ImageSurface{
		mu:      &sync.Mutex{},
		img:     image.NewRGBA(image.Rect(0, 0, width, height)),
		face:    basicfont.Face7x13,
		present: present,
		wants:   true,
	}
}

func (s *ImageSurface) WantsRedraw() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wants
}

func (s *ImageSurface) RequestRedraw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redrawNext = true
}

func (s *ImageSurface) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates the buffer for new surface dimensions and forces a
// repaint on the next frame.
//
// Parameters:
//   - width, height: new surface dimensions in pixels
func (s *ImageSurface) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.wants = true
	s.cleared = false
}

func (s *ImageSurface) FillRect(r common.PixelRect, c common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.wants {
		return
	}
	s.clearIfNeeded()

	rect := image.Rect(int(r.X), int(r.Y), int(r.X+r.W), int(r.Y+r.H))
	src := image.NewUniform(toNRGBA(c))
	draw.Draw(s.img, rect.Intersect(s.img.Bounds()), src, image.Point{}, draw.Over)
	s.dirty = true
}

func (s *ImageSurface) DrawImage(img image.Image, x, y float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.wants {
		return
	}
	s.clearIfNeeded()

	b := img.Bounds()
	dst := image.Rect(int(x), int(y), int(x)+b.Dx(), int(y)+b.Dy())
	draw.Draw(s.img, dst.Intersect(s.img.Bounds()), img, b.Min, draw.Over)
	s.dirty = true
}

func (s *ImageSurface) DrawText(text string, x, y float32, c common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.wants {
		return
	}
	s.clearIfNeeded()

	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(toNRGBA(c)),
		Face: s.face,
		Dot:  fixed.P(int(x), int(y)),
	}
	d.DrawString(text)
	s.dirty = true
}

func (s *ImageSurface) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dirty && s.present != nil {
		s.present(s.img)
	}
	s.dirty = false

	// The next frame repaints iff a repaint was requested during this one.
	s.wants = s.redrawNext
	s.redrawNext = false
	s.cleared = false
}

// clearIfNeeded resets the buffer to transparent before the first draw call
// of a repainting frame. Caller must hold the mutex.
func (s *ImageSurface) clearIfNeeded() {
	if s.cleared {
		return
	}
	for i := range s.img.Pix {
		s.img.Pix[i] = 0
	}
	s.cleared = true
}

func toNRGBA(c common.Color) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
