package overlay

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// fpsRefreshInterval is the minimum accumulated frame time between refreshes
// of the displayed FPS value, in seconds. The throttling decouples the
// volatile per-frame reading from a visually stable, human-readable refresh
// rate.
const fpsRefreshInterval = float32(1.0 / 3.0)

// fpsTextColor is the readout color.
var fpsTextColor = common.Color{R: 1, G: 1, B: 0.6, A: 1}

type fpsOverlay struct {
	mu *sync.Mutex

	surface Surface

	// accumulator is the frame time accumulated since the last refresh.
	accumulator float32

	// frames is the number of frames observed since the last refresh.
	frames int

	// text is the currently displayed readout, reused between refreshes.
	text string

	// position is the baseline origin of the readout in surface pixels.
	position [2]float32
}

// FpsOverlay draws a frames-per-second readout that refreshes at a fixed
// interval regardless of the actual frame rate. Grounded on the same
// frames/elapsed computation the engine profiler uses.
type FpsOverlay interface {
	// Draw accounts the last frame's duration and redraws the readout. The
	// displayed value refreshes only when the accumulated time reaches the
	// refresh interval; when the surface is not repainting on the frame the
	// threshold is crossed, the refresh is deferred to the next frame.
	//
	// Parameters:
	//   - deltaTime: the last frame's duration in seconds
	Draw(deltaTime float32)

	// Value returns the currently displayed readout text.
	//
	// Returns:
	//   - string: the displayed text, empty before the first refresh
	Value() string
}

var _ FpsOverlay = &fpsOverlay{}

// NewFpsOverlay creates the FPS readout overlay. The surface is required;
// NewFpsOverlay panics if it is nil.
//
// Parameters:
//   - surface: the 2D overlay surface to draw into
//   - options: functional options to configure the overlay
//
// Returns:
//   - FpsOverlay: the newly created overlay
func NewFpsOverlay(surface Surface, options ...FpsBuilderOption) FpsOverlay {
	if surface == nil {
		panic("overlay: NewFpsOverlay requires a non-nil Surface")
	}
	f := &fpsOverlay{
		mu:       &sync.Mutex{},
		surface:  surface,
		position: [2]float32{8, 16},
	}
	for _, option := range options {
		option(f)
	}
	return f
}

func (f *fpsOverlay) Draw(deltaTime float32) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.accumulator += deltaTime
	f.frames++

	if f.accumulator < fpsRefreshInterval {
		// Below threshold: reuse the previously displayed value. It only
		// needs to be re-drawn when the surface is repainting anyway.
		if f.surface.WantsRedraw() && f.text != "" {
			f.surface.DrawText(f.text, f.position[0], f.position[1], fpsTextColor)
		}
		return
	}

	if !f.surface.WantsRedraw() {
		// Threshold reached but the surface is not repainting: defer. The
		// accumulator keeps the pending refresh for the next frame.
		f.surface.RequestRedraw()
		return
	}

	fps := float32(f.frames) / f.accumulator
	f.text = fmt.Sprintf("%.0f FPS", fps)
	f.accumulator = 0
	f.frames = 0
	f.surface.DrawText(f.text, f.position[0], f.position[1], fpsTextColor)
}

func (f *fpsOverlay) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text
}
