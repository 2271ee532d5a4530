package overlay

import "github.com/Carmen-Shannon/oxy-view/viewer/camera"

// HudBuilderOption is a functional option for configuring a HudOverlay.
type HudBuilderOption func(*hudOverlay)

// WithActiveCamera sets the function reporting the active viewport's camera
// type, used to pick the selected icon variant.
//
// Parameters:
//   - fn: function returning the active camera type
//
// Returns:
//   - HudBuilderOption: functional option to set the active-camera source
func WithActiveCamera(fn func() camera.CameraType) HudBuilderOption {
	return func(h *hudOverlay) {
		if fn != nil {
			h.activeCamera = fn
		}
	}
}

// WithFpsEnabled sets the function reporting whether the FPS readout is on,
// which selects the FPS-toggle icon.
//
// Parameters:
//   - fn: function returning the FPS readout state
//
// Returns:
//   - HudBuilderOption: functional option to set the FPS-state source
func WithFpsEnabled(fn func() bool) HudBuilderOption {
	return func(h *hudOverlay) {
		if fn != nil {
			h.fpsEnabled = fn
		}
	}
}
