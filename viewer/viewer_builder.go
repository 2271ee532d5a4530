package viewer

import (
	"github.com/Carmen-Shannon/oxy-view/config"
	"github.com/Carmen-Shannon/oxy-view/viewer/compositor"
	"github.com/Carmen-Shannon/oxy-view/viewer/window"
)

// ViewerBuilderOption is a functional option for configuring a Viewer.
type ViewerBuilderOption func(*viewerImpl)

// WithConfig sets the viewer settings, typically loaded from the config file.
//
// Parameters:
//   - conf: the viewer settings
//
// Returns:
//   - ViewerBuilderOption: functional option to set the settings
func WithConfig(conf config.Config) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.conf = conf
		v.fallbackAdapter = conf.ForceFallbackAdapter
	}
}

// WithWindow supplies an existing window instead of creating one from the
// configuration.
//
// Parameters:
//   - w: the window to render into
//
// Returns:
//   - ViewerBuilderOption: functional option to set the window
func WithWindow(w window.Window) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.window = w
	}
}

// WithBackend supplies a graphics backend instead of creating the webgpu
// backend from the window surface. Used by tests to substitute a fake.
//
// Parameters:
//   - b: the backend to composite with
//
// Returns:
//   - ViewerBuilderOption: functional option to set the backend
func WithBackend(b compositor.Backend) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.backend = b
	}
}

// WithTab sets the initial tab snapshot.
//
// Parameters:
//   - tab: the tab to draw
//
// Returns:
//   - ViewerBuilderOption: functional option to set the tab
func WithTab(tab *compositor.TabState) ViewerBuilderOption {
	return func(v *viewerImpl) {
		if tab != nil {
			v.tab = tab
		}
	}
}
