package compositor

import "github.com/cogentcore/webgpu/wgpu"

// WgpuBackendOption is a functional option for configuring the webgpu
// backend during creation.
type WgpuBackendOption func(*wgpuBackendImpl)

// WithVSync controls presentation timing. Enabled (the default) uses FIFO
// presentation locked to the display refresh; disabled presents immediately,
// uncapping the frame rate.
//
// Parameters:
//   - enabled: whether to synchronize presentation with the display
//
// Returns:
//   - WgpuBackendOption: the option to apply
func WithVSync(enabled bool) WgpuBackendOption {
	return func(b *wgpuBackendImpl) {
		if enabled {
			b.presentMode = wgpu.PresentModeFifo
		} else {
			b.presentMode = wgpu.PresentModeImmediate
		}
	}
}
