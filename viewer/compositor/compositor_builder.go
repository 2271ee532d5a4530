package compositor

// CompositorBuilderOption is a functional option for configuring a Compositor.
type CompositorBuilderOption func(*compositorImpl)

// WithFpsReadout sets the initial FPS readout state, typically sourced from
// the viewer configuration.
//
// Parameters:
//   - enabled: whether the readout starts enabled
//
// Returns:
//   - CompositorBuilderOption: functional option to set the initial readout state
func WithFpsReadout(enabled bool) CompositorBuilderOption {
	return func(c *compositorImpl) {
		c.showFps = enabled
	}
}
