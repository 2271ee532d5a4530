package overlay

// FpsBuilderOption is a functional option for configuring an FpsOverlay.
type FpsBuilderOption func(*fpsOverlay)

// WithPosition sets the baseline origin of the readout in surface pixels.
//
// Parameters:
//   - x, y: baseline origin in surface pixels
//
// Returns:
//   - FpsBuilderOption: functional option to set the readout position
func WithPosition(x, y float32) FpsBuilderOption {
	return func(f *fpsOverlay) {
		f.position = [2]float32{x, y}
	}
}
