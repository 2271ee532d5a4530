package window

// WindowBuilderOption is a functional option for configuring a viewerWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *viewerWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *viewerWindow) {
		w.title = title
	}
}

// WithSize sets the initial window dimensions.
//
// Parameters:
//   - width, height: initial dimensions in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *viewerWindow) {
		w.width = width
		w.height = height
	}
}

// WithMinSize sets the minimum window dimensions during resize.
//
// Parameters:
//   - width, height: minimum dimensions in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinSize(width, height int) WindowBuilderOption {
	return func(w *viewerWindow) {
		w.minWidth = width
		w.minHeight = height
	}
}
