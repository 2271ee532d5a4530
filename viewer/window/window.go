// package window provides platform windowing and input event handling for
// the viewer. It wraps the platform-specific implementation (GLFW) behind a
// common interface.
package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// MouseButton identifies a mouse button in click callbacks.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Window provides platform windowing and input event handling for the
// viewer's render surface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is
	// resized. Dimensions are in pixels, suitable for surface configuration.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in)
	SetScrollCallback(callback func(delta float32))

	// SetPointerMoveCallback sets the callback for pointer movement, in
	// surface pixels. Drives HUD hover tracking and camera dragging.
	//
	// Parameters:
	//   - callback: function receiving the pointer position
	SetPointerMoveCallback(callback func(x, y float32))

	// SetMouseDownCallback sets the callback for mouse button presses.
	//
	// Parameters:
	//   - callback: function receiving the button and pointer position
	SetMouseDownCallback(callback func(button MouseButton, x, y float32))

	// SetMouseUpCallback sets the callback for mouse button releases.
	//
	// Parameters:
	//   - callback: function receiving the button and pointer position
	SetMouseUpCallback(callback func(button MouseButton, x, y float32))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for
	// creating a WebGPU surface on this window. The descriptor is
	// platform-appropriate and created by the wgpuglfw bridge.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the surface descriptor, or nil if the window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop. Blocks until the window
	// is closed, calling the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// viewerWindow is the implementation of the Window interface. Holds window
// configuration, platform state, and event callbacks.
type viewerWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// width and height are the current framebuffer dimensions in pixels.
	width  int
	height int

	// minWidth and minHeight are the minimum window dimensions during resize.
	minWidth  int
	minHeight int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the framebuffer is resized.
	onResize func(width, height int)

	// onScroll is called for mouse wheel events.
	onScroll func(delta float32)

	// onPointerMove is called when the pointer moves within the window.
	onPointerMove func(x, y float32)

	// onMouseDown is called when a mouse button is pressed.
	onMouseDown func(button MouseButton, x, y float32)

	// onMouseUp is called when a mouse button is released.
	onMouseUp func(button MouseButton, x, y float32)

	// onKeyDown is called when a key is pressed.
	onKeyDown func(keyCode uint32)

	// onKeyUp is called when a key is released.
	onKeyUp func(keyCode uint32)
}

var _ Window = &viewerWindow{}

// NewWindow creates a new Window with the specified options. Applies default
// values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &viewerWindow{
		title:     "Model Viewer",
		width:     1280,
		height:    720,
		minWidth:  480,
		minHeight: 320,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *viewerWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *viewerWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *viewerWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *viewerWindow) SetPointerMoveCallback(callback func(x, y float32)) {
	w.onPointerMove = callback
}

func (w *viewerWindow) SetMouseDownCallback(callback func(button MouseButton, x, y float32)) {
	w.onMouseDown = callback
}

func (w *viewerWindow) SetMouseUpCallback(callback func(button MouseButton, x, y float32)) {
	w.onMouseUp = callback
}

func (w *viewerWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *viewerWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *viewerWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *viewerWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *viewerWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *viewerWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *viewerWindow) Width() int {
	return w.width
}

func (w *viewerWindow) Height() int {
	return w.height
}
