package common

// Virtual key codes for the viewer's keyboard shortcuts.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyF = 70 // F key (ASCII) — toggle FPS readout
	KeyO = 79 // O key (ASCII) — orbit camera
	KeyX = 88 // X key (ASCII) — X axis view
	KeyY = 89 // Y key (ASCII) — Y axis view
	KeyZ = 90 // Z key (ASCII) — Z axis view

	Key1 = 49 // 1 key (ASCII) — activate viewport 1
	Key2 = 50 // 2 key (ASCII)
	Key3 = 51 // 3 key (ASCII)
	Key4 = 52 // 4 key (ASCII)

	KeyEsc = 256 // Escape key (GLFW) — close the viewer
)
