package camera

// CameraType tags the control style of a camera controller. The HUD overlay
// uses this tag to highlight the icon of the currently active camera mode.
type CameraType int

const (
	// CameraTypeOrbit is a free orbit camera around a pivot point.
	CameraTypeOrbit CameraType = iota

	// CameraTypeX looks down the world X axis at the target.
	CameraTypeX

	// CameraTypeY looks down the world Y axis at the target.
	CameraTypeY

	// CameraTypeZ looks down the world Z axis at the target.
	CameraTypeZ

	// CameraTypeFreeLook is a first-person style camera.
	CameraTypeFreeLook
)

// String returns the lower-case name of the camera type, matching the HUD
// icon naming convention.
func (t CameraType) String() string {
	switch t {
	case CameraTypeX:
		return "x"
	case CameraTypeY:
		return "y"
	case CameraTypeZ:
		return "z"
	case CameraTypeFreeLook:
		return "freelook"
	default:
		return "orbit"
	}
}

// CameraController is the camera control capability consumed by the viewport
// compositor. Controllers own positional state (position, target) and expose
// a type tag; the scene renderer reads the view transform through an attached
// Camera. Read-only from the compositor's perspective.
type CameraController interface {
	// Type returns the controller's camera-type tag.
	//
	// Returns:
	//   - CameraType: the control style of this controller
	Type() CameraType

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetTarget sets the look-at/pivot point and recomputes position from spherical coordinates.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// Zoom adjusts the camera's distance by modifying the orbit radius.
	// Positive delta zooms in (closer to target).
	//
	// Parameters:
	//   - delta: zoom amount scaled by the zoom speed
	Zoom(delta float32)

	// OrbitLeft rotates the camera left around the target by one orbit speed step.
	// No-op for axis-locked controllers.
	OrbitLeft()

	// OrbitRight rotates the camera right around the target by one orbit speed step.
	// No-op for axis-locked controllers.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit speed step, clamped to max elevation.
	// No-op for axis-locked controllers.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit speed step, clamped to min elevation.
	// No-op for axis-locked controllers.
	OrbitDown()

	// PanRight translates the camera and target along the camera's local right axis.
	//
	// Parameters:
	//   - delta: pan amount scaled by the pan speed
	PanRight(delta float32)

	// PanUp translates the camera and target along the camera's local up axis.
	//
	// Parameters:
	//   - delta: pan amount scaled by the pan speed
	PanUp(delta float32)
}
