package transform

import "math"

// DiffEpsilon is the absolute per-component difference above which a
// component is flagged as changed.
const DiffEpsilon = 1e-5

// RotationMode selects how rotation is displayed and diffed.
type RotationMode int

const (
	// RotationQuaternion compares and displays the four raw quaternion
	// components. Component-wise quaternion comparison is not
	// rotation-angle-aware: q and -q describe the same rotation but diff as
	// changed. That double-cover ambiguity is a documented property of this
	// mode, kept intentionally.
	RotationQuaternion RotationMode = iota

	// RotationEulerDegrees compares and displays Euler angles in degrees.
	RotationEulerDegrees

	// RotationEulerRadians compares and displays Euler angles in radians.
	RotationEulerRadians
)

// ComponentFlags marks which components changed between a base and a current
// decomposition. Each component is flagged independently.
type ComponentFlags struct {
	// Translation flags the x, y, z translation components.
	Translation [3]bool

	// Rotation flags the rotation components. All four entries are used in
	// quaternion mode; Euler modes use the first three and leave the fourth
	// false.
	Rotation [4]bool

	// Scale flags the x, y, z scale components.
	Scale [3]bool
}

// Any reports whether any component is flagged as changed.
//
// Returns:
//   - bool: true if at least one flag is set
func (f ComponentFlags) Any() bool {
	for _, b := range f.Translation {
		if b {
			return true
		}
	}
	for _, b := range f.Rotation {
		if b {
			return true
		}
	}
	for _, b := range f.Scale {
		if b {
			return true
		}
	}
	return false
}

// Diff compares two decompositions component-wise with DiffEpsilon as the
// absolute threshold. A component is flagged iff |current - base| > epsilon.
//
// Parameters:
//   - base: the reference decomposition
//   - current: the decomposition to compare against the base
//   - mode: how rotation components are compared
//
// Returns:
//   - ComponentFlags: per-component changed flags
func Diff(base, current Decomposed, mode RotationMode) ComponentFlags {
	var f ComponentFlags
	for i := 0; i < 3; i++ {
		f.Translation[i] = changed(base.Translation[i], current.Translation[i])
		f.Scale[i] = changed(base.Scale[i], current.Scale[i])
	}

	switch mode {
	case RotationEulerDegrees, RotationEulerRadians:
		be := EulerFromQuat(base.Rotation)
		ce := EulerFromQuat(current.Rotation)
		if mode == RotationEulerDegrees {
			be = eulerToDegrees(be)
			ce = eulerToDegrees(ce)
		}
		for i := 0; i < 3; i++ {
			f.Rotation[i] = changed(be[i], ce[i])
		}
	default:
		for i := 0; i < 4; i++ {
			f.Rotation[i] = changed(base.Rotation[i], current.Rotation[i])
		}
	}
	return f
}

// DiffState is the model behind the matrix inspection widget's diff display:
// a base decomposition snapshot plus an optional current decomposition taken
// from an animated matrix.
type DiffState struct {
	// Base is the reference snapshot.
	Base Decomposed

	// Current is the animated decomposition, or nil when no animated matrix
	// is being tracked.
	Current *Decomposed

	// Mode selects the rotation comparison and display mode.
	Mode RotationMode
}

// NewDiffState decomposes the base matrix and returns a diff state with no
// current decomposition.
//
// Parameters:
//   - base: the base matrix, flat column-major
//   - mode: rotation display mode
//
// Returns:
//   - *DiffState: the new diff state
func NewDiffState(base [16]float32, mode RotationMode) *DiffState {
	return &DiffState{
		Base: Decompose(base),
		Mode: mode,
	}
}

// Update decomposes the animated matrix into the current snapshot.
//
// Parameters:
//   - m: the animated matrix, flat column-major
func (s *DiffState) Update(m [16]float32) {
	d := Decompose(m)
	s.Current = &d
}

// Reset clears the current decomposition, leaving only the base.
func (s *DiffState) Reset() {
	s.Current = nil
}

// Flags computes the per-component changed flags between base and current.
// Returns zero flags when no current decomposition is tracked.
//
// Returns:
//   - ComponentFlags: per-component changed flags
func (s *DiffState) Flags() ComponentFlags {
	if s.Current == nil {
		return ComponentFlags{}
	}
	return Diff(s.Base, *s.Current, s.Mode)
}

// EulerFromQuat converts a unit quaternion (x, y, z, w) to Euler angles in
// radians: rotation about X (roll), Y (pitch), Z (yaw).
//
// Parameters:
//   - q: the unit quaternion
//
// Returns:
//   - [3]float32: angles about the X, Y, Z axes in radians
func EulerFromQuat(q [4]float32) [3]float32 {
	x, y, z, w := float64(q[0]), float64(q[1]), float64(q[2]), float64(q[3])

	// X axis
	sinX := 2 * (w*x + y*z)
	cosX := 1 - 2*(x*x+y*y)
	rx := math.Atan2(sinX, cosX)

	// Y axis, clamped for numerical safety at the gimbal poles
	sinY := 2 * (w*y - z*x)
	if sinY > 1 {
		sinY = 1
	} else if sinY < -1 {
		sinY = -1
	}
	ry := math.Asin(sinY)

	// Z axis
	sinZ := 2 * (w*z + x*y)
	cosZ := 1 - 2*(y*y+z*z)
	rz := math.Atan2(sinZ, cosZ)

	return [3]float32{float32(rx), float32(ry), float32(rz)}
}

func eulerToDegrees(e [3]float32) [3]float32 {
	const degPerRad = 180.0 / math.Pi
	return [3]float32{e[0] * degPerRad, e[1] * degPerRad, e[2] * degPerRad}
}

func changed(a, b float32) bool {
	return math.Abs(float64(b-a)) > DiffEpsilon
}
