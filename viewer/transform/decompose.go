// package transform extracts translation, rotation, and scale from 4x4 affine
// transformation matrices for display in the matrix inspection widget, and
// computes per-component change flags between two snapshots.
//
// The decomposition is explicit and fully specified rather than delegated to
// an opaque math-library routine: scale is measured as the length of each
// basis column, the determinant sign is folded into the X scale so the
// remaining basis is a proper rotation, and the quaternion is constructed
// from the scale-normalized basis. Matrices with shear are outside the model:
// they decompose without error but the reported scale and rotation are
// approximations.
package transform

import (
	"log"
	"math"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// DegeneracyEpsilon is the absolute determinant threshold below which a
// matrix is flagged as degenerate (at least one scale factor ≈ 0).
const DegeneracyEpsilon = 1e-5

// Decomposed holds the translation, rotation, and scale extracted from a 4x4
// affine matrix. It is a derived snapshot: recomputed from a source matrix on
// every update, never mutated in place.
type Decomposed struct {
	// Translation is the matrix translation column (world units).
	Translation [3]float32

	// Rotation is a unit quaternion in (x, y, z, w) component order.
	Rotation [4]float32

	// Scale is the per-axis scale measured from the basis column lengths.
	Scale [3]float32

	// Degenerate is true when the matrix determinant magnitude is below
	// DegeneracyEpsilon. The other fields still hold best-effort values but
	// are unreliable for display.
	Degenerate bool
}

// Decompose extracts translation, rotation, and scale from a column-major 4x4
// affine matrix. Never fails: degenerate matrices set the Degenerate flag and
// still populate every field with best-effort values.
//
// Decomposition is deterministic — identical inputs yield bit-identical
// results, with no hidden state.
//
// Parameters:
//   - m: the source matrix, flat column-major
//
// Returns:
//   - Decomposed: the extracted components
func Decompose(m [16]float32) Decomposed {
	var d Decomposed
	d.Translation = [3]float32{m[12], m[13], m[14]}

	sx := basisLength(m[0], m[1], m[2])
	sy := basisLength(m[4], m[5], m[6])
	sz := basisLength(m[8], m[9], m[10])

	det := common.Det3(m)
	d.Degenerate = math.Abs(float64(det)) < DegeneracyEpsilon
	if d.Degenerate {
		log.Printf("degenerate transform matrix (det=%g), decomposition is unreliable", det)
	}

	// A negative determinant means the basis is left-handed. Fold the
	// reflection into the X scale so the normalized basis is a proper
	// rotation.
	if det < 0 {
		sx = -sx
	}
	d.Scale = [3]float32{sx, sy, sz}

	// Divide the extracted scale out of each basis column. Near-zero scale
	// factors are left untouched so degenerate matrices still produce finite
	// quaternion components.
	ix, iy, iz := safeInv(sx), safeInv(sy), safeInv(sz)
	r := [9]float32{
		m[0] * ix, m[1] * ix, m[2] * ix,
		m[4] * iy, m[5] * iy, m[6] * iy,
		m[8] * iz, m[9] * iz, m[10] * iz,
	}
	d.Rotation = quatFromBasis(r)
	return d
}

// Recompose builds the column-major matrix translate ∘ rotate ∘ scale from a
// decomposition. For matrices without shear this is the inverse of Decompose
// up to numerical tolerance.
//
// Parameters:
//   - d: the decomposition to recombine
//
// Returns:
//   - [16]float32: the recombined matrix
func Recompose(d Decomposed) [16]float32 {
	x, y, z, w := d.Rotation[0], d.Rotation[1], d.Rotation[2], d.Rotation[3]

	r00 := 1 - 2*(y*y+z*z)
	r01 := 2 * (x*y - z*w)
	r02 := 2 * (x*z + y*w)
	r10 := 2 * (x*y + z*w)
	r11 := 1 - 2*(x*x+z*z)
	r12 := 2 * (y*z - x*w)
	r20 := 2 * (x*z - y*w)
	r21 := 2 * (y*z + x*w)
	r22 := 1 - 2*(x*x+y*y)

	var out [16]float32
	out[0], out[1], out[2] = r00*d.Scale[0], r10*d.Scale[0], r20*d.Scale[0]
	out[4], out[5], out[6] = r01*d.Scale[1], r11*d.Scale[1], r21*d.Scale[1]
	out[8], out[9], out[10] = r02*d.Scale[2], r12*d.Scale[2], r22*d.Scale[2]
	out[12], out[13], out[14] = d.Translation[0], d.Translation[1], d.Translation[2]
	out[15] = 1
	return out
}

// UniformScale reports whether the three scale components are mutually within
// DegeneracyEpsilon of each other. Callers use this to collapse the scale
// display to a single value.
//
// Parameters:
//   - s: the three scale components
//
// Returns:
//   - bool: true if the scale is uniform within tolerance
func UniformScale(s [3]float32) bool {
	return math.Abs(float64(s[0]-s[1])) < DegeneracyEpsilon &&
		math.Abs(float64(s[1]-s[2])) < DegeneracyEpsilon &&
		math.Abs(float64(s[0]-s[2])) < DegeneracyEpsilon
}

// IsDegenerate reports whether the matrix determinant magnitude is below
// DegeneracyEpsilon without performing a full decomposition.
//
// Parameters:
//   - m: the source matrix, flat column-major
//
// Returns:
//   - bool: true if the matrix is degenerate
func IsDegenerate(m [16]float32) bool {
	return math.Abs(float64(common.Det3(m))) < DegeneracyEpsilon
}

// basisLength returns the euclidean length of a basis column.
func basisLength(x, y, z float32) float32 {
	return float32(math.Sqrt(float64(x*x + y*y + z*z)))
}

// safeInv returns 1/s, or 1 when s is too small to divide by. Keeps the
// degenerate path free of infinities.
func safeInv(s float32) float32 {
	if math.Abs(float64(s)) < 1e-20 {
		return 1
	}
	return 1 / s
}

// quatFromBasis converts a normalized column-major 3x3 rotation basis to a
// unit quaternion (x, y, z, w) using the trace method with the standard
// largest-diagonal fallbacks for numerical stability.
func quatFromBasis(r [9]float32) [4]float32 {
	// rij = row i, column j
	r00, r10, r20 := r[0], r[1], r[2]
	r01, r11, r21 := r[3], r[4], r[5]
	r02, r12, r22 := r[6], r[7], r[8]

	trace := r00 + r11 + r22
	var x, y, z, w float32
	switch {
	case trace > 0:
		s := float32(math.Sqrt(float64(trace+1))) * 2
		w = 0.25 * s
		x = (r21 - r12) / s
		y = (r02 - r20) / s
		z = (r10 - r01) / s
	case r00 > r11 && r00 > r22:
		s := float32(math.Sqrt(float64(1+r00-r11-r22))) * 2
		w = (r21 - r12) / s
		x = 0.25 * s
		y = (r01 + r10) / s
		z = (r02 + r20) / s
	case r11 > r22:
		s := float32(math.Sqrt(float64(1+r11-r00-r22))) * 2
		w = (r02 - r20) / s
		x = (r01 + r10) / s
		y = 0.25 * s
		z = (r12 + r21) / s
	default:
		s := float32(math.Sqrt(float64(1+r22-r00-r11))) * 2
		w = (r10 - r01) / s
		x = (r02 + r20) / s
		y = (r12 + r21) / s
		z = 0.25 * s
	}
	return [4]float32{x, y, z, w}
}
