package transform

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
)

// rotationZ returns a column-major rotation about Z by the given angle.
func rotationZ(angle float32) [16]float32 {
	c := float32(math.Cos(float64(angle)))
	s := float32(math.Sin(float64(angle)))
	m := common.Identity()
	m[0], m[1] = c, s
	m[4], m[5] = -s, c
	return m
}

// trs builds translate ∘ rotateZ ∘ scale as a column-major matrix.
func trs(tx, ty, tz, angle, sx, sy, sz float32) [16]float32 {
	s := common.Identity()
	s[0], s[5], s[10] = sx, sy, sz
	m := common.Mul4(rotationZ(angle), s)
	m[12], m[13], m[14] = tx, ty, tz
	return m
}

func absDiff(a, b float32) float64 {
	return math.Abs(float64(a - b))
}

func TestDecomposeTranslationAndScale(t *testing.T) {
	m := trs(1, -2, 3, 0, 2, 3, 4)
	d := Decompose(m)

	if d.Translation != [3]float32{1, -2, 3} {
		t.Fatalf("translation = %v, want [1 -2 3]", d.Translation)
	}
	want := [3]float32{2, 3, 4}
	for i := 0; i < 3; i++ {
		if absDiff(d.Scale[i], want[i]) > 1e-5 {
			t.Fatalf("scale[%d] = %v, want %v", i, d.Scale[i], want[i])
		}
	}
	// No rotation: quaternion should be identity.
	if absDiff(d.Rotation[3], 1) > 1e-5 {
		t.Fatalf("rotation = %v, want identity quaternion", d.Rotation)
	}
	if d.Degenerate {
		t.Fatal("unexpected degenerate flag")
	}
}

func TestDecomposeRotation(t *testing.T) {
	m := rotationZ(float32(math.Pi / 2))
	d := Decompose(m)

	half := float32(math.Sqrt2 / 2)
	want := [4]float32{0, 0, half, half}
	for i := 0; i < 4; i++ {
		if absDiff(d.Rotation[i], want[i]) > 1e-5 {
			t.Fatalf("rotation = %v, want %v", d.Rotation, want)
		}
	}
	for i := 0; i < 3; i++ {
		if absDiff(d.Scale[i], 1) > 1e-5 {
			t.Fatalf("scale = %v, want unit", d.Scale)
		}
	}
}

func TestRecomposeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		m    [16]float32
	}{
		{"identity", common.Identity()},
		{"translation only", trs(5, 6, 7, 0, 1, 1, 1)},
		{"rotation only", rotationZ(0.7)},
		{"nonuniform scale", trs(0, 0, 0, 0, 2, 0.5, 3)},
		{"combined", trs(-1, 2, -3, 1.2, 1.5, 2.5, 0.75)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Recompose(Decompose(tt.m))
			for i := 0; i < 16; i++ {
				if absDiff(out[i], tt.m[i]) > 1e-4 {
					t.Fatalf("element %d: got %v, want %v", i, out[i], tt.m[i])
				}
			}
		})
	}
}

func TestDecomposeDeterministic(t *testing.T) {
	m := trs(0.1, 0.2, 0.3, 2.1, 1.1, 0.9, 1.3)
	a := Decompose(m)
	b := Decompose(m)
	if a != b {
		t.Fatalf("identical inputs decomposed differently: %+v vs %+v", a, b)
	}
}

func TestDecomposeNegativeDeterminant(t *testing.T) {
	m := common.Identity()
	m[0] = -2 // mirror along X

	d := Decompose(m)
	if absDiff(d.Scale[0], -2) > 1e-5 {
		t.Fatalf("scale[0] = %v, want -2", d.Scale[0])
	}
	if absDiff(d.Rotation[3], 1) > 1e-5 {
		t.Fatalf("rotation = %v, want identity after folding reflection", d.Rotation)
	}
	out := Recompose(d)
	for i := 0; i < 16; i++ {
		if absDiff(out[i], m[i]) > 1e-4 {
			t.Fatalf("element %d: got %v, want %v", i, out[i], m[i])
		}
	}
}

func TestDegeneracyThreshold(t *testing.T) {
	uniform := func(s float32) [16]float32 {
		m := common.Identity()
		m[0], m[5], m[10] = s, s, s
		return m
	}

	tests := []struct {
		name string
		m    [16]float32
		want bool
	}{
		{"identity", common.Identity(), false},
		{"zero X scale", trs(0, 0, 0, 0, 0, 1, 1), true},
		{"zero matrix", [16]float32{}, true},
		// det = s^3: 0.02^3 = 8e-6 is under the threshold, 0.03^3 = 2.7e-5 is over.
		{"tiny uniform scale", uniform(0.02), true},
		{"small uniform scale", uniform(0.03), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDegenerate(tt.m); got != tt.want {
				t.Fatalf("IsDegenerate = %v, want %v", got, tt.want)
			}
			if got := Decompose(tt.m).Degenerate; got != tt.want {
				t.Fatalf("Decompose().Degenerate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecomposeDegenerateStaysFinite(t *testing.T) {
	d := Decompose([16]float32{})
	for i, r := range d.Rotation {
		if math.IsNaN(float64(r)) || math.IsInf(float64(r), 0) {
			t.Fatalf("rotation[%d] = %v, want finite", i, r)
		}
	}
}

func TestUniformScale(t *testing.T) {
	tests := []struct {
		name string
		s    [3]float32
		want bool
	}{
		{"unit", [3]float32{1, 1, 1}, true},
		{"uniform non-unit", [3]float32{2.5, 2.5, 2.5}, true},
		{"within tolerance", [3]float32{1, 1 + 2e-6, 1 - 2e-6}, true},
		{"nonuniform", [3]float32{1, 2, 1}, false},
		{"barely nonuniform", [3]float32{1, 1 + 2e-5, 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UniformScale(tt.s); got != tt.want {
				t.Fatalf("UniformScale(%v) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}
