package camera

import (
	"math"
	"testing"
)

func dist(x1, y1, z1, x2, y2, z2 float32) float64 {
	dx := float64(x1 - x2)
	dy := float64(y1 - y2)
	dz := float64(z1 - z2)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func TestOrbitControllerDefaults(t *testing.T) {
	cc := NewOrbitController()

	if cc.Type() != CameraTypeOrbit {
		t.Fatalf("Type = %v, want orbit", cc.Type())
	}
	x, y, z := cc.Position()
	tx, ty, tz := cc.Target()
	if tx != 0 || ty != 0 || tz != 0 {
		t.Fatalf("target = (%v, %v, %v), want origin", tx, ty, tz)
	}
	if d := dist(x, y, z, tx, ty, tz); math.Abs(d-5) > 1e-4 {
		t.Fatalf("distance to target = %v, want 5", d)
	}
}

func TestOrbitKeepsRadius(t *testing.T) {
	cc := NewOrbitController()
	for i := 0; i < 50; i++ {
		cc.OrbitRight()
		cc.OrbitUp()
	}
	x, y, z := cc.Position()
	if d := dist(x, y, z, 0, 0, 0); math.Abs(d-5) > 1e-3 {
		t.Fatalf("orbiting changed the radius: %v", d)
	}
}

func TestOrbitChangesPosition(t *testing.T) {
	cc := NewOrbitController()
	x0, y0, z0 := cc.Position()
	cc.OrbitLeft()
	x1, y1, z1 := cc.Position()
	if x0 == x1 && y0 == y1 && z0 == z1 {
		t.Fatal("orbit input did not move the camera")
	}
}

func TestZoomClampsToBounds(t *testing.T) {
	cc := NewOrbitController(WithRadiusBounds(1, 10))

	for i := 0; i < 100; i++ {
		cc.Zoom(1) // zoom in
	}
	x, y, z := cc.Position()
	if d := dist(x, y, z, 0, 0, 0); math.Abs(d-1) > 1e-3 {
		t.Fatalf("distance after zooming in = %v, want clamped to 1", d)
	}

	for i := 0; i < 100; i++ {
		cc.Zoom(-1) // zoom out
	}
	x, y, z = cc.Position()
	if d := dist(x, y, z, 0, 0, 0); math.Abs(d-10) > 1e-3 {
		t.Fatalf("distance after zooming out = %v, want clamped to 10", d)
	}
}

func TestElevationClamped(t *testing.T) {
	cc := NewOrbitController()
	for i := 0; i < 200; i++ {
		cc.OrbitUp()
	}
	_, y, _ := cc.Position()
	if float64(y) >= 5 {
		t.Fatalf("elevation reached the pole: y = %v", y)
	}
}

func TestAxisControllersIgnoreOrbit(t *testing.T) {
	tests := []struct {
		name string
		t    CameraType
	}{
		{"x view", CameraTypeX},
		{"y view", CameraTypeY},
		{"z view", CameraTypeZ},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := NewAxisController(tt.t)
			if cc.Type() != tt.t {
				t.Fatalf("Type = %v, want %v", cc.Type(), tt.t)
			}

			x0, y0, z0 := cc.Position()
			cc.OrbitLeft()
			cc.OrbitUp()
			cc.OrbitRight()
			cc.OrbitDown()
			x1, y1, z1 := cc.Position()
			if x0 != x1 || y0 != y1 || z0 != z1 {
				t.Fatal("axis-locked controller moved on orbit input")
			}

			// Zoom stays available.
			cc.Zoom(1)
			x2, y2, z2 := cc.Position()
			if x1 == x2 && y1 == y2 && z1 == z2 {
				t.Fatal("axis-locked controller ignored zoom")
			}
		})
	}
}

func TestAxisControllerDirections(t *testing.T) {
	x, y, z := NewAxisController(CameraTypeX).Position()
	if math.Abs(float64(x)-5) > 1e-3 || math.Abs(float64(y)) > 1e-3 || math.Abs(float64(z)) > 1e-3 {
		t.Fatalf("X view position = (%v, %v, %v), want on +X axis", x, y, z)
	}

	x, y, z = NewAxisController(CameraTypeY).Position()
	if math.Abs(float64(y)-5) > 0.05 {
		t.Fatalf("Y view position = (%v, %v, %v), want on +Y axis", x, y, z)
	}

	x, y, z = NewAxisController(CameraTypeZ).Position()
	if math.Abs(float64(z)-5) > 1e-3 || math.Abs(float64(x)) > 1e-3 || math.Abs(float64(y)) > 1e-3 {
		t.Fatalf("Z view position = (%v, %v, %v), want on +Z axis", x, y, z)
	}
}

func TestAxisControllerFallsBackToOrbit(t *testing.T) {
	cc := NewAxisController(CameraTypeFreeLook)
	if cc.Type() != CameraTypeOrbit {
		t.Fatalf("Type = %v, want orbit fallback", cc.Type())
	}
}

func TestPanMovesTargetAndPosition(t *testing.T) {
	cc := NewOrbitController()
	tx0, ty0, tz0 := cc.Target()
	x0, y0, z0 := cc.Position()

	cc.PanRight(2)
	cc.PanUp(1)

	tx1, ty1, tz1 := cc.Target()
	x1, y1, z1 := cc.Position()
	if tx0 == tx1 && ty0 == ty1 && tz0 == tz1 {
		t.Fatal("pan did not move the target")
	}
	// Pan preserves the orbit offset between position and target.
	before := dist(x0, y0, z0, tx0, ty0, tz0)
	after := dist(x1, y1, z1, tx1, ty1, tz1)
	if math.Abs(before-after) > 1e-3 {
		t.Fatalf("pan changed the orbit distance: %v -> %v", before, after)
	}
}

func TestSetTargetRecomputesPosition(t *testing.T) {
	cc := NewOrbitController()
	cc.SetTarget(10, 0, 0)
	x, y, z := cc.Position()
	if d := dist(x, y, z, 10, 0, 0); math.Abs(d-5) > 1e-3 {
		t.Fatalf("distance to moved target = %v, want 5", d)
	}
}

func TestCameraTypeStrings(t *testing.T) {
	tests := []struct {
		t    CameraType
		want string
	}{
		{CameraTypeOrbit, "orbit"},
		{CameraTypeX, "x"},
		{CameraTypeY, "y"},
		{CameraTypeZ, "z"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Fatalf("String(%d) = %q, want %q", int(tt.t), got, tt.want)
		}
	}
}
