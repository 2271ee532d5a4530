package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/common"
)

func TestNewCameraDefaults(t *testing.T) {
	cam := NewCamera()

	x, y, z := cam.Up()
	if x != 0 || y != 1 || z != 0 {
		t.Fatalf("expected Y-up default, got (%v, %v, %v)", x, y, z)
	}
	if cam.Controller() != nil {
		t.Fatal("expected no controller attached")
	}

	// Without a controller the view matrix stays identity.
	view := cam.ViewMatrix()
	for i, want := range [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1} {
		if view[i] != want {
			t.Fatalf("view[%d] = %v, want %v", i, view[i], want)
		}
	}
}

func TestCameraTracksController(t *testing.T) {
	ctrl := NewOrbitController()
	cam := NewCamera(WithController(ctrl))

	before := cam.ViewMatrix()

	ctrl.OrbitRight()
	ctrl.OrbitRight()
	cam.Update()
	after := cam.ViewMatrix()

	if before == after {
		t.Fatal("expected view matrix to change after orbiting the controller")
	}
}

func TestCameraViewTransformsPositionToOrigin(t *testing.T) {
	ctrl := NewOrbitController()
	cam := NewCamera(WithController(ctrl))
	cam.Update()

	px, py, pz := ctrl.Position()
	view := cam.ViewMatrix()

	// The camera position maps to the view-space origin.
	vx := view[0]*px + view[4]*py + view[8]*pz + view[12]
	vy := view[1]*px + view[5]*py + view[9]*pz + view[13]
	vz := view[2]*px + view[6]*py + view[10]*pz + view[14]
	const tol = 1e-5
	if math.Abs(float64(vx)) > tol || math.Abs(float64(vy)) > tol || math.Abs(float64(vz)) > tol {
		t.Fatalf("camera position maps to (%v, %v, %v), want origin", vx, vy, vz)
	}
}

func TestCameraUpdateWithoutControllerIsNoop(t *testing.T) {
	cam := NewCamera()
	before := cam.ViewMatrix()
	cam.Update()
	if cam.ViewMatrix() != before {
		t.Fatal("expected Update without a controller to leave the view matrix unchanged")
	}
}

func TestCameraSetController(t *testing.T) {
	cam := NewCamera()
	ctrl := NewAxisController(CameraTypeZ)

	cam.SetController(ctrl)
	if cam.Controller() != ctrl {
		t.Fatal("expected attached controller to be returned")
	}

	cam.Update()
	if cam.ViewMatrix() == NewCamera().ViewMatrix() {
		t.Fatal("expected view matrix to leave identity once a controller is attached")
	}
}

func TestCameraSetUpRecomputesView(t *testing.T) {
	ctrl := NewOrbitController()
	cam := NewCamera(WithController(ctrl))
	cam.Update()
	before := cam.ViewMatrix()

	cam.SetUp(0, 0, 1)
	if cam.ViewMatrix() == before {
		t.Fatal("expected changing the up vector to recompute the view matrix")
	}

	x, y, z := cam.Up()
	if x != 0 || y != 0 || z != 1 {
		t.Fatalf("Up() = (%v, %v, %v), want (0, 0, 1)", x, y, z)
	}
}

func TestCameraInverseViewMatrix(t *testing.T) {
	ctrl := NewOrbitController()
	cam := NewCamera(WithController(ctrl))
	cam.Update()

	// view * inverse must be identity.
	product := common.Mul4(cam.ViewMatrix(), cam.InverseViewMatrix())
	identity := common.Identity()
	const tol = 1e-4
	for i := range product {
		if math.Abs(float64(product[i]-identity[i])) > tol {
			t.Fatalf("product[%d] = %v, want %v", i, product[i], identity[i])
		}
	}

	// The inverse maps the view-space origin back to the camera position.
	inv := cam.InverseViewMatrix()
	px, py, pz := ctrl.Position()
	if math.Abs(float64(inv[12]-px)) > tol ||
		math.Abs(float64(inv[13]-py)) > tol ||
		math.Abs(float64(inv[14]-pz)) > tol {
		t.Fatalf("inverse translation = (%v, %v, %v), want (%v, %v, %v)",
			inv[12], inv[13], inv[14], px, py, pz)
	}
}
