package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-view/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	up [3]float32

	viewMatrix        [16]float32
	inverseViewMatrix [16]float32

	controller CameraController
}

// Camera computes the view transform from an attached CameraController each
// frame via Update(). Projection is owned by the viewport compositor, which
// derives it from each viewport's pixel aspect ratio; the camera only
// supplies the world-to-view transform consumed by scene renderers.
type Camera interface {
	// Up returns the camera's up vector.
	//
	// Returns:
	//   - x, y, z: up vector components
	Up() (x, y, z float32)

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// InverseViewMatrix returns the camera-to-world transform, used by scene
	// renderers for effects that need the camera's world placement (skybox
	// orientation, billboards, specular terms).
	//
	// Returns:
	//   - [16]float32: the inverse view matrix
	InverseViewMatrix() [16]float32

	// Controller returns the attached CameraController.
	// Returns nil if no controller is attached.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// Update reads position/target from the controller and recomputes the
	// view matrix. Should be called once per frame before rendering.
	// If no controller is attached, this method does nothing.
	Update()

	// SetUp sets the camera's up vector.
	//
	// Parameters:
	//   - x, y, z: up vector components
	SetUp(x, y, z float32)

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with a Y-up orientation. A controller must
// be attached via SetController or the WithController option before the view
// matrix tracks anything.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                &sync.Mutex{},
		up:                [3]float32{0, 1, 0},
		viewMatrix:        common.Identity(),
		inverseViewMatrix: common.Identity(),
	}
	for _, option := range options {
		option(c)
	}
	if c.controller != nil {
		c.updateMatrices()
	}
	return c
}

func (c *cameraImpl) Up() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up[0], c.up[1], c.up[2]
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) InverseViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseViewMatrix
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return
	}
	c.updateMatrices()
}

func (c *cameraImpl) SetUp(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = [3]float32{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
}

// updateMatrices recalculates the view matrix from the controller's position
// and target. This is a no-op when the controller is nil.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.controller == nil {
		return
	}

	px, py, pz := c.controller.Position()
	tx, ty, tz := c.controller.Target()

	c.viewMatrix = common.LookAt(
		[3]float32{px, py, pz},
		[3]float32{tx, ty, tz},
		c.up,
	)
	if inv, ok := common.Invert4(c.viewMatrix); ok {
		c.inverseViewMatrix = inv
	} else {
		// A look-at view is orthonormal and always invertible; a degenerate
		// controller state (eye == target) is the only way here.
		c.inverseViewMatrix = common.Identity()
	}
}
