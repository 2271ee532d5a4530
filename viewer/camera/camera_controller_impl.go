package camera

import (
	"math"
	"sync"
)

// cameraControllerImpl is the single implementation of CameraController.
// Orbit methods modify spherical coordinates relative to the target and
// recompute position; pan methods translate both position and target along
// local camera axes, preserving the orbit relationship. Axis-locked
// controllers (types X, Y, Z) pin the spherical angles and ignore orbit
// input so the view stays aligned with its world axis.
type cameraControllerImpl struct {
	mu *sync.Mutex

	camType CameraType

	// Camera position (computed from target + spherical coords)
	position [3]float32
	target   [3]float32

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	// Orbit constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed float32
	zoomSpeed  float32
	panSpeed   float32

	// axisLocked pins azimuth/elevation for the X/Y/Z view types.
	axisLocked bool
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewOrbitController creates a new orbit-style camera controller with
// sensible defaults for inspecting a model centered at the origin.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewOrbitController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:      &sync.Mutex{},
		camType: CameraTypeOrbit,
		target:  [3]float32{0, 0, 0},

		radius:    5.0,
		azimuth:   0.0,
		elevation: float32(math.Pi / 6),

		minRadius:    0.05,
		maxRadius:    500.0,
		minElevation: float32(-math.Pi/2 + 0.05),
		maxElevation: float32(math.Pi/2 - 0.05),

		orbitSpeed: 0.03,
		zoomSpeed:  0.5,
		panSpeed:   1.0,
	}

	for _, option := range options {
		option(cc)
	}

	cc.updatePosition()
	return cc
}

// NewAxisController creates a controller locked to one of the world-axis
// views (types X, Y, or Z). The view direction is pinned; only zoom and pan
// remain available. Any other type falls back to an orbit controller.
//
// Parameters:
//   - t: the axis view type (CameraTypeX, CameraTypeY, or CameraTypeZ)
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created axis-locked controller
func NewAxisController(t CameraType, options ...CameraControllerOption) CameraController {
	var azimuth, elevation float32
	switch t {
	case CameraTypeX:
		azimuth = float32(math.Pi / 2)
	case CameraTypeY:
		elevation = float32(math.Pi/2 - 1e-3)
	case CameraTypeZ:
		// defaults: looking down -Z from +Z
	default:
		return NewOrbitController(options...)
	}

	cc := &cameraControllerImpl{
		mu:      &sync.Mutex{},
		camType: t,
		target:  [3]float32{0, 0, 0},

		radius:    5.0,
		azimuth:   azimuth,
		elevation: elevation,

		minRadius:    0.05,
		maxRadius:    500.0,
		minElevation: float32(-math.Pi / 2),
		maxElevation: float32(math.Pi / 2),

		orbitSpeed: 0,
		zoomSpeed:  0.5,
		panSpeed:   1.0,

		axisLocked: true,
	}

	for _, option := range options {
		option(cc)
	}

	cc.updatePosition()
	return cc
}

// updatePosition recomputes the camera position from spherical coordinates.
// Must be called whenever radius, azimuth, elevation, or target changes.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cosElev := float32(math.Cos(float64(cc.elevation)))
	sinElev := float32(math.Sin(float64(cc.elevation)))
	cosAzim := float32(math.Cos(float64(cc.azimuth)))
	sinAzim := float32(math.Sin(float64(cc.azimuth)))

	cc.position[0] = cc.target[0] + cc.radius*cosElev*sinAzim
	cc.position[1] = cc.target[1] + cc.radius*sinElev
	cc.position[2] = cc.target[2] + cc.radius*cosElev*cosAzim
}

// localAxes computes the camera's local right and up axes consistent with the
// LookAt matrix. If position and target coincide, all components are zero.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (rx, ry, rz, ux, uy, uz float32) {
	// backward = normalize(position - target), matching LookAt's z-axis
	bx := cc.position[0] - cc.target[0]
	by := cc.position[1] - cc.target[1]
	bz := cc.position[2] - cc.target[2]
	bLen := float32(math.Sqrt(float64(bx*bx + by*by + bz*bz)))
	if bLen < 1e-8 {
		return
	}
	bx /= bLen
	by /= bLen
	bz /= bLen

	// right = normalize(cross(worldUp, backward)) where worldUp = (0, 1, 0)
	rx = bz
	rz = -bx
	rLen := float32(math.Sqrt(float64(rx*rx + rz*rz)))
	if rLen < 1e-8 {
		return
	}
	rx /= rLen
	rz /= rLen

	// up = cross(backward, right)
	ux = by*rz - bz*ry
	uy = bz*rx - bx*rz
	uz = bx*ry - by*rx
	return
}

func (cc *cameraControllerImpl) Type() CameraType {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.camType
}

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target[0], cc.target[1], cc.target[2]
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target[0] = x
	cc.target[1] = y
	cc.target[2] = z
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius -= delta * cc.zoomSpeed
	if cc.radius < cc.minRadius {
		cc.radius = cc.minRadius
	}
	if cc.radius > cc.maxRadius {
		cc.radius = cc.maxRadius
	}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitLeft() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.axisLocked {
		return
	}
	cc.azimuth -= cc.orbitSpeed
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitRight() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.axisLocked {
		return
	}
	cc.azimuth += cc.orbitSpeed
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.axisLocked {
		return
	}
	cc.elevation += cc.orbitSpeed
	if cc.elevation > cc.maxElevation {
		cc.elevation = cc.maxElevation
	}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitDown() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.axisLocked {
		return
	}
	cc.elevation -= cc.orbitSpeed
	if cc.elevation < cc.minElevation {
		cc.elevation = cc.minElevation
	}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	rx, _, rz, _, _, _ := cc.localAxes()
	offset := delta * cc.panSpeed

	cc.target[0] += rx * offset
	cc.target[2] += rz * offset
	cc.position[0] += rx * offset
	cc.position[2] += rz * offset
}

func (cc *cameraControllerImpl) PanUp(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	_, _, _, ux, uy, uz := cc.localAxes()
	offset := delta * cc.panSpeed

	cc.target[0] += ux * offset
	cc.target[1] += uy * offset
	cc.target[2] += uz * offset
	cc.position[0] += ux * offset
	cc.position[1] += uy * offset
	cc.position[2] += uz * offset
}
