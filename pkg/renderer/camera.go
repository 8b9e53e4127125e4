package renderer

import (
	"errors"
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is aimed at
	Up            core.Vec3 // Up direction, need not be perpendicular to the view direction
	VFov          float64   // Vertical field of view in degrees
	AspectRatio   float64   // Width / height
	Aperture      float64   // Lens diameter, 0 for a pinhole camera
	FocusDistance float64   // Distance to the plane of perfect focus, <= 0 means |LookFrom - LookAt|
}

// DefaultCameraConfig returns the camera used by the classic final scene
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   3.0 / 2.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}
}

// PinholeAperture is an override value that MergeCameraConfig turns into a zero aperture
const PinholeAperture = -1.0

// MergeCameraConfig returns base with every non-zero field of override applied on top.
// Zero means unset, so an override cannot move LookFrom or LookAt to the origin.
// Use PinholeAperture to force Aperture to 0.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	zero := core.Vec3{}
	if override.LookFrom != zero {
		base.LookFrom = override.LookFrom
	}
	if override.LookAt != zero {
		base.LookAt = override.LookAt
	}
	if override.Up != zero {
		base.Up = override.Up
	}
	if override.VFov != 0 {
		base.VFov = override.VFov
	}
	if override.AspectRatio != 0 {
		base.AspectRatio = override.AspectRatio
	}
	if override.Aperture == PinholeAperture {
		base.Aperture = 0
	} else if override.Aperture != 0 {
		base.Aperture = override.Aperture
	}
	if override.FocusDistance != 0 {
		base.FocusDistance = override.FocusDistance
	}
	return base
}

// Validate rejects configurations that cannot produce an orthonormal camera basis
func (c CameraConfig) Validate() error {
	if c.VFov <= 0 || c.VFov >= 180 {
		return errors.New("camera: vertical field of view must be in (0, 180) degrees")
	}
	if c.AspectRatio <= 0 {
		return errors.New("camera: aspect ratio must be positive")
	}
	if c.Aperture < 0 {
		return errors.New("camera: aperture must not be negative")
	}
	w := c.LookFrom.Subtract(c.LookAt)
	if w.NearZero() {
		return errors.New("camera: look-from and look-at coincide")
	}
	if c.Up.Cross(w).NearZero() {
		return errors.New("camera: up vector is parallel to the view direction")
	}
	return nil
}

// Camera generates thin-lens rays for rendering
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // Orthonormal camera basis, w points away from the scene
	lensRadius      float64
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.LookFrom.Subtract(config.LookAt).Length()
	}

	theta := config.VFov * math.Pi / 180.0
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	origin := config.LookFrom
	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		config:          config,
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
	}
}

// GetRay generates a ray for viewport coordinates (s, t) where (0,0) is the lower left corner.
// The origin is jittered over the lens disk and the direction is aimed at the same
// point on the focus plane, so only the focus plane is sharp.
func (c *Camera) GetRay(s, t float64, random *rand.Rand) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(random).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	target := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))

	return core.NewRay(origin, target.Subtract(origin))
}

// GetCameraForward returns the unit direction the camera looks along
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// GetConfig returns the configuration the camera was built from
func (c *Camera) GetConfig() CameraConfig {
	return c.config
}
