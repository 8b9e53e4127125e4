package scene

import (
	"golang.org/x/image/colornames"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewShapesScene creates a scene built from flat-faced primitives: a lone triangle,
// an upright quad mirror, a glass tetrahedron and a small triangle-mesh pyramid.
func NewShapesScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:    core.NewVec3(0, 2, 5),
		LookAt:      core.NewVec3(0, 0.6, 0),
		Up:          core.NewVec3(0, 1, 0),
		AspectRatio: 3.0 / 2.0,
		VFov:        35.0,
		Aperture:    0.0, // Pinhole, everything in focus
	}

	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s := newScene("shapes", cameraConfig, renderer.DefaultSamplingConfig())

	ground := material.NewLambertian(NamedColor(colornames.Gray))
	orange := material.NewLambertian(NamedColor(colornames.Darkorange).Multiply(0.8))
	teal := material.NewLambertian(NamedColor(colornames.Teal))
	mirror := material.NewMetal(NamedColor(colornames.Silver), 0.05)
	glass := material.NewDielectric(1.5)

	s.Add(NewGroundQuad(core.NewVec3(0, 0, 0), 100.0, ground))

	// Counter-clockwise as seen from the camera
	s.Add(geometry.NewTriangle(
		core.NewVec3(-2.4, 0, 0.5),
		core.NewVec3(-1.2, 0, 0.5),
		core.NewVec3(-1.8, 1.2, 0.3),
		orange,
	))

	// Mirror standing behind the group, facing +z
	s.Add(geometry.NewRectangle(core.NewVec3(-1.5, 0, -1.5), core.NewVec3(3, 0, 0), core.NewVec3(0, 2, 0), mirror))

	s.Add(geometry.NewTetrahedron(
		core.NewVec3(-0.6, 0, 0.4),
		core.NewVec3(0.6, 0, 0.4),
		core.NewVec3(0, 0, -0.6),
		core.NewVec3(0, 1.2, 0),
		glass,
	))

	pyramid, err := geometry.NewTriangleMesh(
		[]core.Vec3{
			core.NewVec3(1.3, 0, 0.9),
			core.NewVec3(2.3, 0, 0.9),
			core.NewVec3(2.3, 0, -0.1),
			core.NewVec3(1.3, 0, -0.1),
			core.NewVec3(1.8, 0.9, 0.4),
		},
		[]int{
			0, 1, 4,
			1, 2, 4,
			2, 3, 4,
			3, 0, 4,
		},
		teal,
	)
	if err != nil {
		// Fixed indices above are always valid
		panic(err)
	}
	s.Add(pyramid)

	s.Add(geometry.NewSphere(core.NewVec3(0, 0.25, 1.2), 0.25, mirror))

	return s
}
