package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// FinalSceneLayoutSeed seeds the placement of the small spheres in the final scene
const FinalSceneLayoutSeed = 1

// NewFinalScene creates the classic cover scene: three large spheres on a huge ground
// sphere, surrounded by a field of small randomly placed spheres.
// The same layoutSeed always yields the same layout.
func NewFinalScene(layoutSeed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	s := newScene("final", cameraConfig, renderer.DefaultSamplingConfig())
	random := rand.New(rand.NewSource(layoutSeed))

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	// Keep the small spheres clear of the metal sphere
	clearance := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMaterial := random.Float64()
			center := core.NewVec3(
				float64(a)+0.9*random.Float64(),
				0.2,
				float64(b)+0.9*random.Float64(),
			)

			if center.Subtract(clearance).Length() <= 0.9 {
				continue
			}

			var sphereMaterial core.Material
			switch {
			case chooseMaterial < 0.8:
				// diffuse
				albedo := core.RandomVec3(random).MultiplyVec(core.RandomVec3(random))
				sphereMaterial = material.NewLambertian(albedo)
			case chooseMaterial < 0.95:
				// metal
				albedo := core.RandomVec3Range(random, 0.5, 1.0)
				fuzz := 0.5 * random.Float64()
				sphereMaterial = material.NewMetal(albedo, fuzz)
			default:
				// glass
				sphereMaterial = material.NewDielectric(1.5)
			}

			s.Add(geometry.NewSphere(center, 0.2, sphereMaterial))
		}
	}

	return s
}
