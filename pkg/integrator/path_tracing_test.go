package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// createTestWorld creates a simple world with a sphere for testing
func createTestWorld(m core.Material) *geometry.HittableList {
	return geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, m))
}

// recursiveRayColor is the textbook recursive estimator the loop must agree with
func recursiveRayColor(pt *PathTracingIntegrator, ray core.Ray, world core.Shape, depth int, random *rand.Rand) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}
	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return pt.BackgroundGradient(ray)
	}
	scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
	if !didScatter {
		return core.Vec3{}
	}
	return recursiveRayColor(pt, scatter.Scattered, world, depth-1, random).MultiplyVec(scatter.Attenuation)
}

func TestPathTracingDepthTermination(t *testing.T) {
	world := createTestWorld(material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	pt := NewPathTracingIntegrator()
	random := rand.New(rand.NewSource(42))

	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), // toward sphere
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),  // toward sky
		core.NewRay(core.NewVec3(5, 5, 5), core.NewVec3(-1, -1, -1)),
	}

	for _, ray := range rays {
		for _, depth := range []int{0, -1, -10} {
			if c := pt.RayColor(ray, world, depth, random); c != (core.Vec3{}) {
				t.Errorf("Expected black for depth %d, got %v", depth, c)
			}
		}
	}

	// Positive depth gathers light
	if c := pt.RayColor(rays[0], world, 10, random); c == (core.Vec3{}) {
		t.Error("Expected non-black color for positive depth")
	}
}

func TestPathTracingBackground(t *testing.T) {
	world := geometry.NewHittableList()
	pt := NewPathTracingIntegrator()
	random := rand.New(rand.NewSource(1))

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 5, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"straight down", core.NewVec3(0, -2, 0), core.NewVec3(1, 1, 1)},
		{"horizon", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), tt.direction), world, 1, random)
			if c.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, c)
			}
		})
	}
}

func TestPathTracingAbsorption(t *testing.T) {
	world := createTestWorld(absorber{})
	pt := NewPathTracingIntegrator()

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if c := pt.RayColor(ray, world, 50, rand.New(rand.NewSource(1))); c != (core.Vec3{}) {
		t.Errorf("Expected black for absorbed ray, got %v", c)
	}
}

func TestPathTracingAttenuation(t *testing.T) {
	// A perfect mirror hit head-on sends the ray straight back to the sky behind the camera
	albedo := core.NewVec3(0.5, 0.25, 1.0)
	world := createTestWorld(material.NewMetal(albedo, 0))
	pt := NewPathTracingIntegrator()

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	c := pt.RayColor(ray, world, 2, rand.New(rand.NewSource(1)))

	expected := pt.BackgroundGradient(core.NewRay(core.NewVec3(0, 0, -0.5), core.NewVec3(0, 0, 1))).MultiplyVec(albedo)
	if c.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, c)
	}

	// One bounce is not enough to escape after the reflection
	if c := pt.RayColor(ray, world, 1, rand.New(rand.NewSource(1))); c != (core.Vec3{}) {
		t.Errorf("Expected black with a single bounce, got %v", c)
	}
}

func TestPathTracingMatchesRecursiveForm(t *testing.T) {
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)),
	)
	pt := NewPathTracingIntegrator()

	for i := 0; i < 200; i++ {
		seed := int64(i)
		dir := core.NewVec3(float64(i%20)/10-1, float64(i/20)/10-0.5, -1)
		ray := core.NewRay(core.NewVec3(0, 0, 0), dir)

		loop := pt.RayColor(ray, world, 8, rand.New(rand.NewSource(seed)))
		recursive := recursiveRayColor(pt, ray, world, 8, rand.New(rand.NewSource(seed)))

		if loop.Subtract(recursive).Length() > 1e-12 {
			t.Fatalf("Ray %d: loop %v differs from recursive %v", i, loop, recursive)
		}
	}
}

type absorber struct{}

func (absorber) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}
