package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestLambertian_ScatterHemisphere(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.3, 0.3)
	lambertian := NewLambertian(albedo)
	random := rand.New(rand.NewSource(42))

	normal := core.NewVec3(0, 0, 1)
	hit := core.HitRecord{
		Point:  core.NewVec3(1, 2, 3),
		Normal: normal,
	}
	ray := core.NewRay(core.NewVec3(1, 2, 4), core.NewVec3(0, 0, -1))

	for i := 0; i < 1000; i++ {
		scatter, didScatter := lambertian.Scatter(ray, hit, random)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}

		if !scatter.Scattered.Origin.Equals(hit.Point) {
			t.Fatalf("Scattered ray should start at hit point, got %v", scatter.Scattered.Origin)
		}

		// normal + unit vector never points below the surface
		if scatter.Scattered.Direction.Dot(normal) < 0 {
			t.Fatalf("Scattered direction %v below surface", scatter.Scattered.Direction)
		}

		if scatter.Scattered.Direction.NearZero() {
			t.Fatal("Scatter direction should never be degenerate")
		}

		if !scatter.Attenuation.Equals(albedo) {
			t.Fatalf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
		}
	}
}

func TestLambertian_CosineDistribution(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	random := rand.New(rand.NewSource(1))

	hit := core.HitRecord{Normal: core.NewVec3(0, 1, 0)}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	// normal + uniform unit vector yields a cosine-weighted lobe with mean cosθ = 2/3
	const samples = 20000
	sum := 0.0
	for i := 0; i < samples; i++ {
		scatter, _ := lambertian.Scatter(ray, hit, random)
		sum += scatter.Scattered.Direction.Normalize().Dot(hit.Normal)
	}
	mean := sum / samples
	if math.Abs(mean-2.0/3.0) > 0.02 {
		t.Errorf("Expected mean cosine ~0.667, got %f", mean)
	}
}
