package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ShadowAcneEpsilon is the minimum t accepted for any bounce, so a scattered ray
// does not re-hit the surface it starts on.
const ShadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing with a fixed bounce budget
type PathTracingIntegrator struct {
	topColor    core.Vec3 // sky color straight up
	bottomColor core.Vec3 // sky color straight down
}

// NewPathTracingIntegrator creates a path tracer with the white-to-sky-blue background
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{
		topColor:    core.NewVec3(0.5, 0.7, 1.0),
		bottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// NewPathTracingIntegratorWithSky creates a path tracer with a custom background gradient
func NewPathTracingIntegratorWithSky(topColor, bottomColor core.Vec3) *PathTracingIntegrator {
	return &PathTracingIntegrator{topColor: topColor, bottomColor: bottomColor}
}

// RayColor computes the color for a single ray.
// Each bounce multiplies the running throughput by the material attenuation; the path
// ends with black when the budget runs out or the ray is absorbed, and with the sky
// color times the throughput when it escapes the scene.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Shape, depth int, random *rand.Rand) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
		if !isHit {
			return pt.BackgroundGradient(ray).MultiplyVec(throughput)
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
		if !didScatter {
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce budget exhausted, no more light is gathered
	return core.Vec3{}
}

// BackgroundGradient returns a gradient color based on ray direction
func (pt *PathTracingIntegrator) BackgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return pt.bottomColor.Multiply(1.0 - t).Add(pt.topColor.Multiply(t))
}
