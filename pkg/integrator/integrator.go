package integrator

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance carried back along ray.
	// world must not be mutated while RayColor runs; random is owned by the caller.
	RayColor(ray core.Ray, world core.Shape, depth int, random *rand.Rand) core.Vec3
}
