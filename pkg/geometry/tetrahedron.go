package geometry

import "github.com/df07/go-pathtracer/pkg/core"

// NewTetrahedron creates a four-faced solid from four vertices.
// Faces are wound so every normal points out of the solid, whatever the vertex order.
func NewTetrahedron(v0, v1, v2, v3 core.Vec3, material core.Material) *Compound {
	// v3 must sit on the side of (v0,v1,v2) that its cross product points to
	if v1.Subtract(v0).Cross(v2.Subtract(v0)).Dot(v3.Subtract(v0)) < 0 {
		v1, v2 = v2, v1
	}

	return NewCompound(
		NewTriangle(v0, v2, v1, material),
		NewTriangle(v0, v1, v3, material),
		NewTriangle(v1, v2, v3, material),
		NewTriangle(v0, v3, v2, material),
	)
}
