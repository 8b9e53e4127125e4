package geometry

import "github.com/df07/go-pathtracer/pkg/core"

// NewQuad creates a four-sided planar shape from vertices given in order around its edge.
// It is split into triangles (v0,v1,v2) and (v2,v3,v0). Coplanarity is not checked.
func NewQuad(v0, v1, v2, v3 core.Vec3, material core.Material) *Compound {
	return NewCompound(
		NewTriangle(v0, v1, v2, material),
		NewTriangle(v2, v3, v0, material),
	)
}

// NewRectangle creates a quad from a corner and two edge vectors.
// The outward normal is u × v.
func NewRectangle(corner, u, v core.Vec3, material core.Material) *Compound {
	return NewQuad(corner, corner.Add(u), corner.Add(u).Add(v), corner.Add(v), material)
}
