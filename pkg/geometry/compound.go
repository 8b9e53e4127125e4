package geometry

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Compound is a shape built from a fixed set of triangular faces.
// A ray hits a compound at the nearest face it hits.
type Compound struct {
	faces []*Triangle
}

// NewCompound creates a compound shape that owns the given faces
func NewCompound(faces ...*Triangle) *Compound {
	return &Compound{faces: faces}
}

// NewTriangleMesh builds a compound from a vertex list and triangle indices.
// Each group of 3 indices in faces forms one triangle, wound in the given order.
func NewTriangleMesh(vertices []core.Vec3, faces []int, material core.Material) (*Compound, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(faces))
	}

	triangles := make([]*Triangle, 0, len(faces)/3)
	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		for _, idx := range []int{i0, i1, i2} {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range [0,%d)", i/3, idx, len(vertices))
			}
		}
		triangles = append(triangles, NewTriangle(vertices[i0], vertices[i1], vertices[i2], material))
	}

	return NewCompound(triangles...), nil
}

// Hit returns the minimum-t hit across all faces
func (c *Compound) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, face := range c.faces {
		if hit, isHit := face.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// Faces returns the triangles making up the shape
func (c *Compound) Faces() []*Triangle {
	return c.faces
}

// FaceCount returns the number of triangles in this shape
func (c *Compound) FaceCount() int {
	return len(c.faces)
}
