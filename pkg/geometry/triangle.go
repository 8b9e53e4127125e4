package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// parallelEpsilon is the determinant threshold below which a ray is treated as
// lying in the triangle plane.
const parallelEpsilon = 1e-7

// Triangle represents a single triangle defined by three vertices.
// The outward normal follows the winding V0 -> V1 -> V2.
type Triangle struct {
	V0, V1, V2 core.Vec3     // The three vertices
	Material   core.Material // Material of the triangle
	edge1      core.Vec3     // V1 - V0
	edge2      core.Vec3     // V2 - V0
	normal     core.Vec3     // Cached unit normal
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, material core.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
	}
	t.edge1 = v1.Subtract(v0)
	t.edge2 = v2.Subtract(v0)
	t.normal = t.edge1.Cross(t.edge2).Normalize()
	return t
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	h := ray.Direction.Cross(t.edge2)
	a := t.edge1.Dot(h)

	// Ray lies in (or is parallel to) the plane of the triangle
	if math.Abs(a) < parallelEpsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(t.edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tParam := f * t.edge2.Dot(q)
	if tParam < tMin || tParam > tMax {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:        tParam,
		Point:    ray.At(tParam),
		Material: t.Material,
	}
	hitRecord.SetFaceNormal(ray, t.normal)

	return hitRecord, true
}

// GetNormal returns the triangle's outward unit normal
func (t *Triangle) GetNormal() core.Vec3 {
	return t.normal
}
