package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(2, 1, 0)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"Add", a.Add(b), NewVec3(3, 3, 3)},
		{"Subtract", a.Subtract(NewVec3(1, 1, 1)), NewVec3(0, 1, 2)},
		{"Multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"Divide", NewVec3(2, 4, 6).Divide(2), NewVec3(1, 2, 3)},
		{"Negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"MultiplyVec", a.MultiplyVec(b), NewVec3(2, 2, 0)},
		{"Cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const tolerance = 1e-12
			if tt.result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}
}

func TestVec3_DotAndLength(t *testing.T) {
	v := NewVec3(2, 3, 6)
	if v.Dot(NewVec3(1, 1, 1)) != 11 {
		t.Errorf("Expected dot product 11, got %f", v.Dot(NewVec3(1, 1, 1)))
	}
	if v.LengthSquared() != 49 {
		t.Errorf("Expected squared length 49, got %f", v.LengthSquared())
	}
	if v.Length() != 7 {
		t.Errorf("Expected length 7, got %f", v.Length())
	}
}

func TestVec3_Normalize(t *testing.T) {
	n := NewVec3(3, 0, 4).Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", n.Length())
	}
	if !NewVec3(0, 0, 0).Normalize().Equals(NewVec3(0, 0, 0)) {
		t.Error("Zero vector should normalize to zero")
	}
}

func TestVec3_NearZero(t *testing.T) {
	if !NewVec3(1e-9, -1e-9, 0).NearZero() {
		t.Error("Expected tiny vector to be near zero")
	}
	if NewVec3(1e-9, 1e-3, 0).NearZero() {
		t.Error("Expected vector with a 1e-3 component not to be near zero")
	}
}

func TestVec3_Reflect(t *testing.T) {
	incoming := NewVec3(1, -1, 0)
	reflected := incoming.Reflect(NewVec3(0, 1, 0))
	if !reflected.Equals(NewVec3(1, 1, 0)) {
		t.Errorf("Expected (1,1,0), got %v", reflected)
	}
}

func TestVec3_Refract(t *testing.T) {
	normal := NewVec3(0, 1, 0)

	// Head-on rays pass straight through regardless of ratio
	straight := NewVec3(0, -1, 0).Refract(normal, 1.0/1.5)
	if straight.Subtract(NewVec3(0, -1, 0)).Length() > 1e-12 {
		t.Errorf("Expected undeviated ray, got %v", straight)
	}

	// Snell's law: sinθt = ratio * sinθi
	incoming := NewVec3(1, -1, 0).Normalize()
	ratio := 1.0 / 1.5
	refracted := incoming.Refract(normal, ratio)
	sinI := math.Sqrt(1 - math.Pow(incoming.Negate().Dot(normal), 2))
	sinT := math.Sqrt(1 - math.Pow(refracted.Normalize().Negate().Dot(normal), 2))
	if math.Abs(sinT-ratio*sinI) > 1e-9 {
		t.Errorf("Snell's law violated: sinT=%f, expected %f", sinT, ratio*sinI)
	}
	if math.Abs(refracted.Length()-1) > 1e-9 {
		t.Errorf("Expected unit refracted vector, got length %f", refracted.Length())
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -2))
	p := ray.At(1.5)
	if !p.Equals(NewVec3(1, 2, 0)) {
		t.Errorf("Expected (1,2,0), got %v", p)
	}
}

func TestRandomGenerators(t *testing.T) {
	random := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		if p := RandomInUnitSphere(random); p.LengthSquared() >= 1 {
			t.Fatalf("Point %v outside unit sphere", p)
		}
		if u := RandomUnitVector(random); math.Abs(u.Length()-1) > 1e-9 {
			t.Fatalf("Unit vector %v has length %f", u, u.Length())
		}
		d := RandomInUnitDisk(random)
		if d.Z != 0 || d.LengthSquared() >= 1 {
			t.Fatalf("Point %v outside unit disk", d)
		}
		r := RandomVec3Range(random, 0.5, 1.0)
		if r.X < 0.5 || r.X >= 1 || r.Y < 0.5 || r.Y >= 1 || r.Z < 0.5 || r.Z >= 1 {
			t.Fatalf("Vector %v outside [0.5, 1)", r)
		}
	}
}

func TestHitRecord_SetFaceNormal(t *testing.T) {
	outward := NewVec3(0, 0, 1)

	var front HitRecord
	front.SetFaceNormal(NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1)), outward)
	if !front.FrontFace || !front.Normal.Equals(outward) {
		t.Errorf("Expected front face with outward normal, got front=%t normal=%v", front.FrontFace, front.Normal)
	}

	var back HitRecord
	back.SetFaceNormal(NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), outward)
	if back.FrontFace || !back.Normal.Equals(outward.Negate()) {
		t.Errorf("Expected back face with flipped normal, got front=%t normal=%v", back.FrontFace, back.Normal)
	}
}
