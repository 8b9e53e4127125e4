package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestHittableList_Empty(t *testing.T) {
	list := NewHittableList()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if _, isHit := list.Hit(ray, 0.001, math.Inf(1)); isHit {
		t.Error("Empty list should never report a hit")
	}
}

func TestHittableList_NearestHit(t *testing.T) {
	near := DummyMaterial{Name: "near"}
	far := DummyMaterial{Name: "far"}

	// Insertion order must not matter
	list := NewHittableList(
		NewSphere(core.NewVec3(0, 0, -10), 1, far),
		NewSphere(core.NewVec3(0, 0, -3), 1, near),
	)

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, isHit := list.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected t=2, got t=%f", hit.T)
	}
	if hit.Material.(DummyMaterial).Name != "near" {
		t.Errorf("Expected near material, got %v", hit.Material)
	}
}

func TestHittableList_MatchesMinimumOverMembers(t *testing.T) {
	random := rand.New(rand.NewSource(3))

	for trial := 0; trial < 50; trial++ {
		list := NewHittableList()
		// Non-overlapping spheres spaced along -Z with random lateral jitter
		for i := 0; i < 5; i++ {
			center := core.NewVec3(random.Float64()*0.5-0.25, random.Float64()*0.5-0.25, -3-float64(i)*3)
			list.Add(NewSphere(center, 1, DummyMaterial{}))
		}
		random.Shuffle(len(list.Shapes), func(i, j int) {
			list.Shapes[i], list.Shapes[j] = list.Shapes[j], list.Shapes[i]
		})

		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(random.Float64()*0.1-0.05, random.Float64()*0.1-0.05, -1))

		bestT := math.Inf(1)
		for _, shape := range list.Shapes {
			if hit, isHit := shape.Hit(ray, 0.001, math.Inf(1)); isHit && hit.T < bestT {
				bestT = hit.T
			}
		}

		hit, isHit := list.Hit(ray, 0.001, math.Inf(1))
		if math.IsInf(bestT, 1) {
			if isHit {
				t.Fatalf("Trial %d: list hit but no member did", trial)
			}
			continue
		}
		if !isHit {
			t.Fatalf("Trial %d: expected hit at t=%f", trial, bestT)
		}
		if hit.T != bestT {
			t.Errorf("Trial %d: expected t=%f, got t=%f", trial, bestT, hit.T)
		}
	}
}
