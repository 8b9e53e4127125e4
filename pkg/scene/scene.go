package scene

import (
	"image/color"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	World          *geometry.HittableList // Objects in the scene
	SamplingConfig renderer.SamplingConfig
}

// newScene assembles a scene, deriving the image height from the camera aspect ratio
func newScene(name string, cameraConfig renderer.CameraConfig, samplingConfig renderer.SamplingConfig) *Scene {
	samplingConfig.Height = HeightForWidth(samplingConfig.Width, cameraConfig.AspectRatio)
	return &Scene{
		Name:           name,
		Camera:         renderer.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		World:          geometry.NewHittableList(),
		SamplingConfig: samplingConfig,
	}
}

// HeightForWidth returns the image height matching the aspect ratio, at least 1
func HeightForWidth(width int, aspectRatio float64) int {
	return max(1, int(float64(width)/aspectRatio))
}

// SetWidth changes the image width and keeps the height in step with the camera aspect ratio
func (s *Scene) SetWidth(width int) {
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = HeightForWidth(width, s.CameraConfig.AspectRatio)
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...core.Shape) {
	s.World.Add(shapes...)
}

// NewGroundQuad creates a large quad to replace infinite ground planes
// Creates a horizontal quad centered at the given point with normal pointing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, material core.Material) *geometry.Compound {
	// Create corner at bottom-left of the quad
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// Edge vectors: v along X axis, u along Z axis so that u × v points up
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewRectangle(corner, u, v, material)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.World.Shapes {
		count += countPrimitivesInShape(shape)
	}
	return count
}

// countPrimitivesInShape counts primitives in a single shape, handling compound objects
func countPrimitivesInShape(shape core.Shape) int {
	switch obj := shape.(type) {
	case *geometry.Compound:
		// Compound shapes own one triangle per face
		return obj.FaceCount()
	default:
		// Regular shapes count as 1 primitive each
		return 1
	}
}

// NamedColor converts an 8-bit color such as one from golang.org/x/image/colornames
// into a [0, 1] albedo
func NamedColor(c color.RGBA) core.Vec3 {
	return core.NewVec3(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}
