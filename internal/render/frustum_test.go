package render

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func testCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   rl.Vector3{Z: 10},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{Y: 1},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
}

func TestZeroFrustumContainsEverything(t *testing.T) {
	var f Frustum
	assert.True(t, f.ContainsPoint(rl.Vector3{X: 1e6, Y: -1e6, Z: 1e6}))
}

func TestFrustumContainsPoint(t *testing.T) {
	f := ExtractFrustum(testCamera(), 1)

	tests := []struct {
		name  string
		point rl.Vector3
		want  bool
	}{
		{"target", rl.Vector3{}, true},
		{"slightly off axis", rl.Vector3{X: 1, Y: -1}, true},
		{"behind camera", rl.Vector3{Z: 20}, false},
		{"far to the side", rl.Vector3{X: 100}, false},
		{"far above", rl.Vector3{Y: 100}, false},
		{"past far plane", rl.Vector3{Z: -2000}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.ContainsPoint(tt.point))
		})
	}
}

func TestFrustumSphereIntersectsEdge(t *testing.T) {
	f := ExtractFrustum(testCamera(), 1)

	center := rl.Vector3{X: 8}
	assert.False(t, f.ContainsSphere(center, 0.1))
	assert.True(t, f.ContainsSphere(center, 6))
}

func TestOrthographicFrustum(t *testing.T) {
	cam := testCamera()
	cam.Projection = rl.CameraOrthographic
	cam.Fovy = 10
	f := ExtractFrustum(cam, 2)

	assert.True(t, f.ContainsPoint(rl.Vector3{X: 9}))
	assert.False(t, f.ContainsPoint(rl.Vector3{X: 11}))
	assert.False(t, f.ContainsPoint(rl.Vector3{Y: 6}))
}
