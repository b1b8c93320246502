package geometry

import (
	"cogentcore.org/core/math32"
)

// NewQuadMesh returns a unit square in the XY plane, centered at the
// origin and facing +Z, with UVs spanning [0,1] across the face.
func NewQuadMesh() *Mesh {
	positions := []math32.Vector3{
		math32.Vec3(-0.5, -0.5, 0),
		math32.Vec3(0.5, -0.5, 0),
		math32.Vec3(0.5, 0.5, 0),
		math32.Vec3(-0.5, 0.5, 0),
	}
	normals := []math32.Vector3{
		math32.Vec3(0, 0, 1),
		math32.Vec3(0, 0, 1),
		math32.Vec3(0, 0, 1),
		math32.Vec3(0, 0, 1),
	}
	uvs := []math32.Vector2{
		math32.Vec2(0, 0),
		math32.Vec2(1, 0),
		math32.Vec2(1, 1),
		math32.Vec2(0, 1),
	}
	indices := []int{0, 1, 2, 0, 2, 3}
	return NewMesh(positions, indices, normals, uvs)
}

// NewCubeMesh returns an axis-aligned cube with the given edge length,
// centered at the origin. Each face has its own four vertices so normals
// and UVs stay flat per face.
func NewCubeMesh(size float32) *Mesh {
	h := size * 0.5
	type face struct {
		normal, right, up math32.Vector3
	}
	faces := []face{
		{math32.Vec3(0, 0, 1), math32.Vec3(1, 0, 0), math32.Vec3(0, 1, 0)},
		{math32.Vec3(0, 0, -1), math32.Vec3(-1, 0, 0), math32.Vec3(0, 1, 0)},
		{math32.Vec3(1, 0, 0), math32.Vec3(0, 0, -1), math32.Vec3(0, 1, 0)},
		{math32.Vec3(-1, 0, 0), math32.Vec3(0, 0, 1), math32.Vec3(0, 1, 0)},
		{math32.Vec3(0, 1, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 0, -1)},
		{math32.Vec3(0, -1, 0), math32.Vec3(1, 0, 0), math32.Vec3(0, 0, 1)},
	}

	positions := make([]math32.Vector3, 0, 24)
	normals := make([]math32.Vector3, 0, 24)
	uvs := make([]math32.Vector2, 0, 24)
	indices := make([]int, 0, 36)

	for _, f := range faces {
		center := f.normal.MulScalar(h)
		r := f.right.MulScalar(h)
		u := f.up.MulScalar(h)
		base := len(positions)

		// Counter-clockwise seen from outside the cube.
		positions = append(positions,
			center.Sub(r).Sub(u),
			center.Add(r).Sub(u),
			center.Add(r).Add(u),
			center.Sub(r).Add(u),
		)
		normals = append(normals, f.normal, f.normal, f.normal, f.normal)
		uvs = append(uvs,
			math32.Vec2(0, 0),
			math32.Vec2(1, 0),
			math32.Vec2(1, 1),
			math32.Vec2(0, 1),
		)
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return NewMesh(positions, indices, normals, uvs)
}

// NewSphereMesh returns a UV sphere with the given radius. segments is
// the longitude count and rings the latitude count; both are clamped to
// sane minimums. Pole caps emit triangles instead of quads.
func NewSphereMesh(radius float32, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	var positions []math32.Vector3
	var normals []math32.Vector3
	var uvs []math32.Vector2
	var indices []int

	for ring := 0; ring <= rings; ring++ {
		polar := math32.Pi * float32(ring) / float32(rings)
		sinP, cosP := math32.Sincos(polar)
		for seg := 0; seg <= segments; seg++ {
			azimuth := 2 * math32.Pi * float32(seg) / float32(segments)
			sinA, cosA := math32.Sincos(azimuth)

			n := math32.Vec3(sinP*cosA, cosP, sinP*sinA)
			positions = append(positions, n.MulScalar(radius))
			normals = append(normals, n)
			uvs = append(uvs, math32.Vec2(float32(seg)/float32(segments), 1-float32(ring)/float32(rings)))
		}
	}

	stride := segments + 1
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			a := ring*stride + seg
			b := a + stride
			if ring != 0 {
				indices = append(indices, a, b, a+1)
			}
			if ring != rings-1 {
				indices = append(indices, a+1, b, b+1)
			}
		}
	}
	return NewMesh(positions, indices, normals, uvs)
}
