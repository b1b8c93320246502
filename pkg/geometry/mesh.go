package geometry

import (
	"cogentcore.org/core/math32"
)

// Mesh is an indexed triangle mesh carrying the per-vertex attributes the
// stroke pipeline samples: positions, normals, tangent frames and UVs.
// Attribute slices are indexed per vertex; Indices holds three entries per
// triangle. A Mesh is never mutated after construction.
type Mesh struct {
	Positions  []math32.Vector3
	Normals    []math32.Vector3
	Tangents   []math32.Vector3
	Bitangents []math32.Vector3
	UVs        []math32.Vector2
	Indices    []int
}

// NewMesh builds a mesh from positions and triangle indices.
// normals and uvs are optional: missing normals are generated as
// area-weighted vertex normals, missing UVs default to zero. Tangent
// frames are always rebuilt from the final normals and UVs.
// Panics on malformed input (index out of range, attribute length
// mismatch) - those are programmer errors, not data errors.
func NewMesh(positions []math32.Vector3, indices []int, normals []math32.Vector3, uvs []math32.Vector2) *Mesh {
	if len(indices)%3 != 0 {
		panic("mesh indices must be a multiple of 3")
	}
	for _, idx := range indices {
		if idx < 0 || idx >= len(positions) {
			panic("mesh index out of range")
		}
	}
	if normals != nil && len(normals) != len(positions) {
		panic("normal count must match position count")
	}
	if uvs != nil && len(uvs) != len(positions) {
		panic("uv count must match position count")
	}

	m := &Mesh{
		Positions: positions,
		Normals:   normals,
		UVs:       uvs,
		Indices:   indices,
	}
	if m.Normals == nil {
		m.Normals = computeVertexNormals(positions, indices)
	}
	if m.UVs == nil {
		m.UVs = make([]math32.Vector2, len(positions))
	}
	m.Tangents, m.Bitangents = BuildTangents(m.Positions, m.Normals, m.UVs, m.Indices)
	return m
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the three vertex indices of triangle i.
func (m *Mesh) Triangle(i int) (int, int, int) {
	if i < 0 || i >= m.TriangleCount() {
		panic("triangle index out of range")
	}
	return m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]
}

// TriangleArea returns the area of triangle i in mesh units.
func (m *Mesh) TriangleArea(i int) float32 {
	i0, i1, i2 := m.Triangle(i)
	ab := m.Positions[i1].Sub(m.Positions[i0])
	ac := m.Positions[i2].Sub(m.Positions[i0])
	return ab.Cross(ac).Length() * 0.5
}

// SurfaceArea returns the summed area of all triangles.
func (m *Mesh) SurfaceArea() float32 {
	var total float32
	for i := 0; i < m.TriangleCount(); i++ {
		total += m.TriangleArea(i)
	}
	return total
}

// Bounds returns the axis-aligned bounding box of all vertices.
func (m *Mesh) Bounds() (min, max math32.Vector3) {
	if len(m.Positions) == 0 {
		return math32.Vector3{}, math32.Vector3{}
	}
	min, max = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return min, max
}

// computeVertexNormals accumulates face normals onto the vertices of each
// face. The cross product length is twice the face area, so larger faces
// weigh more, which is the usual smoothing behavior for scanned meshes.
func computeVertexNormals(positions []math32.Vector3, indices []int) []math32.Vector3 {
	normals := make([]math32.Vector3, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		ab := positions[i1].Sub(positions[i0])
		ac := positions[i2].Sub(positions[i0])
		face := ab.Cross(ac)
		normals[i0].SetAdd(face)
		normals[i1].SetAdd(face)
		normals[i2].SetAdd(face)
	}
	for i := range normals {
		if normals[i].LengthSquared() > 0 {
			normals[i] = normals[i].Normal()
		} else {
			normals[i] = math32.Vec3(0, 0, 1)
		}
	}
	return normals
}
