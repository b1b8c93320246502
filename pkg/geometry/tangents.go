package geometry

import (
	"cogentcore.org/core/math32"
)

// BuildTangents computes per-vertex tangents and bitangents from UV-space
// edge derivatives, accumulated over all triangles sharing a vertex and
// then Gram-Schmidt orthogonalized against the vertex normal. Triangles
// with a degenerate UV area contribute nothing; vertices that end up with
// no usable tangent get an arbitrary axis perpendicular to their normal,
// so every vertex always carries a full frame.
func BuildTangents(positions, normals []math32.Vector3, uvs []math32.Vector2, indices []int) (tangents, bitangents []math32.Vector3) {
	tangents = make([]math32.Vector3, len(positions))
	bitangents = make([]math32.Vector3, len(positions))

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]

		e1 := positions[i1].Sub(positions[i0])
		e2 := positions[i2].Sub(positions[i0])

		du1 := uvs[i1].X - uvs[i0].X
		dv1 := uvs[i1].Y - uvs[i0].Y
		du2 := uvs[i2].X - uvs[i0].X
		dv2 := uvs[i2].Y - uvs[i0].Y

		denom := du1*dv2 - du2*dv1
		if denom == 0 {
			continue // degenerate UV triangle
		}
		r := 1.0 / denom

		t := e1.MulScalar(dv2 * r).Sub(e2.MulScalar(dv1 * r))
		b := e2.MulScalar(du1 * r).Sub(e1.MulScalar(du2 * r))

		tangents[i0].SetAdd(t)
		tangents[i1].SetAdd(t)
		tangents[i2].SetAdd(t)

		bitangents[i0].SetAdd(b)
		bitangents[i1].SetAdd(b)
		bitangents[i2].SetAdd(b)
	}

	for i := range tangents {
		tangents[i], bitangents[i] = OrthonormalFrame(normals[i], tangents[i])
	}
	return tangents, bitangents
}

// OrthonormalFrame projects tangent into the plane perpendicular to the
// unit normal and returns the normalized tangent plus a bitangent chosen
// as cross(normal, tangent), so the triple (tangent, bitangent, normal)
// is exactly orthonormal and right-handed. A degenerate tangent falls
// back to an arbitrary perpendicular axis.
func OrthonormalFrame(normal, tangent math32.Vector3) (math32.Vector3, math32.Vector3) {
	t := tangent.Sub(normal.MulScalar(normal.Dot(tangent)))
	if t.LengthSquared() < 1e-8 {
		if math32.Abs(normal.X) < 0.9 {
			t = math32.Vec3(1, 0, 0).Sub(normal.MulScalar(normal.X))
		} else {
			t = math32.Vec3(0, 1, 0).Sub(normal.MulScalar(normal.Y))
		}
	}
	t = t.Normal()
	return t, normal.Cross(t)
}
