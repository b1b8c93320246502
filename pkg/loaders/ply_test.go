package loaders

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/core/math32"
)

const asciiPLY = `ply
format ascii 1.0
comment one flat triangle
element vertex 3
property float x
property float y
property float z
property float nx
property float ny
property float nz
property float u
property float v
element face 1
property list uchar int vertex_indices
end_header
0 0 0 0 0 1 0 0
1 0 0 0 0 1 1 0
0 1 0 0 0 1 0 1
3 0 1 2
`

func TestLoadPLY_ASCII(t *testing.T) {
	path := writeTempFile(t, "tri.ply", asciiPLY)

	mesh, err := LoadPLY(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if mesh.TriangleCount() != 1 {
		t.Errorf("Expected 1 triangle, got %d", mesh.TriangleCount())
	}
	if len(mesh.Positions) != 3 {
		t.Fatalf("Expected 3 vertices, got %d", len(mesh.Positions))
	}
	if mesh.Positions[1] != math32.Vec3(1, 0, 0) {
		t.Errorf("Expected position (1,0,0), got %v", mesh.Positions[1])
	}
	if mesh.Normals[0].Sub(math32.Vec3(0, 0, 1)).Length() > 1e-6 {
		t.Errorf("Expected normal +Z, got %v", mesh.Normals[0])
	}
	if mesh.UVs[2] != math32.Vec2(0, 1) {
		t.Errorf("Expected UV (0,1), got %v", mesh.UVs[2])
	}
}

func TestLoadPLY_BinaryLittleEndian(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("ply\n")
	buf.WriteString("format binary_little_endian 1.0\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\nproperty float y\nproperty float z\n")
	buf.WriteString("element face 2\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("end_header\n")

	vertices := []float32{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	}
	for _, v := range vertices {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	for _, face := range [][]int32{{0, 1, 2}, {0, 2, 3}} {
		buf.WriteByte(3)
		for _, idx := range face {
			binary.Write(&buf, binary.LittleEndian, idx)
		}
	}

	path := filepath.Join(t.TempDir(), "quad.ply")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	mesh, err := LoadPLY(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.TriangleCount())
	}
	if mesh.Positions[2] != math32.Vec3(1, 1, 0) {
		t.Errorf("Expected position (1,1,0), got %v", mesh.Positions[2])
	}
	// No normals in the file: generated ones point +Z for this winding.
	if mesh.Normals[0].Sub(math32.Vec3(0, 0, 1)).Length() > 1e-5 {
		t.Errorf("Expected generated normal +Z, got %v", mesh.Normals[0])
	}
}

func TestLoadPLY_QuadFaceTriangulates(t *testing.T) {
	path := writeTempFile(t, "quadface.ply", `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
1 1 0
0 1 0
4 0 1 2 3
`)

	mesh, err := LoadPLY(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("Expected fan triangulation into 2 triangles, got %d", mesh.TriangleCount())
	}
}

func TestLoadPLY_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "Not a PLY file", content: "solid nope\n"},
		{name: "Unsupported format", content: "ply\nformat binary_big_endian 1.0\nelement vertex 0\nelement face 0\nproperty list uchar int vertex_indices\nend_header\n"},
		{name: "Missing coordinates", content: "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nelement face 0\nend_header\n0\n"},
		{name: "Truncated payload", content: asciiPLY[:len(asciiPLY)-20]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "bad.ply", tt.content)
			if _, err := LoadPLY(path); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}
