package loaders

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cogentcore.org/core/math32"

	"github.com/df07/go-painterly-renderer/pkg/geometry"
)

// LoadMesh loads a triangle mesh, dispatching on the file extension.
// Supported formats: .obj and .ply.
func LoadMesh(filename string) (*geometry.Mesh, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".obj":
		return LoadOBJ(filename)
	case ".ply":
		return LoadPLY(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q (want .obj or .ply)", filepath.Ext(filename))
	}
}

// objKey identifies one unique v/vt/vn combination from a face corner.
type objKey struct {
	v, vt, vn int
}

// LoadOBJ parses a Wavefront OBJ file into a mesh. Faces with more than
// three corners are fan-triangulated; negative indices count back from
// the end of the respective list. Corners sharing the same position,
// texture and normal indices share one output vertex. Files without
// normals get area-weighted vertex normals from the mesh builder.
func LoadOBJ(filename string) (*geometry.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	var (
		rawPositions []math32.Vector3
		rawUVs       []math32.Vector2
		rawNormals   []math32.Vector3

		positions []math32.Vector3
		uvs       []math32.Vector2
		normals   []math32.Vector3
		indices   []int
		vertexFor = make(map[objKey]int)
		sawUV     bool
		sawNormal bool
	)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			v, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid vertex: %w", lineNum, err)
			}
			rawPositions = append(rawPositions, v)
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: texture coordinate needs two values", lineNum)
			}
			u, err1 := strconv.ParseFloat(fields[1], 32)
			v, err2 := strconv.ParseFloat(fields[2], 32)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("line %d: invalid texture coordinate", lineNum)
			}
			rawUVs = append(rawUVs, math32.Vec2(float32(u), float32(v)))
		case "vn":
			n, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid normal: %w", lineNum, err)
			}
			rawNormals = append(rawNormals, n)
		case "f":
			corners := fields[1:]
			if len(corners) < 3 {
				return nil, fmt.Errorf("line %d: face needs at least three corners", lineNum)
			}
			face := make([]int, len(corners))
			for i, corner := range corners {
				key, err := parseOBJCorner(corner, len(rawPositions), len(rawUVs), len(rawNormals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNum, err)
				}
				idx, exists := vertexFor[key]
				if !exists {
					idx = len(positions)
					vertexFor[key] = idx
					positions = append(positions, rawPositions[key.v])
					if key.vt >= 0 {
						uvs = append(uvs, rawUVs[key.vt])
						sawUV = true
					} else {
						uvs = append(uvs, math32.Vector2{})
					}
					if key.vn >= 0 {
						normals = append(normals, rawNormals[key.vn])
						sawNormal = true
					} else {
						normals = append(normals, math32.Vector3{})
					}
				}
				face[i] = idx
			}
			// Fan triangulation around the first corner.
			for i := 1; i+1 < len(face); i++ {
				indices = append(indices, face[0], face[i], face[i+1])
			}
		}
		// Groups, materials and smoothing statements are ignored.
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ file: %w", err)
	}

	if len(indices) == 0 {
		return nil, fmt.Errorf("OBJ file %s contains no faces", filename)
	}

	// A file with no vn statements at all defers normal generation to the
	// mesh builder; partial normals keep their zero fill and rely on the
	// tangent fallback.
	if !sawNormal {
		normals = nil
	}
	if !sawUV {
		uvs = nil
	}
	return geometry.NewMesh(positions, indices, normals, uvs), nil
}

// parseOBJCorner resolves one face corner of the form v, v/vt, v//vn or
// v/vt/vn into zero-based indices, handling negative (relative) indices.
// Missing components are -1.
func parseOBJCorner(corner string, numV, numVT, numVN int) (objKey, error) {
	parts := strings.Split(corner, "/")
	key := objKey{v: -1, vt: -1, vn: -1}

	resolve := func(s string, count int) (int, error) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("invalid face index %q", s)
		}
		if n < 0 {
			n = count + n // relative to the end
		} else {
			n-- // OBJ indices are one-based
		}
		if n < 0 || n >= count {
			return 0, fmt.Errorf("face index %q out of range", s)
		}
		return n, nil
	}

	var err error
	if key.v, err = resolve(parts[0], numV); err != nil {
		return key, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if key.vt, err = resolve(parts[1], numVT); err != nil {
			return key, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if key.vn, err = resolve(parts[2], numVN); err != nil {
			return key, err
		}
	}
	return key, nil
}

func parseFloats3(fields []string) (math32.Vector3, error) {
	if len(fields) < 3 {
		return math32.Vector3{}, fmt.Errorf("need three values, got %d", len(fields))
	}
	x, err1 := strconv.ParseFloat(fields[0], 32)
	y, err2 := strconv.ParseFloat(fields[1], 32)
	z, err3 := strconv.ParseFloat(fields[2], 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return math32.Vector3{}, fmt.Errorf("invalid float triple %v", fields[:3])
	}
	return math32.Vec3(float32(x), float32(y), float32(z)), nil
}
