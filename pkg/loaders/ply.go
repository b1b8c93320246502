package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"cogentcore.org/core/math32"

	"github.com/df07/go-painterly-renderer/pkg/geometry"
)

// plyProperty is one property definition from the PLY header.
type plyProperty struct {
	name     string
	typ      string
	isList   bool
	listType string // count type for list properties
	dataType string // element type for list properties
}

// plyHeader is the parsed header of a PLY file, with the property
// indices the mesh builder cares about resolved up front.
type plyHeader struct {
	format      string // "ascii" or "binary_little_endian"
	vertexCount int
	faceCount   int
	vertexProps []plyProperty
	faceProps   []plyProperty

	posIndex    [3]int // x, y, z
	normalIndex [3]int // nx, ny, nz; -1 if absent
	uvIndex     [2]int // u/s, v/t; -1 if absent
	hasNormals  bool
	hasUVs      bool
}

// LoadPLY loads a PLY mesh (ASCII or binary little-endian). Normals and
// texture coordinates are picked up when present; everything else in the
// vertex record is skipped. Faces with more than three corners are
// fan-triangulated.
func LoadPLY(filename string) (*geometry.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var positions, normals []math32.Vector3
	var uvs []math32.Vector2
	var indices []int

	switch header.format {
	case "ascii":
		positions, normals, uvs, indices, err = readPLYASCII(reader, header)
	case "binary_little_endian":
		positions, normals, uvs, indices, err = readPLYBinary(reader, header)
	default:
		return nil, fmt.Errorf("unsupported PLY format %q", header.format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY data: %w", err)
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("PLY file %s contains no faces", filename)
	}

	if !header.hasNormals {
		normals = nil
	}
	if !header.hasUVs {
		uvs = nil
	}
	return geometry.NewMesh(positions, indices, normals, uvs), nil
}

func parsePLYHeader(reader *bufio.Reader) (*plyHeader, error) {
	line, err := readHeaderLine(reader)
	if err != nil {
		return nil, err
	}
	if line != "ply" {
		return nil, fmt.Errorf("not a PLY file (missing magic)")
	}

	h := &plyHeader{
		posIndex:    [3]int{-1, -1, -1},
		normalIndex: [3]int{-1, -1, -1},
		uvIndex:     [2]int{-1, -1},
	}
	var current *[]plyProperty

	for {
		line, err := readHeaderLine(reader)
		if err != nil {
			return nil, err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "format":
			if len(fields) < 2 {
				return nil, fmt.Errorf("malformed format line %q", line)
			}
			h.format = fields[1]
		case "comment", "obj_info":
			// ignored
		case "element":
			if len(fields) < 3 {
				return nil, fmt.Errorf("malformed element line %q", line)
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("invalid element count in %q", line)
			}
			switch fields[1] {
			case "vertex":
				h.vertexCount = count
				current = &h.vertexProps
			case "face":
				h.faceCount = count
				current = &h.faceProps
			default:
				// Unknown elements would need skipping logic; reject
				// rather than misread the payload.
				return nil, fmt.Errorf("unsupported PLY element %q", fields[1])
			}
		case "property":
			if current == nil || len(fields) < 3 {
				return nil, fmt.Errorf("malformed property line %q", line)
			}
			var prop plyProperty
			if fields[1] == "list" {
				if len(fields) < 5 {
					return nil, fmt.Errorf("malformed list property %q", line)
				}
				prop = plyProperty{name: fields[4], isList: true, listType: fields[2], dataType: fields[3]}
			} else {
				prop = plyProperty{name: fields[2], typ: fields[1]}
			}
			*current = append(*current, prop)
		case "end_header":
			h.resolveIndices()
			if h.posIndex[0] < 0 || h.posIndex[1] < 0 || h.posIndex[2] < 0 {
				return nil, fmt.Errorf("PLY vertex element missing x/y/z properties")
			}
			return h, nil
		}
	}
}

func readHeaderLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("unexpected end of header: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (h *plyHeader) resolveIndices() {
	for i, prop := range h.vertexProps {
		switch prop.name {
		case "x":
			h.posIndex[0] = i
		case "y":
			h.posIndex[1] = i
		case "z":
			h.posIndex[2] = i
		case "nx":
			h.normalIndex[0] = i
		case "ny":
			h.normalIndex[1] = i
		case "nz":
			h.normalIndex[2] = i
		case "u", "s", "texture_u":
			h.uvIndex[0] = i
		case "v", "t", "texture_v":
			h.uvIndex[1] = i
		}
	}
	h.hasNormals = h.normalIndex[0] >= 0 && h.normalIndex[1] >= 0 && h.normalIndex[2] >= 0
	h.hasUVs = h.uvIndex[0] >= 0 && h.uvIndex[1] >= 0
}

// buildVertex distributes one vertex record's values into the output
// slices according to the resolved property indices.
func (h *plyHeader) buildVertex(values []float32, positions, normals *[]math32.Vector3, uvs *[]math32.Vector2) {
	*positions = append(*positions, math32.Vec3(
		values[h.posIndex[0]], values[h.posIndex[1]], values[h.posIndex[2]]))
	if h.hasNormals {
		*normals = append(*normals, math32.Vec3(
			values[h.normalIndex[0]], values[h.normalIndex[1]], values[h.normalIndex[2]]))
	}
	if h.hasUVs {
		*uvs = append(*uvs, math32.Vec2(values[h.uvIndex[0]], values[h.uvIndex[1]]))
	}
}

func readPLYASCII(reader *bufio.Reader, h *plyHeader) ([]math32.Vector3, []math32.Vector3, []math32.Vector2, []int, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	positions := make([]math32.Vector3, 0, h.vertexCount)
	var normals []math32.Vector3
	var uvs []math32.Vector2
	var indices []int

	nextLine := func() ([]string, error) {
		for scanner.Scan() {
			fields := strings.Fields(scanner.Text())
			if len(fields) > 0 {
				return fields, nil
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.ErrUnexpectedEOF
	}

	values := make([]float32, len(h.vertexProps))
	for v := 0; v < h.vertexCount; v++ {
		fields, err := nextLine()
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("vertex %d: %w", v, err)
		}
		if len(fields) < len(h.vertexProps) {
			return nil, nil, nil, nil, fmt.Errorf("vertex %d: expected %d values, got %d", v, len(h.vertexProps), len(fields))
		}
		for i := range h.vertexProps {
			f, err := strconv.ParseFloat(fields[i], 32)
			if err != nil {
				return nil, nil, nil, nil, fmt.Errorf("vertex %d: invalid value %q", v, fields[i])
			}
			values[i] = float32(f)
		}
		h.buildVertex(values, &positions, &normals, &uvs)
	}

	for f := 0; f < h.faceCount; f++ {
		fields, err := nextLine()
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("face %d: %w", f, err)
		}
		count, err := strconv.Atoi(fields[0])
		if err != nil || len(fields) < count+1 {
			return nil, nil, nil, nil, fmt.Errorf("face %d: malformed index list", f)
		}
		face := make([]int, count)
		for i := 0; i < count; i++ {
			idx, err := strconv.Atoi(fields[i+1])
			if err != nil {
				return nil, nil, nil, nil, fmt.Errorf("face %d: invalid index %q", f, fields[i+1])
			}
			face[i] = idx
		}
		indices = appendTriangulated(indices, face)
	}
	return positions, normals, uvs, indices, nil
}

func readPLYBinary(reader *bufio.Reader, h *plyHeader) ([]math32.Vector3, []math32.Vector3, []math32.Vector2, []int, error) {
	positions := make([]math32.Vector3, 0, h.vertexCount)
	var normals []math32.Vector3
	var uvs []math32.Vector2
	var indices []int

	values := make([]float32, len(h.vertexProps))
	for v := 0; v < h.vertexCount; v++ {
		for i, prop := range h.vertexProps {
			f, err := readBinaryScalar(reader, prop.typ)
			if err != nil {
				return nil, nil, nil, nil, fmt.Errorf("vertex %d property %s: %w", v, prop.name, err)
			}
			values[i] = f
		}
		h.buildVertex(values, &positions, &normals, &uvs)
	}

	for f := 0; f < h.faceCount; f++ {
		for _, prop := range h.faceProps {
			if !prop.isList {
				if _, err := readBinaryScalar(reader, prop.typ); err != nil {
					return nil, nil, nil, nil, fmt.Errorf("face %d: %w", f, err)
				}
				continue
			}
			countF, err := readBinaryScalar(reader, prop.listType)
			if err != nil {
				return nil, nil, nil, nil, fmt.Errorf("face %d: %w", f, err)
			}
			count := int(countF)
			face := make([]int, count)
			for i := 0; i < count; i++ {
				idxF, err := readBinaryScalar(reader, prop.dataType)
				if err != nil {
					return nil, nil, nil, nil, fmt.Errorf("face %d index %d: %w", f, i, err)
				}
				face[i] = int(idxF)
			}
			if prop.name == "vertex_indices" || prop.name == "vertex_index" {
				indices = appendTriangulated(indices, face)
			}
		}
	}
	return positions, normals, uvs, indices, nil
}

// readBinaryScalar reads one little-endian value of the given PLY type
// and widens it to float32.
func readBinaryScalar(reader io.Reader, typ string) (float32, error) {
	switch typ {
	case "float", "float32":
		var v float32
		err := binary.Read(reader, binary.LittleEndian, &v)
		return v, err
	case "double", "float64":
		var v float64
		err := binary.Read(reader, binary.LittleEndian, &v)
		return float32(v), err
	case "char", "int8":
		var v int8
		err := binary.Read(reader, binary.LittleEndian, &v)
		return float32(v), err
	case "uchar", "uint8":
		var v uint8
		err := binary.Read(reader, binary.LittleEndian, &v)
		return float32(v), err
	case "short", "int16":
		var v int16
		err := binary.Read(reader, binary.LittleEndian, &v)
		return float32(v), err
	case "ushort", "uint16":
		var v uint16
		err := binary.Read(reader, binary.LittleEndian, &v)
		return float32(v), err
	case "int", "int32":
		var v int32
		err := binary.Read(reader, binary.LittleEndian, &v)
		return float32(v), err
	case "uint", "uint32":
		var v uint32
		err := binary.Read(reader, binary.LittleEndian, &v)
		return float32(v), err
	default:
		return 0, fmt.Errorf("unsupported PLY type %q", typ)
	}
}

// appendTriangulated fan-triangulates a face around its first corner.
func appendTriangulated(indices []int, face []int) []int {
	for i := 1; i+1 < len(face); i++ {
		indices = append(indices, face[0], face[i], face[i+1])
	}
	return indices
}
