package geometry

import (
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"

	"cogentcore.org/core/math32"
)

// Anchor is one candidate brush placement on the mesh surface. The
// tangent/bitangent/normal triple is a right-handed orthonormal basis
// fixed at build time; anchors are immutable once the set is built and
// may be read concurrently.
type Anchor struct {
	Position  math32.Vector3
	Normal    math32.Vector3
	Tangent   math32.Vector3
	Bitangent math32.Vector3
	UV        math32.Vector2
	Brush     int
}

// anchorChunkSize is the fixed number of triangles per build chunk.
// Chunk boundaries depend only on the triangle count, never on the
// worker count, so builds reproduce on any machine.
const anchorChunkSize = 256

// BuildAnchors samples the mesh surface into a set of stroke anchors.
// Each triangle receives floor(area*density) anchors plus one more with
// probability equal to the fractional remainder, keeping the anchor count
// proportional to surface area so stroke coverage stays visually uniform
// across differently sized meshes. brushCount is the number of cells in
// the brush atlas; every anchor gets a uniformly distributed variant.
// Zero-area and non-finite triangles are skipped. The same mesh, density,
// brushCount and seed always produce the same set.
func BuildAnchors(mesh *Mesh, density, brushCount int, seed int64) ([]Anchor, error) {
	if density <= 0 {
		return nil, fmt.Errorf("stroke density must be positive, got %d", density)
	}
	if brushCount <= 0 {
		return nil, fmt.Errorf("brush count must be positive, got %d", brushCount)
	}
	triCount := mesh.TriangleCount()
	if triCount == 0 {
		return nil, errors.New("mesh has no triangles")
	}

	numChunks := (triCount + anchorChunkSize - 1) / anchorChunkSize
	chunkAnchors := make([][]Anchor, numChunks)
	chunkValid := make([]int, numChunks)

	workers := runtime.NumCPU()
	if workers > numChunks {
		workers = numChunks
	}
	jobs := make(chan int, numChunks)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				chunkAnchors[c], chunkValid[c] = buildAnchorChunk(mesh, c, density, brushCount, seed)
			}
		}()
	}
	for c := 0; c < numChunks; c++ {
		jobs <- c
	}
	close(jobs)
	wg.Wait()

	valid, total := 0, 0
	for c := range chunkAnchors {
		valid += chunkValid[c]
		total += len(chunkAnchors[c])
	}
	if valid == 0 {
		return nil, errors.New("mesh has no valid triangles to place anchors on")
	}

	// Concatenate in chunk order so the result is independent of worker
	// scheduling.
	anchors := make([]Anchor, 0, total)
	for _, ca := range chunkAnchors {
		anchors = append(anchors, ca...)
	}
	return anchors, nil
}

// buildAnchorChunk generates anchors for one fixed triangle range with its
// own seeded random source, so chunks can run on any worker in any order.
func buildAnchorChunk(mesh *Mesh, chunk, density, brushCount int, seed int64) ([]Anchor, int) {
	rng := rand.New(rand.NewSource(seed + int64(chunk)))
	first := chunk * anchorChunkSize
	last := first + anchorChunkSize
	if last > mesh.TriangleCount() {
		last = mesh.TriangleCount()
	}

	var anchors []Anchor
	valid := 0
	densityF := float32(density)

	for t := first; t < last; t++ {
		i0, i1, i2 := mesh.Triangle(t)
		a := mesh.Positions[i0]
		ab := mesh.Positions[i1].Sub(a)
		ac := mesh.Positions[i2].Sub(a)
		area := ab.Cross(ac).Length() * 0.5
		if !(area > 0) || math32.IsInf(area, 1) {
			continue // zero-area or non-finite triangle
		}
		valid++

		expected := area * densityF
		count := int(expected)
		if rng.Float32() < expected-float32(count) {
			count++
		}

		for s := 0; s < count; s++ {
			r1 := rng.Float32()
			r2 := rng.Float32()
			if r1+r2 >= 1 {
				r1 = 1 - r1
				r2 = 1 - r2
			}
			// The construction weights (1-r1-r2, r1, r2) double as the
			// barycentric weights for attribute interpolation.
			w0 := 1 - r1 - r2
			pos := a.Add(ab.MulScalar(r1)).Add(ac.MulScalar(r2))

			normal := lerpVec3(mesh.Normals[i0], mesh.Normals[i1], mesh.Normals[i2], w0, r1, r2)
			if normal.LengthSquared() < 1e-12 {
				normal = math32.Vec3(0, 0, 1)
			} else {
				normal = normal.Normal()
			}
			tangent, bitangent := OrthonormalFrame(normal,
				lerpVec3(mesh.Tangents[i0], mesh.Tangents[i1], mesh.Tangents[i2], w0, r1, r2))

			uv := mesh.UVs[i0].MulScalar(w0).
				Add(mesh.UVs[i1].MulScalar(r1)).
				Add(mesh.UVs[i2].MulScalar(r2))

			anchors = append(anchors, Anchor{
				Position:  pos,
				Normal:    normal,
				Tangent:   tangent,
				Bitangent: bitangent,
				UV:        uv,
				Brush:     rng.Intn(brushCount),
			})
		}
	}
	return anchors, valid
}

func lerpVec3(v0, v1, v2 math32.Vector3, w0, w1, w2 float32) math32.Vector3 {
	return v0.MulScalar(w0).Add(v1.MulScalar(w1)).Add(v2.MulScalar(w2))
}
