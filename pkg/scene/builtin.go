package scene

import (
	"sort"

	"cogentcore.org/core/math32"

	"github.com/df07/go-painterly-renderer/pkg/geometry"
	"github.com/df07/go-painterly-renderer/pkg/material"
	"github.com/df07/go-painterly-renderer/pkg/painter"
)

// builtinScenes maps scene names to constructors for the demo models
// that need no asset files. Brushes, paper and anchors are filled in by
// assemble.
var builtinScenes = map[string]func() *painter.Scene{
	"cube":   newCubeScene,
	"sphere": newSphereScene,
	"quad":   newQuadScene,
}

// BuiltinNames lists the available built-in scene names, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsBuiltin reports whether name selects a built-in scene.
func IsBuiltin(name string) bool {
	return builtinScenes[name] != nil
}

func builtinByName(name string) func() *painter.Scene {
	return builtinScenes[name]
}

func newCubeScene() *painter.Scene {
	return &painter.Scene{
		Mesh: geometry.NewCubeMesh(1),
		Albedo: material.NewCheckerTexture(256, 256, 32,
			math32.Vec3(0.85, 0.30, 0.20), math32.Vec3(0.95, 0.85, 0.70)),
		Light: painter.DefaultLight(),
	}
}

func newSphereScene() *painter.Scene {
	return &painter.Scene{
		Mesh: geometry.NewSphereMesh(0.7, 48, 24),
		Albedo: material.NewStripeTexture(512, 256, 32,
			math32.Vec3(0.20, 0.45, 0.80), math32.Vec3(0.90, 0.90, 0.85)),
		Light: painter.DefaultLight(),
	}
}

func newQuadScene() *painter.Scene {
	return &painter.Scene{
		Mesh: geometry.NewQuadMesh(),
		Albedo: material.NewCheckerTexture(256, 256, 64,
			math32.Vec3(0.25, 0.60, 0.30), math32.Vec3(0.95, 0.95, 0.90)),
		Light: painter.DefaultLight(),
	}
}
