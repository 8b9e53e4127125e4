package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownScene is returned by Lookup for names that are not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string
	Description string
	build       func() *Scene
}

var builtinScenes = map[string]SceneInfo{
	"final": {
		Name:        "final",
		Description: "Three large spheres among a random field of small ones",
		build:       func() *Scene { return NewFinalScene(FinalSceneLayoutSeed) },
	},
	"default": {
		Name:        "default",
		Description: "Diffuse, metal and glass spheres on a ground quad",
		build:       func() *Scene { return NewDefaultScene() },
	},
	"shapes": {
		Name:        "shapes",
		Description: "Triangle, quad, tetrahedron and triangle mesh",
		build:       func() *Scene { return NewShapesScene() },
	},
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns every registered scene sorted by name
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtinScenes))
	for _, name := range Names() {
		infos = append(infos, builtinScenes[name])
	}
	return infos
}

// Lookup builds a fresh instance of the named scene
func Lookup(name string) (*Scene, error) {
	info, ok := builtinScenes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%q (available: %s): %w", name, strings.Join(Names(), ", "), ErrUnknownScene)
	}
	return info.build(), nil
}
