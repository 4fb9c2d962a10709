package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/milk9111/hearthlight/prefabs"
	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var LevelsFS embed.FS

// Level is a static layout plus the prefabs placed in it.
type Level struct {
	Name     string   `yaml:"name"`
	Blocks   []Block  `yaml:"blocks"`
	Entities []Entity `yaml:"entities"`
}

// Block is a solid axis-aligned box given by two opposite corners.
type Block struct {
	Min prefabs.Vec3 `yaml:"min"`
	Max prefabs.Vec3 `yaml:"max"`
}

// Entity places a prefab. Position and Yaw override the prefab transform;
// Name, when set, replaces the prefab's name.
type Entity struct {
	Prefab   string        `yaml:"prefab"`
	Name     string        `yaml:"name"`
	Position *prefabs.Vec3 `yaml:"position"`
	Yaw      *float64      `yaml:"yaw"`
}

// LoadLevelFromFS reads a level, preferring a copy under levels/ on disk.
func LoadLevelFromFS(name string) (*Level, error) {
	data, err := os.ReadFile(filepath.Join("levels", name))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, name)
	}
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return ParseLevel(name, data)
}

// ParseLevel decodes a level document.
func ParseLevel(name string, data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	for i, e := range lvl.Entities {
		if e.Prefab == "" {
			return nil, fmt.Errorf("levels: %s: entity %d has no prefab", name, i)
		}
	}
	return &lvl, nil
}
