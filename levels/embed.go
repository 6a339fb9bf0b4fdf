package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Default is the level loaded when none is named.
const Default = "arena"

type Level struct {
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Entities []Entity `json:"entities,omitempty"`
}

// Entity places a prefab. Props override the prefab's script params.
type Entity struct {
	Prefab string         `json:"prefab"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Props  map[string]any `json:"props,omitempty"`
}

// Load reads a level by basename; the .json suffix is optional.
func Load(name string) (*Level, error) {
	if name == "" {
		name = Default
	}
	name = path.Base(name)
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return LoadLevelFromFS(name)
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	return &lvl, nil
}
