package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Width        int        `yaml:"width"`
	Height       int        `yaml:"height"`
	Color        *YAMLColor `yaml:"color"`
	OriginX      float64    `yaml:"origin_x"`
	OriginY      float64    `yaml:"origin_y"`
	CenterOrigin bool       `yaml:"center_origin"`
	FacingLeft   bool       `yaml:"facing_left"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type PhysicsBodyComponentSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Radius   float64 `yaml:"radius"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
	Static   bool    `yaml:"static"`
	Sensor   bool    `yaml:"sensor"`
}

type CharacterMovementComponentSpec struct {
	Speed   float64 `yaml:"speed"`
	FacingX float64 `yaml:"facing_x"`
	FacingY float64 `yaml:"facing_y"`
}

type EquipmentComponentSpec struct {
	Weapon string `yaml:"weapon"`
	Shield string `yaml:"shield"`
}

type AttackComponentSpec struct {
	Frames int `yaml:"frames"`
}

type AttachPointSpec struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Layer   int     `yaml:"layer"`
}

type AttachPointsComponentSpec struct {
	Weapon *AttachPointSpec `yaml:"weapon"`
	Shield *AttachPointSpec `yaml:"shield"`
	Pickup *AttachPointSpec `yaml:"pickup"`
}

type ScriptComponentSpec struct {
	Path   string         `yaml:"path"`
	Params map[string]any `yaml:"params"`
}
