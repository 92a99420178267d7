// Package config holds the scene settings, persisted as YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"shapefield/internal/geometry"
	"shapefield/internal/palette"
	"shapefield/internal/pointer"
	"shapefield/internal/shape"
)

// DefaultPath is the config file, relative to the process working directory.
const DefaultPath = "config/shapefield.yaml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Window is the initial window geometry.
type Window struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// Config enumerates every recognised option. Keys missing from the file keep their defaults.
type Config struct {
	MinSize     float32 `yaml:"min_size"`
	MaxSize     float32 `yaml:"max_size"`
	MaxSpeed    float32 `yaml:"max_speed"`
	MaxSpin     float32 `yaml:"max_spin"`
	EntityCount int     `yaml:"entity_count"`

	// ShapeKinds is the pool kinds are drawn from. Repeating a kind weights it.
	ShapeKinds []geometry.Kind `yaml:"shape_kinds"`

	RecolorPolicy    string `yaml:"recolor_policy"`
	CollisionEnabled bool   `yaml:"collision_enabled"`

	ClickPolicy     pointer.ClickPolicy `yaml:"click_policy"`
	BoostFactor     float32             `yaml:"boost_factor"`
	HighlightColor  string              `yaml:"highlight_color"`
	HoverEveryFrame bool                `yaml:"hover_every_frame"`

	Window       Window `yaml:"window"`
	ShowFPS      bool   `yaml:"show_fps"`
	ShowMemAlloc bool   `yaml:"show_mem_alloc"`
	// Font names an overlay font under assets/fonts ("Inter", "Google Sans") or a
	// font file path. Empty keeps raylib's default font.
	Font string `yaml:"font"`
}

func Default() Config {
	return Config{
		MinSize:     10,
		MaxSize:     50,
		MaxSpeed:    2,
		MaxSpin:     0.02,
		EntityCount: 40,
		ShapeKinds: []geometry.Kind{
			geometry.Tetrahedron, geometry.Octahedron, geometry.Dodecahedron, geometry.Icosahedron,
			geometry.Torus, geometry.Knot, geometry.RandomKnot, geometry.RandomKnot, geometry.Lathe,
		},
		RecolorPolicy:    shape.PolicyPosition,
		CollisionEnabled: true,
		ClickPolicy:      pointer.ClickBoost,
		BoostFactor:      4,
		HighlightColor:   "#0080ff",
		HoverEveryFrame:  true,
		Window:           Window{Width: 1280, Height: 720, TargetFPS: 60},
	}
}

// Validate returns the first problem found, wrapping ErrInvalid.
func (c Config) Validate() error {
	if _, err := c.ShapeParams(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if len(c.ShapeKinds) == 0 {
		return fmt.Errorf("%w: shape_kinds is empty", ErrInvalid)
	}
	if c.EntityCount < 0 {
		return fmt.Errorf("%w: entity_count %d is negative", ErrInvalid, c.EntityCount)
	}
	if !c.ClickPolicy.Valid() {
		return fmt.Errorf("%w: unknown click_policy %q", ErrInvalid, c.ClickPolicy)
	}
	if c.BoostFactor <= 0 {
		return fmt.Errorf("%w: boost_factor %v must be positive", ErrInvalid, c.BoostFactor)
	}
	if _, err := palette.ParseHex(c.HighlightColor); err != nil {
		return fmt.Errorf("%w: highlight_color: %v", ErrInvalid, err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.TargetFPS < 0 {
		return fmt.Errorf("%w: target_fps %d is negative", ErrInvalid, c.Window.TargetFPS)
	}
	return nil
}

// ShapeParams converts the sampling options into shape construction params.
func (c Config) ShapeParams() (shape.Params, error) {
	policy, err := shape.PolicyByName(c.RecolorPolicy, c.MaxSpeed)
	if err != nil {
		return shape.Params{}, err
	}
	p := shape.Params{
		MinSize:  c.MinSize,
		MaxSize:  c.MaxSize,
		MaxSpeed: c.MaxSpeed,
		MaxSpin:  c.MaxSpin,
		Kinds:    append([]geometry.Kind(nil), c.ShapeKinds...),
		Color:    policy,
	}
	return p, p.Validate()
}

// Highlight returns the parsed highlight colour, or the stock blue if it does not parse.
func (c Config) Highlight() palette.RGB {
	rgb, err := palette.ParseHex(c.HighlightColor)
	if err != nil {
		return pointer.DefaultHighlight
	}
	return rgb
}

// Load reads the config at path. A missing file yields Default() and no error.
// A file that does not parse or validate yields Default() and the error, so the
// caller can log it and carry on.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read config %s: %w", path, err)
	}
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Save writes c to path as YAML, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
