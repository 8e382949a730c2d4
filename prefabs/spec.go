package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

// Clip names every character spec must provide.
var RequiredClips = []string{"idle", "walk", "run", "jump"}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type validator interface {
	Validate() error
}

func loadValidated[T validator](filename string) (*T, error) {
	spec, err := LoadSpec[T](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type ClipSpec struct {
	Source   string  `yaml:"source"`
	Duration float64 `yaml:"duration"`
}

type LocomotionSpec struct {
	Acceleration  Vec3Spec `yaml:"acceleration"`
	Deceleration  Vec3Spec `yaml:"deceleration"`
	TurnSpeed     float64  `yaml:"turn_speed"`
	RunMultiplier float64  `yaml:"run_multiplier"`
}

type CharacterSpec struct {
	Name       string              `yaml:"name"`
	Model      string              `yaml:"model"`
	Scale      float64             `yaml:"scale"`
	Position   Vec3Spec            `yaml:"position"`
	Heading    float64             `yaml:"heading"`
	Animations map[string]ClipSpec `yaml:"animations"`
	Locomotion LocomotionSpec      `yaml:"locomotion"`
	Color      YAMLColor           `yaml:"color"`
	Radius     float64             `yaml:"radius"`
}

func (s CharacterSpec) Validate() error {
	for _, name := range RequiredClips {
		clip, ok := s.Animations[name]
		if !ok {
			return fmt.Errorf("%w: missing animation %q", ErrInvalidSpec, name)
		}
		if clip.Duration <= 0 {
			return fmt.Errorf("%w: animation %q duration %v", ErrInvalidSpec, name, clip.Duration)
		}
	}
	if s.Locomotion.Deceleration.Z > 0 {
		return fmt.Errorf("%w: forward deceleration must not be positive", ErrInvalidSpec)
	}
	if s.Locomotion.RunMultiplier < 0 {
		return fmt.Errorf("%w: run_multiplier %v", ErrInvalidSpec, s.Locomotion.RunMultiplier)
	}
	return nil
}

func LoadCharacterSpec() (*CharacterSpec, error) {
	return loadValidated[CharacterSpec]("character.yaml")
}

type CameraSpec struct {
	Name      string   `yaml:"name"`
	Offset    Vec3Spec `yaml:"offset"`
	LookAt    Vec3Spec `yaml:"look_at"`
	Smoothing float64  `yaml:"smoothing"`
}

func (s CameraSpec) Validate() error {
	if s.Smoothing <= 0 || s.Smoothing >= 1 {
		return fmt.Errorf("%w: smoothing %v not in (0, 1)", ErrInvalidSpec, s.Smoothing)
	}
	return nil
}

func LoadCameraSpec() (*CameraSpec, error) {
	return loadValidated[CameraSpec]("camera.yaml")
}

type MaterialSpec struct {
	Restitution     float64 `yaml:"restitution"`
	Friction        float64 `yaml:"friction"`
	RollingFriction float64 `yaml:"rolling_friction"`
}

type SpawnSpec struct {
	Interval float64      `yaml:"interval"`
	MaxCount int          `yaml:"max_count"`
	Shape    string       `yaml:"shape"`
	MinSize  float64      `yaml:"min_size"`
	MaxSize  float64      `yaml:"max_size"`
	AreaMin  Vec3Spec     `yaml:"area_min"`
	AreaMax  Vec3Spec     `yaml:"area_max"`
	Density  float64      `yaml:"density"`
	Material MaterialSpec `yaml:"material"`
}

type PropsSpec struct {
	Enabled    bool         `yaml:"enabled"`
	Gravity    Vec3Spec     `yaml:"gravity"`
	Iterations int          `yaml:"iterations"`
	Substeps   int          `yaml:"substeps"`
	Floor      bool         `yaml:"floor"`
	FloorY     float64      `yaml:"floor_y"`
	FloorMat   MaterialSpec `yaml:"floor_material"`
	Spawn      SpawnSpec    `yaml:"spawn"`
	Color      YAMLColor    `yaml:"color"`
}

func (s PropsSpec) Validate() error {
	if s.Substeps < 1 {
		return fmt.Errorf("%w: substeps %d", ErrInvalidSpec, s.Substeps)
	}
	if s.Spawn.Interval <= 0 {
		return fmt.Errorf("%w: spawn interval %v", ErrInvalidSpec, s.Spawn.Interval)
	}
	if s.Spawn.MaxCount < 0 {
		return fmt.Errorf("%w: spawn max_count %d", ErrInvalidSpec, s.Spawn.MaxCount)
	}
	if s.Spawn.MinSize <= 0 || s.Spawn.MaxSize < s.Spawn.MinSize {
		return fmt.Errorf("%w: spawn size range [%v, %v]", ErrInvalidSpec, s.Spawn.MinSize, s.Spawn.MaxSize)
	}
	switch s.Spawn.Shape {
	case "", "box", "sphere":
	default:
		return fmt.Errorf("%w: spawn shape %q", ErrInvalidSpec, s.Spawn.Shape)
	}
	return nil
}

func LoadPropsSpec() (*PropsSpec, error) {
	return loadValidated[PropsSpec]("props.yaml")
}

type HUDSpec struct {
	Enabled bool      `yaml:"enabled"`
	Color   YAMLColor `yaml:"color"`
}

type GameSpec struct {
	Title      string    `yaml:"title"`
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	TPS        int       `yaml:"tps"`
	MaxDT      float64   `yaml:"max_dt"`
	Zoom       float64   `yaml:"zoom"`
	Background YAMLColor `yaml:"background"`
	HUD        HUDSpec   `yaml:"hud"`
}

func (s GameSpec) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalidSpec, s.Width, s.Height)
	}
	if s.MaxDT <= 0 {
		return fmt.Errorf("%w: max_dt %v", ErrInvalidSpec, s.MaxDT)
	}
	return nil
}

func LoadGameSpec() (*GameSpec, error) {
	return loadValidated[GameSpec]("game.yaml")
}

type YAMLColor struct {
	color.Color
}

// Or returns the color, or fallback when unset.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
