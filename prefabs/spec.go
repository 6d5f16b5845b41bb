package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/milk9111/jumpctl/controller"
	"gopkg.in/yaml.v3"
)

const ControllerFile = "controller.yaml"

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

// Ground probe kinds.
const (
	ProbeSensor = "sensor"
	ProbeBox    = "box"
	ProbeResolv = "resolv"
)

// LoadSpec decodes filename over base, so fields missing from the file keep
// base's values.
func LoadSpec[T any](filename string, base T) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec, err := decodeSpec(data, base)
	if err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func decodeSpec[T any](data []byte, base T) (T, error) {
	spec := base
	if err := yaml.Unmarshal(data, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

type ControllerSpec struct {
	Name        string          `yaml:"name"`
	Movement    MovementSpec    `yaml:"movement"`
	Jump        JumpSpec        `yaml:"jump"`
	Body        BodySpec        `yaml:"body"`
	GroundCheck GroundCheckSpec `yaml:"ground_check"`
	Physics     PhysicsSpec     `yaml:"physics"`
}

type MovementSpec struct {
	WalkSpeed   float64 `yaml:"walk_speed"`
	SprintSpeed float64 `yaml:"sprint_speed"`
}

type JumpSpec struct {
	Impulse      float64 `yaml:"impulse"`
	SustainForce float64 `yaml:"sustain_force"`
	CoyoteTime   float64 `yaml:"coyote_time"`
	BufferTime   float64 `yaml:"buffer_time"`
	MaxHoldTime  float64 `yaml:"max_hold_time"`
}

type BodySpec struct {
	Width    float64   `yaml:"width"`
	Height   float64   `yaml:"height"`
	Mass     float64   `yaml:"mass"`
	Friction float64   `yaml:"friction"`
	KillY    float64   `yaml:"kill_y"`
	Color    YAMLColor `yaml:"color"`
}

type GroundCheckSpec struct {
	Probe   string  `yaml:"probe"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetY float64 `yaml:"offset_y"`
	Layer   string  `yaml:"layer"`
}

type PhysicsSpec struct {
	Gravity    float64 `yaml:"gravity"`
	FixedStep  float64 `yaml:"fixed_step"`
	Iterations int     `yaml:"iterations"`
	MaxSteps   int     `yaml:"max_steps"`
}

// DefaultControllerSpec is a pixel-scale tuning of the controller defaults.
func DefaultControllerSpec() ControllerSpec {
	return ControllerSpec{
		Name:     "player",
		Movement: MovementSpec{WalkSpeed: 160, SprintSpeed: 240},
		Jump: JumpSpec{
			Impulse:      420,
			SustainForce: 900,
			CoyoteTime:   0.2,
			BufferTime:   0.2,
			MaxHoldTime:  0.25,
		},
		Body: BodySpec{
			Width:    16,
			Height:   32,
			Mass:     1,
			Friction: 0,
			Color:    YAMLColor{Color: color.NRGBA{R: 0x4a, G: 0x9e, B: 0xff, A: 0xff}},
		},
		GroundCheck: GroundCheckSpec{Probe: ProbeSensor, Height: 2, Layer: "ground"},
		Physics:     PhysicsSpec{Gravity: 1400, FixedStep: 1.0 / 60.0, Iterations: 10, MaxSteps: 5},
	}
}

func LoadControllerSpec(name string) (ControllerSpec, error) {
	if name == "" {
		name = ControllerFile
	}
	spec, err := LoadSpec(name, DefaultControllerSpec())
	if err != nil {
		return ControllerSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return ControllerSpec{}, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return spec, nil
}

// Config maps the movement and jump sections onto a controller.Config.
func (s ControllerSpec) Config() controller.Config {
	return controller.Config{
		WalkSpeed:       s.Movement.WalkSpeed,
		SprintSpeed:     s.Movement.SprintSpeed,
		JumpImpulse:     s.Jump.Impulse,
		SustainForce:    s.Jump.SustainForce,
		CoyoteDuration:  s.Jump.CoyoteTime,
		BufferDuration:  s.Jump.BufferTime,
		MaxHoldDuration: s.Jump.MaxHoldTime,
	}
}

// NeedsRestart reports whether next changes anything a live controller
// reload cannot apply: body geometry, the ground check or the physics step.
func (s ControllerSpec) NeedsRestart(next ControllerSpec) bool {
	a, b := s.Body, next.Body
	a.Color, b.Color = YAMLColor{}, YAMLColor{}
	return a != b || s.GroundCheck != next.GroundCheck || s.Physics != next.Physics
}

func (s ControllerSpec) Validate() error {
	if err := s.Config().Validate(); err != nil {
		return err
	}

	positive := []struct {
		name  string
		value float64
	}{
		{"body.width", s.Body.Width},
		{"body.height", s.Body.Height},
		{"body.mass", s.Body.Mass},
		{"physics.fixed_step", s.Physics.FixedStep},
	}
	for _, f := range positive {
		if math.IsNaN(f.value) || f.value <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidSpec, f.name)
		}
	}
	if s.GroundCheck.Width < 0 || s.GroundCheck.Height < 0 {
		return fmt.Errorf("%w: ground_check size must not be negative", ErrInvalidSpec)
	}

	switch s.GroundCheck.Probe {
	case ProbeSensor, ProbeBox, ProbeResolv:
	default:
		return fmt.Errorf("%w: ground_check.probe %q", ErrInvalidSpec, s.GroundCheck.Probe)
	}
	if s.Physics.MaxSteps < 1 {
		return fmt.Errorf("%w: physics.max_steps must be at least 1", ErrInvalidSpec)
	}
	return nil
}

type YAMLColor struct {
	color.Color
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
