package prefabs

import (
	"image/color"
	"testing"

	"github.com/milk9111/jumpctl/controller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadControllerSpecEmbedded(t *testing.T) {
	spec, err := LoadControllerSpec("")
	require.NoError(t, err)

	assert.Equal(t, "player", spec.Name)
	assert.Equal(t, ProbeSensor, spec.GroundCheck.Probe)
	assert.Equal(t, color.NRGBA{R: 0x4a, G: 0x9e, B: 0xff, A: 0xff}, spec.Body.Color.Color)

	cfg := spec.Config()
	assert.Equal(t, 0.2, cfg.CoyoteDuration)
	assert.Equal(t, 0.2, cfg.BufferDuration)
	assert.Equal(t, 0.25, cfg.MaxHoldDuration)
	assert.NoError(t, cfg.Validate())
}

func TestDecodeSpecKeepsDefaults(t *testing.T) {
	data := []byte(`
jump:
  coyote_time: 0.1
ground_check:
  probe: resolv
`)
	spec, err := decodeSpec(data, DefaultControllerSpec())
	require.NoError(t, err)

	def := DefaultControllerSpec()
	assert.Equal(t, 0.1, spec.Jump.CoyoteTime)
	assert.Equal(t, def.Jump.Impulse, spec.Jump.Impulse)
	assert.Equal(t, def.Movement, spec.Movement)
	assert.Equal(t, ProbeResolv, spec.GroundCheck.Probe)
	assert.Equal(t, def.GroundCheck.Layer, spec.GroundCheck.Layer)
	assert.NoError(t, spec.Validate())
}

func TestDecodeSpecRejectsBadColor(t *testing.T) {
	_, err := decodeSpec([]byte("body:\n  color: \"#12\"\n"), DefaultControllerSpec())
	require.Error(t, err)
}

func TestControllerSpecValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ControllerSpec)
		target error
	}{
		{"negative buffer", func(s *ControllerSpec) { s.Jump.BufferTime = -0.1 }, controller.ErrInvalidConfig},
		{"zero width", func(s *ControllerSpec) { s.Body.Width = 0 }, ErrInvalidSpec},
		{"zero mass", func(s *ControllerSpec) { s.Body.Mass = 0 }, ErrInvalidSpec},
		{"zero step", func(s *ControllerSpec) { s.Physics.FixedStep = 0 }, ErrInvalidSpec},
		{"no steps", func(s *ControllerSpec) { s.Physics.MaxSteps = 0 }, ErrInvalidSpec},
		{"unknown probe", func(s *ControllerSpec) { s.GroundCheck.Probe = "raycast" }, ErrInvalidSpec},
		{"negative probe", func(s *ControllerSpec) { s.GroundCheck.Height = -1 }, ErrInvalidSpec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := DefaultControllerSpec()
			tt.mutate(&spec)
			require.ErrorIs(t, spec.Validate(), tt.target)
		})
	}
}

func TestControllerSpecNeedsRestart(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ControllerSpec)
		restart bool
	}{
		{"unchanged", func(*ControllerSpec) {}, false},
		{"jump tuning", func(s *ControllerSpec) { s.Jump.Impulse = 500 }, false},
		{"walk speed", func(s *ControllerSpec) { s.Movement.WalkSpeed = 200 }, false},
		{"body color", func(s *ControllerSpec) { s.Body.Color = YAMLColor{Color: color.NRGBA{R: 1, A: 0xff}} }, false},
		{"body width", func(s *ControllerSpec) { s.Body.Width = 20 }, true},
		{"kill line", func(s *ControllerSpec) { s.Body.KillY = 900 }, true},
		{"probe kind", func(s *ControllerSpec) { s.GroundCheck.Probe = ProbeBox }, true},
		{"gravity", func(s *ControllerSpec) { s.Physics.Gravity = 900 }, true},
		{"fixed step", func(s *ControllerSpec) { s.Physics.FixedStep = 1.0 / 120.0 }, true},
		{"max steps", func(s *ControllerSpec) { s.Physics.MaxSteps = 8 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := DefaultControllerSpec()
			next := DefaultControllerSpec()
			tt.mutate(&next)
			assert.Equal(t, tt.restart, current.NeedsRestart(next))
		})
	}
}

func TestCleanPaths(t *testing.T) {
	assert.Equal(t, "scripts/hop.tengo", cleanScriptPath("hop"))
	assert.Equal(t, "scripts/hop.tengo", cleanScriptPath("prefabs/scripts/hop.tengo"))
	assert.Equal(t, "controller.yaml", cleanPrefabPath("prefabs/controller.yaml"))
}

func TestLoadScriptEmbedded(t *testing.T) {
	src, err := LoadScript("tap")
	require.NoError(t, err)
	assert.Contains(t, string(src), "input :=")
}
