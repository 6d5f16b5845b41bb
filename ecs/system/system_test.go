package system

import (
	"testing"
	"testing/fstest"

	"github.com/milk9111/jumpctl/controller"
	"github.com/milk9111/jumpctl/ecs"
	"github.com/milk9111/jumpctl/ecs/component"
	"github.com/milk9111/jumpctl/ecs/entity"
	"github.com/milk9111/jumpctl/input"
	"github.com/milk9111/jumpctl/levels"
	"github.com/milk9111/jumpctl/physics"
	"github.com/milk9111/jumpctl/prefabs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	frame    = 1.0 / 60.0
	floorTop = 144.0
)

const flatMap = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="20" height="10" tilewidth="16" tileheight="16" infinite="0" nextlayerid="3" nextobjectid="3">
 <objectgroup id="1" name="Ground">
  <object id="1" x="0" y="144" width="320" height="16"/>
 </objectgroup>
 <objectgroup id="2" name="PlayerSpawn">
  <object id="2" x="40" y="120"><point/></object>
 </objectgroup>
</map>`

type harness struct {
	w      *ecs.World
	pw     *physics.World
	loop   *ecs.Loop
	player ecs.Entity
}

func newHarness(t *testing.T, probe string, src controller.InputSource) *harness {
	t.Helper()

	lvl, err := levels.LoadFS(fstest.MapFS{"flat.tmx": {Data: []byte(flatMap)}}, "flat.tmx")
	require.NoError(t, err)

	spec := prefabs.DefaultControllerSpec()
	spec.GroundCheck.Probe = probe

	pw := physics.NewWorld(physics.Settings{Gravity: spec.Physics.Gravity, Iterations: spec.Physics.Iterations})
	require.NoError(t, lvl.Build(pw))

	w := ecs.NewWorld()
	player, err := entity.NewPlayer(w, pw, entity.PlayerOptions{
		Spec:   spec,
		Level:  lvl,
		Source: src,
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)

	return &harness{
		w:      w,
		pw:     pw,
		loop:   NewLoop(pw, frame, spec.Physics.MaxSteps, zerolog.Nop()),
		player: player,
	}
}

func (h *harness) run(frames int) {
	for i := 0; i < frames; i++ {
		h.loop.Advance(h.w, frame)
	}
}

func (h *harness) transform(t *testing.T) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(h.w, h.player, component.TransformComponent.Kind())
	require.True(t, ok)
	return tr
}

func (h *harness) grounded(t *testing.T) bool {
	t.Helper()
	gc, ok := ecs.Get(h.w, h.player, component.GroundCheckComponent.Kind())
	require.True(t, ok)
	return gc.Latest
}

func TestPlayerLandsWithEveryProbe(t *testing.T) {
	for _, probe := range []string{prefabs.ProbeSensor, prefabs.ProbeBox, prefabs.ProbeResolv} {
		t.Run(probe, func(t *testing.T) {
			h := newHarness(t, probe, input.NewSequence())
			h.run(60)

			assert.True(t, h.grounded(t))
			assert.InDelta(t, floorTop-16, h.transform(t).Y, 1.0)
		})
	}
}

func TestPlayerJumpsAndFaces(t *testing.T) {
	h := newHarness(t, prefabs.ProbeSensor, input.NewSequence())
	h.run(60)
	restY := h.transform(t).Y

	require.NoError(t, entity.SetInputSource(h.w, h.player, input.Hold(20, -1)))
	h.run(10)

	tr := h.transform(t)
	assert.Less(t, tr.Y, restY-20)
	assert.True(t, tr.FacingLeft)
	assert.False(t, h.grounded(t))

	tel, ok := ecs.Get(h.w, h.player, component.TelemetryComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 70, tel.Steps)
	assert.Equal(t, "left", tel.Facing)
	assert.Greater(t, tel.HoldElapsed, 0.0)
}

func TestPlayerRespawnsBelowKillLine(t *testing.T) {
	h := newHarness(t, prefabs.ProbeSensor, input.NewSequence())
	h.run(60)

	player, ok := ecs.Get(h.w, h.player, component.PlayerComponent.Kind())
	require.True(t, ok)
	body, ok := ecs.Get(h.w, h.player, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)

	body.Body.Teleport(40, player.KillY+50)
	h.run(1)

	tr := h.transform(t)
	assert.Equal(t, player.SpawnX, tr.X)
	assert.Equal(t, player.SpawnY, tr.Y)
	assert.Equal(t, 0.0, player.Controller.Telemetry().CoyoteRemaining)
}

func TestReloadControllerKeepsBody(t *testing.T) {
	h := newHarness(t, prefabs.ProbeBox, input.NewSequence())
	h.run(30)

	spec := prefabs.DefaultControllerSpec()
	spec.Movement.WalkSpeed = 50
	require.NoError(t, entity.ReloadController(h.w, h.player, spec, zerolog.Nop()))

	player, _ := ecs.Get(h.w, h.player, component.PlayerComponent.Kind())
	assert.Equal(t, 50.0, player.Controller.Config().WalkSpeed)

	bad := spec
	bad.Jump.CoyoteTime = -1
	err := entity.ReloadController(h.w, h.player, bad, zerolog.Nop())
	require.ErrorIs(t, err, controller.ErrInvalidConfig)
	assert.Equal(t, 50.0, player.Controller.Config().WalkSpeed)
}

func TestInputSystemAdvancesScriptClock(t *testing.T) {
	script, err := input.NewScript("walk", []byte(`input := func(t, grounded) { return {horizontal: t > 0.5 ? 1.0 : 0.0, jump: false, sprint: false} }`))
	require.NoError(t, err)

	h := newHarness(t, prefabs.ProbeSensor, script)
	h.run(60)

	in, ok := ecs.Get(h.w, h.player, component.InputComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 1.0, in.Horizontal)
	assert.InDelta(t, 1.0, script.Time(), 1e-9)
}
