package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/jumpctl/common"
	"github.com/milk9111/jumpctl/controller"
	"github.com/milk9111/jumpctl/ecs"
	"github.com/milk9111/jumpctl/ecs/component"
	"github.com/milk9111/jumpctl/ecs/entity"
	"github.com/milk9111/jumpctl/ecs/system"
	"github.com/milk9111/jumpctl/input"
	"github.com/milk9111/jumpctl/levels"
	"github.com/milk9111/jumpctl/physics"
	"github.com/milk9111/jumpctl/prefabs"
	"github.com/rs/zerolog"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

const cameraSmoothing = 0.15

var (
	backgroundColor = color.NRGBA{R: 0x14, G: 0x16, B: 0x1c, A: 0xff}
	groundColor     = color.NRGBA{R: 0x5a, G: 0x60, B: 0x6e, A: 0xff}
	wallColor       = color.NRGBA{R: 0x8a, G: 0x5a, B: 0x3c, A: 0xff}
	markerColor     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

type Options struct {
	Level  string
	Spec   string
	Script string
	Debug  bool
	Watch  bool
}

type Game struct {
	opts Options
	log  zerolog.Logger

	world   *ecs.World
	physics *physics.World
	loop    *ecs.Loop
	level   *levels.Level
	spec    prefabs.ControllerSpec
	player  ecs.Entity
	script  *input.Script

	watcher   *prefabs.Watcher
	pauseUI   *ebitenui.UI
	hud       *hud
	cam       physics.Camera
	last      time.Time
	paused    bool
	quit      bool
	showGizmo bool
	clipboard bool
	status    string
}

func NewGame(opts Options, log zerolog.Logger) (*Game, error) {
	spec, err := prefabs.LoadControllerSpec(opts.Spec)
	if err != nil {
		return nil, err
	}
	lvl, err := levels.Load(opts.Level)
	if err != nil {
		return nil, err
	}

	pw := physics.NewWorld(physics.Settings{Gravity: spec.Physics.Gravity, Iterations: spec.Physics.Iterations})
	if err := lvl.Build(pw); err != nil {
		return nil, err
	}

	g := &Game{
		opts:      opts,
		log:       log,
		world:     ecs.NewWorld(),
		physics:   pw,
		loop:      system.NewLoop(pw, spec.Physics.FixedStep, spec.Physics.MaxSteps, log),
		level:     lvl,
		spec:      spec,
		hud:       newHUD(),
		cam:       physics.Camera{Zoom: 1},
		showGizmo: true,
	}

	var src controller.InputSource = input.NewKeyboard()
	if opts.Script != "" {
		script, err := input.LoadScript(opts.Script)
		if err != nil {
			return nil, err
		}
		g.script = script
		src = script
	}

	g.player, err = entity.NewPlayer(g.world, pw, entity.PlayerOptions{
		Spec:   spec,
		Level:  lvl,
		Source: src,
		Logger: log,
	})
	if err != nil {
		return nil, err
	}

	if opts.Watch {
		g.startWatcher()
	}
	if err := clipboard.Init(); err != nil {
		log.Warn().Err(err).Msg("clipboard unavailable")
	} else {
		g.clipboard = true
	}

	g.pauseUI = NewPauseUI(g)
	log.Info().
		Str("level", lvl.Name).
		Int("solids", len(lvl.Solids)).
		Float64("fixed_step", spec.Physics.FixedStep).
		Msg("game ready")
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	now := time.Now()
	dt := 0.0
	if !g.last.IsZero() {
		dt = common.Clamp(now.Sub(g.last).Seconds(), 0, common.MaxFrameTime)
	}
	g.last = now

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	g.pollWatcher()

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyTelemetry()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.showGizmo = !g.showGizmo
	}

	g.loop.Advance(g.world, dt)
	g.followPlayer()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	for _, r := range g.level.Solids {
		clr := groundColor
		if r.Layer == "wall" {
			clr = wallColor
		}
		vector.DrawFilledRect(screen, float32(r.X-g.cam.X), float32(r.Y-g.cam.Y), float32(r.W), float32(r.H), clr, false)
	}

	g.drawPlayer(screen)

	if g.opts.Debug {
		physics.DrawDebug(g.physics, screen, g.cam)
	}
	if gc, ok := ecs.Get(g.world, g.player, component.GroundCheckComponent.Kind()); ok && g.showGizmo {
		physics.DrawGizmo(screen, gc.Gizmo, gc.Latest, g.cam)
	}

	if tel, ok := ecs.Get(g.world, g.player, component.TelemetryComponent.Kind()); ok {
		g.hud.draw(screen, tel, g.spec.GroundCheck.Probe, g.status)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	t, ok := ecs.Get(g.world, g.player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	body, ok := ecs.Get(g.world, g.player, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}

	alpha := g.loop.Alpha()
	x := common.Lerp(t.PrevX, t.X, alpha) - g.cam.X
	y := common.Lerp(t.PrevY, t.Y, alpha) - g.cam.Y
	left := x - body.Width/2
	top := y - body.Height/2

	vector.DrawFilledRect(screen, float32(left), float32(top), float32(body.Width), float32(body.Height), g.spec.Body.Color, false)

	// Facing marker: a short bar on the leading edge at eye height.
	markX := left + body.Width - 4
	if t.FacingLeft {
		markX = left
	}
	vector.DrawFilledRect(screen, float32(markX), float32(top+6), 4, 4, markerColor, false)
}

func (g *Game) followPlayer() {
	t, ok := ecs.Get(g.world, g.player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	maxX := max(0, g.level.Width-common.BaseWidth)
	maxY := max(0, g.level.Height-common.BaseHeight)
	targetX := common.Clamp(t.X-common.BaseWidth/2, 0, maxX)
	targetY := common.Clamp(t.Y-common.BaseHeight/2, 0, maxY)
	g.cam.X = common.Lerp(g.cam.X, targetX, cameraSmoothing)
	g.cam.Y = common.Lerp(g.cam.Y, targetY, cameraSmoothing)
}

func (g *Game) copyTelemetry() {
	tel, ok := ecs.Get(g.world, g.player, component.TelemetryComponent.Kind())
	if !ok {
		return
	}
	data, err := yaml.Marshal(tel.Telemetry)
	if err != nil {
		g.log.Warn().Err(err).Msg("telemetry marshal failed")
		return
	}
	if !g.clipboard {
		g.log.Info().Msg(strings.TrimSpace(string(data)))
		g.status = "clipboard unavailable; telemetry logged"
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.status = "telemetry copied"
}

func (g *Game) startWatcher() {
	var dirs []string
	for _, dir := range []string{"prefabs", filepath.Join("prefabs", "scripts")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		g.log.Info().Msg("no prefabs directory on disk; hot reload disabled")
		return
	}

	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		g.log.Warn().Err(err).Msg("hot reload disabled")
		return
	}
	g.watcher = w
	g.log.Info().Strs("dirs", dirs).Msg("watching for changes")
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case err := <-g.watcher.Errors:
		g.log.Warn().Err(err).Msg("watcher error")
	default:
	}

	for {
		change, ok := g.watcher.Poll()
		if !ok {
			return
		}
		switch change.Kind {
		case prefabs.ChangeSpec:
			if filepath.Base(change.Path) == filepath.Base(g.opts.Spec) {
				g.reloadSpec()
			}
		case prefabs.ChangeScript:
			if g.script != nil && strings.TrimSuffix(filepath.Base(change.Path), ".tengo") == strings.TrimSuffix(filepath.Base(g.opts.Script), ".tengo") {
				g.reloadScript()
			}
		}
	}
}

func (g *Game) reloadSpec() {
	if err := g.tryReloadSpec(); err != nil {
		g.log.Warn().Err(err).Msg("spec reload failed")
		g.status = "reload failed: " + err.Error()
		return
	}
	g.status = "controller reloaded"
}

func (g *Game) tryReloadSpec() error {
	spec, err := prefabs.LoadControllerSpec(g.opts.Spec)
	if err != nil {
		return err
	}
	if g.spec.NeedsRestart(spec) {
		g.log.Warn().Msg("body, ground_check and physics changes apply on restart")
	}
	if err := entity.ReloadController(g.world, g.player, spec, g.log); err != nil {
		return err
	}
	g.spec.Movement, g.spec.Jump = spec.Movement, spec.Jump
	g.spec.Body.Color = spec.Body.Color
	g.log.Info().Str("spec", g.opts.Spec).Msg("controller reloaded")
	return nil
}

func (g *Game) reloadScript() {
	script, err := input.LoadScript(g.opts.Script)
	if err != nil {
		g.log.Warn().Err(err).Msg("script reload failed")
		g.status = "script reload failed"
		return
	}
	if err := entity.SetInputSource(g.world, g.player, script); err != nil {
		g.log.Warn().Err(err).Msg("script reload failed")
		return
	}
	g.script = script
	g.status = fmt.Sprintf("script %s reloaded", script.Name())
	g.log.Info().Str("script", script.Name()).Msg("script reloaded")
}

func (g *Game) resume() {
	g.paused = false
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
