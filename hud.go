package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/jumpctl/ecs/component"
	"golang.org/x/image/font/basicfont"
)

const (
	hudX          = 12
	hudY          = 10
	hudLineHeight = 16
)

var (
	hudColor  = color.NRGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff}
	hintColor = color.NRGBA{R: 0x90, G: 0x96, B: 0xa4, A: 0xff}
)

// hud prints the speed readout and timer state.
type hud struct {
	face ebtext.Face
}

func newHUD() *hud {
	return &hud{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (h *hud) draw(screen *ebiten.Image, tel *component.Telemetry, probe, status string) {
	lines := []string{
		fmt.Sprintf("speed   h %7.1f   v %7.1f", tel.HorizontalSpeed, tel.VerticalSpeed),
		fmt.Sprintf("ground  %-5v  coyote %.3f", tel.Grounded, tel.CoyoteRemaining),
		fmt.Sprintf("buffer  %.3f  hold %.3f", tel.BufferRemaining, tel.HoldElapsed),
		fmt.Sprintf("probe   %s   facing %s   steps %d", probe, tel.Facing, tel.Steps),
	}
	for i, line := range lines {
		h.print(screen, line, hudY+i*hudLineHeight, hudColor)
	}

	y := hudY + len(lines)*hudLineHeight + 4
	if status != "" {
		h.print(screen, status, y, hudColor)
		y += hudLineHeight
	}
	h.print(screen, fmt.Sprintf("space jump  shift sprint  esc pause  c copy  g gizmo   %.0f fps", ebiten.ActualFPS()), y, hintColor)
}

func (h *hud) print(screen *ebiten.Image, s string, y int, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(hudX, float64(y))
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, s, h.face, op)
}
