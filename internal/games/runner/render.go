package runner

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/giraffe-run/internal/config"
	"github.com/vovakirdan/giraffe-run/internal/core"
)

// Visual characters for rendering
const (
	GiraffeBody = '█'
	GiraffeSpot = '▓'
	GiraffeHead = '▀'
	GiraffeLeg  = '║'
	GiraffeKnee = '╱'
	GiraffeDead = 'x'
	BushChar    = '▒'
	GroundChar  = '═'
	HillChar    = '^'
	CloudChar   = '~'
)

// Background layer spacing in world units
const (
	hillSpacing  = 150.0
	cloudSpacing = 260.0
)

// Render draws a snapshot into dst. The play field is scaled to fill every
// row except the HUD line at the top and the ground line at the bottom.
func Render(dst *core.Screen, snap Snapshot, cfg config.RunnerConfig) {
	dst.Clear()

	w, h := dst.Width(), dst.Height()
	if w <= 0 || h < 4 {
		return
	}

	vp := core.Viewport{
		WorldW: cfg.Field.Width,
		WorldH: cfg.Field.Height,
		Cells:  core.NewRect(0, 1, w, h-2),
	}

	if cfg.Polish.Parallax {
		drawBackground(dst, vp, snap.ScrollX)
	}

	dst.DrawHLine(0, h-1, w, GroundChar, core.ColorBrown)

	for _, ob := range snap.Obstacles {
		drawBush(dst, vp, ob, cfg)
	}

	drawGiraffe(dst, vp, snap, cfg)
	drawHUD(dst, snap)

	if snap.Status == StatusFailed {
		sub := fmt.Sprintf("Score: %d  |  Press R to restart", snap.Score.Current)
		if snap.RecordBeaten {
			sub = fmt.Sprintf("New record: %d!  |  Press R to restart", snap.Score.Current)
		}
		DrawCenteredMessage(dst, "GAME OVER", sub)
	}
}

// drawHUD renders the score line.
func drawHUD(dst *core.Screen, snap Snapshot) {
	label := fmt.Sprintf(" Score: %d ", snap.Score.Current)
	if snap.Score.HasBest {
		label = fmt.Sprintf(" Score: %d (Record %d) ", snap.Score.Current, snap.Score.Best)
	}
	dst.DrawTextColored(2, 0, label, core.ColorBrightWhite)

	level := fmt.Sprintf(" Level: %d ", snap.Difficulty.Level)
	dst.DrawTextColored(dst.Width()-len(level)-2, 0, level, core.ColorBrightYellow)
}

// drawBackground renders two scrolling layers: hills at the parallax offset
// and clouds at half of it.
func drawBackground(dst *core.Screen, vp core.Viewport, scrollX float64) {
	hillY := vp.CellY(vp.WorldH * 0.6)
	for x := -scrollX; x < vp.WorldW; x += hillSpacing {
		col := vp.CellX(x)
		dst.SetColored(col, hillY, HillChar, core.ColorGray)
		dst.SetColored(col+1, hillY, HillChar, core.ColorGray)
	}

	cloudY := vp.CellY(vp.WorldH * 0.15)
	for x := -scrollX / 2; x < vp.WorldW; x += cloudSpacing {
		dst.DrawTextColored(vp.CellX(x), cloudY, strings.Repeat(string(CloudChar), 3), core.ColorGray)
	}
}

// drawBush renders a bush standing on the ground.
func drawBush(dst *core.Screen, vp core.Viewport, ob Obstacle, cfg config.RunnerConfig) {
	size := cfg.Obstacles.Size
	r := core.NewRect(
		vp.CellX(ob.X),
		vp.CellY(cfg.Field.Height-size),
		vp.CellW(size),
		vp.CellH(size),
	)
	dst.DrawRect(r, BushChar, core.ColorGreen)
}

// drawGiraffe renders the player. The sprite is built from rows:
// head, neck, spotted body and animated legs.
//
//	   ▀▀
//	   █
//	   █
//	█▓█▓█
//	║   ║
func drawGiraffe(dst *core.Screen, vp core.Viewport, snap Snapshot, cfg config.RunnerConfig) {
	size := cfg.Player.Size
	x0 := vp.CellX(cfg.Player.X)
	y0 := vp.CellY(snap.Player.Y)
	w := vp.CellW(size)
	h := vp.CellH(size)

	color := core.ColorYellow
	if snap.Status == StatusFailed {
		color = core.ColorRed
	}

	if w < 3 || h < 3 {
		dst.DrawRect(core.NewRect(x0, y0, w, h), GiraffeBody, color)
		return
	}

	neckX := x0 + w - 2

	// Head
	head := GiraffeHead
	if snap.Status == StatusFailed {
		head = GiraffeDead
	}
	dst.SetColored(neckX, y0, head, color)
	dst.SetColored(neckX+1, y0, head, color)

	// Neck
	for y := y0 + 1; y < y0+h-2; y++ {
		dst.SetColored(neckX, y, GiraffeBody, color)
	}

	// Body with spots
	bodyY := y0 + h - 2
	for x := x0; x <= neckX; x++ {
		r := GiraffeBody
		if (x-x0)%2 == 1 {
			r = GiraffeSpot
		}
		dst.SetColored(x, bodyY, r, color)
	}

	// Legs alternate between straight and bent while running
	legY := y0 + h - 1
	leg := GiraffeLeg
	if snap.Player.Phase == PhaseGrounded && snap.Frame%2 == 1 {
		leg = GiraffeKnee
	}
	dst.SetColored(x0, legY, leg, color)
	dst.SetColored(neckX, legY, leg, color)
}

// DrawCenteredMessage draws a message box in the center of the screen.
func DrawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	titleX := boxX + (boxW-len([]rune(title)))/2
	dst.DrawTextColored(titleX, boxY+1, title, core.ColorBrightYellow)

	subtitleX := boxX + (boxW-len([]rune(subtitle)))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
