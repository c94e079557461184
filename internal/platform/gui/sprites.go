package gui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/giraffe-run/internal/config"
)

// Palette
var (
	skyColor     = color.RGBA{0xbf, 0xe6, 0xff, 0xff}
	hillColor    = color.RGBA{0x9c, 0xc8, 0x7a, 0xff}
	groundColor  = color.RGBA{0x8b, 0x5a, 0x2b, 0xff}
	bushColor    = color.RGBA{0x2e, 0x8b, 0x3c, 0xff}
	giraffeColor = color.RGBA{0xf2, 0xb7, 0x3f, 0xff}
	spotColor    = color.RGBA{0x9a, 0x5b, 0x1e, 0xff}
	failedColor  = color.RGBA{0xd9, 0x3b, 0x3b, 0xff}
)

// buildSheet paints the run animation: FrameCount giraffe frames laid out
// left to right, each FrameWidth by FrameHeight. Frames differ in leg
// stride only.
func buildSheet(p config.PolishConfig) *ebiten.Image {
	count := max(p.FrameCount, 1)
	fw, fh := float32(p.FrameWidth), float32(p.FrameHeight)
	sheet := ebiten.NewImage(p.FrameWidth*count, p.FrameHeight)

	for i := 0; i < count; i++ {
		ox := float32(i) * fw
		drawGiraffe(sheet, ox, 0, fw, fh, stride(i, count), giraffeColor)
	}
	return sheet
}

// stride returns the leg swing of frame i in [-1, 1].
func stride(i, count int) float32 {
	switch count {
	case 1:
		return 0
	case 2:
		return float32(i*2 - 1)
	}
	// Triangle wave over the cycle
	half := float32(count) / 2
	pos := float32(i)
	if pos > half {
		pos = float32(count) - pos
	}
	return pos/half*2 - 1
}

// drawGiraffe paints one giraffe into the box at (x, y) of size w by h.
func drawGiraffe(dst *ebiten.Image, x, y, w, h, swing float32, c color.Color) {
	unit := w / 12

	// Legs
	legTop := y + h*0.7
	legH := h * 0.3
	vector.DrawFilledRect(dst, x+unit*2+swing*unit, legTop, unit, legH, c, false)
	vector.DrawFilledRect(dst, x+unit*8-swing*unit, legTop, unit, legH, c, false)

	// Body with spots
	bodyY := y + h*0.5
	vector.DrawFilledRect(dst, x+unit, bodyY, unit*9, h*0.22, c, false)
	for i := float32(0); i < 3; i++ {
		vector.DrawFilledRect(dst, x+unit*(2+i*2.5), bodyY+h*0.05, unit*1.2, h*0.08, spotColor, false)
	}

	// Neck and head
	vector.DrawFilledRect(dst, x+unit*8, y+h*0.1, unit*1.5, h*0.42, c, false)
	vector.DrawFilledRect(dst, x+unit*8, y, unit*3.5, h*0.12, c, false)
	vector.DrawFilledRect(dst, x+unit*10.5, y+h*0.03, unit*0.6, h*0.04, spotColor, false)
}
