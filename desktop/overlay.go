package desktop

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/flapper/ecs"
	"github.com/plus3/flapper/game"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	fadeSeconds  = 0.8
	fadeAlpha    = 0.6
	popSeconds   = 0.35
	popScale     = 1.6
	scoreSize    = 32
	bannerSize   = 28
	hintSize     = 12
	scoreOffsetY = 40
)

// OverlaySystem draws the score and, after the game ends, a banner over a
// darkening screen.
type OverlaySystem struct {
	Canvas ecs.Singleton[Canvas]
	Window ecs.Singleton[game.Window]
	Game   ecs.Singleton[game.Game]

	source *text.GoTextFaceSource

	fade      *gween.Tween
	alpha     float32
	pop       *gween.Tween
	scale     float32
	lastScore int
}

func NewOverlaySystem() (*OverlaySystem, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.PressStart2P_ttf))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &OverlaySystem{source: source, scale: 1}, nil
}

func (s *OverlaySystem) Execute(frame *ecs.UpdateFrame) {
	canvas := s.Canvas.Get()
	window := s.Window.Get()
	g := s.Game.Get()
	if canvas == nil || canvas.Image == nil || window == nil || g == nil {
		return
	}
	screen := canvas.Image
	dt := float32(frame.DeltaTime)

	if g.Score != s.lastScore {
		s.lastScore = g.Score
		s.pop = gween.New(popScale, 1, popSeconds, ease.OutBack)
	}
	if s.pop != nil {
		var done bool
		s.scale, done = s.pop.Update(dt)
		if done {
			s.pop = nil
		}
	}

	if g.State == game.GameOver {
		if s.fade == nil && s.alpha == 0 {
			s.fade = gween.New(0, fadeAlpha, fadeSeconds, ease.OutQuad)
		}
		if s.fade != nil {
			var done bool
			s.alpha, done = s.fade.Update(dt)
			if done {
				s.fade = nil
			}
		}
		vector.DrawFilledRect(screen, 0, 0, window.Width, window.Height, color.RGBA{0, 0, 0, uint8(s.alpha * 255)}, false)
	}

	cx := float64(window.Width) / 2
	s.draw(screen, fmt.Sprint(g.Score), scoreSize*float64(s.scale), cx, scoreOffsetY, color.White)

	if g.State == game.GameOver {
		visible := s.alpha / fadeAlpha
		cy := float64(window.Height) / 2
		s.draw(screen, "GAME OVER", bannerSize, cx, cy-bannerSize, fadeColor(color.RGBA{255, 90, 60, 255}, visible))
		s.draw(screen, fmt.Sprintf("score %d", g.Score), hintSize*1.5, cx, cy+bannerSize, fadeColor(color.White, visible))
		s.draw(screen, "press Esc to quit", hintSize, cx, cy+bannerSize*2.5, fadeColor(color.White, visible))
	}
}

func (s *OverlaySystem) draw(screen *ebiten.Image, msg string, size, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, msg, &text.GoTextFace{Source: s.source, Size: size}, op)
}

func fadeColor(c color.Color, alpha float32) color.Color {
	r, g, b, a := c.RGBA()
	k := min(max(alpha, 0), 1)
	return color.RGBA64{
		R: uint16(float32(r) * k),
		G: uint16(float32(g) * k),
		B: uint16(float32(b) * k),
		A: uint16(float32(a) * k),
	}
}
