package terminal

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/flapper/ecs"
	"github.com/plus3/flapper/game"
	"github.com/plus3/flapper/geom"
)

const (
	solidRune  = '█'
	playerRune = '▓'
)

var (
	playerStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	deadStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	statusStyle = tcell.StyleDefault.Reverse(true)
)

// viewport maps the world, centred on the origin with y up, onto a grid
// of cols by rows cells.
type viewport struct {
	window     game.Window
	cols, rows int
}

func (v viewport) col(x float32) float64 {
	return float64((x + v.window.Width/2) / v.window.Width * float32(v.cols))
}

func (v viewport) row(y float32) float64 {
	return float64((v.window.Height/2 - y) / v.window.Height * float32(v.rows))
}

// cells returns the half-open cell ranges a world rect touches, clipped to
// the grid.
func (v viewport) cells(r geom.Rect) (c0, c1, r0, r1 int) {
	c0 = max(0, int(math.Floor(v.col(r.Min[0]))))
	c1 = min(v.cols, int(math.Ceil(v.col(r.Max[0]))))
	r0 = max(0, int(math.Floor(v.row(r.Max[1]))))
	r1 = min(v.rows, int(math.Ceil(v.row(r.Min[1]))))
	return c0, c1, r0, r1
}

// CellRenderer draws the world into the screen after every frame. The
// bottom row is a status line.
type CellRenderer struct {
	Screen tcell.Screen
	Window ecs.Singleton[game.Window]
	Game   ecs.Singleton[game.Game]
	Meshes ecs.Query[struct {
		*geom.Transform
		*game.Mesh2D
	}]
}

func (s *CellRenderer) Execute(frame *ecs.UpdateFrame) {
	window := s.Window.Get()
	g := s.Game.Get()
	if s.Screen == nil || window == nil || g == nil {
		return
	}

	cols, rows := s.Screen.Size()
	if cols <= 0 || rows <= 1 {
		return
	}
	vp := viewport{window: *window, cols: cols, rows: rows - 1}
	s.Screen.Clear()

	for item := range s.Meshes.Values() {
		rect, ok := item.Mesh.WorldRect(*item.Transform)
		if !ok {
			continue
		}
		s.fill(vp, rect, solidRune, tcell.StyleDefault.Foreground(rgb(item.Color)))
	}

	if id, ok := frame.Storage.ResolveEntityRef(g.Player.Entity); ok {
		if t := ecs.ReadComponent[geom.Transform](frame.Storage, id); t != nil {
			style := playerStyle
			if g.State == game.GameOver {
				style = deadStyle
			}
			s.fill(vp, g.Player.CollisionBox.Translate(t.Translation2D()), playerRune, style)
		}
	}

	status := fmt.Sprintf(" score %d  %s  space jump  q quit ", g.Score, g.State)
	for x := range cols {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		s.Screen.SetContent(x, rows-1, r, nil, statusStyle)
	}

	s.Screen.Show()
}

func (s *CellRenderer) fill(vp viewport, rect geom.Rect, r rune, style tcell.Style) {
	c0, c1, r0, r1 := vp.cells(rect)
	for y := r0; y < r1; y++ {
		for x := c0; x < c1; x++ {
			s.Screen.SetContent(x, y, r, nil, style)
		}
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
