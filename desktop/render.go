package desktop

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/flapper/ecs"
	"github.com/plus3/flapper/game"
	"github.com/plus3/flapper/geom"
)

var skyColor = color.RGBA{112, 197, 206, 255}

type meshItem struct {
	*geom.Transform
	*game.Mesh2D
}

// RenderSystem draws meshes back to front by z and then sprites on top.
// The world origin is the centre of the screen with y pointing up.
type RenderSystem struct {
	Canvas  ecs.Singleton[Canvas]
	Window  ecs.Singleton[game.Window]
	Game    ecs.Singleton[game.Game]
	Meshes  ecs.Query[meshItem]
	Sprites ecs.Query[struct {
		*geom.Transform
		*game.Sprite
		Player *game.PlayerTag `ecs:"optional"`
	}]

	white    *ebiten.Image
	birds    []*ebiten.Image
	vertices []ebiten.Vertex
	order    []meshItem
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	canvas := s.Canvas.Get()
	window := s.Window.Get()
	if canvas == nil || canvas.Image == nil || window == nil {
		return
	}
	screen := canvas.Image
	screen.Fill(skyColor)

	if s.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		s.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	s.order = s.order[:0]
	for item := range s.Meshes.Values() {
		s.order = append(s.order, item)
	}
	slices.SortStableFunc(s.order, func(a, b meshItem) int {
		switch {
		case a.Translation[2] < b.Translation[2]:
			return -1
		case a.Translation[2] > b.Translation[2]:
			return 1
		}
		return 0
	})
	for _, item := range s.order {
		s.drawMesh(screen, window, item)
	}

	var velocity mgl32.Vec2
	if g := s.Game.Get(); g != nil {
		velocity = g.Player.Velocity
	}
	for item := range s.Sprites.Values() {
		tilt := float32(0)
		if item.Player != nil {
			tilt = birdTilt(velocity[1])
		}
		s.drawSprite(screen, window, item.Transform, item.Sprite, tilt)
	}
}

func toScreen(window *game.Window, p mgl32.Vec3) (float32, float32) {
	return p[0] + window.Width/2, window.Height/2 - p[1]
}

func (s *RenderSystem) drawMesh(screen *ebiten.Image, window *game.Window, item meshItem) {
	mesh := item.Mesh
	if mesh == nil || len(mesh.Indices) == 0 {
		return
	}

	m := item.Transform.Matrix()
	r, g, b, a := float32(item.Color.R)/255, float32(item.Color.G)/255, float32(item.Color.B)/255, float32(item.Color.A)/255

	s.vertices = s.vertices[:0]
	for _, p := range mesh.Positions {
		x, y := toScreen(window, m.Mul4x1(p.Vec4(1)).Vec3())
		s.vertices = append(s.vertices, ebiten.Vertex{
			DstX: x, DstY: y,
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		})
	}
	screen.DrawTriangles(s.vertices, mesh.Indices, s.white, &ebiten.DrawTrianglesOptions{})
}

func (s *RenderSystem) drawSprite(screen *ebiten.Image, window *game.Window, t *geom.Transform, sprite *game.Sprite, tilt float32) {
	if s.birds == nil {
		s.birds = birdFrames(birdFrameCount, birdImageSize)
	}
	img := s.birds[sprite.Frame%len(s.birds)]

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-birdImageSize/2, -birdImageSize/2)
	sy := float64(sprite.Size[1]) / birdImageSize
	if sprite.FlipY {
		sy = -sy
	}
	op.GeoM.Scale(float64(sprite.Size[0])/birdImageSize, sy)
	// Screen y points down, so a positive world angle turns the other way.
	op.GeoM.Rotate(-float64(t.Rotation + tilt))
	x, y := toScreen(window, t.Translation)
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

// birdTilt leans the bird into its vertical velocity.
func birdTilt(vy float32) float32 {
	return max(-0.6, min(0.4, vy/800))
}

const (
	birdFrameCount = 8
	birdImageSize  = 75
)

var (
	birdBody = color.RGBA{250, 200, 40, 255}
	birdWing = color.RGBA{240, 150, 30, 255}
	birdEye  = color.RGBA{255, 255, 255, 255}
	birdBeak = color.RGBA{230, 80, 40, 255}
)

// birdFrames paints a flap cycle: the wing swings up and down once over
// all frames.
func birdFrames(n, size int) []*ebiten.Image {
	frames := make([]*ebiten.Image, n)
	c := float32(size) / 2
	for i := range frames {
		img := ebiten.NewImage(size, size)
		vector.DrawFilledCircle(img, c, c, c*0.62, birdBody, true)

		swing := float32(math.Sin(2*math.Pi*float64(i)/float64(n))) * c * 0.3
		vector.DrawFilledCircle(img, c-c*0.3, c+swing, c*0.32, birdWing, true)

		vector.DrawFilledCircle(img, c+c*0.3, c-c*0.25, c*0.16, birdEye, true)
		vector.DrawFilledCircle(img, c+c*0.35, c-c*0.25, c*0.07, color.Black, true)
		vector.DrawFilledRect(img, c+c*0.45, c, c*0.45, c*0.18, birdBeak, true)
		frames[i] = img
	}
	return frames
}
