// Package desktop runs the game in an Ebitengine window.
package desktop

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/flapper/ecs"
	"github.com/plus3/flapper/ecs/debugui"
	debugui_ebiten "github.com/plus3/flapper/ecs/debugui/ebiten"
	"github.com/plus3/flapper/game"
	"github.com/plus3/flapper/sound"
)

const sampleRate = 48000

type Options struct {
	Title     string
	Debug     bool
	Mute      bool
	Autopilot bool
}

// Canvas is the image the draw systems paint on this frame.
type Canvas struct {
	Image *ebiten.Image
}

// App implements ebiten.Game. Update steps the world at a fixed rate; Draw
// runs a separate scheduler over the same storage.
type App struct {
	World *game.World

	draw     *ecs.Scheduler
	canvas   *ecs.Singleton[Canvas]
	imgui    *debugui_ebiten.ImguiBackend
	lastDraw time.Time
}

// NewApp installs the game systems on world together with the desktop
// input, audio and draw systems. world must not have been installed yet.
func NewApp(world *game.World, opts Options) (*App, error) {
	cfg := world.Config
	width, height := int(cfg.WindowWidth), int(cfg.WindowHeight)

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(opts.Title)

	app := &App{
		World:  world,
		draw:   ecs.NewScheduler(world.Storage),
		canvas: ecs.NewSingleton(world.Storage, Canvas{}),
	}

	var input ecs.System = &KeyboardInput{}
	if opts.Autopilot {
		input = &game.AutopilotSystem{Config: cfg}
	}

	var sinks []ecs.System
	if !opts.Mute {
		sinks = append(sinks, &AudioSystem{
			Context: audio.NewContext(sampleRate),
			Bank:    sound.NewBank(sampleRate),
		})
	}

	if opts.Debug {
		backend := debugui_ebiten.NewImguiBackend(opts.Title, width, height)
		app.imgui = &backend
		ecs.NewSingleton(world.Storage, backend)
		debugui.Spawn(world.Storage, map[string]*ecs.Scheduler{
			"Update": world.Scheduler,
			"Draw":   app.draw,
		})
		world.Storage.Spawn(debugui.ImguiItem{Render: (&Inspector{World: world}).Render})
		sinks = append(sinks, &debugui.ImguiSystem{})
	}

	world.Install(input, sinks...)

	overlay, err := NewOverlaySystem()
	if err != nil {
		return nil, fmt.Errorf("create overlay: %w", err)
	}
	app.draw.Register(&RenderSystem{})
	app.draw.Register(overlay)

	return app, nil
}

// RegisterComponents adds the components the desktop front-end spawns.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	debugui.RegisterComponents(registry)
}

func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	dt := 1.0 / float64(ebiten.TPS())
	if a.imgui == nil {
		a.World.Step(dt)
		return nil
	}
	a.imgui.Frame(func() { a.World.Step(dt) })
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	now := time.Now()
	dt := 0.0
	if !a.lastDraw.IsZero() {
		dt = now.Sub(a.lastDraw).Seconds()
	}
	a.lastDraw = now

	a.canvas.Get().Image = screen
	a.draw.Once(dt)
	a.canvas.Get().Image = nil

	if a.imgui != nil {
		a.imgui.Overlay(screen)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := int(a.World.Config.WindowWidth), int(a.World.Config.WindowHeight)
	if a.imgui != nil {
		a.imgui.Layout(w, h)
	}
	return w, h
}

// Run blocks until the window is closed or Escape is pressed.
func (a *App) Run() error {
	if err := ebiten.RunGame(a); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
