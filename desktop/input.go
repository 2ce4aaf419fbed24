package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/flapper/ecs"
	"github.com/plus3/flapper/ecs/debugui"
	"github.com/plus3/flapper/game"
)

// KeyboardInput requests a jump when space or the left mouse button is
// released. Input that ImGui has captured is left alone.
type KeyboardInput struct {
	Input ecs.Singleton[game.Input]
	Imgui ecs.Singleton[debugui.ImguiInputState]
}

func (s *KeyboardInput) Execute(frame *ecs.UpdateFrame) {
	input := s.Input.Get()
	if input == nil {
		return
	}

	var keyboard, mouse bool
	if state := s.Imgui.Get(); state != nil {
		keyboard, mouse = state.WantCaptureKeyboard, state.WantCaptureMouse
	}

	if !keyboard && inpututil.IsKeyJustReleased(ebiten.KeySpace) {
		input.Jump = true
	}
	if !mouse && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		input.Jump = true
	}
}
