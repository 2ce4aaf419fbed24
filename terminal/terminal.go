// Package terminal runs the game in a text terminal.
package terminal

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/flapper/ecs"
	"github.com/plus3/flapper/game"
	"github.com/plus3/flapper/sound"
)

const sampleRate = beep.SampleRate(44100)

type Options struct {
	FPS       int
	Mute      bool
	Autopilot bool
}

type Terminal struct {
	World *game.World

	screen   tcell.Screen
	interval time.Duration
	audio    bool

	poller sync.WaitGroup
	closed sync.Once
}

// New opens the terminal and installs the game systems on world.
func New(world *game.World, opts Options) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return NewWithScreen(world, screen, opts), nil
}

// NewWithScreen uses an already initialised screen.
func NewWithScreen(world *game.World, screen tcell.Screen, opts Options) *Terminal {
	t := &Terminal{
		World:    world,
		screen:   screen,
		interval: time.Second / time.Duration(max(opts.FPS, 1)),
	}

	var input ecs.System
	if opts.Autopilot {
		input = &game.AutopilotSystem{Config: world.Config}
	}

	var sinks []ecs.System
	if !opts.Mute {
		if err := sound.InitSpeaker(sampleRate); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			t.audio = true
			sinks = append(sinks, &sound.SpeakerSystem{Bank: sound.NewBank(sampleRate)})
		}
	}
	sinks = append(sinks, &CellRenderer{Screen: screen})

	world.Install(input, sinks...)
	return t
}

// Run steps the world on a ticker until the player quits or ctx ends.
func (t *Terminal) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 16)
	t.poller.Add(1)
	go func() {
		defer t.poller.Done()
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || t.Handle(ev) {
				return nil
			}
		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), 0.1)
			last = now
			t.World.Step(dt)
		}
	}
}

// Handle applies one terminal event and reports whether to quit.
func (t *Terminal) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyUp:
			t.World.Input.Get().Jump = true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case ' ', 'k':
				t.World.Input.Get().Jump = true
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return false
}

// Close restores the terminal and waits for the event poller of a finished
// Run to exit. It is safe to call more than once.
func (t *Terminal) Close() {
	t.closed.Do(func() {
		if t.audio {
			speaker.Close()
		}
		t.screen.Fini()
		t.poller.Wait()
	})
}
