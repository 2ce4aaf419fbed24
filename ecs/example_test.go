package ecs_test

import (
	"fmt"

	"github.com/plus3/flapper/ecs"
)

type Gravity struct {
	Accel float32
}

type FallSystem struct {
	Gravity ecs.Singleton[Gravity]
	Bodies  ecs.Query[struct {
		*Position
		*Velocity
	}]
}

func (s *FallSystem) Execute(frame *ecs.UpdateFrame) {
	g := s.Gravity.Get()
	for body := range s.Bodies.Values() {
		body.Velocity.DY += g.Accel * float32(frame.DeltaTime)
		body.Position.Y += body.Velocity.DY * float32(frame.DeltaTime)
	}
}

func Example() {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton(storage, Gravity{Accel: -10})

	scheduler := ecs.NewScheduler(storage)

	var ball *ecs.EntityRef
	scheduler.RegisterStartup(systemFunc(func(frame *ecs.UpdateFrame) {
		ball = frame.Commands.Spawn(Position{Y: 100}, Velocity{})
	}))
	scheduler.Register(&FallSystem{})

	for range 2 {
		scheduler.Once(1)
	}

	pos := ecs.ReadComponent[Position](storage, ball.Id)
	fmt.Println(pos.Y)
	// Output: 70
}
