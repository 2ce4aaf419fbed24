package ecs

// System is one step of the frame. Systems may declare Query and Singleton
// fields; the Scheduler initialises them on registration. Other fields are
// free for state that persists between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// Condition decides, once per frame and per system, whether the system runs.
type Condition func(storage *Storage) bool

// RegisterOption customises how a system is scheduled.
type RegisterOption func(*scheduledSystem)

// RunIf gates the system on cond. Several RunIf options must all hold.
func RunIf(cond Condition) RegisterOption {
	return func(s *scheduledSystem) {
		s.conditions = append(s.conditions, cond)
	}
}
