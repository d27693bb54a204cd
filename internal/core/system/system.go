package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: spawn requests
	PhasePreUpdate               // 1: deliver last tick's events
	PhaseUpdate                  // 2: simulation logic
	PhasePostUpdate              // 3: regen and other derived state
	PhaseOutput                  // 4: render preparation
	PhaseCleanup                 // 5: destroy queued entities
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre_update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post_update"
	case PhaseOutput:
		return "output"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

// Func adapts a plain function into a System, for systems that need no state
// of their own beyond what the closure captures.
type Func struct {
	In Phase
	Fn func(dt time.Duration)
}

func (f Func) Phase() Phase { return f.In }

func (f Func) Update(dt time.Duration) {
	if f.Fn != nil {
		f.Fn(dt)
	}
}
