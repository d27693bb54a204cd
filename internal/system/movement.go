package system

import (
	"time"

	"github.com/sago/secs/internal/component"
	"github.com/sago/secs/internal/core/ecs"
	coresys "github.com/sago/secs/internal/core/system"
	"github.com/sago/secs/internal/scripting"
)

// MovementSystem damps velocity through Lua calc_drag and integrates position.
// Phase 2 (Update).
type MovementSystem struct {
	world *ecs.World
	lua   *scripting.Engine
}

func NewMovementSystem(world *ecs.World, lua *scripting.Engine) *MovementSystem {
	return &MovementSystem{world: world, lua: lua}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *MovementSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	view := ecs.NewView2[component.Position, component.Velocity](s.world.Registry())
	view.Each(func(_ ecs.Entity, p *component.Position, v *component.Velocity) {
		vx, vy := s.lua.CalcDrag(float64(v.X), float64(v.Y), sec)
		v.X, v.Y = float32(vx), float32(vy)
		p.X += v.X * float32(sec)
		p.Y += v.Y * float32(sec)
	})
}
