package system

import (
	"time"

	"github.com/sago/secs/internal/component"
	"github.com/sago/secs/internal/core/ecs"
	coresys "github.com/sago/secs/internal/core/system"
	"github.com/sago/secs/internal/scripting"
)

// RegenSystem restores Health through Lua calc_regen every tick.
// Phase 3 (PostUpdate).
type RegenSystem struct {
	world *ecs.World
	lua   *scripting.Engine
}

func NewRegenSystem(world *ecs.World, lua *scripting.Engine) *RegenSystem {
	return &RegenSystem{world: world, lua: lua}
}

func (s *RegenSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *RegenSystem) Update(_ time.Duration) {
	ecs.NewView1[component.Health](s.world.Registry()).Each(func(_ ecs.Entity, h *component.Health) {
		if h.HP >= h.MaxHP {
			return
		}
		h.HP += s.lua.CalcRegen(h.HP, h.MaxHP)
		h.HP = min(max(h.HP, 0), h.MaxHP)
	})
}
