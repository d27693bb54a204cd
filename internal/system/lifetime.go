package system

import (
	"time"

	"github.com/sago/secs/internal/component"
	"github.com/sago/secs/internal/core/ecs"
	"github.com/sago/secs/internal/core/event"
	coresys "github.com/sago/secs/internal/core/system"
)

// LifetimeSystem counts lifetimes down and retires expired entities.
// Destruction is deferred to CleanupSystem; an EntityExpired event is emitted
// so cached groups can be invalidated next tick.
// Phase 2 (Update).
type LifetimeSystem struct {
	world *ecs.World
	bus   *event.Bus
}

func NewLifetimeSystem(world *ecs.World, bus *event.Bus) *LifetimeSystem {
	return &LifetimeSystem{world: world, bus: bus}
}

func (s *LifetimeSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *LifetimeSystem) Update(_ time.Duration) {
	reg := s.world.Registry()
	ecs.NewView1[component.Lifetime](reg).Each(func(e ecs.Entity, l *component.Lifetime) {
		if l.Ticks < 0 {
			return // already queued
		}
		l.Ticks--
		if l.Ticks > 0 {
			return
		}
		l.Ticks = -1
		s.world.MarkForDestruction(e)
		ev := event.EntityExpired{Entity: e}
		if ecs.Has[component.Prefab](reg, e) {
			ev.Prefab = ecs.Get[component.Prefab](reg, e).Name
		}
		event.Emit(s.bus, ev)
	})
}
