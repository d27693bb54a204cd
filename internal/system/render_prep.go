package system

import (
	"cmp"
	"time"

	"github.com/sago/secs/internal/component"
	"github.com/sago/secs/internal/core/ecs"
	"github.com/sago/secs/internal/core/event"
	coresys "github.com/sago/secs/internal/core/system"
)

// DrawItem is one entry of the per-tick draw list handed to the renderer.
type DrawItem struct {
	Entity ecs.Entity
	Mesh   string
	Layer  int
	X, Y   float32
	Z      float32
}

// RenderPrepSystem builds a back-to-front draw list from a cached
// Position+Mesh group. The group is only rebuilt when a spawn or expiry event
// arrives, so entities show up one tick after the event is delivered.
// Phase 4 (Output).
type RenderPrepSystem struct {
	group    *ecs.Group2[component.Position, component.Mesh]
	draw     []DrawItem
	rebuilds int
}

func NewRenderPrepSystem(world *ecs.World, bus *event.Bus) *RenderPrepSystem {
	s := &RenderPrepSystem{
		group: ecs.NewGroup2[component.Position, component.Mesh](world.Registry()),
		draw:  make([]DrawItem, 0, 256),
	}
	event.Subscribe(bus, func(event.EntitySpawned) { s.group.MarkDirty() })
	event.Subscribe(bus, func(event.EntityExpired) { s.group.MarkDirty() })
	return s
}

func (s *RenderPrepSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *RenderPrepSystem) Update(_ time.Duration) {
	if s.group.Dirty() {
		s.rebuilds++
	}
	ecs.SortByComponent(s.group, func(a, b *component.Position) int {
		return cmp.Compare(a.Z, b.Z)
	})

	s.draw = s.draw[:0]
	s.group.Each(func(e ecs.Entity, p *component.Position, m *component.Mesh) {
		s.draw = append(s.draw, DrawItem{
			Entity: e,
			Mesh:   m.ID,
			Layer:  m.Layer,
			X:      p.X,
			Y:      p.Y,
			Z:      p.Z,
		})
	})
}

// DrawList returns the list built by the last Update. It is reused next tick.
func (s *RenderPrepSystem) DrawList() []DrawItem { return s.draw }

// Rebuilds returns how many times the cached group has been refilled.
func (s *RenderPrepSystem) Rebuilds() int { return s.rebuilds }
