package system

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/sago/secs/internal/component"
	"github.com/sago/secs/internal/core/ecs"
	"github.com/sago/secs/internal/core/event"
	coresys "github.com/sago/secs/internal/core/system"
	"github.com/sago/secs/internal/data"
)

// SpawnSystem tops respawnable prefabs back up to their configured count.
// Phase 0 (Input).
type SpawnSystem struct {
	world *ecs.World
	scene *data.Scene
	bus   *event.Bus
	rng   *rand.Rand
	log   *zap.Logger
	live  map[string]int
}

func NewSpawnSystem(world *ecs.World, scene *data.Scene, bus *event.Bus, rng *rand.Rand, log *zap.Logger) *SpawnSystem {
	return &SpawnSystem{
		world: world,
		scene: scene,
		bus:   bus,
		rng:   rng,
		log:   log,
		live:  make(map[string]int, scene.Count()),
	}
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *SpawnSystem) Update(_ time.Duration) {
	reg := s.world.Registry()
	clear(s.live)
	ecs.NewView1[component.Prefab](reg).Each(func(_ ecs.Entity, p *component.Prefab) {
		s.live[p.Name]++
	})

	for _, p := range s.scene.Prefabs() {
		if !p.Respawn {
			continue
		}
		for n := s.live[p.Name]; n < p.Count; n++ {
			e, err := p.Spawn(reg, s.rng)
			if err != nil {
				// Prefabs were validated at load time.
				s.log.Error("respawn failed", zap.String("prefab", p.Name), zap.Error(err))
				break
			}
			event.Emit(s.bus, event.EntitySpawned{Entity: e, Prefab: p.Name})
		}
	}
}
