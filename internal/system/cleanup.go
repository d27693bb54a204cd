package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/sago/secs/internal/core/ecs"
	coresys "github.com/sago/secs/internal/core/system"
)

// CleanupSystem applies the destructions queued during the tick.
// Phase 5 (Cleanup).
type CleanupSystem struct {
	world     *ecs.World
	log       *zap.Logger
	last      int
	destroyed int
	stale     int
}

func NewCleanupSystem(world *ecs.World, log *zap.Logger) *CleanupSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &CleanupSystem{world: world, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	queued := s.world.Pending()
	if queued == 0 {
		s.last = 0
		return
	}
	s.last = s.world.FlushDestroyQueue()
	s.destroyed += s.last
	if skipped := queued - s.last; skipped > 0 {
		s.stale += skipped
		s.log.Debug("ignored stale destroy requests", zap.Int("count", skipped))
	}
}

// LastFlushed returns how many entities the most recent Update destroyed.
func (s *CleanupSystem) LastFlushed() int { return s.last }

// Destroyed returns the running total of destroyed entities.
func (s *CleanupSystem) Destroyed() int { return s.destroyed }

// Stale returns how many queued handles were already dead or duplicated.
func (s *CleanupSystem) Stale() int { return s.stale }
