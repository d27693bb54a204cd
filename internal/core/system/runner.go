package system

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Runner executes systems in phase order each tick. Systems sharing a phase
// run in registration order.
type Runner struct {
	systems []System
	sorted  bool
	ticks   uint64
	log     *zap.Logger
}

func NewRunner(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		systems: make([]System, 0, 16),
		log:     log,
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
	r.log.Debug("registered system",
		zap.String("system", fmt.Sprintf("%T", s)),
		zap.Stringer("phase", s.Phase()))
}

// Len returns the number of registered systems.
func (r *Runner) Len() int { return len(r.systems) }

// Ticks returns how many full ticks have run.
func (r *Runner) Ticks() uint64 { return r.ticks }

// Tick runs every system once. It reports false when nothing is registered.
func (r *Runner) Tick(dt time.Duration) bool {
	r.ensureSorted()
	for _, s := range r.systems {
		s.Update(dt)
	}
	r.ticks++
	return len(r.systems) > 0
}

// TickPhase runs only the systems registered for phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
