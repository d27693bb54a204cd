package system_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sago/secs/internal/core/ecs"
	"github.com/sago/secs/internal/core/system"
)

func TestRunnerPhaseOrder(t *testing.T) {
	r := system.NewRunner(zap.NewNop())
	var order []string
	add := func(name string, p system.Phase) {
		r.Register(system.Func{In: p, Fn: func(time.Duration) { order = append(order, name) }})
	}
	add("cleanup", system.PhaseCleanup)
	add("update-a", system.PhaseUpdate)
	add("input", system.PhaseInput)
	add("update-b", system.PhaseUpdate)
	add("output", system.PhaseOutput)

	assert.True(t, r.Tick(time.Millisecond))
	assert.Equal(t, []string{"input", "update-a", "update-b", "output", "cleanup"}, order)
	assert.Equal(t, uint64(1), r.Ticks())
	assert.Equal(t, 5, r.Len())
}

func TestRunnerTickPhase(t *testing.T) {
	r := system.NewRunner(nil)
	var got []time.Duration
	r.Register(system.Func{In: system.PhaseUpdate, Fn: func(dt time.Duration) { got = append(got, dt) }})
	r.Register(system.Func{In: system.PhaseOutput, Fn: func(time.Duration) { t.Fatal("wrong phase") }})

	r.TickPhase(system.PhaseUpdate, 5*time.Millisecond)
	assert.Equal(t, []time.Duration{5 * time.Millisecond}, got)
	assert.Equal(t, uint64(0), r.Ticks())
}

func TestRunnerEmpty(t *testing.T) {
	r := system.NewRunner(nil)
	assert.False(t, r.Tick(time.Second))
	system.Func{In: system.PhaseUpdate}.Update(time.Second) // nil Fn is a no-op
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "update", system.PhaseUpdate.String())
	assert.Equal(t, "cleanup", system.PhaseCleanup.String())
	assert.Equal(t, "unknown", system.Phase(42).String())
}

type counter struct{ N int }

type step struct{ By int }

func TestEachSystemsFollowViews(t *testing.T) {
	w := ecs.NewWorld(nil)
	a := w.Entity()
	ecs.Set(a, counter{})
	ecs.Set(a, step{By: 2})
	b := w.Entity()
	ecs.Set(b, counter{N: 10})

	r := system.NewRunner(zap.NewNop())
	r.Register(system.Each2(system.PhaseUpdate, w.Registry(),
		func(_ time.Duration, _ ecs.Entity, c *counter, s *step) { c.N += s.By }))
	var ticked []time.Duration
	r.Register(system.Each1(system.PhasePostUpdate, w.Registry(),
		func(dt time.Duration, _ ecs.Entity, c *counter) {
			c.N++
			ticked = append(ticked, dt)
		}))

	r.Tick(time.Millisecond)
	assert.Equal(t, 3, ecs.GetOf[counter](a).N)
	assert.Equal(t, 11, ecs.GetOf[counter](b).N)
	assert.Len(t, ticked, 2)

	late := w.Entity()
	ecs.Set(late, step{By: 5})
	ecs.Set(late, counter{})
	r.Tick(time.Millisecond)
	assert.Equal(t, 6, ecs.GetOf[counter](late).N, "entities created later join the next tick")
}

func TestEachSystemsHigherArities(t *testing.T) {
	w := ecs.NewWorld(nil)
	h := ecs.Set(ecs.Set(ecs.Set(ecs.Set(w.Entity(), counter{}), step{By: 1}), "tag"), 3.5)
	ecs.Set(w.Entity(), counter{})

	hits3, hits4 := 0, 0
	system.Each3(system.PhaseUpdate, w.Registry(),
		func(_ time.Duration, _ ecs.Entity, _ *counter, _ *step, _ *string) { hits3++ }).Update(0)
	system.Each4(system.PhaseUpdate, w.Registry(),
		func(_ time.Duration, e ecs.Entity, _ *counter, _ *step, s *string, f *float64) {
			hits4++
			assert.Equal(t, h.ID(), e)
			assert.Equal(t, "tag", *s)
			assert.Equal(t, 3.5, *f)
		}).Update(0)
	assert.Equal(t, 1, hits3)
	assert.Equal(t, 1, hits4)
}
