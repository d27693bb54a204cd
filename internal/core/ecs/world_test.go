package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sago/secs/internal/core/ecs"
)

func TestWorldDeferredDestruction(t *testing.T) {
	w := ecs.NewWorld(zap.NewNop())
	r := w.Registry()
	var es []ecs.Entity
	for i := 0; i < 5; i++ {
		e := w.Create()
		ecs.Emplace(r, e, health{HP: i})
		es = append(es, e)
	}

	// Retire entities while iterating: the view stays intact until the flush.
	ecs.NewView1[health](r).Each(func(e ecs.Entity, h *health) {
		if h.HP%2 == 0 {
			w.MarkForDestruction(e)
		}
	})
	w.MarkForDestruction(es[0]) // duplicate
	assert.Equal(t, 4, w.Pending())
	assert.Equal(t, 5, r.Alive())

	assert.Equal(t, 3, w.FlushDestroyQueue())
	assert.Equal(t, 0, w.Pending())
	assert.False(t, w.Alive(es[0]))
	assert.True(t, w.Alive(es[1]))
	assert.False(t, w.Alive(es[2]))
	assert.Equal(t, 2, ecs.NewView1[health](r).Size())

	assert.Equal(t, 0, w.FlushDestroyQueue())
}

func TestWorldNilLogger(t *testing.T) {
	w := ecs.NewWorld(nil)
	w.MarkForDestruction(w.Create())
	assert.Equal(t, 1, w.FlushDestroyQueue())
}

func TestWorldEntityHandle(t *testing.T) {
	w := ecs.NewWorld(nil)
	h := ecs.Set(ecs.Set(w.Entity(), position{1, 2}), health{HP: 5})

	assert.True(t, h.Valid())
	assert.Same(t, w.Registry(), h.Registry())
	assert.True(t, ecs.HasOf[position](h))
	assert.True(t, ecs.HasOf[health](h))
	assert.False(t, ecs.HasOf[velocity](h))
	assert.Equal(t, position{1, 2}, *ecs.GetOf[position](h))

	ecs.GetOf[health](h).HP--
	assert.Equal(t, 4, ecs.Get[health](w.Registry(), h.ID()).HP)

	ecs.Set(h, position{3, 4})
	assert.Equal(t, position{3, 4}, *ecs.GetOf[position](h), "Set replaces")

	ecs.RemoveOf[position](h)
	assert.False(t, ecs.HasOf[position](h))
	assert.Equal(t, h, w.Handle(h.ID()))
	assert.Equal(t, h.ID().String(), h.String())

	h.Destroy()
	assert.False(t, h.Valid())
	assert.False(t, w.Alive(h.ID()))
	assert.False(t, ecs.HasOf[health](h))
	requirePanicsWith(t, ecs.ErrInvalidEntity, func() { ecs.GetOf[health](h) })
	requirePanicsWith(t, ecs.ErrInvalidEntity, func() { ecs.Set(h, tag{}) })
	requirePanicsWith(t, ecs.ErrInvalidEntity, func() { ecs.RemoveOf[health](h) })
}

func TestZeroHandleIsInvalid(t *testing.T) {
	var h ecs.Handle
	assert.False(t, h.Valid())
	assert.False(t, ecs.HasOf[position](h))
}
