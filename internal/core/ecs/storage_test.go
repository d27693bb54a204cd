package ecs_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sago/secs/internal/core/ecs"
)

func TestStorageEmplaceGet(t *testing.T) {
	s := ecs.NewStorage[position]()
	e := ecs.NewEntity(3, 0)

	p := s.Emplace(e, position{1, 2})
	assert.Equal(t, position{1, 2}, *p)
	assert.Equal(t, position{1, 2}, *s.Get(e))

	s.Emplace(e, position{5, 6})
	assert.Equal(t, 1, s.Len(), "emplace on a contained entity overwrites")
	assert.Equal(t, position{5, 6}, *s.Get(e))

	s.Get(e).X = 9
	assert.Equal(t, float32(9), s.Get(e).X, "Get returns a pointer into the storage")
}

func TestStorageEraseKeepsOthers(t *testing.T) {
	s := ecs.NewStorage[health]()
	es := make([]ecs.Entity, 5)
	for i := range es {
		es[i] = ecs.NewEntity(uint64(i), 0)
		s.Emplace(es[i], health{HP: i * 10})
	}

	s.Erase(es[1])
	assert.False(t, s.Contains(es[1]))
	assert.Equal(t, 4, s.Len())
	for i, e := range es {
		if i == 1 {
			continue
		}
		assert.Equal(t, i*10, s.Get(e).HP)
	}

	s.Erase(es[4])
	s.Erase(es[4]) // no-op
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 0, s.Get(es[0]).HP)
	assert.Equal(t, 20, s.Get(es[2]).HP)
	assert.Equal(t, 30, s.Get(es[3]).HP)
}

func TestStorageRandomisedConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := ecs.NewStorage[health]()
	model := make(map[ecs.Entity]int)

	for step := 0; step < 5000; step++ {
		e := ecs.NewEntity(uint64(rng.Intn(128)), 0)
		if rng.Intn(3) > 0 {
			v := rng.Int()
			s.Emplace(e, health{HP: v})
			model[e] = v
		} else {
			s.Erase(e)
			delete(model, e)
		}
	}

	require.Equal(t, len(model), s.Len())
	require.Len(t, s.Entities(), s.Len())
	for e, v := range model {
		require.True(t, s.Contains(e))
		require.Equal(t, v, s.Get(e).HP)
	}
}

func TestStorageEachLockStep(t *testing.T) {
	s := ecs.NewStorage[health]()
	for i := 0; i < 4; i++ {
		s.Emplace(ecs.NewEntity(uint64(i), 0), health{HP: i})
	}
	s.Erase(ecs.NewEntity(0, 0))

	seen := map[ecs.Entity]int{}
	s.Each(func(e ecs.Entity, h *health) {
		seen[e] = h.HP
		h.HP += 100
	})
	assert.Equal(t, map[ecs.Entity]int{
		ecs.NewEntity(1, 0): 1,
		ecs.NewEntity(2, 0): 2,
		ecs.NewEntity(3, 0): 3,
	}, seen)
	assert.Equal(t, 103, s.Get(ecs.NewEntity(3, 0)).HP)
}

func TestStorageClearAndClone(t *testing.T) {
	s := ecs.NewStorage[health]()
	a, b := ecs.NewEntity(0, 0), ecs.NewEntity(1, 0)
	s.Emplace(a, health{HP: 1})
	s.Emplace(b, health{HP: 2})

	c := s.Clone()
	c.Get(a).HP = 50
	assert.Equal(t, 1, s.Get(a).HP, "clone deep-copies component values")

	var erased ecs.AnyStorage = c
	erased.Erase(b)
	assert.Equal(t, 1, erased.Len())
	assert.True(t, s.Contains(b))

	cc := erased.CloneStorage()
	assert.Equal(t, ecs.TypeOf[health](), cc.Type())
	assert.True(t, cc.Contains(a))

	s.Clear()
	assert.True(t, s.Empty())
	assert.False(t, s.Contains(a))
}
