package ecs_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sago/secs/internal/core/ecs"
)

func TestViewEachYieldsMatchingComponents(t *testing.T) {
	r := ecs.NewRegistry()
	a, b, c := r.Create(), r.Create(), r.Create()
	ecs.Emplace(r, a, position{1, 1})
	ecs.Emplace(r, a, velocity{1, 0})
	ecs.Emplace(r, b, position{2, 2})
	ecs.Emplace(r, c, velocity{0, 1})
	ecs.Emplace(r, c, position{3, 3})

	v := ecs.NewView2[position, velocity](r)
	seen := map[ecs.Entity]position{}
	v.Each(func(e ecs.Entity, p *position, vel *velocity) {
		p.X += vel.DX
		p.Y += vel.DY
		seen[e] = *p
	})
	assert.Equal(t, map[ecs.Entity]position{a: {2, 1}, c: {3, 4}}, seen)
	assert.Equal(t, position{2, 1}, *ecs.Get[position](r, a), "Each hands out pointers into storage")
	assert.Equal(t, 2, v.Size())
	assert.False(t, v.Empty())

	var ents []ecs.Entity
	v.EachEntity(func(e ecs.Entity) { ents = append(ents, e) })
	assert.ElementsMatch(t, []ecs.Entity{a, c}, ents)
}

func TestViewMissingStorage(t *testing.T) {
	r := ecs.NewRegistry()
	e := r.Create()
	ecs.Emplace(r, e, position{})

	v := ecs.NewView2[position, health](r)
	assert.Equal(t, 0, v.Size())
	assert.True(t, v.Empty())
	v.Each(func(ecs.Entity, *position, *health) { t.Fatal("no entity owns health") })
	assert.True(t, ecs.NewView1[health](r).Empty())
	assert.Equal(t, 1, r.Storages(), "views do not create storages")
}

func TestViewSizeMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for round := 0; round < 20; round++ {
		r := ecs.NewRegistry()
		var all []ecs.Entity
		for i := 0; i < 300; i++ {
			e := r.Create()
			all = append(all, e)
			if rng.Intn(2) == 0 {
				ecs.Emplace(r, e, position{})
			}
			if rng.Intn(2) == 0 {
				ecs.Emplace(r, e, velocity{})
			}
			if rng.Intn(3) == 0 {
				ecs.Emplace(r, e, health{})
			}
			if rng.Intn(4) == 0 {
				ecs.Emplace(r, e, tag{})
			}
		}
		for _, e := range all {
			switch rng.Intn(6) {
			case 0:
				r.Destroy(e)
			case 1:
				ecs.Remove[position](r, e)
			}
		}

		want2, want3, want4 := 0, 0, 0
		for _, e := range all {
			if !ecs.Has[position](r, e) || !ecs.Has[velocity](r, e) {
				continue
			}
			want2++
			if ecs.Has[health](r, e) {
				want3++
				if ecs.Has[tag](r, e) {
					want4++
				}
			}
		}

		require.Equal(t, want2, ecs.NewView2[position, velocity](r).Size())
		require.Equal(t, want2, ecs.NewView2[velocity, position](r).Size(), "driving storage does not change the result")
		require.Equal(t, want3, ecs.NewView3[position, velocity, health](r).Size())
		require.Equal(t, want4, ecs.NewView4[position, velocity, health, tag](r).Size())

		n := 0
		ecs.NewView4[tag, health, velocity, position](r).Each(
			func(ecs.Entity, *tag, *health, *velocity, *position) { n++ })
		require.Equal(t, want4, n)

		n = 0
		ecs.NewView3[health, position, velocity](r).EachEntity(func(ecs.Entity) { n++ })
		require.Equal(t, want3, n)
	}
}

func TestViewIsRecomputed(t *testing.T) {
	r := ecs.NewRegistry()
	v := ecs.NewView1[health](r)
	assert.Equal(t, 0, v.Size())

	e := r.Create()
	ecs.Emplace(r, e, health{HP: 3})
	assert.Equal(t, 1, v.Size())

	r.Destroy(e)
	assert.Equal(t, 0, v.Size())
}

func TestViewEachToleratesDestroyingVisitedEntity(t *testing.T) {
	r := ecs.NewRegistry()
	var all []ecs.Entity
	for i := 0; i < 5; i++ {
		e := r.Create()
		ecs.Emplace(r, e, health{HP: i})
		all = append(all, e)
	}

	var seen []int
	require.NotPanics(t, func() {
		ecs.NewView1[health](r).Each(func(e ecs.Entity, h *health) {
			seen = append(seen, h.HP)
			r.Destroy(e)
		})
	})
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, seen, "every entity visited exactly once")
	assert.Equal(t, 0, r.Alive())
	assert.Equal(t, 0, ecs.StorageLen[health](r))
}

func TestViewEachToleratesRemovingDrivingComponent(t *testing.T) {
	r := ecs.NewRegistry()
	for i := 0; i < 4; i++ {
		e := r.Create()
		ecs.Emplace(r, e, position{X: float32(i)})
		ecs.Emplace(r, e, velocity{DX: 1})
	}

	visits := 0
	ecs.NewView2[position, velocity](r).Each(func(e ecs.Entity, p *position, v *velocity) {
		visits++
		p.X += v.DX
		if int(p.X)%2 == 0 {
			ecs.Remove[position](r, e)
		}
	})
	assert.Equal(t, 4, visits)
	assert.Equal(t, 2, ecs.StorageLen[position](r))
	ecs.NewView1[position](r).Each(func(_ ecs.Entity, p *position) {
		assert.Equal(t, 1, int(p.X)%2)
	})
}
