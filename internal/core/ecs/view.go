package ecs

// Views are uncached queries over the entities owning every listed component.
// Iteration is driven by the dense array of the first component's storage;
// the others are checked with Contains. Size and Empty rescan on every call.
//
// Inside Each a callback may destroy the entity it is visiting or remove any
// of its components; the entity swapped into that slot is visited next.
// Entities that gain the driving component during the scan are visited too.
// Destroying other, already visited entities can make the scan skip one;
// queue such changes (World.MarkForDestruction) and apply them afterwards.

// scan calls fn with the dense index of every valid entity in driving that is
// contained in all of others. The dense array is re-read on every step.
func scan(r *Registry, driving *SparseSet, others []AnyStorage, fn func(int, Entity)) {
next:
	for i := 0; i < driving.Len(); i++ {
		e := driving.dense[i]
		if !r.Valid(e) {
			continue
		}
		for _, s := range others {
			if !s.Contains(e) {
				continue next
			}
		}
		fn(i, e)
		if i < driving.Len() && driving.dense[i] != e {
			i-- // e left the set; the last entity now sits at i
		}
	}
}

func count(r *Registry, driving *SparseSet, others []AnyStorage) int {
	n := 0
	scan(r, driving, others, func(int, Entity) { n++ })
	return n
}

// View1 iterates the entities owning an A.
type View1[A any] struct{ reg *Registry }

func NewView1[A any](r *Registry) View1[A] { return View1[A]{reg: r} }

func (v View1[A]) Each(fn func(Entity, *A)) {
	sa, ok := lookup[A](v.reg)
	if !ok {
		return
	}
	scan(v.reg, &sa.set, nil, func(i int, e Entity) {
		fn(e, &sa.components[i])
	})
}

func (v View1[A]) EachEntity(fn func(Entity)) {
	v.Each(func(e Entity, _ *A) { fn(e) })
}

func (v View1[A]) Size() int {
	sa, ok := lookup[A](v.reg)
	if !ok {
		return 0
	}
	return count(v.reg, &sa.set, nil)
}

func (v View1[A]) Empty() bool { return v.Size() == 0 }

// View2 iterates the entities owning an A and a B.
type View2[A, B any] struct{ reg *Registry }

func NewView2[A, B any](r *Registry) View2[A, B] { return View2[A, B]{reg: r} }

func (v View2[A, B]) Each(fn func(Entity, *A, *B)) {
	sa, oka := lookup[A](v.reg)
	sb, okb := lookup[B](v.reg)
	if !oka || !okb {
		return
	}
	scan(v.reg, &sa.set, []AnyStorage{sb}, func(i int, e Entity) {
		fn(e, &sa.components[i], sb.Get(e))
	})
}

func (v View2[A, B]) EachEntity(fn func(Entity)) {
	v.Each(func(e Entity, _ *A, _ *B) { fn(e) })
}

func (v View2[A, B]) Size() int {
	sa, oka := lookup[A](v.reg)
	sb, okb := lookup[B](v.reg)
	if !oka || !okb {
		return 0
	}
	return count(v.reg, &sa.set, []AnyStorage{sb})
}

func (v View2[A, B]) Empty() bool { return v.Size() == 0 }

// View3 iterates the entities owning an A, a B and a C.
type View3[A, B, C any] struct{ reg *Registry }

func NewView3[A, B, C any](r *Registry) View3[A, B, C] { return View3[A, B, C]{reg: r} }

func (v View3[A, B, C]) Each(fn func(Entity, *A, *B, *C)) {
	sa, oka := lookup[A](v.reg)
	sb, okb := lookup[B](v.reg)
	sc, okc := lookup[C](v.reg)
	if !oka || !okb || !okc {
		return
	}
	scan(v.reg, &sa.set, []AnyStorage{sb, sc}, func(i int, e Entity) {
		fn(e, &sa.components[i], sb.Get(e), sc.Get(e))
	})
}

func (v View3[A, B, C]) EachEntity(fn func(Entity)) {
	v.Each(func(e Entity, _ *A, _ *B, _ *C) { fn(e) })
}

func (v View3[A, B, C]) Size() int {
	sa, oka := lookup[A](v.reg)
	sb, okb := lookup[B](v.reg)
	sc, okc := lookup[C](v.reg)
	if !oka || !okb || !okc {
		return 0
	}
	return count(v.reg, &sa.set, []AnyStorage{sb, sc})
}

func (v View3[A, B, C]) Empty() bool { return v.Size() == 0 }

// View4 iterates the entities owning an A, a B, a C and a D.
type View4[A, B, C, D any] struct{ reg *Registry }

func NewView4[A, B, C, D any](r *Registry) View4[A, B, C, D] {
	return View4[A, B, C, D]{reg: r}
}

func (v View4[A, B, C, D]) Each(fn func(Entity, *A, *B, *C, *D)) {
	sa, oka := lookup[A](v.reg)
	sb, okb := lookup[B](v.reg)
	sc, okc := lookup[C](v.reg)
	sd, okd := lookup[D](v.reg)
	if !oka || !okb || !okc || !okd {
		return
	}
	scan(v.reg, &sa.set, []AnyStorage{sb, sc, sd}, func(i int, e Entity) {
		fn(e, &sa.components[i], sb.Get(e), sc.Get(e), sd.Get(e))
	})
}

func (v View4[A, B, C, D]) EachEntity(fn func(Entity)) {
	v.Each(func(e Entity, _ *A, _ *B, _ *C, _ *D) { fn(e) })
}

func (v View4[A, B, C, D]) Size() int {
	sa, oka := lookup[A](v.reg)
	sb, okb := lookup[B](v.reg)
	sc, okc := lookup[C](v.reg)
	sd, okd := lookup[D](v.reg)
	if !oka || !okb || !okc || !okd {
		return 0
	}
	return count(v.reg, &sa.set, []AnyStorage{sb, sc, sd})
}

func (v View4[A, B, C, D]) Empty() bool { return v.Size() == 0 }
