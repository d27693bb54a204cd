package ecs

import "slices"

// Group caches the result of a view. The cache is filled on first access and
// refilled only after MarkDirty: creating, destroying or changing entities
// through the Registry never invalidates it. Owners that need fresh
// membership must call MarkDirty themselves.
type Group struct {
	reg      *Registry
	collect  func(func(Entity))
	entities []Entity
	dirty    bool
}

func newGroup(r *Registry, collect func(func(Entity))) *Group {
	return &Group{reg: r, collect: collect, dirty: true}
}

// Cached is implemented by Group and every typed group embedding it.
type Cached interface {
	cache() *Group
}

func (g *Group) cache() *Group { return g }

// MarkDirty forces the next access to rebuild the cache.
func (g *Group) MarkDirty() { g.dirty = true }

// Dirty reports whether the next access will rebuild the cache.
func (g *Group) Dirty() bool { return g.dirty }

func (g *Group) rebuildIfNeeded() {
	if !g.dirty {
		return
	}
	// A fresh slice: lists handed out by Entities stay as they were.
	fresh := make([]Entity, 0, len(g.entities))
	g.collect(func(e Entity) {
		fresh = append(fresh, e)
	})
	g.entities = fresh
	g.dirty = false
}

// Size returns the number of cached entities, stale ones included.
func (g *Group) Size() int {
	g.rebuildIfNeeded()
	return len(g.entities)
}

func (g *Group) Empty() bool { return g.Size() == 0 }

// Entities returns the cached list. Callers must not modify it. Sort and
// SortByComponent reorder it in place; a rebuild replaces it.
func (g *Group) Entities() []Entity {
	g.rebuildIfNeeded()
	return g.entities
}

// Sort reorders the cached list in place.
func (g *Group) Sort(cmp func(a, b Entity) int) {
	g.rebuildIfNeeded()
	slices.SortFunc(g.entities, cmp)
}

// SortByComponent reorders g's cached list by each entity's C component, read
// from the registry at sort time. Every cached entity must be valid and own a
// C, so C should be one of the group's component types and the cache fresh.
func SortByComponent[C any](g Cached, cmp func(a, b *C) int) {
	grp := g.cache()
	grp.rebuildIfNeeded()
	slices.SortFunc(grp.entities, func(a, b Entity) int {
		return cmp(Get[C](grp.reg, a), Get[C](grp.reg, b))
	})
}

// Group1 caches the entities owning an A.
type Group1[A any] struct{ *Group }

func NewGroup1[A any](r *Registry) *Group1[A] {
	return &Group1[A]{newGroup(r, NewView1[A](r).EachEntity)}
}

// Each visits the cached entities that are still valid and still own an A.
func (g *Group1[A]) Each(fn func(Entity, *A)) {
	g.rebuildIfNeeded()
	sa, ok := lookup[A](g.reg)
	if !ok {
		return
	}
	for _, e := range g.entities {
		if g.reg.Valid(e) && sa.Contains(e) {
			fn(e, sa.Get(e))
		}
	}
}

// Group2 caches the entities owning an A and a B.
type Group2[A, B any] struct{ *Group }

func NewGroup2[A, B any](r *Registry) *Group2[A, B] {
	return &Group2[A, B]{newGroup(r, NewView2[A, B](r).EachEntity)}
}

// Each visits the cached entities that are still valid and still own every component.
func (g *Group2[A, B]) Each(fn func(Entity, *A, *B)) {
	g.rebuildIfNeeded()
	sa, oka := lookup[A](g.reg)
	sb, okb := lookup[B](g.reg)
	if !oka || !okb {
		return
	}
	for _, e := range g.entities {
		if g.reg.Valid(e) && sa.Contains(e) && sb.Contains(e) {
			fn(e, sa.Get(e), sb.Get(e))
		}
	}
}

// Group3 caches the entities owning an A, a B and a C.
type Group3[A, B, C any] struct{ *Group }

func NewGroup3[A, B, C any](r *Registry) *Group3[A, B, C] {
	return &Group3[A, B, C]{newGroup(r, NewView3[A, B, C](r).EachEntity)}
}

func (g *Group3[A, B, C]) Each(fn func(Entity, *A, *B, *C)) {
	g.rebuildIfNeeded()
	sa, oka := lookup[A](g.reg)
	sb, okb := lookup[B](g.reg)
	sc, okc := lookup[C](g.reg)
	if !oka || !okb || !okc {
		return
	}
	for _, e := range g.entities {
		if g.reg.Valid(e) && sa.Contains(e) && sb.Contains(e) && sc.Contains(e) {
			fn(e, sa.Get(e), sb.Get(e), sc.Get(e))
		}
	}
}

// Group4 caches the entities owning an A, a B, a C and a D.
type Group4[A, B, C, D any] struct{ *Group }

func NewGroup4[A, B, C, D any](r *Registry) *Group4[A, B, C, D] {
	return &Group4[A, B, C, D]{newGroup(r, NewView4[A, B, C, D](r).EachEntity)}
}

func (g *Group4[A, B, C, D]) Each(fn func(Entity, *A, *B, *C, *D)) {
	g.rebuildIfNeeded()
	sa, oka := lookup[A](g.reg)
	sb, okb := lookup[B](g.reg)
	sc, okc := lookup[C](g.reg)
	sd, okd := lookup[D](g.reg)
	if !oka || !okb || !okc || !okd {
		return
	}
	for _, e := range g.entities {
		if g.reg.Valid(e) && sa.Contains(e) && sb.Contains(e) && sc.Contains(e) && sd.Contains(e) {
			fn(e, sa.Get(e), sb.Get(e), sc.Get(e), sd.Get(e))
		}
	}
}
