package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// freeSlot marks an id with no live entity in Registry.slots.
const freeSlot = -1

// Registry owns entity bookkeeping (versions, free list, creation-ordered
// entity list) and one storage per component type. It is not safe for
// concurrent use.
type Registry struct {
	versions []uint16
	freeList []uint64

	// entities keeps live handles in creation order. Destroyed entries are
	// overwritten with Null and squeezed out by compact; slots[id] is the
	// position of id in entities, or freeSlot.
	entities []Entity
	slots    []int
	holes    int

	storages *intmap.Map[TypeID, AnyStorage]
}

func NewRegistry() *Registry {
	return &Registry{
		versions: make([]uint16, 0, 1024),
		freeList: make([]uint64, 0, 256),
		entities: make([]Entity, 0, 1024),
		slots:    make([]int, 0, 1024),
		storages: intmap.New[TypeID, AnyStorage](16),
	}
}

// Create returns a new live entity, recycling the most recently freed id when
// one is available.
func (r *Registry) Create() Entity {
	var id uint64
	if n := len(r.freeList); n > 0 {
		id = r.freeList[n-1]
		r.freeList = r.freeList[:n-1]
	} else {
		var reserved bool
		id, reserved = nextFreshID(uint64(len(r.versions)))
		if reserved {
			// Pad the tombstone id so versions and slots stay id-indexed.
			r.versions = append(r.versions, 0)
			r.slots = append(r.slots, freeSlot)
		}
		if id > idMask {
			fatal(ErrEntitiesExhausted, "%d ids allocated", id)
		}
		r.versions = append(r.versions, 0)
		r.slots = append(r.slots, freeSlot)
	}
	e := NewEntity(id, r.versions[id])
	r.slots[id] = len(r.entities)
	r.entities = append(r.entities, e)
	return e
}

// Destroy erases e from every storage and recycles its id with a bumped
// version. Destroying an invalid or already destroyed handle is a no-op.
func (r *Registry) Destroy(e Entity) {
	if !r.Valid(e) {
		return
	}
	r.storages.ForEach(func(_ TypeID, s AnyStorage) bool {
		s.Erase(e)
		return true
	})

	id := e.ID()
	r.entities[r.slots[id]] = Null
	r.slots[id] = freeSlot
	r.holes++
	if r.holes > 32 && r.holes*2 > len(r.entities) {
		r.compact()
	}

	r.versions[id] = nextVersion(id, r.versions[id])
	r.freeList = append(r.freeList, id)
}

// nextFreshID returns the id to allocate when n ids exist. The tombstone id
// is never handed out; reserved reports that it was stepped over.
func nextFreshID(n uint64) (id uint64, reserved bool) {
	if n == Tombstone.ID() {
		return n + 1, true
	}
	return n, false
}

// nextVersion bumps v, wrapping around, and steps over the one version that
// would make the handle equal Null.
func nextVersion(id uint64, v uint16) uint16 {
	v++
	if NewEntity(id, v) == Null {
		v++
	}
	return v
}

// Valid reports whether e refers to a live entity of this registry.
func (r *Registry) Valid(e Entity) bool {
	id := e.ID()
	if id >= uint64(len(r.versions)) {
		return false
	}
	return r.versions[id] == e.Version() && r.slots[id] != freeSlot
}

// Alive returns the number of live entities.
func (r *Registry) Alive() int {
	return len(r.entities) - r.holes
}

// Entities returns a copy of the live entities in creation order.
func (r *Registry) Entities() []Entity {
	r.compact()
	return slices.Clone(r.entities)
}

// EachEntity calls fn for every live entity in creation order.
func (r *Registry) EachEntity(fn func(Entity)) {
	for _, e := range r.entities {
		if e != Null {
			fn(e)
		}
	}
}

// Storages returns the number of component storages created so far.
func (r *Registry) Storages() int {
	return r.storages.Len()
}

// Clear destroys every live entity. Storages and recycled ids are kept.
func (r *Registry) Clear() {
	for _, e := range r.Entities() {
		r.Destroy(e)
	}
}

// Clone deep-copies the registry, including every component value.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		versions: slices.Clone(r.versions),
		freeList: slices.Clone(r.freeList),
		entities: slices.Clone(r.entities),
		slots:    slices.Clone(r.slots),
		holes:    r.holes,
		storages: intmap.New[TypeID, AnyStorage](r.storages.Len()),
	}
	r.storages.ForEach(func(id TypeID, s AnyStorage) bool {
		c.storages.Put(id, s.CloneStorage())
		return true
	})
	return c
}

func (r *Registry) compact() {
	if r.holes == 0 {
		return
	}
	live := r.entities[:0]
	for _, e := range r.entities {
		if e == Null {
			continue
		}
		r.slots[e.ID()] = len(live)
		live = append(live, e)
	}
	clear(r.entities[len(live):])
	r.entities = live
	r.holes = 0
}

// Has reports whether e is valid and owns a T component.
func Has[T any](r *Registry, e Entity) bool {
	if !r.Valid(e) {
		return false
	}
	s, ok := lookup[T](r)
	return ok && s.Contains(e)
}

// Emplace attaches v to e, replacing any existing T. e must be valid.
// The returned pointer is valid until the next mutation of T's storage.
func Emplace[T any](r *Registry, e Entity, v T) *T {
	if !r.Valid(e) {
		fatal(ErrInvalidEntity, "emplace %s on %s", TypeOf[T](), e)
	}
	return assure[T](r).Emplace(e, v)
}

// Get returns e's T component. e must be valid and own a T.
func Get[T any](r *Registry, e Entity) *T {
	if !r.Valid(e) {
		fatal(ErrInvalidEntity, "get %s on %s", TypeOf[T](), e)
	}
	s, ok := lookup[T](r)
	if !ok || !s.Contains(e) {
		fatal(ErrMissingComponent, "get %s on %s", TypeOf[T](), e)
	}
	return s.Get(e)
}

// Remove detaches e's T component if it has one. e must be valid.
func Remove[T any](r *Registry, e Entity) {
	if !r.Valid(e) {
		fatal(ErrInvalidEntity, "remove %s on %s", TypeOf[T](), e)
	}
	if s, ok := lookup[T](r); ok {
		s.Erase(e)
	}
}

// StorageOf returns the storage for T, creating it on first access.
func StorageOf[T any](r *Registry) *Storage[T] {
	return assure[T](r)
}

// StorageLen returns the number of T components without creating a storage.
func StorageLen[T any](r *Registry) int {
	if s, ok := lookup[T](r); ok {
		return s.Len()
	}
	return 0
}

func assure[T any](r *Registry) *Storage[T] {
	if s, ok := lookup[T](r); ok {
		return s
	}
	s := NewStorage[T]()
	r.storages.Put(s.Type(), s)
	return s
}

func lookup[T any](r *Registry) (*Storage[T], bool) {
	id := TypeOf[T]()
	s, ok := r.storages.Get(id)
	if !ok {
		return nil, false
	}
	return downcast[T](id, s), true
}

func downcast[T any](id TypeID, s AnyStorage) *Storage[T] {
	ts, ok := s.(*Storage[T])
	if !ok {
		fatal(ErrStorageMismatch, "%s stored under %s", s.Type(), id)
	}
	return ts
}
