package ecs

import "slices"

// AnyStorage is implemented by every component storage so the Registry can
// keep heterogeneous storages in one map and bulk-erase an entity on destroy.
type AnyStorage interface {
	Type() TypeID
	Contains(e Entity) bool
	Erase(e Entity)
	Len() int
	// CloneStorage deep-copies the storage and its component values.
	CloneStorage() AnyStorage
}

// Storage is a sparse set paired with a parallel dense array of component
// values: components[set.Index(e)] is the value owned by e.
type Storage[T any] struct {
	typ        TypeID
	set        SparseSet
	components []T
}

func NewStorage[T any]() *Storage[T] {
	return &Storage[T]{
		typ:        TypeOf[T](),
		components: make([]T, 0, 64),
	}
}

func (s *Storage[T]) Type() TypeID { return s.typ }

func (s *Storage[T]) Contains(e Entity) bool { return s.set.Contains(e) }

// Emplace stores v for e, overwriting the existing value when e already owns one.
// The returned pointer is valid until the next mutation of this storage.
func (s *Storage[T]) Emplace(e Entity, v T) *T {
	s.set.Emplace(e)
	idx := s.set.Index(e)
	if idx >= len(s.components) {
		s.components = append(s.components, v)
	} else {
		s.components[idx] = v
	}
	return &s.components[idx]
}

// Get returns e's component. e must be contained; otherwise Get panics with
// an index out of range.
func (s *Storage[T]) Get(e Entity) *T {
	return &s.components[s.set.Index(e)]
}

// Erase mirrors the sparse set swap-remove on the component array.
func (s *Storage[T]) Erase(e Entity) {
	pos := s.set.Index(e)
	if n := s.set.Len(); pos < n {
		last := n - 1
		if pos != last {
			s.components[pos] = s.components[last]
		}
		var zero T
		s.components[last] = zero
		s.components = s.components[:last]
	}
	s.set.Erase(e)
}

func (s *Storage[T]) Len() int    { return s.set.Len() }
func (s *Storage[T]) Empty() bool { return s.set.Empty() }

// Entities returns the dense handle array, aligned with the component array.
func (s *Storage[T]) Entities() []Entity { return s.set.Entities() }

// Each walks the dense handles and components in lock-step.
// fn must not add or erase components of this storage.
func (s *Storage[T]) Each(fn func(Entity, *T)) {
	dense := s.set.Entities()
	for i := range dense {
		fn(dense[i], &s.components[i])
	}
}

func (s *Storage[T]) Clear() {
	clear(s.components)
	s.components = s.components[:0]
	s.set.Clear()
}

func (s *Storage[T]) Clone() *Storage[T] {
	return &Storage[T]{
		typ:        s.typ,
		set:        *s.set.Clone(),
		components: slices.Clone(s.components),
	}
}

func (s *Storage[T]) CloneStorage() AnyStorage { return s.Clone() }

var _ AnyStorage = (*Storage[struct{}])(nil)
