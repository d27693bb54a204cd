package ecs

import "slices"

// noIndex is the sparse-array tombstone.
const noIndex = uint64(Tombstone)

// SparseSet maps entity ids to slots of a dense, contiguous array of handles.
// Dense order is emplace order disturbed by swap-removes; only contiguity matters.
type SparseSet struct {
	dense  []Entity
	sparse []uint64
}

func NewSparseSet() *SparseSet {
	return &SparseSet{
		dense:  make([]Entity, 0, 64),
		sparse: make([]uint64, 0, 64),
	}
}

// Contains reports whether this exact handle (id and version) is in the set.
func (s *SparseSet) Contains(e Entity) bool {
	id := e.ID()
	if id >= uint64(len(s.sparse)) {
		return false
	}
	pos := s.sparse[id]
	return pos != noIndex && pos < uint64(len(s.dense)) && s.dense[pos] == e
}

// Index returns the dense slot of e, or Len() when e is not contained.
func (s *SparseSet) Index(e Entity) int {
	if !s.Contains(e) {
		return len(s.dense)
	}
	return int(s.sparse[e.ID()])
}

// Emplace appends e to the dense array. It is a no-op when e is already present.
// A different version of the same id is replaced in its current slot.
func (s *SparseSet) Emplace(e Entity) {
	id := e.ID()
	if id >= uint64(len(s.sparse)) {
		s.grow(id + 1)
	}
	if pos := s.sparse[id]; pos != noIndex && pos < uint64(len(s.dense)) {
		if s.dense[pos].ID() == id {
			s.dense[pos] = e
			return
		}
	}
	s.sparse[id] = uint64(len(s.dense))
	s.dense = append(s.dense, e)
}

// Erase swap-removes e: the last dense handle moves into the freed slot.
func (s *SparseSet) Erase(e Entity) {
	if !s.Contains(e) {
		return
	}
	id := e.ID()
	pos := s.sparse[id]
	last := uint64(len(s.dense) - 1)
	if pos != last {
		back := s.dense[last]
		s.dense[pos] = back
		s.sparse[back.ID()] = pos
	}
	s.dense = s.dense[:last]
	s.sparse[id] = noIndex
}

func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
	for i := range s.sparse {
		s.sparse[i] = noIndex
	}
}

func (s *SparseSet) Len() int    { return len(s.dense) }
func (s *SparseSet) Empty() bool { return len(s.dense) == 0 }

// Entities returns the dense array. Callers must not modify it, and it is
// invalidated by the next Emplace or Erase.
func (s *SparseSet) Entities() []Entity { return s.dense }

func (s *SparseSet) Clone() *SparseSet {
	return &SparseSet{
		dense:  slices.Clone(s.dense),
		sparse: slices.Clone(s.sparse),
	}
}

func (s *SparseSet) grow(n uint64) {
	for uint64(len(s.sparse)) < n {
		s.sparse = append(s.sparse, noIndex)
	}
}
