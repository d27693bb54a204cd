package ecs

import "fmt"

// Entity encodes a 48-bit id in the lower bits and a 16-bit version in the
// upper bits. The version increments on destroy to invalidate stale handles.
type Entity uint64

const (
	versionBits = 16
	idMask      = 0x0000FFFFFFFFFFFF

	// Null has every bit set. It is never returned by Create.
	Null Entity = ^Entity(0)
	// Tombstone marks "no mapping" in sparse arrays. It is never returned by Create.
	Tombstone Entity = Null - 1
)

func NewEntity(id uint64, version uint16) Entity {
	return Entity(uint64(version)<<(64-versionBits) | id&idMask)
}

func (e Entity) ID() uint64      { return uint64(e) & idMask }
func (e Entity) Version() uint16 { return uint16(uint64(e) >> (64 - versionBits)) }
func (e Entity) IsNull() bool    { return e == Null }

func (e Entity) String() string {
	switch e {
	case Null:
		return "Entity(null)"
	case Tombstone:
		return "Entity(tombstone)"
	}
	return fmt.Sprintf("Entity(%d:%d)", e.ID(), e.Version())
}
