package ecs

// Handle binds an entity to its registry so component access reads as
// operations on the entity. It is a plain value; copying it does not copy
// the entity.
type Handle struct {
	reg *Registry
	e   Entity
}

// HandleOf wraps e. e need not be valid; every accessor checks.
func HandleOf(r *Registry, e Entity) Handle { return Handle{reg: r, e: e} }

func (h Handle) ID() Entity          { return h.e }
func (h Handle) Registry() *Registry { return h.reg }
func (h Handle) Valid() bool         { return h.reg != nil && h.reg.Valid(h.e) }
func (h Handle) Destroy()            { h.reg.Destroy(h.e) }
func (h Handle) String() string      { return h.e.String() }

// Set attaches v to the handle's entity and returns h for chaining.
func Set[T any](h Handle, v T) Handle {
	Emplace(h.reg, h.e, v)
	return h
}

// GetOf returns the handle's T component. Same contract as Get.
func GetOf[T any](h Handle) *T { return Get[T](h.reg, h.e) }

// HasOf reports whether the handle's entity is valid and owns a T.
func HasOf[T any](h Handle) bool { return h.reg != nil && Has[T](h.reg, h.e) }

// RemoveOf detaches the handle's T component. Same contract as Remove.
func RemoveOf[T any](h Handle) { Remove[T](h.reg, h.e) }
