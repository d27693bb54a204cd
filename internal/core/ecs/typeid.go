package ecs

import (
	"reflect"
	"sync"
)

// TypeID identifies a component type for the lifetime of the process.
// Ids are assigned in order of first use and are not stable across runs.
type TypeID uint32

// types is the process-wide registration table. Lookups are lock-free once
// a type is known; the mutex only serializes first-time registration.
var types struct {
	mu    sync.Mutex
	ids   sync.Map // reflect.Type -> TypeID
	names []string // index = TypeID-1
}

// TypeOf returns the id of T, registering it on first use.
func TypeOf[T any]() TypeID {
	return typeIDOf(reflect.TypeFor[T]())
}

func typeIDOf(t reflect.Type) TypeID {
	if id, ok := types.ids.Load(t); ok {
		return id.(TypeID)
	}
	types.mu.Lock()
	defer types.mu.Unlock()
	if id, ok := types.ids.Load(t); ok {
		return id.(TypeID)
	}
	types.names = append(types.names, t.String())
	id := TypeID(len(types.names))
	types.ids.Store(t, id)
	return id
}

// TypeName returns the Go type name registered under id, or "" if unknown.
func TypeName(id TypeID) string {
	types.mu.Lock()
	defer types.mu.Unlock()
	if id == 0 || int(id) > len(types.names) {
		return ""
	}
	return types.names[id-1]
}

func (id TypeID) String() string {
	if name := TypeName(id); name != "" {
		return name
	}
	return "TypeID(?)"
}
