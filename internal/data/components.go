package data

import (
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/sago/secs/internal/component"
	"github.com/sago/secs/internal/core/ecs"
)

// inserter decodes a component body and attaches it to the entity.
type inserter func(h ecs.Handle, n *yaml.Node) error

var inserters = map[string]inserter{
	"position": insert[component.Position],
	"velocity": insert[component.Velocity],
	"mesh":     insert[component.Mesh],
	"health":   insert[component.Health],
	"lifetime": insert[component.Lifetime],
}

func insert[T any](h ecs.Handle, n *yaml.Node) error {
	var v T
	if err := n.Decode(&v); err != nil {
		return err
	}
	ecs.Set(h, v)
	return nil
}

// Components returns the component keys accepted in scene files.
func Components() []string {
	return slices.Sorted(maps.Keys(inserters))
}
