package event

import "github.com/sago/secs/internal/core/ecs"

// EntitySpawned is emitted when a prefab instance enters the world.
type EntitySpawned struct {
	Entity ecs.Entity
	Prefab string
}

// EntityExpired is emitted when an entity's lifetime runs out. The entity is
// already queued for destruction when handlers see it.
type EntityExpired struct {
	Entity ecs.Entity
	Prefab string
}
