package ecs

import "go.uber.org/zap"

// World is the top-level ECS container. It owns the registry and a deferred
// destruction queue flushed by CleanupSystem each tick, so systems can retire
// entities while a view over them is still being iterated.
type World struct {
	registry     *Registry
	destroyQueue []Entity
	log          *zap.Logger
}

func NewWorld(log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		registry:     NewRegistry(),
		destroyQueue: make([]Entity, 0, 64),
		log:          log,
	}
}

func (w *World) Registry() *Registry { return w.registry }

func (w *World) Create() Entity { return w.registry.Create() }

// Entity creates an entity and returns it bound to the world's registry.
func (w *World) Entity() Handle { return HandleOf(w.registry, w.registry.Create()) }

// Handle binds an existing entity to the world's registry.
func (w *World) Handle(e Entity) Handle { return HandleOf(w.registry, e) }

func (w *World) Alive(e Entity) bool { return w.registry.Valid(e) }

// MarkForDestruction queues an entity for end-of-tick cleanup.
func (w *World) MarkForDestruction(e Entity) {
	w.destroyQueue = append(w.destroyQueue, e)
}

// Pending returns the number of queued destructions.
func (w *World) Pending() int { return len(w.destroyQueue) }

// FlushDestroyQueue destroys every queued entity and returns how many were
// actually live. Duplicates and stale handles in the queue are ignored.
func (w *World) FlushDestroyQueue() int {
	destroyed := 0
	for _, e := range w.destroyQueue {
		if !w.registry.Valid(e) {
			continue
		}
		w.registry.Destroy(e)
		destroyed++
	}
	if n := len(w.destroyQueue); n > 0 {
		w.log.Debug("flushed destroy queue",
			zap.Int("queued", n),
			zap.Int("destroyed", destroyed),
			zap.Int("alive", w.registry.Alive()))
	}
	w.destroyQueue = w.destroyQueue[:0]
	return destroyed
}
