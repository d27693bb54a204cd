package data

import (
	"fmt"
	"math/rand"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/sago/secs/internal/component"
	"github.com/sago/secs/internal/core/ecs"
)

// PrefabEntry describes one kind of entity in scene.yaml and how many of it
// to spawn.
type PrefabEntry struct {
	Name    string  `yaml:"name"`
	Count   int     `yaml:"count"`
	Respawn bool    `yaml:"respawn"`
	Spread  float32 `yaml:"spread"` // random +/- offset applied to position x/y

	// Components maps a component key (see Components()) to its YAML body.
	Components map[string]yaml.Node `yaml:"components"`
}

// Scene is the parsed spawn list.
type Scene struct {
	prefabs []*PrefabEntry
	byName  map[string]*PrefabEntry
}

// LoadScene loads and validates a scene file.
func LoadScene(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return ParseScene(raw)
}

func ParseScene(raw []byte) (*Scene, error) {
	var doc struct {
		Prefabs []PrefabEntry `yaml:"prefabs"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}

	s := &Scene{
		prefabs: make([]*PrefabEntry, 0, len(doc.Prefabs)),
		byName:  make(map[string]*PrefabEntry, len(doc.Prefabs)),
	}
	// Each prefab is spawned once into a scratch registry so that unknown keys
	// and malformed bodies fail at load time instead of mid-simulation.
	scratch := ecs.NewRegistry()
	for i := range doc.Prefabs {
		p := &doc.Prefabs[i]
		if p.Name == "" {
			return nil, fmt.Errorf("prefab #%d: missing name", i)
		}
		if _, dup := s.byName[p.Name]; dup {
			return nil, fmt.Errorf("prefab %q: duplicate name", p.Name)
		}
		if p.Count < 0 {
			return nil, fmt.Errorf("prefab %q: negative count %d", p.Name, p.Count)
		}
		if _, err := p.Spawn(scratch, nil); err != nil {
			return nil, err
		}
		s.prefabs = append(s.prefabs, p)
		s.byName[p.Name] = p
	}
	return s, nil
}

// Prefabs returns the entries in file order.
func (s *Scene) Prefabs() []*PrefabEntry { return s.prefabs }

// Get returns the named prefab, or nil if none.
func (s *Scene) Get(name string) *PrefabEntry { return s.byName[name] }

// Count returns the number of prefab entries.
func (s *Scene) Count() int { return len(s.prefabs) }

// Populate spawns Count instances of every prefab and returns the total.
func (s *Scene) Populate(r *ecs.Registry, rng *rand.Rand) (int, error) {
	total := 0
	for _, p := range s.prefabs {
		for i := 0; i < p.Count; i++ {
			if _, err := p.Spawn(r, rng); err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}

// Spawn creates one instance of the prefab. rng may be nil, which disables
// the position spread. On error the half-built entity is destroyed.
func (p *PrefabEntry) Spawn(r *ecs.Registry, rng *rand.Rand) (ecs.Entity, error) {
	h := ecs.HandleOf(r, r.Create())
	keys := make([]string, 0, len(p.Components))
	for k := range p.Components {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		insert, ok := inserters[k]
		if !ok {
			h.Destroy()
			return ecs.Null, fmt.Errorf("prefab %q: unknown component %q", p.Name, k)
		}
		node := p.Components[k]
		if err := insert(h, &node); err != nil {
			h.Destroy()
			return ecs.Null, fmt.Errorf("prefab %q: component %q: %w", p.Name, k, err)
		}
	}
	ecs.Set(h, component.Prefab{Name: p.Name})

	if rng != nil && p.Spread > 0 && ecs.HasOf[component.Position](h) {
		pos := ecs.GetOf[component.Position](h)
		pos.X += (rng.Float32()*2 - 1) * p.Spread
		pos.Y += (rng.Float32()*2 - 1) * p.Spread
	}
	return h.ID(), nil
}
