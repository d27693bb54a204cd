package component

// Health regenerates toward MaxHP each tick through the Lua regen formula.
type Health struct {
	HP    int `yaml:"hp"`
	MaxHP int `yaml:"max_hp"`
}

// Lifetime counts down once per tick; the entity is destroyed at zero.
type Lifetime struct {
	Ticks int `yaml:"ticks"`
}

// Prefab records which scene prefab an entity was spawned from.
type Prefab struct {
	Name string
}
