package component

// Position is a world-space location. Z orders drawing (lower first).
// Pure data; systems do all the mutation.
type Position struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// Velocity is applied to Position once per tick, in units per second.
type Velocity struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}
