package component

// Mesh references a renderable asset. The render layer resolves ID; this core
// only carries it through to the draw list.
type Mesh struct {
	ID    string `yaml:"id"`
	Layer int    `yaml:"layer"`
}
