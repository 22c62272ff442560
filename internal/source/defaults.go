package source

// Defaults is an in-memory layer of built-in default values, normally the
// lowest-priority source in a layer set.
type Defaults struct {
	name     string
	priority int
	values   map[string]string
}

// NewDefaults creates an in-memory defaults source. The provided map is
// copied, so later mutation by the caller cannot leak into loaded layers.
func NewDefaults(name string, priority int, values map[string]string) *Defaults {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Defaults{name: name, priority: priority, values: copied}
}

// Name returns the layer name used in diagnostics.
func (d *Defaults) Name() string { return d.name }

// Priority returns the layer precedence rank.
func (d *Defaults) Priority() int { return d.priority }

// Load returns a fresh copy of the defaults as a Layer. It never fails.
func (d *Defaults) Load() (Layer, error) {
	values := make(map[string]string, len(d.values))
	for k, v := range d.values {
		values[k] = v
	}
	return Layer{Name: d.name, Priority: d.priority, Values: values}, nil
}
