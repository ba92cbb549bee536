package server

// ItemDefinition describes one entry of the fixed product catalog: a display
// name, a display color for the renderer, and the bounding scale of the mesh.
type ItemDefinition struct {
	Name  string  `json:"name" yaml:"name"`
	Color string  `json:"color" yaml:"color"`
	Scale float64 `json:"scale" yaml:"scale"`
}

// defaultItemCatalog is the built-in product set. The catalog is load-time
// configuration; nothing mutates it after NewWorld.
func defaultItemCatalog() []ItemDefinition {
	return []ItemDefinition{
		{Name: "milk", Color: "#f5f5f0", Scale: 0.30},
		{Name: "apple", Color: "#d83b2a", Scale: 0.22},
		{Name: "bread", Color: "#c98a3d", Scale: 0.34},
		{Name: "soda", Color: "#2a6fd8", Scale: 0.26},
		{Name: "cheese", Color: "#f0c02e", Scale: 0.28},
		{Name: "cereal", Color: "#7b3bd8", Scale: 0.36},
	}
}

// ItemDefinitionFor looks up a catalog entry by name.
func (w *World) ItemDefinitionFor(name string) (ItemDefinition, bool) {
	w.mustBeInitialized()
	for _, def := range w.cfg.Catalog {
		if def.Name == name {
			return def, true
		}
	}
	return ItemDefinition{}, false
}
