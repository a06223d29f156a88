package config

import (
	"sort"

	"github.com/san-kum/freefall/internal/dynamo"
)

var Presets = map[string]dynamo.Params{
	"default": dynamo.DefaultParams(),
	"vacuum": {
		Mass: 10, Height: 200, DragCoeff: 0, AirDensity: 0, Diameter: 0.5, Gravity: 9.81, TimeScale: 1,
	},
	"skydiver": {
		Mass: 80, Height: 4000, DragCoeff: 1.0, AirDensity: 1.225, Diameter: 0.8, Gravity: 9.81, TimeScale: 4,
	},
	"feather": {
		Mass: 0.005, Height: 2, DragCoeff: 1.3, AirDensity: 1.225, Diameter: 0.05, Gravity: 9.81, TimeScale: 1,
	},
	"bowling": {
		Mass: 7.26, Height: 50, DragCoeff: 0.47, AirDensity: 1.225, Diameter: 0.218, Gravity: 9.81, TimeScale: 1,
	},
	"moon": {
		Mass: 10, Height: 200, DragCoeff: 0.47, AirDensity: 0, Diameter: 0.5, Gravity: 1.62, TimeScale: 1,
	},
	"slowmo": {
		Mass: 10, Height: 200, DragCoeff: 0.47, AirDensity: 1.225, Diameter: 0.5, Gravity: 9.81, TimeScale: 0.25,
	},
}

// GetPreset returns a config with the named preset params and default run
// settings, or nil if the preset does not exist.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Params = p
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
