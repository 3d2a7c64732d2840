package config

import "sort"

// Presets are named tunings. Only sensitivity, frontend, scene and the
// terminal history are taken from a preset.
var Presets = map[string]*Config{
	"precise": {
		Sensitivity: 0.25,
		Scene:       "cube",
	},
	"default": {
		Sensitivity: 1.0,
	},
	"fast": {
		Sensitivity: 2.5,
		Scene:       "sphere",
	},
	"terminal": {
		// Terminal cells are coarse, so each cell of travel turns further.
		Sensitivity: 4.0,
		Frontend:    "tui",
		Scene:       "globe",
		TUI:         TUIConfig{GraphHeight: 4, History: 80},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
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
