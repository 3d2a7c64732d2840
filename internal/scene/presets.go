package scene

import (
	"fmt"
	"sort"
)

var Presets = map[string]Description{
	"sphere": {
		Name: "sphere",
		Objects: []ObjectDescription{
			{Name: "ball", Mesh: "sphere", Size: 1, Rings: 8, Segments: 12},
		},
	},
	"cube": {
		Name: "cube",
		Objects: []ObjectDescription{
			{Name: "box", Mesh: "cube", Size: 1.5},
		},
	},
	"globe": {
		Name: "globe",
		Objects: []ObjectDescription{
			{Name: "globe", Mesh: "globe", Size: 1, Rings: 10, Segments: 16},
		},
	},
	"pair": {
		Name:   "pair",
		Camera: 6,
		Objects: []ObjectDescription{
			{Name: "left", Mesh: "cube", Size: 1.2, Offset: []float64{-1.3, 0, 0}},
			{Name: "right", Mesh: "globe", Size: 0.7, Rings: 6, Segments: 10, Offset: []float64{1.3, 0, 0}},
		},
	},
}

func GetPreset(name string) (*Scene, error) {
	d, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	return d.Build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
