package kitchen

import (
	_ "embed"
	"fmt"
	"slices"

	yaml "github.com/goccy/go-yaml"
)

//go:embed presets.yaml
var presetsYAML []byte

type presetFile struct {
	DefaultPreset string               `yaml:"default_preset"`
	Presets       map[string]Inventory `yaml:"presets"`
}

var presets = mustLoadPresets(presetsYAML)

func mustLoadPresets(data []byte) presetFile {
	var pf presetFile
	if err := yaml.UnmarshalWithOptions(data, &pf, yaml.DisallowUnknownField()); err != nil {
		panic(fmt.Sprintf("kitchen: bad embedded presets: %v", err))
	}
	for name, inv := range pf.Presets {
		if err := inv.Validate(); err != nil {
			panic(fmt.Sprintf("kitchen: preset %q: %v", name, err))
		}
		pf.Presets[name] = inv
	}
	if _, ok := pf.Presets[pf.DefaultPreset]; !ok {
		panic(fmt.Sprintf("kitchen: default preset %q not defined", pf.DefaultPreset))
	}
	return pf
}

// DefaultPreset is the preset used when none is named.
func DefaultPreset() string { return presets.DefaultPreset }

// Presets lists the built-in kitchen presets, sorted.
func Presets() []string {
	names := make([]string, 0, len(presets.Presets))
	for name := range presets.Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Preset returns a fresh copy of the named preset inventory. An empty name
// selects DefaultPreset.
func Preset(name string) (Inventory, error) {
	if name == "" {
		name = presets.DefaultPreset
	}
	inv, ok := presets.Presets[name]
	if !ok {
		return Inventory{}, fmt.Errorf("unknown kitchen preset %q (known: %v)", name, Presets())
	}
	return inv.Clone(), nil
}
