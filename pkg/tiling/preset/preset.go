// Package preset holds the built-in seed sets.
package preset

import (
	"sort"

	"github.com/matzehuels/rectile/pkg/errors"
	"github.com/matzehuels/rectile/pkg/tiling/grid"
)

// Preset is a named list of seed rectangles.
type Preset struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Seeds       []grid.Seed `json:"seeds"`
}

// Default is the preset used when none is named.
const Default = "classic"

var registry = map[string]Preset{
	"classic": {
		Name:        "classic",
		Description: "two columns of mixed rectangles around a 9x14 center",
		Seeds: []grid.Seed{
			{X: 0, Y: 1, Width: 10, Height: 20},
			{X: 1, Y: 1, Width: 12, Height: 16},
			{X: 0, Y: 0, Width: 9, Height: 14},
			{X: 1, Y: 0, Width: 13, Height: 13},
			{X: 0, Y: -1, Width: 8, Height: 9},
			{X: 1, Y: -1, Width: 3, Height: 10},
		},
	},
	"square": {
		Name:        "square",
		Description: "squares only, yielding a squared tiling",
		Seeds: []grid.Seed{
			{X: 0, Y: 1, Width: 5, Height: 5},
			{X: 1, Y: 1, Width: 2, Height: 2},
			{X: 0, Y: 0, Width: 3, Height: 3},
			{X: 1, Y: 0, Width: 4, Height: 4},
			{X: 0, Y: -1, Width: 10, Height: 10},
			{X: 1, Y: -1, Width: 9, Height: 9},
		},
	},
}

// Lookup returns a copy of the named preset.
func Lookup(name string) (Preset, error) {
	if err := errors.ValidatePresetName(name); err != nil {
		return Preset{}, err
	}
	p, ok := registry[name]
	if !ok {
		return Preset{}, errors.New(errors.ErrCodeInvalidPreset,
			"unknown preset %q (available: %v)", name, Names())
	}
	p.Seeds = append([]grid.Seed(nil), p.Seeds...)
	return p, nil
}

// Names lists the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// All returns copies of every preset, sorted by name.
func All() []Preset {
	out := make([]Preset, 0, len(registry))
	for _, n := range Names() {
		p, _ := Lookup(n)
		out = append(out, p)
	}
	return out
}
