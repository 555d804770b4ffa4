// Package tech provides process technology data for the SG13 node:
// the layer table (drawing name to GDS layer/datatype), the layer
// z-stack used by the 3D preview, and fixed device parameters.
// Data is embedded at build time and parsed once.
package tech

import (
	"fmt"
	"sync"

	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/mfell/sgforge/pkg/layout"
)

//go:embed sg13.yaml
var rawSG13 []byte

// Layer describes one entry of the process layer table.
type Layer struct {
	Layer    int16   `yaml:"layer"`
	Datatype int16   `yaml:"datatype"`
	ZMin     float64 `yaml:"zmin"` // bottom of the layer in um
	ZMax     float64 `yaml:"zmax"` // top of the layer in um
}

// Tech bundles all technology data for one process node.
type Tech struct {
	Name   string                     `yaml:"name"`
	Grid   float64                    `yaml:"grid"`
	Params map[string]float64         `yaml:"params"`
	Layers map[layout.LayerSpec]Layer `yaml:"layers"`
}

var (
	loadOnce sync.Once
	loadErr  error
	nodes    map[string]*Tech
)

func load() {
	var t Tech
	if err := yaml.Unmarshal(rawSG13, &t); err != nil {
		loadErr = fmt.Errorf("tech: parsing embedded SG13 data: %w", err)
		return
	}
	nodes = map[string]*Tech{t.Name: &t}
}

// Get returns the technology data for the named process node.
func Get(name string) (*Tech, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	t, ok := nodes[name]
	if !ok {
		return nil, fmt.Errorf("tech: unknown process node %q", name)
	}
	return t, nil
}

// MustGet returns the technology data for the named node, or panics.
// The embedded table is validated by tests; a failure here means the
// binary itself is broken.
func MustGet(name string) *Tech {
	t, err := Get(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Known reports whether the layer spec is in the process layer table.
// Tech implements layout.LayerTable.
func (t *Tech) Known(l layout.LayerSpec) bool {
	_, ok := t.Layers[l]
	return ok
}

// Layer returns the table entry for a layer spec.
func (t *Tech) Layer(l layout.LayerSpec) (Layer, bool) {
	entry, ok := t.Layers[l]
	return entry, ok
}

// Param returns a named process parameter. Unknown names return 0;
// the generators only ask for parameters the embedded table carries,
// which the tech tests pin down.
func (t *Tech) Param(name string) float64 {
	return t.Params[name]
}

// Compile-time interface check.
var _ layout.LayerTable = (*Tech)(nil)
