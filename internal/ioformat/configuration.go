// Package ioformat implements the solver's JSON problem/output formats:
// decoding a problem instance into internal/core types, and encoding a
// solve/repair/mapf result back out. Struct tags use lower_snake_case JSON
// fields throughout.
package ioformat

import (
	"fmt"

	"github.com/elektrokombinacija/itags-het/internal/core"
)

// ConfigurationDoc is the tagged-union wire form of core.Configuration:
// "kind" selects which of GridCell, PointGraphConfiguration, or SE2 the
// remaining fields describe.
type ConfigurationDoc struct {
	Kind string  `json:"kind"`
	ID   int     `json:"id,omitempty"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Yaw  float64 `json:"yaw,omitempty"`
}

// ToConfiguration converts the wire form to a core.Configuration.
func (d ConfigurationDoc) ToConfiguration() (core.Configuration, error) {
	switch d.Kind {
	case "", "grid":
		return core.GridCell{X: int(d.X), Y: int(d.Y)}, nil
	case "pointgraph":
		return core.PointGraphConfiguration{ID: d.ID, X: d.X, Y: d.Y}, nil
	case "se2":
		return core.SE2{X: d.X, Y: d.Y, Yaw: d.Yaw}, nil
	default:
		return nil, fmt.Errorf("unknown configuration kind %q", d.Kind)
	}
}

// ConfigurationToDoc converts a core.Configuration back to its wire form.
func ConfigurationToDoc(c core.Configuration) ConfigurationDoc {
	switch v := c.(type) {
	case core.GridCell:
		return ConfigurationDoc{Kind: "grid", X: float64(v.X), Y: float64(v.Y)}
	case core.PointGraphConfiguration:
		return ConfigurationDoc{Kind: "pointgraph", ID: v.ID, X: v.X, Y: v.Y}
	case core.SE2:
		return ConfigurationDoc{Kind: "se2", X: v.X, Y: v.Y, Yaw: v.Yaw}
	default:
		x, y := c.XY()
		return ConfigurationDoc{Kind: "grid", X: x, Y: y}
	}
}
