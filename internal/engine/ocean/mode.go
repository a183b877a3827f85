package ocean

import (
	"fmt"
	"strings"
)

// RenderMode selects which passes run each frame.
type RenderMode int

const (
	// GeometryOnly draws the displaced mesh with a flat colour.
	GeometryOnly RenderMode = iota
	// GeometryPlusNormalMap bakes the normal map, then draws the lit mesh.
	GeometryPlusNormalMap
)

var modeNames = [...]string{
	GeometryOnly:          "geometry",
	GeometryPlusNormalMap: "normalmap",
}

func (m RenderMode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("RenderMode(%d)", int(m))
	}
	return modeNames[m]
}

// BakesNormalMap reports whether the mode runs the offscreen bake pass.
func (m RenderMode) BakesNormalMap() bool {
	return m == GeometryPlusNormalMap
}

// Next cycles to the following mode.
func (m RenderMode) Next() RenderMode {
	return (m + 1) % RenderMode(len(modeNames))
}

// ParseRenderMode accepts the config spelling of a mode.
func ParseRenderMode(s string) (RenderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "geometry", "geometry_only", "flat":
		return GeometryOnly, nil
	case "", "normalmap", "normal_map", "lit":
		return GeometryPlusNormalMap, nil
	}
	return GeometryPlusNormalMap, fmt.Errorf("unknown render mode %q", s)
}
