// Package config handles renderer configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/midgard-ocean/pkg/math"
	"github.com/Faultbox/midgard-ocean/pkg/wave"
)

// Config holds all renderer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Waves    WavesConfig    `yaml:"waves"`
	Render   RenderConfig   `yaml:"render"`
	Camera   CameraConfig   `yaml:"camera"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds window settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// WavesConfig holds the base wave template and how batches are derived from it.
type WavesConfig struct {
	Base            wave.Parameters `yaml:"base"`
	GeometricCount  int             `yaml:"geometric_count"`
	WavelengthRange [2]float32      `yaml:"wavelength_range"` // multiples of base wavelength
	SteepnessRange  [2]float32      `yaml:"steepness_range"`  // multiples of base steepness
	DirectionSpread float32         `yaml:"direction_spread"` // radians
	Dispersion      bool            `yaml:"dispersion"`
	NormalMap       NormalMapConfig `yaml:"normal_map"`
	Seed            int64           `yaml:"seed"` // 0 picks a seed at startup
}

// NormalMapConfig holds the sampling ranges for normal-map waves.
type NormalMapConfig struct {
	Count           int        `yaml:"count"`
	WavelengthRange [2]float32 `yaml:"wavelength_range"`
	ExponentRange   [2]float32 `yaml:"exponent_range"`
	AmpOverLen      float32    `yaml:"amp_over_len"`
	SpeedCoeff      float32    `yaml:"speed_coeff"`
	LatticeSnap     bool       `yaml:"lattice_snap"`
}

// RenderConfig holds pipeline settings.
type RenderConfig struct {
	Mode       string     `yaml:"mode"` // "geometry" or "normalmap"
	MeshDim    float32    `yaml:"mesh_dim"`
	MeshUnit   float32    `yaml:"mesh_unit"`
	TexSize    int        `yaml:"tex_size"`
	UVScale    float32    `yaml:"uv_scale"` // normal map repeats per world unit
	FogStart   float32    `yaml:"fog_start"`
	FogEnd     float32    `yaml:"fog_end"`
	FogColor   [3]float32 `yaml:"fog_color"`
	WaterColor [4]float32 `yaml:"water_color"`
	Sun        SunConfig  `yaml:"sun"`
	TickRate   int        `yaml:"tick_rate"` // frames per second
}

// SunConfig places the directional light, in degrees.
type SunConfig struct {
	Azimuth   float32 `yaml:"azimuth"`   // around +Y, from +Z towards +X
	Elevation float32 `yaml:"elevation"` // above the horizon
}

// CameraConfig holds the initial free-look camera state.
type CameraConfig struct {
	Projection string  `yaml:"projection"` // "perspective" or "orthographic"
	FovY       float32 `yaml:"fov_y"`      // degrees
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	Zoom       float32 `yaml:"zoom"`
	Height     float32 `yaml:"height"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	opts := wave.DefaultFieldOptions()
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Waves: WavesConfig{
			Base: wave.Parameters{
				Wavelength: 16,
				Steepness:  1,
				Speed:      0.16,
				AmpOverLen: 0.05,
				Direction:  math.Vec2{X: 1, Y: 0.5}.Normalize(),
			},
			GeometricCount:  opts.GeometricCount,
			WavelengthRange: [2]float32{opts.WavelengthMin, opts.WavelengthMax},
			SteepnessRange:  [2]float32{opts.SteepnessMin, opts.SteepnessMax},
			DirectionSpread: opts.DirectionSpread,
			Dispersion:      opts.Dispersion,
			NormalMap: NormalMapConfig{
				Count:           opts.NormalMapCount,
				WavelengthRange: [2]float32{opts.NormalMapWavelengthMin, opts.NormalMapWavelengthMax},
				ExponentRange:   [2]float32{opts.NormalMapExponentMin, opts.NormalMapExponentMax},
				AmpOverLen:      opts.NormalMapAmpOverLen,
				SpeedCoeff:      opts.NormalMapSpeedCoeff,
				LatticeSnap:     opts.LatticeSnap,
			},
		},
		Render: RenderConfig{
			Mode:       "normalmap",
			MeshDim:    100,
			MeshUnit:   2,
			TexSize:    wave.DefaultTexSize,
			UVScale:    0.1,
			FogStart:   20,
			FogEnd:     60,
			FogColor:   [3]float32{0.55, 0.65, 0.75},
			WaterColor: [4]float32{0.1, 0.3, 0.45, 0.85},
			Sun:        SunConfig{Azimuth: 31, Elevation: 60},
			TickRate:   60,
		},
		Camera: CameraConfig{
			Projection: "perspective",
			FovY:       45,
			Near:       0.1,
			Far:        1000,
			Zoom:       15,
			Height:     2,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// FieldOptions converts the wave settings into wave.FieldOptions.
func (c *Config) FieldOptions() wave.FieldOptions {
	w := c.Waves
	return wave.FieldOptions{
		GeometricCount:         w.GeometricCount,
		NormalMapCount:         w.NormalMap.Count,
		WavelengthMin:          w.WavelengthRange[0],
		WavelengthMax:          w.WavelengthRange[1],
		SteepnessMin:           w.SteepnessRange[0],
		SteepnessMax:           w.SteepnessRange[1],
		DirectionSpread:        w.DirectionSpread,
		Dispersion:             w.Dispersion,
		NormalMapWavelengthMin: w.NormalMap.WavelengthRange[0],
		NormalMapWavelengthMax: w.NormalMap.WavelengthRange[1],
		NormalMapExponentMin:   w.NormalMap.ExponentRange[0],
		NormalMapExponentMax:   w.NormalMap.ExponentRange[1],
		NormalMapAmpOverLen:    w.NormalMap.AmpOverLen,
		NormalMapSpeedCoeff:    w.NormalMap.SpeedCoeff,
		LatticeSnap:            w.NormalMap.LatticeSnap,
	}
}

// Validate rejects settings the wave field or the shaders cannot work with.
func (c *Config) Validate() error {
	if err := c.Waves.Base.Validate(); err != nil {
		return fmt.Errorf("waves.base: %w", err)
	}
	if n := c.Waves.GeometricCount; n < 1 || n > wave.MaxGeometricWaves {
		return fmt.Errorf("waves.geometric_count %d outside [1, %d]", n, wave.MaxGeometricWaves)
	}
	if n := c.Waves.NormalMap.Count; n < 1 || n > wave.MaxNormalMapWaves {
		return fmt.Errorf("waves.normal_map.count %d outside [1, %d]", n, wave.MaxNormalMapWaves)
	}
	if r := c.Waves.WavelengthRange; !(r[0] > 0) || r[1] < r[0] {
		return fmt.Errorf("waves.wavelength_range %v is not a positive interval", r)
	}
	if r := c.Waves.NormalMap.WavelengthRange; !(r[0] > 0) || r[1] < r[0] {
		return fmt.Errorf("waves.normal_map.wavelength_range %v is not a positive interval", r)
	}
	if c.Render.TexSize < 1 {
		return fmt.Errorf("render.tex_size %d must be positive", c.Render.TexSize)
	}
	if !(c.Render.MeshUnit > 0) || c.Render.MeshDim < c.Render.MeshUnit {
		return fmt.Errorf("render.mesh_dim %v / mesh_unit %v do not form a grid", c.Render.MeshDim, c.Render.MeshUnit)
	}
	if e := c.Render.Sun.Elevation; e < -90 || e > 90 {
		return fmt.Errorf("render.sun.elevation %v outside [-90, 90]", e)
	}
	if c.Render.TickRate < 1 {
		return fmt.Errorf("render.tick_rate %d must be positive", c.Render.TickRate)
	}
	return nil
}
