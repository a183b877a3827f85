// Package app runs the interactive ocean viewer: a fixed-rate loop that reads
// input, advances time and draws one frame per tick on the main thread.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ocean/internal/config"
	"github.com/Faultbox/midgard-ocean/internal/engine/camera"
	"github.com/Faultbox/midgard-ocean/internal/engine/debug"
	"github.com/Faultbox/midgard-ocean/internal/engine/input"
	"github.com/Faultbox/midgard-ocean/internal/engine/lighting"
	"github.com/Faultbox/midgard-ocean/internal/engine/mesh"
	"github.com/Faultbox/midgard-ocean/internal/engine/ocean"
	"github.com/Faultbox/midgard-ocean/internal/engine/renderer"
	"github.com/Faultbox/midgard-ocean/internal/engine/window"
	"github.com/Faultbox/midgard-ocean/internal/logger"
	"github.com/Faultbox/midgard-ocean/pkg/math"
	"github.com/Faultbox/midgard-ocean/pkg/wave"
)

const title = "Midgard Ocean"

// App is the viewer instance.
type App struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	ocean    *ocean.Renderer
	input    *input.Input
	camera   *camera.FreeLook
	field    *wave.Field
	capture  *debug.Capture

	start time.Time
}

// New opens the window and builds every GPU resource. The wave field is
// generated before the first frame.
func New(cfg *config.Config) (*App, error) {
	mode, err := ocean.ParseRenderMode(cfg.Render.Mode)
	if err != nil {
		return nil, err
	}
	projection, err := camera.ParseProjection(cfg.Camera.Projection)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:     cfg,
		log:     logger.Named("app"),
		input:   input.New(),
		capture: debug.NewCapture("captures", "normalmap"),
	}

	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      width,
		Height:     height,
		ClearColor: cfg.Render.FogColor,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	grid := mesh.BuildGrid(cfg.Render.MeshDim, cfg.Render.MeshUnit)
	a.ocean, err = ocean.New(grid, ocean.Options{
		Mode:       mode,
		TexSize:    int32(cfg.Render.TexSize),
		UVScale:    cfg.Render.UVScale,
		FogStart:   cfg.Render.FogStart,
		FogEnd:     cfg.Render.FogEnd,
		FogColor:   cfg.Render.FogColor,
		WaterColor: cfg.Render.WaterColor,
		LightDir:   lighting.SunDirection(cfg.Render.Sun.Azimuth, cfg.Render.Sun.Elevation),
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create ocean renderer: %w", err)
	}

	a.camera = camera.NewFreeLook(cfg.Camera.FovY*math32.Pi/180, a.renderer.Aspect(), cfg.Camera.Near, cfg.Camera.Far)
	a.camera.Projection = projection
	a.camera.Center = math.Vec3{Y: cfg.Camera.Height}
	a.camera.SetZoom(cfg.Camera.Zoom)
	a.camera.Rotate(0, 0.3)

	seed := seedFor(cfg.Waves.Seed, time.Now)
	a.log.Info("wave field seeded", zap.Int64("seed", seed))
	a.field = newField(cfg, seed)
	logBatch(a.log, a.field)

	return a, nil
}

// Run drives the loop until the window closes, Esc is pressed or ctx ends.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(a.cfg.Render.TickRate))
	defer ticker.Stop()

	a.start = time.Now()
	frames := 0
	fpsTimer := a.start

	a.log.Info("starting render loop", zap.Int("tick_rate", a.cfg.Render.TickRate))

	for {
		select {
		case <-ctx.Done():
			a.log.Info("render loop cancelled")
			return nil
		case <-ticker.C:
		}

		if a.input.Update() {
			return nil
		}
		for _, ev := range a.input.Events() {
			if quit := a.handle(ctx, ev); quit {
				return nil
			}
		}

		elapsed := float32(time.Since(a.start).Seconds())
		a.draw(elapsed)
		if err := a.renderer.Error(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		a.window.SwapBuffers()

		frames++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frames))
			a.window.SetTitle(fmt.Sprintf("%s - %s - %d fps", title, a.ocean.Mode(), frames))
			frames = 0
			fpsTimer = time.Now()
		}
	}
}

func (a *App) draw(t float32) {
	a.renderer.Begin()
	a.ocean.Render(ocean.Frame{
		Time:      t,
		ViewProj:  a.camera.ViewProjection(),
		Eye:       a.camera.Eye(),
		Geometric: a.field.GeometricFloats(),
		NormalMap: a.field.NormalMapFloats(),
	})
}

// handle reacts to one event and reports whether the loop should stop.
// Regeneration runs here, between frames, so a draw never sees a half-built batch.
func (a *App) handle(ctx context.Context, ev input.Event) bool {
	if ev.Type == input.EventWindowResize {
		width, height := a.window.DrawableSize()
		a.renderer.Resize(width, height)
		a.camera.Aspect = a.renderer.Aspect()
		return false
	}
	if steer(a.camera, ev) {
		return false
	}
	if p, ok := tune(a.field.BaseParameters(), ev); ok {
		a.field.SetBaseParameters(p)
		a.cfg.Waves.Base = p
		a.log.Info("base wave changed",
			zap.Float32("wavelength", p.Wavelength),
			zap.Float32("steepness", p.Steepness),
			zap.Float32("speed", p.Speed),
			zap.Float32("dir_x", p.Direction.X),
			zap.Float32("dir_y", p.Direction.Y))
		logBatch(a.log, a.field)
		return false
	}

	switch actionFor(ev) {
	case actionQuit:
		return true
	case actionRegenerate:
		a.field.Regenerate()
		logBatch(a.log, a.field)
	case actionToggleMode:
		a.ocean.SetMode(a.ocean.Mode().Next())
	case actionToggleProjection:
		toggleProjection(a.camera)
		a.log.Info("projection changed", zap.Stringer("projection", a.camera.Projection))
	case actionSaveNormalMap:
		a.saveNormalMap(ctx)
	case actionSaveConfig:
		if err := a.cfg.Save(); err != nil {
			a.log.Error("saving config failed", zap.Error(err))
			break
		}
		a.log.Info("config saved", zap.String("dir", config.ConfigDir()))
	}
	return false
}

// saveNormalMap writes the current normal map to disk. The GPU target is read
// back when it is being baked; otherwise the map is baked on the CPU.
func (a *App) saveNormalMap(ctx context.Context) {
	var (
		path string
		err  error
	)
	if a.ocean.Mode().BakesNormalMap() {
		pixels, size := a.ocean.NormalMapPixels()
		path, err = a.capture.FromTexels(pixels, size, size)
	} else {
		elapsed := float32(time.Since(a.start).Seconds())
		size := a.cfg.Render.TexSize
		img, bakeErr := wave.BakeNormalMap(ctx, a.field.NormalMapFloats(), elapsed, size, float32(size))
		if bakeErr != nil {
			a.log.Error("normal map bake failed", zap.Error(bakeErr))
			return
		}
		path, err = a.capture.FromImage(img)
	}
	if err != nil {
		a.log.Error("saving normal map failed", zap.Error(err))
		return
	}
	a.log.Info("normal map saved", zap.String("path", path))
}

// Close releases GPU resources and the window.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.ocean != nil {
		a.ocean.Destroy()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
