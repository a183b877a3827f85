// Package ocean renders the wave-displaced water surface. In
// GeometryPlusNormalMap mode every frame first bakes the normal-map waves
// into an offscreen texture, then draws the lit mesh sampling it.
package ocean

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-ocean/internal/engine/framebuffer"
	"github.com/Faultbox/midgard-ocean/internal/engine/mesh"
	"github.com/Faultbox/midgard-ocean/internal/engine/ocean/shaders"
	"github.com/Faultbox/midgard-ocean/internal/engine/shader"
	"github.com/Faultbox/midgard-ocean/internal/logger"
	"github.com/Faultbox/midgard-ocean/pkg/math"
	"github.com/Faultbox/midgard-ocean/pkg/wave"
)

// Options configures the renderer.
type Options struct {
	Mode       RenderMode
	TexSize    int32
	UVScale    float32
	FogStart   float32
	FogEnd     float32
	FogColor   [3]float32
	WaterColor [4]float32
	LightDir   math.Vec3
}

// Frame is everything a single draw needs. Wave slices use the flattened
// 6-float layout and are only read during Render.
type Frame struct {
	Time      float32
	ViewProj  math.Mat4
	Eye       math.Vec3
	Geometric []float32
	NormalMap []float32
}

// Renderer owns the GL programs, the base mesh buffers and the normal-map target.
type Renderer struct {
	opts Options
	log  *zap.Logger

	flat *shader.Program
	lit  *shader.Program
	bake *shader.Program

	target *framebuffer.Target

	vao, vbo, ebo uint32
	indexCount    int32
	quadVAO       uint32

	warnedTruncate bool
}

// New compiles the programs, uploads grid and creates the offscreen target.
func New(grid *mesh.Grid, opts Options) (*Renderer, error) {
	if opts.TexSize < 1 {
		opts.TexSize = wave.DefaultTexSize
	}
	r := &Renderer{opts: opts, log: logger.Named("ocean")}

	var err error
	if r.flat, err = shader.Compile("surface_flat", shaders.SurfaceVertexShader, shaders.SurfaceFlatFragmentShader); err != nil {
		return nil, err
	}
	if r.lit, err = shader.Compile("surface_lit", shaders.SurfaceVertexShader, shaders.SurfaceLitFragmentShader); err != nil {
		r.Destroy()
		return nil, err
	}
	if r.bake, err = shader.Compile("normalmap", shaders.NormalMapVertexShader, shaders.NormalMapFragmentShader); err != nil {
		r.Destroy()
		return nil, err
	}
	if err := r.bake.Require("uWaves", "uWaveCount", "uTime", "uTiling"); err != nil {
		r.Destroy()
		return nil, err
	}

	if r.target, err = framebuffer.New(opts.TexSize); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("normal map target: %w", err)
	}

	r.uploadGrid(grid)
	gl.GenVertexArrays(1, &r.quadVAO)

	r.log.Info("renderer ready",
		zap.Stringer("mode", opts.Mode),
		zap.Int32("tex_size", opts.TexSize),
		zap.Int("vertices", grid.VertexCount()),
		zap.Int("triangles", grid.TriangleCount()))
	return r, nil
}

func (r *Renderer) uploadGrid(grid *mesh.Grid) {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(grid.Vertices)*4, unsafe.Pointer(&grid.Vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(grid.Indices)*4, unsafe.Pointer(&grid.Indices[0]), gl.STATIC_DRAW)
	r.indexCount = int32(len(grid.Indices))

	gl.BindVertexArray(0)
}

// Mode returns the active render mode.
func (r *Renderer) Mode() RenderMode {
	return r.opts.Mode
}

// SetMode switches the render mode for following frames.
func (r *Renderer) SetMode(m RenderMode) {
	if m == r.opts.Mode {
		return
	}
	r.opts.Mode = m
	r.log.Info("render mode changed", zap.Stringer("mode", m))
}

// Render draws one frame into the currently bound framebuffer.
func (r *Renderer) Render(f Frame) {
	geo := r.limit(f.Geometric, wave.MaxGeometricWaves)

	if r.opts.Mode.BakesNormalMap() {
		r.bakeNormalMap(f.Time, r.limit(f.NormalMap, wave.MaxNormalMapWaves))
		r.drawSurface(r.lit, f, geo)
		return
	}
	r.drawSurface(r.flat, f, geo)
}

// bakeNormalMap renders the normal-map waves into the offscreen target and
// restores the caller's framebuffer and viewport before returning.
func (r *Renderer) bakeNormalMap(t float32, waves []float32) {
	restore := r.target.BindWithViewport()
	defer restore()

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)

	r.bake.Use()
	r.bake.SetVec3s("uWaves", waves)
	r.bake.SetInt("uWaveCount", int32(len(waves)/wave.FloatsPerWave))
	r.bake.SetFloat("uTime", t)
	r.bake.SetFloat("uTiling", float32(r.target.Size()))

	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

func (r *Renderer) drawSurface(p *shader.Program, f Frame, waves []float32) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	p.Use()
	p.SetVec3s("uWaves", waves)
	p.SetInt("uWaveCount", int32(len(waves)/wave.FloatsPerWave))
	p.SetFloat("uTime", f.Time)
	p.SetMat4("uViewProj", f.ViewProj)
	p.SetVec3("uEye", f.Eye.X, f.Eye.Y, f.Eye.Z)
	p.SetVec3("uLightDir", r.opts.LightDir.X, r.opts.LightDir.Y, r.opts.LightDir.Z)
	p.SetFloat("uUVScale", r.opts.UVScale)
	p.SetVec4("uWaterColor", r.opts.WaterColor)
	p.SetVec3("uFogColor", r.opts.FogColor[0], r.opts.FogColor[1], r.opts.FogColor[2])
	p.SetFloat("uFogStart", r.opts.FogStart)
	p.SetFloat("uFogEnd", r.opts.FogEnd)

	if p == r.lit {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.target.Texture())
		p.SetInt("uNormalMap", 0)
	}

	gl.BindVertexArray(r.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// limit truncates waves to what the shader arrays hold.
func (r *Renderer) limit(waves []float32, maxWaves int) []float32 {
	n := maxWaves * wave.FloatsPerWave
	if len(waves) <= n {
		return waves
	}
	if !r.warnedTruncate {
		r.log.Warn("wave batch exceeds shader capacity, truncating",
			zap.Int("waves", len(waves)/wave.FloatsPerWave),
			zap.Int("max", maxWaves))
		r.warnedTruncate = true
	}
	return waves[:n]
}

// NormalMapPixels reads back the last baked normal map as RGBA rows,
// texture v = 0 first.
func (r *Renderer) NormalMapPixels() (pixels []byte, size int) {
	return r.target.ReadPixels(), int(r.target.Size())
}

// Destroy releases every GL resource the renderer created.
func (r *Renderer) Destroy() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
		r.quadVAO = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	if r.target != nil {
		r.target.Destroy()
		r.target = nil
	}
	for _, p := range []*shader.Program{r.flat, r.lit, r.bake} {
		if p != nil {
			p.Delete()
		}
	}
}
