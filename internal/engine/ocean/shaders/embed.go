// Package shaders provides embedded GLSL shader sources for the ocean renderer.
package shaders

import _ "embed"

// SurfaceVertexShader displaces the base grid by the geometric waves and
// emits the tangent-space light and view vectors.
//
//go:embed surface.vert
var SurfaceVertexShader string

// SurfaceFlatFragmentShader paints the displaced surface a flat fogged colour.
//
//go:embed surface_flat.frag
var SurfaceFlatFragmentShader string

// SurfaceLitFragmentShader shades the surface with the baked normal map.
//
//go:embed surface_lit.frag
var SurfaceLitFragmentShader string

// NormalMapVertexShader emits a full-screen quad without vertex buffers.
//
//go:embed normalmap.vert
var NormalMapVertexShader string

// NormalMapFragmentShader evaluates the normal-map waves per texel.
//
//go:embed normalmap.frag
var NormalMapFragmentShader string
