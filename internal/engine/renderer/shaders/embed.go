// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TerrainVertexShader transforms terrain vertices and passes normals and
// per-vertex colours through.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader shades the terrain either with a lit base colour or
// with the height-mapped vertex colour.
//
//go:embed terrain.frag
var TerrainFragmentShader string
