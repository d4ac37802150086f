// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postprocess

import "github.com/ocasi3d/ocasi/core"

// generateTextureCoordinatesPass fills TexCoords[0] for meshes that have
// none, by planar-projecting each vertex's (x, y) onto the mesh's own
// bounding box and normalizing to [0, 1]. This is the simplest
// projection that gives every vertex a deterministic, non-degenerate UV
// without guessing at surface topology.
//
// Like collapseChildNodesPass, neither spec.md nor original_source names
// an algorithm for this pass (it appears only in the option bit-mask and
// pipeline order); planar projection is the conventional fallback other
// 3D pipelines use when asked to manufacture UVs from nothing. See
// DESIGN.md.
type generateTextureCoordinatesPass struct{}

func (p *generateTextureCoordinatesPass) Option() Options { return GenerateTextureCoordinates }

func (p *generateTextureCoordinatesPass) NeedsProcessing(scene *core.Scene, format SourceFormat) bool {
	for _, model := range scene.Models {
		for i := range model.Meshes {
			if meshNeedsTexCoords(&model.Meshes[i]) {
				return true
			}
		}
	}
	return false
}

func meshNeedsTexCoords(mesh *core.Mesh) bool {
	return !mesh.HasTexCoords(0) && mesh.VertexCount() > 0
}

func (p *generateTextureCoordinatesPass) Execute(scene *core.Scene) {
	for mi := range scene.Models {
		model := &scene.Models[mi]
		for mj := range model.Meshes {
			mesh := &model.Meshes[mj]
			if !meshNeedsTexCoords(mesh) {
				continue
			}
			generatePlanarTexCoords(mesh)
		}
	}
}

func generatePlanarTexCoords(mesh *core.Mesh) {
	n := mesh.VertexCount()
	stride := 3
	if mesh.Dim == core.Dim2D {
		stride = 2
	}

	minX, minY := mesh.Vertices[0], mesh.Vertices[1]
	maxX, maxY := minX, minY
	for i := 0; i < n; i++ {
		x, y := mesh.Vertices[i*stride], mesh.Vertices[i*stride+1]
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	spanX, spanY := maxX-minX, maxY-minY

	mesh.TexCoords[0] = make([]float32, 0, n*2)
	for i := 0; i < n; i++ {
		x, y := mesh.Vertices[i*stride], mesh.Vertices[i*stride+1]
		u, v := float32(0.5), float32(0.5)
		if spanX != 0 {
			u = (x - minX) / spanX
		}
		if spanY != 0 {
			v = (y - minY) / spanY
		}
		mesh.TexCoords[0].Append(u, v)
	}
}
