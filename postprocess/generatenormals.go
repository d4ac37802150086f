// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postprocess

import (
	"github.com/ocasi3d/ocasi/core"
	"github.com/ocasi3d/ocasi/math32"
)

// generateNormalsPass computes per-vertex normals for meshes that lack
// them, by accumulating each face's geometric normal into every vertex
// it touches and averaging. Grounded on original_source's
// GenerateNormalsProcess::ExecuteProcess (accumulate cross-product face
// normals per vertex with a running count, then normalize the sum).
type generateNormalsPass struct{}

func (p *generateNormalsPass) Option() Options { return GenerateNormals }

func (p *generateNormalsPass) NeedsProcessing(scene *core.Scene, format SourceFormat) bool {
	for _, model := range scene.Models {
		for i := range model.Meshes {
			if meshNeedsNormals(&model.Meshes[i]) {
				return true
			}
		}
	}
	return false
}

func meshNeedsNormals(mesh *core.Mesh) bool {
	if mesh.HasNormals() {
		return false
	}
	return mesh.FaceMode == core.FaceTriangle || mesh.FaceMode == core.FaceQuad
}

func (p *generateNormalsPass) Execute(scene *core.Scene) {
	for mi := range scene.Models {
		model := &scene.Models[mi]
		for mj := range model.Meshes {
			mesh := &model.Meshes[mj]
			if !meshNeedsNormals(mesh) {
				if mesh.FaceMode&(core.FacePoint|core.FaceLine) != 0 && !mesh.HasNormals() {
					log.Info("skipping normal generation for mesh %q: point/line face mode has no well-defined face normal", mesh.Name)
				}
				continue
			}
			generateMeshNormals(mesh)
		}
	}
}

// generateMeshNormals implements the stride-3 (triangle) or stride-4
// (quad) accumulate-and-average algorithm. A mesh whose FaceMode is a
// mixed union is excluded by meshNeedsNormals (same flat-Indices
// boundary limitation as triangulatePass; see DESIGN.md).
func generateMeshNormals(mesh *core.Mesh) {
	stride := 3
	if mesh.FaceMode == core.FaceQuad {
		stride = 4
	}

	vertexCount := mesh.VertexCount()
	sums := make([]math32.Vector3, vertexCount)
	counts := make([]int, vertexCount)

	var v0, v1, v2, edge1, edge2, normal math32.Vector3
	for i := 0; i+stride-1 < mesh.Indices.Len(); i += stride {
		i0, i1, i2 := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		mesh.Vertices.GetVector3(3*int(i0), &v0)
		mesh.Vertices.GetVector3(3*int(i1), &v1)
		mesh.Vertices.GetVector3(3*int(i2), &v2)
		edge1.SubVectors(&v1, &v0)
		edge2.SubVectors(&v2, &v0)
		normal.CrossVectors(&edge1, &edge2)
		normal.Normalize()

		for c := 0; c < stride; c++ {
			idx := mesh.Indices[i+c]
			sums[idx].Add(&normal)
			counts[idx]++
		}
	}

	mesh.Normals = math32.NewArrayF32(0, vertexCount*3)
	var out math32.Vector3
	for i := 0; i < vertexCount; i++ {
		if counts[i] == 0 {
			mesh.Normals.AppendVector3(&out)
			continue
		}
		out.Copy(&sums[i])
		out.Normalize()
		mesh.Normals.AppendVector3(&out)
	}
}
