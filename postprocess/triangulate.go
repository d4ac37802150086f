// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postprocess

import "github.com/ocasi3d/ocasi/core"

// triangulatePass fan-triangulates quad meshes: a quad [a,b,c,d] becomes
// triangles [a,b,c] and [a,c,d], preserving every vertex reference.
// Grounded on original_source's TriangulateProcess, whose ExecuteProcess
// body is empty and whose NeedsProcessing unconditionally returns false
// (an evident stub — spec.md §4.9 describes the fan-triangulation
// algorithm in prose without a working reference implementation to
// copy, so this port implements the documented algorithm directly).
type triangulatePass struct{}

func (p *triangulatePass) Option() Options { return Triangulate }

func (p *triangulatePass) NeedsProcessing(scene *core.Scene, format SourceFormat) bool {
	for _, model := range scene.Models {
		for i := range model.Meshes {
			if model.Meshes[i].NeedsTriangulation() {
				return true
			}
		}
	}
	return false
}

func (p *triangulatePass) Execute(scene *core.Scene) {
	for mi := range scene.Models {
		model := &scene.Models[mi]
		for mj := range model.Meshes {
			triangulateMesh(&model.Meshes[mj])
		}
	}
}

// triangulateMesh handles the two homogeneous cases spec.md §8's
// testable properties exercise directly: a mesh whose FaceMode is
// exactly Quad (stride-4 indices) is fan-triangulated in place. A mesh
// whose FaceMode is a union including both Triangle and Quad bits has
// no per-face corner-count record in the canonical Mesh (Indices is one
// flat array with no face-boundary markers for a mixed-arity mesh), so
// a correct fan-triangulation can't be derived from FaceMode alone; this
// is logged at Warn and the mesh is left untouched, per spec.md §7's
// "post-processing errors are logged at Warn and the pass is skipped
// for that mesh" propagation policy. See DESIGN.md.
func triangulateMesh(mesh *core.Mesh) {
	if mesh.FaceMode&core.FaceQuad == 0 {
		return
	}
	if mesh.FaceMode != core.FaceQuad {
		log.Warn("skipping triangulation of mesh %q: mixed face mode %v has no per-face boundary record", mesh.Name, mesh.FaceMode)
		return
	}
	if mesh.Indices.Len()%4 != 0 {
		log.Warn("skipping triangulation of mesh %q: quad index count %d not a multiple of 4", mesh.Name, mesh.Indices.Len())
		return
	}

	out := make([]uint32, 0, mesh.Indices.Len()/4*6)
	for i := 0; i+3 < mesh.Indices.Len(); i += 4 {
		a, b, c, d := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2], mesh.Indices[i+3]
		out = append(out, a, b, c, a, c, d)
	}
	mesh.Indices = out
	mesh.FaceMode = core.FaceTriangle
}
