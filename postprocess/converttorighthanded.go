// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postprocess

import (
	"github.com/ocasi3d/ocasi/core"
)

// convertToRightHandedPass converts a Scene from a right-handed source
// convention (glTF) into this library's convention by negating the z
// axis and reversing triangle winding, recursively fixing up every node
// transform to match.
//
// spec.md §9 flags the original's NeedsProcessing/GetProcessType as
// apparently buggy (GetProcessType returns Triangulate, looking
// copy-pasted; NeedsProcessing returns true for glTF and false for OBJ
// unconditionally, which the spec calls out as possibly inverted). This
// port implements the behavior the Khronos glTF spec actually documents
// — glTF assets are authored right-handed and must be converted on
// import when this option is requested, OBJ assets are not — which
// happens to match the original's literal true-for-glTF/false-for-OBJ
// behavior; only the copy-pasted GetProcessType is corrected to return
// ConvertToRightHanded. See DESIGN.md.
type convertToRightHandedPass struct{}

func (p *convertToRightHandedPass) Option() Options { return ConvertToRightHanded }

func (p *convertToRightHandedPass) NeedsProcessing(scene *core.Scene, format SourceFormat) bool {
	return format == FormatGLTF
}

func (p *convertToRightHandedPass) Execute(scene *core.Scene) {
	for mi := range scene.Models {
		model := &scene.Models[mi]
		for mj := range model.Meshes {
			flipMesh(&model.Meshes[mj])
		}
	}
	for _, root := range scene.RootNodes {
		flipNodeTransform(root)
	}
}

// flipMesh negates the z component of every position and normal and
// reverses triangle winding. Non-triangle meshes (Point, Line) have no
// winding to flip; their positions/normals are still negated.
func flipMesh(mesh *core.Mesh) {
	if mesh.Dim == core.Dim3D {
		for i := 2; i < mesh.Vertices.Len(); i += 3 {
			mesh.Vertices[i] = -mesh.Vertices[i]
		}
	}
	for i := 2; i < mesh.Normals.Len(); i += 3 {
		mesh.Normals[i] = -mesh.Normals[i]
	}
	if mesh.FaceMode == core.FaceTriangle {
		for i := 0; i+2 < mesh.Indices.Len(); i += 3 {
			mesh.Indices[i], mesh.Indices[i+2] = mesh.Indices[i+2], mesh.Indices[i]
		}
	}
}

// flipNodeTransform applies F·M·F (F = diag(1,1,-1,1)) to a node's local
// transform: negating row 2 and column 2 of the column-major 4x4 leaves
// element (2,2) touched twice (net unchanged) and the z-translation
// entry (row 2, column 3) touched once by the row negation, exactly
// spec.md §4.9's "negate the third row and third column ... then
// additionally negate the z translation" (the z translation is part of
// the row, not a separate third step; F·M·F is involutive, satisfying
// the round-trip testable property in spec.md §8).
func flipNodeTransform(n *core.Node) {
	m := &n.LocalTransform
	for col := 0; col < 4; col++ {
		m[col*4+2] = -m[col*4+2]
	}
	for row := 0; row < 4; row++ {
		m[2*4+row] = -m[2*4+row]
	}
	for _, c := range n.Children {
		flipNodeTransform(c)
	}
}
