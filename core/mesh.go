// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import "github.com/ocasi3d/ocasi/math32"

// FaceMode identifies the primitive topology a Mesh's Indices decode to.
// It is a bitmask so post-processing passes such as Triangulate can test
// "does this scene contain anything but triangles" with a single OR.
type FaceMode uint8

const (
	FaceNone FaceMode = 0
	// iota starts at 1 inside the const block below via bit-shift, matching
	// g3n-engine's own style of flag enums (see gls/const.go).
	FacePoint FaceMode = 1 << iota
	FaceLine
	FaceTriangle
	FaceQuad
)

// Dimension records whether a Mesh's Vertices are 2D or 3D positions (OBJ
// permits bare "v x y" position lines); glTF meshes are always Dim3D.
type Dimension uint8

const (
	Dim1D Dimension = iota + 1
	Dim2D
	Dim3D
)

// InvalidIndex is the sentinel used wherever an index field means "none",
// e.g. Mesh.MaterialIndex and Node.ModelIndex.
const InvalidIndex = ^uint32(0)

// MaxTexCoordSets bounds how many independent UV channels a Mesh carries.
// glTF permits TEXCOORD_0..TEXCOORD_N; OCASI caps N so TexCoords can be a
// fixed array instead of a slice-of-slices.
const MaxTexCoordSets = 5

// Mesh is the canonical vertex-buffer representation both the OBJ and
// glTF loaders converge on. All per-vertex arrays share one vertex count
// except Indices, which is always present and always describes FaceMode
// primitives built from Vertices (and, when non-empty, the parallel
// attribute arrays).
type Mesh struct {
	Name          string
	Vertices      math32.ArrayF32
	VertexColours math32.ArrayF32
	Normals       math32.ArrayF32
	Tangents      math32.ArrayF32
	TexCoords     [MaxTexCoordSets]math32.ArrayF32
	Indices       math32.ArrayU32
	MaterialIndex uint32
	FaceMode      FaceMode
	Dim           Dimension
}

// NewMesh returns an empty triangle mesh with no material bound.
func NewMesh() *Mesh {
	return &Mesh{
		MaterialIndex: InvalidIndex,
		FaceMode:      FaceTriangle,
		Dim:           Dim3D,
	}
}

// VertexCount returns the number of 3-float (or 2-float, for Dim2D)
// positions in Vertices.
func (m *Mesh) VertexCount() int {
	if m.Dim == Dim2D {
		return m.Vertices.Len() / 2
	}
	return m.Vertices.Len() / 3
}

// HasNormals reports whether per-vertex normals were supplied.
func (m *Mesh) HasNormals() bool { return m.Normals.Len() > 0 }

// HasTangents reports whether per-vertex tangents were supplied.
func (m *Mesh) HasTangents() bool { return m.Tangents.Len() > 0 }

// HasVertexColours reports whether per-vertex colours were supplied.
func (m *Mesh) HasVertexColours() bool { return m.VertexColours.Len() > 0 }

// HasTexCoords reports whether UV channel set is non-empty.
func (m *Mesh) HasTexCoords(set int) bool {
	if set < 0 || set >= MaxTexCoordSets {
		return false
	}
	return m.TexCoords[set].Len() > 0
}

// NeedsTriangulation reports whether FaceMode contains any non-triangle
// primitive type, the trigger condition for the Triangulate pass.
func (m *Mesh) NeedsTriangulation() bool {
	return m.FaceMode&^FaceTriangle != 0
}
