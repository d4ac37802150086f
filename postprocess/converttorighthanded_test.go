// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ocasi3d/ocasi/core"
	"github.com/ocasi3d/ocasi/math32"
)

func TestConvertToRightHandedNeedsProcessingPerFormat(t *testing.T) {
	p := &convertToRightHandedPass{}
	scene := core.NewScene()
	assert.True(t, p.NeedsProcessing(scene, FormatGLTF))
	assert.False(t, p.NeedsProcessing(scene, FormatOBJ))
}

func TestConvertToRightHandedOptionIsConvertToRightHanded(t *testing.T) {
	p := &convertToRightHandedPass{}
	assert.Equal(t, ConvertToRightHanded, p.Option())
}

func TestFlipMeshNegatesZAndReversesWinding(t *testing.T) {
	mesh := core.NewMesh()
	mesh.Vertices = []float32{0, 0, 1, 1, 0, 2, 0, 1, 3}
	mesh.Normals = []float32{0, 0, 1}
	mesh.Indices = []uint32{0, 1, 2}

	flipMesh(mesh)

	assert.Equal(t, float32(-1), mesh.Vertices[2])
	assert.Equal(t, float32(-2), mesh.Vertices[5])
	assert.Equal(t, float32(-3), mesh.Vertices[8])
	assert.Equal(t, float32(-1), mesh.Normals[2])
	assert.Equal(t, []uint32{2, 1, 0}, []uint32(mesh.Indices))
}

func TestFlipNodeTransformIsInvolutive(t *testing.T) {
	n := core.NewNode("n")
	n.LocalTransform.Compose(
		math32.NewVector3(1, 2, 3),
		math32.NewQuaternion(0, 0, 0, 1),
		math32.NewVector3(1, 1, 1),
	)
	original := n.LocalTransform

	flipNodeTransform(n)
	assert.NotEqual(t, original, n.LocalTransform)

	flipNodeTransform(n)
	assert.Equal(t, original, n.LocalTransform)
}

func TestFlipNodeTransformRecursesIntoChildren(t *testing.T) {
	root := core.NewNode("root")
	child := core.NewNode("child")
	root.AddChild(child)
	child.LocalTransform.SetPosition(math32.NewVector3(0, 0, 5))

	flipNodeTransform(root)
	assert.Equal(t, float32(-5), child.LocalTransform[14])
}
