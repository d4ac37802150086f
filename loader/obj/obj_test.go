// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obj

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ocasi3d/ocasi/core"
)

func decodeOBJ(t *testing.T, text string) *Decoder {
	t.Helper()
	dec := NewDecoder()
	src := core.NewTextSourceFromBytes([]byte(text))
	err := dec.DecodeOBJ(src)
	assert.NoError(t, err)
	return dec
}

func TestDecodeSimpleTriangle(t *testing.T) {
	dec := decodeOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`)
	assert.Equal(t, 9, dec.Positions.Len())
	assert.Len(t, dec.Objects, 1)
	assert.Len(t, dec.Objects[0].Meshes, 1)
	mesh := dec.Objects[0].Meshes[0]
	assert.Len(t, mesh.Faces, 1)
	assert.Equal(t, core.FaceTriangle, mesh.Faces[0].Mode)
}

func TestDecodeQuadFaceSetsQuadMode(t *testing.T) {
	dec := decodeOBJ(t, `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`)
	mesh := dec.Objects[0].Meshes[0]
	assert.Equal(t, core.FaceQuad, mesh.Faces[0].Mode)
}

func TestNegativeFaceIndicesResolveRelativeToCurrentCount(t *testing.T) {
	dec := decodeOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`)
	mesh := dec.Objects[0].Meshes[0]
	assert.Equal(t, []int32{0, 1, 2}, mesh.Faces[0].Vertices)
}

func TestFaceReferencingUndeclaredTexCoordIsMalformed(t *testing.T) {
	dec := NewDecoder()
	src := core.NewTextSourceFromBytes([]byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1 2/1 3/1\n"))
	err := dec.DecodeOBJ(src)
	assert.Error(t, err)
	var faceErr *core.MalformedFaceError
	assert.ErrorAs(t, err, &faceErr)
}

func TestTwoDimensionalVertexSetsDim2D(t *testing.T) {
	dec := decodeOBJ(t, "v 0 0\nv 1 0\nv 0 1\nf 1 2 3\n")
	assert.Equal(t, core.Dim2D, dec.dim)
}

func TestVertexColourIsDetected(t *testing.T) {
	dec := decodeOBJ(t, "v 0 0 0 1 0 0\nv 1 0 0 0 1 0\nv 0 1 0 0 0 1\nf 1 2 3\n")
	assert.True(t, dec.hasColour)
	assert.Equal(t, 9, dec.Colours.Len())
}

func TestGroupDirectiveStartsNewMeshOnlyWhenCurrentHasFaces(t *testing.T) {
	dec := decodeOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
g first
f 1 2 3
g second
f 1 2 3
`)
	assert.Len(t, dec.Objects[0].Meshes, 2)
	assert.Equal(t, "first", dec.Objects[0].Meshes[0].Name)
	assert.Equal(t, "second", dec.Objects[0].Meshes[1].Name)
}

func TestObjectDirectiveRenamesEmptyDefaultObjectInPlace(t *testing.T) {
	dec := decodeOBJ(t, "o namedLater\nv 0 0 0\n")
	assert.Len(t, dec.Objects, 1)
	assert.Equal(t, "namedLater", dec.Objects[0].Name)
}

func TestSmoothDirectiveParsesOnOffAndNumeric(t *testing.T) {
	dec := NewDecoder()
	src := core.NewTextSourceFromBytes([]byte("s 1\ns off\ns 0\ns on\n"))
	err := dec.DecodeOBJ(src)
	assert.NoError(t, err)
}

func TestSmoothDirectiveRejectsInvalidValue(t *testing.T) {
	dec := NewDecoder()
	src := core.NewTextSourceFromBytes([]byte("s bogus\n"))
	err := dec.DecodeOBJ(src)
	assert.Error(t, err)
}

func TestDecodeMTLParsesPBRExtensions(t *testing.T) {
	dec := NewDecoder()
	src := core.NewTextSourceFromBytes([]byte(`
newmtl shiny
Kd 1 0 0
Pr 0.25
Pm 0.75
Pc 0.1
Pcr 0.2
aniso 0.3
anisor 0.4
Ni 1.45
d 0.5
`))
	err := dec.DecodeMTL(src)
	assert.NoError(t, err)

	mat := dec.Materials["shiny"]
	assert.NotNil(t, mat)
	assert.Equal(t, float32(0.25), mat.Roughness)
	assert.Equal(t, float32(0.75), mat.Metallic)
	assert.Equal(t, float32(0.1), mat.Clearcoat)
	assert.Equal(t, float32(0.2), mat.ClearcoatRoughness)
	assert.Equal(t, float32(0.3), mat.Anisotropy)
	assert.Equal(t, float32(0.4), mat.AnisotropyRotation)
	assert.Equal(t, float32(1.45), mat.Refraction)
	assert.Equal(t, float32(0.5), mat.Opacity)
}

func TestDecodeMTLTrIsComplementOfD(t *testing.T) {
	dec := NewDecoder()
	src := core.NewTextSourceFromBytes([]byte("newmtl m\nTr 0.3\n"))
	err := dec.DecodeMTL(src)
	assert.NoError(t, err)
	assert.Equal(t, float32(0.7), dec.Materials["m"].Opacity)
}

func TestDecodeMTLMapDirectiveParsesClampOption(t *testing.T) {
	dec := NewDecoder()
	src := core.NewTextSourceFromBytes([]byte("newmtl m\nmap_Kd -clamp on diffuse.png\n"))
	err := dec.DecodeMTL(src)
	assert.NoError(t, err)
	mat := dec.Materials["m"]
	assert.Equal(t, "diffuse.png", mat.MapKd)
	assert.True(t, mat.Clamp)
}

func TestToSceneProducesOneRootNodePerNonEmptyObject(t *testing.T) {
	dec := decodeOBJ(t, `
o obj1
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
o obj2
v 2 0 0
v 3 0 0
v 2 1 0
f 4 5 6
`)
	scene, err := dec.ToScene(".")
	assert.NoError(t, err)
	assert.Len(t, scene.RootNodes, 2)
	assert.Len(t, scene.Models, 2)
}

func TestToSceneSkipsEmptyObjects(t *testing.T) {
	dec := decodeOBJ(t, "o emptyObj\n")
	scene, err := dec.ToScene(".")
	assert.NoError(t, err)
	assert.Len(t, scene.RootNodes, 0)
}

func TestToSceneBindsMaterialIndexToMesh(t *testing.T) {
	dec := NewDecoder()
	objSrc := core.NewTextSourceFromBytes([]byte(`
v 0 0 0
v 1 0 0
v 0 1 0
usemtl red
f 1 2 3
`))
	assert.NoError(t, dec.DecodeOBJ(objSrc))
	mtlSrc := core.NewTextSourceFromBytes([]byte("newmtl red\nKd 1 0 0\n"))
	assert.NoError(t, dec.DecodeMTL(mtlSrc))

	scene, err := dec.ToScene(".")
	assert.NoError(t, err)
	mesh := scene.Models[0].Meshes[0]
	assert.NotEqual(t, core.InvalidIndex, mesh.MaterialIndex)
}
