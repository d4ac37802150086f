// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ocasi3d/ocasi/texture"
)

func TestNewMaterialAppliesDocumentedDefaults(t *testing.T) {
	m := New("test")
	assert.Equal(t, "test", m.Name)
	assert.Equal(t, Vec4{1, 1, 1, 1}, GetVec4(m, AlbedoColour))
	assert.Equal(t, Vec4{1, 1, 1, 1}, GetVec4(m, AmbientColour))
	assert.Equal(t, Vec4{1, 1, 1, 1}, GetVec4(m, SpecularColour))
	assert.Equal(t, Vec4{1, 1, 1, 1}, GetVec4(m, EmissiveColour))
	assert.Equal(t, float32(0.4), GetFloat(m, Roughness))
	assert.Equal(t, float32(0), GetFloat(m, Metallic))
	assert.False(t, GetBool(m, UseCombinedMetallicRoughnessTexture))
}

func TestSetGetFloatRoundTrips(t *testing.T) {
	m := New("m")
	SetFloat(m, IOR, 1.45)
	assert.Equal(t, float32(1.45), GetFloat(m, IOR))
}

func TestSetGetVec4RoundTrips(t *testing.T) {
	m := New("m")
	v := Vec4{X: 0.1, Y: 0.2, Z: 0.3, W: 0.4}
	SetVec4(m, EmissiveColour, v)
	assert.Equal(t, v, GetVec4(m, EmissiveColour))
}

func TestSetGetBoolRoundTrips(t *testing.T) {
	m := New("m")
	SetBool(m, UseCombinedMetallicRoughnessTexture, true)
	assert.True(t, GetBool(m, UseCombinedMetallicRoughnessTexture))
	SetBool(m, UseCombinedMetallicRoughnessTexture, false)
	assert.False(t, GetBool(m, UseCombinedMetallicRoughnessTexture))
}

// Every ScalarKey's value must live in a disjoint byte range: writing one
// key must never bleed into a neighboring key's bytes.
func TestScalarKeysDoNotOverlap(t *testing.T) {
	m := New("m")
	SetFloat(m, Roughness, 123.5)
	SetFloat(m, Metallic, 456.5)
	assert.Equal(t, float32(123.5), GetFloat(m, Roughness))
	assert.Equal(t, float32(456.5), GetFloat(m, Metallic))

	SetVec4(m, AlbedoColour, Vec4{9, 9, 9, 9})
	assert.Equal(t, float32(123.5), GetFloat(m, Roughness))
	assert.Equal(t, Vec4{9, 9, 9, 9}, GetVec4(m, AlbedoColour))
}

func TestTextureSlotsDefaultNil(t *testing.T) {
	m := New("m")
	assert.Nil(t, m.Texture(TexAlbedo))
}

func TestSetTextureReplacesPrevious(t *testing.T) {
	m := New("m")
	img1 := texture.NewImageFromPath("a.png")
	img2 := texture.NewImageFromPath("b.png")
	m.SetTexture(TexAlbedo, img1)
	m.SetTexture(TexAlbedo, img2)
	assert.Equal(t, img2, m.Texture(TexAlbedo))
}
