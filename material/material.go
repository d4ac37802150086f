// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package material implements the fixed-layout material value store: a
// closed set of scalar/vector keys packed into one byte buffer plus a
// parallel table of texture slots.
package material

import (
	"encoding/binary"
	"math"

	"github.com/ocasi3d/ocasi/texture"
)

// ScalarKey enumerates every recognized scalar/vector material value.
// The set is closed: the keyOffsets prefix-sum table is sized for
// exactly these keys at init time, the same layout strategy
// original_source/OCASI/Core/Material.cpp's CalculateOffset uses.
type ScalarKey int

const (
	AlbedoColour ScalarKey = iota
	AmbientColour
	SpecularColour
	EmissiveColour
	Roughness
	Metallic
	Anisotropy
	AnisotropyRotation
	Clearcoat
	ClearcoatRoughness
	SpecularStrength
	EmissiveStrength
	Transparency
	IOR
	UseCombinedMetallicRoughnessTexture
	UseCombinedAnisotropyAnisotropyRotationTexture
	numScalarKeys
)

// valueKind distinguishes the byte width each ScalarKey occupies.
type valueKind int

const (
	kindF32 valueKind = iota
	kindVec4
	kindBool
)

var keyKinds = [numScalarKeys]valueKind{
	AlbedoColour:       kindVec4,
	AmbientColour:      kindVec4,
	SpecularColour:     kindVec4,
	EmissiveColour:     kindVec4,
	Roughness:          kindF32,
	Metallic:           kindF32,
	Anisotropy:         kindF32,
	AnisotropyRotation: kindF32,
	Clearcoat:          kindF32,
	ClearcoatRoughness: kindF32,
	SpecularStrength:   kindF32,
	EmissiveStrength:   kindF32,
	Transparency:       kindF32,
	IOR:                kindF32,
	UseCombinedMetallicRoughnessTexture:            kindBool,
	UseCombinedAnisotropyAnisotropyRotationTexture: kindBool,
}

func kindSize(k valueKind) int {
	switch k {
	case kindVec4:
		return 16
	case kindBool:
		return 1
	default:
		return 4
	}
}

// keyOffsets is the prefix-summed byte offset of each ScalarKey, computed
// once in init(), mirroring CalculateOffset's single pass over the key
// table at Material construction time in the original.
var keyOffsets [numScalarKeys]int
var valueBufferSize int

func init() {
	offset := 0
	for k := ScalarKey(0); k < numScalarKeys; k++ {
		keyOffsets[k] = offset
		offset += kindSize(keyKinds[k])
	}
	valueBufferSize = offset
}

// TextureKey enumerates every recognized texture slot.
type TextureKey int

const (
	TexAlbedo TextureKey = iota
	TexDiffuse
	TexSpecular
	TexEmissive
	TexMetallic
	TexRoughness
	TexCombinedMetallicRoughness
	TexNormal
	TexOcclusion
	TexSheen
	TexClearcoat
	TexClearcoatRoughness
	TexClearcoatNormal
	TexTransmission
	TexVolumeThickness
	TexAnisotropy
	TexCombinedAnisotropyRotation
	TexIridescence
	TexIridescenceThickness
	TexBump
	TexShininess
	TexTransparency
	TexAmbient
	TexReflectionTop
	TexReflectionBottom
	TexReflectionFront
	TexReflectionBack
	TexReflectionLeft
	TexReflectionRight
	TexReflectionSphere
	numTextureKeys
)

// Vec4 is a plain 4-float value, used for every colour ScalarKey.
type Vec4 struct{ X, Y, Z, W float32 }

// Material is the fixed-layout value store spec'd by the material value
// store component: a dense byte buffer for scalar/vector keys plus a
// fixed array of texture slots. Each accessor function below fixes the
// Go type of the value it reads or writes, but none of them checks that
// key was declared with that kind: there is no compile-time or runtime
// check, so SetFloat on a Vec4 key overwrites the first 4 bytes of that
// key's slot.
type Material struct {
	Name     string
	buf      []byte
	textures [numTextureKeys]*texture.Image
}

// New returns a Material with every documented default applied: colours
// (1,1,1,1), roughness 0.4, every other scalar 0, every bool false, and
// every texture slot nil.
func New(name string) *Material {
	m := &Material{Name: name, buf: make([]byte, valueBufferSize)}
	for _, k := range []ScalarKey{AlbedoColour, AmbientColour, SpecularColour, EmissiveColour} {
		SetVec4(m, k, Vec4{1, 1, 1, 1})
	}
	SetFloat(m, Roughness, 0.4)
	return m
}

func (m *Material) offset(key ScalarKey) int { return keyOffsets[key] }

// SetFloat stores a float32 value for key.
func SetFloat(m *Material, key ScalarKey, v float32) {
	off := m.offset(key)
	binary.LittleEndian.PutUint32(m.buf[off:], math.Float32bits(v))
}

// GetFloat reads the float32 value stored for key.
func GetFloat(m *Material, key ScalarKey) float32 {
	off := m.offset(key)
	return math.Float32frombits(binary.LittleEndian.Uint32(m.buf[off:]))
}

// SetVec4 stores a 4-float value for key.
func SetVec4(m *Material, key ScalarKey, v Vec4) {
	off := m.offset(key)
	binary.LittleEndian.PutUint32(m.buf[off:], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(m.buf[off+4:], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(m.buf[off+8:], math.Float32bits(v.Z))
	binary.LittleEndian.PutUint32(m.buf[off+12:], math.Float32bits(v.W))
}

// GetVec4 reads the 4-float value stored for key.
func GetVec4(m *Material, key ScalarKey) Vec4 {
	off := m.offset(key)
	return Vec4{
		X: math.Float32frombits(binary.LittleEndian.Uint32(m.buf[off:])),
		Y: math.Float32frombits(binary.LittleEndian.Uint32(m.buf[off+4:])),
		Z: math.Float32frombits(binary.LittleEndian.Uint32(m.buf[off+8:])),
		W: math.Float32frombits(binary.LittleEndian.Uint32(m.buf[off+12:])),
	}
}

// SetBool stores a boolean value for key.
func SetBool(m *Material, key ScalarKey, v bool) {
	off := m.offset(key)
	if v {
		m.buf[off] = 1
	} else {
		m.buf[off] = 0
	}
}

// GetBool reads the boolean value stored for key.
func GetBool(m *Material, key ScalarKey) bool {
	return m.buf[m.offset(key)] != 0
}

// SetTexture binds img to slot, replacing whatever was previously bound.
func (m *Material) SetTexture(slot TextureKey, img *texture.Image) {
	m.textures[slot] = img
}

// Texture returns the Image bound to slot, or nil.
func (m *Material) Texture(slot TextureKey) *texture.Image {
	return m.textures[slot]
}
