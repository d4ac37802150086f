// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ocasi3d/ocasi/core"
)

func f32bytes(vals ...float32) []byte {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func u16bytes(vals ...uint16) []byte {
	buf := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint16(buf[i*2:], v)
	}
	return buf
}

func gltfWithBuffer(data []byte) *GLTF {
	g := &GLTF{
		Buffers: []Buffer{{ByteLength: len(data)}},
	}
	g.Buffers[0].cache = data
	return g
}

func TestAccessorFloatsDecodesTightlyPackedVec3(t *testing.T) {
	data := f32bytes(1, 2, 3, 4, 5, 6)
	g := gltfWithBuffer(data)
	g.BufferViews = []BufferView{{Buffer: 0, ByteLength: len(data)}}
	bv := 0
	ac := &Accessor{BufferView: &bv, ComponentType: ComponentFloat, Count: 2, Type: "VEC3"}

	out, err := g.accessorFloats(ac)
	assert.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, out)
}

func TestAccessorUintsDecodesUnsignedShortIndices(t *testing.T) {
	data := u16bytes(0, 1, 2)
	g := gltfWithBuffer(data)
	g.BufferViews = []BufferView{{Buffer: 0, ByteLength: len(data)}}
	bv := 0
	ac := &Accessor{BufferView: &bv, ComponentType: ComponentUnsignedShort, Count: 3, Type: "SCALAR"}

	out, err := g.accessorUints(ac)
	assert.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2}, out)
}

func TestAccessorFloatsDeInterleavesByteStride(t *testing.T) {
	// Two vertices, each a VEC3 position (12 bytes) followed by an
	// 8-byte field the accessor doesn't care about (normal.xy, say),
	// for a 20-byte stride instead of the natural 12.
	var data []byte
	data = append(data, f32bytes(1, 2, 3)...)
	data = append(data, f32bytes(99, 99)...)
	data = append(data, f32bytes(4, 5, 6)...)
	data = append(data, f32bytes(99, 99)...)

	g := gltfWithBuffer(data)
	stride := 20
	g.BufferViews = []BufferView{{Buffer: 0, ByteLength: len(data), ByteStride: &stride}}
	bv := 0
	ac := &Accessor{BufferView: &bv, ComponentType: ComponentFloat, Count: 2, Type: "VEC3"}

	out, err := g.accessorFloats(ac)
	assert.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, out)
}

func TestAccessorNormalizedUnsignedByteScalesToUnitRange(t *testing.T) {
	data := []byte{255, 0, 128}
	g := gltfWithBuffer(data)
	g.BufferViews = []BufferView{{Buffer: 0, ByteLength: len(data)}}
	bv := 0
	ac := &Accessor{BufferView: &bv, ComponentType: ComponentUnsignedByte, Normalized: true, Count: 3, Type: "SCALAR"}

	out, err := g.accessorFloats(ac)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, out[0], 1e-6)
	assert.InDelta(t, 0.0, out[1], 1e-6)
	assert.InDelta(t, 128.0/255.0, out[2], 1e-6)
}

func TestAccessorElementsAppliesSparseOverride(t *testing.T) {
	base := f32bytes(1, 1, 1, 2, 2, 2, 3, 3, 3)
	idx := u16bytes(1)
	vals := f32bytes(9, 9, 9)

	g := gltfWithBuffer(nil)
	g.Buffers = []Buffer{{}, {}, {}}
	g.Buffers[0].cache = base
	g.Buffers[1].cache = idx
	g.Buffers[2].cache = vals
	g.BufferViews = []BufferView{
		{Buffer: 0, ByteLength: len(base)},
		{Buffer: 1, ByteLength: len(idx)},
		{Buffer: 2, ByteLength: len(vals)},
	}
	bv := 0
	ac := &Accessor{
		BufferView:    &bv,
		ComponentType: ComponentFloat,
		Count:         3,
		Type:          "VEC3",
		Sparse: &Sparse{
			Count:   1,
			Indices: SparseIndices{BufferView: 1, ComponentType: ComponentUnsignedShort},
			Values:  SparseValues{BufferView: 2},
		},
	}

	out, err := g.accessorFloats(ac)
	assert.NoError(t, err)
	assert.Equal(t, []float32{1, 1, 1, 9, 9, 9, 3, 3, 3}, out)
}

func TestAccessorElementsBoundsViolationOnOverrun(t *testing.T) {
	data := f32bytes(1, 2, 3)
	g := gltfWithBuffer(data)
	g.BufferViews = []BufferView{{Buffer: 0, ByteLength: len(data)}}
	bv := 0
	// Count 2 VEC3s needs 24 bytes, the view only has 12.
	ac := &Accessor{BufferView: &bv, ComponentType: ComponentFloat, Count: 2, Type: "VEC3"}

	_, err := g.accessorElements(ac)
	assert.Error(t, err)
	var boundsErr *core.BoundsViolationError
	assert.ErrorAs(t, err, &boundsErr)
}

func TestBufferViewPastBufferIsBoundsViolation(t *testing.T) {
	g := gltfWithBuffer([]byte{1, 2, 3})
	g.BufferViews = []BufferView{{Buffer: 0, ByteLength: 10}}

	_, err := g.viewBytes(0)
	assert.Error(t, err)
	var boundsErr *core.BoundsViolationError
	assert.ErrorAs(t, err, &boundsErr)
}

func TestIsDataURLDetectsPrefix(t *testing.T) {
	assert.True(t, isDataURL("data:application/octet-stream;base64,AAAA"))
	assert.False(t, isDataURL("model.bin"))
}

func TestParseDataURLDecodesBase64Payload(t *testing.T) {
	// "hi" base64-encoded.
	out, err := parseDataURL("data:application/octet-stream;base64,aGk=")
	assert.NoError(t, err)
	assert.Equal(t, []byte("hi"), out)
}

func TestParseDataURLRejectsUnsupportedMediaType(t *testing.T) {
	_, err := parseDataURL("data:text/plain;base64,aGk=")
	assert.Error(t, err)
}

func TestParseDataURLRejectsNonBase64Encoding(t *testing.T) {
	_, err := parseDataURL("data:application/octet-stream;utf8,hi")
	assert.Error(t, err)
}

func TestBufferBytesErrorsWhenNoUriAndNoGLBData(t *testing.T) {
	g := &GLTF{Buffers: []Buffer{{ByteLength: 4}}}
	_, err := g.bufferBytes(0)
	assert.Error(t, err)
	var boundsErr *core.BoundsViolationError
	assert.ErrorAs(t, err, &boundsErr)
}

func TestBufferBytesOutOfRangeIndexIsBoundsViolation(t *testing.T) {
	g := &GLTF{}
	_, err := g.bufferBytes(0)
	assert.Error(t, err)
	var boundsErr *core.BoundsViolationError
	assert.ErrorAs(t, err, &boundsErr)
}
