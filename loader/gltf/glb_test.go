// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ocasi3d/ocasi/core"
)

func putU32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func glbChunk(buf []byte, chunkType uint32, payload []byte) []byte {
	buf = putU32(buf, uint32(len(payload)))
	buf = putU32(buf, chunkType)
	return append(buf, payload...)
}

// buildGLB assembles a minimal GLB container out of a JSON chunk and an
// optional list of additional chunks, fixing up the header length field.
func buildGLB(jsonPayload []byte, extra ...[]byte) []byte {
	var body []byte
	body = glbChunk(body, chunkTypeJSON, jsonPayload)
	for _, c := range extra {
		body = append(body, c...)
	}

	var out []byte
	out = putU32(out, GLBMagic)
	out = putU32(out, 2)
	out = putU32(out, uint32(12+len(body)))
	return append(out, body...)
}

func TestParseGLBRoundTripsMinimalDocument(t *testing.T) {
	doc := []byte(`{"asset": {"version": "2.0"}}`)
	data := buildGLB(doc)

	g, err := ParseGLB(data, "x.glb")
	assert.NoError(t, err)
	assert.Equal(t, "2.0", g.Asset.Version)
}

func TestParseGLBRejectsBadMagic(t *testing.T) {
	data := buildGLB([]byte(`{}`))
	data[0] = 0xFF

	_, err := ParseGLB(data, "x.glb")
	assert.Error(t, err)
	var magicErr *core.BadMagicError
	assert.ErrorAs(t, err, &magicErr)
}

func TestParseGLBRejectsUnsupportedContainerVersion(t *testing.T) {
	data := buildGLB([]byte(`{}`))
	binary.LittleEndian.PutUint32(data[4:8], 99)

	_, err := ParseGLB(data, "x.glb")
	assert.Error(t, err)
	var verErr *core.UnsupportedVersionError
	assert.ErrorAs(t, err, &verErr)
}

func TestParseGLBRejectsLengthMismatch(t *testing.T) {
	data := buildGLB([]byte(`{}`))
	binary.LittleEndian.PutUint32(data[8:12], uint32(len(data)+16))

	_, err := ParseGLB(data, "x.glb")
	assert.Error(t, err)
	var lenErr *core.LengthMismatchError
	assert.ErrorAs(t, err, &lenErr)
}

func TestParseGLBRejectsNonJSONFirstChunk(t *testing.T) {
	var body []byte
	body = glbChunk(body, chunkTypeBIN, []byte{1, 2, 3, 4})

	var out []byte
	out = putU32(out, GLBMagic)
	out = putU32(out, 2)
	out = putU32(out, uint32(12+len(body)))
	data := append(out, body...)

	_, err := ParseGLB(data, "x.glb")
	assert.Error(t, err)
}

func TestParseGLBCapturesBINChunkAfterJSON(t *testing.T) {
	doc := []byte(`{"asset": {"version": "2.0"}}`)
	bin := []byte{10, 20, 30, 40}
	var binChunk []byte
	binChunk = glbChunk(binChunk, chunkTypeBIN, bin)
	data := buildGLB(doc, binChunk)

	g, err := ParseGLB(data, "x.glb")
	assert.NoError(t, err)
	assert.Equal(t, bin, g.data)
}

func TestParseGLBSkipsUnknownTrailingChunkType(t *testing.T) {
	doc := []byte(`{"asset": {"version": "2.0"}}`)
	var unknown []byte
	unknown = glbChunk(unknown, 0xDEADBEEF, []byte{1, 2, 3, 4})
	var bin []byte
	bin = glbChunk(bin, chunkTypeBIN, []byte{9, 9})
	data := buildGLB(doc, unknown, bin)

	g, err := ParseGLB(data, "x.glb")
	assert.NoError(t, err)
	assert.Equal(t, []byte{9, 9}, g.data)
}

func TestParseGLBKeepsFirstBINChunkWhenMultiplePresent(t *testing.T) {
	doc := []byte(`{"asset": {"version": "2.0"}}`)
	var bin1 []byte
	bin1 = glbChunk(bin1, chunkTypeBIN, []byte{1, 1})
	var bin2 []byte
	bin2 = glbChunk(bin2, chunkTypeBIN, []byte{2, 2})
	data := buildGLB(doc, bin1, bin2)

	g, err := ParseGLB(data, "x.glb")
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 1}, g.data)
}
