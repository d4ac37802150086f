// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"encoding/json"
	"fmt"

	"github.com/ocasi3d/ocasi/core"
)

// ParseJSON parses a text .gltf document's bytes.
func ParseJSON(data []byte, path string) (*GLTF, error) {
	g := new(GLTF)
	if err := json.Unmarshal(data, g); err != nil {
		return nil, &core.MalformedJSONError{Detail: path, Cause: err}
	}
	g.path = path
	if err := validateDocument(data, g); err != nil {
		return nil, err
	}
	return g, nil
}

// ParseGLB parses a binary .glb container's bytes.
func ParseGLB(data []byte, path string) (*GLTF, error) {
	src := core.NewByteSourceFromBytes(data)

	magic, err := src.ReadU32()
	if err != nil {
		return nil, err
	}
	if magic != GLBMagic {
		return nil, &core.BadMagicError{Got: magic}
	}
	version, err := src.ReadU32()
	if err != nil {
		return nil, err
	}
	if version != 2 {
		return nil, &core.UnsupportedVersionError{Version: fmt.Sprintf("GLB container version %d", version)}
	}
	length, err := src.ReadU32()
	if err != nil {
		return nil, err
	}
	if int(length) != src.Len() {
		return nil, &core.LengthMismatchError{Declared: length, Actual: uint32(src.Len())}
	}

	chunkType, jsonChunk, err := readChunk(src)
	if err != nil {
		return nil, err
	}
	if chunkType != chunkTypeJSON {
		return nil, fmt.Errorf("gltf: first GLB chunk has type 0x%08x, want JSON (0x%08x)", chunkType, chunkTypeJSON)
	}
	g := new(GLTF)
	if err := json.Unmarshal(jsonChunk, g); err != nil {
		return nil, &core.MalformedJSONError{Detail: path, Cause: err}
	}
	g.path = path

	// Per the glTF 2.0 container spec only the first chunk's type is
	// fixed; a second BIN chunk may follow, and any further chunk of a
	// type this importer doesn't know is skipped rather than rejected,
	// leaving room for future chunk types. See DESIGN.md.
	for src.Remaining() > 0 {
		chunkType, chunk, err := readChunk(src)
		if err != nil {
			return nil, err
		}
		if chunkType == chunkTypeBIN && g.data == nil {
			g.data = chunk
		}
	}

	if err := validateDocument(jsonChunk, g); err != nil {
		return nil, err
	}
	return g, nil
}

// readChunk reads one length-prefixed, type-tagged GLB chunk and
// returns its type tag and payload without judging whether the type is
// one the caller wants; ParseGLB decides that per chunk position.
func readChunk(src *core.ByteSource) (uint32, []byte, error) {
	chunkLength, err := src.ReadU32()
	if err != nil {
		return 0, nil, err
	}
	chunkType, err := src.ReadU32()
	if err != nil {
		return 0, nil, err
	}
	data, err := src.ReadBytes(int(chunkLength))
	if err != nil {
		return 0, nil, err
	}
	return chunkType, data, nil
}
