// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ocasi3d/ocasi/core"
)

func intVal(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// bufferBytes returns the full decoded contents of buffer i, loading and
// caching it on first use.
func (g *GLTF) bufferBytes(i int) ([]byte, error) {
	if i < 0 || i >= len(g.Buffers) {
		return nil, &core.BoundsViolationError{Where: fmt.Sprintf("buffer index %d out of range", i)}
	}
	buf := &g.Buffers[i]
	if buf.cache != nil {
		return buf.cache, nil
	}
	if buf.Uri == "" {
		if g.data == nil {
			return nil, &core.BoundsViolationError{Where: "buffer has no uri and no GLB BIN chunk is present"}
		}
		buf.cache = g.data
		return buf.cache, nil
	}
	if isDataURL(buf.Uri) {
		data, err := parseDataURL(buf.Uri)
		if err != nil {
			return nil, err
		}
		buf.cache = data
		return buf.cache, nil
	}
	path := buf.Uri
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(g.path), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &core.IoError{Path: path, Cause: err}
	}
	buf.cache = data
	return buf.cache, nil
}

// viewBytes returns the raw, still-possibly-strided bytes a BufferView
// covers.
func (g *GLTF) viewBytes(i int) ([]byte, error) {
	if i < 0 || i >= len(g.BufferViews) {
		return nil, &core.BoundsViolationError{Where: fmt.Sprintf("bufferView index %d out of range", i)}
	}
	bv := &g.BufferViews[i]
	buf, err := g.bufferBytes(bv.Buffer)
	if err != nil {
		return nil, err
	}
	offset := intVal(bv.ByteOffset, 0)
	if offset+bv.ByteLength > len(buf) {
		return nil, &core.BoundsViolationError{Where: fmt.Sprintf("bufferView %d extends past buffer %d", i, bv.Buffer)}
	}
	return buf[offset : offset+bv.ByteLength], nil
}

// accessorElements reads count tightly-packed elements of an accessor's
// declared type out of its bufferView, de-interleaving if byteStride
// does not already match the element's natural size. Each returned
// element is itemBytes long, raw component bytes with no conversion
// applied.
func (g *GLTF) accessorElements(ac *Accessor) ([][]byte, error) {
	compCount, ok := componentCounts[ac.Type]
	if !ok {
		return nil, fmt.Errorf("gltf: unknown accessor type %q", ac.Type)
	}
	compSize, ok := componentSizes[ac.ComponentType]
	if !ok {
		return nil, fmt.Errorf("gltf: unknown accessor componentType %d", ac.ComponentType)
	}
	itemBytes := compCount * compSize

	elems := make([][]byte, ac.Count)
	if ac.BufferView == nil {
		// Sparse-only, or entirely defaulted: zero-filled base.
		zero := make([]byte, itemBytes)
		for i := range elems {
			elems[i] = zero
		}
	} else {
		raw, err := g.viewBytes(*ac.BufferView)
		if err != nil {
			return nil, err
		}
		bv := &g.BufferViews[*ac.BufferView]
		accOffset := intVal(ac.ByteOffset, 0)
		stride := itemBytes
		if bv.ByteStride != nil && *bv.ByteStride > 0 {
			stride = *bv.ByteStride
		}
		need := accOffset + (ac.Count-1)*stride + itemBytes
		if need > len(raw) {
			return nil, &core.BoundsViolationError{Where: fmt.Sprintf("accessor %q reads past its bufferView", ac.Name)}
		}
		for i := 0; i < ac.Count; i++ {
			start := accOffset + i*stride
			elems[i] = raw[start : start+itemBytes]
		}
	}

	if ac.Sparse != nil {
		if err := g.applySparse(ac, elems, itemBytes, compSize); err != nil {
			return nil, err
		}
	}
	return elems, nil
}

// applySparse overrides entries of elems in place with the values named
// by an accessor's sparse block.
func (g *GLTF) applySparse(ac *Accessor, elems [][]byte, itemBytes, compSize int) error {
	sp := ac.Sparse
	idxRaw, err := g.viewBytes(sp.Indices.BufferView)
	if err != nil {
		return err
	}
	idxRaw = idxRaw[sp.Indices.ByteOffset:]
	idxSize, ok := componentSizes[sp.Indices.ComponentType]
	if !ok {
		return fmt.Errorf("gltf: unknown sparse indices componentType %d", sp.Indices.ComponentType)
	}
	if sp.Count*idxSize > len(idxRaw) {
		return &core.BoundsViolationError{Where: "sparse indices read past bufferView"}
	}

	valRaw, err := g.viewBytes(sp.Values.BufferView)
	if err != nil {
		return err
	}
	valRaw = valRaw[sp.Values.ByteOffset:]
	if sp.Count*itemBytes > len(valRaw) {
		return &core.BoundsViolationError{Where: "sparse values read past bufferView"}
	}

	for i := 0; i < sp.Count; i++ {
		var index int
		switch sp.Indices.ComponentType {
		case ComponentUnsignedByte:
			index = int(idxRaw[i])
		case ComponentUnsignedShort:
			index = int(binary.LittleEndian.Uint16(idxRaw[i*2:]))
		case ComponentUnsignedInt:
			index = int(binary.LittleEndian.Uint32(idxRaw[i*4:]))
		default:
			return fmt.Errorf("gltf: invalid sparse indices componentType %d", sp.Indices.ComponentType)
		}
		if index < 0 || index >= len(elems) {
			return &core.BoundsViolationError{Where: fmt.Sprintf("sparse index %d out of range", index)}
		}
		elems[index] = valRaw[i*itemBytes : (i+1)*itemBytes]
	}
	return nil
}

// accessorFloats decodes an accessor fully into a flat float32 slice,
// compCount floats per element, converting and normalizing as declared.
func (g *GLTF) accessorFloats(ac *Accessor) ([]float32, error) {
	compCount := componentCounts[ac.Type]
	elems, err := g.accessorElements(ac)
	if err != nil {
		return nil, err
	}
	out := make([]float32, 0, len(elems)*compCount)
	for _, e := range elems {
		for c := 0; c < compCount; c++ {
			out = append(out, decodeComponentF32(ac.ComponentType, ac.Normalized, e, c))
		}
	}
	return out, nil
}

// accessorUints decodes a SCALAR integer accessor (primitive indices)
// into a flat uint32 slice.
func (g *GLTF) accessorUints(ac *Accessor) ([]uint32, error) {
	elems, err := g.accessorElements(ac)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, len(elems))
	for i, e := range elems {
		switch ac.ComponentType {
		case ComponentUnsignedByte:
			out[i] = uint32(e[0])
		case ComponentUnsignedShort:
			out[i] = uint32(binary.LittleEndian.Uint16(e))
		case ComponentUnsignedInt:
			out[i] = binary.LittleEndian.Uint32(e)
		default:
			return nil, fmt.Errorf("gltf: invalid index componentType %d", ac.ComponentType)
		}
	}
	return out, nil
}

func decodeComponentF32(componentType int, normalized bool, e []byte, c int) float32 {
	switch componentType {
	case ComponentFloat:
		return math.Float32frombits(binary.LittleEndian.Uint32(e[c*4:]))
	case ComponentByte:
		v := int8(e[c])
		if normalized {
			if v == -128 {
				return -1
			}
			return float32(v) / 127
		}
		return float32(v)
	case ComponentUnsignedByte:
		v := e[c]
		if normalized {
			return float32(v) / 255
		}
		return float32(v)
	case ComponentShort:
		v := int16(binary.LittleEndian.Uint16(e[c*2:]))
		if normalized {
			if v == -32768 {
				return -1
			}
			return float32(v) / 32767
		}
		return float32(v)
	case ComponentUnsignedShort:
		v := binary.LittleEndian.Uint16(e[c*2:])
		if normalized {
			return float32(v) / 65535
		}
		return float32(v)
	case ComponentUnsignedInt:
		return float32(binary.LittleEndian.Uint32(e[c*4:]))
	}
	return 0
}

// dataURL prefix this importer accepts in buffer and image URIs.
const dataURLPrefix = "data:"

var validDataMediaTypes = map[string]bool{
	"application/octet-stream": true,
	"application/gltf-buffer":  true,
	"image/png":                true,
	"image/jpeg":               true,
}

func isDataURL(uri string) bool {
	return strings.HasPrefix(uri, dataURLPrefix)
}

// parseDataURL decodes a base64 data URI. Unlike a naive two-way
// strings.Split on ",", this uses strings.Cut so a payload that
// happens to contain additional commas in its base64 body (impossible
// for standard base64, but also for any future encoding extension)
// does not silently corrupt the split.
func parseDataURL(uri string) ([]byte, error) {
	body := strings.TrimPrefix(uri, dataURLPrefix)
	header, payload, ok := strings.Cut(body, ",")
	if !ok {
		return nil, fmt.Errorf("gltf: malformed data URI")
	}
	mediaType, encoding, ok := strings.Cut(header, ";")
	if !ok || encoding != "base64" {
		return nil, fmt.Errorf("gltf: data URI is not base64-encoded")
	}
	if !validDataMediaTypes[mediaType] {
		return nil, fmt.Errorf("gltf: unsupported data URI media type %q", mediaType)
	}
	return base64.StdEncoding.DecodeString(payload)
}
