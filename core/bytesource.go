// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"encoding/binary"
	"math"
	"os"
)

// ByteSource is a uniform cursor-based byte reader over a file or an
// in-memory buffer, used by the GLB container reader.
// It generalizes original_source's BinaryReader+FileReader pair into a
// single idiomatic Go type backed by a plain []byte slurp, the way
// g3n-engine/loader/gltf/loader.go reads its GLB chunks with
// encoding/binary rather than hand-rolled pointer arithmetic.
type ByteSource struct {
	path string
	data []byte
	pos  int
}

// NewByteSourceFromPath opens and slurps the file at path.
// Failure is wrapped in an *IoError, mirroring BinaryReader's FileReader
// construction path.
func NewByteSourceFromPath(path string) (*ByteSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IoError{Path: path, Cause: err}
	}
	return &ByteSource{path: path, data: data}, nil
}

// NewByteSourceFromBytes wraps data directly; this constructor cannot fail.
func NewByteSourceFromBytes(data []byte) *ByteSource {
	return &ByteSource{data: data}
}

// Path returns the originating file path, or "" for a memory source.
func (b *ByteSource) Path() string { return b.path }

// Len returns the total size of the backing buffer.
func (b *ByteSource) Len() int { return len(b.data) }

// Remaining returns the number of unread bytes.
func (b *ByteSource) Remaining() int { return len(b.data) - b.pos }

// Pos returns the current absolute cursor position.
func (b *ByteSource) Pos() int { return b.pos }

// Seek moves the cursor to an absolute position.
func (b *ByteSource) Seek(pos int) { b.pos = pos }

// Skip advances the cursor by a relative amount.
func (b *ByteSource) Skip(n int) { b.pos += n }

// Bytes returns the entire backing buffer.
func (b *ByteSource) Bytes() []byte { return b.data }

// ReadBytes returns exactly n bytes starting at the cursor, advancing it,
// or fails with UnexpectedEOFError if fewer than n bytes remain.
func (b *ByteSource) ReadBytes(n int) ([]byte, error) {
	if b.Remaining() < n {
		return nil, &UnexpectedEOFError{Requested: n, Remaining: b.Remaining()}
	}
	out := b.data[b.pos : b.pos+n]
	b.pos += n
	return out, nil
}

// Slurp returns all remaining bytes without advancing the cursor.
func (b *ByteSource) Slurp() []byte {
	return b.data[b.pos:]
}

func (b *ByteSource) need(n int) error {
	if b.Remaining() < n {
		return &UnexpectedEOFError{Requested: n, Remaining: b.Remaining()}
	}
	return nil
}

// ReadU8 reads one unsigned byte.
func (b *ByteSource) ReadU8() (uint8, error) {
	if err := b.need(1); err != nil {
		return 0, err
	}
	v := b.data[b.pos]
	b.pos++
	return v, nil
}

// ReadU16 reads a little-endian uint16.
func (b *ByteSource) ReadU16() (uint16, error) {
	if err := b.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(b.data[b.pos:])
	b.pos += 2
	return v, nil
}

// ReadU32 reads a little-endian uint32.
func (b *ByteSource) ReadU32() (uint32, error) {
	if err := b.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(b.data[b.pos:])
	b.pos += 4
	return v, nil
}

// ReadU64 reads a little-endian uint64.
func (b *ByteSource) ReadU64() (uint64, error) {
	if err := b.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(b.data[b.pos:])
	b.pos += 8
	return v, nil
}

// ReadI16 reads a little-endian int16.
func (b *ByteSource) ReadI16() (int16, error) {
	v, err := b.ReadU16()
	return int16(v), err
}

// ReadI32 reads a little-endian int32.
func (b *ByteSource) ReadI32() (int32, error) {
	v, err := b.ReadU32()
	return int32(v), err
}

// ReadI64 reads a little-endian int64.
func (b *ByteSource) ReadI64() (int64, error) {
	v, err := b.ReadU64()
	return int64(v), err
}

// ReadF32 reads a little-endian IEEE-754 float32.
func (b *ByteSource) ReadF32() (float32, error) {
	v, err := b.ReadU32()
	return math.Float32frombits(v), err
}

// ReadF64 reads a little-endian IEEE-754 float64.
func (b *ByteSource) ReadF64() (float64, error) {
	v, err := b.ReadU64()
	return math.Float64frombits(v), err
}
