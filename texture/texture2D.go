// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texture implements the lazily-decoded Image handle bound into
// material texture slots.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ClampMode mirrors the glTF/OBJ wrap modes an Image can be sampled with.
type ClampMode int

const (
	Repeat ClampMode = iota
	ClampToEdge
	ClampToBorder
	MirroredRepeat
)

// Orientation records which face of a cube/sphere reflection map an
// Image stands in for, set from the OBJ `-type cube_side`/`sphere`
// options; ordinary 2D textures leave it at OrientationNone.
type Orientation int

const (
	OrientationNone Orientation = iota
	OrientationTop
	OrientationBottom
	OrientationFront
	OrientationBack
	OrientationLeft
	OrientationRight
	OrientationSphere
)

type state int

const (
	statePendingPath state = iota
	statePendingMemory
	stateDecoded
)

// Data is the decoded pixel payload an Image caches after Load: always
// 4-channel RGBA8, flipped vertically on decode so that row 0 is the
// image's visual bottom row.
type Data struct {
	Width    int
	Height   int
	Channels int
	Pixels   []byte
}

// Image is a deferred-decode handle over either a file path or an
// in-memory encoded byte buffer. State only moves forward, from
// PendingPath/PendingMemory to Decoded; Load is idempotent and safe to
// call repeatedly once decoded.
type Image struct {
	Clamp       ClampMode
	Orientation Orientation

	state state
	path  string
	bytes []byte
	data  *Data
}

// NewImageFromPath returns a pending Image that decodes the file at path
// on first Load.
func NewImageFromPath(path string) *Image {
	return &Image{state: statePendingPath, path: path}
}

// NewImageFromMemory returns a pending Image that decodes encoded from
// memory on first Load.
func NewImageFromMemory(encoded []byte) *Image {
	return &Image{state: statePendingMemory, bytes: encoded}
}

// NewImageFromDecoded wraps an already-decoded payload; IsLoaded is true
// immediately and Load returns data without consulting a decoder.
func NewImageFromDecoded(data *Data) *Image {
	return &Image{state: stateDecoded, data: data}
}

// IsLoaded reports whether Load has already produced decoded pixels.
func (img *Image) IsLoaded() bool { return img.state == stateDecoded }

// Source identifies the pending path, or a generic label for a memory
// buffer, used in error messages.
func (img *Image) Source() string {
	if img.path != "" {
		return img.path
	}
	return "<memory>"
}

// ImageDecodeError is surfaced from an Image handle's Load() call. It
// lives in texture rather than core so this package never needs to
// import core (core.Scene embeds material.Material, which embeds
// texture.Image — core importing texture back would be a cycle).
type ImageDecodeError struct {
	Source string
	Reason error
}

func (e *ImageDecodeError) Error() string {
	return fmt.Sprintf("ocasi: failed to decode image %q: %v", e.Source, e.Reason)
}

func (e *ImageDecodeError) Unwrap() error { return e.Reason }

// Decoder abstracts image decoding so tests can substitute a fake
// implementation; the package default, stdDecoder, wraps Go's image
// package plus the golang.org/x/image format subpackages blank-imported
// above.
type Decoder interface {
	Decode(source string, encoded []byte) (*Data, error)
}

// ActiveDecoder is consulted by Load. Swapping it lets a caller plug in a
// different decode pipeline without touching Image's state machine.
var ActiveDecoder Decoder = stdDecoder{}

type stdDecoder struct{}

func (stdDecoder) Decode(source string, encoded []byte) (*Data, error) {
	img, _, err := image.Decode(bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	w, h := bounds.Dx(), bounds.Dy()
	flipped := make([]byte, len(rgba.Pix))
	stride := rgba.Stride
	for y := 0; y < h; y++ {
		srcRow := rgba.Pix[y*stride : y*stride+w*4]
		dstRow := flipped[(h-1-y)*w*4 : (h-1-y)*w*4+w*4]
		copy(dstRow, srcRow)
	}
	return &Data{Width: w, Height: h, Channels: 4, Pixels: flipped}, nil
}

// Load decodes the handle's source on first call and caches the result;
// subsequent calls return the cached Data without re-decoding. On
// failure the handle remains pending, so a later retry (e.g. after
// swapping ActiveDecoder) is still possible.
func (img *Image) Load() (*Data, error) {
	if img.state == stateDecoded {
		return img.data, nil
	}

	var encoded []byte
	if img.state == statePendingPath {
		b, err := os.ReadFile(img.path)
		if err != nil {
			return nil, &ImageDecodeError{Source: img.Source(), Reason: err}
		}
		encoded = b
	} else {
		encoded = img.bytes
	}

	data, err := ActiveDecoder.Decode(img.Source(), encoded)
	if err != nil {
		return nil, &ImageDecodeError{Source: img.Source(), Reason: err}
	}
	img.data = data
	img.state = stateDecoded
	return data, nil
}
