// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ocasi3d/ocasi/core"
	"github.com/ocasi3d/ocasi/postprocess"
)

func TestSupportedExtensionsListsRegisteredFormats(t *testing.T) {
	exts := SupportedExtensions()
	assert.Contains(t, exts, ".obj")
	assert.Contains(t, exts, ".gltf")
	assert.Contains(t, exts, ".glb")
}

func TestLoad3DFileUnknownExtensionReturnsTypedError(t *testing.T) {
	_, err := Load3DFile("model.xyz", postprocess.None)
	assert.Error(t, err)
	var extErr *core.UnknownExtensionError
	assert.ErrorAs(t, err, &extErr)
}

func TestLoad3DFileLookupIsCaseInsensitive(t *testing.T) {
	// ".OBJ" must reach the OBJ importer, which then fails to open the
	// missing file, rather than being rejected as an unknown extension.
	_, err := Load3DFile("model.OBJ", postprocess.None)
	assert.Error(t, err)
	var ioErr *core.IoError
	assert.ErrorAs(t, err, &ioErr)
}

func TestSetGlobalPostProcessorOptionsRoundTrips(t *testing.T) {
	original := currentGlobalOptions()
	defer SetGlobalPostProcessorOptions(original)

	SetGlobalPostProcessorOptions(postprocess.GenerateNormals)
	assert.Equal(t, postprocess.GenerateNormals, currentGlobalOptions())
}

func TestInitIsIdempotent(t *testing.T) {
	Init()
	before := len(registry)
	Init()
	Init()
	assert.Equal(t, before, len(registry))
}

func TestLookupFindsRegisteredExtension(t *testing.T) {
	Init()
	imp, ok := lookup(".obj")
	assert.True(t, ok)
	assert.Equal(t, postprocess.FormatOBJ, imp.format)

	_, ok = lookup(".unknown")
	assert.False(t, ok)
}
