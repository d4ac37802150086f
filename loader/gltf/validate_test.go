// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ocasi3d/ocasi/core"
)

func TestParseJSONRejectsMissingAssetObject(t *testing.T) {
	_, err := ParseJSON([]byte(`{}`), "x.gltf")
	assert.Error(t, err)
	var missing *core.MissingFieldError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, "asset", missing.Object)
}

func TestParseJSONRejectsMissingAssetVersion(t *testing.T) {
	_, err := ParseJSON([]byte(`{"asset": {"generator": "test"}}`), "x.gltf")
	assert.Error(t, err)
	var missing *core.MissingFieldError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, "version", missing.Field)
}

func TestParseJSONRejectsMeshWithoutPrimitives(t *testing.T) {
	doc := `{"asset": {"version": "2.0"}, "meshes": [{}]}`
	_, err := ParseJSON([]byte(doc), "x.gltf")
	assert.Error(t, err)
	var missing *core.MissingFieldError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, "primitives", missing.Field)
}

func TestParseJSONRejectsPrimitiveWithoutAttributes(t *testing.T) {
	doc := `{"asset": {"version": "2.0"}, "meshes": [{"primitives": [{}]}]}`
	_, err := ParseJSON([]byte(doc), "x.gltf")
	assert.Error(t, err)
	var missing *core.MissingFieldError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, "attributes", missing.Field)
}

func TestParseJSONRejectsAccessorMissingRequiredFields(t *testing.T) {
	doc := `{"asset": {"version": "2.0"}, "accessors": [{"bufferView": 0}]}`
	_, err := ParseJSON([]byte(doc), "x.gltf")
	assert.Error(t, err)
	var missing *core.MissingFieldError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, "componentType", missing.Field)
}

func TestParseJSONRejectsBufferViewMissingRequiredFields(t *testing.T) {
	doc := `{"asset": {"version": "2.0"}, "bufferViews": [{"byteOffset": 0}]}`
	_, err := ParseJSON([]byte(doc), "x.gltf")
	assert.Error(t, err)
	var missing *core.MissingFieldError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, "buffer", missing.Field)
}

func TestParseJSONAcceptsVersionWithPatchLikeSuffix(t *testing.T) {
	_, err := ParseJSON([]byte(`{"asset": {"version": "2.0.1"}}`), "x.gltf")
	assert.NoError(t, err)
}

func TestToSceneErrorsOnOutOfRangeAccessorReference(t *testing.T) {
	doc := `{
		"asset": {"version": "2.0"},
		"meshes": [{"primitives": [{"attributes": {"POSITION": 7}}]}]
	}`
	g, err := ParseJSON([]byte(doc), "x.gltf")
	assert.NoError(t, err)
	_, err = g.loadMeshAsModel(&g.Meshes[0], nil)
	assert.Error(t, err)
	var bounds *core.BoundsViolationError
	assert.ErrorAs(t, err, &bounds)
}

func TestToSceneErrorsOnOutOfRangePrimitiveIndicesReference(t *testing.T) {
	doc := `{
		"asset": {"version": "2.0"},
		"accessors": [{"bufferView": 0, "componentType": 5126, "count": 1, "type": "VEC3"}],
		"bufferViews": [{"buffer": 0, "byteLength": 12}],
		"buffers": [{"byteLength": 12, "uri": "data:application/octet-stream;base64,AAAAAAAAAAAAAAAA"}],
		"meshes": [{"primitives": [{"attributes": {"POSITION": 0}, "indices": 3}]}]
	}`
	g, err := ParseJSON([]byte(doc), "x.gltf")
	assert.NoError(t, err)
	_, err = g.loadMeshAsModel(&g.Meshes[0], nil)
	assert.Error(t, err)
	var bounds *core.BoundsViolationError
	assert.ErrorAs(t, err, &bounds)
}
