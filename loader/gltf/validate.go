// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ocasi3d/ocasi/core"
)

// validateDocument checks asset/extensionsRequired against what this
// importer supports and re-parses the raw JSON to confirm every field
// spec.md §4.5 calls required is actually present, since a struct field
// left at its Go zero value by encoding/json is indistinguishable from
// one the document never set. A struct-only pass (as ParseJSON/ParseGLB
// used to do) would silently accept, say, an accessor missing
// "componentType" as componentType 0 rather than failing per spec.md
// §4.5's "every 'required field missing' failure terminates the import
// with MissingField{object, field}".
func validateDocument(data []byte, g *GLTF) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return &core.MalformedJSONError{Detail: "top-level document", Cause: err}
	}

	assetRaw, ok := top["asset"]
	if !ok {
		return &core.MissingFieldError{Object: "asset", Field: "(object)"}
	}
	var assetFields map[string]json.RawMessage
	if err := json.Unmarshal(assetRaw, &assetFields); err != nil {
		return &core.MalformedJSONError{Detail: "asset", Cause: err}
	}
	if _, ok := assetFields["version"]; !ok {
		return &core.MissingFieldError{Object: "asset", Field: "version"}
	}
	if !strings.HasPrefix(g.Asset.Version, "2.") {
		return &core.UnsupportedVersionError{Version: g.Asset.Version}
	}

	for _, ext := range g.ExtensionsRequired {
		if !supportedExtensions[ext] {
			return &core.UnsupportedExtensionError{Name: ext}
		}
	}

	if err := validateMeshes(top); err != nil {
		return err
	}
	if err := validateAccessors(top); err != nil {
		return err
	}
	if err := validateBufferViews(top); err != nil {
		return err
	}
	return nil
}

func validateMeshes(top map[string]json.RawMessage) error {
	raw, ok := top["meshes"]
	if !ok {
		return nil
	}
	var meshes []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &meshes); err != nil {
		return &core.MalformedJSONError{Detail: "meshes", Cause: err}
	}
	for mi, m := range meshes {
		primsRaw, ok := m["primitives"]
		if !ok {
			return &core.MissingFieldError{Object: fmt.Sprintf("meshes[%d]", mi), Field: "primitives"}
		}
		var prims []map[string]json.RawMessage
		if err := json.Unmarshal(primsRaw, &prims); err != nil {
			return &core.MalformedJSONError{Detail: fmt.Sprintf("meshes[%d].primitives", mi), Cause: err}
		}
		for pi, p := range prims {
			if _, ok := p["attributes"]; !ok {
				return &core.MissingFieldError{
					Object: fmt.Sprintf("meshes[%d].primitives[%d]", mi, pi),
					Field:  "attributes",
				}
			}
		}
	}
	return nil
}

func validateAccessors(top map[string]json.RawMessage) error {
	raw, ok := top["accessors"]
	if !ok {
		return nil
	}
	var accessors []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &accessors); err != nil {
		return &core.MalformedJSONError{Detail: "accessors", Cause: err}
	}
	for i, a := range accessors {
		for _, field := range [...]string{"componentType", "count", "type"} {
			if _, ok := a[field]; !ok {
				return &core.MissingFieldError{Object: fmt.Sprintf("accessors[%d]", i), Field: field}
			}
		}
	}
	return nil
}

func validateBufferViews(top map[string]json.RawMessage) error {
	raw, ok := top["bufferViews"]
	if !ok {
		return nil
	}
	var views []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &views); err != nil {
		return &core.MalformedJSONError{Detail: "bufferViews", Cause: err}
	}
	for i, bv := range views {
		for _, field := range [...]string{"buffer", "byteLength"} {
			if _, ok := bv[field]; !ok {
				return &core.MissingFieldError{Object: fmt.Sprintf("bufferViews[%d]", i), Field: field}
			}
		}
	}
	return nil
}
