// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"os"
	"strings"

	"github.com/ocasi3d/ocasi/core"
	"github.com/ocasi3d/ocasi/util/logger"
)

var log = logger.New("GLTF", logger.Default)

// ImportFile detects whether path is a binary .glb container or a text
// .gltf document (by extension, falling back to sniffing the GLB magic
// number when the extension is ambiguous) and lowers it into a
// canonical core.Scene.
func ImportFile(path string) (*core.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &core.IoError{Path: path, Cause: err}
	}

	var g *GLTF
	if isGLB(path, data) {
		g, err = ParseGLB(data, path)
	} else {
		g, err = ParseJSON(data, path)
	}
	if err != nil {
		return nil, err
	}
	return g.ToScene()
}

func isGLB(path string, data []byte) bool {
	if strings.EqualFold(pathExt(path), ".glb") {
		return true
	}
	if strings.EqualFold(pathExt(path), ".gltf") {
		return false
	}
	return len(data) >= 4 &&
		uint32(data[0])|uint32(data[1])<<8|uint32(data[2])<<16|uint32(data[3])<<24 == GLBMagic
}

func pathExt(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	return path[i:]
}
