// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import "github.com/ocasi3d/ocasi/material"

// Scene is the single canonical in-memory representation every OCASI
// importer converges on, regardless of source format. It owns every
// Model and Material the import produced; Node values reference them by
// index rather than by pointer. The node hierarchy itself is linked by
// pointers (RootNodes and each Node's Children).
type Scene struct {
	Models    []Model
	Materials []material.Material
	RootNodes []*Node
}

// NewScene returns an empty Scene.
func NewScene() *Scene {
	return &Scene{}
}

// AddModel appends model and returns its index within Models, the value
// later assigned to a Node's ModelIndex.
func (s *Scene) AddModel(model Model) uint32 {
	s.Models = append(s.Models, model)
	return uint32(len(s.Models) - 1)
}

// AddMaterial appends mat and returns its index within Materials, the
// value later assigned to a Mesh's MaterialIndex.
func (s *Scene) AddMaterial(mat material.Material) uint32 {
	s.Materials = append(s.Materials, mat)
	return uint32(len(s.Materials) - 1)
}

// Walk invokes fn for every Node reachable from RootNodes, depth-first.
func (s *Scene) Walk(fn func(*Node)) {
	for _, root := range s.RootNodes {
		root.Walk(fn)
	}
}

// MeshCount returns the total number of Mesh values across all Models,
// a convenience used by tests and by post-process passes that report
// progress.
func (s *Scene) MeshCount() int {
	n := 0
	for _, m := range s.Models {
		n += len(m.Meshes)
	}
	return n
}
