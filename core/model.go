// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

// Model groups the one or more Meshes that came from a single glTF "mesh"
// object or a single OBJ "o"/"g" group, split further by the material
// bound to each contiguous face run. A Model never itself carries a
// transform; placement is entirely the job of the Node(s) that reference
// it by index.
type Model struct {
	Name   string
	Meshes []Mesh
}

// NewModel returns an empty, named Model.
func NewModel(name string) *Model {
	return &Model{Name: name}
}

// AddMesh appends mesh to the model and returns its index within Meshes.
func (m *Model) AddMesh(mesh Mesh) int {
	m.Meshes = append(m.Meshes, mesh)
	return len(m.Meshes) - 1
}
