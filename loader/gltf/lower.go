// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"fmt"

	"github.com/ocasi3d/ocasi/core"
	"github.com/ocasi3d/ocasi/math32"
)

// ToScene lowers the parsed glTF document into a canonical core.Scene.
// Every Mesh's Primitives become one core.Mesh each; the node hierarchy
// is rebuilt 1:1, composing Matrix or TRS into LocalTransform exactly as
// the source declares it. Animations, cameras, lights and skins are not
// represented in the canonical scene; morph targets and their weights
// are not carried into the canonical Mesh either.
func (g *GLTF) ToScene() (*core.Scene, error) {
	scene := core.NewScene()

	matIndex := make([]uint32, len(g.Materials))
	for i := range g.Materials {
		mat, err := g.loadMaterial(&g.Materials[i])
		if err != nil {
			return nil, err
		}
		matIndex[i] = scene.AddMaterial(*mat)
	}

	modelIndex := make([]uint32, len(g.Meshes))
	modelValid := make([]bool, len(g.Meshes))
	for i := range g.Meshes {
		model, err := g.loadMeshAsModel(&g.Meshes[i], matIndex)
		if err != nil {
			return nil, err
		}
		if len(model.Meshes) == 0 {
			continue
		}
		modelIndex[i] = scene.AddModel(*model)
		modelValid[i] = true
	}

	nodes := make([]*core.Node, len(g.Nodes))
	for i := range g.Nodes {
		nodes[i] = g.buildNode(i, modelIndex, modelValid)
	}
	for i := range g.Nodes {
		for _, childIdx := range g.Nodes[i].Children {
			if childIdx < 0 || childIdx >= len(nodes) {
				return nil, fmt.Errorf("gltf: node %d references out-of-range child %d", i, childIdx)
			}
			nodes[i].AddChild(nodes[childIdx])
		}
	}

	sceneIdx := 0
	if g.Scene != nil {
		sceneIdx = *g.Scene
	}
	if len(g.Scenes) > 0 {
		if sceneIdx < 0 || sceneIdx >= len(g.Scenes) {
			return nil, fmt.Errorf("gltf: default scene index %d out of range", sceneIdx)
		}
		for _, rootIdx := range g.Scenes[sceneIdx].Nodes {
			if rootIdx < 0 || rootIdx >= len(nodes) {
				return nil, fmt.Errorf("gltf: scene references out-of-range node %d", rootIdx)
			}
			scene.RootNodes = append(scene.RootNodes, nodes[rootIdx])
		}
	}
	return scene, nil
}

func (g *GLTF) buildNode(i int, modelIndex []uint32, modelValid []bool) *core.Node {
	gn := &g.Nodes[i]
	n := core.NewNode(gn.Name)

	if gn.Matrix != nil {
		n.LocalTransform.FromArray(gn.Matrix[:], 0)
	} else {
		pos := math32.NewVector3(0, 0, 0)
		if gn.Translation != nil {
			pos.Set(gn.Translation[0], gn.Translation[1], gn.Translation[2])
		}
		quat := math32.NewQuaternion(0, 0, 0, 1)
		if gn.Rotation != nil {
			quat.Set(gn.Rotation[0], gn.Rotation[1], gn.Rotation[2], gn.Rotation[3])
		}
		scale := math32.NewVector3(1, 1, 1)
		if gn.Scale != nil {
			scale.Set(gn.Scale[0], gn.Scale[1], gn.Scale[2])
		}
		n.LocalTransform.Compose(pos, quat, scale)
	}

	if gn.Mesh != nil && *gn.Mesh >= 0 && *gn.Mesh < len(modelValid) && modelValid[*gn.Mesh] {
		n.ModelIndex = modelIndex[*gn.Mesh]
	}
	return n
}

// loadMeshAsModel converts a glTF Mesh's Primitives into a core.Model's
// Meshes, one per primitive, skipping any primitive this importer
// cannot represent (non-triangle/line/point modes, or missing POSITION).
func (g *GLTF) loadMeshAsModel(gm *Mesh, matIndex []uint32) (*core.Model, error) {
	model := core.NewModel(gm.Name)
	for pi := range gm.Primitives {
		prim := &gm.Primitives[pi]
		mesh, ok, err := g.loadPrimitive(prim, matIndex)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		model.AddMesh(mesh)
	}
	return model, nil
}

// accessorAt bounds-checks idx against g.Accessors before indexing into it;
// a primitive's attribute/index references are plain ints straight out of
// JSON, so an out-of-range value must become a typed error here rather than
// panicking further down in accessorFloats/accessorUints.
func (g *GLTF) accessorAt(idx int) (*Accessor, error) {
	if idx < 0 || idx >= len(g.Accessors) {
		return nil, &core.BoundsViolationError{Where: fmt.Sprintf("accessor index %d out of range (have %d)", idx, len(g.Accessors))}
	}
	return &g.Accessors[idx], nil
}

func (g *GLTF) loadPrimitive(prim *Primitive, matIndex []uint32) (core.Mesh, bool, error) {
	mesh := *core.NewMesh()

	mode := ModeTriangles
	if prim.Mode != nil {
		mode = *prim.Mode
	}
	fm, ok := primitiveFaceMode(mode)
	if !ok {
		log.Warn("skipping primitive with unsupported mode %d", mode)
		return mesh, false, nil
	}
	mesh.FaceMode = fm

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		log.Warn("skipping primitive with no POSITION attribute")
		return mesh, false, nil
	}
	posAc, err := g.accessorAt(posIdx)
	if err != nil {
		return mesh, false, err
	}
	positions, err := g.accessorFloats(posAc)
	if err != nil {
		return mesh, false, err
	}
	mesh.Vertices.Append(positions...)

	if idx, ok := prim.Attributes["NORMAL"]; ok {
		ac, err := g.accessorAt(idx)
		if err != nil {
			return mesh, false, err
		}
		vals, err := g.accessorFloats(ac)
		if err != nil {
			return mesh, false, err
		}
		mesh.Normals.Append(vals...)
	}
	if idx, ok := prim.Attributes["TANGENT"]; ok {
		ac, err := g.accessorAt(idx)
		if err != nil {
			return mesh, false, err
		}
		vals, err := g.accessorFloats(ac)
		if err != nil {
			return mesh, false, err
		}
		// TANGENT is VEC4 (xyz + handedness w); all four components are
		// kept in the canonical mesh's Tangents stream.
		mesh.Tangents.Append(vals...)
	}
	if idx, ok := prim.Attributes["COLOR_0"]; ok {
		ac, err := g.accessorAt(idx)
		if err != nil {
			return mesh, false, err
		}
		vals, err := g.accessorFloats(ac)
		if err != nil {
			return mesh, false, err
		}
		if ac.Type == TypeVec4 {
			for i := 0; i+3 < len(vals); i += 4 {
				mesh.VertexColours.Append(vals[i], vals[i+1], vals[i+2])
			}
		} else {
			mesh.VertexColours.Append(vals...)
		}
	}
	for set := 0; set < core.MaxTexCoordSets; set++ {
		name := fmt.Sprintf("TEXCOORD_%d", set)
		idx, ok := prim.Attributes[name]
		if !ok {
			continue
		}
		ac, err := g.accessorAt(idx)
		if err != nil {
			return mesh, false, err
		}
		vals, err := g.accessorFloats(ac)
		if err != nil {
			return mesh, false, err
		}
		mesh.TexCoords[set].Append(vals...)
	}

	var rawIndices []uint32
	if prim.Indices != nil {
		idxAc, err := g.accessorAt(*prim.Indices)
		if err != nil {
			return mesh, false, err
		}
		rawIndices, err = g.accessorUints(idxAc)
		if err != nil {
			return mesh, false, err
		}
	} else {
		vertexCount := mesh.VertexCount()
		rawIndices = make([]uint32, vertexCount)
		for i := range rawIndices {
			rawIndices[i] = uint32(i)
		}
	}
	// FaceMode only ever names an independent-primitive list (triangle
	// list, line list, point list), so strip/fan/loop topologies are
	// expanded into that form here rather than carried as a distinct
	// FaceMode the rest of the pipeline would need to special-case.
	mesh.Indices.Append(expandTopology(mode, rawIndices)...)

	if prim.Material != nil {
		mi := *prim.Material
		if mi >= 0 && mi < len(matIndex) {
			mesh.MaterialIndex = matIndex[mi]
		}
	}
	return mesh, true, nil
}

// expandTopology rewrites a strip/fan/loop index list into an
// independent-primitive list matching mode's equivalent FaceMode.
func expandTopology(mode int, idx []uint32) []uint32 {
	switch mode {
	case ModeTriangleStrip:
		out := make([]uint32, 0)
		for i := 0; i+2 < len(idx); i++ {
			if i%2 == 0 {
				out = append(out, idx[i], idx[i+1], idx[i+2])
			} else {
				out = append(out, idx[i+1], idx[i], idx[i+2])
			}
		}
		return out
	case ModeTriangleFan:
		out := make([]uint32, 0)
		for i := 1; i+1 < len(idx); i++ {
			out = append(out, idx[0], idx[i], idx[i+1])
		}
		return out
	case ModeLineLoop:
		if len(idx) == 0 {
			return nil
		}
		out := make([]uint32, 0, len(idx)*2)
		for i := 0; i < len(idx); i++ {
			out = append(out, idx[i], idx[(i+1)%len(idx)])
		}
		return out
	case ModeLineStrip:
		out := make([]uint32, 0)
		for i := 0; i+1 < len(idx); i++ {
			out = append(out, idx[i], idx[i+1])
		}
		return out
	default:
		return idx
	}
}

func primitiveFaceMode(mode int) (core.FaceMode, bool) {
	switch mode {
	case ModeTriangles, ModeTriangleStrip, ModeTriangleFan:
		return core.FaceTriangle, true
	case ModeLines, ModeLineStrip, ModeLineLoop:
		return core.FaceLine, true
	case ModePoints:
		return core.FacePoint, true
	default:
		return core.FaceNone, false
	}
}
