// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obj

import (
	"path/filepath"

	"github.com/ocasi3d/ocasi/core"
	"github.com/ocasi3d/ocasi/material"
	"github.com/ocasi3d/ocasi/math32"
	"github.com/ocasi3d/ocasi/texture"
)

// ToScene converts the decoded OBJ/MTL state into a canonical core.Scene.
// baseDir roots relative texture paths found in MTL map_* directives.
func (dec *Decoder) ToScene(baseDir string) (*core.Scene, error) {
	scene := core.NewScene()

	matIndex := make(map[string]uint32, len(dec.Materials))
	for name, desc := range dec.Materials {
		matIndex[name] = scene.AddMaterial(*dec.toMaterial(desc, baseDir))
	}

	for _, ob := range dec.Objects {
		model := core.Model{Name: ob.Name}
		for _, g := range ob.Meshes {
			if len(g.Faces) == 0 {
				continue
			}
			mesh := dec.toMesh(g)
			if idx, ok := matIndex[g.Material]; ok {
				mesh.MaterialIndex = idx
			}
			model.AddMesh(mesh)
		}
		if len(model.Meshes) == 0 {
			continue
		}
		modelIdx := scene.AddModel(model)
		node := core.NewNode(ob.Name)
		node.ModelIndex = modelIdx
		node.LocalTransform.Identity()
		scene.RootNodes = append(scene.RootNodes, node)
	}
	for _, w := range dec.Warnings {
		log.Warn("%s", w)
	}
	return scene, nil
}

// toMesh flattens one meshIR's faces into a canonical core.Mesh, fanning
// each face's corners into a dense, deduplicated-by-construction vertex
// stream (one entry per face corner, matching the teacher's own
// copyVertex strategy of never sharing vertices across faces).
func (dec *Decoder) toMesh(g *meshIR) core.Mesh {
	mesh := *core.NewMesh()
	mesh.Name = g.Name
	mesh.FaceMode = g.Mode
	mesh.Dim = dec.dim

	var vec3 math32.Vector3
	var vec2 math32.Vector2

	appendCorner := func(f *faceIR, i int) {
		var idx uint32
		if dec.dim == core.Dim2D {
			idx = uint32(mesh.Vertices.Len() / 2)
			mesh.Vertices.Append(dec.Positions[3*f.Vertices[i]], dec.Positions[3*f.Vertices[i]+1])
		} else {
			idx = uint32(mesh.Vertices.Len() / 3)
			dec.Positions.GetVector3(3*int(f.Vertices[i]), &vec3)
			mesh.Vertices.AppendVector3(&vec3)
		}
		if dec.hasColour {
			var c math32.Color
			dec.Colours.GetColor(3*int(f.Vertices[i]), &c)
			mesh.VertexColours.AppendColor(&c)
		}
		if f.Uvs[i] != invIndex {
			dec.Uvs.GetVector2(2*int(f.Uvs[i]), &vec2)
			mesh.TexCoords[0].AppendVector2(&vec2)
		}
		if f.Normals[i] != invIndex {
			dec.Normals.GetVector3(3*int(f.Normals[i]), &vec3)
			mesh.Normals.AppendVector3(&vec3)
		}
		mesh.Indices.Append(idx)
	}

	for fi := range g.Faces {
		f := &g.Faces[fi]
		for i := range f.Vertices {
			appendCorner(f, i)
		}
	}
	return mesh
}

// toMaterial maps an OBJ/MTL material descriptor onto the canonical
// material.Material value store using the key mapping documented for
// OBJ → canonical lowering: Kd→Albedo, Ka→Ambient, Ks→Specular,
// Ke→Emissive, Ns→SpecularStrength, d→Transparency(1-d), Ni→IOR,
// Pr→Roughness, Pm→Metallic.
func (dec *Decoder) toMaterial(desc *materialDesc, baseDir string) *material.Material {
	mat := material.New(desc.Name)

	material.SetVec4(mat, material.AlbedoColour, material.Vec4{X: desc.Diffuse[0], Y: desc.Diffuse[1], Z: desc.Diffuse[2], W: desc.Opacity})
	material.SetVec4(mat, material.AmbientColour, toVec4(desc.Ambient))
	material.SetVec4(mat, material.SpecularColour, toVec4(desc.Specular))
	material.SetVec4(mat, material.EmissiveColour, toVec4(desc.Emissive))
	material.SetFloat(mat, material.SpecularStrength, desc.Shininess)
	material.SetFloat(mat, material.Transparency, 1-desc.Opacity)
	material.SetFloat(mat, material.IOR, desc.Refraction)
	if desc.Roughness != 0 {
		material.SetFloat(mat, material.Roughness, desc.Roughness)
	}
	material.SetFloat(mat, material.Metallic, desc.Metallic)
	material.SetFloat(mat, material.Clearcoat, desc.Clearcoat)
	material.SetFloat(mat, material.ClearcoatRoughness, desc.ClearcoatRoughness)
	material.SetFloat(mat, material.Anisotropy, desc.Anisotropy)
	material.SetFloat(mat, material.AnisotropyRotation, desc.AnisotropyRotation)

	bind := func(slot material.TextureKey, path string, orient texture.Orientation) {
		if path == "" {
			return
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		img := texture.NewImageFromPath(path)
		if desc.Clamp {
			img.Clamp = texture.ClampToEdge
		}
		img.Orientation = orient
		mat.SetTexture(slot, img)
	}
	bind(material.TexAlbedo, desc.MapKd, texture.OrientationNone)
	bind(material.TexAmbient, desc.MapKa, texture.OrientationNone)
	bind(material.TexSpecular, desc.MapKs, texture.OrientationNone)
	bind(material.TexEmissive, desc.MapKe, texture.OrientationNone)
	bind(material.TexTransparency, desc.MapD, texture.OrientationNone)
	bind(material.TexRoughness, desc.MapPr, texture.OrientationNone)
	bind(material.TexMetallic, desc.MapPm, texture.OrientationNone)
	bind(material.TexBump, desc.MapBump, texture.OrientationNone)
	bind(material.TexReflectionSphere, desc.MapRefl, reflOrientation(desc.ReflOrientation))
	return mat
}

func toVec4(c [3]float32) material.Vec4 {
	return material.Vec4{X: c[0], Y: c[1], Z: c[2], W: 1}
}

func reflOrientation(s string) texture.Orientation {
	switch s {
	case "cube_top":
		return texture.OrientationTop
	case "cube_bottom":
		return texture.OrientationBottom
	case "cube_front":
		return texture.OrientationFront
	case "cube_back":
		return texture.OrientationBack
	case "cube_left":
		return texture.OrientationLeft
	case "cube_right":
		return texture.OrientationRight
	case "sphere":
		return texture.OrientationSphere
	default:
		return texture.OrientationNone
	}
}
