// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gltf

import (
	"path/filepath"

	"github.com/ocasi3d/ocasi/core"
	"github.com/ocasi3d/ocasi/material"
	"github.com/ocasi3d/ocasi/texture"
)

// imageSource resolves a glTF Image to a pending texture.Image, reading
// bufferView-embedded images eagerly (there is no lazy path for those,
// since they carry no filename) and leaving file/data-URI images
// pending for Image.Load to decode later.
func (g *GLTF) imageSource(index int) (*texture.Image, error) {
	if index < 0 || index >= len(g.Images) {
		return nil, &core.BoundsViolationError{Where: "image index out of range"}
	}
	im := &g.Images[index]
	if im.BufferView != nil {
		raw, err := g.viewBytes(*im.BufferView)
		if err != nil {
			return nil, err
		}
		return texture.NewImageFromMemory(raw), nil
	}
	if isDataURL(im.Uri) {
		raw, err := parseDataURL(im.Uri)
		if err != nil {
			return nil, err
		}
		return texture.NewImageFromMemory(raw), nil
	}
	path := im.Uri
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(g.path), path)
	}
	return texture.NewImageFromPath(path), nil
}

// bindTexture resolves a TextureInfo's Texture->Image chain and binds it
// into mat at slot, applying the Sampler's wrap mode if present.
func (g *GLTF) bindTexture(mat *material.Material, slot material.TextureKey, info *TextureInfo) error {
	if info == nil {
		return nil
	}
	if info.Index < 0 || info.Index >= len(g.Textures) {
		return &core.BoundsViolationError{Where: "texture index out of range"}
	}
	tex := &g.Textures[info.Index]
	img, err := g.imageSource(tex.Source)
	if err != nil {
		return err
	}
	if tex.Sampler != nil && *tex.Sampler >= 0 && *tex.Sampler < len(g.Samplers) {
		s := &g.Samplers[*tex.Sampler]
		img.Clamp = wrapToClamp(s.WrapS)
	}
	mat.SetTexture(slot, img)
	return nil
}

func wrapToClamp(wrap *int) texture.ClampMode {
	if wrap == nil {
		return texture.Repeat
	}
	switch *wrap {
	case WrapClampToEdge:
		return texture.ClampToEdge
	case WrapMirroredRepeat:
		return texture.MirroredRepeat
	default:
		return texture.Repeat
	}
}

// loadMaterial converts one glTF Material, including any recognized
// Khronos extension blocks, into the canonical value store. Unlike
// material_common.go's technique-driven Phong/Standard branching, every
// glTF material lowers into the same fixed key set; extensions simply
// overwrite the keys they own.
func (g *GLTF) loadMaterial(gm *Material) (*material.Material, error) {
	mat := material.New(gm.Name)

	pbr := gm.PbrMetallicRoughness
	if pbr == nil {
		pbr = &PbrMetallicRoughness{}
	}
	colour := material.Vec4{X: 1, Y: 1, Z: 1, W: 1}
	if pbr.BaseColorFactor != nil {
		c := *pbr.BaseColorFactor
		colour = material.Vec4{X: c[0], Y: c[1], Z: c[2], W: c[3]}
	}
	material.SetVec4(mat, material.AlbedoColour, colour)
	material.SetFloat(mat, material.Transparency, 1-colour.W)

	roughness := float32(1)
	if pbr.RoughnessFactor != nil {
		roughness = *pbr.RoughnessFactor
	}
	material.SetFloat(mat, material.Roughness, roughness)

	metallic := float32(1)
	if pbr.MetallicFactor != nil {
		metallic = *pbr.MetallicFactor
	}
	material.SetFloat(mat, material.Metallic, metallic)

	if pbr.BaseColorTexture != nil {
		if err := g.bindTexture(mat, material.TexAlbedo, pbr.BaseColorTexture); err != nil {
			return nil, err
		}
	}
	if pbr.MetallicRoughnessTexture != nil {
		if err := g.bindTexture(mat, material.TexCombinedMetallicRoughness, pbr.MetallicRoughnessTexture); err != nil {
			return nil, err
		}
		material.SetBool(mat, material.UseCombinedMetallicRoughnessTexture, true)
	}
	if gm.NormalTexture != nil {
		if err := g.bindTexture(mat, material.TexNormal, &TextureInfo{Index: gm.NormalTexture.Index, TexCoord: gm.NormalTexture.TexCoord}); err != nil {
			return nil, err
		}
	}
	if gm.OcclusionTexture != nil {
		if err := g.bindTexture(mat, material.TexOcclusion, &TextureInfo{Index: gm.OcclusionTexture.Index, TexCoord: gm.OcclusionTexture.TexCoord}); err != nil {
			return nil, err
		}
	}
	if gm.EmissiveTexture != nil {
		if err := g.bindTexture(mat, material.TexEmissive, gm.EmissiveTexture); err != nil {
			return nil, err
		}
	}
	emissive := material.Vec4{X: 0, Y: 0, Z: 0, W: 1}
	if gm.EmissiveFactor != nil {
		f := *gm.EmissiveFactor
		emissive = material.Vec4{X: f[0], Y: f[1], Z: f[2], W: 1}
	}
	material.SetVec4(mat, material.EmissiveColour, emissive)

	if gm.AlphaCutoff != nil && gm.AlphaMode == "MASK" {
		// No dedicated alpha-cutoff ScalarKey exists; transparency already
		// carries the base-colour alpha, which is all the closed key set
		// can represent for alpha handling.
		_ = gm.AlphaCutoff
	}

	if err := g.applyExtensions(mat, gm.Extensions); err != nil {
		return nil, err
	}
	return mat, nil
}

// applyExtensions folds each Khronos material extension block this
// importer recognizes into mat, following material_common.go's pattern
// of manually walking the extension's map[string]interface{} rather
// than unmarshalling into a typed struct (extension shapes vary too
// much across vendors to give them one).
func (g *GLTF) applyExtensions(mat *material.Material, exts map[string]interface{}) error {
	if exts == nil {
		return nil
	}
	for name, raw := range exts {
		block, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		var err error
		switch name {
		case KhrMaterialsUnlit:
			// No PBR terms apply; the albedo colour/texture already bound
			// above is the entire visual contribution.
		case KhrMaterialsPbrSpecularGlossiness:
			err = g.applySpecularGlossiness(mat, block)
		case KhrMaterialsSpecular:
			err = g.applySpecular(mat, block)
		case KhrMaterialsClearcoat:
			err = g.applyClearcoat(mat, block)
		case KhrMaterialsSheen:
			err = g.applySheen(mat, block)
		case KhrMaterialsTransmission:
			err = g.applyTransmission(mat, block)
		case KhrMaterialsVolume:
			err = g.applyVolume(mat, block)
		case KhrMaterialsIOR:
			applyIOR(mat, block)
		case KhrMaterialsEmissiveStrength:
			applyEmissiveStrength(mat, block)
		case KhrMaterialsIridescence:
			err = g.applyIridescence(mat, block)
		case KhrMaterialsAnisotropy:
			err = g.applyAnisotropy(mat, block)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func f32At(m map[string]interface{}, key string, def float32) float32 {
	if v, ok := m[key].(float64); ok {
		return float32(v)
	}
	return def
}

func vec3At(m map[string]interface{}, key string, def [3]float32) [3]float32 {
	arr, ok := m[key].([]interface{})
	if !ok || len(arr) < 3 {
		return def
	}
	var out [3]float32
	for i := 0; i < 3; i++ {
		if f, ok := arr[i].(float64); ok {
			out[i] = float32(f)
		}
	}
	return out
}

func textureInfoAt(m map[string]interface{}, key string) *TextureInfo {
	t, ok := m[key].(map[string]interface{})
	if !ok {
		return nil
	}
	idx, ok := t["index"].(float64)
	if !ok {
		return nil
	}
	info := &TextureInfo{Index: int(idx)}
	if tc, ok := t["texCoord"].(float64); ok {
		info.TexCoord = int(tc)
	}
	return info
}

// applySpecularGlossiness approximates the legacy specular/glossiness
// workflow onto the metallic/roughness key set: glossiness inverts
// directly to roughness, and the average of specularFactor's three
// channels feeds SpecularStrength; SpecularColour is not set here.
func (g *GLTF) applySpecularGlossiness(mat *material.Material, block map[string]interface{}) error {
	glossiness := f32At(block, "glossinessFactor", 1)
	material.SetFloat(mat, material.Roughness, 1-glossiness)
	spec := vec3At(block, "specularFactor", [3]float32{1, 1, 1})
	material.SetFloat(mat, material.SpecularStrength, (spec[0]+spec[1]+spec[2])/3)
	if diffuse, ok := block["diffuseFactor"].([]interface{}); ok && len(diffuse) == 4 {
		var c material.Vec4
		if f, ok := diffuse[0].(float64); ok {
			c.X = float32(f)
		}
		if f, ok := diffuse[1].(float64); ok {
			c.Y = float32(f)
		}
		if f, ok := diffuse[2].(float64); ok {
			c.Z = float32(f)
		}
		if f, ok := diffuse[3].(float64); ok {
			c.W = float32(f)
		}
		material.SetVec4(mat, material.AlbedoColour, c)
	}
	if info := textureInfoAt(block, "diffuseTexture"); info != nil {
		if err := g.bindTexture(mat, material.TexDiffuse, info); err != nil {
			return err
		}
	}
	if info := textureInfoAt(block, "specularGlossinessTexture"); info != nil {
		if err := g.bindTexture(mat, material.TexSpecular, info); err != nil {
			return err
		}
	}
	return nil
}

func (g *GLTF) applySpecular(mat *material.Material, block map[string]interface{}) error {
	material.SetFloat(mat, material.SpecularStrength, f32At(block, "specularFactor", 1))
	if info := textureInfoAt(block, "specularTexture"); info != nil {
		if err := g.bindTexture(mat, material.TexSpecular, info); err != nil {
			return err
		}
	}
	return nil
}

func (g *GLTF) applyClearcoat(mat *material.Material, block map[string]interface{}) error {
	material.SetFloat(mat, material.Clearcoat, f32At(block, "clearcoatFactor", 0))
	material.SetFloat(mat, material.ClearcoatRoughness, f32At(block, "clearcoatRoughnessFactor", 0))
	if info := textureInfoAt(block, "clearcoatTexture"); info != nil {
		if err := g.bindTexture(mat, material.TexClearcoat, info); err != nil {
			return err
		}
	}
	if info := textureInfoAt(block, "clearcoatRoughnessTexture"); info != nil {
		if err := g.bindTexture(mat, material.TexClearcoatRoughness, info); err != nil {
			return err
		}
	}
	if info := textureInfoAt(block, "clearcoatNormalTexture"); info != nil {
		if err := g.bindTexture(mat, material.TexClearcoatNormal, info); err != nil {
			return err
		}
	}
	return nil
}

// applySheen has no dedicated scalar keys to write into (the closed key
// set carries a TexSheen texture slot but no sheen colour/roughness
// scalars); only the texture binding is preserved.
func (g *GLTF) applySheen(mat *material.Material, block map[string]interface{}) error {
	if info := textureInfoAt(block, "sheenColorTexture"); info != nil {
		if err := g.bindTexture(mat, material.TexSheen, info); err != nil {
			return err
		}
	}
	return nil
}

func (g *GLTF) applyTransmission(mat *material.Material, block map[string]interface{}) error {
	material.SetFloat(mat, material.Transparency, f32At(block, "transmissionFactor", 0))
	if info := textureInfoAt(block, "transmissionTexture"); info != nil {
		if err := g.bindTexture(mat, material.TexTransmission, info); err != nil {
			return err
		}
	}
	return nil
}

func (g *GLTF) applyVolume(mat *material.Material, block map[string]interface{}) error {
	if info := textureInfoAt(block, "thicknessTexture"); info != nil {
		if err := g.bindTexture(mat, material.TexVolumeThickness, info); err != nil {
			return err
		}
	}
	return nil
}

func applyIOR(mat *material.Material, block map[string]interface{}) {
	material.SetFloat(mat, material.IOR, f32At(block, "ior", 1.5))
}

func applyEmissiveStrength(mat *material.Material, block map[string]interface{}) {
	material.SetFloat(mat, material.EmissiveStrength, f32At(block, "emissiveStrength", 1))
}

func (g *GLTF) applyIridescence(mat *material.Material, block map[string]interface{}) error {
	if info := textureInfoAt(block, "iridescenceTexture"); info != nil {
		if err := g.bindTexture(mat, material.TexIridescence, info); err != nil {
			return err
		}
	}
	if info := textureInfoAt(block, "iridescenceThicknessTexture"); info != nil {
		if err := g.bindTexture(mat, material.TexIridescenceThickness, info); err != nil {
			return err
		}
	}
	return nil
}

func (g *GLTF) applyAnisotropy(mat *material.Material, block map[string]interface{}) error {
	material.SetFloat(mat, material.Anisotropy, f32At(block, "anisotropyStrength", 0))
	material.SetFloat(mat, material.AnisotropyRotation, f32At(block, "anisotropyRotation", 0))
	if info := textureInfoAt(block, "anisotropyTexture"); info != nil {
		if err := g.bindTexture(mat, material.TexCombinedAnisotropyRotation, info); err != nil {
			return err
		}
		material.SetBool(mat, material.UseCombinedAnisotropyAnisotropyRotationTexture, true)
	}
	return nil
}
