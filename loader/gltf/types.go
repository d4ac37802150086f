// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gltf implements the glTF 2.0 JSON/GLB parser and its lowering
// into a canonical core.Scene. Field names mirror the glTF schema
// one-for-one; no json struct tags are needed since encoding/json
// already matches field names case-insensitively.
package gltf

// Extension names this importer recognizes in extensionsRequired.
const (
	KhrMaterialsPbrSpecularGlossiness = "KHR_materials_pbrSpecularGlossiness"
	KhrMaterialsSpecular              = "KHR_materials_specular"
	KhrMaterialsClearcoat             = "KHR_materials_clearcoat"
	KhrMaterialsSheen                 = "KHR_materials_sheen"
	KhrMaterialsTransmission          = "KHR_materials_transmission"
	KhrMaterialsVolume                = "KHR_materials_volume"
	KhrMaterialsIOR                   = "KHR_materials_ior"
	KhrMaterialsEmissiveStrength      = "KHR_materials_emissive_strength"
	KhrMaterialsIridescence           = "KHR_materials_iridescence"
	KhrMaterialsAnisotropy            = "KHR_materials_anisotropy"
	KhrMaterialsUnlit                 = "KHR_materials_unlit"
)

var supportedExtensions = map[string]bool{
	KhrMaterialsPbrSpecularGlossiness: true,
	KhrMaterialsSpecular:              true,
	KhrMaterialsClearcoat:             true,
	KhrMaterialsSheen:                 true,
	KhrMaterialsTransmission:          true,
	KhrMaterialsVolume:                true,
	KhrMaterialsIOR:                   true,
	KhrMaterialsEmissiveStrength:      true,
	KhrMaterialsIridescence:           true,
	KhrMaterialsAnisotropy:            true,
	KhrMaterialsUnlit:                 true,
}

// GLTF is the root object for a glTF asset's JSON document.
type GLTF struct {
	ExtensionsUsed     []string
	ExtensionsRequired []string
	Accessors          []Accessor
	Asset              Asset
	Buffers            []Buffer
	BufferViews        []BufferView
	Images             []Image
	Materials          []Material
	Meshes             []Mesh
	Nodes              []Node
	Samplers           []Sampler
	Scene              *int
	Scenes             []Scene
	Textures           []Texture
	Extensions         map[string]interface{}
	Extras             interface{}

	path string
	data []byte // GLB BIN chunk, if present
}

// Asset carries metadata about the glTF asset.
type Asset struct {
	Copyright  string
	Generator  string
	Version    string
	MinVersion string
}

// Buffer points to binary geometry, animation, or skin data.
type Buffer struct {
	Uri        string
	ByteLength int
	Name       string

	cache []byte
}

// BufferView is a view into a Buffer.
type BufferView struct {
	Buffer     int
	ByteOffset *int
	ByteLength int
	ByteStride *int
	Target     *int
	Name       string
}

// Sparse describes attribute entries that deviate from an Accessor's
// base initialization value.
type Sparse struct {
	Count   int
	Indices SparseIndices
	Values  SparseValues
}

// SparseIndices is the index array half of a Sparse override.
type SparseIndices struct {
	BufferView    int
	ByteOffset    int
	ComponentType int
}

// SparseValues is the replacement-value array half of a Sparse override.
type SparseValues struct {
	BufferView int
	ByteOffset int
}

// Accessor is a typed view into a BufferView, or a sparse-only view with
// no BufferView at all (treated as zero-filled before sparse overrides).
type Accessor struct {
	BufferView    *int
	ByteOffset    *int
	ComponentType int
	Normalized    bool
	Count         int
	Type          string
	Max           []float64
	Min           []float64
	Sparse        *Sparse
	Name          string
}

// Image data used to create a texture, referenced by URI or by
// bufferView index (the latter requires MimeType).
type Image struct {
	Uri        string
	MimeType   string
	BufferView *int
	Name       string
}

// Sampler describes filtering and wrapping for a Texture.
type Sampler struct {
	MagFilter *int
	MinFilter *int
	WrapS     *int
	WrapT     *int
	Name      string
}

// Texture pairs a Sampler with an Image source.
type Texture struct {
	Sampler *int
	Source  int
	Name    string
}

// TextureInfo is a reference to a Texture plus which TEXCOORD set to use.
type TextureInfo struct {
	Index    int
	TexCoord int
}

// NormalTextureInfo additionally carries a normal-map scale factor.
type NormalTextureInfo struct {
	Index    int
	TexCoord int
	Scale    float32
}

// OcclusionTextureInfo additionally carries an occlusion strength factor.
type OcclusionTextureInfo struct {
	Index    int
	TexCoord int
	Strength float32
}

// PbrMetallicRoughness is the core PBR parameter block every glTF
// Material carries, explicitly or by default.
type PbrMetallicRoughness struct {
	BaseColorFactor          *[4]float32
	BaseColorTexture         *TextureInfo
	MetallicFactor           *float32
	RoughnessFactor          *float32
	MetallicRoughnessTexture *TextureInfo
}

// Material describes one glTF material, including Khronos extension
// blocks folded in by key during lowering.
type Material struct {
	Name                 string
	PbrMetallicRoughness *PbrMetallicRoughness
	NormalTexture        *NormalTextureInfo
	OcclusionTexture     *OcclusionTextureInfo
	EmissiveTexture      *TextureInfo
	EmissiveFactor       *[3]float32
	AlphaMode            string
	AlphaCutoff          *float32
	DoubleSided          bool
	Extensions           map[string]interface{}
}

// Primitive is one drawable piece of geometry within a Mesh.
type Primitive struct {
	Attributes map[string]int
	Indices    *int
	Material   *int
	Mode       *int
	Targets    []map[string]int
}

// Mesh is a set of Primitives; a Node references a Mesh by index.
type Mesh struct {
	Primitives []Primitive
	Weights    []float32
	Name       string
}

// Node is one entry in the glTF node hierarchy. Either Matrix or the TRS
// triple (Translation/Rotation/Scale) is present, never both.
type Node struct {
	Children    []int
	Matrix      *[16]float32
	Mesh        *int
	Rotation    *[4]float32
	Scale       *[3]float32
	Translation *[3]float32
	Weights     []float32
	Name        string
}

// Scene is a named set of root Node indices.
type Scene struct {
	Nodes []int
	Name  string
}

// Primitive topology modes (glTF §primitive.mode).
const (
	ModePoints        = 0
	ModeLines         = 1
	ModeLineLoop      = 2
	ModeLineStrip     = 3
	ModeTriangles     = 4
	ModeTriangleStrip = 5
	ModeTriangleFan   = 6
)

// Accessor componentType values.
const (
	ComponentByte          = 5120
	ComponentUnsignedByte  = 5121
	ComponentShort         = 5122
	ComponentUnsignedShort = 5123
	ComponentUnsignedInt   = 5125
	ComponentFloat         = 5126
)

// Accessor type strings.
const (
	TypeScalar = "SCALAR"
	TypeVec2   = "VEC2"
	TypeVec3   = "VEC3"
	TypeVec4   = "VEC4"
	TypeMat2   = "MAT2"
	TypeMat3   = "MAT3"
	TypeMat4   = "MAT4"
)

// componentCounts maps an accessor Type to its component count.
var componentCounts = map[string]int{
	TypeScalar: 1,
	TypeVec2:   2,
	TypeVec3:   3,
	TypeVec4:   4,
	TypeMat2:   4,
	TypeMat3:   9,
	TypeMat4:   16,
}

// componentSizes maps an accessor ComponentType to its byte width.
var componentSizes = map[int]int{
	ComponentByte:          1,
	ComponentUnsignedByte:  1,
	ComponentShort:         2,
	ComponentUnsignedShort: 2,
	ComponentUnsignedInt:   4,
	ComponentFloat:         4,
}

// Sampler wrap modes.
const (
	WrapClampToEdge   = 33071
	WrapMirroredRepeat = 33648
	WrapRepeat         = 10497
)

// GLBMagic is the required magic number of a GLB file ("glTF" in ASCII).
const GLBMagic = 0x46546C67

// GLB chunk type tags.
const (
	chunkTypeJSON = 0x4E4F534A
	chunkTypeBIN  = 0x004E4942
)
