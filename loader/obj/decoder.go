// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obj implements the Wavefront OBJ/MTL text format parser and its
// lowering into a canonical core.Scene.
package obj

import (
	"strconv"
	"strings"

	"github.com/ocasi3d/ocasi/core"
	"github.com/ocasi3d/ocasi/math32"
	"github.com/ocasi3d/ocasi/util/logger"
)

var log = logger.New("OBJ", logger.Default)

const invIndex = -1

// faceIR holds one parsed face's per-corner index triples, still 0-based
// and resolved (negative/relative indices already normalized).
type faceIR struct {
	Vertices []int32
	Uvs      []int32
	Normals  []int32
	Mode     core.FaceMode
}

// meshIR corresponds to one OBJ "g" group: a run of faces bound to at
// most one material.
type meshIR struct {
	Name     string
	Material string
	Faces    []faceIR
	Mode     core.FaceMode // union of all Faces[i].Mode
}

// objectIR corresponds to one OBJ "o" object, grouping one or more
// meshIR groups.
type objectIR struct {
	Name   string
	Meshes []*meshIR
}

// materialDesc holds one MTL "newmtl" block's parsed fields.
type materialDesc struct {
	Name       string
	Illum      int
	Opacity    float32 // from 'd'; Tr is folded in as 1-Tr
	Refraction float32 // Ni
	Shininess  float32 // Ns
	Ambient    [3]float32
	Diffuse    [3]float32
	Specular   [3]float32
	Emissive   [3]float32

	Roughness          float32 // Pr
	Metallic           float32 // Pm
	Sheen              float32 // Ps (no canonical scalar slot; carried for completeness)
	Clearcoat          float32 // Pc
	ClearcoatRoughness float32 // Pcr
	Anisotropy         float32 // aniso/an
	AnisotropyRotation float32 // anisor/anr

	MapKd   string
	MapKa   string
	MapKs   string
	MapKe   string
	MapD    string
	MapPr   string
	MapPm   string
	MapBump string
	MapRefl string

	BumpMultiplier float32
	ReflOrientation string // cube_top, cube_bottom, ..., sphere
	Clamp           bool
}

func newMaterialDesc(name string) *materialDesc {
	return &materialDesc{
		Name:      name,
		Opacity:   1,
		Shininess: 0,
		Diffuse:   [3]float32{1, 1, 1},
	}
}

// Decoder holds the full parsed state of an OBJ file and its associated
// MTL sidecar(s).
type Decoder struct {
	Positions math32.ArrayF32
	Colours   math32.ArrayF32 // parallel to Positions/3 entries when hasColour
	Normals   math32.ArrayF32
	Uvs       math32.ArrayF32
	Materials map[string]*materialDesc
	Objects   []*objectIR
	Warnings  []string

	// MtllibPath is set by the first "mtllib" directive seen; the caller
	// resolves it relative to the OBJ file's own directory before
	// invoking DecodeMTL.
	MtllibPath string

	hasColour bool
	dim       core.Dimension

	objCurrent    *objectIR
	meshCurrent   *meshIR
	matCurrent    *materialDesc
	smoothCurrent bool

	line int
}

// NewDecoder returns an empty Decoder primed with one default object and
// mesh, so faces appearing before any "o"/"g" directive have somewhere to
// live.
func NewDecoder() *Decoder {
	dec := &Decoder{
		Materials: make(map[string]*materialDesc),
		dim:       core.Dim3D,
	}
	dec.objCurrent = &objectIR{}
	dec.meshCurrent = &meshIR{}
	dec.objCurrent.Meshes = append(dec.objCurrent.Meshes, dec.meshCurrent)
	dec.Objects = append(dec.Objects, dec.objCurrent)
	return dec
}

// DecodeOBJ parses the text of an OBJ file (the text of any referenced
// "mtllib" sidecars must be fed in separately via DecodeMTL).
func (dec *Decoder) DecodeOBJ(src *core.TextSource) error {
	dec.line = 0
	return src.EachLine(func(line string) error {
		dec.line++
		return dec.parseObjLine(line)
	})
}

// DecodeMTL parses the text of one MTL sidecar, sharing the Decoder's
// Materials map with whatever OBJ already referenced it.
func (dec *Decoder) DecodeMTL(src *core.TextSource) error {
	dec.line = 0
	dec.matCurrent = nil
	return src.EachLine(func(line string) error {
		dec.line++
		return dec.parseMtlLine(line)
	})
}

func (dec *Decoder) formatError(msg string) error {
	return &core.MalformedFaceError{Reason: msg, Line: dec.line}
}

func (dec *Decoder) appendWarn(section, msg string) {
	dec.Warnings = append(dec.Warnings, section+": "+msg)
}

// parseObjLine dispatches one OBJ directive line by its leading token.
func (dec *Decoder) parseObjLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	ltype := fields[0]
	if strings.HasPrefix(ltype, "#") {
		return nil
	}
	switch ltype {
	case "mtllib":
		return dec.parseMtllib(fields[1:])
	case "o":
		return dec.parseObjectStart(fields[1:])
	case "g":
		return dec.parseGroupStart(fields[1:])
	case "v":
		return dec.parseVertex(fields[1:])
	case "vn":
		return dec.parseNormal(fields[1:])
	case "vt":
		return dec.parseTexCoord(fields[1:])
	case "f":
		return dec.parseFace(fields[1:], core.FaceTriangle)
	case "l":
		return dec.parseFace(fields[1:], core.FaceLine)
	case "p":
		return dec.parseFace(fields[1:], core.FacePoint)
	case "usemtl":
		return dec.parseUsemtl(fields[1:])
	case "s":
		return dec.parseSmooth(fields[1:])
	default:
		dec.appendWarn("obj", "unsupported directive: "+ltype)
	}
	return nil
}

// parseMtllib records the MTL sidecar name; the caller resolves it
// relative to the OBJ file's directory and invokes DecodeMTL.
func (dec *Decoder) parseMtllib(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("mtllib with no fields")
	}
	dec.MtllibPath = fields[0]
	return nil
}

func (dec *Decoder) parseObjectStart(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("'o' with no fields")
	}
	name := fields[0]
	if dec.meshCurrent != nil && len(dec.meshCurrent.Faces) == 0 && len(dec.objCurrent.Meshes) == 1 {
		dec.objCurrent.Name = name
		return nil
	}
	ob := &objectIR{Name: name}
	mesh := &meshIR{}
	ob.Meshes = append(ob.Meshes, mesh)
	dec.Objects = append(dec.Objects, ob)
	dec.objCurrent = ob
	dec.meshCurrent = mesh
	return nil
}

func (dec *Decoder) parseGroupStart(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("'g' with no fields")
	}
	name := fields[0]
	if dec.meshCurrent != nil && len(dec.meshCurrent.Faces) == 0 {
		dec.meshCurrent.Name = name
		return nil
	}
	mesh := &meshIR{Name: name}
	dec.objCurrent.Meshes = append(dec.objCurrent.Meshes, mesh)
	dec.meshCurrent = mesh
	return nil
}

// parseVertex handles "v x y z [r g b]" and the 2D form "v x y".
func (dec *Decoder) parseVertex(fields []string) error {
	if len(fields) < 2 {
		return dec.formatError("'v' with fewer than 2 fields")
	}
	if len(fields) == 2 {
		x, err := parseF32(fields[0])
		if err != nil {
			return err
		}
		y, err := parseF32(fields[1])
		if err != nil {
			return err
		}
		dec.Positions.Append(x, y, 0)
		dec.dim = core.Dim2D
		return nil
	}
	vals := make([]float32, 0, 6)
	for _, f := range fields {
		v, err := parseF32(f)
		if err != nil {
			return err
		}
		vals = append(vals, v)
	}
	dec.Positions.Append(vals[0], vals[1], vals[2])
	if len(vals) >= 6 {
		dec.Colours.Append(vals[3], vals[4], vals[5])
		dec.hasColour = true
	}
	return nil
}

func (dec *Decoder) parseNormal(fields []string) error {
	if len(fields) < 3 {
		return dec.formatError("'vn' with fewer than 3 fields")
	}
	for _, f := range fields[:3] {
		v, err := parseF32(f)
		if err != nil {
			return err
		}
		dec.Normals.Append(v)
	}
	return nil
}

func (dec *Decoder) parseTexCoord(fields []string) error {
	if len(fields) < 2 {
		return dec.formatError("'vt' with fewer than 2 fields")
	}
	for _, f := range fields[:2] {
		v, err := parseF32(f)
		if err != nil {
			return err
		}
		dec.Uvs.Append(v)
	}
	return nil
}

func (dec *Decoder) parseUsemtl(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("'usemtl' with no fields")
	}
	name := fields[0]
	if _, ok := dec.Materials[name]; !ok {
		dec.Materials[name] = newMaterialDesc(name)
	}
	if dec.meshCurrent.Material == "" && len(dec.meshCurrent.Faces) == 0 {
		dec.meshCurrent.Material = name
	}
	return nil
}

func (dec *Decoder) parseSmooth(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("'s' with no fields")
	}
	switch fields[0] {
	case "0", "off":
		dec.smoothCurrent = false
	case "1", "on":
		dec.smoothCurrent = true
	default:
		return dec.formatError("'s' with invalid value")
	}
	return nil
}

// parseFace parses "f"/"l"/"p" directives: whitespace-separated vertex
// groups of the form v[/[vt][/vn]], 1-based with negative (relative)
// indices permitted.
func (dec *Decoder) parseFace(fields []string, mode core.FaceMode) error {
	if len(fields) == 0 {
		return dec.formatError("face line with no fields")
	}
	if mode == core.FaceTriangle {
		if len(fields) < 3 {
			return dec.formatError("face line with fewer than 3 fields")
		}
		if len(fields) >= 4 {
			mode = core.FaceQuad
		}
	}

	face := faceIR{
		Vertices: make([]int32, len(fields)),
		Uvs:      make([]int32, len(fields)),
		Normals:  make([]int32, len(fields)),
		Mode:     mode,
	}
	vcount := int32(dec.Positions.Len() / 3)
	tcount := int32(dec.Uvs.Len() / 2)
	ncount := int32(dec.Normals.Len() / 3)

	for i, f := range fields {
		parts := strings.Split(f, "/")
		v, err := resolveIndex(parts[0], vcount)
		if err != nil {
			return err
		}
		face.Vertices[i] = v

		if len(parts) > 1 && parts[1] != "" {
			if tcount == 0 {
				return &core.MalformedFaceError{Reason: "face references texture coordinate but none were declared", Line: dec.line}
			}
			t, err := resolveIndex(parts[1], tcount)
			if err != nil {
				return err
			}
			face.Uvs[i] = t
		} else {
			face.Uvs[i] = invIndex
		}

		if len(parts) > 2 && parts[2] != "" {
			if ncount == 0 {
				return &core.MalformedFaceError{Reason: "face references normal but none were declared", Line: dec.line}
			}
			n, err := resolveIndex(parts[2], ncount)
			if err != nil {
				return err
			}
			face.Normals[i] = n
		} else {
			face.Normals[i] = invIndex
		}
	}

	dec.meshCurrent.Faces = append(dec.meshCurrent.Faces, face)
	dec.meshCurrent.Mode |= mode
	return nil
}

func resolveIndex(s string, count int32) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	switch {
	case n > 0:
		return int32(n) - 1, nil
	case n < 0:
		return count + int32(n), nil
	default:
		return 0, &core.MalformedFaceError{Reason: "face index must not be 0"}
	}
}

func parseF32(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return float32(v), nil
}
