// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obj

import (
	"strconv"
	"strings"
)

// parseMtlLine dispatches one MTL directive line by its leading token.
func (dec *Decoder) parseMtlLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	ltype := fields[0]
	if strings.HasPrefix(ltype, "#") {
		return nil
	}
	args := fields[1:]
	switch ltype {
	case "newmtl":
		return dec.parseNewmtl(args)
	case "d":
		return dec.parseDissolve(args)
	case "Tr":
		return dec.parseTr(args)
	case "Ka":
		return dec.parseColour(args, &dec.matCurrent.Ambient)
	case "Kd":
		return dec.parseColour(args, &dec.matCurrent.Diffuse)
	case "Ke":
		return dec.parseColour(args, &dec.matCurrent.Emissive)
	case "Ks":
		return dec.parseColour(args, &dec.matCurrent.Specular)
	case "Ni":
		return dec.parseScalar(args, &dec.matCurrent.Refraction)
	case "Ns":
		return dec.parseScalar(args, &dec.matCurrent.Shininess)
	case "illum":
		return dec.parseIllum(args)
	case "Pr":
		return dec.parseScalar(args, &dec.matCurrent.Roughness)
	case "Pm":
		return dec.parseScalar(args, &dec.matCurrent.Metallic)
	case "Ps":
		return dec.parseScalar(args, &dec.matCurrent.Sheen)
	case "Pc":
		return dec.parseScalar(args, &dec.matCurrent.Clearcoat)
	case "Pcr":
		return dec.parseScalar(args, &dec.matCurrent.ClearcoatRoughness)
	case "aniso", "an":
		return dec.parseScalar(args, &dec.matCurrent.Anisotropy)
	case "anisor", "anr":
		return dec.parseScalar(args, &dec.matCurrent.AnisotropyRotation)
	case "map_Kd":
		return dec.parseMap(args, &dec.matCurrent.MapKd)
	case "map_Ka":
		return dec.parseMap(args, &dec.matCurrent.MapKa)
	case "map_Ks":
		return dec.parseMap(args, &dec.matCurrent.MapKs)
	case "map_Ke":
		return dec.parseMap(args, &dec.matCurrent.MapKe)
	case "map_d":
		return dec.parseMap(args, &dec.matCurrent.MapD)
	case "map_Pr":
		return dec.parseMap(args, &dec.matCurrent.MapPr)
	case "map_Pm":
		return dec.parseMap(args, &dec.matCurrent.MapPm)
	case "bump", "map_bump", "norm":
		return dec.parseMap(args, &dec.matCurrent.MapBump)
	case "refl":
		return dec.parseMap(args, &dec.matCurrent.MapRefl)
	case "blendu", "blendv", "blend", "boost", "imfchan", "mm", "o", "s", "t":
		return nil
	default:
		dec.appendWarn("mtl", "unsupported directive: "+ltype)
	}
	return nil
}

func (dec *Decoder) parseNewmtl(fields []string) error {
	if len(fields) < 1 {
		return dec.formatError("'newmtl' with no fields")
	}
	name := fields[0]
	mat, ok := dec.Materials[name]
	if !ok {
		mat = newMaterialDesc(name)
		dec.Materials[name] = mat
	}
	dec.matCurrent = mat
	return nil
}

func (dec *Decoder) requireCurrentMaterial() error {
	if dec.matCurrent == nil {
		return dec.formatError("material directive before 'newmtl'")
	}
	return nil
}

func (dec *Decoder) parseDissolve(fields []string) error {
	if err := dec.requireCurrentMaterial(); err != nil {
		return err
	}
	if len(fields) < 1 {
		return dec.formatError("'d' with no fields")
	}
	v, err := parseF32(fields[0])
	if err != nil {
		return err
	}
	dec.matCurrent.Opacity = v
	return nil
}

// parseTr parses the legacy transparency directive, the complement of 'd'.
func (dec *Decoder) parseTr(fields []string) error {
	if err := dec.requireCurrentMaterial(); err != nil {
		return err
	}
	if len(fields) < 1 {
		return dec.formatError("'Tr' with no fields")
	}
	v, err := parseF32(fields[0])
	if err != nil {
		return err
	}
	dec.matCurrent.Opacity = 1 - v
	return nil
}

func (dec *Decoder) parseColour(fields []string, dst *[3]float32) error {
	if err := dec.requireCurrentMaterial(); err != nil {
		return err
	}
	if len(fields) < 3 {
		return dec.formatError("colour directive with fewer than 3 fields")
	}
	for i := 0; i < 3; i++ {
		v, err := parseF32(fields[i])
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

func (dec *Decoder) parseScalar(fields []string, dst *float32) error {
	if err := dec.requireCurrentMaterial(); err != nil {
		return err
	}
	if len(fields) < 1 {
		return dec.formatError("scalar directive with no fields")
	}
	v, err := parseF32(fields[0])
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func (dec *Decoder) parseIllum(fields []string) error {
	if err := dec.requireCurrentMaterial(); err != nil {
		return err
	}
	if len(fields) < 1 {
		return dec.formatError("'illum' with no fields")
	}
	v, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return err
	}
	dec.matCurrent.Illum = int(v)
	return nil
}

// parseMap parses a texture directive's options (-clamp, -bm, -type; the
// rest are recognized and discarded per the format) followed by the
// trailing filename.
func (dec *Decoder) parseMap(fields []string, dst *string) error {
	if err := dec.requireCurrentMaterial(); err != nil {
		return err
	}
	if len(fields) < 1 {
		return dec.formatError("map directive with no fields")
	}
	i := 0
	for i < len(fields) && strings.HasPrefix(fields[i], "-") {
		opt := fields[i]
		switch opt {
		case "-clamp":
			if i+1 < len(fields) {
				dec.matCurrent.Clamp = fields[i+1] == "on"
				i += 2
				continue
			}
			i++
		case "-bm":
			if i+1 < len(fields) {
				v, err := parseF32(fields[i+1])
				if err == nil {
					dec.matCurrent.BumpMultiplier = v
				}
				i += 2
				continue
			}
			i++
		case "-type":
			if i+1 < len(fields) {
				dec.matCurrent.ReflOrientation = fields[i+1]
				i += 2
				continue
			}
			i++
		default:
			// Skip recognized-but-ignored options and any arguments they
			// take, up to the next option or the filename.
			i++
			for i < len(fields) && !strings.HasPrefix(fields[i], "-") && i != len(fields)-1 {
				i++
			}
		}
	}
	if i >= len(fields) {
		return dec.formatError("map directive missing filename")
	}
	*dst = fields[len(fields)-1]
	return nil
}
