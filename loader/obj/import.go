// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package obj

import (
	"path/filepath"

	"github.com/ocasi3d/ocasi/core"
)

// ImportFile parses the OBJ file at path, its "mtllib" sidecar (if any),
// and lowers the result into a canonical core.Scene. Relative texture
// paths in the MTL are resolved against path's own directory.
func ImportFile(path string) (*core.Scene, error) {
	dir := filepath.Dir(path)

	objSrc, err := core.NewTextSourceFromPath(path)
	if err != nil {
		return nil, err
	}
	defer objSrc.Close()

	dec := NewDecoder()
	if err := dec.DecodeOBJ(objSrc); err != nil {
		return nil, err
	}

	if dec.MtllibPath != "" {
		mtlPath := dec.MtllibPath
		if !filepath.IsAbs(mtlPath) {
			mtlPath = filepath.Join(dir, mtlPath)
		}
		mtlSrc, err := core.NewTextSourceFromPath(mtlPath)
		if err != nil {
			log.Warn("could not open mtllib %q: %v", mtlPath, err)
		} else {
			defer mtlSrc.Close()
			if err := dec.DecodeMTL(mtlSrc); err != nil {
				return nil, err
			}
		}
	}

	return dec.ToScene(dir)
}
