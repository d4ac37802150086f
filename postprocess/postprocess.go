// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package postprocess implements the ordered, conditional post-import
// passes: ConvertToRightHanded, Triangulate, GenerateNormals,
// CollapseChildNodes and GenerateTextureCoordinates. The registry is a
// plain ordered slice built once at package init, mirroring
// original_source's PostProcessor::SetPostProcesses/s_PostProcessingProcesses
// but without the virtual-dispatch indirection spec.md §9's design notes
// ask a reimplementation to drop.
package postprocess

import (
	"github.com/ocasi3d/ocasi/core"
	"github.com/ocasi3d/ocasi/util/logger"
)

var log = logger.New("POSTPROCESS", logger.Default)

// Options is a bit-mask of requested post-processing passes, OR'ed with
// whatever SetGlobalPostProcessorOptions has accumulated at the facade
// level. Bit values follow the same "sentinel zero, 1<<iota from the
// second entry" pattern core.FaceMode uses, not plain sequential flags,
// so None stays bit-pattern 0 without consuming a shift.
type Options uint32

const (
	None Options = 0
	Triangulate Options = 1 << iota
	GenerateNormals
	GenerateTextureCoordinates
	CollapseChildNodes
	ConvertToRightHanded
)

// SourceFormat records which importer produced the Scene a PostProcess
// is asked to examine; only ConvertToRightHanded's NeedsProcessing
// depends on it (glTF's source convention is right-handed and must be
// converted to this library's left-handed-origin internal convention;
// OBJ's is not), but the type is general so future passes can consult
// it too.
type SourceFormat int

const (
	FormatOBJ SourceFormat = iota
	FormatGLTF
)

// PostProcess is one entry in the ordered pipeline. NeedsProcessing is
// consulted before Execute so a pass that has nothing to do (e.g.
// GenerateNormals on a scene that already has normals everywhere) is
// skipped entirely, matching original_source's BasePostProcess gate.
type PostProcess interface {
	// Option is the single Options bit that enables this pass.
	Option() Options
	// NeedsProcessing inspects scene (and which importer produced it)
	// and reports whether Execute has any work to do.
	NeedsProcessing(scene *core.Scene, format SourceFormat) bool
	// Execute performs the pass in place. Per-mesh failures are logged
	// at Warn internally and do not abort the pass or the import.
	Execute(scene *core.Scene)
}

// registry is the fixed, ordered pipeline: ConvertToRightHanded →
// Triangulate → GenerateNormals → CollapseChildNodes →
// GenerateTextureCoordinates, per spec.md §4.9. It is built once and
// never mutated afterward, safe for concurrent Run calls on disjoint
// Scenes (spec.md §5).
var registry = []PostProcess{
	&convertToRightHandedPass{},
	&triangulatePass{},
	&generateNormalsPass{},
	&collapseChildNodesPass{},
	&generateTextureCoordinatesPass{},
}

// Run executes every registered pass whose bit is set in options and
// whose NeedsProcessing reports true, in registry order.
func Run(scene *core.Scene, format SourceFormat, options Options) {
	for _, p := range registry {
		if options&p.Option() == 0 {
			continue
		}
		if !p.NeedsProcessing(scene, format) {
			continue
		}
		p.Execute(scene)
	}
}
