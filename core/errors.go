// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import "fmt"

// IoError is returned when a source file could not be opened or read.
type IoError struct {
	Path  string
	Cause error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("ocasi: io error reading %q: %v", e.Path, e.Cause)
}

func (e *IoError) Unwrap() error { return e.Cause }

// UnknownExtensionError is returned when no importer is registered for a
// file's extension.
type UnknownExtensionError struct {
	Ext string
}

func (e *UnknownExtensionError) Error() string {
	return fmt.Sprintf("ocasi: no importer registered for extension %q", e.Ext)
}

// BadMagicError is returned when a GLB file's magic number does not match.
type BadMagicError struct {
	Got uint32
}

func (e *BadMagicError) Error() string {
	return fmt.Sprintf("ocasi: bad GLB magic: 0x%08x", e.Got)
}

// UnsupportedVersionError is returned when a glTF/GLB asset declares a
// version this importer does not support.
type UnsupportedVersionError struct {
	Version string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("ocasi: unsupported version %q", e.Version)
}

// LengthMismatchError is returned when a GLB's declared total length does
// not match the actual data available.
type LengthMismatchError struct {
	Declared, Actual uint32
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("ocasi: GLB length mismatch: declared %d, actual %d", e.Declared, e.Actual)
}

// MalformedJSONError is returned when a glTF JSON document fails to parse.
type MalformedJSONError struct {
	Detail string
	Cause  error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("ocasi: malformed glTF JSON: %s: %v", e.Detail, e.Cause)
}

func (e *MalformedJSONError) Unwrap() error { return e.Cause }

// MissingFieldError is returned when a required JSON property is absent.
type MissingFieldError struct {
	Object, Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("ocasi: %s missing required field %q", e.Object, e.Field)
}

// UnsupportedExtensionError is returned when a glTF asset requires an
// extension outside the supported set.
type UnsupportedExtensionError struct {
	Name string
}

func (e *UnsupportedExtensionError) Error() string {
	return fmt.Sprintf("ocasi: unsupported required extension %q", e.Name)
}

// BoundsViolationError is returned when an accessor or buffer view read
// would exceed its backing buffer.
type BoundsViolationError struct {
	Where string
}

func (e *BoundsViolationError) Error() string {
	return fmt.Sprintf("ocasi: bounds violation: %s", e.Where)
}

// MalformedFaceError is returned when an OBJ face references a missing
// pool or otherwise cannot be resolved.
type MalformedFaceError struct {
	Reason string
	Line   int
}

func (e *MalformedFaceError) Error() string {
	return fmt.Sprintf("ocasi: malformed face at line %d: %s", e.Line, e.Reason)
}

// InvariantViolationError signals an internal consistency check failed.
type InvariantViolationError struct {
	What string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("ocasi: invariant violation: %s", e.What)
}

// UnexpectedEOFError is returned by ByteSource typed reads when fewer bytes
// remain than the requested type's size.
type UnexpectedEOFError struct {
	Requested, Remaining int
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("ocasi: unexpected EOF: requested %d bytes, %d remaining", e.Requested, e.Remaining)
}
