// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// TextSource is a line-oriented reader used by the OBJ and MTL parsers.
// It mirrors the line-reading loop g3n-engine/loader/obj.Decoder.parse
// builds ad hoc around bufio.Reader, lifted out into a reusable type so
// both the .obj and .mtl sub-parsers share one implementation, the way
// original_source's TextFileParser is shared between ObjFileParser and
// MtlParser.
type TextSource struct {
	path   string
	reader *bufio.Reader
	line   int
	closer io.Closer
}

// NewTextSourceFromPath opens path for line-based reading.
// Failure is wrapped in an *IoError.
func NewTextSourceFromPath(path string) (*TextSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IoError{Path: path, Cause: err}
	}
	return &TextSource{path: path, reader: bufio.NewReader(f), closer: f}, nil
}

// NewTextSourceFromBytes wraps data for line-based reading.
func NewTextSourceFromBytes(data []byte) *TextSource {
	return &TextSource{reader: bufio.NewReader(strings.NewReader(string(data)))}
}

// Path returns the originating file path, or "" for a memory source.
func (t *TextSource) Path() string { return t.path }

// Line returns the 1-based index of the last line returned by NextLine.
func (t *TextSource) Line() int { return t.line }

// Close releases the underlying file handle, if any.
func (t *TextSource) Close() error {
	if t.closer != nil {
		return t.closer.Close()
	}
	return nil
}

// NextLine returns the next trimmed line of text and true, or "", false
// once the source is exhausted. Trailing '\r' from CRLF line endings is
// stripped along with surrounding whitespace.
func (t *TextSource) NextLine() (string, bool) {
	raw, err := t.reader.ReadString('\n')
	if raw == "" && err != nil {
		return "", false
	}
	t.line++
	return strings.TrimSpace(raw), true
}

// EachLine invokes fn for every line in order, stopping at the first
// error fn returns.
func (t *TextSource) EachLine(fn func(line string) error) error {
	for {
		line, ok := t.NextLine()
		if !ok {
			return nil
		}
		if err := fn(line); err != nil {
			return err
		}
	}
}
