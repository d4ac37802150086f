// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config parses an optional YAML configuration file carrying
// default post-processor options and log settings. Grounded on
// g3n-engine/gui/builder.go's yaml.Unmarshal usage — the teacher's only
// consumer of gopkg.in/yaml.v2 — generalized from GUI panel descriptions
// to this package's own document shape. Reading a config file is always
// optional: importer.Init never requires one to be present.
package config

import (
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/ocasi3d/ocasi/postprocess"
	"github.com/ocasi3d/ocasi/util/logger"
)

// Config is the document shape of an ocasi.yaml file.
type Config struct {
	// PostProcess names zero or more postprocess.Options flags by their
	// lower_snake_case spelling (triangulate, generate_normals,
	// generate_texture_coordinates, collapse_child_nodes,
	// convert_to_right_handed). Unrecognized names are ignored with a
	// logged warning rather than failing the whole file.
	PostProcess []string `yaml:"post_process"`

	// LogLevel is one of debug, info, warn, error, fatal (case
	// insensitive), applied to logger.Default via SetLevelByName.
	LogLevel string `yaml:"log_level"`
}

var log = logger.New("CONFIG", logger.Default)

var optionNames = map[string]postprocess.Options{
	"triangulate":                  postprocess.Triangulate,
	"generate_normals":             postprocess.GenerateNormals,
	"generate_texture_coordinates": postprocess.GenerateTextureCoordinates,
	"collapse_child_nodes":         postprocess.CollapseChildNodes,
	"convert_to_right_handed":      postprocess.ConvertToRightHanded,
}

// Load parses the YAML document at path. A missing file is not an
// error — it returns a zero-value Config and a nil error, since a
// config file is always optional (see package doc).
func Load(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Options resolves PostProcess into a postprocess.Options bit-mask,
// OR-ing together every recognized name and logging a Warn for any
// name this version doesn't recognize.
func (c *Config) Options() postprocess.Options {
	var out postprocess.Options
	for _, name := range c.PostProcess {
		bit, ok := optionNames[name]
		if !ok {
			log.Warn("unrecognized post_process option %q", name)
			continue
		}
		out |= bit
	}
	return out
}

// ApplyLogLevel sets logger.Default's level from LogLevel, if set.
func (c *Config) ApplyLogLevel() error {
	if c.LogLevel == "" {
		return nil
	}
	return logger.Default.SetLevelByName(c.LogLevel)
}
