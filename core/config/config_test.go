// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Example_defaultConfig() {
	cfg := DefaultConfig()
	fmt.Println(cfg.Operation, cfg.PixelSize, cfg.SectionThickness, cfg.Tolerance, cfg.Level, cfg.Workers, cfg.MinArea, cfg.LogLevel)
	fmt.Println(cfg.Validate())

	cfg.Input = "images/*"
	cfg.Output = "out"
	fmt.Println(cfg.Validate())

	cfg.Operation = "trace"
	fmt.Println(cfg.Validate())

	// Output:
	// contours 0.05 0.03 5 254 1 10 INFO
	// no input specified
	// <nil>
	// unknown operation "trace", expected one of: labels, contours, features
}

func TestConfigFromJSON(t *testing.T) {
	cfg, err := NewConfigFromJSON([]byte(`{"Operation": "labels", "Workers": 4, "FillModes": {"dendrite": 13}}`), DefaultConfig())
	assert.NoError(t, err)
	assert.Equal(t, OpLabels, cfg.Operation)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 13, cfg.FillModes["dendrite"])

	// Untouched fields keep their defaults
	assert.Equal(t, 0.05, cfg.PixelSize)

	_, err = NewConfigFromJSON([]byte(`{"Workers": "many"}`), DefaultConfig())
	assert.Error(t, err)
}

func TestConfigEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"Workers", "8")
	t.Setenv(EnvPrefix+"PixelSize", "0.005")
	t.Setenv(EnvPrefix+"DocType", "true")
	t.Setenv(EnvPrefix+"Input", "s3://bucket/sections/")

	path := filepath.Join(t.TempDir(), "config.json")
	assert.NoError(t, os.WriteFile(path, []byte(`{"Workers": 2, "Output": "out"}`), 0644))

	cfg, err := NewConfigFromFile(path, DefaultConfig())
	assert.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 0.005, cfg.PixelSize)
	assert.True(t, cfg.DocType)
	assert.Equal(t, "s3://bucket/sections/", cfg.Input)
	assert.Equal(t, "out", cfg.Output)

	t.Setenv(EnvPrefix+"Workers", "lots")
	_, err = NewConfigFromFile(path, DefaultConfig())
	assert.Error(t, err)

	_, err = NewConfigFromFile(filepath.Join(t.TempDir(), "missing.json"), DefaultConfig())
	assert.Error(t, err)
}

func TestInitFlagsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	assert.NoError(t, os.WriteFile(path, []byte(`{"Operation": "labels", "Workers": 2, "Tolerance": 3}`), 0644))

	cfg, err := Init("test", []string{"-config", path, "-in", "data/*", "-out", "result", "-workers", "6", "-doctype"})
	assert.NoError(t, err)
	assert.Equal(t, OpLabels, cfg.Operation)
	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, 3.0, cfg.Tolerance)
	assert.Equal(t, 254.0, cfg.Level)
	assert.True(t, cfg.DocType)
	assert.Equal(t, "data/*", cfg.Input)

	_, err = Init("test", []string{"-in", "data/*", "-out", "result", "-workers", "0"})
	assert.Error(t, err)

	_, err = Init("test", []string{"-in", "data/*", "-out", "result", "-log_level", "LOUD"})
	assert.Error(t, err)

	_, err = Init("test", []string{"-nonsense"})
	assert.Error(t, err)
}
