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

// Converter configuration as read from JSON, env vars and command line flags
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sectiontrace/core/core/logger"
	"github.com/sectiontrace/core/core/utils"
)

// Prefix of environment variables overriding config fields, eg SECTIONTRACE_CONFIG_Workers=4
const EnvPrefix = "SECTIONTRACE_CONFIG_"

// Operations the converter can run
const (
	OpLabels   = "labels"   // Section documents -> label PNGs
	OpContours = "contours" // label PNGs -> Section documents
	OpFeatures = "features" // images -> region descriptor CSVs
)

var Operations = []string{OpLabels, OpContours, OpFeatures}

// ConverterConfig combines config JSON, env vars and flags. Later sources override
// earlier ones in that order.
type ConverterConfig struct {
	Operation string

	// Local path, glob (ending in *) or s3://bucket/prefix
	Input  string
	Output string

	// Physical size of a pixel edge and section thickness, micrometers
	PixelSize        float64
	SectionThickness float64

	// Contour tracing
	Tolerance    float64
	Level        float64
	BorderColors map[string][]float64
	FillColors   map[string][]float64
	FillModes    map[string]int
	DocType      bool

	// Feature extraction: smaller regions are ignored
	MinArea int

	Workers int

	// If > 0, label overlay previews are written at this width
	OverlayWidth int

	LogLevel string

	EnvironmentName string
	SentryEndpoint  string

	// Address for serving /metrics, empty to not serve
	MetricsAddr string

	AWSRegion string
}

// DefaultConfig - values used when nothing else is specified
func DefaultConfig() ConverterConfig {
	return ConverterConfig{
		Operation:        OpContours,
		PixelSize:        0.050,
		SectionThickness: 0.030,
		Tolerance:        5,
		Level:            254,
		MinArea:          10,
		Workers:          1,
		LogLevel:         logger.GetLogLevelName(logger.LogInfo),
		EnvironmentName:  "local",
	}
}

// NewConfigFromFile reads JSON config over the top of base, then applies env overrides
func NewConfigFromFile(configFilePath string, base ConverterConfig) (ConverterConfig, error) {
	data, err := os.ReadFile(configFilePath)
	if err != nil {
		return base, errors.Wrapf(err, "could not read config file at %v", configFilePath)
	}
	return NewConfigFromJSON(data, base)
}

func NewConfigFromJSON(configJSON []byte, base ConverterConfig) (ConverterConfig, error) {
	cfg := base
	if err := json.Unmarshal(configJSON, &cfg); err != nil {
		return base, errors.Wrap(err, "failed to parse config")
	}

	if err := ApplyEnvOverrides(&cfg); err != nil {
		return base, err
	}
	return cfg, nil
}

// ApplyEnvOverrides sets any field with a SECTIONTRACE_CONFIG_<FieldName> env var.
// Maps can't be set this way.
func ApplyEnvOverrides(cfg *ConverterConfig) error {
	reflection := reflect.ValueOf(cfg).Elem()
	for i := 0; i < reflection.NumField(); i++ {
		fieldName := reflection.Type().Field(i).Name
		field := reflection.Field(i)

		val, present := os.LookupEnv(EnvPrefix + fieldName)
		if !present {
			continue
		}

		var err error
		switch field.Kind() {
		case reflect.String:
			field.SetString(val)
		case reflect.Int:
			var n int
			n, err = strconv.Atoi(strings.TrimSpace(val))
			field.SetInt(int64(n))
		case reflect.Float64:
			var f float64
			f, err = strconv.ParseFloat(strings.TrimSpace(val), 64)
			field.SetFloat(f)
		case reflect.Bool:
			var b bool
			b, err = strconv.ParseBool(strings.TrimSpace(val))
			field.SetBool(b)
		default:
			err = fmt.Errorf("unsupported field type %v", field.Kind())
		}

		if err != nil {
			return errors.Wrapf(err, "could not apply %v%v=%v", EnvPrefix, fieldName, val)
		}
	}
	return nil
}

// Validate checks values make sense before any work is started
func (c ConverterConfig) Validate() error {
	if !utils.ItemInSlice(c.Operation, Operations) {
		return fmt.Errorf("unknown operation %q, expected one of: %v", c.Operation, strings.Join(Operations, ", "))
	}

	if len(c.Input) <= 0 {
		return errors.New("no input specified")
	}
	if len(c.Output) <= 0 {
		return errors.New("no output specified")
	}
	if c.PixelSize <= 0 {
		return fmt.Errorf("pixel size must be positive, got %v", c.PixelSize)
	}
	if c.SectionThickness < 0 {
		return fmt.Errorf("section thickness must not be negative, got %v", c.SectionThickness)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative, got %v", c.Tolerance)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %v", c.Workers)
	}
	if _, err := logger.GetLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// GetLogLevel - parsed LogLevel, INFO if it's not valid
func (c ConverterConfig) GetLogLevel() logger.LogLevel {
	level, err := logger.GetLogLevel(c.LogLevel)
	if err != nil {
		return logger.LogInfo
	}
	return level
}

// Init builds the config from command line args: defaults, then the -config file (if
// any), then env vars, then any flags explicitly given
func Init(name string, args []string) (ConverterConfig, error) {
	defaults := DefaultConfig()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	configFilePath := fs.String("config", "", "Path to a JSON file holding converter config")

	var flagged ConverterConfig
	fs.StringVar(&flagged.Operation, "op", defaults.Operation, "Operation: "+strings.Join(Operations, ", "))
	fs.StringVar(&flagged.Input, "in", "", "Input path, glob, or s3://bucket/prefix")
	fs.StringVar(&flagged.Output, "out", "", "Output path or s3://bucket/prefix")
	fs.Float64Var(&flagged.PixelSize, "pixel_size", defaults.PixelSize, "Pixel size in micrometers")
	fs.Float64Var(&flagged.SectionThickness, "section_thickness", defaults.SectionThickness, "Section thickness in micrometers")
	fs.Float64Var(&flagged.Tolerance, "tolerance", defaults.Tolerance, "Contour simplification tolerance in pixels")
	fs.Float64Var(&flagged.Level, "level", defaults.Level, "Value at which label images are traced")
	fs.IntVar(&flagged.Workers, "workers", defaults.Workers, "Number of images processed in parallel")
	fs.IntVar(&flagged.MinArea, "min_area", defaults.MinArea, "Minimum region area for feature extraction")
	fs.BoolVar(&flagged.DocType, "doctype", defaults.DocType, "Write <!DOCTYPE Section SYSTEM \"section.dtd\"> into Section documents")
	fs.IntVar(&flagged.OverlayWidth, "overlay_width", defaults.OverlayWidth, "Width of label overlay previews, 0 for none")
	fs.StringVar(&flagged.LogLevel, "log_level", defaults.LogLevel, "DEBUG, INFO or ERROR")
	fs.StringVar(&flagged.MetricsAddr, "metrics_addr", defaults.MetricsAddr, "Address to serve /metrics on, eg :9090")

	if err := fs.Parse(args); err != nil {
		return defaults, err
	}

	cfg := defaults
	var err error
	if len(*configFilePath) > 0 {
		cfg, err = NewConfigFromFile(*configFilePath, defaults)
	} else {
		err = ApplyEnvOverrides(&cfg)
	}
	if err != nil {
		return cfg, err
	}

	// Only flags actually given override the file/env
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "op":
			cfg.Operation = flagged.Operation
		case "in":
			cfg.Input = flagged.Input
		case "out":
			cfg.Output = flagged.Output
		case "pixel_size":
			cfg.PixelSize = flagged.PixelSize
		case "section_thickness":
			cfg.SectionThickness = flagged.SectionThickness
		case "tolerance":
			cfg.Tolerance = flagged.Tolerance
		case "level":
			cfg.Level = flagged.Level
		case "workers":
			cfg.Workers = flagged.Workers
		case "min_area":
			cfg.MinArea = flagged.MinArea
		case "doctype":
			cfg.DocType = flagged.DocType
		case "overlay_width":
			cfg.OverlayWidth = flagged.OverlayWidth
		case "log_level":
			cfg.LogLevel = flagged.LogLevel
		case "metrics_addr":
			cfg.MetricsAddr = flagged.MetricsAddr
		}
	})

	return cfg, cfg.Validate()
}
