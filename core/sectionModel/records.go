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

// Package sectionModel holds the typed records of a Reconstruct Section document and
// converts them to and from the generic markup.Mapping form
package sectionModel

import (
	"github.com/pkg/errors"
	"github.com/sectiontrace/core/core/markup"
)

// Section - root element attributes
type Section struct {
	AlignLocked bool
	Index       int
	Thickness   float64
}

// Transform - maps contour coordinates to section coordinates. Only dim 0 (identity)
// is supported when rasterising.
type Transform struct {
	Dim   int
	XCoef []float64
	YCoef []float64
}

// Image - the section image, Mag is the pixel size in section units. Proxy fields
// are optional, nil means they're not written.
type Image struct {
	Mag        float64
	Contrast   float64
	Brightness float64
	Red        bool
	Green      bool
	Blue       bool
	Src        string
	ProxySrc   *string
	ProxyScale *float64
}

// Contour - a traced outline. Points are (x, y) in section units.
type Contour struct {
	Name       string
	Hidden     bool
	Closed     bool
	Simplified bool
	Border     []float64
	Fill       []float64
	Mode       int
	Comment    *string
	Points     [][2]float64
}

// Mode values Reconstruct uses for Contour fill
const (
	ModeSelected    = 9  // fill when selected
	ModeImageDomain = 11 // used for the image's domain outline
	ModeFillAlways  = 13
)

func DefaultSection() Section {
	return Section{AlignLocked: false, Index: -1, Thickness: 0.05}
}

// DefaultTransform is the identity
func DefaultTransform() Transform {
	return Transform{Dim: 0, XCoef: []float64{0, 1, 0, 0, 0, 0}, YCoef: []float64{0, 0, 1, 0, 0, 0}}
}

func DefaultImage() Image {
	proxySrc := ""
	proxyScale := 1.0
	return Image{Mag: 1, Contrast: 1, Brightness: 0, Red: true, Green: true, Blue: true, Src: "", ProxySrc: &proxySrc, ProxyScale: &proxyScale}
}

func DefaultContour() Contour {
	return Contour{
		Name:       "unknown",
		Hidden:     false,
		Closed:     true,
		Simplified: false,
		Border:     []float64{1, 0, 1},
		Fill:       []float64{1, 0, 1},
		Mode:       ModeSelected,
	}
}

// Attributes as written to the markup body, in grammar order
func (s Section) Attributes() markup.Mapping {
	return attributeMapping([]Entry{
		{"alignLocked", s.AlignLocked},
		{"index", s.Index},
		{"thickness", s.Thickness},
	})
}

func (t Transform) Attributes() markup.Mapping {
	return attributeMapping([]Entry{
		{"dim", t.Dim},
		{"xcoef", t.XCoef},
		{"ycoef", t.YCoef},
	})
}

func (i Image) Attributes() markup.Mapping {
	return attributeMapping([]Entry{
		{"mag", i.Mag},
		{"contrast", i.Contrast},
		{"brightness", i.Brightness},
		{"red", i.Red},
		{"green", i.Green},
		{"blue", i.Blue},
		{"src", i.Src},
		{"proxy_src", i.ProxySrc},
		{"proxy_scale", i.ProxyScale},
	})
}

func (c Contour) Attributes() markup.Mapping {
	return attributeMapping([]Entry{
		{"name", c.Name},
		{"hidden", c.Hidden},
		{"closed", c.Closed},
		{"simplified", c.Simplified},
		{"border", c.Border},
		{"fill", c.Fill},
		{"mode", c.Mode},
		{"comment", c.Comment},
		{"points", c.Points},
	})
}

// Entry - a typed attribute value
type Entry struct {
	Key   string
	Value interface{}
}

func attributeMapping(values []Entry) markup.Mapping {
	result := markup.Mapping{}
	for _, v := range values {
		if s, ok := FormatAttribute(v.Key, v.Value); ok {
			result.SetAttr(v.Key, s)
		}
	}
	return result
}

// Reads each attribute of body and hands the typed value to set. Returns the names
// set didn't recognise.
func decodeAttributes(body markup.Mapping, set func(key string, value interface{}) bool) ([]string, error) {
	unknown := []string{}
	for _, attr := range body.Attributes() {
		str, ok := attr.Value.(string)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidAttribute, "%v holds %T", attr.Key, attr.Value)
		}

		value, err := ParseAttribute(attr.Key, str)
		if err != nil {
			return nil, err
		}

		if !set(attr.Key, value) {
			unknown = append(unknown, attr.Key)
		}
	}
	return unknown, nil
}

// SectionFromAttributes starts from DefaultSection and overrides any attributes present
func SectionFromAttributes(body markup.Mapping) (Section, []string, error) {
	s := DefaultSection()
	unknown, err := decodeAttributes(body, func(key string, value interface{}) bool {
		switch key {
		case "alignLocked":
			s.AlignLocked = value.(bool)
		case "index":
			s.Index = value.(int)
		case "thickness":
			s.Thickness = value.(float64)
		default:
			return false
		}
		return true
	})
	return s, unknown, err
}

func TransformFromAttributes(body markup.Mapping) (Transform, []string, error) {
	t := DefaultTransform()
	unknown, err := decodeAttributes(body, func(key string, value interface{}) bool {
		switch key {
		case "dim":
			t.Dim = value.(int)
		case "xcoef":
			t.XCoef = value.([]float64)
		case "ycoef":
			t.YCoef = value.([]float64)
		default:
			return false
		}
		return true
	})
	return t, unknown, err
}

func ImageFromAttributes(body markup.Mapping) (Image, []string, error) {
	i := DefaultImage()
	unknown, err := decodeAttributes(body, func(key string, value interface{}) bool {
		switch key {
		case "mag":
			i.Mag = value.(float64)
		case "contrast":
			i.Contrast = value.(float64)
		case "brightness":
			i.Brightness = value.(float64)
		case "red":
			i.Red = value.(bool)
		case "green":
			i.Green = value.(bool)
		case "blue":
			i.Blue = value.(bool)
		case "src":
			i.Src = value.(string)
		case "proxy_src":
			s := value.(string)
			i.ProxySrc = &s
		case "proxy_scale":
			f := value.(float64)
			i.ProxyScale = &f
		default:
			return false
		}
		return true
	})
	return i, unknown, err
}

func ContourFromAttributes(body markup.Mapping) (Contour, []string, error) {
	c := DefaultContour()
	unknown, err := decodeAttributes(body, func(key string, value interface{}) bool {
		switch key {
		case "name":
			c.Name = value.(string)
		case "hidden":
			c.Hidden = value.(bool)
		case "closed":
			c.Closed = value.(bool)
		case "simplified":
			c.Simplified = value.(bool)
		case "border":
			c.Border = value.([]float64)
		case "fill":
			c.Fill = value.([]float64)
		case "mode":
			c.Mode = value.(int)
		case "comment":
			s := value.(string)
			c.Comment = &s
		case "points":
			c.Points = value.([][2]float64)
		default:
			return false
		}
		return true
	})
	return c, unknown, err
}
