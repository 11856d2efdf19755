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

package sectionModel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidAttribute is returned when an attribute value can't be read as the type
// the grammar declares for it
var ErrInvalidAttribute = errors.New("invalid attribute value")

// AttributeKind - the value types used by the Reconstruct grammar
type AttributeKind int

const (
	KindString    AttributeKind = iota // SFString
	KindBool                           // SFBool: true|false
	KindInt                            // SFInt32
	KindFloat                          // SFFloat
	KindFloatList                      // MFFloat, SFColor: space separated floats
	KindPointList                      // MFVec2f: "x y, x y, ..."
)

var attributeKindNames = map[AttributeKind]string{
	KindString:    "string",
	KindBool:      "bool",
	KindInt:       "int",
	KindFloat:     "float",
	KindFloatList: "float list",
	KindPointList: "point list",
}

func (k AttributeKind) String() string {
	return attributeKindNames[k]
}

// Declared types of every attribute on Section, Transform, Image and Contour
var attributeKinds = map[string]AttributeKind{
	// Section
	"index":       KindInt,
	"thickness":   KindFloat,
	"alignLocked": KindBool,

	// Transform
	"dim":   KindInt,
	"xcoef": KindFloatList,
	"ycoef": KindFloatList,

	// Image
	"mag":         KindFloat,
	"contrast":    KindFloat,
	"brightness":  KindFloat,
	"red":         KindBool,
	"green":       KindBool,
	"blue":        KindBool,
	"src":         KindString,
	"proxy_src":   KindString,
	"proxy_scale": KindFloat,

	// Contour
	"name":       KindString,
	"hidden":     KindBool,
	"closed":     KindBool,
	"simplified": KindBool,
	"border":     KindFloatList,
	"fill":       KindFloatList,
	"mode":       KindInt,
	"comment":    KindString,
	"points":     KindPointList,
}

// KindOf returns the declared kind of an attribute, if we know it
func KindOf(key string) (AttributeKind, bool) {
	k, ok := attributeKinds[key]
	return k, ok
}

// ParseAttribute converts an attribute string to its typed value: bool, int, float64,
// []float64, [][2]float64 or string. Known attributes are read as their declared kind,
// anything else goes through SniffAttribute.
func ParseAttribute(key string, value string) (interface{}, error) {
	kind, ok := attributeKinds[key]
	if !ok {
		return SniffAttribute(value), nil
	}

	result, err := parseKind(kind, value)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidAttribute, "%v=%q is not a %v: %v", key, value, kind, err)
	}
	return result, nil
}

// SniffAttribute guesses the type from the shape of the string, trying in order:
// true/false, integer, float, comma separated point list, space separated float list,
// and finally leaves it as a string.
func SniffAttribute(value string) interface{} {
	if value == "true" || value == "false" {
		return value == "true"
	}

	if i, err := parseInt(value); err == nil {
		return i
	}

	if f, err := parseFloat(value); err == nil {
		return f
	}

	if strings.Contains(value, ",") {
		if pts, err := parsePoints(value); err == nil {
			return pts
		}
	} else if strings.ContainsAny(value, " \t\r\n") {
		if list, err := parseFloats(value); err == nil {
			return list
		}
	}

	return value
}

// Divergence reports whether a known attribute would have been read as a different
// type by SniffAttribute, eg a contour called "12" or a single-number coefficient list
func Divergence(key string, value string) bool {
	kind, ok := attributeKinds[key]
	if !ok {
		return false
	}

	declared, err := parseKind(kind, value)
	if err != nil {
		return true
	}
	sniffed := SniffAttribute(value)

	// ints are acceptable wherever floats are declared
	if kind == KindFloat {
		if _, isInt := sniffed.(int); isInt {
			return false
		}
	}
	return fmt.Sprintf("%T", declared) != fmt.Sprintf("%T", sniffed)
}

func parseKind(kind AttributeKind, value string) (interface{}, error) {
	switch kind {
	case KindBool:
		if value == "true" || value == "false" {
			return value == "true", nil
		}
		return nil, errors.New("expected true or false")
	case KindInt:
		return parseInt(value)
	case KindFloat:
		return parseFloat(value)
	case KindFloatList:
		return parseFloats(value)
	case KindPointList:
		return parsePoints(value)
	}
	return value, nil
}

func parseInt(value string) (int, error) {
	s := strings.TrimSpace(value)
	i, err := strconv.Atoi(s)
	if err == nil {
		return i, nil
	}

	// Some writers emit integral fields as eg "9.0"
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr == nil && f == float64(int(f)) && strings.Contains(s, ".") {
		return int(f), nil
	}
	return 0, err
}

func parseFloat(value string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}

func parseFloats(value string) ([]float64, error) {
	fields := strings.Fields(value)
	result := make([]float64, 0, len(fields))
	for _, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	return result, nil
}

// parsePoints reads "x y, x y, ..." into coordinate pairs. Reconstruct itself writes
// a trailing comma after the last point, the empty group it produces is dropped.
func parsePoints(value string) ([][2]float64, error) {
	groups := strings.Split(value, ",")
	if len(strings.TrimSpace(groups[len(groups)-1])) <= 0 {
		groups = groups[0 : len(groups)-1]
	}

	result := make([][2]float64, 0, len(groups))
	for c, group := range groups {
		coords, err := parseFloats(group)
		if err != nil {
			return nil, err
		}
		if len(coords) != 2 {
			return nil, fmt.Errorf("point %v has %v coordinates", c, len(coords))
		}
		result = append(result, [2]float64{coords[0], coords[1]})
	}
	return result, nil
}

// FormatAttribute converts a typed value back to its attribute string. The second return
// value is false for absent values (nil, nil pointers, nil slices) which must not be
// written at all.
func FormatAttribute(key string, value interface{}) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case bool:
		return strconv.FormatBool(v), true
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	case int:
		return strconv.Itoa(v), true
	case float64:
		return FormatFloat(v), true
	case *float64:
		if v == nil {
			return "", false
		}
		return FormatFloat(*v), true
	case []float64:
		if v == nil {
			return "", false
		}
		parts := make([]string, len(v))
		for c, f := range v {
			parts[c] = FormatFloat(f)
		}
		return strings.Join(parts, " "), true
	case [][2]float64:
		if v == nil {
			return "", false
		}
		parts := make([]string, len(v))
		for c, pt := range v {
			parts[c] = FormatFloat(pt[0]) + " " + FormatFloat(pt[1])
		}
		return strings.Join(parts, ", "), true
	}
	return fmt.Sprintf("%v", value), true
}

// FormatFloat writes the shortest decimal that reads back as f, never in exponent form
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
