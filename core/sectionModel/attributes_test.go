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
	"testing"

	"github.com/stretchr/testify/assert"
)

func Example_parseAttribute() {
	for _, kv := range [][]string{
		{"hidden", "false"},
		{"index", "12"},
		{"mode", "9.0"},
		{"thickness", "0.05"},
		{"thickness", "1"},
		{"xcoef", " 0 1 0 0 0 0"},
		{"border", "1"},
		{"points", "1 2, 3 4,"},
		{"points", "1 2,\n\t3 4,\n\t"},
		{"name", "12"},
		{"hidden", "False"},
		{"points", "1 2, 3, 5 6"},
		{"zoom", "3"},
		{"zoom", "2.5"},
		{"zoom", "true"},
		{"zoom", "1 2"},
		{"zoom", "1 2, 3 4"},
		{"zoom", "abc"},
		{"zoom", "hello world"},
	} {
		v, err := ParseAttribute(kv[0], kv[1])
		if err != nil {
			fmt.Printf("%v: %v\n", kv[0], err)
		} else {
			fmt.Printf("%v: %v (%T)\n", kv[0], v, v)
		}
	}

	// Output:
	// hidden: false (bool)
	// index: 12 (int)
	// mode: 9 (int)
	// thickness: 0.05 (float64)
	// thickness: 1 (float64)
	// xcoef: [0 1 0 0 0 0] ([]float64)
	// border: [1] ([]float64)
	// points: [[1 2] [3 4]] ([][2]float64)
	// points: [[1 2] [3 4]] ([][2]float64)
	// name: 12 (string)
	// hidden: hidden="False" is not a bool: expected true or false: invalid attribute value
	// points: points="1 2, 3, 5 6" is not a point list: point 1 has 1 coordinates: invalid attribute value
	// zoom: 3 (int)
	// zoom: 2.5 (float64)
	// zoom: true (bool)
	// zoom: [1 2] ([]float64)
	// zoom: [[1 2] [3 4]] ([][2]float64)
	// zoom: abc (string)
	// zoom: hello world (string)
}

func Example_formatAttribute() {
	var noComment *string
	comment := "checked"

	for _, kv := range []Entry{
		{"hidden", false},
		{"closed", true},
		{"index", 74},
		{"thickness", 0.05},
		{"mag", 0.0000001},
		{"xcoef", []float64{0, 1, 0, 0, 0, 0}},
		{"fill", []float64{1, 0.5, 0}},
		{"points", [][2]float64{{1, 2}, {3.5, 4}}},
		{"comment", &comment},
		{"comment", noComment},
		{"points", [][2]float64(nil)},
		{"proxy_src", nil},
	} {
		s, ok := FormatAttribute(kv.Key, kv.Value)
		fmt.Printf("%v: %q %v\n", kv.Key, s, ok)
	}

	// Output:
	// hidden: "false" true
	// closed: "true" true
	// index: "74" true
	// thickness: "0.05" true
	// mag: "0.0000001" true
	// xcoef: "0 1 0 0 0 0" true
	// fill: "1 0.5 0" true
	// points: "1 2, 3.5 4" true
	// comment: "checked" true
	// comment: "" false
	// points: "" false
	// proxy_src: "" false
}

func Example_divergence() {
	for _, kv := range [][]string{
		{"name", "12"},
		{"name", "d01"},
		{"thickness", "1"},
		{"border", "1"},
		{"border", "1 0 1"},
		{"points", "1 2"},
		{"index", "3"},
		{"zoom", "3"},
	} {
		fmt.Printf("%v=%q %v\n", kv[0], kv[1], Divergence(kv[0], kv[1]))
	}

	// Output:
	// name="12" true
	// name="d01" false
	// thickness="1" false
	// border="1" true
	// border="1 0 1" false
	// points="1 2" true
	// index="3" false
	// zoom="3" false
}

// Every value FormatAttribute writes must read back as the same value
func TestFormatThenParse(t *testing.T) {
	comment := "a, b"
	values := []Entry{
		{"alignLocked", true},
		{"index", -1},
		{"thickness", 0.03},
		{"mag", 0.00254},
		{"brightness", -0.25},
		{"dim", 0},
		{"ycoef", []float64{0, 0, 1, 0, 0, 0}},
		{"border", []float64{0.1, 0.2, 0.3}},
		{"points", [][2]float64{{0, 0}, {178.9, 0}, {178.9, 133.45}, {0.001, 133.45}}},
		{"name", "d01"},
		{"comment", &comment},
	}

	for _, v := range values {
		s, ok := FormatAttribute(v.Key, v.Value)
		assert.True(t, ok, v.Key)

		back, err := ParseAttribute(v.Key, s)
		assert.NoError(t, err, v.Key)

		if ptr, isPtr := v.Value.(*string); isPtr {
			assert.Equal(t, *ptr, back, v.Key)
		} else {
			assert.Equal(t, v.Value, back, v.Key)
		}
	}
}

func TestKindOf(t *testing.T) {
	k, ok := KindOf("points")
	assert.True(t, ok)
	assert.Equal(t, KindPointList, k)
	assert.Equal(t, "point list", k.String())

	_, ok = KindOf("zoom")
	assert.False(t, ok)
}
