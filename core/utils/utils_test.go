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

package utils

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Example_makeSaveableFileName() {
	fmt.Println(MakeSaveableFileName("dendrite1"))
	fmt.Println(MakeSaveableFileName("Dust/Alteration"))
	fmt.Println(MakeSaveableFileName("mito (outer)"))
	fmt.Println(MakeSaveableFileName(".."))
	fmt.Println(MakeSaveableFileName(""))

	// Output:
	// dendrite1
	// Dust_Alteration
	// mito (outer)
	// ___
	// _
}

func Example_sectionAndImageNumbers() {
	for _, path := range []string{"data/series.12", "series.ser", "series", "img/0373.tif", "img/a12.png", "12"} {
		s, sok := SectionNumber(path)
		i, iok := ImageNumber(path)
		fmt.Printf("%v: %v %v, %v %v\n", path, s, sok, i, iok)
	}

	// Output:
	// data/series.12: 12 true, 0 false
	// series.ser: 0 false, 0 false
	// series: 0 false, 0 false
	// img/0373.tif: 0 false, 373 true
	// img/a12.png: 0 false, 0 false
	// 12: 0 false, 12 true
}

func Example_getSortedMapKeys() {
	fmt.Println(GetSortedMapKeys(map[string]int{"b": 1, "c": 2, "a": 3}))
	fmt.Println(GetSortedMapKeys(map[int]bool{}))
	fmt.Println(ItemInSlice("b", []string{"a", "b"}), ItemInSlice(3, []int{1, 2}))

	// Output:
	// [a b c]
	// []
	// true false
}

func TestImageFiles(t *testing.T) {
	dir := t.TempDir()

	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(2, 1, color.Gray{Y: 200})

	assert.NoError(t, WritePNGImageFile(filepath.Join(dir, "a"), img))
	assert.NoError(t, WritePNGImageFile(filepath.Join(dir, "b.png"), img))
	aBytes, err := os.ReadFile(filepath.Join(dir, "a.png"))
	assert.NoError(t, err)
	bBytes, err := os.ReadFile(filepath.Join(dir, "b.png"))
	assert.NoError(t, err)
	assert.Equal(t, aBytes, bBytes)

	read, err := ReadImageFile(filepath.Join(dir, "a.png"))
	assert.NoError(t, err)
	gray, ok := read.(*image.Gray)
	assert.True(t, ok)
	if ok {
		assert.Equal(t, img.Bounds(), gray.Bounds())
		assert.Equal(t, img.Pix, gray.Pix)
	}

	_, err = ReadImageFile(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}
