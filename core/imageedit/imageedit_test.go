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

package imageedit

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/sectiontrace/core/core/raster"
)

func Example_overlayLabels() {
	source := image.NewGray(image.Rect(0, 0, 3, 2))
	source.SetGray(0, 0, color.Gray{Y: 100})

	a := raster.New(2, 3)
	a.Set(0, 0, 1)
	a.Set(1, 2, 1)
	b := raster.New(2, 3)
	b.Set(1, 2, 1)

	out := OverlayLabels(source, map[string]raster.Raster{"a": a, "b": b}, []string{"a", "b", "missing"}, map[string]color.RGBA{"b": {R: 0, G: 0, B: 200, A: 255}}, 0.5)
	fmt.Println(out.RGBAAt(0, 0))
	fmt.Println(out.RGBAAt(1, 0))
	fmt.Println(out.RGBAAt(2, 1))

	// Output:
	// {178 50 178 255}
	// {0 0 0 255}
	// {64 0 164 255}
}

func Example_scaleAndEncode() {
	img := image.NewGray(image.Rect(0, 0, 40, 20))

	scaled := ScaleImage(img, 10)
	fmt.Println(scaled.Bounds())
	fmt.Println(ScaleImage(img, 0).Bounds())

	data, err := GetImageBytes(scaled, "png")
	fmt.Printf("%v\n", err)
	decoded, err := png.Decode(bytes.NewReader(data))
	fmt.Printf("%v %v\n", err, decoded.Bounds())

	_, err = GetImageBytes(scaled, "gif")
	fmt.Printf("%v\n", err)

	// Output:
	// (0,0)-(10,5)
	// (0,0)-(40,20)
	// <nil>
	// <nil> (0,0)-(10,5)
	// unexpected image format: gif
}
