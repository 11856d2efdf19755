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
	"image"
	"image/color"

	"github.com/sectiontrace/core/core/raster"
	"golang.org/x/image/draw"
)

// Colours given to labels in name order when no colour is specified
var DefaultLabelColours = []color.RGBA{
	{R: 255, G: 0, B: 255, A: 255},
	{R: 0, G: 200, B: 255, A: 255},
	{R: 255, G: 160, B: 0, A: 255},
	{R: 0, G: 220, B: 0, A: 255},
	{R: 255, G: 0, B: 0, A: 255},
	{R: 0, G: 0, B: 255, A: 255},
}

// OverlayLabels draws the source image in colour and tints every labelled pixel with its
// label's colour. labelNames fixes the drawing order, later labels are drawn over
// earlier ones. Opacity is 0-1.
func OverlayLabels(source image.Image, labels map[string]raster.Raster, labelNames []string, colours map[string]color.RGBA, opacity float64) *image.RGBA {
	bounds := source.Bounds()
	outImage := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(outImage, outImage.Bounds(), source, bounds.Min, draw.Src)

	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}

	for c, name := range labelNames {
		label, ok := labels[name]
		if !ok {
			continue
		}

		tint, ok := colours[name]
		if !ok {
			tint = DefaultLabelColours[c%len(DefaultLabelColours)]
		}

		for row := 0; row < label.Rows && row < bounds.Dy(); row++ {
			for col := 0; col < label.Cols && col < bounds.Dx(); col++ {
				if label.At(row, col) == 0 {
					continue
				}

				under := outImage.RGBAAt(col, row)
				outImage.SetRGBA(col, row, color.RGBA{
					R: blend(under.R, tint.R, opacity),
					G: blend(under.G, tint.G, opacity),
					B: blend(under.B, tint.B, opacity),
					A: 255,
				})
			}
		}
	}

	return outImage
}

func blend(under uint8, over uint8, opacity float64) uint8 {
	return uint8(float64(under)*(1-opacity) + float64(over)*opacity + 0.5)
}
