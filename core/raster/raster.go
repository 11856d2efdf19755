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

// Package raster holds label masks as plain row-major grids. Index (0,0) is the
// top-left pixel, same as image.Image.
package raster

import (
	"fmt"
	"image"
	"image/color"
)

// Raster - a Rows x Cols grid of values, row-major
type Raster struct {
	Rows int
	Cols int
	Pix  []uint16
}

// New makes an all-zero raster
func New(rows int, cols int) Raster {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return Raster{Rows: rows, Cols: cols, Pix: make([]uint16, rows*cols)}
}

func (r Raster) Shape() (int, int) {
	return r.Rows, r.Cols
}

func (r Raster) SameShape(other Raster) bool {
	return r.Rows == other.Rows && r.Cols == other.Cols
}

func (r Raster) InBounds(row int, col int) bool {
	return row >= 0 && row < r.Rows && col >= 0 && col < r.Cols
}

// At returns 0 outside the raster
func (r Raster) At(row int, col int) uint16 {
	if !r.InBounds(row, col) {
		return 0
	}
	return r.Pix[row*r.Cols+col]
}

func (r Raster) Set(row int, col int, value uint16) {
	if r.InBounds(row, col) {
		r.Pix[row*r.Cols+col] = value
	}
}

// Count returns the number of non-zero pixels
func (r Raster) Count() int {
	n := 0
	for _, v := range r.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// Or sets every pixel that's non-zero in other
func (r Raster) Or(other Raster) error {
	if !r.SameShape(other) {
		return fmt.Errorf("raster shapes differ: %vx%v vs %vx%v", r.Rows, r.Cols, other.Rows, other.Cols)
	}
	for c, v := range other.Pix {
		if v != 0 {
			r.Pix[c] = v
		}
	}
	return nil
}

// FlipUD reverses the row order
func (r Raster) FlipUD() Raster {
	result := New(r.Rows, r.Cols)
	for row := 0; row < r.Rows; row++ {
		copy(result.Pix[row*r.Cols:(row+1)*r.Cols], r.Pix[(r.Rows-1-row)*r.Cols:(r.Rows-row)*r.Cols])
	}
	return result
}

// Transpose swaps rows and columns
func (r Raster) Transpose() Raster {
	result := New(r.Cols, r.Rows)
	for row := 0; row < r.Rows; row++ {
		for col := 0; col < r.Cols; col++ {
			result.Pix[col*result.Cols+row] = r.Pix[row*r.Cols+col]
		}
	}
	return result
}

// Pad surrounds the raster with n rows/cols of zeros on every side
func (r Raster) Pad(n int) Raster {
	result := New(r.Rows+2*n, r.Cols+2*n)
	for row := 0; row < r.Rows; row++ {
		copy(result.Pix[(row+n)*result.Cols+n:(row+n)*result.Cols+n+r.Cols], r.Pix[row*r.Cols:(row+1)*r.Cols])
	}
	return result
}

// FromImage reads an image into a raster keeping native values where the image has a
// single channel (gray, gray16), other images (including paletted) are converted to gray
func FromImage(img image.Image) Raster {
	bounds := img.Bounds()
	result := New(bounds.Dy(), bounds.Dx())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var v uint16
			switch src := img.(type) {
			case *image.Gray:
				v = uint16(src.GrayAt(x, y).Y)
			case *image.Gray16:
				v = src.Gray16At(x, y).Y
			default:
				v = uint16(color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y)
			}
			result.Pix[(y-bounds.Min.Y)*result.Cols+(x-bounds.Min.X)] = v
		}
	}
	return result
}

// ToMask renders non-zero pixels as 255, zero as 0
func (r Raster) ToMask() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, r.Cols, r.Rows))
	for c, v := range r.Pix {
		if v != 0 {
			img.Pix[c] = 255
		}
	}
	return img
}
