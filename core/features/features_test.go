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

package features

import (
	"bytes"
	"fmt"
	"math"
	"testing"

	"github.com/sectiontrace/core/core/raster"
	"github.com/stretchr/testify/assert"
)

func fillBlock(r raster.Raster, r0 int, c0 int, r1 int, c1 int, value uint16) {
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			r.Set(row, col, value)
		}
	}
}

// A horizontal line, a blob on the right edge and a speck
func sampleImage() raster.Raster {
	img := raster.New(12, 12)
	fillBlock(img, 4, 2, 4, 8, 255)
	fillBlock(img, 0, 10, 2, 11, 255)
	img.Set(8, 5, 255)
	return img
}

func Example_writeCSV() {
	regions := Extract(sampleImage(), 5)

	var buf bytes.Buffer
	fmt.Println(WriteCSV(&buf, regions))
	fmt.Print(buf.String())

	buf.Reset()
	fmt.Println(WriteCSV(&buf, Extract(raster.New(5, 5), 10)))
	fmt.Print(buf.String())

	// Output:
	// <nil>
	// ,area,y0,x0,orientation,length,width,minr,minc,maxr,maxc
	// 0,7,4.0,5.0,1.5707963267948966,8.0,0.0,4,2,5,9
	// <nil>
	// ,area,y0,x0,orientation,length,width,minr,minc,maxr,maxc
}

func Example_label() {
	img := raster.New(5, 6)
	img.Set(0, 0, 1)
	img.Set(1, 1, 1) // Diagonal neighbour of the first
	fillBlock(img, 3, 3, 4, 5, 7)
	img.Set(0, 5, 2)

	labels, count := Label(img)
	fmt.Println(count)
	for row := 0; row < labels.Rows; row++ {
		fmt.Println(labels.Pix[row*labels.Cols : (row+1)*labels.Cols])
	}

	cleared := ClearBorder(img)
	_, count = Label(cleared)
	fmt.Println(count, cleared.Count())

	// Output:
	// 3
	// [1 0 0 0 0 2]
	// [0 1 0 0 0 0]
	// [0 0 0 0 0 0]
	// [0 0 0 3 3 3]
	// [0 0 0 3 3 3]
	// 0 0
}

func TestClose(t *testing.T) {
	img := raster.New(5, 9)
	for _, col := range []int{2, 3, 5, 6} {
		img.Set(2, col, 1)
	}

	closed := Close(img, 3)
	for col := 2; col <= 6; col++ {
		assert.Equal(t, uint16(1), closed.At(2, col), "col %v", col)
	}
	assert.Equal(t, 5, closed.Count())

	assert.Equal(t, 21, Dilate(img, 3).Count())
	assert.Equal(t, uint16(0), Erode(img, 3).At(2, 3))
}

func TestRegionProps(t *testing.T) {
	img := raster.New(10, 10)
	fillBlock(img, 2, 3, 4, 6, 1) // 3 rows x 4 cols
	fillBlock(img, 6, 6, 8, 8, 1) // 3x3 square

	labels, count := Label(img)
	assert.Equal(t, 2, count)

	regions := RegionProps(labels, count)
	assert.Equal(t, 2, len(regions))

	block := regions[0]
	assert.Equal(t, 12, block.Area)
	assert.Equal(t, 3.0, block.Y0)
	assert.Equal(t, 4.5, block.X0)
	assert.InDelta(t, math.Pi/2, block.Orientation, 1e-12)
	assert.InDelta(t, 4*math.Sqrt(1.25), block.MajorAxisLength, 1e-12)
	assert.InDelta(t, 4*math.Sqrt(2.0/3), block.MinorAxisLength, 1e-12)
	assert.Equal(t, []int{2, 3, 5, 7}, []int{block.MinRow, block.MinCol, block.MaxRow, block.MaxCol})

	square := regions[1]
	assert.Equal(t, 9, square.Area)
	assert.Equal(t, 7.0, square.Y0)
	assert.Equal(t, 7.0, square.X0)
	assert.InDelta(t, math.Pi/4, square.Orientation, 1e-12)
	assert.InDelta(t, square.MajorAxisLength, square.MinorAxisLength, 1e-12)

	assert.Empty(t, RegionProps(labels, 0))
}

func TestExtractMinArea(t *testing.T) {
	img := sampleImage()
	assert.Equal(t, 1, len(Extract(img, 7)))
	assert.Equal(t, 0, len(Extract(img, 8)))

	// Speck survives closing but is too small for the default
	assert.Equal(t, 2, len(Extract(img, 1)))
}
