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

// Package features finds connected regions in label images and describes them (area,
// centroid, orientation, axis lengths, bounding box) so sections can be registered
// against each other.
package features

import "github.com/sectiontrace/core/core/raster"

// Threshold returns 1 where r is non-zero
func Threshold(r raster.Raster) raster.Raster {
	result := raster.New(r.Rows, r.Cols)
	for c, v := range r.Pix {
		if v > 0 {
			result.Pix[c] = 1
		}
	}
	return result
}

// Dilate with a size x size square. Outside the raster the nearest edge pixel is used.
func Dilate(r raster.Raster, size int) raster.Raster {
	return squareFilter(r, size, func(acc, v uint16) uint16 {
		if v > acc {
			return v
		}
		return acc
	}, 0)
}

func Erode(r raster.Raster, size int) raster.Raster {
	return squareFilter(r, size, func(acc, v uint16) uint16 {
		if v < acc {
			return v
		}
		return acc
	}, 0xFFFF)
}

// Close is a dilation followed by an erosion: fills gaps narrower than the square
func Close(r raster.Raster, size int) raster.Raster {
	return Erode(Dilate(r, size), size)
}

func squareFilter(r raster.Raster, size int, combine func(acc, v uint16) uint16, start uint16) raster.Raster {
	result := raster.New(r.Rows, r.Cols)
	half := size / 2

	for row := 0; row < r.Rows; row++ {
		for col := 0; col < r.Cols; col++ {
			acc := start
			for dr := -half; dr < size-half; dr++ {
				for dc := -half; dc < size-half; dc++ {
					acc = combine(acc, r.At(clamp(row+dr, r.Rows), clamp(col+dc, r.Cols)))
				}
			}
			result.Set(row, col, acc)
		}
	}
	return result
}

func clamp(v int, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Label numbers 8-connected non-zero regions 1..n in the order their first pixel is met
// scanning rows top to bottom. Returns the label raster and n.
func Label(r raster.Raster) (raster.Raster, int) {
	result := raster.New(r.Rows, r.Cols)
	count := 0
	stack := []int{}

	for start, v := range r.Pix {
		if v == 0 || result.Pix[start] != 0 {
			continue
		}

		count++
		result.Pix[start] = uint16(count)
		stack = append(stack[:0], start)

		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			row, col := idx/r.Cols, idx%r.Cols

			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					nr, nc := row+dr, col+dc
					if !r.InBounds(nr, nc) {
						continue
					}
					n := nr*r.Cols + nc
					if r.Pix[n] != 0 && result.Pix[n] == 0 {
						result.Pix[n] = uint16(count)
						stack = append(stack, n)
					}
				}
			}
		}
	}

	return result, count
}

// ClearBorder zeroes every 8-connected region touching the edge of the raster
func ClearBorder(r raster.Raster) raster.Raster {
	labels, _ := Label(r)

	touching := map[uint16]bool{}
	for row := 0; row < r.Rows; row++ {
		touching[labels.At(row, 0)] = true
		touching[labels.At(row, r.Cols-1)] = true
	}
	for col := 0; col < r.Cols; col++ {
		touching[labels.At(0, col)] = true
		touching[labels.At(r.Rows-1, col)] = true
	}

	result := raster.New(r.Rows, r.Cols)
	for c, v := range r.Pix {
		if !touching[labels.Pix[c]] {
			result.Pix[c] = v
		}
	}
	return result
}
