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

// Package polygon has the vector side of the label conversion: filling polygons into
// rasters, simplifying traced outlines and measuring them. Points are (row, col).
package polygon

import (
	"math"
	"sort"

	"github.com/sectiontrace/core/core/raster"
)

// Point - (row, col) or (y, x) depending on caller
type Point = [2]float64

// Fill sets every pixel of r whose centre is inside the polygon to value, returning
// how many pixels were set. Uses the even-odd rule with half-open edges so pixels on
// shared boundaries aren't filled twice. Anything outside r is clipped.
func Fill(r raster.Raster, points []Point, value uint16) int {
	if len(points) < 3 || r.Rows <= 0 || r.Cols <= 0 {
		return 0
	}

	minRow, maxRow := points[0][0], points[0][0]
	for _, pt := range points[1:] {
		minRow = math.Min(minRow, pt[0])
		maxRow = math.Max(maxRow, pt[0])
	}

	startRow := int(math.Max(0, math.Floor(minRow)))
	endRow := int(math.Min(float64(r.Rows-1), math.Ceil(maxRow)))

	filled := 0
	crossings := make([]float64, 0, 8)
	for row := startRow; row <= endRow; row++ {
		y := float64(row)

		crossings = crossings[:0]
		for c := range points {
			p0 := points[c]
			p1 := points[(c+1)%len(points)]

			if (p0[0] <= y && y < p1[0]) || (p1[0] <= y && y < p0[0]) {
				x := p0[1] + (y-p0[0])*(p1[1]-p0[1])/(p1[0]-p0[0])
				crossings = append(crossings, x)
			}
		}
		sort.Float64s(crossings)

		for c := 0; c+1 < len(crossings); c += 2 {
			startCol := int(math.Max(0, math.Ceil(crossings[c])))
			endCol := int(math.Min(float64(r.Cols-1), math.Ceil(crossings[c+1])-1))

			for col := startCol; col <= endCol; col++ {
				r.Set(row, col, value)
				filled++
			}
		}
	}
	return filled
}

// Approximate simplifies a polyline with Douglas-Peucker: points deviating from the
// chord by no more than tolerance are dropped. First and last points are always kept,
// so a closed outline (first == last) stays closed.
func Approximate(points []Point, tolerance float64) []Point {
	if len(points) <= 2 {
		return append([]Point{}, points...)
	}

	keep := make([]bool, len(points))
	keep[0] = true
	keep[len(points)-1] = true

	type span struct{ start, end int }
	stack := []span{{0, len(points) - 1}}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		maxDist := -1.0
		maxIdx := -1
		for c := s.start + 1; c < s.end; c++ {
			d := segmentDistance(points[c], points[s.start], points[s.end])
			if d > maxDist {
				maxDist = d
				maxIdx = c
			}
		}

		if maxIdx >= 0 && maxDist > tolerance {
			keep[maxIdx] = true
			stack = append(stack, span{maxIdx, s.end}, span{s.start, maxIdx})
		}
	}

	result := []Point{}
	for c, pt := range points {
		if keep[c] {
			result = append(result, pt)
		}
	}
	return result
}

// Distance of p from the segment a-b: perpendicular distance when p projects onto the
// segment, otherwise distance to the nearer end
func segmentDistance(p Point, a Point, b Point) float64 {
	dr := b[0] - a[0]
	dc := b[1] - a[1]

	dr0 := p[0] - a[0]
	dc0 := p[1] - a[1]
	dr1 := p[0] - b[0]
	dc1 := p[1] - b[1]

	if dr0*dr+dc0*dc > 0 && -dr1*dr-dc1*dc > 0 {
		return math.Abs(dr*dc0-dc*dr0) / math.Hypot(dr, dc)
	}
	return math.Min(math.Hypot(dr0, dc0), math.Hypot(dr1, dc1))
}

// Area of the polygon (shoelace), always positive. A repeated closing point is fine.
func Area(points []Point) float64 {
	sum := 0.0
	for c := range points {
		p0 := points[c]
		p1 := points[(c+1)%len(points)]
		sum += p0[1]*p1[0] - p1[1]*p0[0]
	}
	return math.Abs(sum) / 2
}

// Box - integer bounds, inclusive
type Box struct {
	MinRow int
	MinCol int
	MaxRow int
	MaxCol int
}

// BoundingBox of the points, coordinates truncated to int
func BoundingBox(points []Point) Box {
	if len(points) <= 0 {
		return Box{}
	}

	box := Box{MinRow: int(points[0][0]), MinCol: int(points[0][1]), MaxRow: int(points[0][0]), MaxCol: int(points[0][1])}
	for _, pt := range points[1:] {
		row, col := int(pt[0]), int(pt[1])
		if row < box.MinRow {
			box.MinRow = row
		}
		if row > box.MaxRow {
			box.MaxRow = row
		}
		if col < box.MinCol {
			box.MinCol = col
		}
		if col > box.MaxCol {
			box.MaxCol = col
		}
	}
	return box
}
