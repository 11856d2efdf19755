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

// Package contourTrace finds iso-valued outlines in a raster with marching squares.
// Points are (row, col), fractional along the pixel grid.
package contourTrace

import (
	"math"
	"sort"

	"github.com/sectiontrace/core/core/raster"
)

type point = [2]float64

type segment struct {
	from point
	to   point
}

// Contour - an outline, closed ones repeat their first point at the end
type Contour [][2]float64

func (c Contour) Closed() bool {
	return len(c) > 1 && c[0] == c[len(c)-1]
}

// FindContours traces the boundaries between pixels above level and those at or below
// it. Segments are oriented so the high side is consistently on one hand, and saddle
// squares keep diagonal high pixels apart. Contours are returned in the order their first
// segment was found scanning row by row. Anything touching the raster edge is left
// open, pad the raster first to close them.
func FindContours(r raster.Raster, level float64) []Contour {
	return assemble(squareSegments(r, level))
}

func interpolate(v0 float64, v1 float64, level float64) float64 {
	if v1 == v0 {
		return 0
	}
	return (level - v0) / (v1 - v0)
}

func squareSegments(r raster.Raster, level float64) []segment {
	segments := []segment{}

	for r0 := 0; r0 < r.Rows-1; r0++ {
		for c0 := 0; c0 < r.Cols-1; c0++ {
			r1, c1 := r0+1, c0+1

			ul := float64(r.At(r0, c0))
			ur := float64(r.At(r0, c1))
			ll := float64(r.At(r1, c0))
			lr := float64(r.At(r1, c1))

			squareCase := 0
			if ul > level {
				squareCase |= 1
			}
			if ur > level {
				squareCase |= 2
			}
			if ll > level {
				squareCase |= 4
			}
			if lr > level {
				squareCase |= 8
			}

			if squareCase == 0 || squareCase == 15 {
				continue
			}

			top := point{float64(r0), float64(c0) + interpolate(ul, ur, level)}
			bottom := point{float64(r1), float64(c0) + interpolate(ll, lr, level)}
			left := point{float64(r0) + interpolate(ul, ll, level), float64(c0)}
			right := point{float64(r0) + interpolate(ur, lr, level), float64(c1)}

			switch squareCase {
			case 1:
				segments = append(segments, segment{top, left})
			case 2:
				segments = append(segments, segment{right, top})
			case 3:
				segments = append(segments, segment{right, left})
			case 4:
				segments = append(segments, segment{left, bottom})
			case 5:
				segments = append(segments, segment{top, bottom})
			case 6:
				// ur and ll high, kept separate
				segments = append(segments, segment{right, top}, segment{left, bottom})
			case 7:
				segments = append(segments, segment{right, bottom})
			case 8:
				segments = append(segments, segment{bottom, right})
			case 9:
				// ul and lr high, kept separate
				segments = append(segments, segment{top, left}, segment{bottom, right})
			case 10:
				segments = append(segments, segment{bottom, top})
			case 11:
				segments = append(segments, segment{bottom, left})
			case 12:
				segments = append(segments, segment{left, right})
			case 13:
				segments = append(segments, segment{top, right})
			case 14:
				segments = append(segments, segment{left, top})
			}
		}
	}

	return segments
}

type chain struct {
	id     int
	points []point
}

// Joins oriented segments end to start into polylines
func assemble(segments []segment) []Contour {
	starts := map[point]*chain{}
	ends := map[point]*chain{}
	live := map[int]*chain{}
	nextID := 0

	for _, seg := range segments {
		if seg.from == seg.to || math.IsNaN(seg.from[0]) || math.IsNaN(seg.to[0]) {
			continue
		}

		tail, hasTail := starts[seg.to]
		if hasTail {
			delete(starts, seg.to)
		}
		head, hasHead := ends[seg.from]
		if hasHead {
			delete(ends, seg.from)
		}

		switch {
		case hasTail && hasHead:
			if tail == head {
				// Closes the loop
				head.points = append(head.points, seg.to)
			} else if tail.id > head.id {
				head.points = append(head.points, tail.points...)
				delete(live, tail.id)
				ends[head.points[len(head.points)-1]] = head
			} else {
				tail.points = append(append([]point{}, head.points...), tail.points...)
				delete(live, head.id)
				starts[tail.points[0]] = tail
			}
		case hasTail:
			tail.points = append([]point{seg.from}, tail.points...)
			starts[seg.from] = tail
		case hasHead:
			head.points = append(head.points, seg.to)
			ends[seg.to] = head
		default:
			c := &chain{id: nextID, points: []point{seg.from, seg.to}}
			nextID++
			starts[seg.from] = c
			ends[seg.to] = c
			live[c.id] = c
		}
	}

	ids := make([]int, 0, len(live))
	for id := range live {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	result := make([]Contour, 0, len(ids))
	for _, id := range ids {
		result = append(result, Contour(live[id].points))
	}
	return result
}
