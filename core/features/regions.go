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
	"math"

	"github.com/sectiontrace/core/core/raster"
)

// Region describes one labelled region. Rows are y, columns x.
type Region struct {
	Label int
	Area  int

	// Centroid as row, col
	Y0, X0 float64

	// Angle between the row axis and the major axis, -pi/2 to pi/2
	Orientation float64

	// Of the ellipse with the same second moments
	MajorAxisLength float64
	MinorAxisLength float64

	// Bounding box, max is exclusive
	MinRow, MinCol, MaxRow, MaxCol int
}

// RegionProps measures regions 1..count of a label raster
func RegionProps(labels raster.Raster, count int) []Region {
	if count <= 0 {
		return []Region{}
	}

	regions := make([]Region, count)
	sumR := make([]float64, count)
	sumC := make([]float64, count)
	for c := range regions {
		regions[c] = Region{Label: c + 1, MinRow: labels.Rows, MinCol: labels.Cols}
	}

	for idx, v := range labels.Pix {
		if v == 0 || int(v) > count {
			continue
		}
		reg := &regions[v-1]
		row, col := idx/labels.Cols, idx%labels.Cols

		reg.Area++
		sumR[v-1] += float64(row)
		sumC[v-1] += float64(col)

		reg.MinRow = min(reg.MinRow, row)
		reg.MinCol = min(reg.MinCol, col)
		reg.MaxRow = max(reg.MaxRow, row+1)
		reg.MaxCol = max(reg.MaxCol, col+1)
	}

	// Central moments, needs the centroids first
	mu20 := make([]float64, count)
	mu02 := make([]float64, count)
	mu11 := make([]float64, count)
	for c := range regions {
		if regions[c].Area > 0 {
			regions[c].Y0 = sumR[c] / float64(regions[c].Area)
			regions[c].X0 = sumC[c] / float64(regions[c].Area)
		}
	}
	for idx, v := range labels.Pix {
		if v == 0 || int(v) > count {
			continue
		}
		dr := float64(idx/labels.Cols) - regions[v-1].Y0
		dc := float64(idx%labels.Cols) - regions[v-1].X0
		mu20[v-1] += dr * dr
		mu02[v-1] += dc * dc
		mu11[v-1] += dr * dc
	}

	result := make([]Region, 0, count)
	for c := range regions {
		reg := regions[c]
		if reg.Area <= 0 {
			continue
		}

		n := float64(reg.Area)
		setShape(&reg, mu20[c]/n, mu02[c]/n, mu11[c]/n)
		result = append(result, reg)
	}
	return result
}

// Inertia tensor is [[colVar, -cov], [-cov, rowVar]]
func setShape(reg *Region, rowVar float64, colVar float64, cov float64) {
	a, b, c := colVar, -cov, rowVar

	if a-c == 0 {
		if b < 0 {
			reg.Orientation = -math.Pi / 4
		} else {
			reg.Orientation = math.Pi / 4
		}
	} else {
		reg.Orientation = 0.5 * math.Atan2(-2*b, c-a)
	}

	mid := (a + c) / 2
	spread := math.Sqrt(((a-c)/2)*((a-c)/2) + b*b)
	reg.MajorAxisLength = 4 * math.Sqrt(math.Max(mid+spread, 0))
	reg.MinorAxisLength = 4 * math.Sqrt(math.Max(mid-spread, 0))
}
