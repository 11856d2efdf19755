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
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/sectiontrace/core/core/raster"
)

// Columns written by WriteCSV after the leading row number column
var Columns = []string{"area", "y0", "x0", "orientation", "length", "width", "minr", "minc", "maxr", "maxc"}

// Extract finds the regions of a label image worth registering against: non-zero pixels
// closed with a 3x3 square, regions touching the border dropped, and regions smaller
// than minArea pixels ignored
func Extract(img raster.Raster, minArea int) []Region {
	cleared := ClearBorder(Close(Threshold(img), 3))
	labels, count := Label(cleared)

	result := []Region{}
	for _, reg := range RegionProps(labels, count) {
		if reg.Area >= minArea {
			result = append(result, reg)
		}
	}
	return result
}

// WriteCSV writes one row per region, numbered from 0. The header's first cell is empty.
func WriteCSV(w io.Writer, regions []Region) error {
	out := csv.NewWriter(w)

	if err := out.Write(append([]string{""}, Columns...)); err != nil {
		return err
	}

	for c, reg := range regions {
		row := []string{
			strconv.Itoa(c),
			strconv.Itoa(reg.Area),
			formatFloat(reg.Y0),
			formatFloat(reg.X0),
			formatFloat(reg.Orientation),
			formatFloat(reg.MajorAxisLength),
			formatFloat(reg.MinorAxisLength),
			strconv.Itoa(reg.MinRow),
			strconv.Itoa(reg.MinCol),
			strconv.Itoa(reg.MaxRow),
			strconv.Itoa(reg.MaxCol),
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}

	out.Flush()
	return out.Error()
}

// Whole numbers keep a ".0" so float columns read back as floats
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}
