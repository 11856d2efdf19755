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

package annotation

import (
	"github.com/sectiontrace/core/core/contourTrace"
	"github.com/sectiontrace/core/core/markup"
	"github.com/sectiontrace/core/core/polygon"
	"github.com/sectiontrace/core/core/sectionModel"
	"github.com/sectiontrace/core/core/utils"
)

// Name Reconstruct gives the outline of the image itself
const ImageContourName = "domain1"

// TraceOptions controls how label masks become contours. Colours and modes are looked
// up by label name, labels not listed get the Contour defaults.
type TraceOptions struct {
	BorderColors map[string][]float64
	FillColors   map[string][]float64
	FillModes    map[string]int

	// Points closer than this (in pixels) to the simplified outline are dropped
	Tolerance float64

	// Outlines are traced where the mask crosses this value
	Level float64
}

func DefaultTraceOptions() TraceOptions {
	return TraceOptions{Tolerance: 5, Level: 0}
}

// TraceLabels outlines every region of every label, returning one closed Contour per
// outline with points in section units. Labels are processed in name order.
func TraceLabels(labels Labels, pixelSize float64, opts TraceOptions) []sectionModel.Contour {
	result := []sectionModel.Contour{}

	for _, name := range utils.GetSortedMapKeys(labels) {
		// Rasters have row 0 at the top, sections have y=0 at the bottom. Flip and swap
		// so traced (row, col) comes out as (x, y)
		traced := labels[name].FlipUD().Transpose().Pad(1)

		for _, outline := range contourTrace.FindContours(traced, opts.Level) {
			points := make([]polygon.Point, len(outline))
			for c, pt := range outline {
				points[c] = polygon.Point{pt[0] - 1, pt[1] - 1}
			}

			points = polygon.Approximate(points, opts.Tolerance)
			if distinctVertices(points) < 3 || polygon.Area(points) <= 0 {
				continue
			}

			scaled := make([][2]float64, len(points))
			for c, pt := range points {
				scaled[c] = [2]float64{pt[0] * pixelSize, pt[1] * pixelSize}
			}

			result = append(result, makeContour(name, scaled, opts))
		}
	}

	return result
}

// Closed outlines repeat their first point, which isn't another vertex
func distinctVertices(points []polygon.Point) int {
	n := len(points)
	if n > 1 && points[0] == points[n-1] {
		n--
	}
	return n
}

func makeContour(name string, points [][2]float64, opts TraceOptions) sectionModel.Contour {
	contour := sectionModel.DefaultContour()
	contour.Name = name
	contour.Hidden = false
	contour.Closed = true
	contour.Simplified = false
	contour.Comment = nil
	contour.Points = points

	if border, ok := opts.BorderColors[name]; ok {
		contour.Border = border
	}
	if fill, ok := opts.FillColors[name]; ok {
		contour.Fill = fill
	}
	if mode, ok := opts.FillModes[name]; ok {
		contour.Mode = mode
	}
	return contour
}

// ExportParams - what ExportLabels needs to know about the annotated image
type ExportParams struct {
	// Rows, cols
	ImageShape       [2]int
	ImageFilename    string
	PixelSize        float64
	SectionThickness float64
	SectionIndex     int
	Trace            TraceOptions

	// Write <!DOCTYPE Section SYSTEM "section.dtd">
	DocType bool
}

// ExportSection builds the Section document for a set of labels
func ExportSection(labels Labels, params ExportParams) sectionModel.SectionDocument {
	rows, cols := float64(params.ImageShape[0]), float64(params.ImageShape[1])

	doc := sectionModel.DefaultSectionDocument()
	doc.Section = sectionModel.Section{
		AlignLocked: false,
		Index:       params.SectionIndex,
		Thickness:   params.SectionThickness,
	}

	doc.Image = sectionModel.Image{
		Mag:        params.PixelSize,
		Contrast:   1,
		Brightness: 0,
		Red:        true,
		Green:      true,
		Blue:       true,
		Src:        params.ImageFilename,
	}

	doc.ImageContour = sectionModel.DefaultContour()
	doc.ImageContour.Name = ImageContourName
	doc.ImageContour.Mode = sectionModel.ModeImageDomain
	doc.ImageContour.Points = [][2]float64{{0, 0}, {cols - 1, 0}, {cols - 1, rows - 1}, {0, rows - 1}}

	doc.Contours = TraceLabels(labels, params.PixelSize, params.Trace)
	return doc
}

// ExportLabels traces the labels and writes them as Section document text
func ExportLabels(labels Labels, params ExportParams) (string, error) {
	doc := ExportSection(labels, params)
	return markup.MappingToText(sectionModel.AssembleSection(doc), markup.SerializeOptions{DocType: params.DocType})
}
