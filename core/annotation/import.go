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

// Package annotation converts between per-label raster masks and Reconstruct Section
// documents: contours are filled into rasters on import, and rasters are traced back
// into contours on export.
package annotation

import (
	"image"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sectiontrace/core/core/logger"
	"github.com/sectiontrace/core/core/markup"
	"github.com/sectiontrace/core/core/polygon"
	"github.com/sectiontrace/core/core/raster"
	"github.com/sectiontrace/core/core/sectionModel"
	"github.com/sectiontrace/core/core/utils"
)

var ErrUnsupportedTransform = errors.New("only identity transforms (dim 0) are supported")
var ErrImageNotAtOrigin = errors.New("image outline does not start at the origin")
var ErrShapeMismatch = errors.New("source image shape does not match image outline")

// Labels - one mask per label name, all the same shape as the annotated image
type Labels map[string]raster.Raster

// ImageLoader reads the image named by a Section's Image src
type ImageLoader func(src string) (image.Image, error)

type ImportOptions struct {
	// Reads the source image, defaults to reading src next to the document
	ImageLoader ImageLoader
	Logger      logger.ILogger
}

// ImportLabels reads a Section file and rasterises its contours. Also returns the source
// image if it's next to the document, otherwise a blank image of the same shape.
func ImportLabels(documentPath string, opts ImportOptions) (Labels, image.Image, error) {
	data, err := os.ReadFile(documentPath)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read %v", documentPath)
	}

	loader := opts.ImageLoader
	if loader == nil {
		dir := filepath.Dir(documentPath)
		loader = func(src string) (image.Image, error) {
			return utils.ReadImageFile(filepath.Join(dir, src))
		}
	}

	labels, img, err := ImportLabelsFromBytes(data, loader, opts.Logger)
	if err != nil {
		return nil, nil, errors.Wrap(err, documentPath)
	}
	return labels, img, nil
}

// ImportLabelsFromBytes is ImportLabels for a document already in memory. imageLoader
// may be nil, in which case the blank image is always returned.
func ImportLabelsFromBytes(data []byte, imageLoader ImageLoader, ilog logger.ILogger) (Labels, image.Image, error) {
	ilog = logger.OrNull(ilog)

	m, err := markup.TextToMapping(data)
	if err != nil {
		return nil, nil, err
	}

	doc, err := sectionModel.ExtractSection(m, ilog)
	if err != nil {
		return nil, nil, err
	}

	if doc.ImageTransform.Dim != 0 || doc.ContoursTransform.Dim != 0 {
		return nil, nil, errors.Wrapf(ErrUnsupportedTransform, "image transform dim: %v, contours transform dim: %v", doc.ImageTransform.Dim, doc.ContoursTransform.Dim)
	}

	if doc.Image.Mag <= 0 {
		return nil, nil, errors.Wrapf(sectionModel.ErrInvalidAttribute, "image mag must be positive, got %v", doc.Image.Mag)
	}

	if len(doc.ImageContour.Points) <= 0 {
		return nil, nil, errors.Wrap(ErrImageNotAtOrigin, "no image outline")
	}

	// Image outline is in pixels, as (x, y)
	box := polygon.BoundingBox(swapAxes(doc.ImageContour.Points))
	if box.MinRow != 0 || box.MinCol != 0 {
		return nil, nil, errors.Wrapf(ErrImageNotAtOrigin, "outline starts at x=%v, y=%v", box.MinCol, box.MinRow)
	}

	rows, cols := box.MaxRow+1, box.MaxCol+1
	source := loadSourceImage(doc.Image.Src, imageLoader, ilog)
	if source == nil {
		source = image.NewGray(image.Rect(0, 0, cols, rows))
	} else if source.Bounds().Dx() != cols || source.Bounds().Dy() != rows {
		return nil, nil, errors.Wrapf(ErrShapeMismatch, "%v is %vx%v, outline is %vx%v", doc.Image.Src, source.Bounds().Dy(), source.Bounds().Dx(), rows, cols)
	}

	labels := Labels{}
	for _, contour := range doc.Contours {
		if len(contour.Points) <= 0 {
			ilog.Debugf("Contour %v has no points, skipped", contour.Name)
			continue
		}

		label, ok := labels[contour.Name]
		if !ok {
			label = raster.New(rows, cols)
			labels[contour.Name] = label
		}

		polygon.Fill(label, sectionToPixel(contour.Points, doc.Image.Mag, box.MaxRow), 1)
	}

	ilog.Debugf("Imported %v labels from %v contours, %vx%v", len(labels), len(doc.Contours), rows, cols)
	return labels, source, nil
}

// Returns nil if there's no readable image, it's optional
func loadSourceImage(src string, loader ImageLoader, ilog logger.ILogger) image.Image {
	if len(src) <= 0 || loader == nil {
		return nil
	}

	img, err := loader(src)
	if err != nil {
		ilog.Infof("Source image %v not loaded, using blank image: %v", src, err)
		return nil
	}
	return img
}

// Section coordinates have y going up from the bottom of the image
func sectionToPixel(points [][2]float64, mag float64, maxRow int) []polygon.Point {
	result := make([]polygon.Point, len(points))
	for c, pt := range points {
		result[c] = polygon.Point{float64(maxRow) - pt[1]/mag, pt[0] / mag}
	}
	return result
}

func swapAxes(points [][2]float64) []polygon.Point {
	result := make([]polygon.Point, len(points))
	for c, pt := range points {
		result[c] = polygon.Point{pt[1], pt[0]}
	}
	return result
}
