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

package batch

import (
	"bytes"
	"image"
	"image/color"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/sectiontrace/core/core/annotation"
	"github.com/sectiontrace/core/core/features"
	"github.com/sectiontrace/core/core/imageedit"
	"github.com/sectiontrace/core/core/raster"
	"github.com/sectiontrace/core/core/utils"
)

// Reconstruct series files, not sections
const seriesExt = ".ser"

const overlayOpacity = 0.5

func (r *Runner) readImage(src string) (image.Image, []byte, error) {
	data, err := r.inFS.ReadObject(r.input.Bucket, src)
	if err != nil {
		return nil, nil, err
	}

	img, err := utils.ReadImage(bytes.NewReader(data))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to decode %v", src)
	}
	return img, data, nil
}

func (r *Runner) writePNG(img image.Image, elem ...string) error {
	data, err := imageedit.GetImageBytes(img, "png")
	if err != nil {
		return err
	}
	dst := r.output.Join(elem...)
	return r.outFS.WriteObject(dst.Bucket, dst.Path, data)
}

// Section document series.12 -> <out>/<label>/12.png for each label, plus
// <out>/image/12.png if the source image was found
func (r *Runner) sectionToLabels(src string) (bool, error) {
	ext := path.Ext(src)
	if ext == seriesExt || len(ext) <= 1 {
		return true, nil
	}
	basename := ext[1:] + ".png"
	if _, ok := utils.SectionNumber(src); !ok {
		r.log.Debugf("%v is not a numbered section, writing %v", src, basename)
	}

	data, err := r.inFS.ReadObject(r.input.Bucket, src)
	if err != nil {
		return false, err
	}

	sourceLoaded := false
	loader := func(imageSrc string) (image.Image, error) {
		img, _, err := r.readImage(path.Join(path.Dir(src), imageSrc))
		sourceLoaded = err == nil
		return img, err
	}

	labels, source, err := annotation.ImportLabelsFromBytes(data, loader, r.log)
	if err != nil {
		return false, err
	}

	if sourceLoaded {
		if err := r.writePNG(source, "image", basename); err != nil {
			return false, err
		}
	}

	names := utils.GetSortedMapKeys(labels)
	for _, name := range names {
		if err := r.writePNG(labels[name].ToMask(), utils.MakeSaveableFileName(name), basename); err != nil {
			return false, err
		}
	}

	if r.cfg.OverlayWidth > 0 {
		overlay := imageedit.OverlayLabels(source, labels, names, labelColours(r.cfg.BorderColors), overlayOpacity)
		if err := r.writePNG(imageedit.ScaleImage(overlay, r.cfg.OverlayWidth), "overlay", basename); err != nil {
			return false, err
		}
	}

	return false, nil
}

// Image 12.png -> <out>/series.12 holding the contours of each label's 12.png. The image
// is copied next to the document so Reconstruct can find it.
func (r *Runner) labelsToSection(src string) (bool, error) {
	index, ok := utils.ImageNumber(src)
	if !ok {
		return true, nil
	}

	img, imgData, err := r.readImage(src)
	if err != nil {
		return false, err
	}

	imageFilename := path.Base(src)
	name := strings.TrimSuffix(imageFilename, path.Ext(imageFilename))

	imageDir := path.Dir(src)
	if r.input.Bucket != r.output.Bucket || path.Clean(imageDir) != path.Clean(r.output.Path) {
		dst := r.output.Join(imageFilename)
		if err := r.outFS.WriteObject(dst.Bucket, dst.Path, imgData); err != nil {
			return false, err
		}
	}

	labels := annotation.Labels{}
	for labelName, labelDir := range r.labelDirs {
		labelPath := path.Join(labelDir, name+".png")
		exists, err := r.inFS.ObjectExists(r.input.Bucket, labelPath)
		if err != nil {
			return false, err
		}
		if !exists {
			continue
		}

		labelImg, _, err := r.readImage(labelPath)
		if err != nil {
			return false, err
		}
		labels[labelName] = raster.FromImage(labelImg)
	}

	bounds := img.Bounds()
	doc, err := annotation.ExportLabels(labels, annotation.ExportParams{
		ImageShape:       [2]int{bounds.Dy(), bounds.Dx()},
		ImageFilename:    imageFilename,
		PixelSize:        r.cfg.PixelSize,
		SectionThickness: r.cfg.SectionThickness,
		SectionIndex:     index,
		Trace: annotation.TraceOptions{
			BorderColors: r.cfg.BorderColors,
			FillColors:   r.cfg.FillColors,
			FillModes:    r.cfg.FillModes,
			Tolerance:    r.cfg.Tolerance,
			Level:        r.cfg.Level,
		},
		DocType: r.cfg.DocType,
	})
	if err != nil {
		return false, err
	}

	if r.validator != nil {
		if err := r.validator.ValidateBytes([]byte(doc)); err != nil {
			return false, err
		}
	}

	dst := r.output.Join("series." + name)
	return false, r.outFS.WriteObject(dst.Bucket, dst.Path, []byte(doc))
}

// Image 12.png -> <out>/12.csv describing its regions
func (r *Runner) imageToFeatures(src string) error {
	img, _, err := r.readImage(src)
	if err != nil {
		return err
	}

	regions := features.Extract(raster.FromImage(img), r.cfg.MinArea)

	var buf bytes.Buffer
	if err := features.WriteCSV(&buf, regions); err != nil {
		return err
	}

	name := strings.TrimSuffix(path.Base(src), path.Ext(src))
	dst := r.output.Join(name + ".csv")
	return r.outFS.WriteObject(dst.Bucket, dst.Path, buf.Bytes())
}

// Border colours are 0-1 RGB, as written into Contours
func labelColours(borderColors map[string][]float64) map[string]color.RGBA {
	result := map[string]color.RGBA{}
	for name, rgb := range borderColors {
		if len(rgb) != 3 {
			continue
		}
		result[name] = color.RGBA{R: unitToByte(rgb[0]), G: unitToByte(rgb[1]), B: unitToByte(rgb[2]), A: 255}
	}
	return result
}

func unitToByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
