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

package sectionModel

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sectiontrace/core/core/logger"
	"github.com/sectiontrace/core/core/markup"
)

// ErrNotSection is returned when the document root isn't a Section element
var ErrNotSection = errors.New("document root is not a Section")

const (
	SectionTag   = "Section"
	TransformTag = "Transform"
	ImageTag     = "Image"
	ContourTag   = "Contour"
)

// Layout records which Transform element each part of a SectionDocument was read
// from, -1 meaning it wasn't found and defaults were used
type Layout struct {
	ImageTransform    int
	ContoursTransform int
}

// SectionDocument - everything we read from or write to a Section file. The first
// Transform holds the image and its outline, the second holds the drawn contours.
type SectionDocument struct {
	Section           Section
	Image             Image
	ImageContour      Contour
	ImageTransform    Transform
	Contours          []Contour
	ContoursTransform Transform
	Layout            Layout
}

// DefaultSectionDocument - what ExtractSection returns for a bare <Section/>
func DefaultSectionDocument() SectionDocument {
	return SectionDocument{
		Section:           DefaultSection(),
		Image:             DefaultImage(),
		ImageContour:      DefaultContour(),
		ImageTransform:    DefaultTransform(),
		Contours:          []Contour{},
		ContoursTransform: DefaultTransform(),
		Layout:            Layout{ImageTransform: -1, ContoursTransform: -1},
	}
}

// A way of reading one Transform element. match returns false if the element doesn't
// have the expected layout, in which case doc is left alone and defaults stand.
type transformInterpretation struct {
	name   string
	match  func(transform markup.Mapping, doc *SectionDocument, ilog logger.ILogger) (bool, error)
	record func(layout *Layout, idx int)
}

// Tried in order, each against the first Transform not yet consumed
var transformInterpretations = []transformInterpretation{
	{
		name:   "image",
		match:  matchImageTransform,
		record: func(layout *Layout, idx int) { layout.ImageTransform = idx },
	},
	{
		name:   "contours",
		match:  matchContoursTransform,
		record: func(layout *Layout, idx int) { layout.ContoursTransform = idx },
	},
}

// ExtractSection reads the typed records out of a Section mapping. Documents that don't
// follow the expected Transform layout aren't an error, the missing parts are defaulted.
// Attribute values that can't be read as their declared type are.
func ExtractSection(m markup.Mapping, ilog logger.ILogger) (SectionDocument, error) {
	ilog = logger.OrNull(ilog)
	doc := DefaultSectionDocument()

	rootValue, ok := m.Get(SectionTag)
	if !ok || len(m) != 1 {
		return doc, errors.Wrapf(ErrNotSection, "root keys: %v", strings.Join(m.Keys(), ","))
	}

	root := markup.Mapping{}
	switch body := rootValue.(type) {
	case markup.Mapping:
		root = body
	case nil:
	case string:
		// <Section>text</Section>, nothing to read
	default:
		return doc, errors.Wrapf(ErrNotSection, "unexpected section body %T", rootValue)
	}

	section, unknown, err := SectionFromAttributes(root)
	if err != nil {
		return doc, errors.Wrap(err, SectionTag)
	}
	logAttributes(ilog, SectionTag, root, unknown)
	doc.Section = section

	transforms, _ := root.Children(TransformTag)

	next := 0
	for _, interp := range transformInterpretations {
		matched := false
		if next < len(transforms) {
			transform, ok := root.Child(TransformTag, next)
			if ok {
				matched, err = interp.match(transform, &doc, ilog)
				if err != nil {
					return doc, errors.Wrapf(err, "%v %v", TransformTag, next)
				}
			}
		}

		if matched {
			interp.record(&doc.Layout, next)
			next++
		} else {
			ilog.Debugf("No %v transform found, using defaults", interp.name)
		}
	}

	if next < len(transforms) {
		ilog.Infof("Ignoring %v unrecognised %v element(s)", len(transforms)-next, TransformTag)
	}

	return doc, nil
}

func matchImageTransform(transform markup.Mapping, doc *SectionDocument, ilog logger.ILogger) (bool, error) {
	imageBody, ok := transform.Child(ImageTag, 0)
	if !ok {
		return false, nil
	}
	contourBody, ok := transform.Child(ContourTag, 0)
	if !ok {
		return false, nil
	}

	t, unknown, err := TransformFromAttributes(transform)
	if err != nil {
		return false, err
	}
	logAttributes(ilog, TransformTag, transform, unknown)

	img, unknown, err := ImageFromAttributes(imageBody)
	if err != nil {
		return false, errors.Wrap(err, ImageTag)
	}
	logAttributes(ilog, ImageTag, imageBody, unknown)

	contour, unknown, err := ContourFromAttributes(contourBody)
	if err != nil {
		return false, errors.Wrap(err, ContourTag)
	}
	logAttributes(ilog, ContourTag, contourBody, unknown)

	doc.ImageTransform = t
	doc.Image = img
	doc.ImageContour = contour
	return true, nil
}

func matchContoursTransform(transform markup.Mapping, doc *SectionDocument, ilog logger.ILogger) (bool, error) {
	list, ok := transform.Children(ContourTag)
	if !ok {
		return false, nil
	}

	contours := make([]Contour, 0, len(list))
	for c := range list {
		body, ok := transform.Child(ContourTag, c)
		if !ok {
			return false, nil
		}

		contour, unknown, err := ContourFromAttributes(body)
		if err != nil {
			return false, errors.Wrapf(err, "%v %v", ContourTag, c)
		}
		logAttributes(ilog, ContourTag, body, unknown)
		contours = append(contours, contour)
	}

	t, unknown, err := TransformFromAttributes(transform)
	if err != nil {
		return false, err
	}
	logAttributes(ilog, TransformTag, transform, unknown)

	doc.ContoursTransform = t
	doc.Contours = contours
	return true, nil
}

// Unknown attributes are only worth a debug line. Values whose shape suggests a different
// type than the one declared for them are flagged, the declared type is what's used.
func logAttributes(ilog logger.ILogger, tag string, body markup.Mapping, unknown []string) {
	if len(unknown) > 0 {
		ilog.Debugf("%v: ignoring unknown attributes: %v", tag, strings.Join(unknown, ","))
	}

	for _, attr := range body.Attributes() {
		str, ok := attr.Value.(string)
		if ok && Divergence(attr.Key, str) {
			kind, _ := KindOf(attr.Key)
			ilog.Infof("%v: %v=%q read as declared %v, its shape suggests %T", tag, attr.Key, str, kind, SniffAttribute(str))
		}
	}
}

// AssembleSection builds the Section mapping for doc. The result always has two
// Transform elements, the image one first.
func AssembleSection(doc SectionDocument) markup.Mapping {
	imageTransform := doc.ImageTransform.Attributes()
	imageTransform.Set(ImageTag, []interface{}{doc.Image.Attributes()})
	imageTransform.Set(ContourTag, []interface{}{doc.ImageContour.Attributes()})

	contours := make([]interface{}, 0, len(doc.Contours))
	for _, contour := range doc.Contours {
		contours = append(contours, contour.Attributes())
	}

	contoursTransform := doc.ContoursTransform.Attributes()
	contoursTransform.Set(ContourTag, contours)

	section := doc.Section.Attributes()
	section.Set(TransformTag, []interface{}{imageTransform, contoursTransform})

	return markup.Mapping{{Key: SectionTag, Value: section}}
}
