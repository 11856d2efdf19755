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
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/sectiontrace/core/core/logger"
	"github.com/sectiontrace/core/core/markup"
	"github.com/stretchr/testify/assert"
)

// As written by Reconstruct, including its trailing commas in points
const sampleSection = `<?xml version="1.0"?>
<!DOCTYPE Section SYSTEM "section.dtd">

<Section index="74" thickness="0.05" alignLocked="true">
<Transform dim="0"
 xcoef=" 0 1 0 0 0 0"
 ycoef=" 0 0 1 0 0 0">
<Image mag="0.00254" contrast="1" brightness="0" red="true" green="true" blue="true"
 src="74.tif" />
<Contour name="domain1" hidden="false" closed="true" simplified="false" border="1 0 1" fill="1 0 1" mode="11"
 points="0 0,
	3 0,
	3 2,
	0 2,
	"/>
</Transform>

<Transform dim="0"
 xcoef=" 0 1 0 0 0 0"
 ycoef=" 0 0 1 0 0 0">
<Contour name="d01" hidden="false" closed="true" simplified="true" border="1 0.5 0" fill="1 0.5 0" mode="9"
 points="1.5 1, 2 1.5, 1 1.5, "/>
</Transform>

</Section>
`

func parseSection(t *testing.T, text string) markup.Mapping {
	m, err := markup.TextToMapping([]byte(text))
	assert.NoError(t, err)
	return m
}

func Example_extractSection() {
	m, err := markup.TextToMapping([]byte(sampleSection))
	fmt.Printf("%v\n", err)

	doc, err := ExtractSection(m, nil)
	fmt.Printf("%v\n", err)
	fmt.Printf("%+v\n", doc.Section)
	fmt.Printf("%v %v %q %v\n", doc.Image.Src, doc.Image.Mag, *doc.Image.ProxySrc, *doc.Image.ProxyScale)
	fmt.Printf("%v %v %v\n", doc.ImageContour.Name, doc.ImageContour.Mode, doc.ImageContour.Points)
	fmt.Printf("%v %v\n", doc.ImageTransform.Dim, doc.ContoursTransform.YCoef)
	for _, c := range doc.Contours {
		fmt.Printf("%v %v %v %v\n", c.Name, c.Simplified, c.Border, c.Points)
	}
	fmt.Printf("%+v\n", doc.Layout)

	// Output:
	// <nil>
	// <nil>
	// {AlignLocked:true Index:74 Thickness:0.05}
	// 74.tif 0.00254 "" 1
	// domain1 11 [[0 0] [3 0] [3 2] [0 2]]
	// 0 [0 0 1 0 0 0]
	// d01 true [1 0.5 0] [[1.5 1] [2 1.5] [1 1.5]]
	// {ImageTransform:0 ContoursTransform:1}
}

func Example_assembleSection() {
	doc := DefaultSectionDocument()
	doc.Section.Index = 3
	doc.Image = Image{Mag: 0.5, Contrast: 1, Red: true, Green: true, Blue: true, Src: "3.png"}
	doc.ImageContour = Contour{
		Name:   "domain1",
		Closed: true,
		Border: []float64{1, 0, 1},
		Fill:   []float64{1, 0, 1},
		Mode:   ModeImageDomain,
		Points: [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	}
	doc.Contours = []Contour{
		{
			Name:   "a",
			Closed: true,
			Border: []float64{1, 0, 0},
			Fill:   []float64{1, 0, 0},
			Mode:   ModeSelected,
			Points: [][2]float64{{0.5, 0.5}, {1, 0.5}, {1, 1}},
		},
	}

	text, err := markup.MappingToText(AssembleSection(doc), markup.SerializeOptions{})
	fmt.Printf("%v\n", err)
	fmt.Println(strings.ReplaceAll(text, "\t", "  "))

	// Output:
	// <nil>
	// <?xml version="1.0"?>
	// <Section alignLocked="false" index="3" thickness="0.05">
	//   <Transform dim="0" xcoef="0 1 0 0 0 0" ycoef="0 0 1 0 0 0">
	//     <Image mag="0.5" contrast="1" brightness="0" red="true" green="true" blue="true" src="3.png"/>
	//     <Contour name="domain1" hidden="false" closed="true" simplified="false" border="1 0 1" fill="1 0 1" mode="11" points="0 0, 1 0, 1 1, 0 1"/>
	//   </Transform>
	//   <Transform dim="0" xcoef="0 1 0 0 0 0" ycoef="0 0 1 0 0 0">
	//     <Contour name="a" hidden="false" closed="true" simplified="false" border="1 0 0" fill="1 0 0" mode="9" points="0.5 0.5, 1 0.5, 1 1"/>
	//   </Transform>
	// </Section>
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, Section{AlignLocked: false, Index: -1, Thickness: 0.05}, DefaultSection())

	img := DefaultImage()
	assert.Equal(t, 1.0, img.Mag)
	assert.Equal(t, "", *img.ProxySrc)
	assert.Equal(t, 1.0, *img.ProxyScale)

	c := DefaultContour()
	assert.Equal(t, "unknown", c.Name)
	assert.True(t, c.Closed)
	assert.False(t, c.Simplified)
	assert.Equal(t, 9, c.Mode)
	assert.Nil(t, c.Comment)
	assert.Nil(t, c.Points)

	// Absent optionals aren't written
	assert.Equal(t, []string{"@name", "@hidden", "@closed", "@simplified", "@border", "@fill", "@mode"}, c.Attributes().Keys())
}

func TestExtractFallbacks(t *testing.T) {
	const transform = `<Transform dim="0" xcoef="0 1 0 0 0 0" ycoef="0 0 1 0 0 0">`
	const image = `<Image mag="0.1" src="x.png"/><Contour name="domain1" points="0 0, 9 0, 9 9, 0 9"/>`
	const contours = `<Contour name="a" points="1 1, 2 1, 2 2"/><Contour name="b" points="3 3, 4 3, 4 4"/>`

	cases := []struct {
		name           string
		text           string
		layout         Layout
		contourNames   []string
		imageSrc       string
		unusedElements bool
	}{
		{"bare", `<Section/>`, Layout{-1, -1}, []string{}, "", false},
		{"no transforms", `<Section index="2"/>`, Layout{-1, -1}, []string{}, "", false},
		{"contours only", `<Section>` + transform + contours + `</Transform></Section>`, Layout{-1, 0}, []string{"a", "b"}, "", false},
		{"image only", `<Section>` + transform + image + `</Transform></Section>`, Layout{0, -1}, []string{}, "x.png", false},
		{"image without contour", `<Section>` + transform + `<Image src="x.png"/></Transform></Section>`, Layout{-1, -1}, []string{}, "", true},
		{"both", `<Section>` + transform + image + `</Transform>` + transform + contours + `</Transform></Section>`, Layout{0, 1}, []string{"a", "b"}, "x.png", false},
		{"empty contours transform", `<Section>` + transform + image + `</Transform>` + transform + `</Transform></Section>`, Layout{0, -1}, []string{}, "x.png", true},
		{"text contour", `<Section>` + transform + `<Contour>hi</Contour></Transform></Section>`, Layout{-1, -1}, []string{}, "", true},
		{"extra transforms", `<Section>` + transform + contours + `</Transform>` + transform + contours + `</Transform></Section>`, Layout{-1, 0}, []string{"a", "b"}, "", true},
	}

	for _, c := range cases {
		ilog := &logger.MemLogger{}
		doc, err := ExtractSection(parseSection(t, c.text), ilog)
		assert.NoError(t, err, c.name)
		assert.Equal(t, c.layout, doc.Layout, c.name)
		assert.Equal(t, c.imageSrc, doc.Image.Src, c.name)

		names := []string{}
		for _, contour := range doc.Contours {
			names = append(names, contour.Name)
		}
		assert.Equal(t, c.contourNames, names, c.name)

		if doc.Layout.ImageTransform < 0 {
			assert.Equal(t, DefaultImage(), doc.Image, c.name)
			assert.Equal(t, DefaultContour(), doc.ImageContour, c.name)
			assert.Equal(t, DefaultTransform(), doc.ImageTransform, c.name)
		}
		if doc.Layout.ContoursTransform < 0 {
			assert.Equal(t, DefaultTransform(), doc.ContoursTransform, c.name)
		}

		ignored := false
		for _, line := range ilog.Lines() {
			if strings.Contains(line, "Ignoring") {
				ignored = true
			}
		}
		assert.Equal(t, c.unusedElements, ignored, c.name)
	}
}

func TestExtractErrors(t *testing.T) {
	_, err := ExtractSection(parseSection(t, `<Series index="1"/>`), nil)
	assert.True(t, errors.Is(err, ErrNotSection))

	_, err = ExtractSection(markup.Mapping{}, nil)
	assert.True(t, errors.Is(err, ErrNotSection))

	_, err = ExtractSection(parseSection(t, `<Section index="abc"/>`), nil)
	assert.True(t, errors.Is(err, ErrInvalidAttribute))

	_, err = ExtractSection(parseSection(t, `<Section><Transform><Image red="yes"/><Contour/></Transform></Section>`), nil)
	assert.True(t, errors.Is(err, ErrInvalidAttribute))
	assert.Contains(t, err.Error(), "Image")

	_, err = ExtractSection(parseSection(t, `<Section><Transform><Contour name="a"/><Contour mode="x"/></Transform></Section>`), nil)
	assert.True(t, errors.Is(err, ErrInvalidAttribute))
	assert.Contains(t, err.Error(), "Contour 1")

	// Mistyped declared values are fatal even where the layout would otherwise default
	_, err = ExtractSection(parseSection(t, `<Section><Transform dim="0"><Image/><Contour/></Transform><Transform dim="0"><Contour name="a" mode="fill"/></Transform></Section>`), nil)
	assert.True(t, errors.Is(err, ErrInvalidAttribute))
	assert.Contains(t, err.Error(), "Transform 1")
}

func TestExtractFlagsDivergentAttributes(t *testing.T) {
	ilog := &logger.MemLogger{}
	doc, err := ExtractSection(parseSection(t, sampleSection), ilog)
	assert.NoError(t, err)
	for _, line := range ilog.Lines() {
		assert.NotContains(t, line, "shape suggests")
	}

	text := `<Section index="3"><Transform dim="0"><Contour name="12" points="1 1, 2 1, 2 2"/><Contour name="a" points="4 5"/></Transform></Section>`
	ilog = &logger.MemLogger{}
	doc, err = ExtractSection(parseSection(t, text), ilog)
	assert.NoError(t, err)
	assert.Equal(t, "12", doc.Contours[0].Name)
	assert.Equal(t, [][2]float64{{4, 5}}, doc.Contours[1].Points)

	flagged := []string{}
	for _, line := range ilog.Lines() {
		if strings.Contains(line, "shape suggests") {
			flagged = append(flagged, line)
		}
	}
	assert.Equal(t, []string{
		`INFO: Contour: name="12" read as declared string, its shape suggests int`,
		`INFO: Contour: points="4 5" read as declared point list, its shape suggests []float64`,
	}, flagged)
}

func TestAssembleExtractRoundTrip(t *testing.T) {
	m := parseSection(t, sampleSection)
	doc, err := ExtractSection(m, nil)
	assert.NoError(t, err)

	text, err := markup.MappingToText(AssembleSection(doc), markup.SerializeOptions{DocType: true})
	assert.NoError(t, err)
	assert.True(t, strings.Contains(text, `<!DOCTYPE Section SYSTEM "section.dtd">`))

	back, err := ExtractSection(parseSection(t, text), nil)
	assert.NoError(t, err)
	assert.Equal(t, doc, back)
}
