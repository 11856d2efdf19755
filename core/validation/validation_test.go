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

package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/sectiontrace/core/core/annotation"
	"github.com/sectiontrace/core/core/raster"
	"github.com/stretchr/testify/assert"
)

func exportedSection(t *testing.T, labels annotation.Labels) string {
	doc, err := annotation.ExportLabels(labels, annotation.ExportParams{
		ImageShape:       [2]int{20, 30},
		ImageFilename:    "74.png",
		PixelSize:        0.05,
		SectionThickness: 0.03,
		SectionIndex:     74,
		Trace:            annotation.DefaultTraceOptions(),
	})
	assert.NoError(t, err)
	return doc
}

func Example_validateExported() {
	v, err := NewSectionValidator()
	fmt.Println(err)

	label := raster.New(20, 30)
	for row := 5; row < 15; row++ {
		for col := 8; col < 20; col++ {
			label.Set(row, col, 255)
		}
	}

	doc, _ := annotation.ExportLabels(annotation.Labels{"dendrite": label}, annotation.ExportParams{
		ImageShape:    [2]int{20, 30},
		ImageFilename: "74.png",
		PixelSize:     0.05,
		SectionIndex:  74,
		Trace:         annotation.DefaultTraceOptions(),
	})

	fmt.Println(v.ValidateBytes([]byte(doc)))

	// Output:
	// <nil>
	// <nil>
}

func TestValidateNoContours(t *testing.T) {
	v, err := NewSectionValidator()
	assert.NoError(t, err)

	// Contours transform ends up empty
	assert.NoError(t, v.Validate(strings.NewReader(exportedSection(t, annotation.Labels{}))))
}

func TestValidateInvalid(t *testing.T) {
	v, err := NewSectionValidator()
	assert.NoError(t, err)

	docs := map[string]string{
		"image without outline": `<?xml version="1.0"?>
<Section index="1"><Transform dim="0"><Image mag="1"/></Transform></Section>`,
		"no transform": `<?xml version="1.0"?>
<Section index="1"></Section>`,
		"two images": `<?xml version="1.0"?>
<Section><Transform><Image/><Contour/><Image/></Transform></Section>`,
		"bad boolean": `<?xml version="1.0"?>
<Section alignLocked="maybe"><Transform><Contour name="a"/></Transform></Section>`,
		"bad index": `<?xml version="1.0"?>
<Section index="first"><Transform><Contour name="a"/></Transform></Section>`,
		"wrong root": `<?xml version="1.0"?>
<Series index="1"/>`,
		"contour children": `<?xml version="1.0"?>
<Section><Transform><Contour name="a"><Contour/></Contour></Transform></Section>`,
	}

	for name, doc := range docs {
		err := v.ValidateBytes([]byte(doc))
		assert.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrInvalidDocument), name)
		assert.NotEmpty(t, Problems(err), name)
	}
}

func TestLoadValidator(t *testing.T) {
	schema, err := schemaFS.ReadFile(sectionSchemaName)
	assert.NoError(t, err)

	path := filepath.Join(t.TempDir(), "section.xsd")
	assert.NoError(t, os.WriteFile(path, schema, 0644))

	v, err := LoadValidator(path)
	assert.NoError(t, err)
	assert.NoError(t, v.ValidateBytes([]byte(exportedSection(t, annotation.Labels{}))))

	_, err = LoadValidator(filepath.Join(t.TempDir(), "missing.xsd"))
	assert.Error(t, err)
}

func TestProblems(t *testing.T) {
	assert.Equal(t, []string{}, Problems(nil))
	assert.Equal(t, []string{"plain"}, Problems(errors.New("plain")))
}
