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

package utils

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	_ "image/jpeg"

	// Reconstruct series images are usually TIFF or BMP
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ReadImage decodes any registered format: png, jpeg, gif, tiff, bmp
func ReadImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return img, nil
}

func ReadImageFile(path string) (image.Image, error) {
	imgbytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	img, err := ReadImage(bytes.NewReader(imgbytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %v: %v", path, err)
	}
	return img, nil
}

// WritePNGImageFile writes img to pathPrefix, adding .png if needed
func WritePNGImageFile(pathPrefix string, img image.Image) error {
	fileName := pathPrefix
	if !strings.HasSuffix(fileName, ".png") {
		fileName += ".png"
	}

	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
