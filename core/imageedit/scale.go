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

package imageedit

import (
	"image"

	"golang.org/x/image/draw"
)

// ScaleImage resizes to newWidth keeping the aspect ratio. Returns img unchanged if
// newWidth isn't positive or already matches.
func ScaleImage(img image.Image, newWidth int) image.Image {
	bounds := img.Bounds()
	if newWidth <= 0 || newWidth == bounds.Dx() || bounds.Dx() <= 0 {
		return img
	}

	h := bounds.Dy() * newWidth / bounds.Dx()
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, h))
	draw.ApproxBiLinear.Scale(dst, dst.Rect, img, bounds, draw.Over, nil)

	return dst
}
