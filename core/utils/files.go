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

// Exposes various utility functions for file names, reading/writing images and
// generic slice/map helpers
package utils

import (
	"path/filepath"
	"strconv"
	"strings"
)

// MakeSaveableFileName - Given a label name which may not be acceptable as a file or
// directory name, generate one that won't have issues. Path separators and other odd
// characters become _
func MakeSaveableFileName(name string) string {
	var sb strings.Builder
	for _, ch := range name {
		if ch >= 'a' && ch <= 'z' ||
			ch >= 'A' && ch <= 'Z' ||
			ch >= '0' && ch <= '9' ||
			ch == ' ' ||
			ch == '-' ||
			ch == '_' ||
			ch == '(' ||
			ch == ')' ||
			ch == '.' {
			sb.WriteRune(ch)
		} else {
			sb.WriteRune('_')
		}
	}

	result := sb.String()
	if result == "." || result == ".." || len(result) <= 0 {
		result = strings.Repeat("_", len(result)+1)
	}
	return result
}

// SectionNumber returns the number of a Reconstruct section file, series.12 -> 12
func SectionNumber(path string) (int, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if len(ext) <= 0 {
		return 0, false
	}
	return parseDigits(ext)
}

// ImageNumber returns the number of an image file named by its section, 12.png -> 12
func ImageNumber(path string) (int, bool) {
	base := filepath.Base(path)
	return parseDigits(strings.TrimSuffix(base, filepath.Ext(base)))
}

func parseDigits(s string) (int, bool) {
	if len(s) <= 0 {
		return 0, false
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}
