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

// Package fileaccess lets converters read and write objects without caring whether they
// live on the local file system or in S3. Paths are given as a root (a directory, or an
// S3 bucket) plus a path within it.
package fileaccess

import (
	"path"
	"strings"
)

type FileAccess interface {
	// ListObjects returns paths (relative to root) of all objects whose path starts with prefix
	ListObjects(root string, prefix string) ([]string, error)

	ObjectExists(root string, path string) (bool, error)
	ReadObject(root string, path string) ([]byte, error)
	WriteObject(root string, path string, data []byte) error

	IsNotFoundError(err error) bool
}

// MatchObjects lists objects matching a glob pattern in the style of path.Match. Only
// the part of the pattern before the first wildcard is used to list, the rest filters.
func MatchObjects(fa FileAccess, root string, pattern string) ([]string, error) {
	prefix := pattern
	if pos := strings.IndexAny(pattern, "*?[\\"); pos >= 0 {
		prefix = pattern[0:pos]
	}

	listed, err := fa.ListObjects(root, prefix)
	if err != nil {
		return nil, err
	}

	result := []string{}
	for _, item := range listed {
		if ok, err := path.Match(pattern, item); err != nil {
			return nil, err
		} else if ok {
			result = append(result, item)
		}
	}
	return result, nil
}
