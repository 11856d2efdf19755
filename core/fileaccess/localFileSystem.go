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

package fileaccess

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FSAccess - FileAccess on the local file system. An empty root means paths are
// relative to the working directory.
type FSAccess struct {
}

// ListObjects walks the directory the prefix is in, so like S3 the prefix can end
// part way through a file name
func (fsa *FSAccess) ListObjects(root string, prefix string) ([]string, error) {
	result := []string{}

	fullPrefix := fsa.filePath(root, prefix)
	walkFrom := fullPrefix
	if !strings.HasSuffix(prefix, "/") && len(prefix) > 0 {
		walkFrom = filepath.Dir(fullPrefix)
	}
	if len(prefix) <= 0 {
		fullPrefix = ""
	}
	if len(walkFrom) <= 0 {
		walkFrom = "."
	}

	err := filepath.WalkDir(walkFrom, func(pathFound string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasPrefix(pathFound, fullPrefix) {
			return nil
		}

		toSave := pathFound
		if len(root) > 0 {
			if toSave, err = filepath.Rel(root, pathFound); err != nil {
				return err
			}
		}
		result = append(result, filepath.ToSlash(toSave))
		return nil
	})

	if fsa.IsNotFoundError(err) {
		// Nothing listed, same as S3 with an unmatched prefix
		return result, nil
	}
	return result, err
}

func (fsa *FSAccess) ObjectExists(root string, path string) (bool, error) {
	info, err := os.Stat(fsa.filePath(root, path))
	if err == nil {
		return !info.IsDir(), nil
	}
	if fsa.IsNotFoundError(err) {
		return false, nil
	}
	return false, err
}

func (fsa *FSAccess) ReadObject(root string, path string) ([]byte, error) {
	return os.ReadFile(fsa.filePath(root, path))
}

// WriteObject creates any directories needed, and truncates existing files
func (fsa *FSAccess) WriteObject(root string, path string, data []byte) error {
	fullPath := fsa.filePath(root, path)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0777); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0666)
}

func (fsa *FSAccess) IsNotFoundError(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func (fsa *FSAccess) filePath(root string, path string) string {
	return filepath.Join(root, filepath.FromSlash(path))
}
