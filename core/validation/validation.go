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

// Package validation checks Section documents against an XML schema of the structure
// Reconstruct reads: Section > Transform+ > ((Image, Contour) | Contour*)
package validation

import (
	"bytes"
	"embed"
	"io"

	"github.com/jacoelho/xsd"
	xsderrors "github.com/jacoelho/xsd/errors"
	"github.com/pkg/errors"
)

const sectionSchemaName = "section.xsd"

//go:embed section.xsd
var schemaFS embed.FS

var ErrInvalidDocument = errors.New("document does not match schema")

type Validator struct {
	schema *xsd.Schema
}

// NewSectionValidator - validator for the built in Section schema
func NewSectionValidator() (*Validator, error) {
	schema, err := xsd.Load(schemaFS, sectionSchemaName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load built in section schema")
	}
	return &Validator{schema: schema}, nil
}

// LoadValidator - validator for a schema file on disk
func LoadValidator(schemaPath string) (*Validator, error) {
	schema, err := xsd.LoadFile(schemaPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load schema %v", schemaPath)
	}
	return &Validator{schema: schema}, nil
}

// Validate returns an error wrapping ErrInvalidDocument if the document doesn't match.
// Use Problems() to list what's wrong.
func (v *Validator) Validate(r io.Reader) error {
	err := v.schema.Validate(r)
	if err == nil {
		return nil
	}
	return &invalidError{cause: err}
}

func (v *Validator) ValidateBytes(doc []byte) error {
	return v.Validate(bytes.NewReader(doc))
}

// Problems lists each schema violation in err, or just err's message if it's some other error
func Problems(err error) []string {
	if err == nil {
		return []string{}
	}

	violations, ok := xsderrors.AsValidations(err)
	if !ok {
		return []string{err.Error()}
	}

	result := make([]string, 0, len(violations))
	for c := range violations {
		result = append(result, violations[c].Error())
	}
	return result
}

type invalidError struct {
	cause error
}

func (e *invalidError) Error() string {
	return ErrInvalidDocument.Error() + ": " + e.cause.Error()
}

func (e *invalidError) Unwrap() []error {
	return []error{ErrInvalidDocument, e.cause}
}
