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

package markup

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

// ErrNoRoot is returned when parsing a document without a root element
var ErrNoRoot = errors.New("document has no root element")

// Parse reads a document and returns its root element. Older Reconstruct files
// declare Latin-1/Windows-1252 encodings, so those are decoded too.
func Parse(data []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader

	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, "failed to parse document")
	}

	root := doc.Root()
	if root == nil {
		return nil, ErrNoRoot
	}
	return root, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "utf-8", "utf8", "us-ascii", "ascii":
		return input, nil
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	}
	return nil, fmt.Errorf("unsupported document encoding: %v", label)
}

// SerializeOptions controls the text produced by Serialize
type SerializeOptions struct {
	// DocType emits <!DOCTYPE root SYSTEM "..."> after the XML declaration
	DocType bool

	// SystemID overrides the DOCTYPE system identifier. Defaults to the lower-cased
	// root tag + ".dtd", eg section.dtd
	SystemID string
}

// Serialize pretty-prints the element as a full document, indenting with tabs.
// The element passed in is copied, not rebound to the new document.
func Serialize(root *etree.Element, opts SerializeOptions) (string, error) {
	if root == nil {
		return "", ErrNoRoot
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0"`)

	if opts.DocType {
		doc.CreateDirective(docTypeDeclaration(root.Tag, opts.SystemID))
	}

	doc.SetRoot(root.Copy())
	doc.IndentTabs()

	return doc.WriteToString()
}

// docTypeDeclaration returns the body of a DOCTYPE directive (without <! and >)
func docTypeDeclaration(rootTag string, systemID string) string {
	if len(systemID) <= 0 {
		systemID = strings.ToLower(rootTag) + ".dtd"
	}
	return fmt.Sprintf("DOCTYPE %v SYSTEM \"%v\"", rootTag, systemID)
}

// MappingToText is the export tail of the pipeline: mapping -> element -> text
func MappingToText(m Mapping, opts SerializeOptions) (string, error) {
	root, err := FromMapping(m)
	if err != nil {
		return "", err
	}
	return Serialize(root, opts)
}

// TextToMapping is the import head of the pipeline: text -> element -> mapping
func TextToMapping(data []byte) (Mapping, error) {
	root, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return ToMapping(root), nil
}
