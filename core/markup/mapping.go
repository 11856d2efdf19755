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

// Package markup converts between an XML element tree and a nested, ordered
// mapping that is easier to pick apart than the tree itself. Attributes become
// "@name" keys, mixed text becomes "#text", and every child tag becomes a list of
// bodies, even when the tag only appears once.
package markup

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// ErrMalformedMapping is returned when a Mapping can't be turned back into markup
var ErrMalformedMapping = errors.New("malformed mapping")

const (
	attributePrefix = "@"
	textKey         = "#text"
)

// Entry - one key/value pair of a Mapping body
type Entry struct {
	Key   string
	Value interface{}
}

// Mapping - an ordered body. Values are one of:
//   - string: leaf text
//   - Mapping: a nested body
//   - []interface{}: the bodies of repeated children sharing the key as their tag
//   - nil: an empty element
//
// Order matters: the grammars we write to are sensitive to child element order.
type Mapping []Entry

// Get returns the value stored under key
func (m Mapping) Get(key string) (interface{}, bool) {
	if idx := m.index(key); idx >= 0 {
		return m[idx].Value, true
	}
	return nil, false
}

// Set replaces the value under key, or appends it if the key is new
func (m *Mapping) Set(key string, value interface{}) {
	if idx := m.index(key); idx >= 0 {
		(*m)[idx].Value = value
		return
	}
	*m = append(*m, Entry{Key: key, Value: value})
}

// Keys returns the keys in order
func (m Mapping) Keys() []string {
	result := make([]string, 0, len(m))
	for _, e := range m {
		result = append(result, e.Key)
	}
	return result
}

// Attr returns the string value of attribute name (without the @ prefix)
func (m Mapping) Attr(name string) (string, bool) {
	v, ok := m.Get(attributePrefix + name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Attributes returns the attribute entries with the @ prefix removed, in order
func (m Mapping) Attributes() []Entry {
	result := []Entry{}
	for _, e := range m {
		if strings.HasPrefix(e.Key, attributePrefix) {
			result = append(result, Entry{Key: e.Key[len(attributePrefix):], Value: e.Value})
		}
	}
	return result
}

// SetAttr stores an attribute value
func (m *Mapping) SetAttr(name string, value string) {
	m.Set(attributePrefix+name, value)
}

// Children returns the list of bodies stored for child tag, if present
func (m Mapping) Children(tag string) ([]interface{}, bool) {
	v, ok := m.Get(tag)
	if !ok {
		return nil, false
	}
	switch list := v.(type) {
	case []interface{}:
		return list, true
	case []Mapping:
		result := make([]interface{}, len(list))
		for c, item := range list {
			result[c] = item
		}
		return result, true
	}
	return nil, false
}

// Child returns the idx'th body of child tag. A child with no attributes or children
// has a nil body, which is returned as an empty Mapping.
func (m Mapping) Child(tag string, idx int) (Mapping, bool) {
	list, ok := m.Children(tag)
	if !ok || idx < 0 || idx >= len(list) {
		return nil, false
	}
	switch body := list[idx].(type) {
	case Mapping:
		return body, true
	case nil:
		return Mapping{}, true
	}
	return nil, false
}

func (m Mapping) index(key string) int {
	for c, e := range m {
		if e.Key == key {
			return c
		}
	}
	return -1
}

// ToMapping converts an element (and everything below it) into a single-key Mapping
// holding the element's tag and body
func ToMapping(el *etree.Element) Mapping {
	return Mapping{{Key: el.FullTag(), Value: elementBody(el)}}
}

func elementBody(el *etree.Element) interface{} {
	children := el.ChildElements()
	hasBody := len(el.Attr) > 0 || len(children) > 0

	body := Mapping{}
	for _, attr := range el.Attr {
		body = append(body, Entry{Key: attributePrefix + attr.FullKey(), Value: attr.Value})
	}

	for _, child := range children {
		tag := child.FullTag()
		idx := body.index(tag)
		if idx < 0 {
			body = append(body, Entry{Key: tag, Value: []interface{}{}})
			idx = len(body) - 1
		}
		body[idx].Value = append(body[idx].Value.([]interface{}), elementBody(child))
	}

	text, hasText := leadingText(el)
	text = strings.TrimSpace(text)

	if hasBody {
		if len(text) > 0 {
			body = append(body, Entry{Key: textKey, Value: text})
		}
		return body
	}

	// Leaf element: collapses to its text, or nothing at all
	if hasText {
		return text
	}
	return nil
}

// leadingText returns the character data before the first child element
func leadingText(el *etree.Element) (string, bool) {
	var sb strings.Builder
	found := false
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.Element:
			return sb.String(), found
		case *etree.CharData:
			sb.WriteString(t.Data)
			found = true
		}
	}
	return sb.String(), found
}

// FromMapping rebuilds an element tree from a Mapping with exactly one root key.
// Nothing is returned if any part of the mapping is malformed.
func FromMapping(m Mapping) (*etree.Element, error) {
	if len(m) != 1 {
		return nil, errors.Wrapf(ErrMalformedMapping, "expected exactly one root key, got %v", len(m))
	}

	tag := m[0].Key
	if len(tag) <= 0 || strings.HasPrefix(tag, attributePrefix) || strings.HasPrefix(tag, "#") {
		return nil, errors.Wrapf(ErrMalformedMapping, "invalid root tag: %q", tag)
	}

	root := etree.NewElement(tag)
	if err := fillElement(root, m[0].Value, tag); err != nil {
		return nil, err
	}
	return root, nil
}

func fillElement(el *etree.Element, body interface{}, path string) error {
	switch v := body.(type) {
	case nil:
		return nil
	case string:
		if len(v) > 0 {
			el.SetText(v)
		}
		return nil
	case Mapping:
		for _, e := range v {
			if err := fillEntry(el, e, path); err != nil {
				return err
			}
		}
		return nil
	}

	return errors.Wrapf(ErrMalformedMapping, "%v: invalid type %T", path, body)
}

func fillEntry(el *etree.Element, e Entry, path string) error {
	if len(e.Key) <= 0 {
		return errors.Wrapf(ErrMalformedMapping, "%v: empty key", path)
	}

	if strings.HasPrefix(e.Key, "#") {
		text, ok := e.Value.(string)
		if e.Key != textKey || !ok {
			return errors.Wrapf(ErrMalformedMapping, "%v: %v must be %v holding a string, got %T", path, e.Key, textKey, e.Value)
		}
		el.SetText(text)
		return nil
	}

	if strings.HasPrefix(e.Key, attributePrefix) {
		value, ok := e.Value.(string)
		if !ok {
			return errors.Wrapf(ErrMalformedMapping, "%v: attribute %v must be a string, got %T", path, e.Key, e.Value)
		}
		el.CreateAttr(e.Key[len(attributePrefix):], value)
		return nil
	}

	childPath := path + "/" + e.Key
	switch list := e.Value.(type) {
	case []interface{}:
		for _, item := range list {
			if err := fillElement(el.CreateElement(e.Key), item, childPath); err != nil {
				return err
			}
		}
		return nil
	case []Mapping:
		for _, item := range list {
			if err := fillElement(el.CreateElement(e.Key), item, childPath); err != nil {
				return err
			}
		}
		return nil
	}

	return fillElement(el.CreateElement(e.Key), e.Value, childPath)
}
