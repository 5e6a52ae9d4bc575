package tree

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/iptecharch/iosxr-driver/conversion"
)

// Package tree turns NETCONF reply documents into generic node values and
// provides the accessors the normalizers are built on.
//
// A node is one of:
//   - map[string]interface{} : an element with child elements
//   - []interface{}          : repeated sibling elements with the same tag
//   - string                 : a leaf (element text)
//
// The wire format does not distinguish "exactly one" from "a list of one":
// a YANG list with a single entry decodes to a map, the same list with two
// entries decodes to a []interface{}. Sequence is the single coercion point
// for that ambiguity and has to be applied on each collection's own value,
// never on a sibling's.

// FromElement decodes an etree element into a generic node value.
func FromElement(e *etree.Element) interface{} {
	children := e.ChildElements()
	if len(children) == 0 {
		return strings.TrimSpace(e.Text())
	}
	m := make(map[string]interface{}, len(children))
	for _, ce := range children {
		cv := FromElement(ce)
		prev, ok := m[ce.Tag]
		if !ok {
			m[ce.Tag] = cv
			continue
		}
		// repeated tag, grow (or start) the list
		if lst, ok := prev.([]interface{}); ok {
			m[ce.Tag] = append(lst, cv)
			continue
		}
		m[ce.Tag] = []interface{}{prev, cv}
	}
	return m
}

// Find descends into n along the dot separated path and returns the value
// found there, or nil. When an intermediate step lands on a list, descent
// continues into its first element.
func Find(n interface{}, path string) interface{} {
	if path == "" {
		return n
	}
	cur := n
	for _, step := range strings.Split(path, ".") {
		if lst, ok := cur.([]interface{}); ok {
			if len(lst) == 0 {
				return nil
			}
			cur = lst[0]
		}
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur, ok = m[step]
		if !ok {
			return nil
		}
	}
	return cur
}

// Text returns the leaf at path as a string, or def when it is absent or not
// a terminal value.
func Text(n interface{}, path, def string) string {
	return conversion.ToString(Find(n, path), def)
}

// Sequence coerces v into an ordered collection: nil yields an empty slice,
// a list is returned as is and any other value becomes a one element slice.
func Sequence(v interface{}) []interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case []interface{}:
		return val
	default:
		return []interface{}{val}
	}
}
