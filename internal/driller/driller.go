// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Segment is one dotted component of a path, optionally indexed.
type Segment struct {
	Key      string
	HasIndex bool
	// All is set for [*]; otherwise Index holds the element position.
	All   bool
	Index int
}

func (s Segment) String() string {
	switch {
	case s.All:
		return s.Key + "[*]"
	case s.HasIndex:
		return fmt.Sprintf("%s[%d]", s.Key, s.Index)
	default:
		return s.Key
	}
}

var segmentRegex = regexp.MustCompile(`^([a-zA-Z0-9_:/-]+)(\[(\d+|\*)\])?$`)

// ParsePath splits a dotted path such as "Reservations[0].Instances" into
// segments.
func ParsePath(path string) ([]Segment, error) {
	if path == "" {
		return nil, fmt.Errorf("empty path")
	}

	parts := strings.Split(path, ".")
	segs := make([]Segment, 0, len(parts))
	for _, p := range parts {
		m := segmentRegex.FindStringSubmatch(p)
		if m == nil {
			return nil, fmt.Errorf("invalid path segment %q in %q", p, path)
		}
		seg := Segment{Key: m[1]}
		switch m[3] {
		case "":
		case "*":
			seg.HasIndex, seg.All = true, true
		default:
			i, err := strconv.Atoi(m[3])
			if err != nil {
				return nil, fmt.Errorf("invalid index in %q: %w", p, err)
			}
			seg.HasIndex, seg.Index = true, i
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// JoinPath is the inverse of ParsePath.
func JoinPath(segs []Segment) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

// Driller navigates JSON using a flexible dot path supporting arrays. A
// single-element array met without an index is unwrapped to its element,
// which keeps column paths short for table output.
func Driller(jsonData string, path string) gjson.Result {
	segs, err := ParsePath(path)
	if err != nil {
		return gjson.Result{}
	}
	return walk(gjson.Parse(jsonData), segs, true)
}

// Strict navigates JSON without unwrapping. A key segment applied to an array
// is mapped over its elements, as is [*]. The result does not exist when a
// key is missing or an intermediate value is null.
func Strict(jsonData string, segs []Segment) gjson.Result {
	return walk(gjson.Parse(jsonData), segs, false)
}

func walk(current gjson.Result, segs []Segment, unwrap bool) gjson.Result {
	if len(segs) == 0 {
		return current
	}

	if current.IsArray() && !unwrap {
		return fanOut(current, segs, unwrap)
	}

	seg := segs[0]
	if !current.IsObject() {
		return gjson.Result{}
	}
	val := current.Get(seg.Key)
	if !val.Exists() {
		return gjson.Result{}
	}

	switch {
	case seg.All:
		if !val.IsArray() {
			return gjson.Result{}
		}
		return fanOut(val, segs[1:], unwrap)
	case seg.HasIndex:
		if !val.IsArray() {
			return gjson.Result{}
		}
		arr := val.Array()
		if seg.Index >= len(arr) {
			return gjson.Result{}
		}
		val = arr[seg.Index]
	case unwrap && val.IsArray():
		if arr := val.Array(); len(arr) == 1 {
			val = arr[0]
		}
	}

	return walk(val, segs[1:], unwrap)
}

// fanOut applies the remaining segments to every element of arr and gathers
// the elements that resolve into a new array.
func fanOut(arr gjson.Result, segs []Segment, unwrap bool) gjson.Result {
	var raws []string
	for _, elem := range arr.Array() {
		if r := walk(elem, segs, unwrap); r.Exists() {
			raws = append(raws, r.Raw)
		}
	}
	return gjson.Parse("[" + strings.Join(raws, ",") + "]")
}
