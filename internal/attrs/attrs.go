// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"

	"github.com/tfctl/awsctl/internal/log"
)

// Attr is one output column. Key is a dot path relative to each projected
// row, e.g. "Name" or "State.Name".
type Attr struct {
	Key string `yaml:"key" json:"Key"`
	// Include is false for columns used only to filter or sort.
	Include bool `yaml:"include" json:"Include"`
	// OutputKey names the column in json/yaml rows and text titles.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
	// TransformSpec is a sequence of transform letters and an optional
	// length, e.g. "T", "u", "b" or "-16".
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

// MetadataKey is the SDK response metadata field, never shown as a column.
const MetadataKey = "ResultMetadata"

var lengthRegex = regexp.MustCompile(`-?\d+`)

// Transform applies the transform spec to value.
//
//	t  RFC3339 timestamp in local time
//	T  RFC3339 timestamp as relative time ("3 hours ago")
//	b  number of bytes as a human size ("1.2 MB")
//	l  lower case
//	u  upper case
//	n  truncate to n characters
//	-n shorten to n characters, eliding the middle
func (a *Attr) Transform(value interface{}) interface{} {
	if a.TransformSpec == "" {
		return value
	}

	if n, ok := value.(float64); ok {
		if strings.Contains(a.TransformSpec, "b") && n >= 0 {
			return humanize.Bytes(uint64(n))
		}
		return value
	}

	result, ok := value.(string)
	if !ok {
		log.Tracef("untransformed value: key=%s, type=%T", a.Key, value)
		return value
	}

	if strings.ContainsAny(a.TransformSpec, "tT") {
		result = transformTime(result, strings.Contains(a.TransformSpec, "T"))
	}

	// The last case letter wins so a column spec overrides a global one.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")
	switch {
	case lastL > lastU:
		result = strings.ToLower(result)
	case lastU > lastL:
		result = strings.ToUpper(result)
	}

	// Likewise the last length wins.
	if m := lengthRegex.FindAllString(a.TransformSpec, -1); len(m) != 0 {
		l, _ := strconv.Atoi(m[len(m)-1])
		result = shorten(result, l)
	}

	return result
}

func transformTime(s string, relative bool) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	local := t.In(time.Local)
	if relative {
		return humanize.Time(local)
	}
	return local.Format("2006-01-02T15:04:05MST")
}

func shorten(s string, l int) string {
	abs := int(math.Abs(float64(l)))
	if len(s) <= abs {
		return s
	}
	if l >= 0 {
		return s[:l]
	}
	side := max(abs/2-1, 0)
	return s[:side] + ".." + s[len(s)-side:]
}

// AttrList is the ordered column list.
type AttrList []Attr

// Set parses a --attrs value. Each comma separated entry is
// key[:output[:transform]]. A leading ! keeps the column for filtering and
// sorting but hides it, and * with a transform applies that transform to
// every column. Entries naming an existing column update it in place.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

specloop:
	for _, spec := range strings.Split(value, ",") {
		fields := strings.Split(spec, ":")
		if len(fields) > 3 {
			return fmt.Errorf("invalid attribute spec %q", spec)
		}

		attr := Attr{Include: true}
		attr.Key = strings.TrimPrefix(strings.TrimSpace(fields[0]), ".")
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = strings.TrimPrefix(attr.Key[1:], ".")
		}
		if attr.Key == "" {
			return fmt.Errorf("invalid attribute spec %q: empty key", spec)
		}
		if attr.Key == "*" {
			attr.Include = false
		}

		switch {
		case len(fields) == 1:
			segs := strings.Split(attr.Key, ".")
			attr.OutputKey = segs[len(segs)-1]
		case strings.TrimSpace(fields[1]) == "":
			attr.OutputKey = attr.Key
		default:
			attr.OutputKey = strings.TrimSpace(fields[1])
		}
		if len(fields) == 3 {
			attr.TransformSpec = strings.TrimSpace(fields[2])
		}

		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				continue specloop
			}
		}

		*a = append(*a, attr)
	}
	log.Debugf("attrs parsed: attrs=%s", a.String())

	return nil
}

// SetGlobalTransformSpec prepends the transform of the * entry, if any, to
// every column.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""
	for _, attr := range *a {
		if attr.Key == "*" {
			spec = attr.TransformSpec
			break
		}
	}
	if spec == "" {
		return nil
	}

	for i := range *a {
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}
	return nil
}

// String renders the list in --attrs syntax.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Type returns the flag type for use with the flag.Value interface.
func (a *AttrList) Type() string { return "list" }

// FromRows returns one column per top-level key of rows, in order of first
// appearance. Response metadata is skipped.
func FromRows(rows gjson.Result) AttrList {
	var list AttrList
	seen := map[string]bool{}
	for _, row := range rows.Array() {
		row.ForEach(func(k, _ gjson.Result) bool {
			key := k.String()
			if key != MetadataKey && !seen[key] {
				seen[key] = true
				list = append(list, Attr{Key: key, OutputKey: key, Include: true})
			}
			return true
		})
	}
	return list
}

// Merge returns the columns to render. When user names any visible column,
// user replaces the row-derived base. Otherwise user only hides columns or
// carries a global transform and is overlaid on base.
func Merge(base AttrList, user AttrList) AttrList {
	for _, u := range user {
		if u.Include && u.Key != "*" {
			return user
		}
	}

	out := append(AttrList(nil), base...)
	for _, u := range user {
		if i := out.index(u.Key); i >= 0 {
			out[i].Include = u.Include
			out[i].OutputKey = u.OutputKey
			out[i].TransformSpec = u.TransformSpec
			continue
		}
		out = append(out, u)
	}
	return out
}

func (a AttrList) index(key string) int {
	for i := range a {
		if a[i].Key == key || a[i].OutputKey == key {
			return i
		}
	}
	return -1
}
