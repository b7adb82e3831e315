// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package projector

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/tfctl/awsctl/internal/driller"
	"github.com/tfctl/awsctl/internal/log"
	"github.com/tfctl/awsctl/internal/operation"
)

// Kind is the form of a selection.
type Kind int

const (
	Whole Kind = iota
	Echo
	Path
)

// Selection is a parsed --select expression.
type Selection struct {
	Kind Kind
	Expr string
	// Param is the echoed parameter for Echo selections.
	Param    string
	segments []driller.Segment
}

// InvalidSelectionError reports a selection that does not fit the operation
// or its response type. It is always raised before any remote call.
type InvalidSelectionError struct {
	Expr   string
	Reason string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid selection %q: %s", e.Expr, e.Reason)
}

// Parse parses a selection expression.
func Parse(expr string) (Selection, error) {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "":
		return Selection{}, &InvalidSelectionError{Expr: expr, Reason: "empty expression"}
	case expr == "*":
		return Selection{Kind: Whole, Expr: expr}, nil
	case strings.HasPrefix(expr, "^"):
		name := strings.TrimPrefix(expr, "^")
		if name == "" {
			return Selection{}, &InvalidSelectionError{Expr: expr, Reason: "missing parameter name"}
		}
		return Selection{Kind: Echo, Expr: expr, Param: name}, nil
	}

	segs, err := driller.ParsePath(expr)
	if err != nil {
		return Selection{}, &InvalidSelectionError{Expr: expr, Reason: err.Error()}
	}
	return Selection{Kind: Path, Expr: expr, segments: segs}, nil
}

// Validate checks s against the operation descriptor and the response type
// of zero, which is typically a nil or empty response pointer. Field names
// are matched case-insensitively; the returned Selection carries the
// canonical spelling.
func (s Selection) Validate(d operation.Descriptor, zero any) (Selection, error) {
	switch s.Kind {
	case Whole:
		return s, nil
	case Echo:
		p, ok := d.Param(s.Param)
		if !ok {
			return s, &InvalidSelectionError{Expr: s.Expr,
				Reason: fmt.Sprintf("%s has no parameter %s", d.CommandName(), s.Param)}
		}
		s.Param = p.Name
		return s, nil
	}

	canon, err := resolve(reflect.TypeOf(zero), s.segments)
	if err != nil {
		return s, &InvalidSelectionError{Expr: s.Expr, Reason: err.Error()}
	}
	s.segments = canon
	s.Expr = driller.JoinPath(canon)
	return s, nil
}

// Project applies s to resp. Whole returns resp unchanged and Echo returns the
// bound parameter value (nil when unbound). Path returns the field value
// decoded from JSON, or nil when an intermediate value is null.
func Project(resp any, s Selection, c *operation.Context) (any, error) {
	switch s.Kind {
	case Whole:
		return resp, nil
	case Echo:
		v, _ := c.Value(s.Param)
		return v, nil
	}

	canon, err := resolve(reflect.TypeOf(resp), s.segments)
	if err != nil {
		return nil, &InvalidSelectionError{Expr: s.Expr, Reason: err.Error()}
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response for selection: %w", err)
	}

	r := driller.Strict(string(raw), canon)
	if !r.Exists() {
		log.Tracef("selection empty: expr=%s", s.Expr)
		return nil, nil
	}
	return r.Value(), nil
}

var timeType = reflect.TypeOf(time.Time{})

// resolve walks t along segs and returns the segments with canonical field
// names. Interface-typed fields end type checking since their shape is only
// known at runtime.
func resolve(t reflect.Type, segs []driller.Segment) ([]driller.Segment, error) {
	if t == nil {
		return nil, fmt.Errorf("unknown response type")
	}

	out := make([]driller.Segment, len(segs))
	copy(out, segs)

	prev := "response"
	for i := range out {
		seg := &out[i]
		t = deref(t)

		for t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
			t = deref(t.Elem())
		}

		switch t.Kind() {
		case reflect.Interface:
			return out, nil
		case reflect.Map:
			t = t.Elem()
		case reflect.Struct:
			if t == timeType {
				return nil, fmt.Errorf("%s is a timestamp and has no fields", prev)
			}
			f, name, ok := field(t, seg.Key)
			if !ok {
				return nil, fmt.Errorf("%s has no field %s", t.Name(), seg.Key)
			}
			seg.Key = name
			t = f.Type
		default:
			return nil, fmt.Errorf("%s is a %s and has no fields", prev, t.Kind())
		}
		prev = seg.Key

		if seg.HasIndex {
			k := deref(t).Kind()
			if k != reflect.Slice && k != reflect.Array {
				return nil, fmt.Errorf("%s is not a list", seg.Key)
			}
			t = deref(t).Elem()
		}
	}
	return out, nil
}

// field finds the exported field matching key by JSON name, case-insensitively.
func field(t reflect.Type, key string) (reflect.StructField, string, bool) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag != "" && tag != "-" {
			name = tag
		}
		if strings.EqualFold(name, key) {
			return f, name, true
		}
	}
	return reflect.StructField{}, "", false
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
