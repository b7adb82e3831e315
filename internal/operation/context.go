// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package operation

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
)

// Context holds the parameter values bound for one invocation. Values are
// keyed by canonical parameter name and stored with the Go type matching the
// declared ParamType: string, int64, bool, []string or map[string]string.
type Context struct {
	desc   Descriptor
	values map[string]any
}

// NewContext returns an empty Context for d.
func NewContext(d Descriptor) *Context {
	return &Context{desc: d, values: map[string]any{}}
}

// Descriptor returns the descriptor the Context was created for.
func (c *Context) Descriptor() Descriptor {
	return c.desc
}

// Set binds value to the parameter called name (or one of its aliases).
func (c *Context) Set(name string, value any) error {
	p, ok := c.desc.Param(name)
	if !ok {
		return fmt.Errorf("%s: unknown parameter %s", c.desc.CommandName(), name)
	}
	v, err := coerce(p, value)
	if err != nil {
		return fmt.Errorf("%s: %w", c.desc.CommandName(), err)
	}
	c.values[p.Name] = v
	return nil
}

// Bound reports whether name has a value.
func (c *Context) Bound(name string) bool {
	p, ok := c.desc.Param(name)
	if !ok {
		return false
	}
	_, ok = c.values[p.Name]
	return ok
}

// AnyBound reports whether at least one of names has a value.
func (c *Context) AnyBound(names ...string) bool {
	for _, n := range names {
		if c.Bound(n) {
			return true
		}
	}
	return false
}

// Value returns the raw bound value of name.
func (c *Context) Value(name string) (any, bool) {
	p, ok := c.desc.Param(name)
	if !ok {
		return nil, false
	}
	v, ok := c.values[p.Name]
	return v, ok
}

// Names returns the bound parameter names in sorted order.
func (c *Context) Names() []string {
	return slices.Sorted(maps.Keys(c.values))
}

// Values returns a copy of the bound values.
func (c *Context) Values() map[string]any {
	return maps.Clone(c.values)
}

// Redacted returns a copy of the bound values with sensitive parameters
// masked.
func (c *Context) Redacted() map[string]any {
	out := c.Values()
	for _, p := range c.desc.Params {
		if _, ok := out[p.Name]; ok && p.Sensitive {
			out[p.Name] = "******"
		}
	}
	return out
}

// String returns a pointer to the bound string value, or nil.
func (c *Context) String(name string) *string {
	if v, ok := c.Value(name); ok {
		if s, ok := v.(string); ok {
			return &s
		}
	}
	return nil
}

// StringValue returns the bound string value, or "".
func (c *Context) StringValue(name string) string {
	if s := c.String(name); s != nil {
		return *s
	}
	return ""
}

// Int64 returns a pointer to the bound int value, or nil.
func (c *Context) Int64(name string) *int64 {
	if v, ok := c.Value(name); ok {
		if n, ok := v.(int64); ok {
			return &n
		}
	}
	return nil
}

// Int32 returns a pointer to the bound int value narrowed to int32, or nil.
// A value outside the int32 range is an error.
func (c *Context) Int32(name string) (*int32, error) {
	n := c.Int64(name)
	if n == nil {
		return nil, nil
	}
	if *n < math.MinInt32 || *n > math.MaxInt32 {
		return nil, fmt.Errorf("parameter %s: %d is out of range for int32", name, *n)
	}
	v := int32(*n)
	return &v, nil
}

// Bool returns a pointer to the bound bool value, or nil.
func (c *Context) Bool(name string) *bool {
	if v, ok := c.Value(name); ok {
		if b, ok := v.(bool); ok {
			return &b
		}
	}
	return nil
}

// StringList returns the bound list value, or nil.
func (c *Context) StringList(name string) []string {
	if v, ok := c.Value(name); ok {
		if l, ok := v.([]string); ok {
			return slices.Clone(l)
		}
	}
	return nil
}

// StringMap returns the bound map value, or nil.
func (c *Context) StringMap(name string) map[string]string {
	if v, ok := c.Value(name); ok {
		if m, ok := v.(map[string]string); ok {
			return maps.Clone(m)
		}
	}
	return nil
}

// coerce checks value against the declared type of p and normalizes the
// integer widths and the string forms of bool and int.
func coerce(p Param, value any) (any, error) {
	mismatch := func() error {
		return fmt.Errorf("parameter %s: want %s, got %T", p.Name, p.Type, value)
	}

	switch p.Type {
	case String:
		if s, ok := value.(string); ok {
			return s, nil
		}
	case Int:
		switch n := value.(type) {
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		case string:
			v, err := strconv.ParseInt(n, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: %q is not an int", p.Name, n)
			}
			return v, nil
		}
	case Bool:
		switch b := value.(type) {
		case bool:
			return b, nil
		case string:
			v, err := strconv.ParseBool(b)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: %q is not a bool", p.Name, b)
			}
			return v, nil
		}
	case StringList:
		switch l := value.(type) {
		case []string:
			return slices.Clone(l), nil
		case string:
			return []string{l}, nil
		}
	case StringMap:
		if m, ok := value.(map[string]string); ok {
			return maps.Clone(m), nil
		}
	}
	return nil, mismatch()
}
