// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package operation

import (
	"fmt"

	"github.com/tfctl/awsctl/internal/log"
)

// BuildFunc copies the bound values of a Context into a new SDK input record.
// It must only set fields whose parameters are bound.
type BuildFunc[In any] func(*Context) (*In, error)

// Assemble applies defaults, verifies required parameters and builds the
// request. Required parameters are checked in declaration order.
func Assemble[In any](d Descriptor, c *Context, build BuildFunc[In]) (*In, error) {
	for _, p := range d.Params {
		if p.Default == nil || c.Bound(p.Name) {
			continue
		}
		if err := c.Set(p.Name, p.Default); err != nil {
			return nil, err
		}
		log.Tracef("default applied: op=%s, param=%s", d.CommandName(), p.Name)
	}

	for _, p := range d.Params {
		if p.Required && !c.Bound(p.Name) {
			return nil, &MissingRequiredParameterError{
				Operation: d.CommandName(),
				Parameter: p.Name,
			}
		}
	}

	in, err := build(c)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build request: %w", d.CommandName(), err)
	}
	log.Debugf("request assembled: op=%s, bound=%v", d.CommandName(), c.Names())
	return in, nil
}

// Nested returns a new T populated by fill when at least one of fields is
// bound, and nil otherwise, so that empty nested structures are never sent.
func Nested[T any](c *Context, fields []string, fill func(*T)) *T {
	if !c.AnyBound(fields...) {
		return nil
	}
	v := new(T)
	fill(v)
	return v
}
