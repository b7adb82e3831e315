// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"
	"slices"
	"strings"
)

// Registry indexes operations by command name and alias, case-insensitively.
type Registry struct {
	ops   []Operation
	index map[string]Operation
}

// NewRegistry returns a registry holding ops. It fails on the first invalid
// or duplicate operation.
func NewRegistry(ops ...Operation) (*Registry, error) {
	r := &Registry{index: map[string]Operation{}}
	for _, op := range ops {
		if err := r.Register(op); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds op.
func (r *Registry) Register(op Operation) error {
	d := op.Descriptor()
	if v, ok := op.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	} else if err := d.Validate(); err != nil {
		return err
	}

	keys := []string{strings.ToLower(d.CommandName()), strings.ToLower(d.Alias())}
	for _, k := range keys {
		if prev, ok := r.index[k]; ok {
			return fmt.Errorf("operation %s: name %q already used by %s",
				d.CommandName(), k, prev.Descriptor().CommandName())
		}
	}
	for _, k := range keys {
		r.index[k] = op
	}
	r.ops = append(r.ops, op)
	return nil
}

// Lookup finds an operation by command name or alias.
func (r *Registry) Lookup(name string) (Operation, bool) {
	op, ok := r.index[strings.ToLower(name)]
	return op, ok
}

// Operations returns all operations sorted by service, then command name.
func (r *Registry) Operations() []Operation {
	out := slices.Clone(r.ops)
	slices.SortFunc(out, func(a, b Operation) int {
		da, db := a.Descriptor(), b.Descriptor()
		if c := strings.Compare(da.Service, db.Service); c != 0 {
			return c
		}
		return strings.Compare(da.CommandName(), db.CommandName())
	})
	return out
}

// Services returns the sorted, distinct service names.
func (r *Registry) Services() []string {
	var out []string
	for _, op := range r.ops {
		s := op.Descriptor().Service
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return out
}

// ByService returns the operations of one service, sorted by command name.
func (r *Registry) ByService(service string) []Operation {
	var out []Operation
	for _, op := range r.Operations() {
		if strings.EqualFold(op.Descriptor().Service, service) {
			out = append(out, op)
		}
	}
	return out
}
