// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package operation

import (
	"fmt"
	"strings"
)

// ParamType is the declared type of an operation parameter.
type ParamType int

const (
	String ParamType = iota
	Int
	Bool
	StringList
	StringMap
)

func (t ParamType) String() string {
	switch t {
	case String:
		return "string"
	case Int:
		return "int"
	case Bool:
		return "bool"
	case StringList:
		return "list"
	case StringMap:
		return "map"
	default:
		return fmt.Sprintf("ParamType(%d)", int(t))
	}
}

// Impact is how destructive an operation is. Operations at or above the
// configured threshold ask for confirmation before running.
type Impact int

const (
	ImpactNone Impact = iota
	ImpactLow
	ImpactMedium
	ImpactHigh
)

func (i Impact) String() string {
	switch i {
	case ImpactNone:
		return "none"
	case ImpactLow:
		return "low"
	case ImpactMedium:
		return "medium"
	case ImpactHigh:
		return "high"
	default:
		return fmt.Sprintf("Impact(%d)", int(i))
	}
}

// ParseImpact parses none, low, medium or high.
func ParseImpact(s string) (Impact, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return ImpactNone, nil
	case "low":
		return ImpactLow, nil
	case "medium":
		return ImpactMedium, nil
	case "high":
		return ImpactHigh, nil
	default:
		return ImpactNone, fmt.Errorf("invalid impact %q: must be one of none, low, medium, high", s)
	}
}

// Param declares one input of an operation.
type Param struct {
	Name       string
	Type       ParamType
	Required   bool
	Aliases    []string
	Usage      string
	Positional bool
	// Sensitive values are redacted from the result log.
	Sensitive bool
	// Default is applied when the caller does not bind the parameter. It must
	// match Type the same way Context.Set does.
	Default any
}

// Descriptor is the immutable description of one API operation.
type Descriptor struct {
	// Service is the CLI service group, e.g. "ssm".
	Service string
	// Prefix is the service's short noun prefix, e.g. "SSM". It forms the
	// API-style alias Prefix-Operation.
	Prefix string
	// Operation is the SDK API operation name, e.g. "GetParameter".
	Operation string
	Verb      string
	Noun      string
	Usage     string
	Params    []Param
	// DefaultSelect is the selection applied when the caller gives none.
	DefaultSelect string
	Paginated     bool
	Impact        Impact
	// ConfirmTarget names the parameter shown in the confirmation prompt.
	ConfirmTarget string
	// SensitiveResponse keeps responses out of the result log.
	SensitiveResponse bool
}

// CommandName returns the verb-noun command name, e.g. "Get-SSMParameter".
func (d Descriptor) CommandName() string {
	return d.Verb + "-" + d.Noun
}

// Alias returns the API-style alias, e.g. "SSM-GetParameter".
func (d Descriptor) Alias() string {
	return d.Prefix + "-" + d.Operation
}

// Param looks up a parameter by name or alias, case-insensitively.
func (d Descriptor) Param(name string) (Param, bool) {
	for _, p := range d.Params {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
		for _, a := range p.Aliases {
			if strings.EqualFold(a, name) {
				return p, true
			}
		}
	}
	return Param{}, false
}

// Positional returns the parameter bound from the first positional argument.
func (d Descriptor) Positional() (Param, bool) {
	for _, p := range d.Params {
		if p.Positional {
			return p, true
		}
	}
	return Param{}, false
}

// Validate checks the descriptor at registration time.
func (d Descriptor) Validate() error {
	switch {
	case d.Service == "":
		return fmt.Errorf("descriptor %s: empty service", d.CommandName())
	case d.Prefix == "":
		return fmt.Errorf("descriptor %s: empty prefix", d.CommandName())
	case d.Operation == "":
		return fmt.Errorf("descriptor %s: empty operation", d.CommandName())
	case d.Verb == "" || d.Noun == "":
		return fmt.Errorf("descriptor %s: empty verb or noun", d.Alias())
	case d.DefaultSelect == "":
		return fmt.Errorf("descriptor %s: empty default selection", d.CommandName())
	}

	seen := map[string]string{}
	positional := ""
	for _, p := range d.Params {
		if p.Name == "" {
			return fmt.Errorf("descriptor %s: parameter with empty name", d.CommandName())
		}
		for _, n := range append([]string{p.Name}, p.Aliases...) {
			key := strings.ToLower(n)
			if owner, ok := seen[key]; ok {
				return fmt.Errorf("descriptor %s: name %q of %s already used by %s",
					d.CommandName(), n, p.Name, owner)
			}
			seen[key] = p.Name
		}
		if p.Positional {
			if positional != "" {
				return fmt.Errorf("descriptor %s: %s and %s are both positional",
					d.CommandName(), positional, p.Name)
			}
			positional = p.Name
		}
		if p.Default != nil {
			if _, err := coerce(p, p.Default); err != nil {
				return fmt.Errorf("descriptor %s: default: %w", d.CommandName(), err)
			}
		}
	}

	if d.ConfirmTarget != "" {
		if _, ok := d.Param(d.ConfirmTarget); !ok {
			return fmt.Errorf("descriptor %s: confirm target %s is not a parameter",
				d.CommandName(), d.ConfirmTarget)
		}
	}

	return nil
}
