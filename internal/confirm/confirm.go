// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package confirm

import (
	"fmt"

	"github.com/tfctl/awsctl/internal/log"
	"github.com/tfctl/awsctl/internal/operation"
)

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(message string) (bool, error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(message string) (bool, error)

// Confirm calls f.
func (f PrompterFunc) Confirm(message string) (bool, error) {
	return f(message)
}

// Policy is the confirmation setup for one invocation.
type Policy struct {
	Prompter Prompter
	// Forced skips prompting, as with --force.
	Forced bool
	// Threshold is the lowest impact that prompts. ImpactNone disables
	// prompting altogether.
	Threshold operation.Impact
}

// Decision is the outcome of Decide.
type Decision struct {
	Proceed  bool
	Prompted bool
}

// Decide returns whether the operation described by d may run against
// target.
func (p Policy) Decide(d operation.Descriptor, target string) (Decision, error) {
	switch {
	case d.Impact == operation.ImpactNone,
		p.Threshold == operation.ImpactNone,
		d.Impact < p.Threshold:
		return Decision{Proceed: true}, nil
	case p.Forced:
		log.Debugf("confirmation forced: op=%s, target=%s", d.CommandName(), target)
		return Decision{Proceed: true}, nil
	case p.Prompter == nil:
		log.Warnf("%s needs confirmation and no prompt is available; use --force", d.CommandName())
		return Decision{}, nil
	}

	ok, err := p.Prompter.Confirm(Message(d, target))
	if err != nil {
		return Decision{Prompted: true}, fmt.Errorf("confirmation prompt failed: %w", err)
	}
	log.Debugf("confirmation answered: op=%s, proceed=%t", d.CommandName(), ok)
	return Decision{Proceed: ok, Prompted: true}, nil
}

// Message is the question put to the user for d and target.
func Message(d operation.Descriptor, target string) string {
	if target == "" {
		return fmt.Sprintf("Perform %s (%s, impact %s)?", d.CommandName(), d.Operation, d.Impact)
	}
	return fmt.Sprintf("Perform %s (%s, impact %s) on %q?", d.CommandName(), d.Operation, d.Impact, target)
}
