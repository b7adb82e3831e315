// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"

	"github.com/tfctl/awsctl/internal/confirm"
	"github.com/tfctl/awsctl/internal/history"
	"github.com/tfctl/awsctl/internal/invoker"
	"github.com/tfctl/awsctl/internal/log"
	"github.com/tfctl/awsctl/internal/operation"
	"github.com/tfctl/awsctl/internal/paginator"
	"github.com/tfctl/awsctl/internal/projector"
)

// Operation is a runnable catalog entry.
type Operation interface {
	Descriptor() operation.Descriptor
	// Response is the SDK response type, used to list selectable fields.
	Response() reflect.Type
	Run(ctx context.Context, inv Invocation) (Result, error)
}

// Invocation carries everything one run needs. Params must have been created
// for the operation's descriptor.
type Invocation struct {
	AWS    awsv2.Config
	Params *operation.Context
	// Select overrides the descriptor's default selection.
	Select      string
	Paging      paginator.Options
	Confirm     confirm.Policy
	Emit        func(any) error
	History     *history.Log
	Diagnostics invoker.Diagnostics
}

// Result summarizes a run.
type Result struct {
	Declined bool
	State    paginator.State
}

// Spec binds a descriptor to a concrete SDK client C, request In and response
// Out.
type Spec[C, In, Out any] struct {
	Desc   operation.Descriptor
	Client func(awsv2.Config) C
	Build  operation.BuildFunc[In]
	Call   func(context.Context, C, *In) (*Out, error)
	// Pager is required when Desc.Paginated is set.
	Pager *paginator.Pager[In, Out]
}

// Method adapts an SDK client method expression, such as
// SSMClient.GetParameter, to a Spec Call.
func Method[C, In, Out, O any](m func(C, context.Context, *In, ...func(*O)) (*Out, error)) func(context.Context, C, *In) (*Out, error) {
	return func(ctx context.Context, c C, in *In) (*Out, error) {
		return m(c, ctx, in)
	}
}

// Descriptor implements Operation.
func (s Spec[C, In, Out]) Descriptor() operation.Descriptor {
	return s.Desc
}

// Response implements Operation.
func (s Spec[C, In, Out]) Response() reflect.Type {
	return reflect.TypeOf((*Out)(nil))
}

// Run implements Operation.
func (s Spec[C, In, Out]) Run(ctx context.Context, inv Invocation) (res Result, err error) {
	d := s.Desc
	entry := history.Entry{Command: d.CommandName(), Operation: d.Operation}
	var last *Out
	defer func() {
		entry.Params = inv.Params.Redacted()
		var resp any
		if last != nil && !d.SensitiveResponse {
			resp = last
		}
		record(inv.History, entry, res, resp, err)
	}()

	expr := inv.Select
	if expr == "" {
		expr = d.DefaultSelect
	}
	sel, err := projector.Parse(expr)
	if err != nil {
		return res, err
	}
	if sel, err = sel.Validate(d, (*Out)(nil)); err != nil {
		return res, err
	}

	decision, err := inv.Confirm.Decide(d, target(inv.Params, d.ConfirmTarget))
	if err != nil {
		return res, err
	}
	if !decision.Proceed {
		log.Infof("%s declined", d.CommandName())
		res.Declined = true
		return res, nil
	}

	in, err := operation.Assemble(d, inv.Params, s.Build)
	if err != nil {
		return res, err
	}

	client := s.Client(inv.AWS)
	call := func(ctx context.Context, in *In) (*Out, error) {
		return s.Call(ctx, client, in)
	}
	fetch := func(ctx context.Context, in *In) (*Out, error) {
		return invoker.Invoke(ctx, d.Operation, call, in, inv.Diagnostics)
	}
	emit := func(out *Out) error {
		last = out
		if sel.Kind == projector.Echo {
			return nil
		}
		v, err := projector.Project(out, sel, inv.Params)
		if err != nil {
			return err
		}
		return inv.emit(v)
	}

	if d.Paginated {
		res.State, err = paginator.Run(ctx, inv.Paging, in, *s.Pager, fetch, emit)
	} else {
		var out *Out
		if out, err = fetch(ctx, in); err == nil {
			res.State = paginator.State{Phase: paginator.Exhausted, Pages: 1, Emitted: 1, Remaining: paginator.Unbounded}
			err = emit(out)
		}
	}
	if err != nil {
		return res, err
	}

	if sel.Kind == projector.Echo {
		v, _ := projector.Project(last, sel, inv.Params)
		if err = inv.emit(v); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (inv Invocation) emit(v any) error {
	if inv.Emit == nil {
		return nil
	}
	return inv.Emit(v)
}

// target renders the confirmation target parameter for the prompt.
func target(c *operation.Context, name string) string {
	if name == "" {
		return ""
	}
	v, ok := c.Value(name)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case []string:
		return strings.Join(t, ", ")
	default:
		return fmt.Sprint(t)
	}
}

func record(l *history.Log, e history.Entry, res Result, resp any, err error) {
	if l == nil {
		return
	}
	e.Declined = res.Declined
	e.Pages = res.State.Pages
	e.Items = res.State.Emitted
	if err != nil {
		e.Err = err.Error()
	}
	if resp != nil {
		if b, mErr := json.Marshal(resp); mErr == nil {
			e.Response = b
		} else {
			log.Debugf("history response not recorded: err=%v", mErr)
		}
	}
	l.Append(e)
}

// Validate checks the descriptor and that the bindings it requires are set.
func (s Spec[C, In, Out]) Validate() error {
	if err := s.Desc.Validate(); err != nil {
		return err
	}
	switch {
	case s.Client == nil || s.Build == nil || s.Call == nil:
		return fmt.Errorf("operation %s: incomplete binding", s.Desc.CommandName())
	case s.Desc.Paginated && s.Pager == nil:
		return fmt.Errorf("operation %s: paginated without a pager", s.Desc.CommandName())
	case s.Pager != nil && (s.Pager.Token == nil || s.Pager.SetToken == nil || s.Pager.Count == nil):
		return fmt.Errorf("operation %s: incomplete pager", s.Desc.CommandName())
	}
	return nil
}
