// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsctl/internal/aws"
	"github.com/tfctl/awsctl/internal/confirm"
	"github.com/tfctl/awsctl/internal/engine"
	"github.com/tfctl/awsctl/internal/invoker"
	"github.com/tfctl/awsctl/internal/log"
	"github.com/tfctl/awsctl/internal/meta"
	"github.com/tfctl/awsctl/internal/operation"
	"github.com/tfctl/awsctl/internal/output"
	"github.com/tfctl/awsctl/internal/paginator"
)

// operationCommandBuilder turns one catalog operation into a CLI command. The
// command is named by its verb-noun name and aliased by Prefix-Operation.
func operationCommandBuilder(op engine.Operation, m meta.Meta) (*cli.Command, error) {
	d := op.Descriptor()

	flags := NewParamFlags(d)
	flags = append(flags, tldrFlag, schemaFlag)
	flags = append(flags, NewGlobalFlags(d.Service)...)
	if d.Paginated {
		flags = append(flags, NewPagingFlags()...)
	}
	if err := checkFlagConflicts(d.CommandName(), flags); err != nil {
		return nil, err
	}

	usageText := "awsctl " + d.Service + " " + d.CommandName() + " [options]"
	if p, ok := d.Positional(); ok {
		usageText = "awsctl " + d.Service + " " + d.CommandName() + " [" + p.Name + "] [options]"
	}

	return &cli.Command{
		Name:      d.CommandName(),
		Aliases:   []string{d.Alias()},
		Usage:     d.Usage,
		UsageText: usageText,
		Metadata: map[string]any{
			"meta": m,
		},
		Flags:  flags,
		Action: operationCommandAction(op),
	}, nil
}

func operationCommandAction(op engine.Operation) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		m := GetMeta(cmd)
		d := op.Descriptor()
		log.Debugf("executing action: op=%s, args=%v", d.CommandName(), cmd.Args().Slice())

		if ShortCircuitTLDR(ctx, cmd, d.CommandName()) {
			return nil
		}
		if DumpSchemaIfRequested(cmd, d, op.Response()) {
			return nil
		}

		params, err := BindContext(cmd, d)
		if err != nil {
			return err
		}
		opts, err := BuildOutputOptions(cmd)
		if err != nil {
			return err
		}
		threshold, err := operation.ParseImpact(cmd.String("confirm-impact"))
		if err != nil {
			return err
		}

		cfg, err := m.AWSConfig(ctx, awsOptions(cmd)...)
		if err != nil {
			return fmt.Errorf("failed to load AWS config: %w", err)
		}

		var collected output.Collector
		inv := engine.Invocation{
			AWS:    cfg,
			Params: params,
			Select: cmd.String("select"),
			Paging: PagingOptions(cmd, d),
			Confirm: confirm.Policy{
				Prompter:  m.Prompter,
				Forced:    cmd.Bool("force"),
				Threshold: threshold,
			},
			Emit:    collected.Add,
			History: m.History,
			Diagnostics: invoker.Diagnostics{
				Endpoint: aws.Endpoint(cfg),
				Region:   cfg.Region,
				Profile:  cmd.String("profile"),
			},
		}

		res, err := op.Run(ctx, inv)
		if err != nil {
			return err
		}
		if res.Declined {
			fmt.Fprintf(m.Err(), "%s was not performed.\n", d.CommandName())
			return nil
		}
		if res.State.Token != nil {
			fmt.Fprintf(m.Err(), "More results are available. Resume with --next-token %s\n", *res.State.Token)
		}

		return output.Render(m.Out(), collected.Items(), opts)
	}
}

// BindContext copies the flags set on cmd and its positional arguments into a
// new invocation context for d. Unset flags stay unbound.
func BindContext(cmd *cli.Command, d operation.Descriptor) (*operation.Context, error) {
	c := operation.NewContext(d)

	for _, p := range d.Params {
		name := FlagName(p.Name)
		if !cmd.IsSet(name) {
			continue
		}

		var v any
		switch p.Type {
		case operation.Int:
			v = cmd.Int(name)
		case operation.Bool:
			v = cmd.Bool(name)
		case operation.StringList:
			v = cmd.StringSlice(name)
		case operation.StringMap:
			v = cmd.StringMap(name)
		default:
			v = cmd.String(name)
		}
		if err := c.Set(p.Name, v); err != nil {
			return nil, err
		}
	}

	args := cmd.Args().Slice()
	if len(args) == 0 {
		return c, nil
	}

	p, ok := d.Positional()
	switch {
	case !ok:
		return nil, fmt.Errorf("%s takes no positional arguments, got %v", d.CommandName(), args)
	case c.Bound(p.Name):
		return nil, fmt.Errorf("%s given both as --%s and as an argument", p.Name, FlagName(p.Name))
	case len(args) > 1 && p.Type != operation.StringList:
		return nil, fmt.Errorf("%s takes one positional argument, got %v", d.CommandName(), args)
	}

	var v any = args[0]
	if p.Type == operation.StringList {
		v = args
	}
	if err := c.Set(p.Name, v); err != nil {
		return nil, err
	}
	return c, nil
}

// PagingOptions reads the pagination flags of cmd. A --next-token fetches a
// single page. Operations that do not paginate always make a single call.
func PagingOptions(cmd *cli.Command, d operation.Descriptor) paginator.Options {
	opts := paginator.DefaultOptions()
	if !d.Paginated {
		return opts
	}
	if cmd.Bool("no-auto-iteration") {
		opts.AutoIterate = false
	}
	if n := cmd.Int("max-items"); n > 0 {
		opts.Budget = n
	}
	if t := cmd.String("next-token"); t != "" {
		opts.Token = &t
		opts.AutoIterate = false
	}
	return opts
}

func awsOptions(cmd *cli.Command) []aws.Option {
	var opts []aws.Option
	if v := cmd.String("profile"); v != "" {
		opts = append(opts, aws.WithProfile(v))
	}
	if v := cmd.String("region"); v != "" {
		opts = append(opts, aws.WithRegion(v))
	}
	if v := cmd.String("endpoint-url"); v != "" {
		opts = append(opts, aws.WithEndpoint(v))
	}
	if v := cmd.Int("max-attempts"); v > 0 {
		opts = append(opts, aws.WithMaxAttempts(v))
	}
	return opts
}
