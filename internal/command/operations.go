// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsctl/internal/engine"
	"github.com/tfctl/awsctl/internal/log"
	"github.com/tfctl/awsctl/internal/meta"
	"github.com/tfctl/awsctl/internal/output"
)

// operationsDefaultAttrs orders the catalog listing columns.
var operationsDefaultAttrs = []string{"service,command,alias,operation,impact,paginated"}

func operationsCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "operations",
		Usage:     "list the available operations",
		UsageText: "awsctl operations [service] [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags:  NewOutputFlags("operations"),
		Action: operationsCommandAction,
	}
}

func operationsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)

	opts, err := BuildOutputOptions(cmd, operationsDefaultAttrs...)
	if err != nil {
		return err
	}

	ops := m.Registry.Operations()
	if svc := cmd.Args().First(); svc != "" {
		ops = m.Registry.ByService(svc)
	}
	log.Debugf("listing operations: count=%d", len(ops))

	return output.Render(m.Out(), OperationRows(ops), opts)
}

// OperationRows describes ops as one row each.
func OperationRows(ops []engine.Operation) []any {
	rows := make([]any, 0, len(ops))
	for _, op := range ops {
		d := op.Descriptor()
		rows = append(rows, map[string]any{
			"service":   d.Service,
			"command":   d.CommandName(),
			"alias":     d.Alias(),
			"operation": d.Operation,
			"impact":    d.Impact.String(),
			"paginated": d.Paginated,
		})
	}
	return rows
}
