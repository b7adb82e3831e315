// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsctl/internal/config"
	"github.com/tfctl/awsctl/internal/meta"
)

// InitApp builds the command tree. Every registered operation becomes a
// subcommand of its service.
func InitApp(ctx context.Context, args []string, m meta.Meta) (*cli.Command, error) {
	if m.Registry == nil {
		return nil, fmt.Errorf("no operation registry")
	}

	// The arg[1] immediately following the binary (arg[0]) is the service and
	// also the config namespace. It could be -h/--help, so ignore flags.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}
	cfg := config.Config
	cfg.Namespace = ns

	m.Args = args
	m.Config = cfg
	m.Context = ctx

	app := &cli.Command{
		Name:  "awsctl",
		Usage: "AWS Control",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "awsctl version info",
				HideDefault: true,
			},
		},
	}

	for _, svc := range m.Registry.Services() {
		svcCmd := &cli.Command{
			Name:  svc,
			Usage: svc + " operations",
			Metadata: map[string]any{
				"meta": m,
			},
		}
		for _, op := range m.Registry.ByService(svc) {
			c, err := operationCommandBuilder(op, m)
			if err != nil {
				return nil, err
			}
			svcCmd.Commands = append(svcCmd.Commands, c)
		}
		app.Commands = append(app.Commands, svcCmd)
	}

	app.Commands = append(app.Commands,
		operationsCommandBuilder(m),
		historyCommandBuilder(m),
		completionCommandBuilder(m),
	)

	// Make sure flags are sorted for the --help text.
	var sortFlags func(cmds []*cli.Command)
	sortFlags = func(cmds []*cli.Command) {
		for _, cmd := range cmds {
			sort.Slice(cmd.Flags, func(i, j int) bool {
				return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
			})
			sortFlags(cmd.Commands)
		}
	}
	sortFlags(app.Commands)

	return app, nil
}
