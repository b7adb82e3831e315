// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsctl/internal/differ"
	"github.com/tfctl/awsctl/internal/history"
	"github.com/tfctl/awsctl/internal/log"
	"github.com/tfctl/awsctl/internal/meta"
	"github.com/tfctl/awsctl/internal/output"
)

var historyDefaultAttrs = []string{"n,when,command,pages,items,status"}

// selectPair picks two entries interactively. Tests replace it.
var selectPair = differ.SelectPair

func historyCommandBuilder(m meta.Meta) *cli.Command {
	md := map[string]any{"meta": m}
	return &cli.Command{
		Name:      "history",
		Usage:     "list the results of earlier invocations",
		UsageText: "awsctl history [options]",
		Metadata:  md,
		Flags:     NewOutputFlags("history"),
		Action:    historyListAction,
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "print one entry as JSON",
				UsageText: "awsctl history show [n]",
				Metadata:  md,
				Action:    historyShowAction,
			},
			{
				Name:      "diff",
				Usage:     "compare the responses of two entries",
				UsageText: "awsctl history diff [a] [b]",
				Metadata:  md,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pick",
						Usage: "choose the entries interactively",
					},
				},
				Action: historyDiffAction,
			},
			{
				Name:     "clear",
				Usage:    "drop every entry",
				Metadata: md,
				Action:   historyClearAction,
			},
		},
	}
}

func historyLog(cmd *cli.Command) (*history.Log, error) {
	if l := GetMeta(cmd).History; l != nil {
		return l, nil
	}
	return nil, fmt.Errorf("no result history in this session")
}

func historyListAction(ctx context.Context, cmd *cli.Command) error {
	l, err := historyLog(cmd)
	if err != nil {
		return err
	}
	opts, err := BuildOutputOptions(cmd, historyDefaultAttrs...)
	if err != nil {
		return err
	}

	rows := l.Rows(time.Now())
	items := make([]any, 0, len(rows))
	for _, r := range rows {
		items = append(items, r)
	}
	return output.Render(GetMeta(cmd).Out(), items, opts)
}

func historyShowAction(ctx context.Context, cmd *cli.Command) error {
	l, err := historyLog(cmd)
	if err != nil {
		return err
	}
	n, err := entryIndex(cmd.Args().Get(0), 1)
	if err != nil {
		return err
	}
	e, ok := l.Get(n)
	if !ok {
		return fmt.Errorf("no history entry %d (have %d)", n, l.Len())
	}

	b, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}
	fmt.Fprintln(GetMeta(cmd).Out(), string(b))
	return nil
}

func historyDiffAction(ctx context.Context, cmd *cli.Command) error {
	l, err := historyLog(cmd)
	if err != nil {
		return err
	}

	var a, b int
	if cmd.Bool("pick") {
		labels := make([]string, 0, l.Len())
		for n := 1; n <= l.Len(); n++ {
			e, _ := l.Get(n)
			labels = append(labels, fmt.Sprintf("%d  %s  %s", n, e.Time.Format(time.DateTime), e.Command))
		}
		picked, err := selectPair(labels)
		if err != nil {
			return err
		}
		if len(picked) != 2 {
			return nil
		}
		a, b = picked[0]+1, picked[1]+1
	} else {
		if a, err = entryIndex(cmd.Args().Get(0), 2); err != nil {
			return err
		}
		if b, err = entryIndex(cmd.Args().Get(1), 1); err != nil {
			return err
		}
	}
	log.Debugf("history diff: a=%d, b=%d", a, b)

	left, ok := l.Get(a)
	if !ok {
		return fmt.Errorf("no history entry %d (have %d)", a, l.Len())
	}
	right, ok := l.Get(b)
	if !ok {
		return fmt.Errorf("no history entry %d (have %d)", b, l.Len())
	}

	_, err = differ.Diff(GetMeta(cmd).Out(), left.Response, right.Response, cmd.Bool("color"))
	return err
}

func historyClearAction(ctx context.Context, cmd *cli.Command) error {
	l, err := historyLog(cmd)
	if err != nil {
		return err
	}
	return l.Clear()
}

// entryIndex parses a 1-based history index, using def when s is empty.
func entryIndex(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid history index %q", s)
	}
	return n, nil
}
