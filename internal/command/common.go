// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"os/exec"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsctl/internal/attrs"
	"github.com/tfctl/awsctl/internal/meta"
	"github.com/tfctl/awsctl/internal/operation"
	"github.com/tfctl/awsctl/internal/output"
)

// BuildAttrs constructs an AttrList from defaults followed by --attrs.
func BuildAttrs(cmd *cli.Command, defaults ...string) (attrs.AttrList, error) {
	var al attrs.AttrList
	for _, d := range defaults {
		if err := al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, err
		}
	}
	return al, nil
}

// BuildOutputOptions collects the output flags of cmd.
func BuildOutputOptions(cmd *cli.Command, defaults ...string) (output.Options, error) {
	al, err := BuildAttrs(cmd, defaults...)
	if err != nil {
		return output.Options{}, err
	}
	return output.Options{
		Format:  cmd.String("output"),
		Attrs:   al,
		Filter:  cmd.String("filter"),
		Sort:    cmd.String("sort"),
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color"),
		Padding: cmd.Int("padding"),
	}, nil
}

// DumpSchemaIfRequested writes the parameters of d and the selectable fields
// of resp when --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, d operation.Descriptor, resp reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(GetMeta(cmd).Out(), d, resp)
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr awsctl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "awsctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}
