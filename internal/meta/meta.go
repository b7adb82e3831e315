// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"
	"io"
	"os"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"

	"github.com/tfctl/awsctl/internal/aws"
	"github.com/tfctl/awsctl/internal/config"
	"github.com/tfctl/awsctl/internal/confirm"
	"github.com/tfctl/awsctl/internal/engine"
	"github.com/tfctl/awsctl/internal/history"
)

// Meta contains the session state shared by commands: CLI arguments, loaded
// configuration, the operation registry, the result log, and the seams used
// to reach AWS and the terminal.
type Meta struct {
	Args     []string
	Config   config.Type
	Context  context.Context
	Registry *engine.Registry
	History  *history.Log
	Prompter confirm.Prompter
	Stdout   io.Writer
	Stderr   io.Writer
	// LoadAWS loads the SDK configuration. Nil means aws.LoadAWSConfig.
	LoadAWS func(context.Context, ...aws.Option) (awsv2.Config, error)
}

// Out returns Stdout, or os.Stdout when unset.
func (m Meta) Out() io.Writer {
	if m.Stdout == nil {
		return os.Stdout
	}
	return m.Stdout
}

// Err returns Stderr, or os.Stderr when unset.
func (m Meta) Err() io.Writer {
	if m.Stderr == nil {
		return os.Stderr
	}
	return m.Stderr
}

// AWSConfig loads the SDK configuration through LoadAWS.
func (m Meta) AWSConfig(ctx context.Context, opts ...aws.Option) (awsv2.Config, error) {
	if m.LoadAWS == nil {
		return aws.LoadAWSConfig(ctx, opts...)
	}
	return m.LoadAWS(ctx, opts...)
}
