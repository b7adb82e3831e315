// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package invoker

import (
	"context"

	"github.com/tfctl/awsctl/internal/log"
)

// Call is a single SDK operation bound to its client.
type Call[In, Out any] func(ctx context.Context, in *In) (*Out, error)

type result[Out any] struct {
	out *Out
	err error
}

// Invoke runs call on its own goroutine and waits for it or for ctx to be
// done, whichever comes first. The call receives the same ctx so the SDK
// aborts the in-flight request on cancellation.
func Invoke[In, Out any](ctx context.Context, operation string, call Call[In, Out], in *In, diag Diagnostics) (*Out, error) {
	if err := ctx.Err(); err != nil {
		return nil, Translate(err, operation, diag)
	}

	done := make(chan result[Out], 1)
	go func() {
		out, err := call(ctx, in)
		done <- result[Out]{out: out, err: err}
	}()

	log.Debugf("invoke: op=%s, region=%s", operation, diag.Region)

	select {
	case <-ctx.Done():
		log.Debugf("invoke canceled: op=%s", operation)
		return nil, Translate(ctx.Err(), operation, diag)
	case r := <-done:
		if r.err != nil {
			log.Debugf("invoke err: op=%s, err=%v", operation, r.err)
			return nil, Translate(r.err, operation, diag)
		}
		return r.out, nil
	}
}
