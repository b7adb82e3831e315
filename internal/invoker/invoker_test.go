// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package invoker

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoIn struct{ Msg string }
type echoOut struct{ Msg string }

var diag = Diagnostics{Endpoint: "http://localhost:4566", Region: "us-east-1", Profile: "sandbox"}

func TestInvoke_Success(t *testing.T) {
	call := func(_ context.Context, in *echoIn) (*echoOut, error) {
		return &echoOut{Msg: in.Msg}, nil
	}

	out, err := Invoke(context.Background(), "Echo", call, &echoIn{Msg: "hi"}, diag)
	require.NoError(t, err)
	assert.Equal(t, "hi", out.Msg)
}

func TestInvoke_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	call := func(ctx context.Context, _ *echoIn) (*echoOut, error) {
		close(started)
		<-ctx.Done()
		time.Sleep(10 * time.Millisecond)
		return nil, ctx.Err()
	}

	go func() {
		<-started
		cancel()
	}()

	_, err := Invoke(ctx, "Echo", call, &echoIn{}, diag)

	var rie *RemoteInvocationError
	require.ErrorAs(t, err, &rie)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInvoke_AlreadyCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	call := func(context.Context, *echoIn) (*echoOut, error) {
		called = true
		return &echoOut{}, nil
	}

	_, err := Invoke(ctx, "Echo", call, &echoIn{}, diag)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestTranslate(t *testing.T) {
	sentinel := errors.New("boom")

	tests := []struct {
		name     string
		err      error
		wantCode string
		wantHint string
		wantIs   error
	}{
		{
			name:   "plain error",
			err:    sentinel,
			wantIs: sentinel,
		},
		{
			name:     "api error",
			err:      &smithy.GenericAPIError{Code: "ParameterNotFound", Message: "nope"},
			wantCode: "ParameterNotFound",
		},
		{
			name:     "credential error",
			err:      &smithy.GenericAPIError{Code: "ExpiredToken", Message: "expired"},
			wantCode: "ExpiredToken",
			wantHint: "profile sandbox",
		},
		{
			name:     "dns error",
			err:      &smithyhttp.RequestSendError{Err: &net.DNSError{Name: "ssm.nowhere-1.amazonaws.com", Err: "no such host"}},
			wantHint: `could not resolve host "ssm.nowhere-1.amazonaws.com" (endpoint=http://localhost:4566 region=us-east-1 profile=sandbox)`,
		},
		{
			name:     "dial error",
			err:      &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
			wantHint: "could not connect",
		},
		{
			name:     "send error",
			err:      &smithyhttp.RequestSendError{Err: sentinel},
			wantHint: "request was not sent",
			wantIs:   sentinel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Translate(tt.err, "GetParameter", diag)

			var rie *RemoteInvocationError
			require.ErrorAs(t, err, &rie)
			assert.Equal(t, "GetParameter", rie.Operation)
			assert.Equal(t, tt.wantCode, rie.Code)
			if tt.wantHint == "" {
				assert.Empty(t, rie.Hint)
			} else {
				assert.Contains(t, rie.Hint, tt.wantHint)
				assert.Contains(t, err.Error(), tt.wantHint)
			}
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestTranslate_Idempotent(t *testing.T) {
	assert.Nil(t, Translate(nil, "X", diag))

	first := Translate(errors.New("boom"), "X", diag)
	assert.Same(t, first, Translate(first, "Y", diag))
}

func TestDiagnostics_String(t *testing.T) {
	assert.Equal(t, "endpoint=<default> region=<unset> profile=<default>", Diagnostics{}.String())
}
