// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package invoker

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// Diagnostics describes where a call was sent. It annotates connection
// failures so that a wrong region, profile or endpoint is easy to spot.
type Diagnostics struct {
	Endpoint string
	Region   string
	Profile  string
}

func (d Diagnostics) String() string {
	return fmt.Sprintf("endpoint=%s region=%s profile=%s",
		nonEmpty(d.Endpoint, "<default>"), nonEmpty(d.Region, "<unset>"), nonEmpty(d.Profile, "<default>"))
}

// RemoteInvocationError wraps any failure of an SDK call. The original error
// is preserved for errors.Is/As.
type RemoteInvocationError struct {
	Operation string
	// Code is the service error code, when the service returned one.
	Code string
	// Hint is a short remediation message for well-known failures.
	Hint string
	Err  error
}

func (e *RemoteInvocationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Operation)
	if e.Code != "" {
		fmt.Fprintf(&b, " (%s)", e.Code)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	if e.Hint != "" {
		fmt.Fprintf(&b, "; %s", e.Hint)
	}
	return b.String()
}

func (e *RemoteInvocationError) Unwrap() error {
	return e.Err
}

// Translate wraps err in a RemoteInvocationError for operation. Service error
// codes are lifted from smithy API errors and connection failures are
// annotated with diag.
func Translate(err error, operation string, diag Diagnostics) error {
	if err == nil {
		return nil
	}

	var already *RemoteInvocationError
	if errors.As(err, &already) {
		return err
	}

	rie := &RemoteInvocationError{Operation: operation, Err: err}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		rie.Code = apiErr.ErrorCode()
		rie.Hint = codeHint(rie.Code, diag)
		return rie
	}

	var dnsErr *net.DNSError
	var opErr *net.OpError
	var sendErr *smithyhttp.RequestSendError
	switch {
	case errors.As(err, &dnsErr):
		rie.Hint = fmt.Sprintf("could not resolve host %q (%s)", dnsErr.Name, diag)
	case errors.As(err, &opErr) && opErr.Op == "dial":
		rie.Hint = fmt.Sprintf("could not connect to %v (%s)", opErr.Addr, diag)
	case errors.As(err, &sendErr):
		rie.Hint = fmt.Sprintf("request was not sent (%s)", diag)
	}

	return rie
}

// codeHint maps well-known service error codes to remediation text.
func codeHint(code string, diag Diagnostics) string {
	switch code {
	case "UnrecognizedClientException", "InvalidClientTokenId", "ExpiredToken",
		"ExpiredTokenException", "SignatureDoesNotMatch":
		return fmt.Sprintf("check the credentials for profile %s", nonEmpty(diag.Profile, "<default>"))
	case "AccessDenied", "AccessDeniedException", "UnauthorizedOperation":
		return "the caller is not allowed to perform this operation"
	}
	return ""
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
