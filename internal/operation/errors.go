// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package operation

import "fmt"

// MissingRequiredParameterError reports a required parameter that was neither
// bound nor defaulted. It is raised before any request is built.
type MissingRequiredParameterError struct {
	Operation string
	Parameter string
}

func (e *MissingRequiredParameterError) Error() string {
	return fmt.Sprintf("%s: missing required parameter %s", e.Operation, e.Parameter)
}
