// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package projector implements --select. A selection is "*" for the whole
// response, "^Name" for the bound value of parameter Name, or a dotted field
// path into the response such as "Parameter.Value" or
// "Reservations[*].Instances".
package projector
