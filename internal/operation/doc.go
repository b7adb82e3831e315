// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package operation describes a single AWS API operation as data: its typed
// parameters, default selection, pagination and confirmation traits. It also
// holds the per-invocation Context that parameters are bound into, and the
// request assembly helpers that turn a Context into an SDK input record.
package operation
