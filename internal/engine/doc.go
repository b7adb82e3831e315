// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package engine runs one catalog operation end to end: selection check,
// confirmation, request assembly, invocation with optional pagination,
// projection, emission and result logging. Each operation is a typed Spec
// over its SDK client, request and response records.
package engine
