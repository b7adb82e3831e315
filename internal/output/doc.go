// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output shapes projected values into rows and renders them as raw
// JSON, json, yaml or a text table, applying --attrs, --filter and --sort on
// the way.
package output
