// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller resolves dotted paths with optional [n] and [*] indexes
// against JSON documents. Selections, filters and output columns all address
// response fields through it.
package driller
