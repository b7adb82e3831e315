// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package confirm decides whether a destructive operation may run. The
// decision is a value consulted before any request is assembled; declining
// is not an error.
package confirm
