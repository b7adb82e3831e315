// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package history keeps the result log of a session: one entry per
// invocation with its bound parameters, page and item counts and last
// response. A Log is owned by the session that creates it and may be backed
// by the on-disk cache so that later sessions can list and diff it.
package history
