// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package paginator drives token-based list operations page by page, honoring
// an item budget and the caller's choice between automatic and manual
// iteration.
package paginator
