// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws loads the shared AWS SDK configuration every catalog operation
// builds its service client from.
package aws
