// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package catalog declares the concrete AWS operations awsctl exposes. Each
// service file binds descriptors to SDK request and response records through
// an explicit Build function, and to the SDK client through a narrow
// interface so tests can substitute fakes.
package catalog
