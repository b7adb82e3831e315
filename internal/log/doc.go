// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package log wraps apex/log with the single-letter level format used across
// awsctl and the AWSCTL_LOG level switch.
package log
