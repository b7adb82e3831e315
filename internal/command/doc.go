// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for awsctl. Every catalog
// operation becomes a subcommand of its service with flags generated from the
// operation's parameters.
package command
