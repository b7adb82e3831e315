// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package invoker performs one SDK call under a context and translates every
// failure into a RemoteInvocationError. It never retries; retry policy belongs
// to the SDK client configuration.
package invoker
