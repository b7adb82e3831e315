// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/tfctl/awsctl/internal/cacheutil"
	"github.com/tfctl/awsctl/internal/catalog"
	"github.com/tfctl/awsctl/internal/command"
	"github.com/tfctl/awsctl/internal/config"
	"github.com/tfctl/awsctl/internal/confirm"
	"github.com/tfctl/awsctl/internal/engine"
	"github.com/tfctl/awsctl/internal/history"
	"github.com/tfctl/awsctl/internal/log"
	"github.com/tfctl/awsctl/internal/meta"
	"github.com/tfctl/awsctl/internal/version"
)

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.String())
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string, reg *engine.Registry) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	args = canonicalOperation(args, reg)
	return deduplicateFlags(args, command.RepeatableFlags(reg)...)
}

// canonicalOperation rewrites case-insensitive service and operation names,
// and aliases, to the registered command names.
func canonicalOperation(args []string, reg *engine.Registry) []string {
	if len(args) < 2 || reg == nil {
		return args
	}
	for _, svc := range reg.Services() {
		if strings.EqualFold(args[1], svc) {
			args[1] = svc
		}
	}
	if len(args) < 3 || strings.HasPrefix(args[2], "-") {
		return args
	}
	if op, ok := reg.Lookup(args[2]); ok && op.Descriptor().Service == args[1] {
		args[2] = op.Descriptor().CommandName()
	}
	return args
}

// processSetOnly expands an explicit @set argument with the entries of the
// <service>.<set> config key, at the @set position.
func processSetOnly(args []string) []string {
	idx := 2
	if len(args) <= idx {
		return args
	}
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			setArgs, _ := config.GetStringSlice(args[1] + "." + a[1:])
			log.Debugf("set expanded: set=%s, entries=%v", a[1:], setArgs)
			return injectConfigSet(args, setArgs, idx+i)
		}
	}
	return args
}

// injectConfigSet replaces args[at] with the whitespace-split entries.
func injectConfigSet(args []string, entries []string, at int) []string {
	out := slices.Clone(args[:at])
	for _, e := range entries {
		out = append(out, strings.Fields(e)...)
	}
	return append(out, args[at+1:]...)
}

// deduplicateFlags drops all but the last occurrence of each flag, together
// with its value. A flag takes the next argument as its value unless it uses
// the --flag=value form or the next argument is itself a flag. Flags named in
// repeatable accumulate and are kept as given.
func deduplicateFlags(args []string, repeatable ...string) []string {
	if len(args) <= 2 {
		return args
	}

	type group struct {
		name  string
		words []string
	}
	var groups []group
	for i := 2; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") || a == "-" || a == "--" {
			groups = append(groups, group{words: []string{a}})
			continue
		}
		name, _, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		g := group{name: name, words: []string{a}}
		if !hasValue && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			g.words = append(g.words, args[i+1])
			i++
		}
		groups = append(groups, g)
	}

	last := map[string]int{}
	for i, g := range groups {
		if g.name != "" && !slices.Contains(repeatable, g.name) {
			last[g.name] = i
		}
	}

	out := slices.Clone(args[:2])
	for i, g := range groups {
		if n, ok := last[g.name]; ok && n != i {
			continue
		}
		out = append(out, g.words...)
	}
	return out
}

// openHistory returns the session's result log, persisted in the cache when
// caching is enabled.
func openHistory() *history.Log {
	size, _ := config.GetInt("history.size", history.DefaultSize)
	cache, ok, err := cacheutil.Open()
	if err != nil {
		log.Warnf("history is not persisted: %v", err)
	}
	if !ok {
		return history.New(size)
	}
	if err := cache.Purge(historyMaxAge()); err != nil {
		log.WithError(err).Warn("failed to purge cache")
	}
	l, err := history.Open(size, history.CacheStore{Cache: cache})
	if err != nil {
		log.WithError(err).Warn("starting with an empty history")
	}
	return l
}

// historyMaxAge reads history.max_age, a duration such as "720h". Cache
// entries older than it are purged when the session starts. Unset or invalid
// values disable purging.
func historyMaxAge() time.Duration {
	v, _ := config.GetString("history.max_age", "")
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warnf("ignoring history.max_age %q: %v", v, err)
		return 0
	}
	return d
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(ctx context.Context, args []string, m meta.Meta) int {
	app, err := command.InitApp(ctx, args, m)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	reg, err := catalog.NewRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	if !slices.Contains(args, "--help") && !slices.Contains(args, "-h") {
		args = processCommandArgs(args, reg)
	} else {
		args = canonicalOperation(args, reg)
	}

	m := meta.Meta{
		Registry: reg,
		History:  openHistory(),
		Prompter: confirm.NewTerminalPrompter(),
	}
	return initAndRunApp(ctx, args, m)
}
