// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"os/exec"
	"strings"
	"unicode"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsctl/internal/config"
	"github.com/tfctl/awsctl/internal/engine"
	"github.com/tfctl/awsctl/internal/operation"
)

var (
	schemaFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "schema",
		Usage:       "list the parameters and selectable fields and exit",
		HideDefault: true,
	}

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
)

// NewOutputFlags returns the flags shaping rendered results. ns is the config
// namespace consulted before the global keys.
func NewOutputFlags(ns string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of columns to show (key[:title[:transform]])",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format (text, json, yaml, raw)",
			Value:   "text",
			Sources: configChain(ns, "output", "AWSCTL_OUTPUT"),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "cell padding for text output",
			Value: 1,
		},
		&cli.StringFlag{
			Name:  "sort",
			Usage: "comma-separated list of columns to sort by, - prefix for descending",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}
}

// NewGlobalFlags returns the flags shared by every operation command.
func NewGlobalFlags(ns string) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "confirm-impact",
			Usage: "lowest impact that asks for confirmation (none, low, medium, high)",
			Value: operation.ImpactHigh.String(),
			Sources: configChain(ns, "confirm_impact",
				"AWSCTL_CONFIRM_IMPACT"),
			Validator: func(value string) error {
				return FlagValidators(value, ImpactValidator)
			},
		},
		&cli.StringFlag{
			Name:    "endpoint-url",
			Usage:   "send requests to this endpoint instead of the default",
			Sources: configChain(ns, "endpoint_url", "AWSCTL_ENDPOINT_URL", "AWS_ENDPOINT_URL"),
		},
		&cli.BoolFlag{
			Name:  "force",
			Usage: "run without asking for confirmation",
			Value: false,
		},
		&cli.IntFlag{
			Name:    "max-attempts",
			Usage:   "maximum attempts per request, including retries",
			Sources: configChain(ns, "max_attempts", "AWSCTL_MAX_ATTEMPTS"),
		},
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "shared config profile",
			Sources: configChain(ns, "profile", "AWSCTL_PROFILE"),
		},
		&cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region",
			Sources: configChain(ns, "region", "AWSCTL_REGION"),
		},
		&cli.StringFlag{
			Name:    "select",
			Aliases: []string{"s"},
			Usage:   "response field to emit: *, ^Param or a dotted path",
		},
	}
	return append(flags, NewOutputFlags(ns)...)
}

// NewPagingFlags returns the flags of paginated operations.
func NewPagingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "max-items",
			Usage: "stop after emitting this many items (0 is no limit)",
			Validator: func(value int) error {
				if value < 0 {
					return fmt.Errorf("must not be negative")
				}
				return nil
			},
		},
		&cli.StringFlag{
			Name:  "next-token",
			Usage: "resume a listing from a continuation token",
		},
		&cli.BoolFlag{
			Name:  "no-auto-iteration",
			Usage: "fetch a single page and report the continuation token",
			Value: false,
		},
	}
}

// NewParamFlags returns one flag per parameter of d. Values are also read
// from AWSCTL_<SERVICE>_<PARAM> and from the config key
// <service>.<command>.<param>.
func NewParamFlags(d operation.Descriptor) []cli.Flag {
	flags := make([]cli.Flag, 0, len(d.Params))
	for _, p := range d.Params {
		name := FlagName(p.Name)
		aliases := paramAliases(p)
		usage := p.Usage
		if p.Required {
			usage += " (required)"
		}
		env := "AWSCTL_" + strings.ToUpper(d.Service) + "_" +
			strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		sources := sourceChain([]string{env}, d.Service+"."+d.CommandName()+"."+name)

		var f cli.Flag
		switch p.Type {
		case operation.Int:
			f = &cli.IntFlag{Name: name, Aliases: aliases, Usage: usage, Sources: sources}
		case operation.Bool:
			f = &cli.BoolFlag{Name: name, Aliases: aliases, Usage: usage, Sources: sources}
		case operation.StringList:
			f = &cli.StringSliceFlag{Name: name, Aliases: aliases, Usage: usage, Sources: sources}
		case operation.StringMap:
			f = &cli.StringMapFlag{Name: name, Aliases: aliases, Usage: usage, Sources: sources}
		default:
			f = &cli.StringFlag{Name: name, Aliases: aliases, Usage: usage, Sources: sources}
		}
		flags = append(flags, f)
	}
	return flags
}

// RepeatableFlags returns the names of the list and map parameter flags of
// every operation in reg. Repeating such a flag accumulates values.
func RepeatableFlags(reg *engine.Registry) []string {
	var names []string
	if reg == nil {
		return names
	}
	for _, op := range reg.Operations() {
		for _, p := range op.Descriptor().Params {
			if p.Type == operation.StringList || p.Type == operation.StringMap {
				names = append(names, FlagName(p.Name))
				names = append(names, paramAliases(p)...)
			}
		}
	}
	return names
}

// paramAliases returns the kebab-cased aliases of p plus the declared spellings
// that differ from them.
func paramAliases(p operation.Param) []string {
	name := FlagName(p.Name)
	seen := map[string]bool{name: true}
	var out []string
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, a := range p.Aliases {
		add(FlagName(a))
	}
	add(p.Name)
	for _, a := range p.Aliases {
		add(a)
	}
	return out
}

// FlagName kebab-cases a parameter name: WithDecryption becomes
// with-decryption and MFADelete becomes mfa-delete.
func FlagName(name string) string {
	r := []rune(name)
	var b strings.Builder
	for i, c := range r {
		if unicode.IsUpper(c) && i > 0 {
			prev := r[i-1]
			nextLower := i+1 < len(r) && unicode.IsLower(r[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('-')
			}
		}
		b.WriteRune(unicode.ToLower(c))
	}
	return b.String()
}

// checkFlagConflicts reports a name used by more than one flag.
func checkFlagConflicts(cmdName string, flags []cli.Flag) error {
	owner := map[string]string{}
	for _, f := range flags {
		names := f.Names()
		for _, n := range names {
			if o, ok := owner[n]; ok {
				return fmt.Errorf("%s: flag name %q of --%s is already used by --%s", cmdName, n, names[0], o)
			}
			owner[n] = names[0]
		}
	}
	return nil
}

// configChain builds the value sources of a flag: the environment variables
// first, then key under ns and globally in the config file.
func configChain(ns string, key string, envs ...string) cli.ValueSourceChain {
	keys := []string{key}
	if ns != "" {
		keys = []string{ns + "." + key, key}
	}
	return sourceChain(envs, keys...)
}

// sourceChain reads envs in order, then each dotted key of the config file.
func sourceChain(envs []string, keys ...string) cli.ValueSourceChain {
	chain := cli.NewValueSourceChain()
	for _, e := range envs {
		chain.Chain = append(chain.Chain, cli.EnvVar(e))
	}

	path := config.Path()
	if path == "" {
		return chain
	}
	for _, k := range keys {
		chain.Chain = append(chain.Chain, yaml.YAML(k, altsrc.StringSourcer(path)))
	}
	return chain
}

// pathHas checks if the given executable is on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
