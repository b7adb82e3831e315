// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsctl/internal/meta"
)

const bashCompletionScript = `# bash completion for awsctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_awsctl()
{
    local cur prev opts
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "{{ join .Top }} --help --version" -- "$cur") )
        return 0
    fi

    if [[ ${COMP_CWORD} -eq 2 ]]; then
        case "${COMP_WORDS[1]}" in
{{- range .Groups }}
        {{ .Name }}) opts="{{ join .Words }}" ;;
{{- end }}
        *) opts="" ;;
        esac
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    case "${COMP_WORDS[1]} ${COMP_WORDS[2]}" in
{{- range .Groups }}{{ $g := .Name }}{{ range .Leaves }}
    {{ range $i, $n := .Names }}{{ if $i }}|{{ end }}"{{ $g }} {{ $n }}"{{ end }}) opts="{{ join .Flags }}" ;;
{{- end }}{{ end }}
    *) opts="--help" ;;
    esac
    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
}

complete -F _awsctl awsctl
`

const zshCompletionScript = `#compdef awsctl
# zsh completion for awsctl

_awsctl() {
  case $CURRENT in
    2)
      compadd -- {{ join .Top }} --help --version
      ;;
    3)
      case $words[2] in
{{- range .Groups }}
        {{ .Name }}) compadd -- {{ join .Words }} ;;
{{- end }}
      esac
      ;;
    *)
      case "$words[2] $words[3]" in
{{- range .Groups }}{{ $g := .Name }}{{ range .Leaves }}
        {{ range $i, $n := .Names }}{{ if $i }}|{{ end }}"{{ $g }} {{ $n }}"{{ end }}) compadd -- {{ join .Flags }} ;;
{{- end }}{{ end }}
        *) _files ;;
      esac
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _awsctl awsctl
`

// completionTree is the command tree as seen by the completion scripts.
type completionTree struct {
	Top    []string
	Groups []completionGroup
}

type completionGroup struct {
	Name   string
	Words  []string
	Leaves []completionLeaf
}

type completionLeaf struct {
	Names []string
	Flags []string
}

// newCompletionTree walks the commands below root.
func newCompletionTree(root *cli.Command) completionTree {
	var t completionTree
	for _, c := range root.Commands {
		if c.Hidden {
			continue
		}
		t.Top = append(t.Top, c.Name)

		g := completionGroup{Name: c.Name}
		if c.Name == "completion" {
			g.Words = []string{"bash", "zsh"}
		}
		for _, sub := range c.Commands {
			if sub.Hidden {
				continue
			}
			g.Words = append(g.Words, sub.Name)
			g.Words = append(g.Words, sub.Aliases...)
			g.Leaves = append(g.Leaves, completionLeaf{
				Names: append([]string{sub.Name}, sub.Aliases...),
				Flags: flagWords(sub.Flags),
			})
		}
		if len(g.Words) == 0 {
			g.Words = flagWords(c.Flags)
		}
		t.Groups = append(t.Groups, g)
	}
	return t
}

// flagWords renders flags as command line words, -x for single letters.
func flagWords(flags []cli.Flag) []string {
	var words []string
	for _, f := range flags {
		for _, n := range f.Names() {
			if len(n) == 1 {
				words = append(words, "-"+n)
			} else {
				words = append(words, "--"+n)
			}
		}
	}
	return words
}

// WriteCompletion renders the completion script for shell.
func WriteCompletion(w io.Writer, root *cli.Command, shell string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletionScript
	case "zsh":
		script = zshCompletionScript
	default:
		return fmt.Errorf("unsupported shell %q: must be bash or zsh", shell)
	}

	tmpl, err := template.New(shell).
		Funcs(template.FuncMap{"join": func(s []string) string { return strings.Join(s, " ") }}).
		Parse(script)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, newCompletionTree(root))
}

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		default:
			fmt.Fprintln(m.Err(), "usage: awsctl completion [bash|zsh]")
			return nil
		}
	}
	return WriteCompletion(m.Out(), cmd.Root(), shell)
}

func completionCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "awsctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": m,
		},
		Action: completionCommandAction,
	}
}
