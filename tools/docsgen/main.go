// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// docsgen writes a markdown page and a tldr page for every catalog operation.
//
//	go run ./tools/docsgen <docs-dir>
//
// <docs-dir>/examples.yaml may list examples per command name.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tfctl/awsctl/internal/catalog"
	"github.com/tfctl/awsctl/internal/command"
	"github.com/tfctl/awsctl/internal/engine"
)

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type Flag struct {
	Syntax      string
	Type        string
	Description string
	Default     string
}

type TemplateData struct {
	Command   string
	Alias     string
	Service   string
	Operation string
	Usage     string
	Impact    string
	Select    string
	Paginated bool
	Flags     []Flag
	Examples  []Example
	Date      string
	Version   string
}

type Outputs struct {
	Template string
	Path     func(TemplateData) string
}

const markdownTemplate = `# {{ .Command }}

{{ .Usage }}

Alias: ` + "`{{ .Alias }}`" + `. Calls the {{ .Service }} ` + "`{{ .Operation }}`" + ` API.
Impact: {{ .Impact }}. Default selection: ` + "`{{ .Select }}`" + `.{{ if .Paginated }} Paginated.{{ end }}

## Parameters

| Flag | Type | Description | Default |
|---|---|---|---|
{{- range .Flags }}
| ` + "`{{ .Syntax }}`" + ` | {{ .Type }} | {{ .Description }} | {{ .Default }} |
{{- end }}
{{ if .Examples }}
## Examples
{{ range .Examples }}
{{ .Description }}

    {{ .Command }}
{{ end }}{{ end }}
Generated {{ .Date }} for awsctl {{ .Version }}.
`

const tldrTemplate = `# awsctl {{ .Command }}

> {{ .Usage }}
> Alias: {{ .Alias }}.
{{ range .Examples }}
- {{ .Description }}:

` + "`{{ .Command }}`" + `
{{ end }}`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen <docs-dir>")
		os.Exit(1)
	}
	docs := os.Args[1]

	examples := map[string][]Example{}
	if data, err := os.ReadFile(filepath.Join(docs, "examples.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &examples); err != nil {
			panic(err)
		}
	}

	reg, err := catalog.NewRegistry()
	if err != nil {
		panic(err)
	}

	types := []Outputs{
		{Template: markdownTemplate, Path: func(d TemplateData) string {
			return filepath.Join(docs, "commands", d.Service, d.Command+".md")
		}},
		{Template: tldrTemplate, Path: func(d TemplateData) string {
			return filepath.Join(docs, "tldr", "awsctl-"+strings.ToLower(d.Command)+".md")
		}},
	}

	date := time.Now().Format("January 2, 2006")
	version := getVersion()
	for _, op := range reg.Operations() {
		data := templateData(op, examples)
		data.Date = date
		data.Version = version

		for _, t := range types {
			path := t.Path(data)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				panic(err)
			}
			fmt.Println("Generating", path)
			if err := render(path, t.Template, data); err != nil {
				panic(err)
			}
		}
	}
}

func templateData(op engine.Operation, examples map[string][]Example) TemplateData {
	d := op.Descriptor()
	data := TemplateData{
		Command:   d.CommandName(),
		Alias:     d.Alias(),
		Service:   d.Service,
		Operation: d.Operation,
		Usage:     d.Usage,
		Impact:    d.Impact.String(),
		Select:    d.DefaultSelect,
		Paginated: d.Paginated,
		Examples:  examples[d.CommandName()],
	}
	for _, p := range d.Params {
		f := Flag{
			Syntax:      "--" + command.FlagName(p.Name),
			Type:        p.Type.String(),
			Description: p.Usage,
		}
		if p.Positional {
			f.Syntax += ", positional"
		}
		if p.Required {
			f.Description += " (required)"
		}
		if p.Default != nil {
			f.Default = fmt.Sprint(p.Default)
		}
		data.Flags = append(data.Flags, f)
	}
	return data
}

func render(path string, text string, data TemplateData) error {
	tmpl, err := template.New(filepath.Base(path)).Parse(text)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return tmpl.Execute(file, data)
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
