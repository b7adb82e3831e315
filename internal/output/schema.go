// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"

	"github.com/tfctl/awsctl/internal/attrs"
	"github.com/tfctl/awsctl/internal/log"
	"github.com/tfctl/awsctl/internal/operation"
)

// maxSchemaDepth limits how deep response fields are listed.
const maxSchemaDepth = 3

// DumpSchema writes the parameters of d and the selectable fields of the
// response type resp to w. If w is nil, os.Stdout is used.
func DumpSchema(w io.Writer, d operation.Descriptor, resp reflect.Type) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintf(w, "%s (%s)\n", d.CommandName(), d.Alias())
	if d.Usage != "" {
		fmt.Fprintf(w, "  %s\n", d.Usage)
	}
	fmt.Fprintf(w, "  impact: %s, default selection: %s\n\n", d.Impact, d.DefaultSelect)

	if len(d.Params) > 0 {
		var rows [][]string
		for _, p := range d.Params {
			name := p.Name
			if p.Positional {
				name += " (positional)"
			}
			rows = append(rows, []string{name, p.Type.String(), strconv.FormatBool(p.Required),
				strings.Join(p.Aliases, ","), p.Usage})
		}
		t := table.New().
			Border(lipgloss.HiddenBorder()).
			BorderTop(false).
			BorderBottom(false).
			BorderLeft(false).
			BorderRight(false).
			BorderHeader(false).
			StyleFunc(func(_, col int) lipgloss.Style {
				if col > 0 {
					return lipgloss.NewStyle().PaddingLeft(1)
				}
				return lipgloss.NewStyle()
			}).
			Headers("PARAMETER", "TYPE", "REQUIRED", "ALIASES", "USAGE").
			Rows(rows...)
		fmt.Fprintln(w, t)
	}

	fmt.Fprintln(w, "\nSelectable response fields:")
	fields := schemaWalker("", resp, 0)
	if len(fields) == 0 {
		log.Debugf("no fields found for type: %v", resp)
	}
	for _, f := range fields {
		fmt.Fprintln(w, "  "+f)
	}
}

var schemaTimeType = reflect.TypeOf(time.Time{})

// schemaWalker lists the exported field paths of typ in declaration order.
// List fields are suffixed with [*].
func schemaWalker(holder string, typ reflect.Type, depth int) []string {
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct || typ == schemaTimeType || depth >= maxSchemaDepth {
		return nil
	}

	var out []string
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() || field.Name == attrs.MetadataKey {
			continue
		}

		name := field.Name
		ft := field.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Slice && ft.Elem().Kind() != reflect.Uint8 {
			name += "[*]"
			ft = ft.Elem()
		}

		path := name
		if holder != "" {
			path = holder + "." + name
		}
		out = append(out, path)
		out = append(out, schemaWalker(path, ft, depth+1)...)
	}
	return out
}
