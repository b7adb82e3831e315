// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/awsctl/internal/attrs"
	"github.com/tfctl/awsctl/internal/config"
	"github.com/tfctl/awsctl/internal/filters"
	"github.com/tfctl/awsctl/internal/log"
)

// ValueKey is the column holding scalar items.
const ValueKey = "Value"

// Options control rendering.
type Options struct {
	// Format is text, json, yaml or raw.
	Format  string
	Attrs   attrs.AttrList
	Filter  string
	Sort    string
	Titles  bool
	Color   bool
	Padding int
	Header  string
	Footer  string
}

// Collector gathers projected values across pages. Lists are flattened so
// that each element becomes one row.
type Collector struct {
	items []any
}

// Add appends v, flattening nested lists. It has the shape of an emit
// callback.
func (c *Collector) Add(v any) error {
	if list, ok := v.([]any); ok {
		for _, e := range list {
			if err := c.Add(e); err != nil {
				return err
			}
		}
		return nil
	}
	if v != nil {
		c.items = append(c.items, v)
	}
	return nil
}

// Items returns the collected values.
func (c *Collector) Items() []any {
	return c.items
}

// Len returns the number of collected values.
func (c *Collector) Len() int {
	return len(c.items)
}

// Render writes items to w in the format of opts. If w is nil, os.Stdout is
// used.
func Render(w io.Writer, items []any, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	if opts.Format == "raw" {
		return writeRaw(w, items)
	}

	dataset, scalar, err := rows(items)
	if err != nil {
		return err
	}

	list := attrs.Merge(attrs.FromRows(dataset), opts.Attrs)
	if err := list.SetGlobalTransformSpec(); err != nil {
		return err
	}

	resultSet := filters.FilterDataset(dataset, list, opts.Filter)
	for _, row := range resultSet {
		for i := range list {
			if list[i].TransformSpec != "" {
				row[list[i].OutputKey] = list[i].Transform(row[list[i].OutputKey])
			}
		}
	}
	SortDataset(resultSet, opts.Sort)

	var doc any = visible(resultSet, list)
	if scalar {
		values := make([]any, 0, len(resultSet))
		for _, r := range resultSet {
			values = append(values, r[ValueKey])
		}
		doc = values
	}

	switch opts.Format {
	case "json":
		b, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode json output: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode yaml output: %w", err)
		}
		_, err = w.Write(b)
		return err
	case "", "text":
		if scalar {
			for _, r := range resultSet {
				fmt.Fprintln(w, InterfaceToString(r[ValueKey], "-"))
			}
			return nil
		}
		TableWriter(resultSet, list, opts, w)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// rows encodes items as a JSON array of row objects. Scalars and lists are
// wrapped in a Value column. scalar reports whether no item was an object.
func rows(items []any) (gjson.Result, bool, error) {
	raws := make([]string, 0, len(items))
	scalar := true
	for i, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			return gjson.Result{}, false, fmt.Errorf("failed to encode item %d: %w", i, err)
		}

		if gjson.ParseBytes(b).IsObject() {
			scalar = false
			raws = append(raws, string(b))
			continue
		}
		raws = append(raws, `{"`+ValueKey+`":`+string(b)+`}`)
	}
	return gjson.Parse("[" + strings.Join(raws, ",") + "]"), scalar && len(items) > 0, nil
}

// visible drops hidden columns from each row.
func visible(resultSet []map[string]interface{}, list attrs.AttrList) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(resultSet))
	for _, r := range resultSet {
		row := make(map[string]interface{}, len(list))
		for _, a := range list {
			if a.Include && a.Key != "*" {
				row[a.OutputKey] = r[a.OutputKey]
			}
		}
		out = append(out, row)
	}
	return out
}

func writeRaw(w io.Writer, items []any) error {
	for _, item := range items {
		if s, ok := item.(string); ok {
			fmt.Fprintln(w, s)
			continue
		}
		b, err := json.MarshalIndent(item, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode raw output: %w", err)
		}
		fmt.Fprintln(w, string(b))
	}
	return nil
}

// InterfaceToString converts a row value to its cell text. A custom empty
// value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(b)
	}
}

// TableWriter renders the result set as a borderless table honoring color,
// titles and padding options. If w is nil, os.Stdout is used.
func TableWriter(resultSet []map[string]interface{}, list attrs.AttrList, opts Options, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	if len(resultSet) == 0 {
		log.Debugf("no rows to render")
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")
		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(list))
		for _, attr := range list {
			if attr.Include && attr.Key != "*" {
				row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
			}
		}
		rows = append(rows, row)
	}

	if opts.Header != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Header))
	}

	pad := opts.Padding
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}
			if col > 0 {
				style = style.PaddingLeft(pad)
			}
			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		var headers []string
		for _, attr := range list {
			if attr.Include && attr.Key != "*" {
				headers = append(headers, attr.OutputKey)
			}
		}
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)

	if opts.Footer != "" {
		fmt.Fprintln(w, headerStyle.Render(opts.Footer))
	}
}

// getColors returns the configured table colors, falling back to defaults
// chosen for the terminal background.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		if c, err := config.GetString(key); err == nil {
			return lipgloss.Color(c)
		}
		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
