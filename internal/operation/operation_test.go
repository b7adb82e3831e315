// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package operation

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widgetFilter struct {
	Key    *string
	Values []string
}

type widgetInput struct {
	Name     *string
	Limit    *int32
	Force    *bool
	Tags     map[string]string
	Filter   *widgetFilter
	Children []string
}

func widgetDescriptor() Descriptor {
	return Descriptor{
		Service:       "widget",
		Prefix:        "WGT",
		Operation:     "GetWidget",
		Verb:          "Get",
		Noun:          "WGTWidget",
		DefaultSelect: "Widget",
		Impact:        ImpactNone,
		ConfirmTarget: "Name",
		Params: []Param{
			{Name: "Name", Type: String, Required: true, Positional: true, Aliases: []string{"WidgetName"}},
			{Name: "Limit", Type: Int, Default: 10},
			{Name: "Force", Type: Bool},
			{Name: "Tag", Type: StringMap},
			{Name: "FilterKey", Type: String},
			{Name: "FilterValue", Type: StringList},
		},
	}
}

func buildWidget(c *Context) (*widgetInput, error) {
	limit, err := c.Int32("Limit")
	if err != nil {
		return nil, err
	}
	in := &widgetInput{
		Name:  c.String("Name"),
		Limit: limit,
		Force: c.Bool("Force"),
		Tags:  c.StringMap("Tag"),
	}
	in.Filter = Nested(c, []string{"FilterKey", "FilterValue"}, func(f *widgetFilter) {
		f.Key = c.String("FilterKey")
		f.Values = c.StringList("FilterValue")
	})
	return in, nil
}

func TestDescriptor_Names(t *testing.T) {
	d := widgetDescriptor()
	assert.Equal(t, "Get-WGTWidget", d.CommandName())
	assert.Equal(t, "WGT-GetWidget", d.Alias())

	p, ok := d.Param("widgetname")
	require.True(t, ok)
	assert.Equal(t, "Name", p.Name)

	p, ok = d.Positional()
	require.True(t, ok)
	assert.Equal(t, "Name", p.Name)
}

func TestDescriptor_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Descriptor)
		wantErr string
	}{
		{name: "valid", mutate: func(*Descriptor) {}},
		{name: "no default select", mutate: func(d *Descriptor) { d.DefaultSelect = "" }, wantErr: "default selection"},
		{name: "no service", mutate: func(d *Descriptor) { d.Service = "" }, wantErr: "empty service"},
		{
			name:    "alias collides with name",
			mutate:  func(d *Descriptor) { d.Params[1].Aliases = []string{"name"} },
			wantErr: "already used",
		},
		{
			name:    "two positionals",
			mutate:  func(d *Descriptor) { d.Params[2].Positional = true },
			wantErr: "both positional",
		},
		{
			name:    "bad default",
			mutate:  func(d *Descriptor) { d.Params[2].Default = 3 },
			wantErr: "want bool",
		},
		{
			name:    "unknown confirm target",
			mutate:  func(d *Descriptor) { d.ConfirmTarget = "Nope" },
			wantErr: "confirm target",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := widgetDescriptor()
			tt.mutate(&d)
			err := d.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParseImpact(t *testing.T) {
	for _, s := range []string{"none", "low", "Medium", " high "} {
		_, err := ParseImpact(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseImpact("extreme")
	assert.Error(t, err)

	i, _ := ParseImpact("medium")
	assert.Equal(t, ImpactMedium, i)
	assert.Equal(t, "medium", i.String())
}

func TestContext_Set(t *testing.T) {
	tests := []struct {
		name    string
		param   string
		value   any
		want    any
		wantErr bool
	}{
		{name: "string", param: "Name", value: "w1", want: "w1"},
		{name: "alias", param: "WidgetName", value: "w1", want: "w1"},
		{name: "int widened", param: "Limit", value: int32(5), want: int64(5)},
		{name: "int from string", param: "Limit", value: "7", want: int64(7)},
		{name: "bad int", param: "Limit", value: "seven", wantErr: true},
		{name: "bool from string", param: "Force", value: "true", want: true},
		{name: "list from string", param: "FilterValue", value: "a", want: []string{"a"}},
		{name: "map", param: "Tag", value: map[string]string{"k": "v"}, want: map[string]string{"k": "v"}},
		{name: "type mismatch", param: "Name", value: 3, wantErr: true},
		{name: "unknown", param: "Bogus", value: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContext(widgetDescriptor())
			err := c.Set(tt.param, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			v, ok := c.Value(tt.param)
			assert.True(t, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestContext_UnboundAccessorsAreNil(t *testing.T) {
	c := NewContext(widgetDescriptor())

	assert.Nil(t, c.String("Name"))
	limit, err := c.Int32("Limit")
	require.NoError(t, err)
	assert.Nil(t, limit)
	assert.Nil(t, c.Int64("Limit"))
	assert.Nil(t, c.Bool("Force"))
	assert.Nil(t, c.StringList("FilterValue"))
	assert.Nil(t, c.StringMap("Tag"))
	assert.Empty(t, c.StringValue("Name"))
	assert.False(t, c.AnyBound("Name", "Force"))
	assert.Empty(t, c.Names())
}

func TestContext_Int32Range(t *testing.T) {
	tests := []struct {
		name    string
		value   int64
		want    int32
		wantErr bool
	}{
		{name: "small", value: 4, want: 4},
		{name: "max", value: math.MaxInt32, want: math.MaxInt32},
		{name: "min", value: math.MinInt32, want: math.MinInt32},
		{name: "above max", value: math.MaxInt32 + 1, wantErr: true},
		{name: "wraps to one", value: 1<<32 + 1, wantErr: true},
		{name: "below min", value: math.MinInt32 - 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContext(widgetDescriptor())
			require.NoError(t, c.Set("Limit", tt.value))

			n, err := c.Int32("Limit")
			if tt.wantErr {
				assert.ErrorContains(t, err, "out of range")
				assert.Nil(t, n)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, n)
			assert.Equal(t, tt.want, *n)
		})
	}
}

func TestAssemble_Int32OutOfRange(t *testing.T) {
	d := widgetDescriptor()
	c := NewContext(d)
	require.NoError(t, c.Set("Name", "w1"))
	require.NoError(t, c.Set("Limit", int64(4294967297)))

	in, err := Assemble(d, c, buildWidget)
	assert.ErrorContains(t, err, "parameter Limit")
	assert.Nil(t, in)
}

func TestAssemble_MissingRequired(t *testing.T) {
	c := NewContext(widgetDescriptor())
	built := false

	_, err := Assemble(widgetDescriptor(), c, func(c *Context) (*widgetInput, error) {
		built = true
		return buildWidget(c)
	})

	var missing *MissingRequiredParameterError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Name", missing.Parameter)
	assert.Equal(t, "Get-WGTWidget", missing.Operation)
	assert.False(t, built, "build must not run when a required parameter is missing")
}

func TestAssemble_RequiredSatisfiedByDefault(t *testing.T) {
	d := widgetDescriptor()
	d.Params[0].Default = "fallback"
	c := NewContext(d)

	in, err := Assemble(d, c, buildWidget)
	require.NoError(t, err)
	assert.Equal(t, "fallback", *in.Name)
}

func TestAssemble_OnlyBoundFieldsAreSet(t *testing.T) {
	d := widgetDescriptor()
	c := NewContext(d)
	require.NoError(t, c.Set("Name", "w1"))

	in, err := Assemble(d, c, buildWidget)
	require.NoError(t, err)

	assert.Equal(t, "w1", *in.Name)
	require.NotNil(t, in.Limit, "declared default applies")
	assert.Equal(t, int32(10), *in.Limit)
	assert.Nil(t, in.Force)
	assert.Nil(t, in.Tags)
	assert.Nil(t, in.Filter, "nested record with no bound fields is not sent")
}

func TestAssemble_NestedPartiallyBound(t *testing.T) {
	d := widgetDescriptor()
	c := NewContext(d)
	require.NoError(t, c.Set("Name", "w1"))
	require.NoError(t, c.Set("FilterValue", []string{"a", "b"}))

	in, err := Assemble(d, c, buildWidget)
	require.NoError(t, err)

	require.NotNil(t, in.Filter)
	assert.Nil(t, in.Filter.Key)
	assert.Equal(t, []string{"a", "b"}, in.Filter.Values)
}

func TestAssemble_BuildError(t *testing.T) {
	d := widgetDescriptor()
	c := NewContext(d)
	require.NoError(t, c.Set("Name", "w1"))

	_, err := Assemble(d, c, func(*Context) (*widgetInput, error) {
		return nil, errors.New("bad tag")
	})
	assert.ErrorContains(t, err, "bad tag")
}

func TestContext_Redacted(t *testing.T) {
	d := widgetDescriptor()
	d.Params[0].Sensitive = true
	c := NewContext(d)
	require.NoError(t, c.Set("Name", "hunter2"))
	require.NoError(t, c.Set("Force", true))

	assert.Equal(t, map[string]any{"Name": "******", "Force": true}, c.Redacted())
	assert.Equal(t, "hunter2", c.StringValue("Name"), "redaction does not touch bound values")
}
