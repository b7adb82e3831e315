// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/awsctl/internal/confirm"
	"github.com/tfctl/awsctl/internal/history"
	"github.com/tfctl/awsctl/internal/operation"
	"github.com/tfctl/awsctl/internal/paginator"
)

// Gateway-response shaped request and response records.
type getGatewayResponseInput struct {
	RestApiId    *string
	ResponseType string
}

type getGatewayResponseOutput struct {
	ResponseType       string
	StatusCode         *string
	ResponseParameters map[string]string
}

type gatewayOptions struct{}

type fakeGateway struct {
	calls int
	got   *getGatewayResponseInput
	err   error
}

func (f *fakeGateway) GetGatewayResponse(_ context.Context, in *getGatewayResponseInput, _ ...func(*gatewayOptions)) (*getGatewayResponseOutput, error) {
	f.calls++
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return &getGatewayResponseOutput{ResponseType: in.ResponseType, StatusCode: awsv2.String("400")}, nil
}

func gatewaySpec(fake *fakeGateway, built *int) Spec[*fakeGateway, getGatewayResponseInput, getGatewayResponseOutput] {
	return Spec[*fakeGateway, getGatewayResponseInput, getGatewayResponseOutput]{
		Desc: operation.Descriptor{
			Service:   "apigateway",
			Prefix:    "AG",
			Operation: "GetGatewayResponse",
			Verb:      "Get",
			Noun:      "AGGatewayResponse",
			Params: []operation.Param{
				{Name: "RestApiId", Type: operation.String, Required: true, Positional: true},
				{Name: "ResponseType", Type: operation.String, Required: true},
			},
			DefaultSelect: "*",
			ConfirmTarget: "RestApiId",
		},
		Client: func(awsv2.Config) *fakeGateway { return fake },
		Build: func(c *operation.Context) (*getGatewayResponseInput, error) {
			*built++
			return &getGatewayResponseInput{
				RestApiId:    c.String("RestApiId"),
				ResponseType: c.StringValue("ResponseType"),
			}, nil
		},
		Call: Method((*fakeGateway).GetGatewayResponse),
	}
}

func bind(t *testing.T, d operation.Descriptor, values map[string]any) *operation.Context {
	t.Helper()
	c := operation.NewContext(d)
	for k, v := range values {
		require.NoError(t, c.Set(k, v))
	}
	return c
}

func TestRunWholeResponse(t *testing.T) {
	fake := &fakeGateway{}
	built := 0
	spec := gatewaySpec(fake, &built)
	log := history.New(10)

	var emitted []any
	res, err := spec.Run(context.Background(), Invocation{
		Params:  bind(t, spec.Desc, map[string]any{"RestApiId": "abc123", "ResponseType": "DEFAULT_4XX"}),
		Paging:  paginator.DefaultOptions(),
		Emit:    func(v any) error { emitted = append(emitted, v); return nil },
		History: log,
	})
	require.NoError(t, err)
	assert.False(t, res.Declined)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, "abc123", *fake.got.RestApiId)
	assert.Equal(t, "DEFAULT_4XX", fake.got.ResponseType)

	require.Len(t, emitted, 1)
	assert.Equal(t, &getGatewayResponseOutput{ResponseType: "DEFAULT_4XX", StatusCode: awsv2.String("400")}, emitted[0])

	last, ok := log.Last()
	require.True(t, ok)
	assert.Equal(t, "Get-AGGatewayResponse", last.Command)
	assert.Equal(t, 1, last.Pages)
	assert.JSONEq(t, `{"ResponseType":"DEFAULT_4XX","StatusCode":"400","ResponseParameters":null}`, string(last.Response))
}

func TestRunSelections(t *testing.T) {
	tests := []struct {
		name   string
		expr   string
		want   any
		errMsg string
	}{
		{name: "field", expr: "StatusCode", want: "400"},
		{name: "case insensitive field", expr: "statuscode", want: "400"},
		{name: "null map", expr: "ResponseParameters", want: nil},
		{name: "echo", expr: "^resttype", errMsg: "has no parameter"},
		{name: "echo param", expr: "^restapiid", want: "abc123"},
		{name: "unknown field", expr: "Missing", errMsg: "invalid selection"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeGateway{}
			built := 0
			spec := gatewaySpec(fake, &built)

			var emitted []any
			_, err := spec.Run(context.Background(), Invocation{
				Params: bind(t, spec.Desc, map[string]any{"RestApiId": "abc123", "ResponseType": "DEFAULT_4XX"}),
				Select: tt.expr,
				Emit:   func(v any) error { emitted = append(emitted, v); return nil },
			})
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Zero(t, built)
				assert.Zero(t, fake.calls)
				return
			}
			require.NoError(t, err)
			require.Len(t, emitted, 1)
			assert.Equal(t, tt.want, emitted[0])
		})
	}
}

func TestRunDeclined(t *testing.T) {
	fake := &fakeGateway{}
	built := 0
	spec := gatewaySpec(fake, &built)
	spec.Desc.Impact = operation.ImpactHigh
	log := history.New(10)

	var message string
	res, err := spec.Run(context.Background(), Invocation{
		Params: bind(t, spec.Desc, map[string]any{"RestApiId": "abc123", "ResponseType": "DEFAULT_4XX"}),
		Confirm: confirm.Policy{
			Threshold: operation.ImpactMedium,
			Prompter: confirm.PrompterFunc(func(m string) (bool, error) {
				message = m
				return false, nil
			}),
		},
		Emit:    func(any) error { t.Fatal("nothing should be emitted"); return nil },
		History: log,
	})
	require.NoError(t, err)
	assert.True(t, res.Declined)
	assert.Zero(t, built)
	assert.Zero(t, fake.calls)
	assert.Contains(t, message, `"abc123"`)

	last, ok := log.Last()
	require.True(t, ok)
	assert.True(t, last.Declined)
	assert.Empty(t, last.Response)
}

func TestRunMissingRequired(t *testing.T) {
	fake := &fakeGateway{}
	built := 0
	spec := gatewaySpec(fake, &built)

	_, err := spec.Run(context.Background(), Invocation{
		Params: bind(t, spec.Desc, map[string]any{"RestApiId": "abc123"}),
	})
	var missing *operation.MissingRequiredParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "ResponseType", missing.Parameter)
	assert.Zero(t, built)
	assert.Zero(t, fake.calls)
}

func TestRunRemoteError(t *testing.T) {
	fake := &fakeGateway{err: errors.New("boom")}
	built := 0
	spec := gatewaySpec(fake, &built)
	log := history.New(10)

	_, err := spec.Run(context.Background(), Invocation{
		Params:  bind(t, spec.Desc, map[string]any{"RestApiId": "abc123", "ResponseType": "DEFAULT_4XX"}),
		History: log,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GetGatewayResponse")
	assert.Contains(t, err.Error(), "boom")

	last, ok := log.Last()
	require.True(t, ok)
	assert.Contains(t, last.Err, "boom")
	assert.Empty(t, last.Response)
}

// Listing-shaped records for pagination.
type listInput struct {
	Token    *string
	PageSize *int32
}

type listOutput struct {
	Names []string
	Next  *string
}

type fakeLister struct {
	total int
	sizes []int32
}

func (f *fakeLister) List(_ context.Context, in *listInput) (*listOutput, error) {
	start := 0
	if in.Token != nil {
		start, _ = strconv.Atoi(*in.Token)
	}
	size := int32(2)
	if in.PageSize != nil {
		size = *in.PageSize
	}
	f.sizes = append(f.sizes, size)

	out := &listOutput{}
	for i := start; i < f.total && i < start+int(size); i++ {
		out.Names = append(out.Names, fmt.Sprintf("name-%d", i))
	}
	if next := start + int(size); next < f.total {
		out.Next = awsv2.String(strconv.Itoa(next))
	}
	return out, nil
}

func listSpec(fake *fakeLister) Spec[*fakeLister, listInput, listOutput] {
	return Spec[*fakeLister, listInput, listOutput]{
		Desc: operation.Descriptor{
			Service:       "test",
			Prefix:        "T",
			Operation:     "ListNames",
			Verb:          "Get",
			Noun:          "TName",
			DefaultSelect: "Names",
			Paginated:     true,
		},
		Client: func(awsv2.Config) *fakeLister { return fake },
		Build:  func(*operation.Context) (*listInput, error) { return &listInput{}, nil },
		Call: func(ctx context.Context, c *fakeLister, in *listInput) (*listOutput, error) {
			return c.List(ctx, in)
		},
		Pager: &paginator.Pager[listInput, listOutput]{
			Token:    func(o *listOutput) *string { return o.Next },
			SetToken: func(i *listInput, t *string) { i.Token = t },
			Count:    func(o *listOutput) int { return len(o.Names) },
			SetLimit: func(i *listInput, n int32) { i.PageSize = &n },
		},
	}
}

func TestRunPaginated(t *testing.T) {
	tests := []struct {
		name   string
		paging paginator.Options
		pages  int
		items  int
		sizes  []int32
	}{
		{name: "all", paging: paginator.DefaultOptions(), pages: 3, items: 5, sizes: []int32{2, 2, 2}},
		{name: "budget", paging: paginator.Options{AutoIterate: true, Budget: 3}, pages: 1, items: 3, sizes: []int32{3}},
		{name: "budget above total", paging: paginator.Options{AutoIterate: true, Budget: 10}, pages: 1, items: 5, sizes: []int32{10}},
		{name: "manual", paging: paginator.Options{Budget: paginator.Unbounded}, pages: 1, items: 2, sizes: []int32{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeLister{total: 5}
			spec := listSpec(fake)

			var names []any
			res, err := spec.Run(context.Background(), Invocation{
				Params: operation.NewContext(spec.Desc),
				Paging: tt.paging,
				Emit: func(v any) error {
					names = append(names, v.([]any)...)
					return nil
				},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.pages, res.State.Pages)
			assert.Equal(t, tt.items, res.State.Emitted)
			assert.Len(t, names, tt.items)
			assert.Equal(t, "name-0", names[0])
			assert.Equal(t, tt.sizes, fake.sizes)
		})
	}
}

func TestRegistry(t *testing.T) {
	built := 0
	gw := gatewaySpec(&fakeGateway{}, &built)
	ls := listSpec(&fakeLister{})

	r, err := NewRegistry(ls, gw)
	require.NoError(t, err)

	for _, name := range []string{"Get-AGGatewayResponse", "get-aggatewayresponse", "AG-GetGatewayResponse"} {
		op, ok := r.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, "GetGatewayResponse", op.Descriptor().Operation)
	}
	_, ok := r.Lookup("Get-Nothing")
	assert.False(t, ok)

	assert.Equal(t, []string{"apigateway", "test"}, r.Services())
	require.Len(t, r.Operations(), 2)
	assert.Equal(t, "apigateway", r.Operations()[0].Descriptor().Service)
	assert.Len(t, r.ByService("TEST"), 1)

	err = r.Register(gw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already used")

	broken := listSpec(&fakeLister{})
	broken.Desc.Noun = "TOther"
	broken.Desc.Operation = "ListOther"
	broken.Pager = nil
	err = r.Register(broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without a pager")
}

func TestHistoryRedactsSensitive(t *testing.T) {
	fake := &fakeGateway{}
	built := 0
	spec := gatewaySpec(fake, &built)
	spec.Desc.Params[1].Sensitive = true
	spec.Desc.SensitiveResponse = true
	log := history.New(10)

	_, err := spec.Run(context.Background(), Invocation{
		Params:  bind(t, spec.Desc, map[string]any{"RestApiId": "abc123", "ResponseType": "DEFAULT_4XX"}),
		History: log,
	})
	require.NoError(t, err)

	last, ok := log.Last()
	require.True(t, ok)
	assert.Equal(t, "******", last.Params["ResponseType"])
	assert.Equal(t, "abc123", last.Params["RestApiId"])
	assert.Empty(t, last.Response)

	b, err := json.Marshal(last)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "DEFAULT_4XX")
}
