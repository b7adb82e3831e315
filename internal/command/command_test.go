// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/awsctl/internal/aws"
	"github.com/tfctl/awsctl/internal/catalog"
	"github.com/tfctl/awsctl/internal/confirm"
	"github.com/tfctl/awsctl/internal/engine"
	"github.com/tfctl/awsctl/internal/history"
	"github.com/tfctl/awsctl/internal/meta"
	"github.com/tfctl/awsctl/internal/operation"
	"github.com/tfctl/awsctl/internal/paginator"
)

type getThingInput struct {
	Name    *string
	Count   *int64
	Tags    []string
	Labels  map[string]string
	Verbose *bool
}

type thing struct {
	Name  string
	Count int64
	Tags  []string
}

type getThingOutput struct {
	Thing thing
}

type listThingsInput struct {
	NextToken  *string
	MaxResults *int32
}

type listThingsOutput struct {
	Things    []thing
	NextToken *string
}

type deleteThingInput struct {
	Name *string
}

type deleteThingOutput struct{}

type demoOptions struct{}

// fakeDemo serves five things in pages of two.
type fakeDemo struct {
	got     *getThingInput
	lists   int
	deletes int
}

func (f *fakeDemo) GetThing(_ context.Context, in *getThingInput, _ ...func(*demoOptions)) (*getThingOutput, error) {
	f.got = in
	out := &getThingOutput{Thing: thing{Name: awsv2.ToString(in.Name), Tags: in.Tags}}
	if in.Count != nil {
		out.Thing.Count = *in.Count
	}
	return out, nil
}

func (f *fakeDemo) ListThings(_ context.Context, in *listThingsInput, _ ...func(*demoOptions)) (*listThingsOutput, error) {
	f.lists++
	start := 0
	if in.NextToken != nil {
		start, _ = strconv.Atoi(*in.NextToken)
	}
	end := min(start+2, 5)
	out := &listThingsOutput{}
	for i := start; i < end; i++ {
		out.Things = append(out.Things, thing{Name: "t" + strconv.Itoa(i), Count: int64(i)})
	}
	if end < 5 {
		out.NextToken = awsv2.String(strconv.Itoa(end))
	}
	return out, nil
}

func (f *fakeDemo) DeleteThing(_ context.Context, _ *deleteThingInput, _ ...func(*demoOptions)) (*deleteThingOutput, error) {
	f.deletes++
	return &deleteThingOutput{}, nil
}

func demoOperations(f *fakeDemo) []engine.Operation {
	client := func(awsv2.Config) *fakeDemo { return f }
	return []engine.Operation{
		engine.Spec[*fakeDemo, getThingInput, getThingOutput]{
			Desc: operation.Descriptor{
				Service: "demo", Prefix: "DM", Operation: "GetThing", Verb: "Get", Noun: "DMThing",
				Usage: "get one thing",
				Params: []operation.Param{
					{Name: "Name", Type: operation.String, Required: true, Positional: true, Aliases: []string{"ThingName"}},
					{Name: "Count", Type: operation.Int},
					{Name: "Tags", Type: operation.StringList},
					{Name: "Labels", Type: operation.StringMap},
					{Name: "Verbose", Type: operation.Bool},
				},
				DefaultSelect: "Thing",
			},
			Client: client,
			Build: func(c *operation.Context) (*getThingInput, error) {
				return &getThingInput{
					Name:    c.String("Name"),
					Count:   c.Int64("Count"),
					Tags:    c.StringList("Tags"),
					Labels:  c.StringMap("Labels"),
					Verbose: c.Bool("Verbose"),
				}, nil
			},
			Call: engine.Method((*fakeDemo).GetThing),
		},
		engine.Spec[*fakeDemo, listThingsInput, listThingsOutput]{
			Desc: operation.Descriptor{
				Service: "demo", Prefix: "DM", Operation: "ListThings", Verb: "Get", Noun: "DMThingList",
				DefaultSelect: "Things",
				Paginated:     true,
			},
			Client: client,
			Build: func(*operation.Context) (*listThingsInput, error) {
				return &listThingsInput{}, nil
			},
			Call: engine.Method((*fakeDemo).ListThings),
			Pager: &paginator.Pager[listThingsInput, listThingsOutput]{
				Token:    func(o *listThingsOutput) *string { return o.NextToken },
				SetToken: func(i *listThingsInput, t *string) { i.NextToken = t },
				Count:    func(o *listThingsOutput) int { return len(o.Things) },
			},
		},
		engine.Spec[*fakeDemo, deleteThingInput, deleteThingOutput]{
			Desc: operation.Descriptor{
				Service: "demo", Prefix: "DM", Operation: "DeleteThing", Verb: "Remove", Noun: "DMThing",
				Params: []operation.Param{
					{Name: "Name", Type: operation.String, Required: true, Positional: true},
				},
				DefaultSelect: "^Name",
				Impact:        operation.ImpactHigh,
				ConfirmTarget: "Name",
			},
			Client: client,
			Build: func(c *operation.Context) (*deleteThingInput, error) {
				return &deleteThingInput{Name: c.String("Name")}, nil
			},
			Call: engine.Method((*fakeDemo).DeleteThing),
		},
	}
}

type harness struct {
	fake     *fakeDemo
	meta     meta.Meta
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	prompted []string
	answer   bool
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("AWSCTL_CFG_FILE", "")

	h := &harness{fake: &fakeDemo{}, stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	reg, err := engine.NewRegistry(demoOperations(h.fake)...)
	require.NoError(t, err)

	h.meta = meta.Meta{
		Registry: reg,
		History:  history.New(10),
		Prompter: confirm.PrompterFunc(func(msg string) (bool, error) {
			h.prompted = append(h.prompted, msg)
			return h.answer, nil
		}),
		Stdout: h.stdout,
		Stderr: h.stderr,
		LoadAWS: func(context.Context, ...aws.Option) (awsv2.Config, error) {
			return awsv2.Config{Region: "us-east-1"}, nil
		},
	}
	return h
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	h.stdout.Reset()
	h.stderr.Reset()
	args = append([]string{"awsctl"}, args...)
	app, err := InitApp(context.Background(), args, h.meta)
	require.NoError(t, err)
	return app.Run(context.Background(), args)
}

func TestFlagName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Name", "name"},
		{"WithDecryption", "with-decryption"},
		{"MFADelete", "mfa-delete"},
		{"MFA", "mfa"},
		{"InstanceId", "instance-id"},
		{"KeyId", "key-id"},
		{"RecoveryWindowInDays", "recovery-window-in-days"},
		{"ListObjectsV2", "list-objects-v2"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FlagName(tt.in))
		})
	}
}

func TestParamAliases(t *testing.T) {
	p := operation.Param{Name: "SecretId", Aliases: []string{"Name", "Arn"}}
	assert.Equal(t, []string{"name", "arn", "SecretId", "Name", "Arn"}, paramAliases(p))

	p = operation.Param{Name: "name"}
	assert.Empty(t, paramAliases(p))
}

func TestValidators(t *testing.T) {
	assert.NoError(t, FlagValidators("json", OutputValidator))
	assert.Error(t, FlagValidators("xml", OutputValidator))
	assert.NoError(t, FlagValidators("Medium", ImpactValidator))
	assert.Error(t, FlagValidators("severe", ImpactValidator))
}

func TestInitAppCatalog(t *testing.T) {
	t.Setenv("AWSCTL_CFG_FILE", "")
	reg, err := catalog.NewRegistry()
	require.NoError(t, err)

	app, err := InitApp(context.Background(), []string{"awsctl"}, meta.Meta{Registry: reg})
	require.NoError(t, err)

	for _, svc := range reg.Services() {
		c := app.Command(svc)
		require.NotNil(t, c, svc)
		assert.Len(t, c.Commands, len(reg.ByService(svc)))
	}
	assert.NotNil(t, app.Command("operations"))
	assert.NotNil(t, app.Command("history"))
	assert.NotNil(t, app.Command("completion"))

	_, err = InitApp(context.Background(), []string{"awsctl"}, meta.Meta{})
	assert.Error(t, err)
}

func TestInitAppFlagConflict(t *testing.T) {
	t.Setenv("AWSCTL_CFG_FILE", "")
	f := &fakeDemo{}
	op := engine.Spec[*fakeDemo, deleteThingInput, deleteThingOutput]{
		Desc: operation.Descriptor{
			Service: "demo", Prefix: "DM", Operation: "DeleteThing", Verb: "Remove", Noun: "DMThing",
			Params:        []operation.Param{{Name: "Region", Type: operation.String}},
			DefaultSelect: "*",
		},
		Client: func(awsv2.Config) *fakeDemo { return f },
		Build:  func(*operation.Context) (*deleteThingInput, error) { return &deleteThingInput{}, nil },
		Call:   engine.Method((*fakeDemo).DeleteThing),
	}
	reg, err := engine.NewRegistry(op)
	require.NoError(t, err)

	_, err = InitApp(context.Background(), []string{"awsctl"}, meta.Meta{Registry: reg})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already used")
}

func TestOperationBinding(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, "demo", "Get-DMThing", "widget", "--count", "3", "--tags", "a", "--tags", "b",
		"--labels", "k=v", "--verbose", "-o", "json")
	require.NoError(t, err)

	require.NotNil(t, h.fake.got)
	assert.Equal(t, "widget", *h.fake.got.Name)
	assert.Equal(t, int64(3), *h.fake.got.Count)
	assert.Equal(t, []string{"a", "b"}, h.fake.got.Tags)
	assert.Equal(t, map[string]string{"k": "v"}, h.fake.got.Labels)
	assert.True(t, *h.fake.got.Verbose)
	assert.JSONEq(t, `[{"Count":3,"Name":"widget","Tags":["a","b"]}]`, h.stdout.String())
}

func TestOperationUnsetFlagsStayUnbound(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "demo", "DM-GetThing", "--thing-name", "widget", "-o", "json"))
	require.NotNil(t, h.fake.got)
	assert.Equal(t, "widget", *h.fake.got.Name)
	assert.Nil(t, h.fake.got.Count)
	assert.Nil(t, h.fake.got.Tags)
	assert.Nil(t, h.fake.got.Labels)
	assert.Nil(t, h.fake.got.Verbose)
}

func TestOperationEnvSource(t *testing.T) {
	h := newHarness(t)
	t.Setenv("AWSCTL_DEMO_COUNT", "7")

	require.NoError(t, h.run(t, "demo", "Get-DMThing", "widget", "-o", "json"))
	require.NotNil(t, h.fake.got.Count)
	assert.Equal(t, int64(7), *h.fake.got.Count)
}

func TestOperationArgumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{name: "flag and argument", args: []string{"demo", "Get-DMThing", "a", "--name", "b"}, errMsg: "both as --name"},
		{name: "too many arguments", args: []string{"demo", "Get-DMThing", "a", "b"}, errMsg: "takes one positional argument"},
		{name: "no positional", args: []string{"demo", "Get-DMThingList", "a"}, errMsg: "takes no positional arguments"},
		{name: "bad selection", args: []string{"demo", "Get-DMThing", "a", "-s", "Nope"}, errMsg: "invalid selection"},
		{name: "bad output", args: []string{"demo", "Get-DMThing", "a", "-o", "xml"}, errMsg: "must be one of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			err := h.run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Nil(t, h.fake.got)
		})
	}
}

func TestOperationMissingRequired(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, "demo", "Get-DMThing")
	var missing *operation.MissingRequiredParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Name", missing.Parameter)
	assert.Nil(t, h.fake.got)
}

func TestOperationSelect(t *testing.T) {
	tests := []struct {
		name string
		sel  string
		want string
	}{
		{name: "echo", sel: "^Name", want: "widget\n"},
		{name: "field", sel: "Thing.Name", want: "widget\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			require.NoError(t, h.run(t, "demo", "Get-DMThing", "widget", "--select", tt.sel))
			assert.Equal(t, tt.want, h.stdout.String())
		})
	}
}

func TestOperationPaging(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantNames []string
		wantLists int
		wantToken string
	}{
		{name: "all pages", wantNames: []string{"t0", "t1", "t2", "t3", "t4"}, wantLists: 3},
		{name: "max items", args: []string{"--max-items", "3"}, wantNames: []string{"t0", "t1", "t2", "t3"}, wantLists: 2, wantToken: "--next-token 4"},
		{name: "manual", args: []string{"--no-auto-iteration"}, wantNames: []string{"t0", "t1"}, wantLists: 1, wantToken: "--next-token 2"},
		{name: "resume", args: []string{"--next-token", "2"}, wantNames: []string{"t2", "t3"}, wantLists: 1, wantToken: "--next-token 4"},
		{name: "resume last page", args: []string{"--next-token", "4"}, wantNames: []string{"t4"}, wantLists: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			args := append([]string{"demo", "Get-DMThingList", "-o", "json"}, tt.args...)
			require.NoError(t, h.run(t, args...))

			var rows []thing
			require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &rows))
			var names []string
			for _, r := range rows {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, tt.wantLists, h.fake.lists)
			if tt.wantToken == "" {
				assert.Empty(t, h.stderr.String())
			} else {
				assert.Contains(t, h.stderr.String(), tt.wantToken)
			}
		})
	}
}

func TestOperationConfirmation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		answer      bool
		wantPrompt  bool
		wantDeletes int
		wantOut     string
	}{
		{name: "declined", answer: false, wantPrompt: true},
		{name: "accepted", answer: true, wantPrompt: true, wantDeletes: 1, wantOut: "old\n"},
		{name: "forced", args: []string{"--force"}, wantDeletes: 1, wantOut: "old\n"},
		{name: "threshold none", args: []string{"--confirm-impact", "none"}, wantDeletes: 1, wantOut: "old\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.answer = tt.answer

			args := append([]string{"demo", "Remove-DMThing", "old"}, tt.args...)
			require.NoError(t, h.run(t, args...))

			assert.Equal(t, tt.wantPrompt, len(h.prompted) == 1)
			assert.Equal(t, tt.wantDeletes, h.fake.deletes)
			assert.Equal(t, tt.wantOut, h.stdout.String())
			if tt.wantDeletes == 0 {
				assert.Contains(t, h.stderr.String(), "Remove-DMThing was not performed")
				assert.Contains(t, h.prompted[0], `"old"`)
			}
		})
	}
}

func TestOperationSchema(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "demo", "Get-DMThing", "--schema"))
	out := h.stdout.String()
	assert.Contains(t, out, "Get-DMThing (DM-GetThing)")
	assert.Contains(t, out, "Labels")
	assert.Contains(t, out, "Thing.Tags[*]")
	assert.Nil(t, h.fake.got)
}

func TestOperationsCommand(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "operations", "-o", "json", "--sort", "command"))
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, "Get-DMThing", rows[0]["command"])
	assert.Equal(t, "DM-GetThing", rows[0]["alias"])
	assert.Equal(t, "Remove-DMThing", rows[2]["command"])
	assert.Equal(t, "high", rows[2]["impact"])

	require.NoError(t, h.run(t, "operations", "nosuch", "-o", "json"))
	assert.Equal(t, "[]\n", h.stdout.String())
}

func TestHistoryCommands(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "demo", "Get-DMThing", "one", "--count", "1"))
	require.NoError(t, h.run(t, "demo", "Get-DMThing", "two", "--count", "2"))

	require.NoError(t, h.run(t, "history", "-o", "json"))
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, float64(1), rows[0]["n"])
	assert.Equal(t, "Get-DMThing", rows[0]["command"])
	assert.Equal(t, "ok", rows[0]["status"])

	require.NoError(t, h.run(t, "history", "show", "2"))
	var e history.Entry
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &e))
	assert.Equal(t, "one", e.Params["Name"])

	require.NoError(t, h.run(t, "history", "diff"))
	assert.Contains(t, h.stdout.String(), "two")

	err := h.run(t, "history", "show", "9")
	assert.ErrorContains(t, err, "no history entry 9")

	require.NoError(t, h.run(t, "history", "clear"))
	assert.Equal(t, 0, h.meta.History.Len())
}

func TestHistoryDiffPick(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "demo", "Get-DMThing", "one"))
	require.NoError(t, h.run(t, "demo", "Get-DMThing", "one"))

	saved := selectPair
	defer func() { selectPair = saved }()
	var labels []string
	selectPair = func(l []string) ([]int, error) {
		labels = l
		return []int{0, 1}, nil
	}

	require.NoError(t, h.run(t, "history", "diff", "--pick"))
	assert.Len(t, labels, 2)
	assert.Contains(t, h.stdout.String(), "identical")

	selectPair = func([]string) ([]int, error) { return nil, errors.New("no tty") }
	assert.Error(t, h.run(t, "history", "diff", "--pick"))
}

func TestCompletion(t *testing.T) {
	tests := []struct {
		shell string
		want  []string
	}{
		{shell: "bash", want: []string{"complete -F _awsctl awsctl", `"demo Get-DMThing"|"demo DM-GetThing"`, "--count", "--next-token", "demo operations history completion"}},
		{shell: "zsh", want: []string{"compdef _awsctl awsctl", "--thing-name", "bash zsh"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			h := newHarness(t)
			require.NoError(t, h.run(t, "completion", tt.shell))
			for _, w := range tt.want {
				assert.Contains(t, h.stdout.String(), w)
			}
		})
	}

	h := newHarness(t)
	assert.Error(t, h.run(t, "completion", "fish"))
}
