// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"github.com/tfctl/awsctl/internal/engine"
	"github.com/tfctl/awsctl/internal/operation"
	"github.com/tfctl/awsctl/internal/paginator"
)

// SSMAPI is the part of the SSM client the catalog uses.
type SSMAPI interface {
	DescribeParameters(context.Context, *ssm.DescribeParametersInput, ...func(*ssm.Options)) (*ssm.DescribeParametersOutput, error)
	GetParameter(context.Context, *ssm.GetParameterInput, ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	PutParameter(context.Context, *ssm.PutParameterInput, ...func(*ssm.Options)) (*ssm.PutParameterOutput, error)
	DeleteParameter(context.Context, *ssm.DeleteParameterInput, ...func(*ssm.Options)) (*ssm.DeleteParameterOutput, error)
}

const ssmService = "ssm"

func ssmOperations(client func(awsv2.Config) SSMAPI) []engine.Operation {
	return []engine.Operation{
		engine.Spec[SSMAPI, ssm.DescribeParametersInput, ssm.DescribeParametersOutput]{
			Desc: operation.Descriptor{
				Service: ssmService, Prefix: "SSM", Operation: "DescribeParameters",
				Verb: "Get", Noun: "SSMParameterList",
				Usage: "list parameter metadata",
				Params: []operation.Param{
					{Name: "FilterKey", Type: operation.String, Aliases: []string{"Key"},
						Usage: "filter key, e.g. Name, Type, Path or tag:<key>"},
					{Name: "FilterOption", Type: operation.String, Aliases: []string{"Option"},
						Usage: "filter option, e.g. Equals, BeginsWith, Recursive"},
					{Name: "FilterValues", Type: operation.StringList, Aliases: []string{"Values"},
						Usage: "filter values"},
					{Name: "Shared", Type: operation.Bool, Usage: "include parameters shared with this account"},
				},
				DefaultSelect: "Parameters",
				Paginated:     true,
			},
			Client: client,
			Build: func(c *operation.Context) (*ssm.DescribeParametersInput, error) {
				filter := operation.Nested(c, []string{"FilterKey", "FilterOption", "FilterValues"},
					func(f *ssmtypes.ParameterStringFilter) {
						f.Key = c.String("FilterKey")
						f.Option = c.String("FilterOption")
						f.Values = c.StringList("FilterValues")
					})
				return &ssm.DescribeParametersInput{
					ParameterFilters: single(filter),
					Shared:           c.Bool("Shared"),
				}, nil
			},
			Call: engine.Method(SSMAPI.DescribeParameters),
			Pager: &paginator.Pager[ssm.DescribeParametersInput, ssm.DescribeParametersOutput]{
				Token:    func(o *ssm.DescribeParametersOutput) *string { return o.NextToken },
				SetToken: func(i *ssm.DescribeParametersInput, t *string) { i.NextToken = t },
				Count:    func(o *ssm.DescribeParametersOutput) int { return len(o.Parameters) },
				SetLimit: func(i *ssm.DescribeParametersInput, n int32) { i.MaxResults = &n },
				MinLimit: 1,
				MaxLimit: 50,
			},
		},

		engine.Spec[SSMAPI, ssm.GetParameterInput, ssm.GetParameterOutput]{
			Desc: operation.Descriptor{
				Service: ssmService, Prefix: "SSM", Operation: "GetParameter",
				Verb: "Get", Noun: "SSMParameter",
				Usage: "get one parameter",
				Params: []operation.Param{
					{Name: "Name", Type: operation.String, Required: true, Positional: true,
						Usage: "parameter name or ARN"},
					{Name: "WithDecryption", Type: operation.Bool, Aliases: []string{"Decrypt"},
						Usage: "decrypt SecureString values"},
				},
				DefaultSelect:     "Parameter",
				SensitiveResponse: true,
			},
			Client: client,
			Build: func(c *operation.Context) (*ssm.GetParameterInput, error) {
				return &ssm.GetParameterInput{
					Name:           c.String("Name"),
					WithDecryption: c.Bool("WithDecryption"),
				}, nil
			},
			Call: engine.Method(SSMAPI.GetParameter),
		},

		engine.Spec[SSMAPI, ssm.PutParameterInput, ssm.PutParameterOutput]{
			Desc: operation.Descriptor{
				Service: ssmService, Prefix: "SSM", Operation: "PutParameter",
				Verb: "Write", Noun: "SSMParameter",
				Usage: "create or update a parameter",
				Params: []operation.Param{
					{Name: "Name", Type: operation.String, Required: true, Positional: true,
						Usage: "parameter name"},
					{Name: "Value", Type: operation.String, Required: true, Sensitive: true,
						Usage: "parameter value"},
					{Name: "Type", Type: operation.String, Default: "String",
						Usage: "String, StringList or SecureString"},
					{Name: "Description", Type: operation.String, Usage: "parameter description"},
					{Name: "KeyId", Type: operation.String, Usage: "KMS key for SecureString values"},
					{Name: "Overwrite", Type: operation.Bool, Usage: "replace an existing parameter"},
					{Name: "Tier", Type: operation.String, Usage: "Standard, Advanced or Intelligent-Tiering"},
				},
				DefaultSelect: "Version",
				Impact:        operation.ImpactMedium,
				ConfirmTarget: "Name",
			},
			Client: client,
			Build: func(c *operation.Context) (*ssm.PutParameterInput, error) {
				return &ssm.PutParameterInput{
					Name:        c.String("Name"),
					Value:       c.String("Value"),
					Type:        ssmtypes.ParameterType(c.StringValue("Type")),
					Description: c.String("Description"),
					KeyId:       c.String("KeyId"),
					Overwrite:   c.Bool("Overwrite"),
					Tier:        ssmtypes.ParameterTier(c.StringValue("Tier")),
				}, nil
			},
			Call: engine.Method(SSMAPI.PutParameter),
		},

		engine.Spec[SSMAPI, ssm.DeleteParameterInput, ssm.DeleteParameterOutput]{
			Desc: operation.Descriptor{
				Service: ssmService, Prefix: "SSM", Operation: "DeleteParameter",
				Verb: "Remove", Noun: "SSMParameter",
				Usage: "delete a parameter",
				Params: []operation.Param{
					{Name: "Name", Type: operation.String, Required: true, Positional: true,
						Usage: "parameter name"},
				},
				DefaultSelect: "^Name",
				Impact:        operation.ImpactHigh,
				ConfirmTarget: "Name",
			},
			Client: client,
			Build: func(c *operation.Context) (*ssm.DeleteParameterInput, error) {
				return &ssm.DeleteParameterInput{Name: c.String("Name")}, nil
			},
			Call: engine.Method(SSMAPI.DeleteParameter),
		},
	}
}
