// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"

	"github.com/tfctl/awsctl/internal/engine"
	"github.com/tfctl/awsctl/internal/operation"
	"github.com/tfctl/awsctl/internal/paginator"
)

// SecretsAPI is the part of the Secrets Manager client the catalog uses.
type SecretsAPI interface {
	ListSecrets(context.Context, *secretsmanager.ListSecretsInput, ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error)
	GetSecretValue(context.Context, *secretsmanager.GetSecretValueInput, ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	DeleteSecret(context.Context, *secretsmanager.DeleteSecretInput, ...func(*secretsmanager.Options)) (*secretsmanager.DeleteSecretOutput, error)
}

const secretsService = "secretsmanager"

func secretsOperations(client func(awsv2.Config) SecretsAPI) []engine.Operation {
	return []engine.Operation{
		engine.Spec[SecretsAPI, secretsmanager.ListSecretsInput, secretsmanager.ListSecretsOutput]{
			Desc: operation.Descriptor{
				Service: secretsService, Prefix: "SEC", Operation: "ListSecrets",
				Verb: "Get", Noun: "SECSecretList",
				Usage: "list secret metadata",
				Params: []operation.Param{
					{Name: "FilterKey", Type: operation.String, Aliases: []string{"Key"},
						Usage: "filter key, e.g. name, description, tag-key, all"},
					{Name: "FilterValues", Type: operation.StringList, Aliases: []string{"Values"},
						Usage: "filter values"},
					{Name: "IncludePlannedDeletion", Type: operation.Bool,
						Usage: "include secrets scheduled for deletion"},
					{Name: "SortOrder", Type: operation.String, Usage: "asc or desc"},
				},
				DefaultSelect: "SecretList",
				Paginated:     true,
			},
			Client: client,
			Build: func(c *operation.Context) (*secretsmanager.ListSecretsInput, error) {
				filter := operation.Nested(c, []string{"FilterKey", "FilterValues"},
					func(f *smtypes.Filter) {
						f.Key = smtypes.FilterNameStringType(c.StringValue("FilterKey"))
						f.Values = c.StringList("FilterValues")
					})
				return &secretsmanager.ListSecretsInput{
					Filters:                single(filter),
					IncludePlannedDeletion: c.Bool("IncludePlannedDeletion"),
					SortOrder:              smtypes.SortOrderType(c.StringValue("SortOrder")),
				}, nil
			},
			Call: engine.Method(SecretsAPI.ListSecrets),
			Pager: &paginator.Pager[secretsmanager.ListSecretsInput, secretsmanager.ListSecretsOutput]{
				Token:    func(o *secretsmanager.ListSecretsOutput) *string { return o.NextToken },
				SetToken: func(i *secretsmanager.ListSecretsInput, t *string) { i.NextToken = t },
				Count:    func(o *secretsmanager.ListSecretsOutput) int { return len(o.SecretList) },
				SetLimit: func(i *secretsmanager.ListSecretsInput, n int32) { i.MaxResults = &n },
				MinLimit: 1,
				MaxLimit: 100,
			},
		},

		engine.Spec[SecretsAPI, secretsmanager.GetSecretValueInput, secretsmanager.GetSecretValueOutput]{
			Desc: operation.Descriptor{
				Service: secretsService, Prefix: "SEC", Operation: "GetSecretValue",
				Verb: "Get", Noun: "SECSecretValue",
				Usage: "get the value of a secret",
				Params: []operation.Param{
					{Name: "SecretId", Type: operation.String, Required: true, Positional: true,
						Aliases: []string{"Name", "Arn"}, Usage: "secret name or ARN"},
					{Name: "VersionId", Type: operation.String, Usage: "secret version"},
					{Name: "VersionStage", Type: operation.String, Usage: "staging label, e.g. AWSCURRENT"},
				},
				DefaultSelect:     "SecretString",
				SensitiveResponse: true,
			},
			Client: client,
			Build: func(c *operation.Context) (*secretsmanager.GetSecretValueInput, error) {
				return &secretsmanager.GetSecretValueInput{
					SecretId:     c.String("SecretId"),
					VersionId:    c.String("VersionId"),
					VersionStage: c.String("VersionStage"),
				}, nil
			},
			Call: engine.Method(SecretsAPI.GetSecretValue),
		},

		engine.Spec[SecretsAPI, secretsmanager.DeleteSecretInput, secretsmanager.DeleteSecretOutput]{
			Desc: operation.Descriptor{
				Service: secretsService, Prefix: "SEC", Operation: "DeleteSecret",
				Verb: "Remove", Noun: "SECSecret",
				Usage: "schedule a secret for deletion",
				Params: []operation.Param{
					{Name: "SecretId", Type: operation.String, Required: true, Positional: true,
						Aliases: []string{"Name", "Arn"}, Usage: "secret name or ARN"},
					{Name: "RecoveryWindowInDays", Type: operation.Int, Usage: "days before deletion, 7 to 30"},
					{Name: "ForceDeleteWithoutRecovery", Type: operation.Bool, Usage: "delete immediately"},
				},
				DefaultSelect: "DeletionDate",
				Impact:        operation.ImpactHigh,
				ConfirmTarget: "SecretId",
			},
			Client: client,
			Build: func(c *operation.Context) (*secretsmanager.DeleteSecretInput, error) {
				return &secretsmanager.DeleteSecretInput{
					SecretId:                   c.String("SecretId"),
					RecoveryWindowInDays:       c.Int64("RecoveryWindowInDays"),
					ForceDeleteWithoutRecovery: c.Bool("ForceDeleteWithoutRecovery"),
				}, nil
			},
			Call: engine.Method(SecretsAPI.DeleteSecret),
		},
	}
}
