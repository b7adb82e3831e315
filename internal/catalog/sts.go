// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/tfctl/awsctl/internal/engine"
	"github.com/tfctl/awsctl/internal/operation"
)

// STSAPI is the part of the STS client the catalog uses.
type STSAPI interface {
	GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

func stsOperations(client func(awsv2.Config) STSAPI) []engine.Operation {
	return []engine.Operation{
		engine.Spec[STSAPI, sts.GetCallerIdentityInput, sts.GetCallerIdentityOutput]{
			Desc: operation.Descriptor{
				Service: "sts", Prefix: "STS", Operation: "GetCallerIdentity",
				Verb: "Get", Noun: "STSCallerIdentity",
				Usage:         "show the account and principal of the current credentials",
				DefaultSelect: "*",
			},
			Client: client,
			Build: func(*operation.Context) (*sts.GetCallerIdentityInput, error) {
				return &sts.GetCallerIdentityInput{}, nil
			},
			Call: engine.Method(STSAPI.GetCallerIdentity),
		},
	}
}
