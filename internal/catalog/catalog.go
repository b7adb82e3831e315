// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/tfctl/awsctl/internal/engine"
)

// Clients builds the per-service SDK clients from a resolved AWS config.
type Clients struct {
	AutoScaling func(awsv2.Config) AutoScalingAPI
	EC2         func(awsv2.Config) EC2API
	ELBv2       func(awsv2.Config) ELBv2API
	S3          func(awsv2.Config) S3API
	Secrets     func(awsv2.Config) SecretsAPI
	SSM         func(awsv2.Config) SSMAPI
	STS         func(awsv2.Config) STSAPI
}

// DefaultClients returns constructors for the real SDK clients.
func DefaultClients() Clients {
	return Clients{
		AutoScaling: func(cfg awsv2.Config) AutoScalingAPI { return autoscaling.NewFromConfig(cfg) },
		EC2:         func(cfg awsv2.Config) EC2API { return ec2.NewFromConfig(cfg) },
		ELBv2:       func(cfg awsv2.Config) ELBv2API { return elbv2.NewFromConfig(cfg) },
		S3:          func(cfg awsv2.Config) S3API { return s3.NewFromConfig(cfg) },
		Secrets:     func(cfg awsv2.Config) SecretsAPI { return secretsmanager.NewFromConfig(cfg) },
		SSM:         func(cfg awsv2.Config) SSMAPI { return ssm.NewFromConfig(cfg) },
		STS:         func(cfg awsv2.Config) STSAPI { return sts.NewFromConfig(cfg) },
	}
}

// Operations returns every catalog operation bound to clients.
func Operations(clients Clients) []engine.Operation {
	var ops []engine.Operation
	ops = append(ops, autoScalingOperations(clients.AutoScaling)...)
	ops = append(ops, ec2Operations(clients.EC2)...)
	ops = append(ops, elbv2Operations(clients.ELBv2)...)
	ops = append(ops, s3Operations(clients.S3)...)
	ops = append(ops, secretsOperations(clients.Secrets)...)
	ops = append(ops, ssmOperations(clients.SSM)...)
	ops = append(ops, stsOperations(clients.STS)...)
	return ops
}

// NewRegistry returns a registry of the catalog bound to the real SDK
// clients.
func NewRegistry() (*engine.Registry, error) {
	return engine.NewRegistry(Operations(DefaultClients())...)
}

// SDK clients satisfy the narrow interfaces.
var (
	_ AutoScalingAPI = (*autoscaling.Client)(nil)
	_ EC2API         = (*ec2.Client)(nil)
	_ ELBv2API       = (*elbv2.Client)(nil)
	_ S3API          = (*s3.Client)(nil)
	_ SecretsAPI     = (*secretsmanager.Client)(nil)
	_ SSMAPI         = (*ssm.Client)(nil)
	_ STSAPI         = (*sts.Client)(nil)
)

// single wraps a nested value into a one-element list, or nil.
func single[T any](v *T) []T {
	if v == nil {
		return nil
	}
	return []T{*v}
}
