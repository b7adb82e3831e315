// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/tfctl/awsctl/internal/engine"
	"github.com/tfctl/awsctl/internal/operation"
	"github.com/tfctl/awsctl/internal/paginator"
)

// EC2API is the part of the EC2 client the catalog uses.
type EC2API interface {
	DescribeInstances(context.Context, *ec2.DescribeInstancesInput, ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	StopInstances(context.Context, *ec2.StopInstancesInput, ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error)
	TerminateInstances(context.Context, *ec2.TerminateInstancesInput, ...func(*ec2.Options)) (*ec2.TerminateInstancesOutput, error)
}

const ec2Service = "ec2"

func ec2Operations(client func(awsv2.Config) EC2API) []engine.Operation {
	instanceIDs := operation.Param{Name: "InstanceId", Type: operation.StringList, Positional: true,
		Aliases: []string{"InstanceIds"}, Usage: "instance IDs"}

	required := instanceIDs
	required.Required = true

	return []engine.Operation{
		engine.Spec[EC2API, ec2.DescribeInstancesInput, ec2.DescribeInstancesOutput]{
			Desc: operation.Descriptor{
				Service: ec2Service, Prefix: "EC2", Operation: "DescribeInstances",
				Verb: "Get", Noun: "EC2Instance",
				Usage: "describe instances",
				Params: []operation.Param{
					instanceIDs,
					{Name: "FilterName", Type: operation.String,
						Usage: "filter name, e.g. instance-state-name or tag:Name"},
					{Name: "FilterValues", Type: operation.StringList, Aliases: []string{"Values"},
						Usage: "filter values"},
				},
				DefaultSelect: "Reservations[*].Instances",
				Paginated:     true,
			},
			Client: client,
			Build: func(c *operation.Context) (*ec2.DescribeInstancesInput, error) {
				filter := operation.Nested(c, []string{"FilterName", "FilterValues"},
					func(f *ec2types.Filter) {
						f.Name = c.String("FilterName")
						f.Values = c.StringList("FilterValues")
					})
				return &ec2.DescribeInstancesInput{
					InstanceIds: c.StringList("InstanceId"),
					Filters:     single(filter),
				}, nil
			},
			Call: engine.Method(EC2API.DescribeInstances),
			Pager: &paginator.Pager[ec2.DescribeInstancesInput, ec2.DescribeInstancesOutput]{
				Token:    func(o *ec2.DescribeInstancesOutput) *string { return o.NextToken },
				SetToken: func(i *ec2.DescribeInstancesInput, t *string) { i.NextToken = t },
				Count: func(o *ec2.DescribeInstancesOutput) int {
					n := 0
					for _, r := range o.Reservations {
						n += len(r.Instances)
					}
					return n
				},
				// MaxResults cannot be combined with explicit instance IDs.
				SetLimit: func(i *ec2.DescribeInstancesInput, n int32) {
					if len(i.InstanceIds) == 0 {
						i.MaxResults = &n
					}
				},
				MinLimit: 5,
				MaxLimit: 1000,
			},
		},

		engine.Spec[EC2API, ec2.StopInstancesInput, ec2.StopInstancesOutput]{
			Desc: operation.Descriptor{
				Service: ec2Service, Prefix: "EC2", Operation: "StopInstances",
				Verb: "Stop", Noun: "EC2Instance",
				Usage: "stop instances",
				Params: []operation.Param{
					required,
					{Name: "ForceStop", Type: operation.Bool, Usage: "force the instances to stop without flushing"},
					{Name: "Hibernate", Type: operation.Bool, Usage: "hibernate instead of stopping"},
				},
				DefaultSelect: "StoppingInstances",
				Impact:        operation.ImpactMedium,
				ConfirmTarget: "InstanceId",
			},
			Client: client,
			Build: func(c *operation.Context) (*ec2.StopInstancesInput, error) {
				return &ec2.StopInstancesInput{
					InstanceIds: c.StringList("InstanceId"),
					Force:       c.Bool("ForceStop"),
					Hibernate:   c.Bool("Hibernate"),
				}, nil
			},
			Call: engine.Method(EC2API.StopInstances),
		},

		engine.Spec[EC2API, ec2.TerminateInstancesInput, ec2.TerminateInstancesOutput]{
			Desc: operation.Descriptor{
				Service: ec2Service, Prefix: "EC2", Operation: "TerminateInstances",
				Verb: "Remove", Noun: "EC2Instance",
				Usage:         "terminate instances",
				Params:        []operation.Param{required},
				DefaultSelect: "TerminatingInstances",
				Impact:        operation.ImpactHigh,
				ConfirmTarget: "InstanceId",
			},
			Client: client,
			Build: func(c *operation.Context) (*ec2.TerminateInstancesInput, error) {
				return &ec2.TerminateInstancesInput{InstanceIds: c.StringList("InstanceId")}, nil
			},
			Call: engine.Method(EC2API.TerminateInstances),
		},
	}
}
