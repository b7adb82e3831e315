// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/autoscaling"

	"github.com/tfctl/awsctl/internal/engine"
	"github.com/tfctl/awsctl/internal/operation"
	"github.com/tfctl/awsctl/internal/paginator"
)

// AutoScalingAPI is the part of the Auto Scaling client the catalog uses.
type AutoScalingAPI interface {
	DescribeAutoScalingGroups(context.Context, *autoscaling.DescribeAutoScalingGroupsInput, ...func(*autoscaling.Options)) (*autoscaling.DescribeAutoScalingGroupsOutput, error)
	UpdateAutoScalingGroup(context.Context, *autoscaling.UpdateAutoScalingGroupInput, ...func(*autoscaling.Options)) (*autoscaling.UpdateAutoScalingGroupOutput, error)
}

const autoScalingService = "autoscaling"

func autoScalingOperations(client func(awsv2.Config) AutoScalingAPI) []engine.Operation {
	return []engine.Operation{
		engine.Spec[AutoScalingAPI, autoscaling.DescribeAutoScalingGroupsInput, autoscaling.DescribeAutoScalingGroupsOutput]{
			Desc: operation.Descriptor{
				Service: autoScalingService, Prefix: "AS", Operation: "DescribeAutoScalingGroups",
				Verb: "Get", Noun: "ASAutoScalingGroup",
				Usage: "describe auto scaling groups",
				Params: []operation.Param{
					{Name: "AutoScalingGroupName", Type: operation.StringList, Positional: true,
						Aliases: []string{"Name", "AutoScalingGroupNames"}, Usage: "group names"},
				},
				DefaultSelect: "AutoScalingGroups",
				Paginated:     true,
			},
			Client: client,
			Build: func(c *operation.Context) (*autoscaling.DescribeAutoScalingGroupsInput, error) {
				return &autoscaling.DescribeAutoScalingGroupsInput{
					AutoScalingGroupNames: c.StringList("AutoScalingGroupName"),
				}, nil
			},
			Call: engine.Method(AutoScalingAPI.DescribeAutoScalingGroups),
			Pager: &paginator.Pager[autoscaling.DescribeAutoScalingGroupsInput, autoscaling.DescribeAutoScalingGroupsOutput]{
				Token:    func(o *autoscaling.DescribeAutoScalingGroupsOutput) *string { return o.NextToken },
				SetToken: func(i *autoscaling.DescribeAutoScalingGroupsInput, t *string) { i.NextToken = t },
				Count:    func(o *autoscaling.DescribeAutoScalingGroupsOutput) int { return len(o.AutoScalingGroups) },
				SetLimit: func(i *autoscaling.DescribeAutoScalingGroupsInput, n int32) { i.MaxRecords = &n },
				MinLimit: 1,
				MaxLimit: 100,
			},
		},

		engine.Spec[AutoScalingAPI, autoscaling.UpdateAutoScalingGroupInput, autoscaling.UpdateAutoScalingGroupOutput]{
			Desc: operation.Descriptor{
				Service: autoScalingService, Prefix: "AS", Operation: "UpdateAutoScalingGroup",
				Verb: "Update", Noun: "ASAutoScalingGroup",
				Usage: "change the capacity of an auto scaling group",
				Params: []operation.Param{
					{Name: "AutoScalingGroupName", Type: operation.String, Required: true, Positional: true,
						Aliases: []string{"Name"}, Usage: "group name"},
					{Name: "MinSize", Type: operation.Int, Usage: "minimum size"},
					{Name: "MaxSize", Type: operation.Int, Usage: "maximum size"},
					{Name: "DesiredCapacity", Type: operation.Int, Usage: "desired capacity"},
				},
				DefaultSelect: "^AutoScalingGroupName",
				Impact:        operation.ImpactMedium,
				ConfirmTarget: "AutoScalingGroupName",
			},
			Client: client,
			Build: func(c *operation.Context) (*autoscaling.UpdateAutoScalingGroupInput, error) {
				in := &autoscaling.UpdateAutoScalingGroupInput{
					AutoScalingGroupName: c.String("AutoScalingGroupName"),
				}
				var err error
				if in.MinSize, err = c.Int32("MinSize"); err != nil {
					return nil, err
				}
				if in.MaxSize, err = c.Int32("MaxSize"); err != nil {
					return nil, err
				}
				if in.DesiredCapacity, err = c.Int32("DesiredCapacity"); err != nil {
					return nil, err
				}
				return in, nil
			},
			Call: engine.Method(AutoScalingAPI.UpdateAutoScalingGroup),
		},
	}
}
