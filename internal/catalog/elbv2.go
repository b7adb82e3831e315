// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	elbv2 "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"

	"github.com/tfctl/awsctl/internal/engine"
	"github.com/tfctl/awsctl/internal/operation"
	"github.com/tfctl/awsctl/internal/paginator"
)

// ELBv2API is the part of the Elastic Load Balancing v2 client the catalog
// uses.
type ELBv2API interface {
	DescribeLoadBalancers(context.Context, *elbv2.DescribeLoadBalancersInput, ...func(*elbv2.Options)) (*elbv2.DescribeLoadBalancersOutput, error)
}

func elbv2Operations(client func(awsv2.Config) ELBv2API) []engine.Operation {
	return []engine.Operation{
		engine.Spec[ELBv2API, elbv2.DescribeLoadBalancersInput, elbv2.DescribeLoadBalancersOutput]{
			Desc: operation.Descriptor{
				Service: "elbv2", Prefix: "ELB2", Operation: "DescribeLoadBalancers",
				Verb: "Get", Noun: "ELB2LoadBalancer",
				Usage: "describe application, network and gateway load balancers",
				Params: []operation.Param{
					{Name: "Name", Type: operation.StringList, Positional: true,
						Aliases: []string{"Names"}, Usage: "load balancer names"},
					{Name: "LoadBalancerArn", Type: operation.StringList,
						Aliases: []string{"LoadBalancerArns"}, Usage: "load balancer ARNs"},
				},
				DefaultSelect: "LoadBalancers",
				Paginated:     true,
			},
			Client: client,
			Build: func(c *operation.Context) (*elbv2.DescribeLoadBalancersInput, error) {
				return &elbv2.DescribeLoadBalancersInput{
					Names:            c.StringList("Name"),
					LoadBalancerArns: c.StringList("LoadBalancerArn"),
				}, nil
			},
			Call: engine.Method(ELBv2API.DescribeLoadBalancers),
			Pager: &paginator.Pager[elbv2.DescribeLoadBalancersInput, elbv2.DescribeLoadBalancersOutput]{
				Token:    func(o *elbv2.DescribeLoadBalancersOutput) *string { return o.NextMarker },
				SetToken: func(i *elbv2.DescribeLoadBalancersInput, t *string) { i.Marker = t },
				Count:    func(o *elbv2.DescribeLoadBalancersOutput) int { return len(o.LoadBalancers) },
				SetLimit: func(i *elbv2.DescribeLoadBalancersInput, n int32) { i.PageSize = &n },
				MinLimit: 1,
				MaxLimit: 400,
			},
		},
	}
}
