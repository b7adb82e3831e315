// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/tfctl/awsctl/internal/engine"
	"github.com/tfctl/awsctl/internal/operation"
	"github.com/tfctl/awsctl/internal/paginator"
)

// S3API is the part of the S3 client the catalog uses.
type S3API interface {
	ListBuckets(context.Context, *s3.ListBucketsInput, ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	ListObjectsV2(context.Context, *s3.ListObjectsV2Input, ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(context.Context, *s3.DeleteObjectInput, ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	PutBucketVersioning(context.Context, *s3.PutBucketVersioningInput, ...func(*s3.Options)) (*s3.PutBucketVersioningOutput, error)
}

const s3Service = "s3"

func s3Operations(client func(awsv2.Config) S3API) []engine.Operation {
	return []engine.Operation{
		engine.Spec[S3API, s3.ListBucketsInput, s3.ListBucketsOutput]{
			Desc: operation.Descriptor{
				Service: s3Service, Prefix: "S3", Operation: "ListBuckets",
				Verb: "Get", Noun: "S3Bucket",
				Usage: "list buckets",
				Params: []operation.Param{
					{Name: "Prefix", Type: operation.String, Positional: true, Usage: "bucket name prefix"},
					{Name: "BucketRegion", Type: operation.String, Usage: "only buckets in this region"},
				},
				DefaultSelect: "Buckets",
				Paginated:     true,
			},
			Client: client,
			Build: func(c *operation.Context) (*s3.ListBucketsInput, error) {
				return &s3.ListBucketsInput{
					Prefix:       c.String("Prefix"),
					BucketRegion: c.String("BucketRegion"),
				}, nil
			},
			Call: engine.Method(S3API.ListBuckets),
			Pager: &paginator.Pager[s3.ListBucketsInput, s3.ListBucketsOutput]{
				Token:    func(o *s3.ListBucketsOutput) *string { return o.ContinuationToken },
				SetToken: func(i *s3.ListBucketsInput, t *string) { i.ContinuationToken = t },
				Count:    func(o *s3.ListBucketsOutput) int { return len(o.Buckets) },
				SetLimit: func(i *s3.ListBucketsInput, n int32) { i.MaxBuckets = &n },
				MinLimit: 1,
				MaxLimit: 10000,
			},
		},

		engine.Spec[S3API, s3.ListObjectsV2Input, s3.ListObjectsV2Output]{
			Desc: operation.Descriptor{
				Service: s3Service, Prefix: "S3", Operation: "ListObjectsV2",
				Verb: "Get", Noun: "S3Object",
				Usage: "list objects in a bucket",
				Params: []operation.Param{
					{Name: "Bucket", Type: operation.String, Required: true, Positional: true,
						Aliases: []string{"BucketName"}, Usage: "bucket name"},
					{Name: "Prefix", Type: operation.String, Aliases: []string{"KeyPrefix"}, Usage: "key prefix"},
					{Name: "Delimiter", Type: operation.String, Usage: "group keys by this delimiter"},
					{Name: "StartAfter", Type: operation.String, Usage: "start listing after this key"},
				},
				DefaultSelect: "Contents",
				Paginated:     true,
			},
			Client: client,
			Build: func(c *operation.Context) (*s3.ListObjectsV2Input, error) {
				return &s3.ListObjectsV2Input{
					Bucket:     c.String("Bucket"),
					Prefix:     c.String("Prefix"),
					Delimiter:  c.String("Delimiter"),
					StartAfter: c.String("StartAfter"),
				}, nil
			},
			Call: engine.Method(S3API.ListObjectsV2),
			Pager: &paginator.Pager[s3.ListObjectsV2Input, s3.ListObjectsV2Output]{
				Token:    func(o *s3.ListObjectsV2Output) *string { return o.NextContinuationToken },
				SetToken: func(i *s3.ListObjectsV2Input, t *string) { i.ContinuationToken = t },
				Count:    func(o *s3.ListObjectsV2Output) int { return len(o.Contents) },
				SetLimit: func(i *s3.ListObjectsV2Input, n int32) { i.MaxKeys = &n },
				MinLimit: 1,
				MaxLimit: 1000,
			},
		},

		engine.Spec[S3API, s3.DeleteObjectInput, s3.DeleteObjectOutput]{
			Desc: operation.Descriptor{
				Service: s3Service, Prefix: "S3", Operation: "DeleteObject",
				Verb: "Remove", Noun: "S3Object",
				Usage: "delete an object or one of its versions",
				Params: []operation.Param{
					{Name: "Bucket", Type: operation.String, Required: true,
						Aliases: []string{"BucketName"}, Usage: "bucket name"},
					{Name: "Key", Type: operation.String, Required: true, Positional: true, Usage: "object key"},
					{Name: "VersionId", Type: operation.String, Usage: "object version"},
				},
				DefaultSelect: "^Key",
				Impact:        operation.ImpactHigh,
				ConfirmTarget: "Key",
			},
			Client: client,
			Build: func(c *operation.Context) (*s3.DeleteObjectInput, error) {
				return &s3.DeleteObjectInput{
					Bucket:    c.String("Bucket"),
					Key:       c.String("Key"),
					VersionId: c.String("VersionId"),
				}, nil
			},
			Call: engine.Method(S3API.DeleteObject),
		},

		engine.Spec[S3API, s3.PutBucketVersioningInput, s3.PutBucketVersioningOutput]{
			Desc: operation.Descriptor{
				Service: s3Service, Prefix: "S3", Operation: "PutBucketVersioning",
				Verb: "Write", Noun: "S3BucketVersioning",
				Usage: "set the versioning state of a bucket",
				Params: []operation.Param{
					{Name: "Bucket", Type: operation.String, Required: true, Positional: true,
						Aliases: []string{"BucketName"}, Usage: "bucket name"},
					{Name: "Status", Type: operation.String, Aliases: []string{"VersioningStatus"},
						Usage: "Enabled or Suspended"},
					{Name: "MFADelete", Type: operation.String,
						Usage: "Enabled or Disabled"},
					{Name: "MFA", Type: operation.String, Sensitive: true,
						Usage: "device serial number and current code"},
				},
				DefaultSelect: "^Bucket",
				Impact:        operation.ImpactMedium,
				ConfirmTarget: "Bucket",
			},
			Client: client,
			Build: func(c *operation.Context) (*s3.PutBucketVersioningInput, error) {
				return &s3.PutBucketVersioningInput{
					Bucket: c.String("Bucket"),
					MFA:    c.String("MFA"),
					VersioningConfiguration: operation.Nested(c, []string{"Status", "MFADelete"},
						func(v *s3types.VersioningConfiguration) {
							v.Status = s3types.BucketVersioningStatus(c.StringValue("Status"))
							v.MFADelete = s3types.MFADelete(c.StringValue("MFADelete"))
						}),
				}, nil
			},
			Call: engine.Method(S3API.PutBucketVersioning),
		},
	}
}
