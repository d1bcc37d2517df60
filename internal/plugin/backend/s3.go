// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	awsx "github.com/terraflow/terraflow/internal/aws"
	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/log"
	"github.com/terraflow/terraflow/internal/runctx"
)

// s3InitKeys is the ordered set of backend config keys forwarded to the
// provisioner. Order is fixed so init argument lists are reproducible.
var s3InitKeys = []string{
	"bucket", "key", "region", "workspace_key_prefix",
	"encrypt", "kms_key_id", "dynamodb_table",
}

// S3 configures an AWS S3 state backend.
type S3 struct{}

func (b *S3) Name() string { return "s3" }

func (b *S3) Validate(desc *config.Backend) error {
	for _, required := range []string{"bucket", "key", "region"} {
		if desc == nil || desc.Config[required] == "" {
			return fmt.Errorf("s3 backend: missing required config %q", required)
		}
	}
	if desc.Config["encrypt"] != "true" {
		log.Warnf("s3 backend: server-side encryption is not enabled")
	}
	return nil
}

func (b *S3) InitArgs(desc *config.Backend, rc *runctx.Context) ([]string, error) {
	var args []string
	for _, k := range s3InitKeys {
		if v := desc.Config[k]; v != "" {
			args = append(args, fmt.Sprintf("-backend-config=%s=%s", k, v))
		}
	}
	return args, nil
}

// Setup verifies the state bucket is reachable before init runs, so a typo'd
// bucket fails here with a clear message instead of inside the provisioner.
func (b *S3) Setup(ctx context.Context, desc *config.Backend, rc *runctx.Context) error {
	cfg, err := awsx.LoadAWSConfig(ctx, awsx.WithRegion(desc.Config["region"]))
	if err != nil {
		return fmt.Errorf("s3 backend: %w", err)
	}

	client := awsx.NewS3(cfg)
	bucket := desc.Config["bucket"]
	if _, err := client.HeadBucket(ctx, &s3v2.HeadBucketInput{Bucket: awsv2.String(bucket)}); err != nil {
		return fmt.Errorf("s3 backend: bucket %q not reachable: %w", bucket, err)
	}

	if _, err := client.GetBucketEncryption(ctx, &s3v2.GetBucketEncryptionInput{
		Bucket: awsv2.String(bucket),
	}); err != nil {
		log.Warnf("s3 backend: bucket %q has no default encryption configured", bucket)
	}

	return nil
}
