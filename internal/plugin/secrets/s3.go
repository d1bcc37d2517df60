// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package secrets

import (
	"context"
	"fmt"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"

	awsx "github.com/terraflow/terraflow/internal/aws"
	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/runctx"
)

// S3 sources secrets from a dotenv-format object in an S3 bucket. Credentials
// come from the ambient AWS chain, which the auth stage has already populated
// when an assume-role descriptor is configured.
type S3 struct{}

func (p *S3) Name() string { return "s3" }

func (p *S3) Validate(desc *config.Secrets) error {
	for _, required := range []string{"bucket", "key"} {
		if desc == nil || desc.Config[required] == "" {
			return fmt.Errorf("s3 secrets: missing required config %q", required)
		}
	}
	return nil
}

func (p *S3) Fetch(ctx context.Context, desc *config.Secrets, rc *runctx.Context) (map[string]string, error) {
	cfg, err := awsx.LoadAWSConfig(ctx, awsx.WithRegion(desc.Config["region"]))
	if err != nil {
		return nil, fmt.Errorf("s3 secrets: %w", err)
	}

	obj, err := awsx.NewS3(cfg).GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(desc.Config["bucket"]),
		Key:    awsv2.String(desc.Config["key"]),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 secrets: get s3://%s/%s: %w",
			desc.Config["bucket"], desc.Config["key"], err)
	}
	defer obj.Body.Close()

	values, err := godotenv.Parse(obj.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 secrets: parse s3://%s/%s: %w",
			desc.Config["bucket"], desc.Config["key"], err)
	}

	out := make(map[string]string, len(values))
	for k, v := range values {
		out["TF_VAR_"+strings.ToLower(k)] = v
	}
	return out, nil
}
