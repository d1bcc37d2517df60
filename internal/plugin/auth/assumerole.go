// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	stsv2 "github.com/aws/aws-sdk-go-v2/service/sts"

	awsx "github.com/terraflow/terraflow/internal/aws"
	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/runctx"
)

const (
	defaultSessionName     = "terraflow"
	defaultDurationSeconds = 3600
)

// AssumeRole exchanges the ambient AWS identity for temporary role
// credentials via STS.
type AssumeRole struct{}

func (a *AssumeRole) Name() string { return "assume_role" }

func (a *AssumeRole) Validate(cfg *config.Auth) error {
	if cfg == nil || cfg.AssumeRole == nil || cfg.AssumeRole.RoleARN == "" {
		return fmt.Errorf("assume_role auth: missing role_arn")
	}
	return nil
}

func (a *AssumeRole) Authenticate(ctx context.Context, cfg *config.Auth, rc *runctx.Context) (map[string]string, error) {
	desc := cfg.AssumeRole

	awsCfg, err := awsx.LoadAWSConfig(ctx, awsx.WithRegion(desc.Region))
	if err != nil {
		return nil, fmt.Errorf("assume_role auth: %w", err)
	}

	session := desc.SessionName
	if session == "" {
		session = defaultSessionName
	}
	duration := int32(desc.DurationSeconds)
	if duration == 0 {
		duration = defaultDurationSeconds
	}

	input := &stsv2.AssumeRoleInput{
		RoleArn:         awsv2.String(desc.RoleARN),
		RoleSessionName: awsv2.String(session),
		DurationSeconds: awsv2.Int32(duration),
	}
	if desc.ExternalID != "" {
		input.ExternalId = awsv2.String(desc.ExternalID)
	}

	out, err := awsx.NewSTS(awsCfg).AssumeRole(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("assume_role auth: %s: %w", desc.RoleARN, err)
	}

	creds := map[string]string{
		"AWS_ACCESS_KEY_ID":     awsv2.ToString(out.Credentials.AccessKeyId),
		"AWS_SECRET_ACCESS_KEY": awsv2.ToString(out.Credentials.SecretAccessKey),
		"AWS_SESSION_TOKEN":     awsv2.ToString(out.Credentials.SessionToken),
	}
	if desc.Region != "" {
		creds["AWS_REGION"] = desc.Region
	}
	return creds, nil
}
