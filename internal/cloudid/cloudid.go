// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cloudid

import (
	"context"
	"os"
	"os/exec"
	"strings"

	stsv2 "github.com/aws/aws-sdk-go-v2/service/sts"

	awsx "github.com/terraflow/terraflow/internal/aws"
	"github.com/terraflow/terraflow/internal/log"
)

// Identity is the best-effort cloud identity snapshot. Provider names the
// first provider that answered ("aws", "azure", "gcp") or is empty when no
// lookup succeeded. Each field degrades independently to "" on failure.
type Identity struct {
	Provider            string
	AWSAccountID        string
	AWSRegion           string
	AzureSubscriptionID string
	GCPProjectID        string
}

// Probe collects cloud identity from whatever providers are reachable. Every
// lookup is read-only and failure is never fatal; context construction must
// succeed on a machine with no cloud credentials at all.
func Probe(ctx context.Context) Identity {
	var id Identity

	if acct, region := probeAWS(ctx); acct != "" {
		id.AWSAccountID = acct
		id.AWSRegion = region
		id.Provider = "aws"
	}
	if sub := probeAzure(ctx); sub != "" {
		id.AzureSubscriptionID = sub
		if id.Provider == "" {
			id.Provider = "azure"
		}
	}
	if proj := probeGCP(ctx); proj != "" {
		id.GCPProjectID = proj
		if id.Provider == "" {
			id.Provider = "gcp"
		}
	}

	log.Debugf("cloud identity: provider=%s aws=%s azure=%s gcp=%s",
		id.Provider, id.AWSAccountID, id.AzureSubscriptionID, id.GCPProjectID)
	return id
}

// probeAWS resolves the account via STS GetCallerIdentity and the region via
// the SDK's usual chain (env, profile, metadata).
func probeAWS(ctx context.Context) (account, region string) {
	cfg, err := awsx.LoadAWSConfig(ctx)
	if err != nil {
		log.Debugf("aws identity: config load failed: %v", err)
		return "", ""
	}

	out, err := awsx.NewSTS(cfg).GetCallerIdentity(ctx, &stsv2.GetCallerIdentityInput{})
	if err != nil || out.Account == nil {
		log.Debugf("aws identity: GetCallerIdentity failed: %v", err)
		return "", ""
	}

	region = cfg.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	return *out.Account, region
}

// probeAzure shells out to the az CLI when present.
func probeAzure(ctx context.Context) string {
	if v := os.Getenv("ARM_SUBSCRIPTION_ID"); v != "" {
		return v
	}
	if v := os.Getenv("AZURE_SUBSCRIPTION_ID"); v != "" {
		return v
	}
	return cliQuery(ctx, "az", "account", "show", "--query", "id", "-o", "tsv")
}

// probeGCP shells out to the gcloud CLI when present.
func probeGCP(ctx context.Context) string {
	if v := os.Getenv("GCP_PROJECT_ID"); v != "" {
		return v
	}
	if v := os.Getenv("GOOGLE_PROJECT"); v != "" {
		return v
	}
	return cliQuery(ctx, "gcloud", "config", "get-value", "project")
}

func cliQuery(ctx context.Context, name string, args ...string) string {
	if _, err := exec.LookPath(name); err != nil {
		return ""
	}
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		log.Debugf("%s query failed: %v", name, err)
		return ""
	}
	v := strings.TrimSpace(string(out))
	if v == "(unset)" {
		return ""
	}
	return v
}
