// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"fmt"
	"os"

	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/runctx"
)

// ServiceAccount points the provisioner's google provider at a GCP
// service-account key file.
type ServiceAccount struct{}

func (a *ServiceAccount) Name() string { return "service_account" }

func (a *ServiceAccount) Validate(cfg *config.Auth) error {
	if cfg == nil || cfg.ServiceAccount == nil || cfg.ServiceAccount.KeyFile == "" {
		return fmt.Errorf("service_account auth: missing key_file")
	}
	if _, err := os.Stat(cfg.ServiceAccount.KeyFile); err != nil {
		return fmt.Errorf("service_account auth: key file: %w", err)
	}
	return nil
}

func (a *ServiceAccount) Authenticate(ctx context.Context, cfg *config.Auth, rc *runctx.Context) (map[string]string, error) {
	sa := cfg.ServiceAccount

	creds := map[string]string{
		"GOOGLE_APPLICATION_CREDENTIALS": sa.KeyFile,
	}

	project := sa.Project
	if project == "" {
		project = rc.Cloud.GCPProjectID
	}
	if project != "" {
		creds["GOOGLE_PROJECT"] = project
	}
	return creds, nil
}
