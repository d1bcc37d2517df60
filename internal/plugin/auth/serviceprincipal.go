// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package auth

import (
	"context"
	"fmt"

	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/runctx"
)

// ServicePrincipal exports Azure service-principal credentials as the ARM_*
// variables the provisioner's azurerm provider consumes. No Azure API call is
// made here; the provisioner authenticates itself from the environment.
type ServicePrincipal struct{}

func (a *ServicePrincipal) Name() string { return "service_principal" }

func (a *ServicePrincipal) Validate(cfg *config.Auth) error {
	if cfg == nil || cfg.ServicePrincipal == nil {
		return fmt.Errorf("service_principal auth: missing descriptor")
	}
	sp := cfg.ServicePrincipal
	for name, v := range map[string]string{
		"client_id":     sp.ClientID,
		"client_secret": sp.ClientSecret,
		"tenant_id":     sp.TenantID,
	} {
		if v == "" {
			return fmt.Errorf("service_principal auth: missing %s", name)
		}
	}
	return nil
}

func (a *ServicePrincipal) Authenticate(ctx context.Context, cfg *config.Auth, rc *runctx.Context) (map[string]string, error) {
	sp := cfg.ServicePrincipal

	creds := map[string]string{
		"ARM_CLIENT_ID":     sp.ClientID,
		"ARM_CLIENT_SECRET": sp.ClientSecret,
		"ARM_TENANT_ID":     sp.TenantID,
	}

	sub := sp.SubscriptionID
	if sub == "" {
		sub = rc.Cloud.AzureSubscriptionID
	}
	if sub != "" {
		creds["ARM_SUBSCRIPTION_ID"] = sub
	}
	return creds, nil
}
