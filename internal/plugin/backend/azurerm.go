// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"fmt"

	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/runctx"
)

var azurermInitKeys = []string{
	"resource_group_name", "storage_account_name", "container_name",
	"key", "subscription_id", "tenant_id",
}

// AzureRM configures an Azure Storage state backend. It is a pure argument
// builder; credentials come from the auth plugin or the ambient az login.
type AzureRM struct{}

func (b *AzureRM) Name() string { return "azurerm" }

func (b *AzureRM) Validate(desc *config.Backend) error {
	for _, required := range []string{"storage_account_name", "container_name", "key"} {
		if desc == nil || desc.Config[required] == "" {
			return fmt.Errorf("azurerm backend: missing required config %q", required)
		}
	}
	return nil
}

func (b *AzureRM) InitArgs(desc *config.Backend, rc *runctx.Context) ([]string, error) {
	var args []string
	for _, k := range azurermInitKeys {
		v := desc.Config[k]
		if v == "" && k == "subscription_id" {
			v = rc.Cloud.AzureSubscriptionID
		}
		if v != "" {
			args = append(args, fmt.Sprintf("-backend-config=%s=%s", k, v))
		}
	}
	return args, nil
}
