// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	authp "github.com/terraflow/terraflow/internal/plugin/auth"
	backendp "github.com/terraflow/terraflow/internal/plugin/backend"
	secretsp "github.com/terraflow/terraflow/internal/plugin/secrets"
)

// The registries are fixed at compile time: adding a provider means adding a
// map entry. There is no runtime registration, caching, or versioning.
var (
	backends = map[string]Backend{
		"local":   &backendp.Local{},
		"s3":      &backendp.S3{},
		"azurerm": &backendp.AzureRM{},
		"gcs":     &backendp.GCS{},
	}

	secretsProviders = map[string]Secrets{
		"env":  &secretsp.Env{},
		"file": &secretsp.File{},
		"s3":   &secretsp.S3{},
	}

	authMethods = map[string]Auth{
		"assume_role":       &authp.AssumeRole{},
		"service_principal": &authp.ServicePrincipal{},
		"service_account":   &authp.ServiceAccount{},
	}
)

// ResolveBackend returns the backend plugin for the given type name.
func ResolveBackend(name string) (Backend, error) {
	if be, ok := backends[name]; ok {
		return be, nil
	}
	// Convention lookup missed; fall back to a scan over declared names.
	for _, be := range backends {
		if be.Name() == name {
			return be, nil
		}
	}
	return nil, &NotFoundError{Kind: "backend", Name: name}
}

// ResolveSecrets returns the secrets plugin for the given provider name.
func ResolveSecrets(name string) (Secrets, error) {
	if sp, ok := secretsProviders[name]; ok {
		return sp, nil
	}
	for _, sp := range secretsProviders {
		if sp.Name() == name {
			return sp, nil
		}
	}
	return nil, &NotFoundError{Kind: "secrets", Name: name}
}

// ResolveAuth returns the auth plugin for the given method name.
func ResolveAuth(name string) (Auth, error) {
	if a, ok := authMethods[name]; ok {
		return a, nil
	}
	for _, a := range authMethods {
		if a.Name() == name {
			return a, nil
		}
	}
	return nil, &NotFoundError{Kind: "auth", Name: name}
}
