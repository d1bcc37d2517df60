// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"context"
	"fmt"

	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/runctx"
)

// Backend produces the provisioner's -backend-config init arguments for one
// backend type. Implementations are read-only with respect to the execution
// context but may touch the outside world (cloud APIs, credential files).
type Backend interface {
	Name() string
	Validate(desc *config.Backend) error
	InitArgs(desc *config.Backend, rc *runctx.Context) ([]string, error)
}

// BackendSetup is implemented by backends that need a pre-init hook (bucket
// existence probes and the like). Checked by type assertion; most backends
// do not implement it.
type BackendSetup interface {
	Setup(ctx context.Context, desc *config.Backend, rc *runctx.Context) error
}

// Secrets fetches a TF_VAR_*-prefixed variable map from a secrets provider.
type Secrets interface {
	Name() string
	Validate(desc *config.Secrets) error
	Fetch(ctx context.Context, desc *config.Secrets, rc *runctx.Context) (map[string]string, error)
}

// Auth produces raw credential environment variables for one auth method.
type Auth interface {
	Name() string
	Validate(a *config.Auth) error
	Authenticate(ctx context.Context, a *config.Auth, rc *runctx.Context) (map[string]string, error)
}

// NotFoundError is the hard configuration error returned when no plugin of
// the given kind answers to the requested name.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s plugin named %q", e.Kind, e.Name)
}
