// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package secrets

import (
	"context"
	"strings"

	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/runctx"
)

// DefaultEnvPrefix marks environment variables to be re-exported as
// provisioner variables.
const DefaultEnvPrefix = "TERRAFLOW_SECRET_"

// Env sources secrets from the process environment: every variable with the
// configured prefix becomes TF_VAR_<lowercased remainder>.
type Env struct{}

func (p *Env) Name() string { return "env" }

func (p *Env) Validate(desc *config.Secrets) error { return nil }

func (p *Env) Fetch(ctx context.Context, desc *config.Secrets, rc *runctx.Context) (map[string]string, error) {
	prefix := DefaultEnvPrefix
	if desc != nil && desc.Config["prefix"] != "" {
		prefix = desc.Config["prefix"]
	}

	out := make(map[string]string)
	for k, v := range rc.Environ {
		if rest, ok := strings.CutPrefix(k, prefix); ok && rest != "" {
			out["TF_VAR_"+strings.ToLower(rest)] = v
		}
	}
	return out, nil
}
