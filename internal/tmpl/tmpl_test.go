// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package tmpl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/terraflow/terraflow/internal/config"
)

func TestResolve(t *testing.T) {
	vars := map[string]string{
		"WORKSPACE":      "prod",
		"AWS_ACCOUNT_ID": "123456789012",
	}

	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"${WORKSPACE}", "prod"},
		{"states-${AWS_ACCOUNT_ID}-${WORKSPACE}", "states-123456789012-prod"},
		{"${MISSING}", "${MISSING}"},
		{"$WORKSPACE", "$WORKSPACE"},
		{"${lower} stays", "${lower} stays"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Resolve(tt.in, vars), "Resolve(%q)", tt.in)
	}
}

func TestResolveConfig(t *testing.T) {
	cfg := &config.Config{
		Backend: &config.Backend{
			Type: "s3",
			Config: map[string]string{
				"bucket": "states-${AWS_ACCOUNT_ID}",
				"key":    "${WORKSPACE}.tfstate",
			},
		},
		Vars: map[string]string{"environment": "${WORKSPACE}"},
	}

	ResolveConfig(cfg, map[string]string{
		"WORKSPACE":      "prod",
		"AWS_ACCOUNT_ID": "123456789012",
	})

	assert.Equal(t, "states-123456789012", cfg.Backend.Config["bucket"])
	assert.Equal(t, "prod.tfstate", cfg.Backend.Config["key"])
	assert.Equal(t, "prod", cfg.Vars["environment"])
}
