// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"fmt"

	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/runctx"
)

// GCS configures a Google Cloud Storage state backend. An empty prefix is
// treated as absent and omitted, the same absent-if-empty rule applied
// everywhere else in the configuration.
type GCS struct{}

func (b *GCS) Name() string { return "gcs" }

func (b *GCS) Validate(desc *config.Backend) error {
	if desc == nil || desc.Config["bucket"] == "" {
		return fmt.Errorf("gcs backend: missing required config %q", "bucket")
	}
	return nil
}

func (b *GCS) InitArgs(desc *config.Backend, rc *runctx.Context) ([]string, error) {
	var args []string
	for _, k := range []string{"bucket", "prefix", "credentials"} {
		if v := desc.Config[k]; v != "" {
			args = append(args, fmt.Sprintf("-backend-config=%s=%s", k, v))
		}
	}
	return args, nil
}
