// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package secrets

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/runctx"
)

// DefaultSecretsFile is the dotenv-format file read by the file provider,
// relative to the working directory.
const DefaultSecretsFile = "secrets.env"

// File sources secrets from a local dotenv-format file.
type File struct{}

func (p *File) Name() string { return "file" }

func (p *File) Validate(desc *config.Secrets) error { return nil }

func (p *File) Fetch(ctx context.Context, desc *config.Secrets, rc *runctx.Context) (map[string]string, error) {
	path := DefaultSecretsFile
	if desc != nil && desc.Config["path"] != "" {
		path = desc.Config["path"]
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(rc.WorkingDir, path)
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("file secrets: %w", err)
	}

	out := make(map[string]string, len(values))
	for k, v := range values {
		out["TF_VAR_"+strings.ToLower(k)] = v
	}
	return out, nil
}
