// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package validate

import (
	"context"
	"fmt"
	"os/exec"

	goversion "github.com/hashicorp/go-version"
	"github.com/tidwall/gjson"

	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/log"
	"github.com/terraflow/terraflow/internal/plugin"
)

// Test seams. Overridden in unit tests so no provisioner binary is needed.
var (
	lookPath = exec.LookPath

	versionJSON = func(ctx context.Context, provisioner string) ([]byte, error) {
		return exec.CommandContext(ctx, provisioner, "version", "-json").Output()
	}
)

// checkProvisionerInstalled verifies the provisioner binary is on PATH and,
// when a minimum version is configured, that the installed version satisfies
// it. The version is read from `<provisioner> version -json`.
func checkProvisionerInstalled(ctx context.Context, cfg *config.Config) error {
	if _, err := lookPath(cfg.Provisioner); err != nil {
		return fmt.Errorf("provisioner %q not found on PATH", cfg.Provisioner)
	}

	out, err := versionJSON(ctx, cfg.Provisioner)
	if err != nil {
		return fmt.Errorf("%s version check failed: %w", cfg.Provisioner, err)
	}

	installed := gjson.GetBytes(out, "terraform_version").String()
	if installed == "" {
		return fmt.Errorf("%s version check: no terraform_version in output", cfg.Provisioner)
	}
	log.Debugf("provisioner %s version %s", cfg.Provisioner, installed)

	if cfg.MinVersion == "" {
		return nil
	}

	have, err := goversion.NewVersion(installed)
	if err != nil {
		return fmt.Errorf("%s version check: cannot parse %q: %w", cfg.Provisioner, installed, err)
	}
	want, err := goversion.NewVersion(cfg.MinVersion)
	if err != nil {
		return fmt.Errorf("min_version %q is not a valid version: %w", cfg.MinVersion, err)
	}
	if have.LessThan(want) {
		return fmt.Errorf("%s %s is older than required minimum %s",
			cfg.Provisioner, installed, cfg.MinVersion)
	}
	return nil
}

// checkPluginConfig resolves the configured backend plugin and runs its
// Validate against the descriptor, so a broken descriptor fails during
// validation rather than halfway through orchestration.
func checkPluginConfig(cfg *config.Config) error {
	be, err := plugin.ResolveBackend(cfg.BackendType())
	if err != nil {
		return err
	}
	return be.Validate(cfg.Backend)
}
