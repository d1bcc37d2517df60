// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/log"
	"github.com/terraflow/terraflow/internal/runctx"
)

// Result is the structured outcome of one validation pass. Errors and
// warnings are kept separate: warnings never fail the pass.
type Result struct {
	Passed   bool
	Errors   []string
	Warnings []string
}

// Error is the typed failure returned in fail-fast mode and carried by a
// failed dry-run result. It renders the aggregated errors as a bulleted list.
type Error struct {
	Errors []string
}

func (e *Error) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0]
	}
	var b strings.Builder
	b.WriteString("validation failed:")
	for _, msg := range e.Errors {
		b.WriteString("\n  - ")
		b.WriteString(msg)
	}
	return b.String()
}

// Options adjusts a validation pass. DryRun switches from fail-fast to
// accumulate-everything; SkipCommitCheck waives the git-clean requirement.
type Options struct {
	SkipCommitCheck bool
	DryRun          bool
}

// Command tiers. Mutating commands get the full battery; read-only commands
// that still need state access get the backend checks; purely local commands
// only need the provisioner present.
var (
	fullTier    = tier("apply", "destroy", "import", "refresh")
	backendTier = tier("plan", "state", "workspace", "output", "show")
	minimalTier = tier("fmt", "validate", "version", "providers")
)

func tier(commands ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(commands))
	for _, c := range commands {
		m[c] = struct{}{}
	}
	return m
}

// Run executes the command-tier-appropriate checks. In normal mode the first
// failing check returns an *Error immediately; in dry-run mode every check
// runs and failures accumulate into a failed Result. The git-repository
// probe is always a warning, never an error.
func Run(ctx context.Context, command string, cfg *config.Config, rc *runctx.Context, opts Options) (*Result, error) {
	res := &Result{Passed: true}

	// fail records a check failure and, outside dry-run, aborts the pass.
	fail := func(msg string) error {
		res.Passed = false
		res.Errors = append(res.Errors, msg)
		if !opts.DryRun {
			return &Error{Errors: []string{msg}}
		}
		return nil
	}
	warn := func(msg string) {
		res.Warnings = append(res.Warnings, msg)
		log.Warnf("%s", msg)
	}

	if !rc.VCS.HasRepo {
		warn("working directory is not inside a git repository")
	}

	if err := checkProvisionerInstalled(ctx, cfg); err != nil {
		if e := fail(err.Error()); e != nil {
			return res, e
		}
	}

	full := contains(fullTier, command)
	backend := full || contains(backendTier, command)
	if !full && !backend && !contains(minimalTier, command) {
		// Unknown commands get the middle tier: state access is plausible,
		// destruction is not.
		backend = true
	}

	if full || backend {
		if !runctx.ValidWorkspace.MatchString(rc.Workspace) {
			if e := fail(fmt.Sprintf("workspace name %q is not valid (must match %s)",
				rc.Workspace, runctx.ValidWorkspace.String())); e != nil {
				return res, e
			}
		}
	}

	if full {
		skip := opts.SkipCommitCheck || cfg.SkipCommitCheck
		if !skip && rc.VCS.HasRepo && !rc.VCS.Clean {
			if e := fail("working tree has uncommitted changes (use --skip-commit-check to override)"); e != nil {
				return res, e
			}
		}
		if len(cfg.AllowedWorkspaces) > 0 && !stringIn(cfg.AllowedWorkspaces, rc.Workspace) {
			if e := fail(fmt.Sprintf("workspace %q is not in the allowed list %v",
				rc.Workspace, cfg.AllowedWorkspaces)); e != nil {
				return res, e
			}
		}
	}

	if (full || backend) && cfg.BackendType() != "local" {
		if cfg.Backend == nil || len(cfg.Backend.Config) == 0 {
			if e := fail(fmt.Sprintf("backend type %q requires backend config", cfg.BackendType())); e != nil {
				return res, e
			}
		}
		if err := checkCloudCredentials(cfg, rc); err != nil {
			if e := fail(err.Error()); e != nil {
				return res, e
			}
		}
		if full {
			if err := checkPluginConfig(cfg); err != nil {
				if e := fail(err.Error()); e != nil {
					return res, e
				}
			}
		}
	}

	return res, nil
}

// checkCloudCredentials verifies some credential source exists for the
// backend's cloud before the provisioner is allowed to touch remote state.
func checkCloudCredentials(cfg *config.Config, rc *runctx.Context) error {
	switch cfg.BackendType() {
	case "s3":
		if rc.Cloud.AWSAccountID == "" && rc.Environ["AWS_ACCESS_KEY_ID"] == "" &&
			(cfg.Auth == nil || cfg.Auth.AssumeRole == nil) {
			return fmt.Errorf("s3 backend: no AWS credentials found (environment, profile, or assume_role)")
		}
	case "azurerm":
		if rc.Cloud.AzureSubscriptionID == "" && rc.Environ["ARM_CLIENT_ID"] == "" &&
			(cfg.Auth == nil || cfg.Auth.ServicePrincipal == nil) {
			return fmt.Errorf("azurerm backend: no Azure credentials found (az login, ARM_* variables, or service_principal)")
		}
	case "gcs":
		if rc.Cloud.GCPProjectID == "" && rc.Environ["GOOGLE_APPLICATION_CREDENTIALS"] == "" &&
			(cfg.Auth == nil || cfg.Auth.ServiceAccount == nil) {
			return fmt.Errorf("gcs backend: no GCP credentials found (gcloud, GOOGLE_APPLICATION_CREDENTIALS, or service_account)")
		}
	}
	return nil
}

func contains(m map[string]struct{}, k string) bool {
	_, ok := m[k]
	return ok
}

func stringIn(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
