// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package runctx

import (
	"context"
	"os"

	"github.com/terraflow/terraflow/internal/cloudid"
	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/log"
	"github.com/terraflow/terraflow/internal/util"
	"github.com/terraflow/terraflow/internal/vcs"
)

// Context is the immutable per-invocation snapshot consumed by validation,
// the plugins, and the orchestrator. It is built once and read-only
// afterward; environment side effects go through the env overlay, never
// through this object.
type Context struct {
	Workspace    string
	WorkingDir   string
	Hostname     string
	Cloud        cloudid.Identity
	VCS          vcs.Identity
	Environ      map[string]string
	TemplateVars map[string]string
}

// Build assembles the execution context: absolute working directory,
// best-effort VCS and cloud identity, the derived workspace name, and the
// flattened template-variable map.
func Build(ctx context.Context, cfg *config.Config, cwd string) (*Context, error) {
	wd, err := util.ResolveWorkingDir(cfg.WorkingDir, cwd)
	if err != nil {
		return nil, err
	}

	hostname, _ := os.Hostname()
	environ := config.EnvironMap(os.Environ())

	rc := &Context{
		WorkingDir: wd,
		Hostname:   hostname,
		Cloud:      cloudid.Probe(ctx),
		VCS:        vcs.Probe(ctx, wd),
		Environ:    environ,
	}

	rc.Workspace = deriveWorkspace(cfg, environ, rc)
	rc.TemplateVars = buildTemplateVars(rc)

	log.Debugf("context built: workspace=%s dir=%s", rc.Workspace, rc.WorkingDir)
	return rc, nil
}

// buildTemplateVars flattens the context into the string map used for ${VAR}
// substitution. The raw environment goes in first; derived keys overlay it.
// VCS values here are deliberately unsanitized: substitution reflects
// reality, only the workspace name itself is constrained.
func buildTemplateVars(rc *Context) map[string]string {
	vars := make(map[string]string, len(rc.Environ)+12)
	for k, v := range rc.Environ {
		vars[k] = v
	}

	vars["HOSTNAME"] = rc.Hostname
	vars["WORKSPACE"] = rc.Workspace

	if rc.Cloud.AWSRegion != "" {
		vars["AWS_REGION"] = rc.Cloud.AWSRegion
	}
	if rc.Cloud.AWSAccountID != "" {
		vars["AWS_ACCOUNT_ID"] = rc.Cloud.AWSAccountID
	}
	if rc.Cloud.AzureSubscriptionID != "" {
		vars["AZURE_SUBSCRIPTION_ID"] = rc.Cloud.AzureSubscriptionID
	}
	if rc.Cloud.GCPProjectID != "" {
		vars["GCP_PROJECT_ID"] = rc.Cloud.GCPProjectID
	}

	if rc.VCS.Branch != "" {
		vars["GIT_BRANCH"] = rc.VCS.Branch
	}
	if rc.VCS.Tag != "" {
		vars["GIT_TAG"] = rc.VCS.Tag
	}
	if rc.VCS.CommitSHA != "" {
		vars["GIT_COMMIT_SHA"] = rc.VCS.CommitSHA
	}
	if rc.VCS.ShortSHA != "" {
		vars["GIT_SHORT_SHA"] = rc.VCS.ShortSHA
	}
	if rc.VCS.Repository != "" {
		vars["GITHUB_REPOSITORY"] = rc.VCS.Repository
		vars["CI_PROJECT_PATH"] = rc.VCS.Repository
	}

	return vars
}
