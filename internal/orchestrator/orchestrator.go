// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/envoverlay"
	"github.com/terraflow/terraflow/internal/log"
	"github.com/terraflow/terraflow/internal/plugin"
	"github.com/terraflow/terraflow/internal/runctx"
	"github.com/terraflow/terraflow/internal/state"
	"github.com/terraflow/terraflow/internal/tmpl"
	"github.com/terraflow/terraflow/internal/validate"
)

// Orchestrator drives one provisioner invocation through the fixed stage
// sequence: validate, set up environment, detect migration, authenticate,
// fetch secrets, configure backend, then init / select workspace / run the
// requested command. Stages are strictly sequential; there is no branching
// back.
type Orchestrator struct {
	Command         string
	Args            []string
	Config          *config.Config
	Context         *runctx.Context
	Env             *envoverlay.Overlay
	DryRun          bool
	SkipCommitCheck bool

	// Seams for tests; New wires the real implementations.
	exec           execFunc
	validateFn     func(context.Context, string, *config.Config, *runctx.Context, validate.Options) (*validate.Result, error)
	resolveBackend func(string) (plugin.Backend, error)
	resolveSecrets func(string) (plugin.Secrets, error)
	resolveAuth    func(string) (plugin.Auth, error)
}

// New builds an orchestrator over an already-resolved configuration and
// execution context.
func New(command string, args []string, cfg *config.Config, rc *runctx.Context, env *envoverlay.Overlay) *Orchestrator {
	return &Orchestrator{
		Command:        command,
		Args:           args,
		Config:         cfg,
		Context:        rc,
		Env:            env,
		exec:           runSubprocess,
		validateFn:     validate.Run,
		resolveBackend: plugin.ResolveBackend,
		resolveSecrets: plugin.ResolveSecrets,
		resolveAuth:    plugin.ResolveAuth,
	}
}

// Run executes the stage sequence. In dry-run mode it stops after the
// backend is configured and emits the plan; the provisioner subprocess is
// never launched.
func (o *Orchestrator) Run(ctx context.Context) error {
	res, err := o.validateFn(ctx, o.Command, o.Config, o.Context, validate.Options{
		SkipCommitCheck: o.SkipCommitCheck,
		DryRun:          o.DryRun,
	})
	if err != nil {
		return err
	}

	o.setupEnvironment()
	o.detectMigration()

	if err := o.authenticate(ctx); err != nil {
		return err
	}
	if err := o.fetchSecrets(ctx); err != nil {
		return err
	}

	desc, initArgs, err := o.configureBackend(ctx)
	if err != nil {
		return err
	}

	if o.DryRun {
		o.emitPlan(desc, initArgs, res)
		if !res.Passed {
			return &validate.Error{Errors: res.Errors}
		}
		return nil
	}

	if err := o.initProvisioner(ctx, desc, initArgs); err != nil {
		return err
	}
	if err := o.selectWorkspace(ctx); err != nil {
		return err
	}
	return o.runCommand(ctx)
}

// setupEnvironment loads the local .env file (existing environment always
// wins over file values), exports VCS and cloud identity variables for both
// forge ecosystems, resolves ${VAR} templates inside the configuration, and
// exports the configuration's provisioner variables.
func (o *Orchestrator) setupEnvironment() {
	if values, err := godotenv.Read(filepath.Join(o.Context.WorkingDir, ".env")); err == nil {
		n := o.Env.SetDefaults(values)
		log.Debugf("loaded .env: %d of %d values applied", n, len(values))
	}

	vcsVars := map[string]string{}
	if o.Context.VCS.Branch != "" {
		vcsVars["GIT_BRANCH"] = o.Context.VCS.Branch
	}
	if o.Context.VCS.Tag != "" {
		vcsVars["GIT_TAG"] = o.Context.VCS.Tag
	}
	if o.Context.VCS.CommitSHA != "" {
		vcsVars["GIT_COMMIT_SHA"] = o.Context.VCS.CommitSHA
		vcsVars["GIT_SHORT_SHA"] = o.Context.VCS.ShortSHA
	}
	if o.Context.VCS.Repository != "" {
		vcsVars["GITHUB_REPOSITORY"] = o.Context.VCS.Repository
		vcsVars["CI_PROJECT_PATH"] = o.Context.VCS.Repository
	}
	if o.Context.Cloud.AWSAccountID != "" {
		vcsVars["AWS_ACCOUNT_ID"] = o.Context.Cloud.AWSAccountID
	}
	if o.Context.Cloud.AzureSubscriptionID != "" {
		vcsVars["AZURE_SUBSCRIPTION_ID"] = o.Context.Cloud.AzureSubscriptionID
	}
	if o.Context.Cloud.GCPProjectID != "" {
		vcsVars["GCP_PROJECT_ID"] = o.Context.Cloud.GCPProjectID
	}
	o.Env.SetDefaults(vcsVars)

	tmpl.ResolveConfig(o.Config, o.Context.TemplateVars)

	for k, v := range o.Config.Vars {
		o.Env.SetDefault("TF_VAR_"+k, v)
	}
	if o.Config.LogLevel != "" {
		o.Env.SetDefault("TF_LOG", strings.ToUpper(o.Config.LogLevel))
	}
}

// detectMigration warns when the backend type changed since the last real
// run. Informational only; it never blocks execution.
func (o *Orchestrator) detectMigration() {
	desc := o.effectiveBackend()
	prev, migrated := state.DetectMigration(o.Context.WorkingDir, desc)
	if !migrated {
		return
	}
	log.Warnf("backend type changed from %q (last used %s) to %q; state migration may be required",
		prev.Backend.Type, humanize.Time(prev.LastUpdated), desc.Type)
}

// authenticate runs the configured auth method, if any, and merges the
// returned credentials into the environment as a documented override.
func (o *Orchestrator) authenticate(ctx context.Context) error {
	name := authMethodName(o.Config.Auth)
	if name == "" {
		return nil
	}

	method, err := o.resolveAuth(name)
	if err != nil {
		return err
	}
	if err := method.Validate(o.Config.Auth); err != nil {
		return err
	}

	creds, err := method.Authenticate(ctx, o.Config.Auth, o.Context)
	if err != nil {
		return err
	}
	for k, v := range creds {
		o.Env.Set(k, v)
	}
	log.Infof("authenticated via %s (%d credentials exported)", name, len(creds))
	return nil
}

// fetchSecrets runs the configured secrets provider, if any. The returned
// map is already TF_VAR_-prefixed; externally pre-set variables win.
func (o *Orchestrator) fetchSecrets(ctx context.Context) error {
	if o.Config.Secrets == nil || o.Config.Secrets.Provider == "" {
		return nil
	}

	provider, err := o.resolveSecrets(o.Config.Secrets.Provider)
	if err != nil {
		return err
	}
	if err := provider.Validate(o.Config.Secrets); err != nil {
		return err
	}

	vars, err := provider.Fetch(ctx, o.Config.Secrets, o.Context)
	if err != nil {
		return err
	}
	n := o.Env.SetDefaults(vars)
	log.Infof("secrets provider %s supplied %d variables (%d applied)",
		o.Config.Secrets.Provider, len(vars), n)
	return nil
}

// configureBackend resolves and validates the backend plugin, runs its
// optional setup hook, collects init arguments, and persists the descriptor
// for migration detection on real runs.
func (o *Orchestrator) configureBackend(ctx context.Context) (*config.Backend, []string, error) {
	desc := o.effectiveBackend()

	be, err := o.resolveBackend(desc.Type)
	if err != nil {
		return nil, nil, err
	}
	if err := be.Validate(o.Config.Backend); err != nil {
		return nil, nil, err
	}

	// The setup hook may touch cloud APIs, so a dry run skips it.
	if setup, ok := be.(plugin.BackendSetup); ok && !o.DryRun {
		if err := setup.Setup(ctx, o.Config.Backend, o.Context); err != nil {
			return nil, nil, err
		}
	}

	initArgs, err := be.InitArgs(o.Config.Backend, o.Context)
	if err != nil {
		return nil, nil, err
	}

	if !o.DryRun && o.Config.Backend != nil {
		if err := state.Save(o.Context.WorkingDir, desc); err != nil {
			log.Warnf("could not persist backend state: %v", err)
		}
	}

	return desc, initArgs, nil
}

// initProvisioner runs `<provisioner> init`. A local backend gets no
// -backend-config arguments even if some were produced.
func (o *Orchestrator) initProvisioner(ctx context.Context, desc *config.Backend, initArgs []string) error {
	args := []string{"init"}
	if desc.Type != "local" {
		args = append(args, initArgs...)
	}
	log.Infof("initializing %s (backend %s)", o.Config.Provisioner, desc.Type)
	return o.runProvisioner(ctx, args)
}

// selectWorkspace selects the derived workspace, creating it when selection
// fails for any reason. A failed create is fatal.
func (o *Orchestrator) selectWorkspace(ctx context.Context) error {
	ws := o.Context.Workspace
	if err := o.runProvisioner(ctx, []string{"workspace", "select", ws}); err != nil {
		log.Infof("workspace %s not selectable, creating it", ws)
		if err := o.runProvisioner(ctx, []string{"workspace", "new", ws}); err != nil {
			return fmt.Errorf("could not select or create workspace %q: %w", ws, err)
		}
	}
	return nil
}

// runCommand executes the originally requested subcommand with its
// pass-through arguments.
func (o *Orchestrator) runCommand(ctx context.Context) error {
	return o.runProvisioner(ctx, append([]string{o.Command}, o.Args...))
}

func (o *Orchestrator) runProvisioner(ctx context.Context, args []string) error {
	return o.exec(ctx, o.Context.WorkingDir, o.Env.Environ(), o.Config.Provisioner, args...)
}

// effectiveBackend returns the configured descriptor with the type
// defaulted, or a bare local descriptor when none is configured.
func (o *Orchestrator) effectiveBackend() *config.Backend {
	if o.Config.Backend == nil {
		return &config.Backend{Type: "local"}
	}
	desc := *o.Config.Backend
	if desc.Type == "" {
		desc.Type = "local"
	}
	return &desc
}

// authMethodName maps the populated auth sub-object to its plugin name. The
// sub-objects are mutually exclusive; the fixed order here only breaks ties
// in malformed configurations.
func authMethodName(a *config.Auth) string {
	switch {
	case a == nil:
		return ""
	case a.AssumeRole != nil:
		return "assume_role"
	case a.ServicePrincipal != nil:
		return "service_principal"
	case a.ServiceAccount != nil:
		return "service_account"
	}
	return ""
}
