// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/envoverlay"
	"github.com/terraflow/terraflow/internal/plugin"
	"github.com/terraflow/terraflow/internal/runctx"
	"github.com/terraflow/terraflow/internal/state"
	"github.com/terraflow/terraflow/internal/validate"
)

// fakeExec records every subprocess the orchestrator would launch and can
// fail selected invocations.
type fakeExec struct {
	calls   []string
	failOn  map[string]error
	environ []string
}

func (f *fakeExec) run(ctx context.Context, dir string, env []string, name string, args ...string) error {
	call := name + " " + strings.Join(args, " ")
	f.calls = append(f.calls, call)
	f.environ = env
	for prefix, err := range f.failOn {
		if strings.HasPrefix(call, prefix) {
			return err
		}
	}
	return nil
}

func passValidation(context.Context, string, *config.Config, *runctx.Context, validate.Options) (*validate.Result, error) {
	return &validate.Result{Passed: true}, nil
}

func testOrchestrator(t *testing.T, cfg *config.Config, command string, args ...string) (*Orchestrator, *fakeExec) {
	t.Helper()

	if cfg.Provisioner == "" {
		cfg.Provisioner = "terraform"
	}
	rc := &runctx.Context{
		Workspace:    "main",
		WorkingDir:   t.TempDir(),
		Environ:      map[string]string{},
		TemplateVars: map[string]string{"WORKSPACE": "main"},
	}

	fe := &fakeExec{failOn: map[string]error{}}
	o := New(command, args, cfg, rc, envoverlay.New(nil))
	o.exec = fe.run
	o.validateFn = passValidation
	return o, fe
}

func TestEndToEndLocalPlan(t *testing.T) {
	cfg := &config.Config{Backend: &config.Backend{Type: "local"}}
	o, fe := testOrchestrator(t, cfg, "plan", "-out=tfplan")

	require.NoError(t, o.Run(context.Background()))

	assert.Equal(t, []string{
		"terraform init",
		"terraform workspace select main",
		"terraform plan -out=tfplan",
	}, fe.calls)

	// The backend descriptor was persisted for migration detection.
	rec := state.Load(o.Context.WorkingDir)
	require.NotNil(t, rec)
	assert.Equal(t, "local", rec.Backend.Type)
}

func TestWorkspaceSelectFallsBackToNew(t *testing.T) {
	cfg := &config.Config{}
	o, fe := testOrchestrator(t, cfg, "plan")
	fe.failOn["terraform workspace select"] = fmt.Errorf("no such workspace")

	require.NoError(t, o.Run(context.Background()))

	assert.Contains(t, fe.calls, "terraform workspace select main")
	assert.Contains(t, fe.calls, "terraform workspace new main")
}

func TestWorkspaceCreateFailureIsFatal(t *testing.T) {
	o, fe := testOrchestrator(t, &config.Config{}, "plan")
	fe.failOn["terraform workspace"] = fmt.Errorf("backend locked")

	err := o.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not select or create workspace")
}

func TestLocalBackendGetsNoBackendConfigArgs(t *testing.T) {
	// Even if a plugin somehow produced arguments, a local backend's init
	// must not carry them.
	cfg := &config.Config{Backend: &config.Backend{Type: "local"}}
	o, fe := testOrchestrator(t, cfg, "plan")
	o.resolveBackend = func(name string) (plugin.Backend, error) {
		return &fakeBackend{name: "local", initArgs: []string{"-backend-config=bogus=x"}}, nil
	}

	require.NoError(t, o.Run(context.Background()))
	assert.Equal(t, "terraform init", fe.calls[0])
}

func TestRemoteBackendInitArgs(t *testing.T) {
	cfg := &config.Config{Backend: &config.Backend{
		Type:   "s3",
		Config: map[string]string{"bucket": "states", "key": "app.tfstate", "region": "us-east-1"},
	}}
	o, fe := testOrchestrator(t, cfg, "apply")
	o.resolveBackend = func(string) (plugin.Backend, error) {
		return &fakeBackend{name: "s3", initArgs: []string{
			"-backend-config=bucket=states", "-backend-config=key=app.tfstate",
		}}, nil
	}

	require.NoError(t, o.Run(context.Background()))

	require.NotEmpty(t, fe.calls)
	assert.True(t, strings.HasPrefix(fe.calls[0], "terraform init -backend-config=bucket=states"), fe.calls[0])
}

func TestDryRunNeverLaunchesProvisioner(t *testing.T) {
	cfg := &config.Config{Backend: &config.Backend{Type: "local"}}
	o, fe := testOrchestrator(t, cfg, "apply")
	o.DryRun = true

	require.NoError(t, o.Run(context.Background()))

	assert.Empty(t, fe.calls)
	// Dry runs never persist backend state either.
	assert.Nil(t, state.Load(o.Context.WorkingDir))
}

func TestDryRunReportsFailedValidation(t *testing.T) {
	o, fe := testOrchestrator(t, &config.Config{}, "apply")
	o.DryRun = true
	o.validateFn = func(context.Context, string, *config.Config, *runctx.Context, validate.Options) (*validate.Result, error) {
		return &validate.Result{Passed: false, Errors: []string{"boom"}}, nil
	}

	err := o.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Empty(t, fe.calls)
}

func TestValidationFailureAbortsEverything(t *testing.T) {
	o, fe := testOrchestrator(t, &config.Config{}, "apply")
	o.validateFn = func(context.Context, string, *config.Config, *runctx.Context, validate.Options) (*validate.Result, error) {
		return nil, &validate.Error{Errors: []string{"nope"}}
	}

	err := o.Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, fe.calls)
}

// Fakes used for the stage-ordering test.

type fakeBackend struct {
	name     string
	order    *[]string
	initArgs []string
}

func (f *fakeBackend) Name() string { return f.name }
func (f *fakeBackend) Validate(*config.Backend) error {
	if f.order != nil {
		*f.order = append(*f.order, "backend.validate")
	}
	return nil
}
func (f *fakeBackend) InitArgs(*config.Backend, *runctx.Context) ([]string, error) {
	return f.initArgs, nil
}

type fakeSecrets struct{ order *[]string }

func (f *fakeSecrets) Name() string { return "env" }
func (f *fakeSecrets) Validate(*config.Secrets) error {
	*f.order = append(*f.order, "secrets.validate")
	return nil
}
func (f *fakeSecrets) Fetch(context.Context, *config.Secrets, *runctx.Context) (map[string]string, error) {
	*f.order = append(*f.order, "secrets.fetch")
	return map[string]string{"TF_VAR_from_secrets": "v"}, nil
}

type fakeAuth struct{ order *[]string }

func (f *fakeAuth) Name() string { return "assume_role" }
func (f *fakeAuth) Validate(*config.Auth) error {
	*f.order = append(*f.order, "auth.validate")
	return nil
}
func (f *fakeAuth) Authenticate(context.Context, *config.Auth, *runctx.Context) (map[string]string, error) {
	*f.order = append(*f.order, "auth.authenticate")
	return map[string]string{"AWS_ACCESS_KEY_ID": "assumed"}, nil
}

func TestAuthThenSecretsThenBackendOrdering(t *testing.T) {
	cfg := &config.Config{
		Auth:    &config.Auth{AssumeRole: &config.AssumeRole{RoleARN: "arn:aws:iam::123:role/x"}},
		Secrets: &config.Secrets{Provider: "env"},
	}
	o, _ := testOrchestrator(t, cfg, "plan")

	var order []string
	o.resolveAuth = func(string) (plugin.Auth, error) { return &fakeAuth{order: &order}, nil }
	o.resolveSecrets = func(string) (plugin.Secrets, error) { return &fakeSecrets{order: &order}, nil }
	o.resolveBackend = func(string) (plugin.Backend, error) { return &fakeBackend{name: "local", order: &order}, nil }

	require.NoError(t, o.Run(context.Background()))

	assert.Equal(t, []string{
		"auth.validate",
		"auth.authenticate",
		"secrets.validate",
		"secrets.fetch",
		"backend.validate",
	}, order)

	// Auth credentials and fetched secrets landed in the environment.
	v, _ := o.Env.Get("AWS_ACCESS_KEY_ID")
	assert.Equal(t, "assumed", v)
	v, _ = o.Env.Get("TF_VAR_from_secrets")
	assert.Equal(t, "v", v)
}

func TestSetupEnvironmentRules(t *testing.T) {
	cfg := &config.Config{
		Vars:     map[string]string{"region": "us-east-1", "preset": "from-config"},
		LogLevel: "debug",
	}
	o, fe := testOrchestrator(t, cfg, "plan")
	// Pre-set environment always beats configuration-derived values.
	o.Env = envoverlay.New([]string{"TF_VAR_preset=external"})

	require.NoError(t, o.Run(context.Background()))

	env := strings.Join(fe.environ, "\n")
	assert.Contains(t, env, "TF_VAR_region=us-east-1")
	assert.Contains(t, env, "TF_VAR_preset=external")
	assert.Contains(t, env, "TF_LOG=DEBUG")
}

func TestExecErrorCarriesArgv(t *testing.T) {
	o, fe := testOrchestrator(t, &config.Config{}, "apply")
	fe.failOn["terraform apply"] = fmt.Errorf("exit status 1")

	err := o.Run(context.Background())
	require.Error(t, err)

	// The select/new and init calls still happened before the failure.
	assert.Contains(t, fe.calls, "terraform init")
	assert.Contains(t, fe.calls, "terraform apply")
}
