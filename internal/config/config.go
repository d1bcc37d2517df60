// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"
)

// Backend describes the provisioner's state storage target. Type selects the
// backend plugin ("local", "s3", "azurerm", "gcs"); Config carries the
// free-form backend arguments (bucket, key, region, ...).
type Backend struct {
	Type   string            `yaml:"type"`
	Config map[string]string `yaml:"config"`
}

// Secrets describes the secrets provider used to populate TF_VAR_* values.
type Secrets struct {
	Provider string            `yaml:"provider"`
	Config   map[string]string `yaml:"config"`
}

// AssumeRole holds AWS STS assume-role parameters.
type AssumeRole struct {
	RoleARN         string `yaml:"role_arn"`
	SessionName     string `yaml:"session_name"`
	ExternalID      string `yaml:"external_id"`
	DurationSeconds int    `yaml:"duration_seconds"`
	Region          string `yaml:"region"`
}

// ServicePrincipal holds Azure service-principal credentials.
type ServicePrincipal struct {
	ClientID       string `yaml:"client_id"`
	ClientSecret   string `yaml:"client_secret"`
	TenantID       string `yaml:"tenant_id"`
	SubscriptionID string `yaml:"subscription_id"`
}

// ServiceAccount holds GCP service-account parameters.
type ServiceAccount struct {
	KeyFile string `yaml:"key_file"`
	Project string `yaml:"project"`
}

// Auth selects exactly one authentication method. The sub-objects are
// mutually exclusive by construction: the orchestrator picks whichever one
// is populated.
type Auth struct {
	AssumeRole       *AssumeRole       `yaml:"assume_role"`
	ServicePrincipal *ServicePrincipal `yaml:"service_principal"`
	ServiceAccount   *ServiceAccount   `yaml:"service_account"`
}

// Config is the fully layered terraflow configuration. Every field is
// independently overridable; an empty string or nil means "absent" and never
// replaces a present value during the merge (see Merge).
type Config struct {
	Workspace         string            `yaml:"workspace"`
	WorkingDir        string            `yaml:"working_dir"`
	Provisioner       string            `yaml:"provisioner"`
	MinVersion        string            `yaml:"min_version"`
	SkipCommitCheck   bool              `yaml:"skip_commit_check"`
	Backend           *Backend          `yaml:"backend"`
	Secrets           *Secrets          `yaml:"secrets"`
	Auth              *Auth             `yaml:"auth"`
	Vars              map[string]string `yaml:"vars"`
	WorkspaceStrategy []string          `yaml:"workspace_strategy"`
	AllowedWorkspaces []string          `yaml:"allowed_workspaces"`
	LogLevel          string            `yaml:"log_level"`
}

// Defaults returns the lowest-priority configuration tier.
func Defaults() *Config {
	return &Config{
		WorkingDir:        "./terraform",
		Provisioner:       "terraform",
		WorkspaceStrategy: []string{"cli", "env", "tag", "branch", "hostname"},
	}
}

// BackendType returns the effective backend type, defaulting to "local" when
// no backend descriptor is present.
func (c *Config) BackendType() string {
	if c.Backend == nil || c.Backend.Type == "" {
		return "local"
	}
	return c.Backend.Type
}

// Merge overlays src onto c, field by field. A field is only taken from src
// when src actually sets it; nested descriptors and maps merge key-wise so a
// partial override never erases sibling keys. SkipCommitCheck is sticky: any
// tier can enable it, none can disable it (its zero value is indistinguishable
// from unset).
func (c *Config) Merge(src *Config) {
	if src == nil {
		return
	}
	if src.Workspace != "" {
		c.Workspace = src.Workspace
	}
	if src.WorkingDir != "" {
		c.WorkingDir = src.WorkingDir
	}
	if src.Provisioner != "" {
		c.Provisioner = src.Provisioner
	}
	if src.MinVersion != "" {
		c.MinVersion = src.MinVersion
	}
	if src.SkipCommitCheck {
		c.SkipCommitCheck = true
	}
	if src.LogLevel != "" {
		c.LogLevel = src.LogLevel
	}
	if src.Backend != nil {
		if c.Backend == nil {
			c.Backend = &Backend{}
		}
		if src.Backend.Type != "" {
			c.Backend.Type = src.Backend.Type
		}
		c.Backend.Config = mergeMap(c.Backend.Config, src.Backend.Config)
	}
	if src.Secrets != nil {
		if c.Secrets == nil {
			c.Secrets = &Secrets{}
		}
		if src.Secrets.Provider != "" {
			c.Secrets.Provider = src.Secrets.Provider
		}
		c.Secrets.Config = mergeMap(c.Secrets.Config, src.Secrets.Config)
	}
	if src.Auth != nil {
		if c.Auth == nil {
			c.Auth = &Auth{}
		}
		mergeAuth(c.Auth, src.Auth)
	}
	c.Vars = mergeMap(c.Vars, src.Vars)
	if len(src.WorkspaceStrategy) > 0 {
		c.WorkspaceStrategy = append([]string(nil), src.WorkspaceStrategy...)
	}
	if len(src.AllowedWorkspaces) > 0 {
		c.AllowedWorkspaces = append([]string(nil), src.AllowedWorkspaces...)
	}
}

func mergeAuth(dst, src *Auth) {
	if src.AssumeRole != nil {
		if dst.AssumeRole == nil {
			dst.AssumeRole = &AssumeRole{}
		}
		a, b := dst.AssumeRole, src.AssumeRole
		if b.RoleARN != "" {
			a.RoleARN = b.RoleARN
		}
		if b.SessionName != "" {
			a.SessionName = b.SessionName
		}
		if b.ExternalID != "" {
			a.ExternalID = b.ExternalID
		}
		if b.DurationSeconds != 0 {
			a.DurationSeconds = b.DurationSeconds
		}
		if b.Region != "" {
			a.Region = b.Region
		}
	}
	if src.ServicePrincipal != nil {
		if dst.ServicePrincipal == nil {
			dst.ServicePrincipal = &ServicePrincipal{}
		}
		a, b := dst.ServicePrincipal, src.ServicePrincipal
		if b.ClientID != "" {
			a.ClientID = b.ClientID
		}
		if b.ClientSecret != "" {
			a.ClientSecret = b.ClientSecret
		}
		if b.TenantID != "" {
			a.TenantID = b.TenantID
		}
		if b.SubscriptionID != "" {
			a.SubscriptionID = b.SubscriptionID
		}
	}
	if src.ServiceAccount != nil {
		if dst.ServiceAccount == nil {
			dst.ServiceAccount = &ServiceAccount{}
		}
		a, b := dst.ServiceAccount, src.ServiceAccount
		if b.KeyFile != "" {
			a.KeyFile = b.KeyFile
		}
		if b.Project != "" {
			a.Project = b.Project
		}
	}
}

func mergeMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		if v != "" {
			dst[k] = v
		}
	}
	return dst
}

// ParseBool parses environment-style boolean values permissively: "true",
// "1" and "yes" (case-insensitive, trimmed) are true, everything else is
// false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	}
	return false
}
