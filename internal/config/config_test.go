// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergePriority(t *testing.T) {
	tests := []struct {
		name  string
		base  *Config
		src   *Config
		check func(*testing.T, *Config)
	}{
		{
			name: "absent never erases present",
			base: &Config{Workspace: "prod", WorkingDir: "./infra"},
			src:  &Config{},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "prod", c.Workspace)
				assert.Equal(t, "./infra", c.WorkingDir)
			},
		},
		{
			name: "present wins per field, not per object",
			base: &Config{Workspace: "prod", Provisioner: "terraform"},
			src:  &Config{Workspace: "dev"},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "dev", c.Workspace)
				assert.Equal(t, "terraform", c.Provisioner)
			},
		},
		{
			name: "backend type override keeps sibling config keys",
			base: &Config{Backend: &Backend{Type: "s3", Config: map[string]string{
				"bucket": "states", "key": "app.tfstate",
			}}},
			src: &Config{Backend: &Backend{Type: "gcs"}},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "gcs", c.Backend.Type)
				assert.Equal(t, "states", c.Backend.Config["bucket"])
				assert.Equal(t, "app.tfstate", c.Backend.Config["key"])
			},
		},
		{
			name: "variable maps merge key-wise",
			base: &Config{Vars: map[string]string{"region": "us-east-1", "env": "prod"}},
			src:  &Config{Vars: map[string]string{"env": "dev"}},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "us-east-1", c.Vars["region"])
				assert.Equal(t, "dev", c.Vars["env"])
			},
		},
		{
			name: "skip commit check is sticky",
			base: &Config{SkipCommitCheck: true},
			src:  &Config{},
			check: func(t *testing.T, c *Config) {
				assert.True(t, c.SkipCommitCheck)
			},
		},
		{
			name: "auth sub-objects merge field-wise",
			base: &Config{Auth: &Auth{AssumeRole: &AssumeRole{
				RoleARN: "arn:aws:iam::123:role/deploy", SessionName: "ci",
			}}},
			src: &Config{Auth: &Auth{AssumeRole: &AssumeRole{ExternalID: "xyz"}}},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "arn:aws:iam::123:role/deploy", c.Auth.AssumeRole.RoleARN)
				assert.Equal(t, "ci", c.Auth.AssumeRole.SessionName)
				assert.Equal(t, "xyz", c.Auth.AssumeRole.ExternalID)
			},
		},
		{
			name: "strategy list is replaced wholesale",
			base: &Config{WorkspaceStrategy: []string{"tag", "branch", "hostname"}},
			src:  &Config{WorkspaceStrategy: []string{"hostname"}},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, []string{"hostname"}, c.WorkspaceStrategy)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.base.Merge(tt.src)
			tt.check(t, tt.base)
		})
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"true", true},
		{"TRUE", true},
		{" True ", true},
		{"1", true},
		{"yes", true},
		{"YES", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"", false},
		{"anything", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseBool(tt.in), "ParseBool(%q)", tt.in)
	}
}

func TestBackendType(t *testing.T) {
	assert.Equal(t, "local", (&Config{}).BackendType())
	assert.Equal(t, "local", (&Config{Backend: &Backend{}}).BackendType())
	assert.Equal(t, "s3", (&Config{Backend: &Backend{Type: "s3"}}).BackendType())
}

func TestEnvironMap(t *testing.T) {
	m := EnvironMap([]string{"A=1", "B=x=y", "NOEQ"})
	assert.Equal(t, "1", m["A"])
	assert.Equal(t, "x=y", m["B"])
	_, ok := m["NOEQ"]
	assert.False(t, ok)
}
