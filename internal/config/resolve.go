// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/terraflow/terraflow/internal/log"
)

// FileName is the per-project configuration file looked up in the working
// directory (and the invocation directory as a fallback).
const FileName = ".tfwconfig.yml"

// CLIOptions carries the flag values collected by the command layer. Empty
// strings mean the flag was not supplied.
type CLIOptions struct {
	Workspace       string
	WorkingDir      string
	Backend         string
	Secrets         string
	AssumeRole      string
	SkipCommitCheck bool
	ConfigPath      string
	Vars            map[string]string
}

// Resolve builds the effective configuration for one invocation by merging
// the four tiers in ascending priority: defaults, config file, environment,
// CLI flags. It never fails: a missing or malformed config file resolves to
// an empty tier with a logged warning.
func Resolve(opts CLIOptions, environ map[string]string, cwd string) *Config {
	cfg := Defaults()

	cfg.Merge(fromFile(configFilePath(opts, environ, cwd)))
	cfg.Merge(fromEnviron(environ))
	cfg.Merge(fromCLI(opts))

	return cfg
}

// configFilePath picks the config file location: an explicit --config flag
// wins, then TERRAFLOW_CONFIG, then the candidate working directory, then the
// invocation directory.
func configFilePath(opts CLIOptions, environ map[string]string, cwd string) string {
	if opts.ConfigPath != "" {
		return opts.ConfigPath
	}
	if p := environ["TERRAFLOW_CONFIG"]; p != "" {
		return p
	}

	// The working dir itself is subject to layering, so approximate it with
	// the same priority order using only the already-known tiers.
	wd := Defaults().WorkingDir
	if v := environ["TERRAFLOW_WORKING_DIR"]; v != "" {
		wd = v
	}
	if opts.WorkingDir != "" {
		wd = opts.WorkingDir
	}
	if !filepath.IsAbs(wd) {
		wd = filepath.Join(cwd, wd)
	}

	candidate := filepath.Join(wd, FileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return filepath.Join(cwd, FileName)
}

// fromFile parses a YAML config file into a configuration tier. Any read or
// parse failure degrades to an empty tier; first-run UX must not depend on
// the file existing.
func fromFile(path string) *Config {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Debugf("no config file at %s: %v", path, err)
		return &Config{}
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		log.Warnf("ignoring malformed config file %s: %v", path, err)
		return &Config{}
	}
	log.Debugf("loaded config file: %s", path)
	return &cfg
}

// fromEnviron builds the environment tier from TERRAFLOW_* variables.
func fromEnviron(environ map[string]string) *Config {
	cfg := &Config{
		Workspace:  environ["TERRAFLOW_WORKSPACE"],
		WorkingDir: environ["TERRAFLOW_WORKING_DIR"],
		LogLevel:   environ["TERRAFLOW_LOG"],
	}
	if v := environ["TERRAFLOW_BACKEND"]; v != "" {
		cfg.Backend = &Backend{Type: v}
	}
	if v := environ["TERRAFLOW_SECRETS"]; v != "" {
		cfg.Secrets = &Secrets{Provider: v}
	}
	if v := environ["TERRAFLOW_ASSUME_ROLE"]; v != "" {
		cfg.Auth = &Auth{AssumeRole: &AssumeRole{RoleARN: v}}
	}
	if v, ok := environ["TERRAFLOW_SKIP_COMMIT_CHECK"]; ok {
		cfg.SkipCommitCheck = ParseBool(v)
	}
	return cfg
}

// fromCLI builds the highest-priority tier from flag values.
func fromCLI(opts CLIOptions) *Config {
	cfg := &Config{
		Workspace:       opts.Workspace,
		WorkingDir:      opts.WorkingDir,
		SkipCommitCheck: opts.SkipCommitCheck,
		Vars:            opts.Vars,
	}
	if opts.Backend != "" {
		cfg.Backend = &Backend{Type: opts.Backend}
	}
	if opts.Secrets != "" {
		cfg.Secrets = &Secrets{Provider: opts.Secrets}
	}
	if opts.AssumeRole != "" {
		cfg.Auth = &Auth{AssumeRole: &AssumeRole{RoleARN: opts.AssumeRole}}
	}
	return cfg
}

// EnvironMap converts os.Environ-style "key=value" pairs into a map.
func EnvironMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				m[kv[:i]] = kv[i+1:]
				break
			}
		}
	}
	return m
}
