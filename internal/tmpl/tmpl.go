// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tmpl

import (
	"regexp"

	"github.com/terraflow/terraflow/internal/config"
)

var placeholder = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Resolve substitutes ${VAR} placeholders in s from vars. Placeholders with
// no matching variable are left intact so an unresolved reference stays
// visible instead of silently collapsing to the empty string.
func Resolve(s string, vars map[string]string) string {
	return placeholder.ReplaceAllStringFunc(s, func(m string) string {
		name := m[2 : len(m)-1]
		if v, ok := vars[name]; ok {
			return v
		}
		return m
	})
}

// ResolveMap substitutes placeholders in every value of m, in place.
func ResolveMap(m map[string]string, vars map[string]string) {
	for k, v := range m {
		m[k] = Resolve(v, vars)
	}
}

// ResolveConfig substitutes placeholders in the template-bearing parts of the
// configuration: backend config, secrets config, and the variable map.
func ResolveConfig(cfg *config.Config, vars map[string]string) {
	if cfg.Backend != nil {
		ResolveMap(cfg.Backend.Config, vars)
	}
	if cfg.Secrets != nil {
		ResolveMap(cfg.Secrets.Config, vars)
	}
	ResolveMap(cfg.Vars, vars)
}
