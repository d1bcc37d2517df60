// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package runctx

import (
	"regexp"
	"strings"

	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/log"
)

// DefaultWorkspace is the fallback when no derivation strategy produces a
// name, and the result of sanitizing a candidate down to nothing.
const DefaultWorkspace = "default"

var (
	workspaceInvalid = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	workspaceSquash  = regexp.MustCompile(`[/\s.]+`)
	ephemeralBranch  = regexp.MustCompile(`^[^/]+/`)

	// ValidWorkspace is the hard constraint every derived workspace name
	// must satisfy.
	ValidWorkspace = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// deriveWorkspace walks the strategy chain and returns the first hit,
// sanitized. CLI- and env-supplied names are always consulted first; the
// configured strategy list only controls the tag/branch/hostname tiers.
func deriveWorkspace(cfg *config.Config, environ map[string]string, rc *Context) string {
	if cfg.Workspace != "" {
		return SanitizeWorkspace(cfg.Workspace)
	}
	if v := environ["TERRAFLOW_WORKSPACE"]; v != "" {
		return SanitizeWorkspace(v)
	}

	for _, strategy := range cfg.WorkspaceStrategy {
		switch strategy {
		case "cli", "env":
			// Already handled above, unconditionally.
		case "tag":
			if rc.VCS.Tag != "" {
				return SanitizeWorkspace(rc.VCS.Tag)
			}
		case "branch":
			if rc.VCS.Branch != "" && !IsEphemeralBranch(rc.VCS.Branch) {
				return SanitizeWorkspace(rc.VCS.Branch)
			}
		case "hostname":
			if rc.Hostname != "" {
				return SanitizeWorkspace(rc.Hostname)
			}
		default:
			log.Warnf("unknown workspace strategy %q ignored", strategy)
		}
	}

	return DefaultWorkspace
}

// IsEphemeralBranch reports whether a branch name carries a slash-delimited
// prefix (feature/x, bob/y). Such branches are excluded from workspace
// derivation so short-lived branches don't spawn workspaces.
func IsEphemeralBranch(branch string) bool {
	return ephemeralBranch.MatchString(branch)
}

// SanitizeWorkspace normalizes a candidate into a valid workspace name:
// strip a refs/heads/ or refs/tags/ prefix, turn slashes, whitespace and
// dots into dashes, drop everything else outside [a-zA-Z0-9_-], trim edge
// dashes, and fall back to "default" when nothing survives. The function is
// idempotent.
func SanitizeWorkspace(name string) string {
	name = strings.TrimPrefix(name, "refs/heads/")
	name = strings.TrimPrefix(name, "refs/tags/")
	name = workspaceSquash.ReplaceAllString(name, "-")
	name = workspaceInvalid.ReplaceAllString(name, "")
	name = strings.Trim(name, "-")
	if name == "" {
		return DefaultWorkspace
	}
	return name
}
