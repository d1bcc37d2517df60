// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package vcs

import (
	"context"
	"os/exec"
	"strings"

	"github.com/terraflow/terraflow/internal/log"
)

// Identity is the read-only VCS snapshot for one invocation. Every field is
// best-effort: a repo without a tag, a detached HEAD, or a missing git binary
// all degrade to empty fields rather than errors.
type Identity struct {
	HasRepo    bool
	Branch     string
	Tag        string
	CommitSHA  string
	ShortSHA   string
	Clean      bool
	Repository string // forge identifier, e.g. "org/repo"
}

// Probe inspects the git repository containing dir. When dir is not inside a
// work tree, HasRepo is false and everything else is zero.
func Probe(ctx context.Context, dir string) Identity {
	var id Identity

	if out, err := git(ctx, dir, "rev-parse", "--is-inside-work-tree"); err != nil || out != "true" {
		log.Debugf("no git repository at %s", dir)
		return id
	}
	id.HasRepo = true

	if out, err := git(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD"); err == nil && out != "HEAD" {
		id.Branch = out
	}
	// Only an exact tag match counts; a descendant commit of a tag does not.
	if out, err := git(ctx, dir, "describe", "--tags", "--exact-match"); err == nil {
		id.Tag = out
	}
	if out, err := git(ctx, dir, "rev-parse", "HEAD"); err == nil {
		id.CommitSHA = out
	}
	if out, err := git(ctx, dir, "rev-parse", "--short", "HEAD"); err == nil {
		id.ShortSHA = out
	}
	if out, err := git(ctx, dir, "status", "--porcelain"); err == nil {
		id.Clean = out == ""
	}
	if out, err := git(ctx, dir, "remote", "get-url", "origin"); err == nil {
		id.Repository = ParseForgeRepository(out)
	}

	return id
}

// ParseForgeRepository extracts an "owner/repo" identifier from a git remote
// URL. Both SSH ("git@host:owner/repo.git") and HTTPS
// ("https://host/owner/repo.git") forms are handled; anything unrecognizable
// returns "".
func ParseForgeRepository(remote string) string {
	remote = strings.TrimSpace(remote)
	remote = strings.TrimSuffix(remote, ".git")

	var path string
	switch {
	case strings.Contains(remote, "://"):
		parts := strings.SplitN(remote, "://", 2)
		slash := strings.Index(parts[1], "/")
		if slash < 0 {
			return ""
		}
		path = parts[1][slash+1:]
	case strings.Contains(remote, ":"):
		path = remote[strings.LastIndex(remote, ":")+1:]
	default:
		return ""
	}

	path = strings.Trim(path, "/")
	if strings.Count(path, "/") < 1 {
		return ""
	}
	return path
}

// git runs a git subcommand against dir and returns trimmed stdout.
func git(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
