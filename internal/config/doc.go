// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config defines the terraflow configuration model and resolves it
// from four sources merged in ascending priority:
//
//	defaults < .tfwconfig.yml < TERRAFLOW_* environment variables < CLI flags
//
// The merge is field-aware: a higher-priority source only replaces the fields
// it actually sets, so a CLI-supplied backend type never erases a file-supplied
// backend config key the CLI did not touch. A missing or malformed config file
// is never fatal; it degrades to an empty source with a logged warning.
package config
