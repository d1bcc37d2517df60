// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command wires the terraflow CLI: flags, configuration resolution,
// and the handoff to the orchestrator. The provisioner subcommand (plan,
// apply, ...) is the first positional argument; everything after it passes
// through to the provisioner untouched.
package command
