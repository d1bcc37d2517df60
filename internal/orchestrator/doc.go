// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package orchestrator sequences one provisioner run: validation,
// environment setup, migration detection, authentication, secret fetching,
// backend configuration, and finally the init / workspace / command
// subprocess invocations.
package orchestrator
