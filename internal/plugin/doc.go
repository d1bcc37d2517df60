// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package plugin defines the three capability contracts (Backend, Secrets,
// Auth) and the compile-time registry that resolves a configured provider
// name to its statically linked implementation. Adding a provider means
// adding a map entry in registry.go.
package plugin
