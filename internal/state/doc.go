// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package state persists the last-applied backend descriptor under the
// working directory so a backend-type change can be flagged on the next run.
package state
