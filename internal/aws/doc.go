// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws contains AWS SDK helpers shared by the cloud-identity probe,
// the assume-role auth plugin, and the s3 backend and secrets plugins.
package aws
