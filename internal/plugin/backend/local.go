// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/runctx"
)

// Local is the default backend: state on local disk, no init arguments.
type Local struct{}

func (b *Local) Name() string { return "local" }

func (b *Local) Validate(desc *config.Backend) error { return nil }

func (b *Local) InitArgs(desc *config.Backend, rc *runctx.Context) ([]string, error) {
	return nil, nil
}
