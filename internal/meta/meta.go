// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/terraflow/terraflow/internal/config"
)

// Meta contains runtime metadata shared by the command layer. It carries the
// raw CLI arguments, the fully resolved configuration, the process context,
// and the directory terraflow was invoked from.
type Meta struct {
	Args        []string
	Config      *config.Config
	Context     context.Context
	StartingDir string
}
