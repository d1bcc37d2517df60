// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/terraflow/terraflow/internal/config"
)

// NewGlobalFlags returns the terraflow flag set. Environment-variable
// equivalents (TERRAFLOW_*) are handled by the configuration resolver's
// environment tier, not by flag sources, so the four-tier priority stays
// observable in one place.
func NewGlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "workspace",
			Aliases: []string{"w"},
			Usage:   "workspace to use, overriding the derivation chain",
		},
		&cli.StringFlag{
			Name:    "working-dir",
			Aliases: []string{"d"},
			Usage:   "directory containing the provisioner configuration",
		},
		&cli.StringFlag{
			Name:    "backend",
			Aliases: []string{"b"},
			Usage:   "backend type (local, s3, azurerm, gcs)",
		},
		&cli.StringFlag{
			Name:    "secrets",
			Aliases: []string{"s"},
			Usage:   "secrets provider (env, file, s3)",
		},
		&cli.StringFlag{
			Name:  "assume-role",
			Usage: "AWS role ARN to assume before running",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to the terraflow config file",
		},
		&cli.StringSliceFlag{
			Name:  "var",
			Usage: "provisioner variable as key=value (repeatable)",
		},
		&cli.BoolFlag{
			Name:        "skip-commit-check",
			Usage:       "allow a dirty working tree for mutating commands",
			HideDefault: true,
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "resolve and validate everything, then stop and print the plan",
			HideDefault: true,
		},
	}
}

// cliOptions converts parsed flags into the resolver's CLI tier.
func cliOptions(cmd *cli.Command) config.CLIOptions {
	opts := config.CLIOptions{
		Workspace:       cmd.String("workspace"),
		WorkingDir:      cmd.String("working-dir"),
		Backend:         cmd.String("backend"),
		Secrets:         cmd.String("secrets"),
		AssumeRole:      cmd.String("assume-role"),
		SkipCommitCheck: cmd.Bool("skip-commit-check"),
		ConfigPath:      cmd.String("config"),
	}

	for _, kv := range cmd.StringSlice("var") {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			if opts.Vars == nil {
				opts.Vars = make(map[string]string)
			}
			opts.Vars[k] = v
		}
	}
	return opts
}
