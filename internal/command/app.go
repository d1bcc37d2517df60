// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/envoverlay"
	"github.com/terraflow/terraflow/internal/log"
	"github.com/terraflow/terraflow/internal/meta"
	"github.com/terraflow/terraflow/internal/orchestrator"
	"github.com/terraflow/terraflow/internal/runctx"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	m := meta.Meta{
		Args:        args,
		Context:     ctx,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:      "terraflow",
		Usage:     "Terraform workflow orchestrator",
		ArgsUsage: "<command> [pass-through args...]",
		Flags: append(NewGlobalFlags(),
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "terraflow version info",
				HideDefault: true,
			},
		),
		Metadata: map[string]any{"meta": m},
		Action:   runAction,
	}

	// Make sure flags are sorted for the --help text.
	sort.Slice(app.Flags, func(i, j int) bool {
		return app.Flags[i].Names()[0] < app.Flags[j].Names()[0]
	})

	return app, nil
}

// runAction resolves configuration, builds the execution context, and hands
// off to the orchestrator.
func runAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)

	rest := cmd.Args().Slice()
	if len(rest) == 0 {
		return fmt.Errorf("no provisioner command given (try: terraflow plan)")
	}
	command, passthrough := rest[0], rest[1:]

	environ := config.EnvironMap(os.Environ())
	cfg := config.Resolve(cliOptions(cmd), environ, m.StartingDir)
	log.Debugf("resolved config: backend=%s provisioner=%s", cfg.BackendType(), cfg.Provisioner)

	rc, err := runctx.Build(ctx, cfg, m.StartingDir)
	if err != nil {
		return fmt.Errorf("cannot resolve working directory %q: %w", cfg.WorkingDir, err)
	}

	orch := orchestrator.New(command, passthrough, cfg, rc, envoverlay.New(os.Environ()))
	orch.DryRun = cmd.Bool("dry-run")
	orch.SkipCommitCheck = cmd.Bool("skip-commit-check")

	return orch.Run(ctx)
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}
