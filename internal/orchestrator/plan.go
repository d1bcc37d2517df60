// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/terraflow/terraflow/internal/config"
	"github.com/terraflow/terraflow/internal/plugin"
	"github.com/terraflow/terraflow/internal/validate"
)

var (
	planBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	planLabel = lipgloss.NewStyle().Bold(true).Width(13)
	planWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	planError = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// emitPlan renders the structured dry-run plan: everything the orchestrator
// would do, with sensitive init arguments masked, and the validation outcome.
func (o *Orchestrator) emitPlan(desc *config.Backend, initArgs []string, res *validate.Result) {
	var b strings.Builder

	row := func(label, value string) {
		b.WriteString(planLabel.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("workspace", o.Context.Workspace)
	row("working dir", o.Context.WorkingDir)
	row("backend", desc.Type)

	if desc.Type != "local" && len(initArgs) > 0 {
		masked := plugin.MaskInitArgs(initArgs)
		row("init", strings.Join(append([]string{o.Config.Provisioner, "init"}, masked...), " "))
	} else {
		row("init", o.Config.Provisioner+" init")
	}
	row("command", strings.Join(append([]string{o.Config.Provisioner, o.Command}, o.Args...), " "))

	for _, w := range res.Warnings {
		b.WriteString(planWarn.Render("warning: " + w))
		b.WriteString("\n")
	}
	for _, e := range res.Errors {
		b.WriteString(planError.Render("error: " + e))
		b.WriteString("\n")
	}

	fmt.Fprintln(os.Stdout, planBox.Render(strings.TrimRight(b.String(), "\n")))
}
