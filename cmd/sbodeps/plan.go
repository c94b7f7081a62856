/*
Copyright SUSE LLC.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/


package main

import (
	"io"

	"github.com/Masterminds/log-go"
	"github.com/docker/go-units"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/sbodeps/pkg/action"
	"github.com/rancher-sandbox/sbodeps/pkg/cli/output"
	"github.com/rancher-sandbox/sbodeps/pkg/eyecandy"
)

const planDesc = `
Plan resolves the given packages like 'sbodeps resolve', and compares the
result with the packages installed on this host. Each package is either to
install, to upgrade when the database has a newer version than the installed
one, or already installed.

Versions are compared as plain strings, unless --semver is set: then they are
compared as semantic versions when both parse as such.
`

func newPlanCmd(cfg *lazyConfig, out io.Writer) *cobra.Command {
	var outfmt output.Format
	var strategy action.Strategy

	cmd := &cobra.Command{
		Use:   "plan [PACKAGE...]",
		Short: "plan the installation of packages",
		Long:  planDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actionConfig, err := cfg.get()
			if err != nil {
				return err
			}
			client := action.NewPlan(actionConfig)
			if settings.Semver {
				client.Compare = action.Semver
			}

			plan, err := client.Run(cmd.Context(), strategy, args)
			if err != nil {
				return err
			}
			logDebugInstalledAge(cfg.logger, plan)

			if err := outfmt.Write(out, &planWriter{plan}); err != nil {
				return err
			}
			if outfmt == output.Table && plan.Empty() {
				cfg.logger.Info(eyecandy.ESPrint(settings.NoEmojis, "Nothing to do :sparkles:"))
			}
			return nil
		},
	}

	bindStrategyFlag(cmd, &strategy)
	bindOutputFlag(cmd, &outfmt)

	return cmd
}

func logDebugInstalledAge(logger log.Logger, plan *action.InstallationPlan) {
	age := action.Timestamper().Sub(plan.InstalledAt)
	logger.Debugf("installed packages read %s ago", units.HumanDuration(age))
}

type planWriter struct {
	plan *action.InstallationPlan
}

func (w *planWriter) WriteTable(out io.Writer) error {
	table := uitable.New()
	table.AddRow("NAME", "VERSION", "INSTALLED", "ACTION")
	for _, item := range w.plan.ToInstall {
		table.AddRow(item.Name, item.Version, "-", eyecandy.Install("install"))
	}
	for _, item := range w.plan.ToUpgrade {
		table.AddRow(item.Name, item.Version, item.InstalledVersion, eyecandy.Upgrade("upgrade"))
	}
	for _, item := range w.plan.AlreadyInstalled {
		table.AddRow(item.Name, item.Version, item.InstalledVersion, eyecandy.Keep("installed"))
	}
	return output.EncodeTable(out, table)
}

func (w *planWriter) WriteJSON(out io.Writer) error {
	return output.EncodeJSON(out, w.plan)
}

func (w *planWriter) WriteYAML(out io.Writer) error {
	return output.EncodeYAML(out, w.plan)
}
