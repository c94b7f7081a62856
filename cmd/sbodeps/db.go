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
	"github.com/Masterminds/log-go"
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/sbodeps/pkg/action"
	"github.com/rancher-sandbox/sbodeps/pkg/eyecandy"
	"github.com/rancher-sandbox/sbodeps/pkg/sbo"
)

const dbHelp = `
This command consists of multiple subcommands to manage the package database
and the SlackBuilds tree it is built from.
`

const dbBuildHelp = `
Scan the local SlackBuilds tree (--tree) for .info files, and write the
package database (--database) from them.

The base packages of alternative builds can't be found in .info files: the
ones recorded in the previous database are kept.
`

const dbSyncHelp = `
Clone the SlackBuilds git repository into the local tree (--tree), or update
it when it is already there.
`

func newDBCmd(logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "build the package database, sync the SlackBuilds tree",
		Long:  dbHelp,
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(
		newDBBuildCmd(logger),
		newDBSyncCmd(logger),
	)
	return cmd
}

func newDBBuildCmd(logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "build the package database from the SlackBuilds tree",
		Long:  dbBuildHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Info(eyecandy.ESPrintf(settings.NoEmojis, ":mag: Scanning SlackBuilds tree at %s", settings.Tree))
			tree := sbo.NewTree(settings.Tree, logger)
			f, err := action.NewBuildDatabase(tree, logger).Run(cmd.Context(), settings.Database)
			if err != nil {
				return err
			}
			logger.Info(eyecandy.ESPrintf(settings.NoEmojis, ":package: Wrote %d packages to %s", len(f.Packages), settings.Database))
			logger.Info(eyecandy.ESPrint(settings.NoEmojis, "Done! :clapping_hands:"))
			return nil
		},
	}
	return cmd
}

func newDBSyncCmd(logger log.Logger) *cobra.Command {
	var remote string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "clone or update the SlackBuilds tree",
		Long:  dbSyncHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Info(eyecandy.ESPrintf(settings.NoEmojis, ":arrows_counterclockwise: Syncing %s from %s", settings.Tree, remote))
			rev, err := action.NewSyncTree(remote, logger).Run(cmd.Context(), settings.Tree)
			if err != nil {
				return err
			}
			logger.Info(eyecandy.ESPrintf(settings.NoEmojis, "SlackBuilds tree at revision %s :clapping_hands:", rev))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&remote, "repo", settings.TreeRepo, "git repository of the SlackBuilds tree")

	return cmd
}
