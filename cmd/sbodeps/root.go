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
	"os"

	"github.com/Masterminds/log-go"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rancher-sandbox/sbodeps/internal/discovery"
	"github.com/rancher-sandbox/sbodeps/internal/solver"
	"github.com/rancher-sandbox/sbodeps/pkg/action"
	"github.com/rancher-sandbox/sbodeps/pkg/installed"
	"github.com/rancher-sandbox/sbodeps/pkg/sbo"
	"github.com/rancher-sandbox/sbodeps/pkg/sbopath"
)

var globalUsage = `Usage: sbodeps command

Resolve the dependencies of SlackBuilds packages.

sbodeps keeps a database of the packages of a SlackBuilds tree, and uses it to
compute in which order packages and their requirements must be installed.
Packages missing from the database are looked up in the local tree, then in
the remote SLACKBUILDS.TXT index.

Alternative builds of the same component (e.g: openssl-1.1 and openssl-3.0)
can't be installed together: the sat strategy explains which requested
packages pull conflicting alternatives.

Environment:

| Name                  | Description                                          |
|-----------------------|------------------------------------------------------|
| $SBODEPS_CONFIG       | path of the YAML configuration file                  |
| $SBODEPS_DATABASE     | path of the package database                         |
| $SBODEPS_TREE         | path of the local SlackBuilds tree                   |
| $SBODEPS_TREE_REPO    | git repository the tree is synced from               |
| $SBODEPS_INDEX_URL    | URL of the SLACKBUILDS.TXT index, empty to disable   |
| $SBODEPS_INSTALLED_DIR| directory recording installed packages               |
| $SBODEPS_STRATEGY     | default resolution strategy (topsort, sat)           |
| $SBODEPS_SAT_BACKEND  | SAT solver used by the sat strategy (gophersat, gini)|
| $SBODEPS_SEMVER       | compare versions as semantic versions                |
| $SBODEPS_DEBUG        | enable verbose output                                |
| $SBODEPS_NOCOLORS     | disable colorized output                             |
| $SBODEPS_NOEMOJIS     | disable emojis in output                             |
`

func newRootCmd(out io.Writer, args []string) (*cobra.Command, log.Logger, error) {
	cmd := &cobra.Command{
		Use:           "sbodeps",
		Short:         "Resolve the dependencies of SlackBuilds packages",
		Long:          globalUsage,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)

	flags := cmd.PersistentFlags()
	settings.AddFlags(flags)

	flags.ParseErrorsWhitelist.UnknownFlags = true
	err := flags.Parse(args)
	if err != nil && !errors.Is(err, pflag.ErrHelp) {
		return nil, nil, errors.Wrapf(err, "failed while parsing flags for %s", args)
	}

	logger := newLogger(out)
	log.Current = logger

	// disable colorized output unless printing to a terminal
	f, isFile := out.(*os.File)
	color.NoColor = !isFile || settings.ColorsDisabled(f)

	cfg := &lazyConfig{logger: logger}
	cmd.AddCommand(
		newListCmd(cfg, out),
		newSearchCmd(cfg, out),
		newExplainCmd(cfg, out),
		newResolveCmd(cfg, out),
		newPlanCmd(cfg, out),
		newLintCmd(cfg, out),
		newDBCmd(logger),
		newEnvCmd(out),
		newVersionCmd(logger),
	)

	return cmd, logger, nil
}

// lazyConfig builds the action configuration the first time a command needs
// it, once flags have been parsed.
type lazyConfig struct {
	logger log.Logger
	cfg    *action.Configuration
}

func (l *lazyConfig) get() (*action.Configuration, error) {
	if l.cfg != nil {
		return l.cfg, nil
	}

	db, err := action.LoadDatabase(settings.Database, l.logger)
	if err != nil {
		return nil, err
	}
	backend, err := solver.NewBackend(settings.SATBackend)
	if err != nil {
		return nil, err
	}

	l.cfg = &action.Configuration{
		DB:        db,
		Source:    newSource(l.logger),
		Installed: installed.NewLogDirReader(settings.InstalledDir, l.logger),
		Backend:   backend,
		Log:       l.logger,
	}
	return l.cfg, nil
}

// newSource looks up missing packages in the local tree, then in the remote
// index.
func newSource(logger log.Logger) discovery.Source {
	var sources discovery.MultiSource
	if fi, err := os.Stat(settings.Tree); err == nil && fi.IsDir() {
		sources = append(sources, sbo.NewTree(settings.Tree, logger))
	} else {
		logger.Debugf("no SlackBuilds tree at %s, run 'sbodeps db sync' to get one", settings.Tree)
	}
	if settings.IndexURL != "" {
		sources = append(sources, sbo.NewRemoteIndex(settings.IndexURL, sbopath.CacheIndexFile(), logger))
	}
	if len(sources) == 0 {
		return nil
	}
	return sources
}
