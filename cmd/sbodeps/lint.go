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
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/sbodeps/pkg/action"
)

var lintHelp = `
This command takes a path to a SlackBuild directory and runs a series of tests
to verify that its .info file is well-formed and that its requirements can be
resolved.

If the linter encounters things that will cause the package to fail resolving
or installing, it will emit [ERROR] messages. If it encounters issues that
break with convention or recommendation, it will emit [WARNING] messages.

Requirements are looked up in the package database, the SlackBuilds tree and
the remote index, unless --offline is set.
`

func newLintCmd(cfg *lazyConfig, out io.Writer) *cobra.Command {
	var strict, offline bool

	cmd := &cobra.Command{
		Use:   "lint PATH...",
		Short: "examine SlackBuild directories for possible issues",
		Long:  lintHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := []string{"."}
			if len(args) > 0 {
				paths = args
			}

			actionConfig := &action.Configuration{Log: cfg.logger}
			if !offline {
				var err error
				if actionConfig, err = cfg.get(); err != nil {
					return err
				}
			}
			client := action.NewLint(actionConfig)
			client.Strict = strict
			client.Offline = offline

			var message strings.Builder
			failed := 0
			for _, path := range paths {
				fmt.Fprintf(&message, "==> Linting %s\n", path)

				result := client.Run(cmd.Context(), []string{path})
				for _, msg := range result.Messages {
					fmt.Fprintf(&message, "%s\n", msg)
				}
				if len(result.Errors) != 0 {
					failed++
					if result.TotalLinted == 0 {
						for _, err := range result.Errors {
							fmt.Fprintf(&message, "Error %s\n", err)
						}
					}
				}
				message.WriteString("\n")
			}

			fmt.Fprint(out, message.String())

			summary := fmt.Sprintf("%d package(s) linted, %d package(s) failed", len(paths), failed)
			if failed > 0 {
				return errors.New(summary)
			}
			fmt.Fprintln(out, summary)
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&strict, "strict", false, "fail on lint warnings")
	f.BoolVar(&offline, "offline", false, "do not look up requirements")

	return cmd
}
