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
	"strings"

	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/sbodeps/pkg/action"
	"github.com/rancher-sandbox/sbodeps/pkg/cli/output"
)

const resolveDesc = `
Resolve prints the installation order of the given packages plus everything
they require: every package comes after its requirements.

Two strategies are available:

- topsort (1): a topological sort. It is fast, but doesn't know that
  alternative builds of a component can't be installed together.
- sat (2): a SAT solver. It reports which requested packages pull
  conflicting alternative builds.
`

func newResolveCmd(cfg *lazyConfig, out io.Writer) *cobra.Command {
	var outfmt output.Format
	var strategy action.Strategy

	cmd := &cobra.Command{
		Use:   "resolve [PACKAGE...]",
		Short: "print the installation order of packages",
		Long:  resolveDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actionConfig, err := cfg.get()
			if err != nil {
				return err
			}
			order, err := action.NewResolve(actionConfig).Run(cmd.Context(), strategy, args)
			if err != nil {
				return err
			}
			return outfmt.Write(out, &orderWriter{order})
		},
	}

	bindStrategyFlag(cmd, &strategy)
	bindOutputFlag(cmd, &outfmt)

	return cmd
}

type orderWriter struct {
	order []string
}

func (w *orderWriter) WriteTable(out io.Writer) error {
	return output.EncodeLines(out, []string{strings.Join(w.order, " -> ")})
}

func (w *orderWriter) WriteJSON(out io.Writer) error {
	return output.EncodeJSON(out, w.order)
}

func (w *orderWriter) WriteYAML(out io.Writer) error {
	return output.EncodeYAML(out, w.order)
}
