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

	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/sbodeps/pkg/action"
)

const explainDesc = `
Explain shows the requirements of a package as a tree, discovering the
packages missing from the database first.

    $ sbodeps explain wget
    └── wget
        └── openssl-3.0

A requirement already shown on the path from the package is not expanded
again.
`

func newExplainCmd(cfg *lazyConfig, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain [PACKAGE]",
		Short: "show the dependency tree of a package",
		Long:  explainDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actionConfig, err := cfg.get()
			if err != nil {
				return err
			}
			tree, err := action.NewExplain(actionConfig).Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, tree)
			return err
		},
	}

	return cmd
}
