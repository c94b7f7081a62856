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
	"github.com/rancher-sandbox/sbodeps/pkg/search"
)

const searchDesc = `
Search reads through the package database, and looks for packages whose name
matches the keyword. Without keyword, every package is listed.

Best matches come first: packages whose name starts with the keyword before
packages containing it.

Examples:

    # Search for packages matching the keyword "openssl"
    $ sbodeps search openssl

    # Search for packages whose name is "python3-" followed by anything
    $ sbodeps search '^python3-' --regexp

    # Search for openssl packages with a major version of 3
    $ sbodeps search openssl --version ^3.0.0

Packages whose version is not a semantic version never satisfy --version.
`

func newSearchCmd(cfg *lazyConfig, out io.Writer) *cobra.Command {
	var outfmt output.Format
	var maxColWidth uint
	var regexp bool
	var version string

	cmd := &cobra.Command{
		Use:   "search [keyword]",
		Short: "search for a keyword in the package database",
		Long:  searchDesc,
		RunE: func(cmd *cobra.Command, args []string) error {
			actionConfig, err := cfg.get()
			if err != nil {
				return err
			}
			client := action.NewSearch(actionConfig)
			client.Regexp = regexp
			client.Version = version

			res, err := client.Run(strings.Join(args, " "))
			if err != nil {
				return err
			}
			return outfmt.Write(out, search.NewWriter(res, maxColWidth))
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&regexp, "regexp", "r", false, "use regular expressions for searching")
	f.StringVar(&version, "version", "", "search using semantic versioning constraints")
	f.UintVar(&maxColWidth, "max-col-width", 50, "maximum column width for output table")
	bindOutputFlag(cmd, &outfmt)

	return cmd
}
