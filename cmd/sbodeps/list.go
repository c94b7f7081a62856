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

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/sbodeps/internal/pkg"
	"github.com/rancher-sandbox/sbodeps/pkg/action"
	"github.com/rancher-sandbox/sbodeps/pkg/cli/output"
)

var listHelp = `
List all of the packages of the database, sorted by name.

With --short, only the names are printed, four per line.
`

// shortColumns and shortWidth lay out the names of 'list --short'
const (
	shortColumns = 4
	shortWidth   = 18
)

func newListCmd(cfg *lazyConfig, out io.Writer) *cobra.Command {
	var outfmt output.Format
	var short bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "list the packages of the database",
		Long:    listHelp,
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			actionConfig, err := cfg.get()
			if err != nil {
				return err
			}
			results := action.NewList(actionConfig).Run()

			if short {
				names := make([]string, 0, len(results))
				for _, p := range results {
					names = append(names, p.Name)
				}
				switch outfmt {
				case output.JSON:
					return output.EncodeJSON(out, names)
				case output.YAML:
					return output.EncodeYAML(out, names)
				}
				return output.EncodeLines(out, columns(names, shortColumns, shortWidth))
			}

			return outfmt.Write(out, newPkgListWriter(results))
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&short, "short", "q", false, "output short (quiet) listing format")
	bindOutputFlag(cmd, &outfmt)

	return cmd
}

// columns lays out names in rows of n, each name padded to width.
func columns(names []string, n, width int) []string {
	var lines []string
	for i := 0; i < len(names); i += n {
		end := i + n
		if end > len(names) {
			end = len(names)
		}
		cells := make([]string, 0, n)
		for _, name := range names[i:end] {
			cells = append(cells, fmt.Sprintf("%-*s", width, name))
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, "    "), " "))
	}
	return lines
}

type pkgElement struct {
	Name        string   `json:"name" yaml:"name"`
	Version     string   `json:"version" yaml:"version"`
	Requires    []string `json:"requires" yaml:"requires"`
	BasePackage string   `json:"base_package,omitempty" yaml:"base_package,omitempty"`
}

type pkgListWriter struct {
	pkgs []pkgElement
}

func newPkgListWriter(pkgs []*pkg.Pkg) *pkgListWriter {
	// Initialize the array so no results returns an empty array instead of null
	elements := make([]pkgElement, 0, len(pkgs))
	for _, p := range pkgs {
		requires := p.Requires
		if requires == nil {
			requires = []string{}
		}
		elements = append(elements, pkgElement{
			Name:        p.Name,
			Version:     p.Version,
			Requires:    requires,
			BasePackage: p.BasePackage,
		})
	}
	return &pkgListWriter{elements}
}

func (w *pkgListWriter) WriteTable(out io.Writer) error {
	table := uitable.New()
	table.AddRow("NAME", "VERSION", "BASE PACKAGE", "REQUIRES")
	for _, p := range w.pkgs {
		table.AddRow(p.Name, p.Version, p.BasePackage, strings.Join(p.Requires, " "))
	}
	return output.EncodeTable(out, table)
}

func (w *pkgListWriter) WriteJSON(out io.Writer) error {
	return output.EncodeJSON(out, w.pkgs)
}

func (w *pkgListWriter) WriteYAML(out io.Writer) error {
	return output.EncodeYAML(out, w.pkgs)
}
