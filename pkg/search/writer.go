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


package search

import (
	"io"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/sbodeps/pkg/cli/output"
)

// pkgElement is used to store the final package values that will get printed
type pkgElement struct {
	Name        string   `json:"name" yaml:"name"`
	Version     string   `json:"version" yaml:"version"`
	Requires    []string `json:"requires" yaml:"requires"`
	BasePackage string   `json:"base_package,omitempty" yaml:"base_package,omitempty"`
}

// NewWriter returns an output.Writer printing results, with table columns
// truncated to columnWidth (0 means no limit).
func NewWriter(results []*Result, columnWidth uint) output.Writer {
	return &searchWriter{results, columnWidth}
}

// searchWriter is used to store and print the search results
type searchWriter struct {
	results     []*Result
	columnWidth uint
}

// WriteTable writes the results as a table
func (r *searchWriter) WriteTable(out io.Writer) error {
	if len(r.results) == 0 {
		_, err := out.Write([]byte("No results found\n"))
		if err != nil {
			return errors.Errorf("unable to write results: %s", err)
		}
		return nil
	}
	table := uitable.New()
	table.MaxColWidth = r.columnWidth
	table.AddRow("NAME", "VERSION", "REQUIRES")
	for _, r := range r.results {
		table.AddRow(r.Name, r.Pkg.Version, strings.Join(r.Pkg.Requires, " "))
	}
	return output.EncodeTable(out, table)
}

// WriteJSON prints the results as a json
func (r *searchWriter) WriteJSON(out io.Writer) error {
	return r.encodeByFormat(out, output.JSON)
}

// WriteYAML prints the results as a yaml
func (r *searchWriter) WriteYAML(out io.Writer) error {
	return r.encodeByFormat(out, output.YAML)
}

// encodeByFormat creates the final package list that will get formatted into
// the final results
func (r *searchWriter) encodeByFormat(out io.Writer, format output.Format) error {
	// Initialize the array so no results returns an empty array instead of null
	pkgList := make([]pkgElement, 0, len(r.results))

	for _, r := range r.results {
		requires := r.Pkg.Requires
		if requires == nil {
			requires = []string{}
		}
		pkgList = append(pkgList, pkgElement{r.Name, r.Pkg.Version, requires, r.Pkg.BasePackage})
	}

	switch format {
	case output.JSON:
		return output.EncodeJSON(out, pkgList)
	case output.YAML:
		return output.EncodeYAML(out, pkgList)
	}

	// Because this is a non-exported function and only called internally by
	// WriteJSON and WriteYAML, we shouldn't get invalid types
	return nil
}
