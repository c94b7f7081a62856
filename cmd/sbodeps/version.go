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
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/log-go"
	logio "github.com/Masterminds/log-go/io"
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/sbodeps/internal/version"
	"github.com/rancher-sandbox/sbodeps/pkg/cli/output"
)

const versionDesc = `
Show the sbodeps version and how the binary was built.

    $ sbodeps version
    sbodeps v0.1 (commit 3f2a9c1, clean tree, go1.16.3)

    $ sbodeps version --short
    v0.1+g3f2a9c1

The same information is available as JSON or YAML with --output, where
unknown fields are left out.

The tree is "dirty" when the binary was built from locally modified code.

--template takes a Go template over .Version, .GitCommit, .GitTreeState and
.GoVersion.
`

type versionOptions struct {
	short        bool
	template     string
	outputFormat output.Format
}

func newVersionCmd(logger log.Logger) *cobra.Command {
	o := &versionOptions{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "print the client version information",
		Long:  versionDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wInfo := logio.NewWriter(logger, log.InfoLevel)
			return o.run(wInfo)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&o.short, "short", false, "print the version number only")
	f.StringVar(&o.template, "template", "", "template for version string format")
	bindOutputFlag(cmd, &o.outputFormat)

	return cmd
}

func (o *versionOptions) run(wr io.Writer) error {
	switch {
	case o.template != "":
		tt, err := template.New("version").Parse(o.template)
		if err != nil {
			return err
		}
		buf := &bytes.Buffer{}
		if err := tt.Execute(buf, version.Get()); err != nil {
			return err
		}
		_, err = io.Copy(wr, buf)
		return err
	case o.short:
		_, err := fmt.Fprintln(wr, shortVersion(version.Get()))
		return err
	}
	return o.outputFormat.Write(wr, &versionWriter{info: version.Get()})
}

func shortVersion(v version.BuildInfo) string {
	if len(v.GitCommit) >= 7 {
		return fmt.Sprintf("%s+g%s", v.Version, v.GitCommit[:7])
	}
	return v.Version
}

// longVersion leaves out the build details that are unknown.
func longVersion(v version.BuildInfo) string {
	var details []string
	if len(v.GitCommit) >= 7 {
		details = append(details, "commit "+v.GitCommit[:7])
	}
	if v.GitTreeState != "" {
		details = append(details, v.GitTreeState+" tree")
	}
	if v.GoVersion != "" {
		details = append(details, v.GoVersion)
	}
	if len(details) == 0 {
		return "sbodeps " + v.Version
	}
	return fmt.Sprintf("sbodeps %s (%s)", v.Version, strings.Join(details, ", "))
}

type versionWriter struct {
	info version.BuildInfo
}

func (w *versionWriter) WriteTable(out io.Writer) error {
	_, err := fmt.Fprintln(out, longVersion(w.info))
	return err
}

func (w *versionWriter) WriteJSON(out io.Writer) error {
	return output.EncodeJSON(out, w.info)
}

func (w *versionWriter) WriteYAML(out io.Writer) error {
	return output.EncodeYAML(out, w.info)
}
