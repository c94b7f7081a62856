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

/*Package sbo reads SlackBuilds package definitions.

A SlackBuilds tree holds one directory per package, grouped by category:
<root>/<category>/<name>/<name>.info. The .info file is a list of shell
variable assignments:

	PRGNAM="wget"
	VERSION="1.21.4"
	DOWNLOAD="https://ftp.gnu.org/gnu/wget/wget-1.21.4.tar.gz"
	REQUIRES="openssl-3.0 %README%"

Tokens of REQUIRES starting with '%' are notes for the user, not packages.
*/
package sbo

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/rancher-sandbox/sbodeps/internal/pkg"
)

// UnknownVersion is the version of packages whose definition has none.
const UnknownVersion = "N/A"

var (
	assignment = regexp.MustCompile(`^\s*([A-Z_]+)\s*=\s*"(.*)"\s*$`)
	// an assignment continued on the following lines with a backslash
	openAssignment = regexp.MustCompile(`^\s*([A-Z_]+)\s*=\s*"([^"]*)\\$`)
)

// Info is the content of a .info file.
type Info struct {
	Name       string
	Version    string
	Homepage   string
	Maintainer string
	Requires   []string
}

// ParseInfo reads a .info file. Unknown keys, comments and lines that are not
// assignments are ignored.
func ParseInfo(in io.Reader) (*Info, error) {
	vars := make(map[string]string)

	scanner := bufio.NewScanner(in)
	var key string
	var value []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if key != "" {
			// inside a multi-line value
			if strings.HasSuffix(line, `"`) {
				value = append(value, strings.TrimSuffix(line, `"`))
				vars[key] = strings.Join(strings.Fields(strings.Join(value, " ")), " ")
				key, value = "", nil
				continue
			}
			value = append(value, strings.TrimSuffix(line, `\`))
			continue
		}

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if m := assignment.FindStringSubmatch(line); m != nil {
			vars[m[1]] = m[2]
			continue
		}
		if m := openAssignment.FindStringSubmatch(line); m != nil {
			key, value = m[1], []string{m[2]}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "couldn't read .info file")
	}
	if key != "" {
		return nil, errors.Errorf("unterminated value for %s", key)
	}

	info := &Info{
		Name:       vars["PRGNAM"],
		Version:    vars["VERSION"],
		Homepage:   vars["HOMEPAGE"],
		Maintainer: vars["MAINTAINER"],
		Requires:   cleanRequires(vars["REQUIRES"]),
	}
	return info, nil
}

// Pkg returns the package the .info file defines.
func (i *Info) Pkg() (*pkg.Pkg, error) {
	version := i.Version
	if version == "" {
		version = UnknownVersion
	}
	p := pkg.NewPkg(i.Name, version, i.Requires, "")
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// cleanRequires splits a REQUIRES value into package names, dropping the
// tokens starting with '%'.
func cleanRequires(s string) []string {
	requires := []string{}
	for _, tok := range strings.Fields(s) {
		if strings.HasPrefix(tok, "%") {
			continue
		}
		requires = append(requires, tok)
	}
	return requires
}
