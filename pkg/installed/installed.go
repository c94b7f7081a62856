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

/*Package installed reads the packages installed on a Slackware host.

Slackware records every installed package as a file named
name-version-arch-build in its package log directory. Package names may
contain dashes, the three last fields never do.
*/
package installed

import (
	"context"
	"io/ioutil"
	"os"
	"strings"

	"github.com/Masterminds/log-go"
	"github.com/pkg/errors"
)

// Info describes one installed package.
type Info struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
	Arch    string `json:"arch" yaml:"arch"`
	Build   string `json:"build" yaml:"build"`
}

// Reader returns the installed packages, keyed by name.
type Reader interface {
	Installed(ctx context.Context) (map[string]Info, error)
}

// LogDirReader reads the installed packages from a package log directory,
// such as /var/log/packages.
type LogDirReader struct {
	Dir    string
	logger log.Logger
}

// NewLogDirReader returns a Reader over dir.
func NewLogDirReader(dir string, logger log.Logger) *LogDirReader {
	if logger == nil {
		logger = log.Current
	}
	return &LogDirReader{Dir: dir, logger: logger}
}

// Installed lists the package log directory. A missing directory means
// nothing is installed. Entries that don't look like a package are skipped.
func (r *LogDirReader) Installed(ctx context.Context) (map[string]Info, error) {
	installed := make(map[string]Info)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := ioutil.ReadDir(r.Dir)
	if os.IsNotExist(err) {
		r.logger.Debugf("%s does not exist, assuming no package is installed", r.Dir)
		return installed, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't read installed packages from %s", r.Dir)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := ParseFilename(e.Name())
		if err != nil {
			r.logger.Warnf("skipping %s: %s", e.Name(), err)
			continue
		}
		installed[info.Name] = info
	}
	return installed, nil
}

// ParseFilename splits a package log file name into its fields.
func ParseFilename(filename string) (Info, error) {
	parts := strings.Split(filename, "-")
	if len(parts) < 4 {
		return Info{}, errors.Errorf("%q is not a name-version-arch-build package name", filename)
	}
	n := len(parts)
	return Info{
		Name:    strings.Join(parts[:n-3], "-"),
		Version: parts[n-3],
		Arch:    parts[n-2],
		Build:   parts[n-1],
	}, nil
}
