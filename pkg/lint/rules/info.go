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


/*
Package rules contains the rules sbodeps runs against a SlackBuild directory
when sbodeps lint is run. A SlackBuild directory is named after its package
and holds <name>.info.
*/
package rules

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/sbodeps/pkg/lint/support"
	"github.com/rancher-sandbox/sbodeps/pkg/sbo"
)

// Infofile runs the set of rules on the .info file of linter.Dir. known
// reports whether a package name can be resolved; with a nil known the
// requirements are not looked up.
func Infofile(linter *support.Linter, known func(string) bool) {
	name := filepath.Base(linter.Dir)
	infoFileName := name + ".info"
	infoPath := filepath.Join(linter.Dir, infoFileName)

	info, err := loadInfo(infoPath)
	// Guard: the remaining rules need a parsed file
	if !linter.RunLinterRule(support.ErrorSev, infoFileName, err) {
		return
	}

	linter.RunLinterRule(support.ErrorSev, infoFileName, validateInfoName(info, name))
	linter.RunLinterRule(support.ErrorSev, infoFileName, validateSelfRequire(info))
	linter.RunLinterRule(support.WarningSev, infoFileName, validateInfoVersion(info))
	if info.Version != "" {
		linter.RunLinterRule(support.InfoSev, infoFileName, validateInfoVersionSemver(info))
	}
	linter.RunLinterRule(support.WarningSev, infoFileName, validateDuplicateRequires(info))
	linter.RunLinterRule(support.InfoSev, infoFileName, validateInfoHomepage(info))
	linter.RunLinterRule(support.InfoSev, infoFileName, validateInfoMaintainer(info))
	if known != nil {
		linter.RunLinterRule(support.WarningSev, infoFileName, validateRequiresKnown(info, known))
	}
}

func loadInfo(path string) (*sbo.Info, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.New("file does not exist")
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := sbo.ParseInfo(f)
	if err != nil {
		return nil, errors.Wrap(err, "unable to parse .info file")
	}
	return info, nil
}

func validateInfoName(info *sbo.Info, dirName string) error {
	if info.Name == "" {
		return errors.New("PRGNAM is required")
	}
	if info.Name != dirName {
		return errors.Errorf("PRGNAM %q does not match the directory name %q", info.Name, dirName)
	}
	return nil
}

func validateSelfRequire(info *sbo.Info) error {
	for _, r := range info.Requires {
		if r == info.Name {
			return errors.Errorf("package %q requires itself", info.Name)
		}
	}
	return nil
}

func validateInfoVersion(info *sbo.Info) error {
	if info.Version == "" {
		return errors.Errorf("VERSION is recommended, the package will show as %s", sbo.UnknownVersion)
	}
	return nil
}

func validateInfoVersionSemver(info *sbo.Info) error {
	if _, err := semver.NewVersion(info.Version); err != nil {
		return errors.Errorf("VERSION %q is not a semantic version, version constraints will skip it", info.Version)
	}
	return nil
}

func validateDuplicateRequires(info *sbo.Info) error {
	seen := make(map[string]bool, len(info.Requires))
	for _, r := range info.Requires {
		if seen[r] {
			return errors.Errorf("requirement %q is listed more than once", r)
		}
		seen[r] = true
	}
	return nil
}

func validateInfoHomepage(info *sbo.Info) error {
	if info.Homepage == "" {
		return errors.New("HOMEPAGE is recommended")
	}
	return nil
}

func validateInfoMaintainer(info *sbo.Info) error {
	if info.Maintainer == "" {
		return errors.New("MAINTAINER is recommended")
	}
	return nil
}

func validateRequiresKnown(info *sbo.Info, known func(string) bool) error {
	var unknown []string
	seen := make(map[string]bool, len(info.Requires))
	for _, r := range info.Requires {
		if seen[r] || r == info.Name {
			continue
		}
		seen[r] = true
		if !known(r) {
			unknown = append(unknown, r)
		}
	}
	if len(unknown) > 0 {
		return errors.Errorf("unknown requirements: %s", strings.Join(unknown, ", "))
	}
	return nil
}
