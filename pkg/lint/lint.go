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


package lint

import (
	"path/filepath"

	"github.com/rancher-sandbox/sbodeps/pkg/lint/rules"
	"github.com/rancher-sandbox/sbodeps/pkg/lint/support"
)

// All runs all of the available linters on the given SlackBuild directory.
func All(basedir string, known func(string) bool) support.Linter {
	// Using abs path to get directory context
	dir, _ := filepath.Abs(basedir)

	linter := support.Linter{Dir: dir}
	rules.Infofile(&linter, known)
	return linter
}
