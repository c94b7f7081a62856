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


package action

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"github.com/rancher-sandbox/sbodeps/pkg/lint"
	"github.com/rancher-sandbox/sbodeps/pkg/lint/support"
)

// Lint checks SlackBuild directories.
type Lint struct {
	cfg *Configuration

	// Strict fails on warnings too
	Strict bool
	// Offline skips looking up requirements in the database and sources
	Offline bool
}

// LintResult is the result of Lint
type LintResult struct {
	TotalLinted int
	Messages    []support.Message
	Errors      []error
}

// NewLint creates a new Lint object with the given configuration.
func NewLint(cfg *Configuration) *Lint {
	return &Lint{cfg: cfg}
}

// Run lints every directory of paths.
func (l *Lint) Run(ctx context.Context, paths []string) *LintResult {
	lowestTolerance := support.ErrorSev
	if l.Strict {
		lowestTolerance = support.WarningSev
	}

	var known func(string) bool
	if !l.Offline {
		known = l.known(ctx)
	}

	result := &LintResult{}
	for _, path := range paths {
		if fi, err := os.Stat(path); err != nil || !fi.IsDir() {
			result.Errors = append(result.Errors, errors.Errorf("unable to lint %s: not a directory", path))
			continue
		}

		linter := lint.All(path, known)
		result.Messages = append(result.Messages, linter.Messages...)
		result.TotalLinted++
		for _, msg := range linter.Messages {
			if msg.Severity >= lowestTolerance {
				result.Errors = append(result.Errors, msg.Err)
			}
		}
	}
	return result
}

// known looks names up in the database first, then in the sources. Lookup
// failures count as unknown.
func (l *Lint) known(ctx context.Context) func(string) bool {
	return func(name string) bool {
		if l.cfg.DB != nil && l.cfg.DB.Has(name) {
			return true
		}
		if l.cfg.Source == nil {
			return false
		}
		p, err := l.cfg.Source.FindDefinition(ctx, name)
		if err != nil {
			l.cfg.logger().Debugf("couldn't look up %s: %s", name, err)
			return false
		}
		return p != nil
	}
}
