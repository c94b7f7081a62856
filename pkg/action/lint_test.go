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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rancher-sandbox/sbodeps/internal/pkg"
)

const (
	goodLintDir = "../lint/rules/testdata/goodpkg"
	badLintDir  = "../lint/rules/testdata/badpkg"
)

func TestLint(t *testing.T) {
	for _, tcase := range []struct {
		name     string
		paths    []string
		strict   bool
		offline  bool
		source   mapSource
		messages int
		errors   int
	}{
		{
			name:     "requirement missing everywhere",
			paths:    []string{goodLintDir},
			messages: 1,
		},
		{
			name:     "requirement missing everywhere, strict",
			paths:    []string{goodLintDir},
			strict:   true,
			messages: 1,
			errors:   1,
		},
		{
			name:   "requirement found in a source",
			paths:  []string{goodLintDir},
			source: mapSource{"libfoo": pkg.NewPkgMock("libfoo")},
			strict: true,
		},
		{
			name:    "offline",
			paths:   []string{goodLintDir},
			offline: true,
			strict:  true,
		},
		{
			name:     "bad package",
			paths:    []string{badLintDir, goodLintDir},
			offline:  true,
			messages: 6,
			errors:   2,
		},
		{
			name:   "not a directory",
			paths:  []string{"testdata/packages.json", "testdata/nope"},
			errors: 2,
		},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			cfg, _ := actionConfigFixture(t)
			if tcase.source != nil {
				cfg.Source = tcase.source
			}
			client := NewLint(cfg)
			client.Strict = tcase.strict
			client.Offline = tcase.offline

			result := client.Run(context.Background(), tcase.paths)
			assert.Len(t, result.Messages, tcase.messages, "%v", result.Messages)
			assert.Len(t, result.Errors, tcase.errors, "%v", result.Errors)
		})
	}
}

func TestLintCountsLinted(t *testing.T) {
	cfg, _ := actionConfigFixture(t)
	result := NewLint(cfg).Run(context.Background(), []string{goodLintDir, "testdata/nope", badLintDir})
	assert.Equal(t, 2, result.TotalLinted)
}
