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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rancher-sandbox/sbodeps/internal/pkg"
	"github.com/rancher-sandbox/sbodeps/pkg/search"
)

func TestList(t *testing.T) {
	cfg, _ := actionConfigFixture(t)
	var names []string
	for _, p := range NewList(cfg).Run() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"openssl-1.1", "openssl-3.0", "photo-editor", "video-encoder", "wget"}, names)

	cfg, _ = actionConfigFixture(t, pkg.NewPkgMock("only"))
	assert.Len(t, NewList(cfg).Run(), 1)
}

func resultNames(res []*search.Result) []string {
	out := make([]string, 0, len(res))
	for _, r := range res {
		out = append(out, r.Name)
	}
	return out
}

func TestSearch(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		regexp   bool
		version  string
		expected []string
		wantErr  bool
	}{
		{name: "everything", query: "", expected: []string{"openssl-1.1", "openssl-3.0", "photo-editor", "video-encoder", "wget"}},
		{name: "literal", query: "openssl", expected: []string{"openssl-1.1", "openssl-3.0"}},
		{name: "regexp", query: "-(editor|encoder)$", regexp: true, expected: []string{"photo-editor", "video-encoder"}},
		{name: "constraint skips non semver versions", query: "openssl", version: ">= 1.0", expected: []string{"openssl-3.0"}},
		{name: "constraint", query: "", version: "^4", expected: []string{"video-encoder"}},
		{name: "no match", query: "syzygy", expected: []string{}},
		{name: "invalid regexp", query: "open[", regexp: true, wantErr: true},
		{name: "invalid constraint", query: "wget", version: "not a constraint", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _ := actionConfigFixture(t)
			client := NewSearch(cfg)
			client.Regexp = tt.regexp
			client.Version = tt.version

			res, err := client.Run(tt.query)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, resultNames(res))
		})
	}
}
