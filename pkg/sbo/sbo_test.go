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

package sbo

import (
	"bytes"
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Masterminds/log-go"
	logcli "github.com/Masterminds/log-go/impl/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rancher-sandbox/sbodeps/internal/pkg"
)

const testTree = "testdata/tree"

func testLogger() (log.Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	logger := logcli.NewStandard()
	logger.InfoOut = buf
	logger.WarnOut = buf
	logger.ErrorOut = buf
	logger.DebugOut = buf
	logger.Level = log.DebugLevel
	return logger, buf
}

func TestParseInfo(t *testing.T) {
	f, err := os.Open(filepath.Join(testTree, "network", "wget", "wget.info"))
	require.NoError(t, err)
	defer f.Close()

	info, err := ParseInfo(f)
	require.NoError(t, err)
	assert.Equal(t, &Info{
		Name:       "wget",
		Version:    "1.21.4",
		Homepage:   "https://www.gnu.org/software/wget/",
		Maintainer: "Jane Doe",
		Requires:   []string{"openssl-3.0"},
	}, info)
}

func TestParseInfoEdgeCases(t *testing.T) {
	for _, tt := range []struct {
		name     string
		input    string
		expected *pkg.Pkg
		err      string
	}{
		{
			name:     "missing version",
			input:    "PRGNAM=\"foo\"\nREQUIRES=\"bar\"\n",
			expected: pkg.NewPkg("foo", UnknownVersion, []string{"bar"}, ""),
		},
		{
			name:     "notes and extra spaces in requires",
			input:    "PRGNAM=\"foo\"\nVERSION=\"2\"\nREQUIRES=\"  bar %README%   baz bar \"\n",
			expected: pkg.NewPkg("foo", "2", []string{"bar", "baz"}, ""),
		},
		{
			name:     "comments and garbage are ignored",
			input:    "# PRGNAM=\"commented\"\nnot an assignment\n  PRGNAM = \"foo\"  \nVERSION=\"1\"\n",
			expected: pkg.NewPkg("foo", "1", nil, ""),
		},
		{
			name:  "no name",
			input: "VERSION=\"1\"\n",
			err:   "package has no name",
		},
		{
			name:  "unterminated value",
			input: "PRGNAM=\"foo\"\nDOWNLOAD=\"a \\\n b \\\n",
			err:   "unterminated value for DOWNLOAD",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ParseInfo(strings.NewReader(tt.input))
			var p *pkg.Pkg
			if err == nil {
				p, err = info.Pkg()
			}
			if tt.err != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestTreeFindDefinition(t *testing.T) {
	logger, _ := testLogger()
	tree := NewTree(testTree, logger)
	ctx := context.Background()

	p, err := tree.FindDefinition(ctx, "wget")
	require.NoError(t, err)
	assert.Equal(t, pkg.NewPkg("wget", "1.21.4", []string{"openssl-3.0"}, ""), p)

	p, err = tree.FindDefinition(ctx, "photo-editor")
	require.NoError(t, err)
	assert.Equal(t, UnknownVersion, p.Version)

	for _, name := range []string{"nope", "ghost", "../network/wget"} {
		p, err = tree.FindDefinition(ctx, name)
		require.NoError(t, err, name)
		assert.Nil(t, p, name)
	}

	_, err = tree.FindDefinition(ctx, "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated value for REQUIRES")

	_, err = NewTree(filepath.Join(t.TempDir(), "nope"), logger).FindDefinition(ctx, "wget")
	assert.Error(t, err)
}

func TestTreeScan(t *testing.T) {
	logger, buf := testLogger()

	pkgs, err := NewTree(testTree, logger).Scan(context.Background())
	require.NoError(t, err)

	var names []string
	for _, p := range pkgs {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"openssl-1.1", "openssl-3.0", "photo-editor", "wget"}, names)
	assert.Contains(t, buf.String(), "broken.info")
	assert.Contains(t, buf.String(), "noname.info")

	_, err = NewTree(filepath.Join(t.TempDir(), "nope"), logger).Scan(context.Background())
	assert.Error(t, err)
}

func TestParseIndex(t *testing.T) {
	f, err := os.Open("testdata/SLACKBUILDS.TXT")
	require.NoError(t, err)
	defer f.Close()

	pkgs, err := ParseIndex(f)
	require.NoError(t, err)
	assert.Equal(t, []*pkg.Pkg{
		pkg.NewPkg("wget", "1.21.4", []string{"openssl-3.0"}, ""),
		pkg.NewPkg("openssl-3.0", "3.0.13", nil, ""),
		pkg.NewPkg("video-encoder", "4.1", []string{"openssl-3.0", "x264"}, ""),
	}, pkgs)
}

func TestParseIndexSelfRequirement(t *testing.T) {
	pkgs, err := ParseIndex(strings.NewReader("SLACKBUILD NAME: loop\nSLACKBUILD REQUIRES: loop\n"))
	require.NoError(t, err)
	assert.Equal(t, []*pkg.Pkg{pkg.NewPkg("loop", UnknownVersion, []string{"loop"}, "")}, pkgs)
}

func TestRemoteIndex(t *testing.T) {
	index, err := ioutil.ReadFile("testdata/SLACKBUILDS.TXT")
	require.NoError(t, err)

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write(index)
	}))
	defer srv.Close()

	logger, _ := testLogger()
	cache := filepath.Join(t.TempDir(), "cache", "SLACKBUILDS.TXT")
	remote := NewRemoteIndex(srv.URL+"/SLACKBUILDS.TXT", cache, logger)
	ctx := context.Background()

	p, err := remote.FindDefinition(ctx, "video-encoder")
	require.NoError(t, err)
	assert.Equal(t, []string{"openssl-3.0", "x264"}, p.Requires)

	p, err = remote.FindDefinition(ctx, "x264")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Equal(t, 1, hits)

	cached, err := ioutil.ReadFile(cache)
	require.NoError(t, err)
	assert.Equal(t, index, cached)

	// with the server gone, the cached copy is used
	srv.Close()
	offline := NewRemoteIndex(srv.URL+"/SLACKBUILDS.TXT", cache, logger)
	p, err = offline.FindDefinition(ctx, "wget")
	require.NoError(t, err)
	assert.Equal(t, "1.21.4", p.Version)
}

func TestRemoteIndexUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	logger, _ := testLogger()
	remote := NewRemoteIndex(srv.URL, "", logger)
	_, err := remote.FindDefinition(context.Background(), "wget")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "couldn't fetch index")

	// the failure sticks for the process
	_, err2 := remote.FindDefinition(context.Background(), "wget")
	assert.Equal(t, err, err2)
}

func TestSyncRefusesForeignDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "README"), nil, 0644))

	logger, _ := testLogger()
	_, err := Sync(context.Background(), "https://git.example.com/slackbuilds.git", dir, logger)
	require.Error(t, err)
}
