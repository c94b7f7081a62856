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

package solver

import (
	"bytes"
	"testing"

	"github.com/Masterminds/log-go"
	logcli "github.com/Masterminds/log-go/impl/cli"
	"github.com/stretchr/testify/require"

	"github.com/rancher-sandbox/sbodeps/internal/pkg"
)

// testLogger returns a debug logger writing into a buffer, so tests stay quiet.
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

func buildDB(t *testing.T, pkgs ...*pkg.Pkg) *PkgDB {
	t.Helper()
	db := NewPkgDB()
	require.NoError(t, db.Load(pkgs))
	return db
}

// scenarioDB is the catalog used across the resolver tests: wget needs
// openssl-3.0, photo-editor and video-encoder need conflicting openssl builds.
func scenarioDB(t *testing.T) *PkgDB {
	return buildDB(t,
		pkg.NewPkg("wget", "1.21.4", []string{"openssl-3.0"}, ""),
		pkg.NewPkg("photo-editor", "2.0", []string{"openssl-1.1"}, ""),
		pkg.NewPkg("video-encoder", "4.1", []string{"openssl-3.0"}, ""),
		pkg.NewPkg("openssl-1.1", "1.1.1w", nil, "openssl"),
		pkg.NewPkg("openssl-3.0", "3.0.13", nil, "openssl"),
	)
}

// indexOf returns the position of name in order, or -1.
func indexOf(order []string, name string) int {
	for i, n := range order {
		if n == name {
			return i
		}
	}
	return -1
}

// assertDependencyOrder checks that for every edge A -> B with both present,
// B comes before A.
func assertDependencyOrder(t *testing.T, db *PkgDB, order []string) {
	t.Helper()
	for i, name := range order {
		for _, dep := range db.Requires(name) {
			j := indexOf(order, dep)
			if j == -1 {
				continue
			}
			if j >= i {
				t.Errorf("%s (index %d) should come before %s (index %d) in %v", dep, j, name, i, order)
			}
		}
	}
}
