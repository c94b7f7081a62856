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
	"bytes"
	"context"
	"testing"

	"github.com/Masterminds/log-go"
	logcli "github.com/Masterminds/log-go/impl/cli"
	"github.com/stretchr/testify/require"

	"github.com/rancher-sandbox/sbodeps/internal/pkg"
	"github.com/rancher-sandbox/sbodeps/internal/solver"
	"github.com/rancher-sandbox/sbodeps/pkg/installed"
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

// fakeInstalled is an installed.Reader counting how many times it is read.
type fakeInstalled struct {
	pkgs  map[string]installed.Info
	reads int
}

func (f *fakeInstalled) Installed(ctx context.Context) (map[string]installed.Info, error) {
	f.reads++
	out := make(map[string]installed.Info, len(f.pkgs))
	for k, v := range f.pkgs {
		out[k] = v
	}
	return out, nil
}

func (f *fakeInstalled) install(name, version string) {
	if f.pkgs == nil {
		f.pkgs = map[string]installed.Info{}
	}
	f.pkgs[name] = installed.Info{Name: name, Version: version, Arch: "x86_64", Build: "1_SBo"}
}

// mapSource serves package definitions from memory.
type mapSource map[string]*pkg.Pkg

func (m mapSource) FindDefinition(ctx context.Context, name string) (*pkg.Pkg, error) {
	if p, ok := m[name]; ok {
		return p.Copy(), nil
	}
	return nil, nil
}

// actionConfigFixture returns a Configuration over the scenario catalog:
// wget needs openssl-3.0, photo-editor and video-encoder need conflicting
// openssl builds.
func actionConfigFixture(t *testing.T, pkgs ...*pkg.Pkg) (*Configuration, *fakeInstalled) {
	t.Helper()

	if len(pkgs) == 0 {
		pkgs = []*pkg.Pkg{
			pkg.NewPkg("wget", "1.21.4", []string{"openssl-3.0"}, ""),
			pkg.NewPkg("photo-editor", "2.0", []string{"openssl-1.1"}, ""),
			pkg.NewPkg("video-encoder", "4.1", []string{"openssl-3.0"}, ""),
			pkg.NewPkg("openssl-1.1", "1.1.1w", nil, "openssl"),
			pkg.NewPkg("openssl-3.0", "3.0.13", nil, "openssl"),
		}
	}
	db := solver.NewPkgDB()
	require.NoError(t, db.Load(pkgs))

	logger, _ := testLogger()
	fake := &fakeInstalled{}
	return &Configuration{
		DB:        db,
		Installed: fake,
		Log:       logger,
	}, fake
}

// strategies runs f with every resolution strategy.
func strategies(t *testing.T, f func(t *testing.T, strategy Strategy)) {
	for _, s := range []Strategy{TopSort, SAT} {
		t.Run(s.String(), func(t *testing.T) {
			f(t, s)
		})
	}
}
