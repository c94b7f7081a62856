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

package discovery

import (
	"bytes"
	"context"
	"testing"

	"github.com/Masterminds/log-go"
	logcli "github.com/Masterminds/log-go/impl/cli"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rancher-sandbox/sbodeps/internal/pkg"
	"github.com/rancher-sandbox/sbodeps/internal/solver"
)

// mapSource serves definitions from a map and counts lookups.
type mapSource struct {
	defs  map[string]*pkg.Pkg
	calls map[string]int
}

func newMapSource(pkgs ...*pkg.Pkg) *mapSource {
	s := &mapSource{defs: map[string]*pkg.Pkg{}, calls: map[string]int{}}
	for _, p := range pkgs {
		s.defs[p.Name] = p
	}
	return s
}

func (s *mapSource) FindDefinition(_ context.Context, name string) (*pkg.Pkg, error) {
	s.calls[name]++
	return s.defs[name], nil
}

type brokenSource struct{}

func (brokenSource) FindDefinition(context.Context, string) (*pkg.Pkg, error) {
	return nil, errors.New("connection refused")
}

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

func newDB(t *testing.T, pkgs ...*pkg.Pkg) *solver.PkgDB {
	t.Helper()
	db := solver.NewPkgDB()
	require.NoError(t, db.Load(pkgs))
	return db
}

func TestEnsureExistKnownPackages(t *testing.T) {
	db := newDB(t, pkg.NewPkgMock("wget", "openssl-3.0"), pkg.NewPkgMock("openssl-3.0"))
	source := newMapSource()
	logger, _ := testLogger()

	require.NoError(t, New(db, source, logger).EnsureExist(context.Background(), []string{"wget"}))
	assert.Equal(t, 2, db.Size())
	assert.Empty(t, source.calls)
}

func TestEnsureExistTransitive(t *testing.T) {
	db := newDB(t, pkg.NewPkgMock("wget", "openssl-3.0"))
	source := newMapSource(
		pkg.NewPkgMock("openssl-3.0", "zlib"),
		pkg.NewPkgMock("zlib"),
		pkg.NewPkgMock("gimp", "babl"),
		pkg.NewPkgMock("babl"),
	)
	logger, buf := testLogger()

	err := New(db, source, logger).EnsureExist(context.Background(), []string{"wget", "gimp"})
	require.NoError(t, err)
	assert.Equal(t, []string{"babl", "gimp", "openssl-3.0", "wget", "zlib"}, db.Names())
	assert.Equal(t, []string{"zlib"}, db.Requires("openssl-3.0"))
	assert.Contains(t, buf.String(), "added 4 discovered packages")

	// the resolvers can now use them
	order, err := solver.TopSort(db, []string{"wget"})
	require.NoError(t, err)
	assert.Equal(t, []string{"zlib", "openssl-3.0", "wget"}, order)
}

func TestEnsureExistIsIdempotent(t *testing.T) {
	db := newDB(t)
	source := newMapSource(pkg.NewPkgMock("zlib"))
	logger, _ := testLogger()
	d := New(db, source, logger)

	require.NoError(t, d.EnsureExist(context.Background(), []string{"zlib", "zlib"}))
	require.NoError(t, d.EnsureExist(context.Background(), []string{"zlib"}))

	assert.Equal(t, 1, db.Size())
	assert.Equal(t, 1, source.calls["zlib"])
}

func TestEnsureExistSelfReference(t *testing.T) {
	db := newDB(t)
	source := newMapSource(
		pkg.NewPkgMock("a", "b"),
		pkg.NewPkgMock("b", "a"),
	)
	logger, _ := testLogger()

	require.NoError(t, New(db, source, logger).EnsureExist(context.Background(), []string{"a"}))
	assert.Equal(t, []string{"a", "b"}, db.Names())
	assert.Equal(t, 1, source.calls["a"])
	assert.Equal(t, 1, source.calls["b"])
}

func TestEnsureExistSelfRequirement(t *testing.T) {
	db := newDB(t)
	source := newMapSource(pkg.NewPkgMock("loopy", "loopy"))
	logger, _ := testLogger()

	require.NoError(t, New(db, source, logger).EnsureExist(context.Background(), []string{"loopy"}))
	assert.True(t, db.Has("loopy"))
	assert.Equal(t, 1, source.calls["loopy"])

	// ordering is where the cycle shows up
	_, err := solver.TopSort(db, []string{"loopy"})
	assert.True(t, solver.IsCyclic(err))
}

func TestEnsureExistIsAtomic(t *testing.T) {
	db := newDB(t, pkg.NewPkgMock("wget", "openssl-3.0"))
	source := newMapSource(
		pkg.NewPkgMock("openssl-3.0", "zlib", "ghost"),
		pkg.NewPkgMock("zlib"),
	)
	logger, _ := testLogger()

	err := New(db, source, logger).EnsureExist(context.Background(), []string{"wget"})
	var nf *solver.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "ghost", nf.Name)
	assert.Equal(t, []string{"wget"}, db.Names())
}

func TestEnsureExistSourceUnavailable(t *testing.T) {
	db := newDB(t)
	logger, buf := testLogger()

	err := New(db, brokenSource{}, logger).EnsureExist(context.Background(), []string{"zlib"})
	require.True(t, solver.IsNotFound(err))
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, buf.String(), "looking up zlib")
	assert.Equal(t, 0, db.Size())
}

func TestEnsureExistWithoutSource(t *testing.T) {
	logger, _ := testLogger()
	err := New(newDB(t), nil, logger).EnsureExist(context.Background(), []string{"zlib"})
	assert.True(t, solver.IsNotFound(err))
}

func TestEnsureExistInvalidDefinition(t *testing.T) {
	db := newDB(t)
	source := newMapSource(pkg.NewPkgMock("blank", ""))
	logger, _ := testLogger()

	err := New(db, source, logger).EnsureExist(context.Background(), []string{"blank"})
	require.True(t, solver.IsNotFound(err))
	assert.Contains(t, err.Error(), "has an empty requirement")
	assert.Equal(t, 0, db.Size())
}

func TestMultiSource(t *testing.T) {
	local := newMapSource(pkg.NewPkgMock("zlib"))
	remote := newMapSource(pkg.NewPkgMock("zlib", "other"), pkg.NewPkgMock("babl"))
	ctx := context.Background()

	m := MultiSource{local, remote}
	p, err := m.FindDefinition(ctx, "zlib")
	require.NoError(t, err)
	assert.Empty(t, p.Requires)
	assert.Equal(t, 0, remote.calls["zlib"])

	p, err = m.FindDefinition(ctx, "babl")
	require.NoError(t, err)
	assert.Equal(t, "babl", p.Name)

	p, err = m.FindDefinition(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, p)

	// a broken source is skipped when another one has the definition
	m = MultiSource{brokenSource{}, remote}
	p, err = m.FindDefinition(ctx, "babl")
	require.NoError(t, err)
	assert.NotNil(t, p)

	_, err = m.FindDefinition(ctx, "nope")
	assert.EqualError(t, err, "connection refused")
}
