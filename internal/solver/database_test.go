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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rancher-sandbox/sbodeps/internal/pkg"
)

func TestLoad(t *testing.T) {
	is := assert.New(t)
	db := scenarioDB(t)

	is.Equal(5, db.Size())
	is.Equal([]string{"openssl-1.1", "openssl-3.0", "photo-editor", "video-encoder", "wget"}, db.Names())
	is.Equal([]string{"openssl-3.0"}, db.Requires("wget"))
	is.Equal([]string{"openssl-1.1", "openssl-3.0"}, db.Alternatives("openssl"))
	is.Equal([]string{"openssl"}, db.Bases())
	is.True(db.Has("wget"))
	is.False(db.Has("curl"))
	is.Nil(db.Get("curl"))
	is.Equal("3.0.13", db.Get("openssl-3.0").Version)
}

func TestLoadRejectsMalformed(t *testing.T) {
	db := buildDB(t, pkg.NewPkgMock("wget"))

	err := db.Load([]*pkg.Pkg{
		pkg.NewPkgMock("curl"),
		pkg.NewPkgMock(""),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package has no name")

	// the previous contents are untouched
	assert.Equal(t, []string{"wget"}, db.Names())
}

func TestAddIsIdempotent(t *testing.T) {
	is := assert.New(t)
	db := buildDB(t, pkg.NewPkgMock("a", "b"), pkg.NewPkgMock("b"))

	require.NoError(t, db.Add(pkg.NewPkgMock("c", "b")))
	require.NoError(t, db.Add(pkg.NewPkgMock("c", "b")))

	is.Equal(3, db.Size())
	is.Equal([]string{"b"}, db.Requires("c"))
}

func TestLoadAcceptsSelfRequirement(t *testing.T) {
	db := buildDB(t, pkg.NewPkgMock("a"), pkg.NewPkgMock("b", "b"))

	assert.Equal(t, 2, db.Size())
	assert.Equal(t, []string{"b"}, db.Requires("b"))

	got, err := db.Descendants("b")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAddOverwritesBase(t *testing.T) {
	is := assert.New(t)
	db := buildDB(t, pkg.NewPkgMock("openssl-1.1").WithBase("openssl"))

	require.NoError(t, db.Add(pkg.NewPkgMock("openssl-1.1").WithBase("libressl")))

	is.Empty(db.Alternatives("openssl"))
	is.Equal([]string{"openssl-1.1"}, db.Alternatives("libressl"))
	is.Equal([]string{"libressl"}, db.Bases())
}

func TestAddRejectsInvalid(t *testing.T) {
	db := NewPkgDB()
	assert.Error(t, db.Add(pkg.NewPkgMock("blank", " ")))
	assert.Equal(t, 0, db.Size())
}

func TestDescendants(t *testing.T) {
	db := buildDB(t,
		pkg.NewPkgMock("a", "b", "c"),
		pkg.NewPkgMock("b", "d"),
		pkg.NewPkgMock("c", "d"),
		pkg.NewPkgMock("d"),
		pkg.NewPkgMock("unrelated", "a"),
	)

	for _, tcase := range []struct {
		name     string
		pkg      string
		expected []string
	}{
		{name: "diamond", pkg: "a", expected: []string{"b", "c", "d"}},
		{name: "leaf", pkg: "d", expected: []string{}},
		{name: "root above everything", pkg: "unrelated", expected: []string{"a", "b", "c", "d"}},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			got, err := db.Descendants(tcase.pkg)
			require.NoError(t, err)
			assert.Equal(t, tcase.expected, got)
		})
	}
}

func TestDescendantsNotFound(t *testing.T) {
	db := buildDB(t, pkg.NewPkgMock("a", "missing"))

	_, err := db.Descendants("nope")
	require.True(t, IsNotFound(err))
	assert.Equal(t, "package 'nope' not found in the database", err.Error())

	// dangling requirement
	_, err = db.Descendants("a")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing", nf.Name)
}

func TestDescendantsWithCycle(t *testing.T) {
	db := buildDB(t, pkg.NewPkgMock("a", "b"), pkg.NewPkgMock("b", "a"))
	got, err := db.Descendants("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, got)
}

func TestSnapshotIsIndependent(t *testing.T) {
	db := buildDB(t, pkg.NewPkgMock("a"))
	snap := db.Snapshot()

	require.NoError(t, db.Add(pkg.NewPkgMock("b").WithBase("x")))

	assert.False(t, snap.Has("b"))
	assert.Empty(t, snap.Bases())
	assert.True(t, db.Has("b"))
}

func TestRebuildReproducesEdges(t *testing.T) {
	db := scenarioDB(t)

	var pkgs []*pkg.Pkg
	for _, name := range db.Names() {
		pkgs = append(pkgs, db.Get(name))
	}
	rebuilt := buildDB(t, pkgs...)

	for _, name := range db.Names() {
		assert.Equal(t, db.Requires(name), rebuilt.Requires(name))
	}
}

func TestAddAllIsAtomic(t *testing.T) {
	db := buildDB(t, pkg.NewPkgMock("a"))

	err := db.AddAll([]*pkg.Pkg{pkg.NewPkgMock("b"), pkg.NewPkgMock("c", "")})
	require.Error(t, err)
	assert.Equal(t, []string{"a"}, db.Names())

	require.NoError(t, db.AddAll([]*pkg.Pkg{pkg.NewPkgMock("b"), pkg.NewPkgMock("c", "b")}))
	assert.Equal(t, []string{"a", "b", "c"}, db.Names())
}
