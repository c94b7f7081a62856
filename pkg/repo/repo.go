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

/*Package repo reads and writes the package database file.

The database is a JSON object keyed by package name:

	{
	  "openssl-3.0": {
	    "version": "3.0.13",
	    "requires": [],
	    "base_package": "openssl"
	  },
	  "wget": {
	    "version": "1.21.4",
	    "requires": ["openssl-3.0"]
	  }
	}
*/
package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/sbodeps/internal/pkg"
)

// Entry is the record of one package in the database file.
type Entry struct {
	Version     string   `json:"version"`
	Requires    []string `json:"requires"`
	BasePackage string   `json:"base_package,omitempty"`
}

// File represents the package database file.
type File struct {
	Packages map[string]*Entry
}

// NewFile generates an empty database file.
func NewFile() *File {
	return &File{Packages: map[string]*Entry{}}
}

// LoadFile takes a file at the given path and returns a File object
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't load package database (%s)", path)
	}
	defer f.Close()

	r, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't load package database (%s)", path)
	}
	return r, nil
}

// Load decodes and validates a database. Unknown fields, null entries and
// entries that don't make a valid package are rejected.
func Load(in io.Reader) (*File, error) {
	dec := json.NewDecoder(in)
	dec.DisallowUnknownFields()

	r := NewFile()
	if err := dec.Decode(&r.Packages); err != nil {
		return nil, errors.Wrap(err, "malformed package database")
	}
	if r.Packages == nil {
		return nil, errors.New("malformed package database: not a JSON object")
	}
	for _, name := range r.Names() {
		if r.Packages[name] == nil {
			return nil, errors.Errorf("package %q has no record", name)
		}
		if err := r.pkg(name).Validate(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add inserts or overwrites the records of pkgs.
func (r *File) Add(pkgs ...*pkg.Pkg) {
	for _, p := range pkgs {
		requires := append([]string{}, p.Requires...)
		r.Packages[p.Name] = &Entry{
			Version:     p.Version,
			Requires:    requires,
			BasePackage: p.BasePackage,
		}
	}
}

// Has returns true if the database holds a package named name.
func (r *File) Has(name string) bool {
	_, ok := r.Packages[name]
	return ok
}

// Names returns the package names, sorted.
func (r *File) Names() []string {
	names := make([]string, 0, len(r.Packages))
	for n := range r.Packages {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Pkgs returns the packages of the database, sorted by name.
func (r *File) Pkgs() []*pkg.Pkg {
	pkgs := make([]*pkg.Pkg, 0, len(r.Packages))
	for _, name := range r.Names() {
		pkgs = append(pkgs, r.pkg(name))
	}
	return pkgs
}

func (r *File) pkg(name string) *pkg.Pkg {
	e := r.Packages[name]
	return pkg.NewPkg(name, e.Version, e.Requires, e.BasePackage)
}

// Encode writes the database as JSON with sorted keys and a two space indent.
func (r *File) Encode(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(r.Packages)
}

// WriteFile writes the database to path. Concurrent writers are serialized
// through a lock file next to it, and readers never see a partial file.
func (r *File) WriteFile(ctx context.Context, path string, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	lockPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".lock"
	fileLock := flock.New(lockPath)
	lockCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	locked, err := fileLock.TryLockContext(lockCtx, time.Second)
	if err == nil && locked {
		defer fileLock.Unlock()
	}
	if err != nil {
		return errors.Wrapf(err, "couldn't lock %s", lockPath)
	}

	buf := new(bytes.Buffer)
	if err := r.Encode(buf); err != nil {
		return err
	}
	return atomicWriteFile(path, buf, perm)
}

// atomicWriteFile atomically (as atomic as os.Rename allows) writes a file to a
// disk.
func atomicWriteFile(filename string, reader io.Reader, mode os.FileMode) error {
	tempFile, err := ioutil.TempFile(filepath.Split(filename))
	if err != nil {
		return err
	}
	tempName := tempFile.Name()

	if _, err := io.Copy(tempFile, reader); err != nil {
		tempFile.Close() // return value is ignored as we are already on error path
		os.Remove(tempName)
		return err
	}

	if err := tempFile.Close(); err != nil {
		os.Remove(tempName)
		return err
	}

	if err := os.Chmod(tempName, mode); err != nil {
		os.Remove(tempName)
		return err
	}

	return os.Rename(tempName, filename)
}
