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
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/log-go"
	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/sbodeps/internal/pkg"
)

// Tree is a local SlackBuilds tree.
type Tree struct {
	Root   string
	logger log.Logger
}

// NewTree returns the tree rooted at root.
func NewTree(root string, logger log.Logger) *Tree {
	if logger == nil {
		logger = log.Current
	}
	return &Tree{Root: root, logger: logger}
}

// FindDefinition looks for <root>/<category>/<name>/<name>.info in every
// category. It returns nil if no category has it.
func (t *Tree) FindDefinition(ctx context.Context, name string) (*pkg.Pkg, error) {
	categories, err := ioutil.ReadDir(t.Root)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't read SlackBuilds tree %s", t.Root)
	}

	for _, c := range categories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !c.IsDir() || strings.HasPrefix(c.Name(), ".") {
			continue
		}
		// name comes from package requirements: keep it inside the tree
		path, err := securejoin.SecureJoin(t.Root, filepath.Join(c.Name(), name, name+".info"))
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}

		t.logger.Debugf("found %s in %s", name, path)
		p, err := readInfoFile(path)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, nil
}

// Scan parses every .info file of the tree. Files that can't be parsed, or
// that don't define a valid package, are reported and skipped. Packages are
// returned sorted by name; when two files define the same name, the last one
// in lexical path order wins.
func (t *Tree) Scan(ctx context.Context) ([]*pkg.Pkg, error) {
	if fi, err := os.Stat(t.Root); err != nil || !fi.IsDir() {
		return nil, errors.Errorf("the SlackBuilds tree %s does not exist", t.Root)
	}

	found := make(map[string]*pkg.Pkg)
	err := filepath.Walk(t.Root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if fi.IsDir() {
			if path != t.Root && strings.HasPrefix(fi.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".info" {
			return nil
		}

		p, err := readInfoFile(path)
		if err != nil {
			t.logger.Warnf("could not parse %s: %s", path, err)
			return nil
		}
		if old, ok := found[p.Name]; ok {
			t.logger.Debugf("%s overrides %s", path, old)
		}
		found[p.Name] = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(found))
	for n := range found {
		names = append(names, n)
	}
	sort.Strings(names)
	pkgs := make([]*pkg.Pkg, 0, len(names))
	for _, n := range names {
		pkgs = append(pkgs, found[n])
	}
	return pkgs, nil
}

func readInfoFile(path string) (*pkg.Pkg, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := ParseInfo(f)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't parse %s", path)
	}
	p, err := info.Pkg()
	if err != nil {
		return nil, errors.Wrapf(err, "invalid definition in %s", path)
	}
	return p, nil
}
