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

	"github.com/Masterminds/log-go"
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/sbodeps/internal/solver"
	"github.com/rancher-sandbox/sbodeps/pkg/repo"
	"github.com/rancher-sandbox/sbodeps/pkg/sbo"
)

// LoadDatabase reads the package database at path. A missing database is
// an empty one, relying on discovery to fill it.
func LoadDatabase(path string, logger log.Logger) (*solver.PkgDB, error) {
	db := solver.NewPkgDB()
	f, err := repo.LoadFile(path)
	if os.IsNotExist(errors.Cause(err)) {
		logger.Warnf("package database %s not found, starting empty. Run 'sbodeps db build' to create it", path)
		return db, nil
	}
	if err != nil {
		return nil, err
	}
	if err := db.Load(f.Pkgs()); err != nil {
		return nil, errors.Wrapf(err, "couldn't load package database (%s)", path)
	}
	logger.Debugf("loaded %d packages from %s", db.Size(), path)
	return db, nil
}

// BuildDatabase is the action for generating the package database from a
// local SlackBuilds tree.
type BuildDatabase struct {
	Tree *sbo.Tree
	Log  log.Logger
}

// NewBuildDatabase constructs a new *BuildDatabase
func NewBuildDatabase(tree *sbo.Tree, logger log.Logger) *BuildDatabase {
	return &BuildDatabase{
		Tree: tree,
		Log:  logger,
	}
}

// Run scans the tree and writes every package found to path, replacing the
// database there. .info files don't know about alternative builds, so the
// base packages recorded in the previous database are kept.
func (b *BuildDatabase) Run(ctx context.Context, path string) (*repo.File, error) {
	pkgs, err := b.Tree.Scan(ctx)
	if err != nil {
		return nil, err
	}

	if old, err := repo.LoadFile(path); err == nil {
		for _, p := range pkgs {
			if e, ok := old.Packages[p.Name]; ok && !p.HasBase() {
				p.BasePackage = e.BasePackage
			}
		}
	} else if !os.IsNotExist(errors.Cause(err)) {
		b.Log.Warnf("ignoring the previous package database: %s", err)
	}

	f := repo.NewFile()
	f.Add(pkgs...)
	if err := f.WriteFile(ctx, path, 0644); err != nil {
		return nil, errors.Wrapf(err, "couldn't write package database %s", path)
	}
	b.Log.Debugf("wrote %d packages to %s", len(pkgs), path)
	return f, nil
}

// SyncTree is the action for cloning or updating the local SlackBuilds tree.
type SyncTree struct {
	Remote string
	Log    log.Logger
}

// NewSyncTree constructs a new *SyncTree
func NewSyncTree(remote string, logger log.Logger) *SyncTree {
	return &SyncTree{
		Remote: remote,
		Log:    logger,
	}
}

// Run brings the tree at local up to date, returning its revision.
func (s *SyncTree) Run(ctx context.Context, local string) (string, error) {
	return sbo.Sync(ctx, s.Remote, local, s.Log)
}
