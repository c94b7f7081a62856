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


/*Package action implements the operations of sbodeps: listing and searching
the package database, explaining and resolving the requirements of packages,
and planning their installation against the packages already installed.

Actions share a Configuration holding the database, where to discover
missing package definitions, how to read the installed packages and which
SAT backend to resolve with.
*/
package action

import (
	"context"
	"sync"
	"time"

	"github.com/Masterminds/log-go"
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/sbodeps/internal/discovery"
	"github.com/rancher-sandbox/sbodeps/internal/solver"
	"github.com/rancher-sandbox/sbodeps/pkg/installed"
)

// Timestamper is a function capable of producing a timestamp.
//
// By default, this is time.Now. This can be overridden for testing though,
// so that timestamps are predictable.
var Timestamper = time.Now

// Configuration is shared by all the actions.
type Configuration struct {
	// DB is the package database. Discovery adds to it.
	DB *solver.PkgDB
	// Source is asked for the definitions missing from DB. May be nil.
	Source discovery.Source
	// Installed reads the packages installed on the host. May be nil,
	// meaning nothing is installed.
	Installed installed.Reader
	// Backend solves the sat strategy. Nil means the default backend.
	Backend solver.Backend
	// Log is the logger actions report to. Nil means log.Current.
	Log log.Logger

	mu       sync.Mutex
	cache    map[string]installed.Info
	cachedAt time.Time
}

func (c *Configuration) logger() log.Logger {
	if c.Log == nil {
		return log.Current
	}
	return c.Log
}

// InstalledPackages returns the installed packages, keyed by name, and when
// they were read. The first call reads them, later calls return the same
// snapshot until InvalidateCache.
func (c *Configuration) InstalledPackages(ctx context.Context) (map[string]installed.Info, time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cache != nil {
		return c.cache, c.cachedAt, nil
	}
	if c.Installed == nil {
		c.cache = map[string]installed.Info{}
		c.cachedAt = Timestamper()
		return c.cache, c.cachedAt, nil
	}

	pkgs, err := c.Installed.Installed(ctx)
	if err != nil {
		return nil, time.Time{}, errors.Wrap(err, "couldn't read the installed packages")
	}
	if pkgs == nil {
		pkgs = map[string]installed.Info{}
	}
	c.cache = pkgs
	c.cachedAt = Timestamper()
	c.logger().Debugf("read %d installed packages", len(pkgs))
	return c.cache, c.cachedAt, nil
}

// InvalidateCache forgets the installed packages snapshot, so the next
// action reads them again.
func (c *Configuration) InvalidateCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = nil
	c.cachedAt = time.Time{}
}

// ensureExist discovers whatever names need that DB doesn't know yet.
func (c *Configuration) ensureExist(ctx context.Context, names []string) error {
	return discovery.New(c.DB, c.Source, c.logger()).EnsureExist(ctx, names)
}

// resolve returns names plus their requirements, in installation order.
func (c *Configuration) resolve(ctx context.Context, strategy Strategy, names []string) ([]string, error) {
	if len(names) == 0 {
		return []string{}, nil
	}
	if err := c.ensureExist(ctx, names); err != nil {
		return nil, err
	}

	c.logger().Debugf("resolving %v with the %s strategy", names, strategy)
	switch strategy {
	case TopSort:
		return solver.TopSort(c.DB.Snapshot(), names)
	case SAT:
		return solver.New(c.DB, c.Backend, c.logger()).Solve(ctx, names)
	}
	return nil, errors.Errorf("unknown strategy %d", strategy)
}
