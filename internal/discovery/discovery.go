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

/*
Package discovery extends the package database on demand.

When a request names a package that the database doesn't know, or a known
package requires one, the Discoverer asks a Source for its definition and
adds it to the database, together with whatever that definition requires in
turn.
*/
package discovery

import (
	"context"

	"github.com/Masterminds/log-go"

	"github.com/rancher-sandbox/sbodeps/internal/pkg"
	"github.com/rancher-sandbox/sbodeps/internal/solver"
)

// Discoverer makes sure packages exist in DB before they get resolved.
type Discoverer struct {
	DB     *solver.PkgDB
	Source Source // may be nil: nothing can be discovered
	logger log.Logger
}

// New returns a Discoverer adding to db the definitions found in source.
func New(db *solver.PkgDB, source Source, logger log.Logger) *Discoverer {
	if logger == nil {
		logger = log.Current
	}
	return &Discoverer{
		DB:     db,
		Source: source,
		logger: logger,
	}
}

// EnsureExist makes sure every name, plus every package reachable from them
// through requirements, is in the database.
//
// The lookup is breadth-first. Definitions found are staged, and only added
// to the database once all the names have been handled: on error the database
// is left as it was. Failures are returned as *solver.NotFoundError for the
// offending name.
func (d *Discoverer) EnsureExist(ctx context.Context, names []string) error {
	visited := make(map[string]bool)
	var staged []*pkg.Pkg

	queue := append([]string{}, names...)
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if visited[name] {
			continue
		}
		visited[name] = true

		if p := d.DB.Get(name); p != nil {
			queue = append(queue, p.Requires...)
			continue
		}

		p, err := d.find(ctx, name)
		if err != nil {
			return err
		}
		d.logger.Debugf("discovered %s", p)
		staged = append(staged, p)
		queue = append(queue, p.Requires...)
	}

	if len(staged) == 0 {
		return nil
	}
	if err := d.DB.AddAll(staged); err != nil {
		return err
	}
	d.logger.Debugf("added %d discovered packages to the database", len(staged))
	return nil
}

func (d *Discoverer) find(ctx context.Context, name string) (*pkg.Pkg, error) {
	if d.Source == nil {
		return nil, &solver.NotFoundError{Name: name}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := d.Source.FindDefinition(ctx, name)
	if err != nil {
		d.logger.Warnf("looking up %s: %s", name, err)
		return nil, &solver.NotFoundError{Name: name, Err: &SourceError{Name: name, Err: err}}
	}
	if p == nil {
		return nil, &solver.NotFoundError{Name: name}
	}
	if p.Name != name {
		p = p.Copy()
		p.Name = name
	}
	if err := p.Validate(); err != nil {
		return nil, &solver.NotFoundError{Name: name, Err: err}
	}
	return p, nil
}
