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
	"sort"
	"sync"

	"github.com/Masterminds/log-go"
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/sbodeps/internal/pkg"
)

// PkgDB implements the package catalog: a database of packages keyed by name,
// plus the dependency graph derived from it. There is an edge A -> B iff B is
// listed in the requirements of A.
//
// Packages that are alternative builds of the same component are indexed by
// their base package, so the solver can forbid selecting two of them.
//
// The database only grows during a resolution session: Add inserts new
// packages (or overwrites an existing one), nothing is ever deleted.
type PkgDB struct {
	mu           sync.RWMutex
	mapNameToPkg map[string]*pkg.Pkg
	// map: name -> requirements, in insertion order
	mapNameToRequires map[string][]string
	// map: base package -> set of names
	mapBaseToAlternatives map[string]map[string]bool
}

// NewPkgDB creates an empty database.
func NewPkgDB() *PkgDB {
	return &PkgDB{
		mapNameToPkg:          make(map[string]*pkg.Pkg),
		mapNameToRequires:     make(map[string][]string),
		mapBaseToAlternatives: make(map[string]map[string]bool),
	}
}

// Load replaces the contents of the database with pkgs, building the catalog
// and the graph in one pass. All packages are validated first: if any of
// them is malformed, the database is left untouched.
func (pkgdb *PkgDB) Load(pkgs []*pkg.Pkg) error {
	for _, p := range pkgs {
		if err := p.Validate(); err != nil {
			return errors.Wrap(err, "cannot load package database")
		}
	}

	fresh := NewPkgDB()
	for _, p := range pkgs {
		fresh.add(p)
	}

	pkgdb.mu.Lock()
	defer pkgdb.mu.Unlock()
	pkgdb.mapNameToPkg = fresh.mapNameToPkg
	pkgdb.mapNameToRequires = fresh.mapNameToRequires
	pkgdb.mapBaseToAlternatives = fresh.mapBaseToAlternatives
	return nil
}

// Add inserts a package and its outgoing edges. If a package with the same
// name is already present it gets overwritten, edges included.
func (pkgdb *PkgDB) Add(p *pkg.Pkg) error {
	if err := p.Validate(); err != nil {
		return err
	}
	pkgdb.mu.Lock()
	defer pkgdb.mu.Unlock()
	pkgdb.add(p)
	return nil
}

// AddAll inserts pkgs under a single write lock. They are all validated
// first: if any of them is malformed, nothing is inserted.
func (pkgdb *PkgDB) AddAll(pkgs []*pkg.Pkg) error {
	for _, p := range pkgs {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	pkgdb.mu.Lock()
	defer pkgdb.mu.Unlock()
	for _, p := range pkgs {
		pkgdb.add(p)
	}
	return nil
}

func (pkgdb *PkgDB) add(p *pkg.Pkg) {
	if old, ok := pkgdb.mapNameToPkg[p.Name]; ok && old.HasBase() {
		delete(pkgdb.mapBaseToAlternatives[old.BasePackage], old.Name)
		if len(pkgdb.mapBaseToAlternatives[old.BasePackage]) == 0 {
			delete(pkgdb.mapBaseToAlternatives, old.BasePackage)
		}
	}

	p = p.Copy()
	pkgdb.mapNameToPkg[p.Name] = p
	pkgdb.mapNameToRequires[p.Name] = p.Requires

	if p.HasBase() {
		if _, ok := pkgdb.mapBaseToAlternatives[p.BasePackage]; !ok {
			pkgdb.mapBaseToAlternatives[p.BasePackage] = make(map[string]bool)
		}
		pkgdb.mapBaseToAlternatives[p.BasePackage][p.Name] = true
	}
}

// Has reports whether a package named name is in the database.
func (pkgdb *PkgDB) Has(name string) bool {
	pkgdb.mu.RLock()
	defer pkgdb.mu.RUnlock()
	_, ok := pkgdb.mapNameToPkg[name]
	return ok
}

// Get returns the package named name, or nil.
func (pkgdb *PkgDB) Get(name string) *pkg.Pkg {
	pkgdb.mu.RLock()
	defer pkgdb.mu.RUnlock()
	p, ok := pkgdb.mapNameToPkg[name]
	if !ok {
		return nil
	}
	return p
}

// Size returns the number of packages in the database.
func (pkgdb *PkgDB) Size() int {
	pkgdb.mu.RLock()
	defer pkgdb.mu.RUnlock()
	return len(pkgdb.mapNameToPkg)
}

// Names returns all package names, sorted.
func (pkgdb *PkgDB) Names() []string {
	pkgdb.mu.RLock()
	defer pkgdb.mu.RUnlock()
	return pkgdb.names()
}

func (pkgdb *PkgDB) names() []string {
	names := make([]string, 0, len(pkgdb.mapNameToPkg))
	for name := range pkgdb.mapNameToPkg {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Requires returns the direct requirements of name, in insertion order.
func (pkgdb *PkgDB) Requires(name string) []string {
	pkgdb.mu.RLock()
	defer pkgdb.mu.RUnlock()
	return append([]string(nil), pkgdb.mapNameToRequires[name]...)
}

// Alternatives returns the sorted names of the packages sharing base.
func (pkgdb *PkgDB) Alternatives(base string) []string {
	pkgdb.mu.RLock()
	defer pkgdb.mu.RUnlock()
	return sortedKeys(pkgdb.mapBaseToAlternatives[base])
}

// Bases returns all base packages that have at least one alternative, sorted.
func (pkgdb *PkgDB) Bases() []string {
	pkgdb.mu.RLock()
	defer pkgdb.mu.RUnlock()
	bases := make([]string, 0, len(pkgdb.mapBaseToAlternatives))
	for b := range pkgdb.mapBaseToAlternatives {
		bases = append(bases, b)
	}
	sort.Strings(bases)
	return bases
}

// Descendants returns the sorted transitive closure of the packages reachable
// from name by following requirement edges, name excluded.
func (pkgdb *PkgDB) Descendants(name string) ([]string, error) {
	pkgdb.mu.RLock()
	defer pkgdb.mu.RUnlock()
	set, err := pkgdb.closure([]string{name})
	if err != nil {
		return nil, err
	}
	delete(set, name)
	return sortedKeys(set), nil
}

// Closure returns the set of names plus everything reachable from them.
func (pkgdb *PkgDB) Closure(names []string) (map[string]bool, error) {
	pkgdb.mu.RLock()
	defer pkgdb.mu.RUnlock()
	return pkgdb.closure(names)
}

func (pkgdb *PkgDB) closure(names []string) (map[string]bool, error) {
	set := make(map[string]bool)
	queue := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := pkgdb.mapNameToPkg[name]; !ok {
			return nil, &NotFoundError{Name: name}
		}
		if !set[name] {
			set[name] = true
			queue = append(queue, name)
		}
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, dep := range pkgdb.mapNameToRequires[current] {
			if set[dep] {
				continue
			}
			if _, ok := pkgdb.mapNameToPkg[dep]; !ok {
				return nil, &NotFoundError{Name: dep}
			}
			set[dep] = true
			queue = append(queue, dep)
		}
	}
	return set, nil
}

// Snapshot returns an independent copy of the database. Resolvers work on a
// snapshot so that a concurrent Add cannot change the graph under them.
func (pkgdb *PkgDB) Snapshot() *PkgDB {
	pkgdb.mu.RLock()
	defer pkgdb.mu.RUnlock()
	s := NewPkgDB()
	for name, p := range pkgdb.mapNameToPkg {
		s.mapNameToPkg[name] = p
		s.mapNameToRequires[name] = pkgdb.mapNameToRequires[name]
	}
	for base, members := range pkgdb.mapBaseToAlternatives {
		s.mapBaseToAlternatives[base] = make(map[string]bool, len(members))
		for m := range members {
			s.mapBaseToAlternatives[base][m] = true
		}
	}
	return s
}

// DebugPrintDB logs every package of the database at debug level.
func (pkgdb *PkgDB) DebugPrintDB(logger log.Logger) {
	logger.Debugf("Printing DB (%d packages)", pkgdb.Size())
	for _, name := range pkgdb.Names() {
		logger.Debug(pkgdb.Get(name).String())
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
