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
	"context"

	"github.com/Masterminds/log-go"
	"github.com/pkg/errors"
)

// Solver resolves requests by encoding them as a boolean satisfiability
// problem over the whole package database.
type Solver struct {
	PkgDB   *PkgDB  // DB containing packages
	Backend Backend // SAT backend doing the solving
	logger  log.Logger
}

// Encoding is the CNF form of a request. Variable i+1 stands for Names[i].
type Encoding struct {
	Names   []string
	Clauses [][]int
	ids     map[string]int
}

// ID returns the variable of package name, or 0 if unknown.
func (e *Encoding) ID(name string) int {
	return e.ids[name]
}

// New creates a new Solver over db. A nil backend means the default one.
func New(db *PkgDB, backend Backend, logger log.Logger) *Solver {
	if backend == nil {
		backend = &GophersatBackend{}
	}
	if logger == nil {
		logger = log.Current
	}
	return &Solver{
		PkgDB:   db,
		Backend: backend,
		logger:  logger,
	}
}

// Solve resolves the requested packages and returns them, plus everything
// they require, in installation order: every package after its requirements.
//
// If no selection exists that installs every requested package while keeping
// at most one alternative build per base package, Solve fails with an
// *UnsatisfiableError carrying a conflict report. Requested packages are
// never silently dropped.
func (s *Solver) Solve(ctx context.Context, requested []string) ([]string, error) {
	db := s.PkgDB.Snapshot()
	for _, name := range requested {
		if _, ok := db.mapNameToPkg[name]; !ok {
			return nil, &NotFoundError{Name: name}
		}
	}

	enc := db.BuildConstraints(requested)
	s.logger.Debugf("SAT encoding: %d variables, %d clauses", len(enc.Names), len(enc.Clauses))

	model, sat, err := s.Backend.Solve(ctx, enc.Clauses)
	if err != nil {
		return nil, errors.Wrap(err, "SAT backend failed")
	}
	if !sat {
		s.logger.Debug("SAT encoding is unsatisfiable, building conflict report")
		report, err := NewConflictReport(db, requested)
		if err != nil {
			return nil, err
		}
		return nil, &UnsatisfiableError{Report: report}
	}

	return db.decode(enc, model, requested)
}

// decode extracts the selected packages from model. Variables the request
// does not reach are left unconstrained by the encoding, so only the selected
// packages inside the request's closure make up the result.
func (pkgdb *PkgDB) decode(enc *Encoding, model []bool, requested []string) ([]string, error) {
	reach, err := pkgdb.closure(requested)
	if err != nil {
		return nil, err
	}

	selected := make(map[string]bool, len(reach))
	for name := range reach {
		id := enc.ID(name)
		if id == 0 || id > len(model) || !model[id-1] {
			return nil, errors.Errorf("SAT model does not select required package %q", name)
		}
		selected[name] = true
	}
	return pkgdb.order(selected)
}

// BuildConstraints generates the CNF encoding of a request:
//  - every requested package is selected,
//  - selecting a package selects each of its requirements,
//  - at most one alternative build per base package is selected.
func (pkgdb *PkgDB) BuildConstraints(requested []string) *Encoding {
	names := pkgdb.names()
	enc := &Encoding{
		Names: names,
		ids:   make(map[string]int, len(names)),
	}
	// IDs start with 1, DIMACS variables cannot be 0
	for i, name := range names {
		enc.ids[name] = i + 1
	}

	enc.Clauses = append(enc.Clauses, pkgdb.buildConstraintRequested(enc, requested)...)
	for _, name := range names {
		enc.Clauses = append(enc.Clauses, pkgdb.buildConstraintRelations(enc, name)...)
	}
	for _, base := range sortedKeysOfGroups(pkgdb.mapBaseToAlternatives) {
		enc.Clauses = append(enc.Clauses, pkgdb.buildConstraintAtMost1(enc, base)...)
	}
	return enc
}

func (pkgdb *PkgDB) buildConstraintRequested(enc *Encoding, requested []string) (clauses [][]int) {
	for _, name := range sortedUnique(requested) {
		// package == true
		clauses = append(clauses, []int{enc.ID(name)})
	}
	return clauses
}

func (pkgdb *PkgDB) buildConstraintRelations(enc *Encoding, name string) (clauses [][]int) {
	p := enc.ID(name)
	for _, dep := range pkgdb.mapNameToRequires[name] {
		d := enc.ID(dep)
		if d == 0 {
			// dangling requirement, discovery decides whether it exists
			continue
		}
		// A depends on B: not(A) or B
		clauses = append(clauses, []int{-p, d})
	}
	return clauses
}

func (pkgdb *PkgDB) buildConstraintAtMost1(enc *Encoding, base string) (clauses [][]int) {
	// E.g: B having several builds: B-1, B-2, B-3. Only one can be selected:
	// not(B-1) or not(B-2), not(B-1) or not(B-3), not(B-2) or not(B-3)
	alternatives := sortedKeys(pkgdb.mapBaseToAlternatives[base])
	for i := 0; i < len(alternatives); i++ {
		for j := i + 1; j < len(alternatives); j++ {
			clauses = append(clauses, []int{-enc.ID(alternatives[i]), -enc.ID(alternatives[j])})
		}
	}
	return clauses
}

func sortedKeysOfGroups(groups map[string]map[string]bool) []string {
	set := make(map[string]bool, len(groups))
	for k := range groups {
		set[k] = true
	}
	return sortedKeys(set)
}
