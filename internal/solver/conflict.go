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
	"fmt"
	"sort"
	"strings"
)

// ConflictSource is one alternative build pulled in by one requested package.
type ConflictSource struct {
	Package    string `json:"package" yaml:"package"`
	RequiredBy string `json:"required_by" yaml:"required_by"`
}

func (s ConflictSource) String() string {
	return fmt.Sprintf("'%s' (required by '%s')", s.Package, s.RequiredBy)
}

// Conflict groups the alternative builds of one base package that the
// request pulls in at the same time.
type Conflict struct {
	Base    string           `json:"base" yaml:"base"`
	Sources []ConflictSource `json:"sources" yaml:"sources"`
}

// ConflictReport explains why a request is unsatisfiable. The textual form is
// produced by String; callers wanting to inspect it use Conflicts.
type ConflictReport struct {
	Conflicts []Conflict `json:"conflicts" yaml:"conflicts"`
}

// NewConflictReport computes, for every requested package, the set of
// packages it requires (itself included), and reports every base package
// reached through more than one (build, requested package) pair.
func NewConflictReport(pkgdb *PkgDB, requested []string) (*ConflictReport, error) {
	db := pkgdb.Snapshot()

	// map: base -> set of sources
	bySource := make(map[string]map[ConflictSource]bool)
	for _, req := range sortedUnique(requested) {
		deps, err := db.closure([]string{req})
		if err != nil {
			return nil, err
		}
		for dep := range deps {
			p := db.mapNameToPkg[dep]
			if !p.HasBase() {
				continue
			}
			if _, ok := bySource[p.BasePackage]; !ok {
				bySource[p.BasePackage] = make(map[ConflictSource]bool)
			}
			bySource[p.BasePackage][ConflictSource{Package: dep, RequiredBy: req}] = true
		}
	}

	bases := make([]string, 0, len(bySource))
	for b := range bySource {
		bases = append(bases, b)
	}
	sort.Strings(bases)

	report := &ConflictReport{Conflicts: []Conflict{}}
	for _, base := range bases {
		if len(bySource[base]) < 2 {
			continue
		}
		sources := make([]ConflictSource, 0, len(bySource[base]))
		for s := range bySource[base] {
			sources = append(sources, s)
		}
		sort.Slice(sources, func(i, j int) bool {
			if sources[i].Package != sources[j].Package {
				return sources[i].Package < sources[j].Package
			}
			return sources[i].RequiredBy < sources[j].RequiredBy
		})
		report.Conflicts = append(report.Conflicts, Conflict{Base: base, Sources: sources})
	}
	return report, nil
}

// Empty reports whether no alternative-build conflict was found.
func (r *ConflictReport) Empty() bool {
	return len(r.Conflicts) == 0
}

func (r *ConflictReport) String() string {
	var sb strings.Builder
	sb.WriteString("SAT solver found a conflict!")
	if r.Empty() {
		sb.WriteString("\n  - Reason: the requirements cannot be satisfied together.")
	}
	for _, c := range r.Conflicts {
		sb.WriteString(fmt.Sprintf("\n  - Reason: Multiple versions of '%s' are required.", c.Base))
		for _, s := range c.Sources {
			sb.WriteString("\n    - ")
			sb.WriteString(s.String())
		}
	}
	return sb.String()
}

func sortedUnique(names []string) []string {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return sortedKeys(set)
}
