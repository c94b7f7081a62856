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
)

// TopSort resolves the requested packages with a topological sort: it takes
// the requested packages plus everything they transitively require, and
// orders them so that every package comes after all of its requirements.
//
// It offers no cycle breaking: a cycle in the requested subgraph fails with a
// *CyclicDependencyError. All names must already be in the database, see
// discovery.EnsureExist.
func TopSort(pkgdb *PkgDB, requested []string) ([]string, error) {
	db := pkgdb.Snapshot()
	nodes, err := db.closure(requested)
	if err != nil {
		return nil, err
	}
	return db.order(nodes)
}

// order sorts the subgraph induced by nodes, dependencies first. When several
// packages are ready at once they are taken in lexical order, so the result
// is stable.
func (pkgdb *PkgDB) order(nodes map[string]bool) ([]string, error) {
	// pending: name -> requirements inside nodes not yet placed
	pending := make(map[string]int, len(nodes))
	// dependents: name -> packages in nodes that require it
	dependents := make(map[string][]string, len(nodes))
	for n := range nodes {
		for _, dep := range pkgdb.mapNameToRequires[n] {
			if !nodes[dep] {
				continue
			}
			pending[n]++
			dependents[dep] = append(dependents[dep], n)
		}
	}

	ready := []string{}
	for n := range nodes {
		if pending[n] == 0 {
			ready = append(ready, n)
		}
	}
	sort.Strings(ready)

	ordered := make([]string, 0, len(nodes))
	for len(ready) > 0 {
		current := ready[0]
		ready = ready[1:]
		ordered = append(ordered, current)
		for _, d := range dependents[current] {
			pending[d]--
			if pending[d] == 0 {
				ready = insertSorted(ready, d)
			}
		}
	}

	if len(ordered) != len(nodes) {
		placed := make(map[string]bool, len(ordered))
		for _, n := range ordered {
			placed[n] = true
		}
		var stuck []string
		for n := range nodes {
			if !placed[n] {
				stuck = append(stuck, n)
			}
		}
		sort.Strings(stuck)
		return nil, &CyclicDependencyError{Packages: stuck}
	}
	return ordered, nil
}

func insertSorted(s []string, v string) []string {
	i := sort.SearchStrings(s, v)
	s = append(s, "")
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}
