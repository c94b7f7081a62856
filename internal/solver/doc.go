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
Package solver resolves install-time dependencies between packages.

A package is an object comprised of a unique name, a version, the names of
the packages it requires, and optionally a base package: packages sharing a
base package are alternative builds of the same component (e.g: openssl-1.1
and openssl-3.0), and cannot be installed together.

To resolve a request, for example "install wget", we:

 1. Build a database of all known packages (PkgDB). The database also
 holds the dependency graph, with an edge from each package to each of its
 requirements, and can be queried for the packages sharing a base package.

 2. Either:
 - sort topologically the requested packages plus their transitive
   requirements (TopSort). This is the fast path, and fails on cycles.
 - or encode the request as a SAT problem (Solver) with one variable per
   package and clauses for: requested packages must be present; a package
   being present forces its requirements to be present; at most one
   alternative per base package is present.

 3. For the SAT path, find a solution if it exists, or build a conflict
 report (ConflictReport) listing, per base package, which alternative is
 required by which requested package.

 4. Return the selected packages in installation order, requirements before
 the packages that need them.
*/
package solver
