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
	"strings"

	"github.com/pkg/errors"
)

// NotFoundError is returned when a requested or referenced package is not in
// the database, even after discovery. Err holds the discovery failure, if any.
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("package '%s' not found in the database: %s", e.Name, e.Err)
	}
	return fmt.Sprintf("package '%s' not found in the database", e.Name)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// CyclicDependencyError is returned when the packages to order contain a
// dependency cycle. Packages lists the packages that could not be ordered.
type CyclicDependencyError struct {
	Packages []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("topological sort failed, the request contains a circular dependency between: %s",
		strings.Join(e.Packages, ", "))
}

// UnsatisfiableError is returned by the SAT resolver when no selection of
// packages satisfies the request.
type UnsatisfiableError struct {
	Report *ConflictReport
}

func (e *UnsatisfiableError) Error() string {
	return e.Report.String()
}

// IsNotFound reports whether err, or any error it wraps, is a *NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsCyclic reports whether err, or any error it wraps, is a
// *CyclicDependencyError.
func IsCyclic(err error) bool {
	var e *CyclicDependencyError
	return errors.As(err, &e)
}

// IsUnsatisfiable reports whether err, or any error it wraps, is an
// *UnsatisfiableError.
func IsUnsatisfiable(err error) bool {
	var e *UnsatisfiableError
	return errors.As(err, &e)
}
