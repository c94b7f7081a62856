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
	"strings"

	"github.com/pkg/errors"
)

// Strategy selects the algorithm resolving a request.
type Strategy int

const (
	// TopSort orders the requirements topologically. It is fast, but
	// ignores alternative builds conflicting with each other.
	TopSort Strategy = iota + 1
	// SAT encodes the request as a satisfiability problem, and explains
	// conflicts between alternative builds.
	SAT
)

// Strategies returns the names of the supported strategies.
func Strategies() []string {
	return []string{TopSort.String(), SAT.String()}
}

func (s Strategy) String() string {
	switch s {
	case TopSort:
		return "topsort"
	case SAT:
		return "sat"
	}
	return "unknown"
}

// ParseStrategy parses a strategy by name, or by its menu number: "topsort"
// or "1", "sat" or "2".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "topsort", "1":
		return TopSort, nil
	case "sat", "2":
		return SAT, nil
	}
	return 0, errors.Errorf("invalid strategy %q, expected one of: topsort (1), sat (2)", s)
}
