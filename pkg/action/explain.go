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
	"strings"

	"github.com/rancher-sandbox/sbodeps/internal/solver"
)

// Explain is the action for showing the requirements of a package as a tree.
type Explain struct {
	cfg *Configuration
}

// NewExplain constructs a new *Explain
func NewExplain(cfg *Configuration) *Explain {
	return &Explain{
		cfg: cfg,
	}
}

// Run returns the requirement tree of name, discovering whatever is missing
// from the database first:
//
//	└── wget
//	    └── openssl-3.0
//
// Children follow the order of the requirements. A package already on the
// path from the root is printed but not expanded again.
func (e *Explain) Run(ctx context.Context, name string) (string, error) {
	if err := e.cfg.ensureExist(ctx, []string{name}); err != nil {
		return "", err
	}

	db := e.cfg.DB.Snapshot()
	// fails on dangling requirements
	if _, err := db.Descendants(name); err != nil {
		return "", err
	}

	var lines []string
	printTree(db, name, "", true, map[string]bool{}, &lines)
	return strings.Join(lines, "\n"), nil
}

func printTree(db *solver.PkgDB, node, prefix string, isLast bool, path map[string]bool, lines *[]string) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	*lines = append(*lines, prefix+connector+node)
	if path[node] {
		return
	}

	path[node] = true
	defer delete(path, node)

	childPrefix := prefix + "│   "
	if isLast {
		childPrefix = prefix + "    "
	}
	children := db.Requires(node)
	for i, child := range children {
		printTree(db, child, childPrefix, i == len(children)-1, path, lines)
	}
}
