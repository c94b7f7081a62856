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
	"github.com/rancher-sandbox/sbodeps/internal/pkg"
)

// List is the action for listing the packages of the database.
type List struct {
	cfg *Configuration
}

// NewList constructs a new *List
func NewList(cfg *Configuration) *List {
	return &List{
		cfg: cfg,
	}
}

// Run returns every package of the database, sorted by name.
func (l *List) Run() []*pkg.Pkg {
	db := l.cfg.DB.Snapshot()
	names := db.Names()
	pkgs := make([]*pkg.Pkg, 0, len(names))
	for _, name := range names {
		pkgs = append(pkgs, db.Get(name))
	}
	return pkgs
}
