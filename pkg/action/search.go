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

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/sbodeps/pkg/search"
)

// Search is the action for looking up packages of the database by name.
type Search struct {
	cfg *Configuration

	// Regexp treats the query as a regular expression
	Regexp bool
	// Version is a semver constraint the package version must satisfy.
	// Packages whose version isn't semver never satisfy a constraint.
	Version string
}

// NewSearch constructs a new *Search
func NewSearch(cfg *Configuration) *Search {
	return &Search{
		cfg: cfg,
	}
}

// Run returns the packages matching query, best matches first. An empty
// query matches everything.
func (s *Search) Run(query string) ([]*search.Result, error) {
	index := search.NewIndex()
	for _, p := range NewList(s.cfg).Run() {
		index.Add(p)
	}

	var res []*search.Result
	if q := strings.TrimSpace(query); q == "" {
		res = index.All()
	} else {
		var err error
		res, err = index.Search(q, search.MaxScore, s.Regexp)
		if err != nil {
			return nil, err
		}
	}

	search.SortScore(res)
	return s.applyConstraint(res)
}

// applyConstraint get a result list and filters it based on the version constraint set
func (s *Search) applyConstraint(res []*search.Result) ([]*search.Result, error) {
	if s.Version == "" {
		return res, nil
	}

	constraint, err := semver.NewConstraint(s.Version)
	if err != nil {
		return res, errors.Wrap(err, "an invalid version/constraint format")
	}

	data := res[:0]
	for _, r := range res {
		v, err := semver.NewVersion(r.Pkg.Version)
		if err != nil {
			s.cfg.logger().Debugf("skipping %s: version %q is not semver", r.Name, r.Pkg.Version)
			continue
		}
		if constraint.Check(v) {
			data = append(data, r)
		}
	}

	return data, nil
}
