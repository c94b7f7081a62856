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


/*Package search implements the lookup of packages in the database by name,
so it can be reused by the CLI and composed over by other actions.
*/
package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/rancher-sandbox/sbodeps/internal/pkg"
)

// MaxScore suggests that any score higher than this is not considered a match.
const MaxScore = 25

// Result is a search result.
//
// Score indicates how close it is to match. The higher the score, the longer
// the distance.
type Result struct {
	Name  string
	Score int
	Pkg   *pkg.Pkg
}

// Index is a searchable index of packages.
type Index struct {
	pkgs map[string]*pkg.Pkg
}

// NewIndex creates a new Index.
func NewIndex() *Index {
	return &Index{pkgs: map[string]*pkg.Pkg{}}
}

// Add adds packages to the index. A package already indexed is replaced.
func (i *Index) Add(pkgs ...*pkg.Pkg) {
	for _, p := range pkgs {
		i.pkgs[p.Name] = p
	}
}

// All returns all packages in the index as if they were search results.
//
// Each will be given a score of 0.
func (i *Index) All() []*Result {
	res := make([]*Result, 0, len(i.pkgs))
	for name, p := range i.pkgs {
		res = append(res, &Result{Name: name, Pkg: p})
	}
	return res
}

// Search searches an index for the given term.
//
// Threshold indicates the maximum score a term may have before being marked
// irrelevant. (Low score means higher relevance. Golf, not bowling.)
//
// If regexp is true, the term is treated as a regular expression. Otherwise,
// term is treated as a case insensitive literal string.
func (i *Index) Search(term string, threshold int, regexp bool) ([]*Result, error) {
	if regexp {
		return i.SearchRegexp(term, threshold)
	}
	return i.SearchLiteral(term, threshold), nil
}

// calcScore calculates a score for a match.
func (i *Index) calcScore(index int, matchline string) int {
	// This is currently tied to the fact that the name is the first field,
	// so a match at the start of the name scores best.
	splits := []int{}
	s := rune('-')
	for i, ch := range matchline {
		if ch == s {
			splits = append(splits, i)
		}
	}

	for i, pos := range splits {
		if pos > index {
			return i
		}
	}
	return len(splits)
}

// SearchLiteral does a literal string search (no regexp).
func (i *Index) SearchLiteral(term string, threshold int) []*Result {
	term = strings.ToLower(term)
	buf := []*Result{}
	for name, p := range i.pkgs {
		line := strings.ToLower(name)
		if res := strings.Index(line, term); res != -1 {
			score := i.calcScore(res, line)
			if score <= threshold {
				buf = append(buf, &Result{Name: name, Score: score, Pkg: p})
			}
		}
	}
	return buf
}

// SearchRegexp searches using a regular expression.
func (i *Index) SearchRegexp(re string, threshold int) ([]*Result, error) {
	matcher, err := regexp.Compile(re)
	if err != nil {
		return []*Result{}, errors.Wrapf(err, "invalid regular expression %q", re)
	}
	buf := []*Result{}
	for name, p := range i.pkgs {
		if ind := matcher.FindStringIndex(name); len(ind) > 0 {
			score := i.calcScore(ind[0], name)
			if score <= threshold {
				buf = append(buf, &Result{Name: name, Score: score, Pkg: p})
			}
		}
	}
	return buf, nil
}

// SortScore does an in-place sort of the results.
//
// Lowest scores are highest on the list. Matching scores are subsorted
// alphabetically.
func SortScore(r []*Result) {
	sort.Sort(scoreSorter(r))
}

// scoreSorter sorts results by score, and subsorts by alpha Name.
type scoreSorter []*Result

// Len returns the length of this scoreSorter.
func (s scoreSorter) Len() int { return len(s) }

// Swap performs an in-place swap.
func (s scoreSorter) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

// Less compares a to b, and returns true if a is less than b.
func (s scoreSorter) Less(a, b int) bool {
	first := s[a]
	second := s[b]

	if first.Score > second.Score {
		return false
	}
	if first.Score < second.Score {
		return true
	}
	return first.Name < second.Name
}
