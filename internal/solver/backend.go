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

	gsolver "github.com/crillab/gophersat/solver"
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
)

// Backend is a boolean satisfiability solver over CNF formulas expressed as
// DIMACS-style clauses: variables are numbered from 1, a negative integer is
// a negated variable.
//
// If the formula is satisfiable, model[i] holds the value of variable i+1.
// The model may be shorter than the highest variable number when trailing
// variables appear in no clause; those are false.
type Backend interface {
	Solve(ctx context.Context, cnf [][]int) (model []bool, sat bool, err error)
}

const (
	BackendGophersat = "gophersat"
	BackendGini      = "gini"
)

// Backends lists the names accepted by NewBackend.
func Backends() []string {
	return []string{BackendGophersat, BackendGini}
}

// NewBackend returns the backend registered under name. An empty name gives
// the default backend.
func NewBackend(name string) (Backend, error) {
	switch name {
	case "", BackendGophersat:
		return &GophersatBackend{}, nil
	case BackendGini:
		return &GiniBackend{}, nil
	}
	return nil, errors.Errorf("unknown SAT backend %q", name)
}

// GophersatBackend solves with the gophersat CDCL solver.
type GophersatBackend struct{}

func (b *GophersatBackend) Solve(ctx context.Context, cnf [][]int) ([]bool, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if len(cnf) == 0 {
		return []bool{}, true, nil
	}

	s := gsolver.New(gsolver.ParseSlice(cnf))
	switch s.Solve() {
	case gsolver.Sat:
		return s.Model(), true, nil
	case gsolver.Unsat:
		return nil, false, nil
	}
	return nil, false, errors.New("gophersat could not decide the problem")
}

// GiniBackend solves with the gini solver.
type GiniBackend struct{}

func (b *GiniBackend) Solve(ctx context.Context, cnf [][]int) ([]bool, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	g := gini.New()
	nbVars := 0
	for _, clause := range cnf {
		for _, lit := range clause {
			g.Add(z.Dimacs2Lit(lit))
			if v := abs(lit); v > nbVars {
				nbVars = v
			}
		}
		// terminate clause
		g.Add(z.LitNull)
	}

	switch g.Solve() {
	case 1:
		model := make([]bool, nbVars)
		for v := 1; v <= nbVars; v++ {
			model[v-1] = g.Value(z.Dimacs2Lit(v))
		}
		return model, true, nil
	case -1:
		return nil, false, nil
	}
	return nil, false, errors.New("gini could not decide the problem")
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
