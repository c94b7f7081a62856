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

package pkg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Pkg is the minimum object the solver reasons about: a package name, its
// version, the names of the packages it requires and, optionally, the base
// package it is an alternative build of.
//
// Note that each package is unique by name. Several alternative builds of the
// same component (e.g: openssl-1.1 and openssl-3.0) are different packages
// that share a BasePackage, and at most one of them can be selected.
type Pkg struct {
	Name        string   `json:"name" yaml:"name"`
	Version     string   `json:"version" yaml:"version"`
	Requires    []string `json:"requires" yaml:"requires"`
	BasePackage string   `json:"base_package,omitempty" yaml:"base_package,omitempty"`
}

var (
	ErrNoName = errors.New("package has no name")
)

// NewPkg creates a package. Requirements are de-duplicated, keeping the first
// occurrence of each name.
func NewPkg(name, version string, requires []string, base string) *Pkg {
	return &Pkg{
		Name:        name,
		Version:     version,
		Requires:    dedup(requires),
		BasePackage: base,
	}
}

// NewPkgMock creates a package with a fixed version.
// Useful for testing.
func NewPkgMock(name string, requires ...string) *Pkg {
	return NewPkg(name, "1.0", requires, "")
}

// WithBase sets the base package of p and returns it, for chaining.
func (p *Pkg) WithBase(base string) *Pkg {
	p.BasePackage = base
	return p
}

// Validate checks that p is well formed: it has a name, and every
// requirement is a non-empty name. A package requiring itself is well formed,
// the resolvers report it as a cycle.
func (p *Pkg) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNoName
	}
	for _, r := range p.Requires {
		if strings.TrimSpace(r) == "" {
			return errors.Errorf("package %q has an empty requirement", p.Name)
		}
	}
	return nil
}

// HasBase reports whether p is an alternative build of some base package.
func (p *Pkg) HasBase() bool {
	return p.BasePackage != ""
}

// Copy returns a deep copy of p.
func (p *Pkg) Copy() *Pkg {
	c := *p
	c.Requires = append([]string(nil), p.Requires...)
	return &c
}

func (p *Pkg) String() string {
	if p.HasBase() {
		return fmt.Sprintf("%s-%s (%s)", p.Name, p.Version, p.BasePackage)
	}
	return fmt.Sprintf("%s-%s", p.Name, p.Version)
}

// JSON serializes package p into JSON, returning a []byte
func (p *Pkg) JSON() ([]byte, error) {
	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	err := encoder.Encode(p)
	return buffer.Bytes(), err
}

func dedup(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
