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

package discovery

import (
	"context"

	"github.com/pkg/errors"

	"github.com/rancher-sandbox/sbodeps/internal/pkg"
)

// ErrSourceUnavailable is matched by errors.Is when a definition source could
// not be reached or read.
var ErrSourceUnavailable = errors.New("package definition source unavailable")

// Source looks up package definitions outside of the catalog.
//
// FindDefinition returns nil and no error when the source has no definition
// for name.
type Source interface {
	FindDefinition(ctx context.Context, name string) (*pkg.Pkg, error)
}

// SourceError is returned when a source fails while looking up Name.
type SourceError struct {
	Name string
	Err  error
}

func (e *SourceError) Error() string {
	return "cannot look up the definition of '" + e.Name + "': " + e.Err.Error()
}

func (e *SourceError) Unwrap() error { return e.Err }

// Is makes every SourceError match ErrSourceUnavailable.
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// MultiSource queries its sources in order and returns the first definition
// found. A failing source does not stop the lookup; its error is only
// returned if no later source has the definition.
type MultiSource []Source

func (m MultiSource) FindDefinition(ctx context.Context, name string) (*pkg.Pkg, error) {
	var firstErr error
	for _, s := range m {
		p, err := s.FindDefinition(ctx, name)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if p != nil {
			return p, nil
		}
	}
	return nil, firstErr
}
