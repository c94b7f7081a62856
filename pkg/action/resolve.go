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
)

// Resolve is the action for computing the installation order of packages.
type Resolve struct {
	cfg *Configuration
}

// NewResolve constructs a new *Resolve
func NewResolve(cfg *Configuration) *Resolve {
	return &Resolve{
		cfg: cfg,
	}
}

// Run returns names plus everything they require, in installation order:
// every package comes after its requirements. Packages missing from the
// database are discovered first.
func (r *Resolve) Run(ctx context.Context, strategy Strategy, names []string) ([]string, error) {
	return r.cfg.resolve(ctx, strategy, names)
}
