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
	"time"
)

// PlanItem is a package of an installation plan.
type PlanItem struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
	// InstalledVersion is empty for packages to install
	InstalledVersion string `json:"installed_version,omitempty" yaml:"installed_version,omitempty"`
}

// InstallationPlan partitions resolved packages by what installing them
// takes. Each partition keeps the installation order.
type InstallationPlan struct {
	ToInstall        []PlanItem `json:"to_install" yaml:"to_install"`
	ToUpgrade        []PlanItem `json:"to_upgrade" yaml:"to_upgrade"`
	AlreadyInstalled []PlanItem `json:"already_installed" yaml:"already_installed"`

	// InstalledAt is when the installed packages were read
	InstalledAt time.Time `json:"-" yaml:"-"`
}

// Empty reports whether the plan has nothing to install nor upgrade.
func (p *InstallationPlan) Empty() bool {
	return len(p.ToInstall) == 0 && len(p.ToUpgrade) == 0
}

// Plan is the action for planning the installation of packages.
type Plan struct {
	cfg *Configuration

	// Compare compares catalog and installed versions. Nil means Lexical.
	Compare VersionComparator
}

// NewPlan constructs a new *Plan
func NewPlan(cfg *Configuration) *Plan {
	return &Plan{
		cfg:     cfg,
		Compare: Lexical,
	}
}

// Run resolves names with strategy, and compares the result against the
// installed packages: packages not installed are to install, packages whose
// database version is newer than the installed one are to upgrade, and the
// rest are already installed.
func (p *Plan) Run(ctx context.Context, strategy Strategy, names []string) (*InstallationPlan, error) {
	order, err := p.cfg.resolve(ctx, strategy, names)
	if err != nil {
		return nil, err
	}

	installed, at, err := p.cfg.InstalledPackages(ctx)
	if err != nil {
		return nil, err
	}

	compare := p.Compare
	if compare == nil {
		compare = Lexical
	}

	plan := &InstallationPlan{
		ToInstall:        []PlanItem{},
		ToUpgrade:        []PlanItem{},
		AlreadyInstalled: []PlanItem{},
		InstalledAt:      at,
	}
	for _, name := range order {
		item := PlanItem{Name: name, Version: p.cfg.DB.Get(name).Version}
		info, ok := installed[name]
		switch {
		case !ok:
			plan.ToInstall = append(plan.ToInstall, item)
		case compare(item.Version, info.Version) > 0:
			item.InstalledVersion = info.Version
			plan.ToUpgrade = append(plan.ToUpgrade, item)
		default:
			item.InstalledVersion = info.Version
			plan.AlreadyInstalled = append(plan.AlreadyInstalled, item)
		}
	}
	p.cfg.logger().Debugf("plan: %d to install, %d to upgrade, %d already installed",
		len(plan.ToInstall), len(plan.ToUpgrade), len(plan.AlreadyInstalled))
	return plan, nil
}
