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

/*Package cli describes the operating environment for the sbodeps CLI.

Settings come, by increasing precedence, from built-in defaults, the YAML
configuration file, SBODEPS_* environment variables and command line flags.
*/
package cli

import (
	"io/ioutil"
	"os"
	"strconv"

	"github.com/Masterminds/log-go"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"sigs.k8s.io/yaml"

	"github.com/rancher-sandbox/sbodeps/pkg/sbopath"
)

const (
	// DefaultIndexURL is the SLACKBUILDS.TXT index looked up for packages
	// missing from both the database and the local tree.
	DefaultIndexURL = "https://slackbuilds.org/slackbuilds/15.0/SLACKBUILDS.TXT"
	// DefaultInstalledDir is where Slackware records installed packages.
	DefaultInstalledDir = "/var/log/packages"
	// DefaultTreeRepo is the git repository of the SlackBuilds tree.
	DefaultTreeRepo = "https://git.slackbuilds.org/slackbuilds.git"
)

// EnvSettings describes all of the environment settings.
type EnvSettings struct {
	Debug    bool
	NoColors bool
	NoEmojis bool

	// ConfigFile is the path of the YAML configuration file
	ConfigFile string
	// Database is the path of the package database (JSON)
	Database string
	// Tree is the path of the local SlackBuilds tree
	Tree string
	// TreeRepo is the remote the tree is synced from
	TreeRepo string
	// IndexURL is the remote SLACKBUILDS.TXT, empty to disable
	IndexURL string
	// InstalledDir is the installed packages log directory
	InstalledDir string
	// Strategy is the default resolution strategy
	Strategy string
	// SATBackend names the SAT solver used by the sat strategy
	SATBackend string
	// Semver compares versions as semantic versions when planning
	Semver bool
}

// fileSettings is the shape of the configuration file. Unset fields keep
// the defaults.
type fileSettings struct {
	Database     string  `json:"database,omitempty"`
	Tree         string  `json:"tree,omitempty"`
	TreeRepo     string  `json:"tree_repo,omitempty"`
	IndexURL     *string `json:"index_url,omitempty"`
	InstalledDir string  `json:"installed_dir,omitempty"`
	Strategy     string  `json:"strategy,omitempty"`
	SATBackend   string  `json:"sat_backend,omitempty"`
	Semver       *bool   `json:"semver,omitempty"`
	NoColors     *bool   `json:"nocolor,omitempty"`
	NoEmojis     *bool   `json:"noemojis,omitempty"`
}

// New returns the settings from defaults, the configuration file and the
// environment. A configuration file that can't be parsed is reported and
// ignored.
func New() *EnvSettings {
	env := &EnvSettings{
		ConfigFile:   envOr("SBODEPS_CONFIG", sbopath.ConfigFile()),
		Database:     sbopath.DatabaseFile(),
		Tree:         sbopath.TreePath(),
		TreeRepo:     DefaultTreeRepo,
		IndexURL:     DefaultIndexURL,
		InstalledDir: DefaultInstalledDir,
		Strategy:     "sat",
		SATBackend:   "gophersat",
	}
	if err := env.LoadConfigFile(env.ConfigFile); err != nil {
		log.Warnf("ignoring configuration file: %s", err)
	}

	env.Debug = envBoolOr("SBODEPS_DEBUG", env.Debug)
	env.NoColors = envBoolOr("SBODEPS_NOCOLORS", env.NoColors)
	env.NoEmojis = envBoolOr("SBODEPS_NOEMOJIS", env.NoEmojis)
	env.Semver = envBoolOr("SBODEPS_SEMVER", env.Semver)
	env.Database = envOr("SBODEPS_DATABASE", env.Database)
	env.Tree = envOr("SBODEPS_TREE", env.Tree)
	env.TreeRepo = envOr("SBODEPS_TREE_REPO", env.TreeRepo)
	env.InstalledDir = envOr("SBODEPS_INSTALLED_DIR", env.InstalledDir)
	env.Strategy = envOr("SBODEPS_STRATEGY", env.Strategy)
	env.SATBackend = envOr("SBODEPS_SAT_BACKEND", env.SATBackend)
	if v, ok := os.LookupEnv("SBODEPS_INDEX_URL"); ok {
		env.IndexURL = v
	}
	return env
}

// LoadConfigFile overrides the settings with the ones found in path. A
// missing file is not an error.
func (s *EnvSettings) LoadConfigFile(path string) error {
	b, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "couldn't load configuration file (%s)", path)
	}

	var f fileSettings
	if err := yaml.UnmarshalStrict(b, &f); err != nil {
		return errors.Wrapf(err, "couldn't parse configuration file (%s)", path)
	}

	setString(&s.Database, f.Database)
	setString(&s.Tree, f.Tree)
	setString(&s.TreeRepo, f.TreeRepo)
	setString(&s.InstalledDir, f.InstalledDir)
	setString(&s.Strategy, f.Strategy)
	setString(&s.SATBackend, f.SATBackend)
	if f.IndexURL != nil {
		s.IndexURL = *f.IndexURL
	}
	setBool(&s.Semver, f.Semver)
	setBool(&s.NoColors, f.NoColors)
	setBool(&s.NoEmojis, f.NoEmojis)
	return nil
}

// AddFlags binds flags to the given flagset.
func (s *EnvSettings) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&s.Debug, "debug", s.Debug, "enable verbose output")
	fs.BoolVar(&s.NoColors, "nocolor", s.NoColors, "disable colorized output")
	fs.BoolVar(&s.NoEmojis, "noemojis", s.NoEmojis, "disable emojis in output")
	fs.StringVar(&s.Database, "database", s.Database, "path to the package database")
	fs.StringVar(&s.Tree, "tree", s.Tree, "path to the local SlackBuilds tree")
	fs.StringVar(&s.IndexURL, "index-url", s.IndexURL, "URL of the SLACKBUILDS.TXT index used to discover packages, empty to disable")
	fs.StringVar(&s.InstalledDir, "installed-dir", s.InstalledDir, "directory recording installed packages")
	fs.StringVar(&s.SATBackend, "sat-backend", s.SATBackend, "SAT solver used by the sat strategy (gophersat, gini)")
	fs.BoolVar(&s.Semver, "semver", s.Semver, "compare versions as semantic versions when planning upgrades")
}

// EnvVars returns the environment variables the settings can be read from,
// with their current values.
func (s *EnvSettings) EnvVars() map[string]string {
	return map[string]string{
		"SBODEPS_CONFIG":        s.ConfigFile,
		"SBODEPS_DEBUG":         strconv.FormatBool(s.Debug),
		"SBODEPS_NOCOLORS":      strconv.FormatBool(s.NoColors),
		"SBODEPS_NOEMOJIS":      strconv.FormatBool(s.NoEmojis),
		"SBODEPS_SEMVER":        strconv.FormatBool(s.Semver),
		"SBODEPS_DATABASE":      s.Database,
		"SBODEPS_TREE":          s.Tree,
		"SBODEPS_TREE_REPO":     s.TreeRepo,
		"SBODEPS_INDEX_URL":     s.IndexURL,
		"SBODEPS_INSTALLED_DIR": s.InstalledDir,
		"SBODEPS_STRATEGY":      s.Strategy,
		"SBODEPS_SAT_BACKEND":   s.SATBackend,
	}
}

// ColorsDisabled reports whether output must not be colorized: either it
// was asked for, or out is not a terminal.
func (s *EnvSettings) ColorsDisabled(out *os.File) bool {
	return s.NoColors || out == nil || !term.IsTerminal(int(out.Fd()))
}

func envOr(name, def string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return def
}

func envBoolOr(name string, def bool) bool {
	if name == "" {
		return def
	}
	envVal, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	ret, err := strconv.ParseBool(envVal)
	if err != nil {
		return def
	}
	return ret
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
