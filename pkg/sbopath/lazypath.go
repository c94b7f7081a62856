package sbopath

import (
	"os"
	"path/filepath"

	"github.com/rancher-sandbox/sbodeps/pkg/sbopath/xdg"
)

// lazypath is an lazy-loaded path buffer for the XDG base directory specification.
type lazypath string

func (l lazypath) path(envVar string, defaultFn func() string, elem ...string) string {
	// There is an order to checking for a path.
	// 1. See if an sbodeps specific environment variable has been set.
	// 2. Check if an XDG environment variable is set
	// 3. Fall back to a default
	base := os.Getenv(envVar)
	if base != "" {
		return filepath.Join(base, filepath.Join(elem...))
	}
	base = os.Getenv(xdgEnvVar(envVar))
	if base == "" {
		base = defaultFn()
	}
	return filepath.Join(base, string(l), filepath.Join(elem...))
}

// cachePath defines the base directory relative to which user specific non-essential data files
// should be stored.
func (l lazypath) cachePath(elem ...string) string {
	return l.path(CacheHomeEnvVar, cacheHome, filepath.Join(elem...))
}

// configPath defines the base directory relative to which user specific configuration files should
// be stored.
func (l lazypath) configPath(elem ...string) string {
	return l.path(ConfigHomeEnvVar, configHome, filepath.Join(elem...))
}

// dataPath defines the base directory relative to which user specific data files should be stored.
func (l lazypath) dataPath(elem ...string) string {
	return l.path(DataHomeEnvVar, dataHome, filepath.Join(elem...))
}

const (
	// CacheHomeEnvVar overrides the cache directory, without the XDG app suffix.
	CacheHomeEnvVar = "SBODEPS_CACHE_HOME"
	// ConfigHomeEnvVar overrides the config directory, without the XDG app suffix.
	ConfigHomeEnvVar = "SBODEPS_CONFIG_HOME"
	// DataHomeEnvVar overrides the data directory, without the XDG app suffix.
	DataHomeEnvVar = "SBODEPS_DATA_HOME"
)

func xdgEnvVar(envVar string) string {
	switch envVar {
	case CacheHomeEnvVar:
		return xdg.CacheHomeEnvVar
	case ConfigHomeEnvVar:
		return xdg.ConfigHomeEnvVar
	}
	return xdg.DataHomeEnvVar
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.TempDir()
}
