// Package sbopath calculates filesystem paths to sbodeps' configuration, cache and data.
package sbopath

// This helper builds paths to sbodeps' configuration, cache and data paths.
const lp = lazypath("sbodeps")

// ConfigPath returns the path where sbodeps stores configuration.
func ConfigPath(elem ...string) string { return lp.configPath(elem...) }

// CachePath returns the path where sbodeps stores cached objects.
func CachePath(elem ...string) string { return lp.cachePath(elem...) }

// DataPath returns the path where sbodeps stores data.
func DataPath(elem ...string) string { return lp.dataPath(elem...) }

// ConfigFile returns the path to the configuration file.
func ConfigFile() string { return ConfigPath("config.yaml") }

// DatabaseFile returns the default path of the package database.
func DatabaseFile() string { return DataPath("packages.json") }

// TreePath returns the default path of the SlackBuilds tree checkout.
func TreePath() string { return DataPath("slackbuilds") }

// CacheIndexFile returns the path to the cached copy of the remote index.
func CacheIndexFile() string { return CachePath("SLACKBUILDS.TXT") }
