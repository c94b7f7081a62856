// +build darwin

package sbopath

import "path/filepath"

func dataHome() string {
	return filepath.Join(homeDir(), "Library")
}

func configHome() string {
	return filepath.Join(homeDir(), "Library", "Preferences")
}

func cacheHome() string {
	return filepath.Join(homeDir(), "Library", "Caches")
}
