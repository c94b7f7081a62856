// +build windows

package sbopath

import (
	"os"
	"path/filepath"
)

// The package database and the tree are machine local, only the
// configuration roams.
func dataHome() string { return localAppData() }

func configHome() string { return os.Getenv("APPDATA") }

func cacheHome() string { return filepath.Join(localAppData(), "cache") }

func localAppData() string {
	if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
		return dir
	}
	return os.Getenv("APPDATA")
}
