// +build !windows,!darwin

package sbopath

import (
	"os"
	"runtime"
	"testing"

	"github.com/rancher-sandbox/sbodeps/pkg/sbopath/xdg"
)

func TestSbodepsHome(t *testing.T) {
	for _, e := range []string{CacheHomeEnvVar, ConfigHomeEnvVar, DataHomeEnvVar} {
		os.Unsetenv(e)
	}
	os.Setenv(xdg.CacheHomeEnvVar, "/cache")
	os.Setenv(xdg.ConfigHomeEnvVar, "/config")
	os.Setenv(xdg.DataHomeEnvVar, "/data")
	isEq := func(t *testing.T, got, expected string) {
		t.Helper()
		if expected != got {
			t.Error(runtime.GOOS)
			t.Errorf("Expected %q, got %q", expected, got)
		}
	}

	isEq(t, CachePath(), "/cache/sbodeps")
	isEq(t, ConfigPath(), "/config/sbodeps")
	isEq(t, DataPath(), "/data/sbodeps")
	isEq(t, ConfigFile(), "/config/sbodeps/config.yaml")
	isEq(t, DatabaseFile(), "/data/sbodeps/packages.json")
	isEq(t, TreePath(), "/data/sbodeps/slackbuilds")
	isEq(t, CacheIndexFile(), "/cache/sbodeps/SLACKBUILDS.TXT")

	// test to see if lazy-loading environment variables at runtime works
	os.Setenv(xdg.CacheHomeEnvVar, "/cache2")

	isEq(t, CachePath(), "/cache2/sbodeps")

	// sbodeps specific variables win over XDG ones
	os.Setenv(DataHomeEnvVar, "/srv/sbodeps")
	defer os.Unsetenv(DataHomeEnvVar)

	isEq(t, DatabaseFile(), "/srv/sbodeps/packages.json")
}

func TestDefaultsUnderHome(t *testing.T) {
	for _, e := range []string{CacheHomeEnvVar, ConfigHomeEnvVar, DataHomeEnvVar,
		xdg.CacheHomeEnvVar, xdg.ConfigHomeEnvVar, xdg.DataHomeEnvVar} {
		os.Unsetenv(e)
	}
	os.Setenv("HOME", "/home/slacker")

	if got := ConfigPath(); got != "/home/slacker/.config/sbodeps" {
		t.Errorf("Expected %q, got %q", "/home/slacker/.config/sbodeps", got)
	}
	if got := CachePath("x"); got != "/home/slacker/.cache/sbodeps/x" {
		t.Errorf("Expected %q, got %q", "/home/slacker/.cache/sbodeps/x", got)
	}
	if got := DataPath(); got != "/home/slacker/.local/share/sbodeps" {
		t.Errorf("Expected %q, got %q", "/home/slacker/.local/share/sbodeps", got)
	}
}
