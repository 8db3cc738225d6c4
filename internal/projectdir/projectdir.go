// Package projectdir resolves the platform-convention directories that hold
// an application's configuration and preference files.
//
// Directories are derived from an application identity (qualifier,
// organization, application name) following each platform's conventions,
// with the base locations supplied by github.com/adrg/xdg:
//
//   - Linux and other Unixes: $XDG_CONFIG_HOME/<application>, where the
//     application name is lowercased and spaces are removed.
//   - macOS: ~/Library/Application Support/<bundle identifier> for
//     configuration and ~/Library/Preferences/<bundle identifier> for
//     preferences, where the bundle identifier joins the non-empty identity
//     parts with dots and replaces interior spaces with dashes.
//   - Windows: <config home>\<Organization>\<Application>\config.
//
// Base directories are read from the xdg package at call time, so tests may
// change the environment and call xdg.Reload.
package projectdir

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// Sentinel errors for project directory resolution.
var (
	// ErrEmptyApplication indicates the identity carries no application name.
	ErrEmptyApplication = errors.New("empty application name")

	// ErrNoBaseDirectory indicates the platform offers no usable base
	// directory, typically because no home directory can be determined.
	ErrNoBaseDirectory = errors.New("no base directory for this platform")
)

// Config returns the directory where the platform expects the application's
// configuration files to live.
func Config(qualifier, organization, application string) (string, error) {
	return resolve(qualifier, organization, application, false)
}

// Preference returns the directory where the platform expects the
// application's preference files to live. On every platform except macOS
// this is the directory returned by [Config].
func Preference(qualifier, organization, application string) (string, error) {
	return resolve(qualifier, organization, application, true)
}

func resolve(qualifier, organization, application string, preference bool) (string, error) {
	if strings.TrimSpace(application) == "" {
		return "", ErrEmptyApplication
	}

	switch runtime.GOOS {
	case "darwin":
		bundle := bundleIdentifier(qualifier, organization, application)
		if preference {
			if xdg.Home == "" {
				return "", ErrNoBaseDirectory
			}
			return filepath.Join(xdg.Home, "Library", "Preferences", bundle), nil
		}
		if xdg.ConfigHome == "" {
			return "", ErrNoBaseDirectory
		}
		return filepath.Join(xdg.ConfigHome, bundle), nil
	case "windows":
		if xdg.ConfigHome == "" {
			return "", ErrNoBaseDirectory
		}
		org := strings.TrimSpace(organization)
		app := strings.TrimSpace(application)
		return filepath.Join(xdg.ConfigHome, org, app, "config"), nil
	default:
		if xdg.ConfigHome == "" {
			return "", ErrNoBaseDirectory
		}
		return filepath.Join(xdg.ConfigHome, unixName(application)), nil
	}
}

// unixName flattens an application name into the conventional XDG directory
// spelling: lowercased with spaces removed.
func unixName(application string) string {
	return strings.ReplaceAll(strings.ToLower(application), " ", "")
}

// bundleIdentifier joins the non-empty identity parts into a macOS bundle
// identifier, e.g. ("org", "Foo Corp", "Bar App") -> "org.Foo-Corp.Bar-App".
func bundleIdentifier(qualifier, organization, application string) string {
	var parts []string
	for _, part := range []string{qualifier, organization, application} {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		parts = append(parts, strings.ReplaceAll(part, " ", "-"))
	}
	return strings.Join(parts, ".")
}
