// Package misc keeps build time information.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

// Set with -ldflags "-X onixp/misc.version=... -X onixp/misc.gitHash=..."
var (
	version = "dev"
	gitHash = "unknown"
	appName = ""
)

// GetVersion returns program version.
func GetVersion() string {
	return version
}

// GetGitHash returns commit hash program was built from.
func GetGitHash() string {
	return gitHash
}

// GetAppName returns program name, either set at build time or derived from
// executable name.
func GetAppName() string {
	if len(appName) > 0 {
		return appName
	}
	return strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))
}
