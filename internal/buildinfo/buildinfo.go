// Package buildinfo holds the version, commit and date injected via ldflags
// and derives the canonical semver and User-Agent string from them.
package buildinfo

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/tellnet/tellnet/internal/branding"
)

// devVersion stands in for builds whose version is not valid semver ("dev").
const devVersion = "0.0.0-dev"

// Info describes the running binary.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// New returns build info for the given ldflags values.
func New(version, commit, date string) Info {
	return Info{Version: version, Commit: commit, Date: date}
}

// Semver returns the version normalized to semver without a "v" prefix.
// Versions that do not parse are reported as 0.0.0-dev.
func (i Info) Semver() string {
	v, err := parseSemver(i.Version)
	if err != nil {
		return devVersion
	}
	return v.String()
}

// UserAgent returns the User-Agent header value for remote calls.
func (i Info) UserAgent() string {
	return fmt.Sprintf("%s-cli/%s", branding.CLIName(), i.Semver())
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
