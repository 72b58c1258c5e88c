package versionfile

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Change directions reported by Direction.
const (
	Unchanged = "unchanged"
	Upgrade   = "upgrade"
	Downgrade = "downgrade"
	Changed   = "changed"
)

// Direction describes how moving from old to new changes the version.
// Strings that are not valid semver (e.g. "lts/iron") are reported as Changed.
func Direction(old, new string) string {
	if old == new {
		return Unchanged
	}
	ov, err := parseSemver(old)
	if err != nil {
		return Changed
	}
	nv, err := parseSemver(new)
	if err != nil {
		return Changed
	}
	switch ov.Compare(nv) {
	case -1:
		return Upgrade
	case 1:
		return Downgrade
	default:
		return Changed
	}
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}

// Result reports the outcome of one synchronization run.
type Result struct {
	// Source is the version read from the authoritative file.
	Source string
	// Declared is the version the manifest held before the run.
	Declared string
	// Written is true when the manifest was rewritten.
	Written bool
}

// InSync reports whether the manifest already matched the source.
func (r *Result) InSync() bool { return r.Source == r.Declared }

// Direction describes the change from the declared to the source version.
func (r *Result) Direction() string { return Direction(r.Declared, r.Source) }
