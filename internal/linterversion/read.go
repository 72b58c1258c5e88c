package linterversion

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"

	"github.com/templatekit/versionsync/internal/versionfile"
)

const pinSeparator = "=="

type pyproject struct {
	Project *struct {
		Dependencies *[]string `toml:"dependencies"`
	} `toml:"project"`
}

// ReadLockedVersion scans a requirements listing for the first line whose
// leading token is `<pkg>==<version>` and returns the version.
func ReadLockedVersion(path, pkg string) (string, error) {
	data, err := versionfile.Read(path)
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name, version, found := strings.Cut(fields[0], pinSeparator)
		if !found || name != pkg {
			continue
		}
		if version = trimVersion(version); version != "" {
			return version, nil
		}
	}
	return "", fmt.Errorf("%w: could not find %s version in %s", versionfile.ErrNotFound, pkg, path)
}

// ReadPinnedVersion parses pyproject.toml and returns the version pinned by
// the first project.dependencies entry starting with `<pkg>==`.
func ReadPinnedVersion(path, pkg string) (string, error) {
	data, err := versionfile.Read(path)
	if err != nil {
		return "", err
	}
	return parsePinnedVersion(data, path, pkg)
}

func parsePinnedVersion(data []byte, path, pkg string) (string, error) {
	var doc pyproject
	if err := toml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("%w: parsing %s: %v", versionfile.ErrMalformedConfig, path, err)
	}
	if doc.Project == nil || doc.Project.Dependencies == nil {
		return "", fmt.Errorf("%w: %s has no project.dependencies", versionfile.ErrMalformedConfig, path)
	}

	prefix := pkg + pinSeparator
	dependency, ok := lo.Find(*doc.Project.Dependencies, func(dep string) bool {
		return strings.HasPrefix(strings.TrimSpace(dep), prefix)
	})
	if !ok {
		return "", fmt.Errorf("%w: could not find %s version in %s", versionfile.ErrNotFound, pkg, path)
	}

	version := trimVersion(strings.TrimPrefix(strings.TrimSpace(dependency), prefix))
	if version == "" {
		return "", fmt.Errorf("%w: %s pin in %s has no version", versionfile.ErrNotFound, pkg, path)
	}
	return version, nil
}

// trimVersion drops environment markers and anything after whitespace.
func trimVersion(s string) string {
	if i := strings.IndexAny(s, " \t;,"); i >= 0 {
		s = s[:i]
	}
	return s
}
