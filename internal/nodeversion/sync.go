package nodeversion

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/templatekit/versionsync/internal/versionfile"
)

// EngineKey is the key under "engines" holding the Node.js version.
const EngineKey = "node"

// Options configures a Sync run.
type Options struct {
	// MarkerPath is the .nvmrc file holding the canonical version.
	MarkerPath string
	// ManifestPath is the package.json declaring engines.node.
	ManifestPath string
	// DryRun reports drift without rewriting the manifest.
	DryRun bool
	// Logger receives progress messages. Nil discards them.
	Logger *log.Logger
}

// ReadMarker returns the trimmed version string stored in an .nvmrc file.
func ReadMarker(path string) (string, error) {
	version, err := versionfile.ReadTrimmed(path)
	if err != nil {
		return "", err
	}
	if version == "" {
		return "", fmt.Errorf("%w: %s is empty", versionfile.ErrNotFound, path)
	}
	return version, nil
}

// ReadEngineVersion parses a package.json and returns engines.node.
func ReadEngineVersion(path string) (string, error) {
	data, err := versionfile.Read(path)
	if err != nil {
		return "", err
	}
	return parseEngineVersion(data, path)
}

func parseEngineVersion(data []byte, path string) (string, error) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: parsing %s: %v", versionfile.ErrMalformedConfig, path, err)
	}

	issues, err := validate(inst)
	if err != nil {
		return "", err
	}
	if len(issues) > 0 {
		return "", fmt.Errorf("%w: %s: engines.%s: %s", versionfile.ErrMalformedConfig, path, EngineKey, joinIssues(issues))
	}

	// The schema guarantees engines is an object and engines.node a non-empty
	// string; sibling engines entries may hold any JSON value.
	doc, _ := inst.(map[string]any)
	engines, _ := doc["engines"].(map[string]any)
	version, ok := engines[EngineKey].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s: engines.%s is not a string", versionfile.ErrMalformedConfig, path, EngineKey)
	}
	return version, nil
}

// ReplaceEngineVersion swaps the first literal `"node": "<old>"` in text for
// `"node": "<new>"`. Other occurrences of the bare version are left alone.
func ReplaceEngineVersion(text, oldVersion, newVersion string) (string, error) {
	oldPattern := enginePattern(oldVersion)
	if !strings.Contains(text, oldPattern) {
		return "", fmt.Errorf("%w: %s", versionfile.ErrNotFound, oldPattern)
	}
	return strings.Replace(text, oldPattern, enginePattern(newVersion), 1), nil
}

func enginePattern(version string) string {
	return `"` + EngineKey + `": "` + version + `"`
}

// Sync brings engines.node in the manifest in line with the marker file.
// The manifest is only written when the versions differ and DryRun is unset.
func Sync(_ context.Context, opts Options) (*versionfile.Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	source, err := ReadMarker(opts.MarkerPath)
	if err != nil {
		return nil, fmt.Errorf("reading node version marker: %w", err)
	}

	raw, err := versionfile.Read(opts.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading node manifest: %w", err)
	}
	declared, err := parseEngineVersion(raw, opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	result := &versionfile.Result{Source: source, Declared: declared}
	logger.Debug("Compared node versions", "marker", source, "manifest", declared)

	if result.InSync() {
		logger.Info("Node version already in sync", "version", source)
		return result, nil
	}

	updated, err := ReplaceEngineVersion(string(raw), declared, source)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", opts.ManifestPath, err)
	}

	if opts.DryRun {
		logger.Warn("Node version out of sync", "manifest", opts.ManifestPath, "from", declared, "to", source)
		return result, nil
	}

	if err := versionfile.Write(opts.ManifestPath, []byte(updated)); err != nil {
		return nil, err
	}
	result.Written = true
	logger.Info("Updated node version", "manifest", opts.ManifestPath, "from", declared, "to", source, "change", result.Direction())

	return result, nil
}
