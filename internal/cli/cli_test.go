package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templatekit/versionsync/internal/runner"
	"github.com/templatekit/versionsync/internal/versionfile"
)

type countingRunner struct {
	calls []string
	dirs  []string
}

func (r *countingRunner) Run(_ context.Context, dir string, argv []string) (*runner.Output, error) {
	r.calls = append(r.calls, strings.Join(argv, " "))
	r.dirs = append(r.dirs, dir)
	return &runner.Output{ExitCode: 1}, nil
}

// newProject lays out a template repo whose pins are out of date.
func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"template/.nvmrc":                 "18.20.4\n",
		"template/package.json":           "{\n  \"engines\": {\n    \"node\": \"18.19.0\"\n  }\n}\n",
		"template/requirements/local.txt": "ruff==0.4.2 \\\n    --hash=sha256:abc\n",
		"pyproject.toml":                  "[project]\ndependencies = [\n  \"ruff==0.4.1\",\n]\n",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func run(t *testing.T, r runner.Runner, args ...string) (string, error) {
	t.Helper()
	var stdout bytes.Buffer
	cmd := NewRootCmd(Dependencies{
		Build:  BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"},
		Logger: log.New(io.Discard),
		Runner: r,
		Stdout: &stdout,
	})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func readFile(t *testing.T, root, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, name))
	require.NoError(t, err)
	return string(data)
}

func TestNodeCommand(t *testing.T) {
	root := newProject(t)

	_, err := run(t, &countingRunner{}, "node", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, readFile(t, root, "template/package.json"), `"node": "18.20.4"`)
}

func TestNodeCommand_MissingMarker(t *testing.T) {
	root := newProject(t)
	require.NoError(t, os.Remove(filepath.Join(root, "template", ".nvmrc")))

	_, err := run(t, &countingRunner{}, "node", "--root", root)
	assert.ErrorIs(t, err, versionfile.ErrMissingFile)
}

func TestRuffCommand_LocksOnceFromRoot(t *testing.T) {
	root := newProject(t)
	r := &countingRunner{}

	_, err := run(t, r, "ruff", "--root", root)
	require.NoError(t, err, "a failing lock command must not fail the run")

	assert.Contains(t, readFile(t, root, "pyproject.toml"), `"ruff==0.4.2"`)
	assert.Equal(t, []string{"uv lock --no-upgrade"}, r.calls)
	assert.Equal(t, []string{root}, r.dirs)

	_, err = run(t, r, "ruff", "--root", root)
	require.NoError(t, err)
	assert.Len(t, r.calls, 1, "second run is a no-op")
}

func TestRuffCommand_SkipLock(t *testing.T) {
	root := newProject(t)
	r := &countingRunner{}

	_, err := run(t, r, "ruff", "--root", root, "--skip-lock")
	require.NoError(t, err)
	assert.Empty(t, r.calls)
}

func TestAllCommand_Check(t *testing.T) {
	root := newProject(t)
	r := &countingRunner{}
	before := readFile(t, root, "pyproject.toml")

	_, err := run(t, r, "all", "--check", "--root", root)
	require.Error(t, err)
	assert.ErrorIs(t, err, versionfile.ErrOutOfSync)
	assert.Equal(t, before, readFile(t, root, "pyproject.toml"))
	assert.Empty(t, r.calls)

	_, err = run(t, r, "all", "--root", root)
	require.NoError(t, err)

	_, err = run(t, r, "all", "--check", "--root", root)
	assert.NoError(t, err)
}

func TestConfigFileRedirectsPaths(t *testing.T) {
	root := newProject(t)
	require.NoError(t, os.Rename(
		filepath.Join(root, "template", ".nvmrc"),
		filepath.Join(root, "template", ".node-version"),
	))

	_, err := run(t, &countingRunner{}, "config", "set", "node.marker", "template/.node-version", "--root", root)
	require.NoError(t, err)

	out, err := run(t, &countingRunner{}, "config", "get", "node.marker", "--root", root)
	require.NoError(t, err)
	assert.Equal(t, "template/.node-version\n", out)

	_, err = run(t, &countingRunner{}, "node", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, readFile(t, root, "template/package.json"), `"node": "18.20.4"`)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, nil, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)

	out, err = run(t, nil, "version", "--json")
	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "abc123", info["commit"])
}

func TestRootFlagHelpNamesEnvVar(t *testing.T) {
	cmd := NewRootCmd(Dependencies{Logger: log.New(io.Discard), Stdout: io.Discard})
	flag := cmd.PersistentFlags().Lookup("root")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "VERSIONSYNC_ROOT")
}
