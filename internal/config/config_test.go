package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestDefaults(t *testing.T) {
	c := New()
	require.NoError(t, c.Load(""))

	assert.Equal(t, ".", c.Root())
	assert.Equal(t, filepath.Join("template", ".nvmrc"), c.Path(KeyNodeMarker))
	assert.Equal(t, "pyproject.toml", c.Path(KeyRuffManifest))
	assert.Equal(t, "ruff", c.Get(KeyRuffPackage))
	assert.Equal(t, []string{"uv", "lock", "--no-upgrade"}, c.Strings(KeyRuffLockCommand))
}

func TestPath_ResolvesAgainstRoot(t *testing.T) {
	root := t.TempDir()
	c := New()
	c.v.Set(KeyRoot, root)

	assert.Equal(t, filepath.Join(root, "template", "package.json"), c.Path(KeyNodeManifest))

	abs := filepath.Join(t.TempDir(), "package.json")
	c.v.Set(KeyNodeManifest, abs)
	assert.Equal(t, abs, c.Path(KeyNodeManifest))
}

func TestLoad_ProjectFile(t *testing.T) {
	root := t.TempDir()
	content := "ruff:\n  package: black\n  lock_command: [poetry, lock]\nnode:\n  marker: .node-version\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".versionsync.yaml"), []byte(content), 0644))

	c := New()
	c.v.Set(KeyRoot, root)
	require.NoError(t, c.Load(""))

	assert.Equal(t, "black", c.Get(KeyRuffPackage))
	assert.Equal(t, []string{"poetry", "lock"}, c.Strings(KeyRuffLockCommand))
	assert.Equal(t, filepath.Join(root, ".node-version"), c.Path(KeyNodeMarker))
	assert.Equal(t, filepath.Join(root, "pyproject.toml"), c.Path(KeyRuffManifest))
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	c := New()
	err := c.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ruff: [unterminated\n"), 0644))

	c := New()
	assert.Error(t, c.Load(path))
}

func TestEnvOverridesFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".versionsync.yaml"), []byte("ruff:\n  package: black\n"), 0644))
	t.Setenv("VERSIONSYNC_RUFF_PACKAGE", "isort")
	t.Setenv("VERSIONSYNC_ROOT", root)

	c := New()
	require.NoError(t, c.Load(""))

	assert.Equal(t, root, c.Root())
	assert.Equal(t, "isort", c.Get(KeyRuffPackage))
}

func TestFlagOverridesEnv(t *testing.T) {
	t.Setenv("VERSIONSYNC_RUFF_PACKAGE", "isort")
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("package", "", "")
	require.NoError(t, fs.Parse([]string{"--package", "mypy"}))

	c := New()
	require.NoError(t, c.BindFlag(KeyRuffPackage, fs.Lookup("package")))
	assert.Equal(t, "mypy", c.Get(KeyRuffPackage))

	assert.Error(t, c.BindFlag(KeyRuffListing, fs.Lookup("listing")))
}

func TestSet_WritesOnlyTheKey(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ".versionsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte("node:\n  marker: .node-version\n"), 0644))

	c := New()
	c.v.Set(KeyRoot, root)
	require.NoError(t, c.Load(""))
	require.NoError(t, c.Set(KeyRuffLockCommand, "uv lock"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var written map[string]map[string]any
	require.NoError(t, yaml.Unmarshal(data, &written))

	assert.Equal(t, ".node-version", written["node"]["marker"])
	assert.Equal(t, []any{"uv", "lock"}, written["ruff"]["lock_command"])
	assert.NotContains(t, written["ruff"], "package", "defaults must not be persisted")
	assert.Equal(t, []string{"uv", "lock"}, c.Strings(KeyRuffLockCommand))
}

func TestSet_UnknownKey(t *testing.T) {
	c := New()
	c.v.Set(KeyRoot, t.TempDir())
	assert.Error(t, c.Set("node.version", "20"))
}
