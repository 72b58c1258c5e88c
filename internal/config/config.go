package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/templatekit/versionsync/internal/branding"
)

const fileType = "yaml"

// Setting keys.
const (
	KeyRoot            = "root"
	KeyNodeMarker      = "node.marker"
	KeyNodeManifest    = "node.manifest"
	KeyRuffPackage     = "ruff.package"
	KeyRuffListing     = "ruff.listing"
	KeyRuffManifest    = "ruff.manifest"
	KeyRuffLockCommand = "ruff.lock_command"
)

var defaults = map[string]any{
	KeyRoot:            ".",
	KeyNodeMarker:      filepath.Join("template", ".nvmrc"),
	KeyNodeManifest:    filepath.Join("template", "package.json"),
	KeyRuffPackage:     "ruff",
	KeyRuffListing:     filepath.Join("template", "requirements", "local.txt"),
	KeyRuffManifest:    "pyproject.toml",
	KeyRuffLockCommand: []string{"uv", "lock", "--no-upgrade"},
}

// Config layers flags over environment over the project config file over defaults.
type Config struct {
	v    *viper.Viper
	file string
}

// New returns a Config holding defaults and reading VERSIONSYNC_* env vars.
func New() *Config {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Config{v: v}
}

// BindFlag makes a command-line flag override key when it is set.
func (c *Config) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("binding %s: flag not defined", key)
	}
	return c.v.BindPFlag(key, flag)
}

// Load reads the project config file. An empty path selects
// <root>/.versionsync.yaml, which is optional; an explicit path must exist.
func (c *Config) Load(path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultFilePath(c.Root())
	}
	c.file = path

	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	c.v.SetConfigFile(path)
	c.v.SetConfigType(fileType)
	if err := c.v.ReadInConfig(); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// FilePath returns the config file selected by the last Load.
func (c *Config) FilePath() string {
	if c.file == "" {
		return DefaultFilePath(c.Root())
	}
	return c.file
}

// DefaultFilePath returns the project config file path under root.
func DefaultFilePath(root string) string {
	return filepath.Join(root, branding.ConfigName()+"."+fileType)
}

// Root returns the project root directory.
func (c *Config) Root() string {
	root := c.v.GetString(KeyRoot)
	if root == "" {
		return "."
	}
	return root
}

// Get returns a config value by key. Returns empty string if not set.
func (c *Config) Get(key string) string {
	return c.v.GetString(key)
}

// Strings returns a list value; a plain string is split on whitespace.
func (c *Config) Strings(key string) []string {
	return c.v.GetStringSlice(key)
}

// Path returns the file path stored under key, resolved against Root.
func (c *Config) Path(key string) string {
	p := c.v.GetString(key)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root(), p)
}

// IsKnown reports whether key is a recognized setting.
func IsKnown(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Set writes key to the project config file, leaving other entries intact.
func (c *Config) Set(key, value string) error {
	if !IsKnown(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	path := c.FilePath()

	fv := viper.New()
	fv.SetConfigFile(path)
	fv.SetConfigType(fileType)
	if _, err := os.Stat(path); err == nil {
		if err := fv.ReadInConfig(); err != nil {
			return fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if key == KeyRuffLockCommand {
		fv.Set(key, strings.Fields(value))
	} else {
		fv.Set(key, value)
	}

	if err := fv.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	c.v.Set(key, fv.Get(key))
	return nil
}
