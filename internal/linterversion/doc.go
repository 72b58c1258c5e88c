// Package linterversion keeps a linter pin in pyproject.toml in step with the
// version resolved in a generated requirements listing, then asks the project
// lock file to be regenerated.
package linterversion
