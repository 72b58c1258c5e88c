// Package versionfile holds the file plumbing shared by the version
// synchronizers: reading sources, writing manifests back in place, the
// error taxonomy, and describing the direction of a version change.
package versionfile
