// Package runner executes external commands on behalf of the synchronizers,
// such as regenerating a lock file after a manifest pin changes.
package runner
