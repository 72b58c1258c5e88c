// Package config resolves versionsync settings from flags, VERSIONSYNC_*
// environment variables, and an optional .versionsync.yaml at the project root.
package config
