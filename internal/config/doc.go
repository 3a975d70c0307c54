// Package config provides loading, merging, and validation of the
// configwatch tool's own settings.
//
// Settings are assembled from multiple sources in the following priority
// order (earlier sources win on conflicting fields):
//  1. Environment variables
//  2. Command-line flags
//  3. Built-in defaults
//
// The main entry point is [GetSettings].
package config
