// Package config loads litscan configuration from local and global YAML files.
// The CLI layers flags over the local file and the local file over the global
// one; this package only parses and validates.
package config
