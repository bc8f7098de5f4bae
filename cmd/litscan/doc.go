// Package litscan provides the command-line interface for litscan. It
// configures subcommands (literals, scan, baseline, rules, etc.), parses
// flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/redactyl/litscan/cmd/litscan"
//	func main() { litscan.Execute() }
package litscan
