// Package engine walks a tree (or recent git history), runs the rule
// registry over each eligible file on a bounded worker pool, and returns
// sorted findings with scan statistics. External consumers should use the
// facade in pkg/core.
package engine
