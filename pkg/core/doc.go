// Package core provides a small, stable facade over litscan's literal
// extraction and scan engine for external integrations.
//
// Example:
//
//	sum, err := core.Literals(`ghp_[A-Za-z0-9]{36}`, core.Options{})
//	if err != nil { /* handle */ }
//	pf := core.NewPrefilter(sum)
//	_ = pf.Match(data)
//
//	findings, err := core.Scan(ctx, core.Config{Root: "."})
//	_ = core.MarshalFindings(os.Stdout, findings)
package core
