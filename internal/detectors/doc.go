// Package detectors holds the regex rules litscan scans with. Each rule is
// compiled once into a Registry together with a literal prefilter, so a scan
// only runs the regular expressions whose required literals occur in the
// input. Inline markers (litscan:ignore-next-line, litscan:ignore-start /
// litscan:ignore-end, and the older redactyl: spellings) suppress matches.
package detectors
