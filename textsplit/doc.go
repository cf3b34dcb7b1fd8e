// Package textsplit provides bracket-aware string splitting for composite
// command-line argument values, plus the small text helpers used when
// rendering diagnostics.
package textsplit
