// Package tokens implements the flat token-list transforms applied before
// flag parsing: shell-style splitting, positional-to-named promotion and
// dotted sub-namespace routing for nested structured arguments.
package tokens
