// Package flagspace adapts the standard library flag primitive to the
// needs of signature-derived parsing: converter-backed flag definitions,
// short aliases, captured diagnostics, and known-args parsing that reports
// unconsumed tokens instead of failing on them.
package flagspace
