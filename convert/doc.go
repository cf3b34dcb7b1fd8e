// Package convert resolves type descriptors into the converter functions
// that turn command-line tokens into typed values. Resolution is a recursive
// match over the typespec tree, covering primitives, optionals, unions,
// sequences, sets, tuples, mappings and best-effort guessing for
// unconstrained arguments.
package convert
