// Package typespec defines the tagged type-descriptor tree that drives
// string-to-value conversion. A descriptor is built from explicit
// constructors, derived from a Go type with FromGo, or parsed from an
// HCL-style type expression with Parse.
package typespec
