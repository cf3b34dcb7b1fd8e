// Package signature builds the ordered argument-descriptor table for a
// callable. Go exposes parameter types but not names, defaults or doc text
// at runtime, so the table is derived from an input-struct prototype's
// fields and tags, or declared explicitly for plain functions.
package signature
