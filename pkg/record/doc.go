// Package record implements a schema-driven, multi-representation
// record engine. A pattern — an ordered list of named, typed,
// nullability-tagged fields — is declared once and then denotes three
// concrete aggregate shapes: a bulk Table, a single-entity Row, and a
// partial-mutation Update.
//
// The four structural operations (Empty, Lookup, Insert, Update) are
// implemented once as a fold over the field list of any pattern,
// composing per-field leaf rules keyed by nullability. They never need
// per-schema code; typed bindings for a fixed pattern can be generated
// on top (see internal/codegen).
//
// All Table-producing operations have value semantics: they return a
// new Table and leave their inputs untouched, so callers may keep and
// reuse prior Table values. The engine is synchronous and pure; row-id
// generation, uniqueness, and cross-caller synchronization belong to
// the caller.
//
// The Golden Rule: pkg/record imports ONLY pkg/column and stdlib.
package record
