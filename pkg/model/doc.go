// Package model defines the declarative form schema consumed by renderers.
// A FormSchema holds an optional title and an ordered tree of FieldNode values;
// each node is either a FieldSchema leaf or a group of nodes laid out as one
// grid row. Schemas are plain data: callers build them as Go literals or decode
// them from JSON/YAML, and renderers never mutate them. Field types cover the
// inputs the dashboard pages use (text, email, password, select, textarea)
// plus the native submit and reset buttons. Unknown types decode without error
// and render nothing.
package model
