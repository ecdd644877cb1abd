// Package schema loads declarative form schemas from JSON or YAML files into
// a Store keyed by schema id. The dashboard's page schemas are bundled and
// exposed through EmbeddedFS.
package schema
