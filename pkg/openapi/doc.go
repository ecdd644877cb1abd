// Package openapi derives form schemas from OpenAPI 3 request bodies. Loading
// and parsing rely on kin-openapi; the public surface only exposes Document
// and model.FormSchema.
package openapi
