// Package diddoc defines the DID document data model served by a FAN node.
//
// The types here follow the W3C DID Core document shape closely enough to
// interoperate with common resolvers, but the serving pipeline never
// interprets them: a Document is an opaque value with a canonical JSON form
// and a canonical CBOR form (see the envelope package for both).
package diddoc
