// Package mediatype negotiates the wire encoding for DID documents.
//
// Exactly three media types are understood. Two of them are names for
// the same JSON encoding: application/jsonld+did is a legacy alias kept
// for interoperability with JSON-LD consumers, and never appears in
// responses.
package mediatype

import (
	"errors"
	"fmt"
)

// Canonical media type strings served by this node.
const (
	// MIMEJSON is the canonical media type for JSON-encoded DID documents.
	MIMEJSON = "application/json+did"

	// MIMEJSONLD is a legacy alias for MIMEJSON. We don't directly support
	// JSON-LD, but we should be able to consume it.
	MIMEJSONLD = "application/jsonld+did"

	// MIMECBOR is the canonical media type for CBOR-encoded DID documents.
	MIMECBOR = "application/cbor+did"

	// MIMEJOSE is the media type of signed user document responses.
	MIMEJOSE = "application/jose"
)

// ErrUnsupportedMediaType is returned when a media type is not one of the
// three supported literals.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// Type identifies one of the two supported wire encodings.
type Type int

const (
	// JSON is the structured-text encoding.
	JSON Type = iota + 1

	// CBOR is the compact binary encoding.
	CBOR
)

// Negotiate maps a client-declared media type string to a wire encoding.
// Anything other than the three supported literals fails with
// ErrUnsupportedMediaType.
func Negotiate(s string) (Type, error) {
	switch s {
	case MIMEJSON, MIMEJSONLD:
		return JSON, nil
	case MIMECBOR:
		return CBOR, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedMediaType, s)
	}
}

// String returns the canonical media type string for the encoding. The
// legacy alias never round-trips: JSON always renders as MIMEJSON.
func (t Type) String() string {
	switch t {
	case JSON:
		return MIMEJSON
	case CBOR:
		return MIMECBOR
	}
	return fmt.Sprintf("mediatype.Type(%d)", int(t))
}
