// Package envelope serializes DID documents for the wire.
//
// Root documents are encoded directly. User documents get a second layer:
// the serialized document is base64url-encoded and wrapped in a
// SignedPayload record that declares its content type, and that record is
// serialized in the same encoding. The double encoding lets a verifier
// decode the envelope without knowing the inner format up front.
package envelope
