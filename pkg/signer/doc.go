// Package signer produces the compact signed tokens that wrap user DID
// documents.
//
// A token is a JWS compact serialization:
//
//	base64url(header) . base64url(payload) . base64url(signature)
//
// The protected header declares only the signature algorithm, which is
// derived deterministically from the signing key's curve:
//
//	P-256     -> ES256
//	P-384     -> ES384
//	P-521     -> ES512
//	secp256k1 -> ES256K
//
// A key declaring any other curve (or none) fails with
// ErrUnsupportedAlgorithm before any encoding work is done.
//
// # Signing
//
//	s := signer.NewDefaultEnvelopeSigner()
//	token, err := s.Sign(ctx, payload, key)
//
// The signature is computed over header || "." || payload with ECDSA and
// the RFC 7518 digest for the algorithm, and encoded in the fixed-width
// r||s form. ECDSA here is randomized: signing the same payload twice
// yields different tokens, so callers must check validity with Verify
// rather than comparing token bytes.
//
// # Verification
//
//	payload, err := signer.Verify(token, key.Public())
//
// Verify checks the segment structure, that the header's algorithm matches
// the key's curve, and the signature itself, returning the decoded payload.
package signer
