// Package jwk implements the elliptic-curve JSON Web Key handle used to
// sign user documents.
//
// A node has exactly one signing key for its process lifetime. The key is
// generated or loaded at startup (see cmd/fan) and handed to the storage
// engine as an immutable dependency; there is no rotation mechanism, so
// key replacement requires a restart.
//
// Four curves are supported: P-256, P-384, P-521 and secp256k1. The signer
// package maps each to its JWS algorithm.
package jwk
