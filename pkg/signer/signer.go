package signer

import (
	"context"
	"crypto"
	_ "crypto/sha256" // linked in for Algorithm.Hash
	_ "crypto/sha512"
	"errors"
	"fmt"

	"github.com/fan-project/fan-go/pkg/jwk"
)

var (
	// ErrUnsupportedAlgorithm is returned when the signing key's curve has
	// no mapped JWS algorithm, or the key declares no curve at all.
	ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")

	// ErrSignature is returned when the signing operation itself fails
	// after algorithm selection succeeded.
	ErrSignature = errors.New("signing failed")

	// ErrInvalidToken is returned when a compact token cannot be parsed
	// or its signature does not verify.
	ErrInvalidToken = errors.New("invalid signed token")
)

// Algorithm is a JWS signature algorithm identifier.
type Algorithm string

const (
	ES256  Algorithm = "ES256"
	ES384  Algorithm = "ES384"
	ES512  Algorithm = "ES512"
	ES256K Algorithm = "ES256K"
)

// AlgorithmForKey derives the signature algorithm from the key's declared
// curve via a fixed table. The mapping is total over the supported curve
// set; anything else fails with ErrUnsupportedAlgorithm.
func AlgorithmForKey(key *jwk.Key) (Algorithm, error) {
	if key == nil {
		return "", fmt.Errorf("%w: no key", ErrUnsupportedAlgorithm)
	}

	switch key.Crv {
	case jwk.CurveP256:
		return ES256, nil
	case jwk.CurveP384:
		return ES384, nil
	case jwk.CurveP521:
		return ES512, nil
	case jwk.CurveSecp256k1:
		return ES256K, nil
	default:
		return "", fmt.Errorf("%w: curve %q", ErrUnsupportedAlgorithm, key.Crv)
	}
}

// Hash returns the digest function the algorithm signs over.
func (a Algorithm) Hash() (crypto.Hash, error) {
	switch a {
	case ES256, ES256K:
		return crypto.SHA256, nil
	case ES384:
		return crypto.SHA384, nil
	case ES512:
		return crypto.SHA512, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, a)
	}
}

// EnvelopeSigner produces compact signed tokens over serialized document
// envelopes
type EnvelopeSigner interface {
	// Sign wraps payload in a JWS compact token signed with key.
	// The algorithm is selected from the key's curve.
	Sign(ctx context.Context, payload []byte, key *jwk.Key) (string, error)
}
