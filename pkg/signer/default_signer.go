// Copyright (C) 2025 The FAN Project
//
// This file is part of fan-go.
//
// fan-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// fan-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with fan-go.  If not, see <https://www.gnu.org/licenses/>.

package signer

import (
	"context"
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/fan-project/fan-go/pkg/jwk"
)

// Header is the JWS protected header carried in the first token segment.
type Header struct {
	// Alg is the signature algorithm the token was signed with
	Alg Algorithm `json:"alg"`
}

// DefaultEnvelopeSigner implements EnvelopeSigner with ECDSA over the
// key's declared curve. Signatures are randomized; two tokens over the
// same payload will differ but both verify.
type DefaultEnvelopeSigner struct{}

// NewDefaultEnvelopeSigner creates a new DefaultEnvelopeSigner
func NewDefaultEnvelopeSigner() *DefaultEnvelopeSigner {
	return &DefaultEnvelopeSigner{}
}

// Sign builds a JWS compact serialization of payload:
// base64url(header).base64url(payload).base64url(signature), with the
// signature computed over header || "." || payload.
func (s *DefaultEnvelopeSigner) Sign(ctx context.Context, payload []byte, key *jwk.Key) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}

	if key == nil {
		return "", fmt.Errorf("%w: no signing key", ErrUnsupportedAlgorithm)
	}

	alg, err := AlgorithmForKey(key)
	if err != nil {
		return "", err
	}

	headerJSON, err := json.Marshal(Header{Alg: alg})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSignature, err)
	}

	headerB64 := base64.RawURLEncoding.EncodeToString(headerJSON)
	payloadB64 := base64.RawURLEncoding.EncodeToString(payload)
	signingInput := headerB64 + "." + payloadB64

	priv, err := key.ECDSA()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSignature, err)
	}

	digest, err := computeDigest(alg, []byte(signingInput))
	if err != nil {
		return "", err
	}

	r, sv, err := ecdsa.Sign(rand.Reader, priv, digest)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSignature, err)
	}

	sig := encodeSignature(priv.Curve.Params().BitSize, r, sv)
	return signingInput + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// Verify checks a compact token against the public half of key and returns
// the raw payload bytes on success.
func Verify(token string, key *jwk.Key) ([]byte, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrInvalidToken, len(parts))
	}

	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	alg, err := AlgorithmForKey(key)
	if err != nil {
		return nil, err
	}
	if header.Alg != alg {
		return nil, fmt.Errorf("%w: token algorithm %q does not match key", ErrInvalidToken, header.Alg)
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	pub, err := key.ECDSAPublic()
	if err != nil {
		return nil, err
	}

	size := (pub.Curve.Params().BitSize + 7) / 8
	if len(sig) != 2*size {
		return nil, fmt.Errorf("%w: signature length %d, want %d", ErrInvalidToken, len(sig), 2*size)
	}

	digest, err := computeDigest(alg, []byte(parts[0]+"."+parts[1]))
	if err != nil {
		return nil, err
	}

	r := new(big.Int).SetBytes(sig[:size])
	sv := new(big.Int).SetBytes(sig[size:])
	if !ecdsa.Verify(pub, digest, r, sv) {
		return nil, fmt.Errorf("%w: signature verification failed", ErrInvalidToken)
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return payload, nil
}

func computeDigest(alg Algorithm, input []byte) ([]byte, error) {
	hash, err := alg.Hash()
	if err != nil {
		return nil, err
	}

	h := hash.New()
	h.Write(input)
	return h.Sum(nil), nil
}

// encodeSignature renders (r, s) in the fixed-width r||s form JWS requires.
func encodeSignature(bitSize int, r, s *big.Int) []byte {
	size := (bitSize + 7) / 8
	out := make([]byte, 2*size)
	r.FillBytes(out[:size])
	s.FillBytes(out[size:])
	return out
}
