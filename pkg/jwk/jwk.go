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

package jwk

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Supported curve names, as they appear in the JWK "crv" member.
const (
	CurveP256      = "P-256"
	CurveP384      = "P-384"
	CurveP521      = "P-521"
	CurveSecp256k1 = "secp256k1"
)

var (
	// ErrUnsupportedCurve is returned when a key declares a curve outside
	// the supported set, or no curve at all.
	ErrUnsupportedCurve = errors.New("unsupported or missing curve")

	// ErrNotPrivate is returned when an operation needs private key
	// material and the key carries none.
	ErrNotPrivate = errors.New("key has no private material")

	// ErrMalformedKey is returned when a key cannot be decoded.
	ErrMalformedKey = errors.New("malformed JWK")
)

// Key is an elliptic-curve JSON Web Key. It is the signing key handle for
// the whole process: loaded once at startup and shared read-only across all
// requests.
type Key struct {
	// Kty is the key type; always "EC" for keys this package produces
	Kty string `json:"kty"`

	// Crv is the declared curve name
	Crv string `json:"crv"`

	// X is the base64url-encoded affine x coordinate
	X string `json:"x"`

	// Y is the base64url-encoded affine y coordinate
	Y string `json:"y"`

	// D is the base64url-encoded private scalar; absent on public keys
	D string `json:"d,omitempty"`
}

// curveByName resolves a JWK curve name to its elliptic.Curve. The Koblitz
// curve comes from decred's secp256k1 implementation; the stdlib does not
// carry it.
func curveByName(name string) (elliptic.Curve, error) {
	switch name {
	case CurveP256:
		return elliptic.P256(), nil
	case CurveP384:
		return elliptic.P384(), nil
	case CurveP521:
		return elliptic.P521(), nil
	case CurveSecp256k1:
		return secp256k1.S256(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCurve, name)
	}
}

// Generate creates a new private key on the named curve.
func Generate(curveName string) (*Key, error) {
	curve, err := curveByName(curveName)
	if err != nil {
		return nil, err
	}

	priv, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	return FromECDSA(priv)
}

// FromECDSA converts an ecdsa private key into a JWK. The key's curve must
// be one of the supported set.
func FromECDSA(priv *ecdsa.PrivateKey) (*Key, error) {
	name, err := nameForCurve(priv.Curve)
	if err != nil {
		return nil, err
	}

	size := coordinateSize(priv.Curve)
	return &Key{
		Kty: "EC",
		Crv: name,
		X:   base64.RawURLEncoding.EncodeToString(leftPad(priv.X, size)),
		Y:   base64.RawURLEncoding.EncodeToString(leftPad(priv.Y, size)),
		D:   base64.RawURLEncoding.EncodeToString(leftPad(priv.D, size)),
	}, nil
}

func nameForCurve(curve elliptic.Curve) (string, error) {
	switch curve {
	case elliptic.P256():
		return CurveP256, nil
	case elliptic.P384():
		return CurveP384, nil
	case elliptic.P521():
		return CurveP521, nil
	}
	if curve == secp256k1.S256() {
		return CurveSecp256k1, nil
	}
	return "", fmt.Errorf("%w: %v", ErrUnsupportedCurve, curve)
}

// Parse decodes a JWK from its JSON form and validates it.
func Parse(data []byte) (*Key, error) {
	var k Key
	if err := json.Unmarshal(data, &k); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}

	if err := k.validate(); err != nil {
		return nil, err
	}

	return &k, nil
}

// ParseFile reads and decodes a JWK from a file.
func ParseFile(path string) (*Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	return Parse(data)
}

// Marshal renders the key as JSON.
func (k *Key) Marshal() ([]byte, error) {
	return json.Marshal(k)
}

func (k *Key) validate() error {
	if k.Kty != "EC" {
		return fmt.Errorf("%w: key type %q is not EC", ErrMalformedKey, k.Kty)
	}
	if _, err := curveByName(k.Crv); err != nil {
		return err
	}
	if k.X == "" || k.Y == "" {
		return fmt.Errorf("%w: missing public coordinates", ErrMalformedKey)
	}
	return nil
}

// IsPrivate reports whether the key carries private material.
func (k *Key) IsPrivate() bool {
	return k.D != ""
}

// Public returns a copy of the key with the private material stripped.
func (k *Key) Public() *Key {
	pub := *k
	pub.D = ""
	return &pub
}

// Curve returns the key's declared curve. Fails with ErrUnsupportedCurve
// for keys outside the supported set.
func (k *Key) Curve() (elliptic.Curve, error) {
	return curveByName(k.Crv)
}

// ECDSA materializes the private key for signing. Fails with ErrNotPrivate
// when the key holds only public material.
func (k *Key) ECDSA() (*ecdsa.PrivateKey, error) {
	if !k.IsPrivate() {
		return nil, ErrNotPrivate
	}

	pub, err := k.ECDSAPublic()
	if err != nil {
		return nil, err
	}

	d, err := decodeCoordinate(k.D)
	if err != nil {
		return nil, err
	}

	return &ecdsa.PrivateKey{PublicKey: *pub, D: d}, nil
}

// ECDSAPublic materializes the public half of the key.
func (k *Key) ECDSAPublic() (*ecdsa.PublicKey, error) {
	curve, err := curveByName(k.Crv)
	if err != nil {
		return nil, err
	}

	x, err := decodeCoordinate(k.X)
	if err != nil {
		return nil, err
	}

	y, err := decodeCoordinate(k.Y)
	if err != nil {
		return nil, err
	}

	if !curve.IsOnCurve(x, y) {
		return nil, fmt.Errorf("%w: point is not on %s", ErrMalformedKey, k.Crv)
	}

	return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
}

func decodeCoordinate(s string) (*big.Int, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	return new(big.Int).SetBytes(raw), nil
}

// coordinateSize returns the byte width of a coordinate on the curve.
func coordinateSize(curve elliptic.Curve) int {
	return (curve.Params().BitSize + 7) / 8
}

// leftPad renders a big integer as a fixed-width big-endian byte string.
func leftPad(n *big.Int, size int) []byte {
	out := make([]byte, size)
	n.FillBytes(out)
	return out
}
