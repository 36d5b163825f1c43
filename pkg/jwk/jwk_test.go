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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAllCurves(t *testing.T) {
	for _, crv := range []string{CurveP256, CurveP384, CurveP521, CurveSecp256k1} {
		t.Run(crv, func(t *testing.T) {
			key, err := Generate(crv)
			require.NoError(t, err)

			assert.Equal(t, "EC", key.Kty)
			assert.Equal(t, crv, key.Crv)
			assert.True(t, key.IsPrivate())

			priv, err := key.ECDSA()
			require.NoError(t, err)
			assert.True(t, priv.Curve.IsOnCurve(priv.X, priv.Y))
		})
	}
}

func TestGenerateUnsupportedCurve(t *testing.T) {
	_, err := Generate("X25519")
	require.ErrorIs(t, err, ErrUnsupportedCurve)
}

func TestParseRoundTrip(t *testing.T) {
	key, err := Generate(CurveP256)
	require.NoError(t, err)

	data, err := key.Marshal()
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, key, parsed)
}

func TestParseRejectsBadKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{
			name:  "not json",
			input: "----BEGIN EC PRIVATE KEY----",
			want:  ErrMalformedKey,
		},
		{
			name:  "wrong kty",
			input: `{"kty":"OKP","crv":"Ed25519","x":"AA"}`,
			want:  ErrMalformedKey,
		},
		{
			name:  "unknown curve",
			input: `{"kty":"EC","crv":"P-224","x":"AA","y":"AA"}`,
			want:  ErrUnsupportedCurve,
		},
		{
			name:  "missing curve",
			input: `{"kty":"EC","x":"AA","y":"AA"}`,
			want:  ErrUnsupportedCurve,
		},
		{
			name:  "missing coordinates",
			input: `{"kty":"EC","crv":"P-256"}`,
			want:  ErrMalformedKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPublicStripsPrivateMaterial(t *testing.T) {
	key, err := Generate(CurveP384)
	require.NoError(t, err)

	pub := key.Public()
	assert.False(t, pub.IsPrivate())
	assert.Equal(t, key.X, pub.X)
	assert.Equal(t, key.Y, pub.Y)

	// the original is untouched
	assert.True(t, key.IsPrivate())

	_, err = pub.ECDSA()
	assert.ErrorIs(t, err, ErrNotPrivate)

	_, err = pub.ECDSAPublic()
	assert.NoError(t, err)
}

func TestParseFile(t *testing.T) {
	key, err := Generate(CurveSecp256k1)
	require.NoError(t, err)

	data, err := key.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "signing.jwk")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	loaded, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, key, loaded)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.jwk"))
	assert.Error(t, err)
}

func TestECDSAPublicRejectsOffCurvePoint(t *testing.T) {
	key, err := Generate(CurveP256)
	require.NoError(t, err)

	// corrupt one coordinate
	key.Y = key.X

	_, err = key.ECDSAPublic()
	assert.ErrorIs(t, err, ErrMalformedKey)
}
