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

package mediatype

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Type
		wantErr bool
	}{
		{
			name:  "json",
			input: "application/json+did",
			want:  JSON,
		},
		{
			name:  "legacy jsonld alias",
			input: "application/jsonld+did",
			want:  JSON,
		},
		{
			name:  "cbor",
			input: "application/cbor+did",
			want:  CBOR,
		},
		{
			name:    "plain json rejected",
			input:   "application/json",
			wantErr: true,
		},
		{
			name:    "jose rejected",
			input:   "application/jose",
			wantErr: true,
		},
		{
			name:    "empty string rejected",
			input:   "",
			wantErr: true,
		},
		{
			name:    "wildcard rejected",
			input:   "*/*",
			wantErr: true,
		},
		{
			name:    "parameters rejected",
			input:   "application/json+did; charset=utf-8",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Negotiate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnsupportedMediaType))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNegotiateAliasMatchesPrimary(t *testing.T) {
	primary, err := Negotiate(MIMEJSON)
	require.NoError(t, err)

	alias, err := Negotiate(MIMEJSONLD)
	require.NoError(t, err)

	assert.Equal(t, primary, alias)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "application/json+did", JSON.String())
	assert.Equal(t, "application/cbor+did", CBOR.String())

	// the alias never round-trips
	enc, err := Negotiate(MIMEJSONLD)
	require.NoError(t, err)
	assert.Equal(t, MIMEJSON, enc.String())
}
