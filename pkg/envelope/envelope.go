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

package envelope

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fan-project/fan-go/pkg/diddoc"
	"github.com/fan-project/fan-go/pkg/mediatype"
	"github.com/fxamacker/cbor/v2"
)

// ErrEncoding is returned when serialization fails. Well-formed documents
// never trip it; treat an occurrence as an internal-invariant violation.
var ErrEncoding = errors.New("encoding failed")

// SignedPayload is the pre-signature envelope for a user document: the
// document's serialized bytes, base64url-encoded without padding, together
// with the canonical media type they were serialized in. The record itself
// is serialized in that same encoding before signing, so verifiers can
// decode the envelope first and the inner document second.
type SignedPayload struct {
	// Payload is the base64url-encoded serialized document
	Payload string `json:"payload"`

	// ContentType is the canonical media type of the decoded payload
	ContentType string `json:"content_type"`
}

// Marshal serializes v in the given wire encoding.
func Marshal(enc mediatype.Type, v any) ([]byte, error) {
	switch enc {
	case mediatype.JSON:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
		}
		return data, nil
	case mediatype.CBOR:
		data, err := cbor.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %v", mediatype.ErrUnsupportedMediaType, enc)
	}
}

// Unmarshal deserializes data in the given wire encoding into v.
func Unmarshal(enc mediatype.Type, data []byte, v any) error {
	switch enc {
	case mediatype.JSON:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("%w: %v", ErrEncoding, err)
		}
		return nil
	case mediatype.CBOR:
		if err := cbor.Unmarshal(data, v); err != nil {
			return fmt.Errorf("%w: %v", ErrEncoding, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %v", mediatype.ErrUnsupportedMediaType, enc)
	}
}

// EncodeRoot serializes the root document directly in the requested
// encoding. Root documents are never wrapped or signed.
func EncodeRoot(doc *diddoc.Document, enc mediatype.Type) ([]byte, error) {
	return Marshal(enc, doc)
}

// DecodeRoot reverses EncodeRoot.
func DecodeRoot(data []byte, enc mediatype.Type) (*diddoc.Document, error) {
	var doc diddoc.Document
	if err := Unmarshal(enc, data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// EncodeUser builds the un-signed payload for a user document: the document
// serialized in the requested encoding, base64url-encoded, wrapped in a
// SignedPayload declaring that encoding's canonical media type, and the
// record serialized in the same encoding again.
func EncodeUser(doc *diddoc.Document, enc mediatype.Type) ([]byte, error) {
	inner, err := Marshal(enc, doc)
	if err != nil {
		return nil, err
	}

	record := SignedPayload{
		Payload:     base64.RawURLEncoding.EncodeToString(inner),
		ContentType: enc.String(),
	}

	return Marshal(enc, &record)
}

// DecodePayload parses a serialized SignedPayload record.
func DecodePayload(data []byte, enc mediatype.Type) (*SignedPayload, error) {
	var record SignedPayload
	if err := Unmarshal(enc, data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Open decodes the inner document using the record's declared content type.
func (p *SignedPayload) Open() (*diddoc.Document, error) {
	enc, err := mediatype.Negotiate(p.ContentType)
	if err != nil {
		return nil, err
	}

	inner, err := base64.RawURLEncoding.DecodeString(p.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	var doc diddoc.Document
	if err := Unmarshal(enc, inner, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
