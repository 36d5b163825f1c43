package diddoc

import (
	"strings"
)

// Document represents a DID document
// A DID document is a structured identity record that describes a subject's
// public key material and service endpoints. The delivery engine treats it
// as an opaque, timestamped, signable payload.
type Document struct {
	// Context holds the JSON-LD context URIs
	Context []string `json:"@context,omitempty"`

	// ID is the document subject's Decentralized Identifier
	ID string `json:"id"`

	// AlsoKnownAs lists alternate identifiers for the subject
	AlsoKnownAs []string `json:"alsoKnownAs,omitempty"`

	// Controller is the DID authorized to make changes to this document
	Controller string `json:"controller,omitempty"`

	// VerificationMethod contains the subject's public keys
	VerificationMethod []VerificationMethod `json:"verificationMethod,omitempty"`

	// Authentication references verification methods usable for
	// authenticating as the subject
	Authentication []string `json:"authentication,omitempty"`

	// Service lists the subject's service endpoints
	Service []Service `json:"service,omitempty"`
}

// VerificationMethod represents a public key in a DID document
type VerificationMethod struct {
	// ID is a unique identifier for this key
	ID string `json:"id"`

	// Type specifies the key algorithm
	// Examples: "JsonWebKey2020", "Ed25519VerificationKey2020"
	Type string `json:"type"`

	// Controller is the DID that controls this key
	Controller string `json:"controller,omitempty"`

	// PublicKeyJWK is the key material as a JSON Web Key
	PublicKeyJWK map[string]string `json:"publicKeyJwk,omitempty"`

	// PublicKeyMultibase is the key material in multibase encoding
	PublicKeyMultibase string `json:"publicKeyMultibase,omitempty"`
}

// Service represents a service endpoint in a DID document
type Service struct {
	// ID is a unique identifier for this service
	ID string `json:"id"`

	// Type is the service protocol type
	Type string `json:"type"`

	// ServiceEndpoint is the URL where the service is reachable
	ServiceEndpoint string `json:"serviceEndpoint"`
}

// Validate performs basic validation on the document
func (d *Document) Validate() error {
	if d.ID == "" {
		return ErrInvalidDocument{"id is required"}
	}
	if !strings.HasPrefix(d.ID, "did:") {
		return ErrInvalidDocument{"id must be a DID"}
	}
	for _, vm := range d.VerificationMethod {
		if vm.ID == "" {
			return ErrInvalidDocument{"verification method id is required"}
		}
		if vm.Type == "" {
			return ErrInvalidDocument{"verification method type is required"}
		}
	}
	return nil
}

// ErrInvalidDocument is returned when a DID document is invalid
type ErrInvalidDocument struct {
	Message string
}

func (e ErrInvalidDocument) Error() string {
	return "invalid DID document: " + e.Message
}
