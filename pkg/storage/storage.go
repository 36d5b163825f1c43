package storage

import (
	"context"
	"errors"
	"time"

	"github.com/fan-project/fan-go/pkg/diddoc"
	"github.com/fan-project/fan-go/pkg/envelope"
	"github.com/fan-project/fan-go/pkg/jwk"
	"github.com/fan-project/fan-go/pkg/mediatype"
	"github.com/fan-project/fan-go/pkg/signer"
)

var (
	// ErrNotFound is returned when no document exists for the requested
	// identity.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidName is returned for malformed user names. Names carrying
	// path-separator-like characters are rejected before any read.
	ErrInvalidName = errors.New("invalid user name")

	// ErrSource wraps opaque I/O or parse failures from a document source.
	ErrSource = errors.New("document source failure")
)

// FetchResult is the outcome of a fetch: either a full response body, or
// the indication that the client's cached copy is still current.
type FetchResult struct {
	// Modified is false when the client's copy is at least as new as the
	// source's
	Modified bool

	// Body holds the response bytes when Modified is true
	Body []byte
}

// Driver is a document source. Implementations must be safe for concurrent
// reads; the engine adds no locking of its own.
type Driver interface {
	// LoadRoot returns the node's own document and its last-modification
	// time.
	LoadRoot(ctx context.Context) (*diddoc.Document, time.Time, error)

	// LoadUser returns the named user's document and its last-modification
	// time. Names containing a path separator fail with ErrInvalidName
	// before any read is attempted.
	LoadUser(ctx context.Context, name string) (*diddoc.Document, time.Time, error)
}

// Storage is the document delivery engine. It combines media type
// negotiation, the freshness check, envelope encoding and (for user
// documents) signing into the two fetch operations the HTTP layer consumes.
//
// Storage is stateless beyond its immutable dependencies and is safe for
// concurrent use.
type Storage struct {
	driver Driver
	key    *jwk.Key
	signer signer.EnvelopeSigner
}

// New creates a Storage over a document source and the node's signing key.
func New(driver Driver, key *jwk.Key) *Storage {
	return NewWithSigner(driver, key, signer.NewDefaultEnvelopeSigner())
}

// NewWithSigner creates a Storage with a custom envelope signer.
func NewWithSigner(driver Driver, key *jwk.Key, s signer.EnvelopeSigner) *Storage {
	return &Storage{
		driver: driver,
		key:    key,
		signer: s,
	}
}

// FetchRoot fetches the node's own document, serialized in the negotiated
// encoding. Root documents are never signed.
func (s *Storage) FetchRoot(ctx context.Context, ifModifiedSince *time.Time, mime string) (FetchResult, error) {
	enc, err := mediatype.Negotiate(mime)
	if err != nil {
		return FetchResult{}, err
	}

	doc, lastModified, err := s.driver.LoadRoot(ctx)
	if err != nil {
		return FetchResult{}, err
	}

	if clientCurrent(ifModifiedSince, lastModified) {
		return FetchResult{}, nil
	}

	body, err := envelope.EncodeRoot(doc, enc)
	if err != nil {
		return FetchResult{}, err
	}

	return FetchResult{Modified: true, Body: body}, nil
}

// FetchUser fetches the named user's document wrapped in a compact signed
// token. User documents are never returned unsigned.
func (s *Storage) FetchUser(ctx context.Context, name string, ifModifiedSince *time.Time, mime string) (FetchResult, error) {
	enc, err := mediatype.Negotiate(mime)
	if err != nil {
		return FetchResult{}, err
	}

	doc, lastModified, err := s.driver.LoadUser(ctx, name)
	if err != nil {
		return FetchResult{}, err
	}

	if clientCurrent(ifModifiedSince, lastModified) {
		return FetchResult{}, nil
	}

	payload, err := envelope.EncodeUser(doc, enc)
	if err != nil {
		return FetchResult{}, err
	}

	token, err := s.signer.Sign(ctx, payload, s.key)
	if err != nil {
		return FetchResult{}, err
	}

	return FetchResult{Modified: true, Body: []byte(token)}, nil
}

// clientCurrent reports whether the client's cached copy is still valid:
// true only when ifModifiedSince is present and not strictly older than
// the source's last-modification time. Equal timestamps count as current.
func clientCurrent(ifModifiedSince *time.Time, lastModified time.Time) bool {
	if ifModifiedSince == nil {
		return false
	}
	return !ifModifiedSince.Before(lastModified)
}
