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

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fan-project/fan-go/pkg/diddoc"
	"github.com/fan-project/fan-go/pkg/envelope"
	"github.com/fan-project/fan-go/pkg/jwk"
	"github.com/fan-project/fan-go/pkg/mediatype"
	"github.com/fan-project/fan-go/pkg/signer"
)

var (
	// ErrNotModified is returned when the node answered 304 to a
	// conditional fetch.
	ErrNotModified = errors.New("document not modified")

	// ErrUnexpectedStatus is returned for any response status other than
	// 200 or 304.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// Client fetches DID documents from a FAN node and verifies user document
// signatures against the node's public key.
type Client struct {
	baseURL    string
	nodeKey    *jwk.Key
	httpClient *http.Client
}

// New creates a Client for the node at baseURL. nodeKey is the node's
// public signing key, used to verify user documents; pass nil to skip
// verification (not recommended outside tests). If httpClient is nil,
// http.DefaultClient is used.
func New(baseURL string, nodeKey *jwk.Key, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		nodeKey:    nodeKey,
		httpClient: httpClient,
	}
}

// FetchOptions control a single fetch.
type FetchOptions struct {
	// Encoding is the wire encoding to request; zero value means JSON
	Encoding mediatype.Type

	// IfModifiedSince, when set, makes the fetch conditional; a current
	// cached copy yields ErrNotModified
	IfModifiedSince *time.Time
}

func (o *FetchOptions) encoding() mediatype.Type {
	if o == nil || o.Encoding == 0 {
		return mediatype.JSON
	}
	return o.Encoding
}

// GetRoot fetches the node's own document. Root documents are served bare;
// no signature is expected or checked.
func (c *Client) GetRoot(ctx context.Context, opts *FetchOptions) (*diddoc.Document, error) {
	body, err := c.get(ctx, "/fan.did", opts)
	if err != nil {
		return nil, err
	}

	return envelope.DecodeRoot(body, opts.encoding())
}

// GetUser fetches the named user's document, checks the compact token
// against the node key, and unwraps the envelope.
func (c *Client) GetUser(ctx context.Context, name string, opts *FetchOptions) (*diddoc.Document, error) {
	body, err := c.get(ctx, "/user/"+url.PathEscape(name), opts)
	if err != nil {
		return nil, err
	}

	if c.nodeKey == nil {
		return nil, fmt.Errorf("cannot verify user document: no node key configured")
	}

	payload, err := signer.Verify(string(body), c.nodeKey)
	if err != nil {
		return nil, fmt.Errorf("failed to verify user document: %w", err)
	}

	record, err := envelope.DecodePayload(payload, opts.encoding())
	if err != nil {
		return nil, err
	}

	return record.Open()
}

func (c *Client) get(ctx context.Context, path string, opts *FetchOptions) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", opts.encoding().String())
	if opts != nil && opts.IfModifiedSince != nil {
		req.Header.Set("If-Modified-Since", opts.IfModifiedSince.UTC().Format(http.TimeFormat))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotModified:
		return nil, ErrNotModified
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, nil
}
