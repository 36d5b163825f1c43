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

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/fan-project/fan-go/pkg/mediatype"
	"github.com/fan-project/fan-go/pkg/storage"
)

// shutdownGrace bounds how long in-flight requests may run after the
// server is asked to stop.
const shutdownGrace = 10 * time.Second

// Fetcher is the engine contract the HTTP layer consumes.
type Fetcher interface {
	FetchRoot(ctx context.Context, ifModifiedSince *time.Time, mime string) (storage.FetchResult, error)
	FetchUser(ctx context.Context, name string, ifModifiedSince *time.Time, mime string) (storage.FetchResult, error)
}

// Server maps the two document endpoints onto a Fetcher.
type Server struct {
	fetcher Fetcher
	logger  zerolog.Logger
	limiter *rate.Limiter
}

// New creates a Server over a Fetcher.
func New(fetcher Fetcher, logger zerolog.Logger) *Server {
	return &Server{
		fetcher: fetcher,
		logger:  logger,
	}
}

// SetRateLimit enables a global request rate limit. Zero or negative rps
// disables it.
func (s *Server) SetRateLimit(rps float64, burst int) {
	if rps <= 0 {
		s.limiter = nil
		return
	}
	s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// Handler builds the route table:
//
//	GET /fan.did      the node's own document, unsigned
//	GET /user/{name}  a user document, wrapped in a signed token
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Recovery(s.logger))
	r.Use(RequestLogger(s.logger))
	if s.limiter != nil {
		r.Use(RateLimit(s.limiter))
	}

	r.Get("/fan.did", s.getRoot)
	r.Get("/user/{name}", s.getUser)

	return r
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func (s *Server) getRoot(w http.ResponseWriter, r *http.Request) {
	accept := acceptHeader(r)

	enc, err := mediatype.Negotiate(accept)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ims, err := ifModifiedSince(r)
	if err != nil {
		http.Error(w, "malformed If-Modified-Since header", http.StatusBadRequest)
		return
	}

	res, err := s.fetcher.FetchRoot(r.Context(), ims, accept)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeResult(w, res, enc.String())
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	accept := acceptHeader(r)

	if _, err := mediatype.Negotiate(accept); err != nil {
		s.writeError(w, r, err)
		return
	}

	ims, err := ifModifiedSince(r)
	if err != nil {
		http.Error(w, "malformed If-Modified-Since header", http.StatusBadRequest)
		return
	}

	res, err := s.fetcher.FetchUser(r.Context(), chi.URLParam(r, "name"), ims, accept)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeResult(w, res, mediatype.MIMEJOSE)
}

// writeResult renders a FetchResult: 200 with the body and content type
// when modified, an empty 304 otherwise.
func (s *Server) writeResult(w http.ResponseWriter, res storage.FetchResult, contentType string) {
	if !res.Modified {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(res.Body) //nolint:errcheck
}

// writeError translates engine failures into protocol status codes. The
// precise error kind stays in the log; response bodies carry no internals.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, storage.ErrInvalidName):
		status = http.StatusBadRequest
	case errors.Is(err, mediatype.ErrUnsupportedMediaType):
		status = http.StatusUnsupportedMediaType
	default:
		status = http.StatusInternalServerError
	}

	s.logger.Error().
		Err(err).
		Str("request_id", GetRequestID(r.Context())).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("request failed")

	http.Error(w, http.StatusText(status), status)
}

// acceptHeader returns the client's declared media type, defaulting to the
// canonical JSON type when the header is absent.
func acceptHeader(r *http.Request) string {
	if accept := r.Header.Get("Accept"); accept != "" {
		return accept
	}
	return mediatype.MIMEJSON
}

// ifModifiedSince parses the If-Modified-Since header in the fixed
// RFC 1123 GMT form ("Mon, 02 Jan 2006 15:04:05 GMT"). An absent header
// means no freshness constraint.
func ifModifiedSince(r *http.Request) (*time.Time, error) {
	raw := r.Header.Get("If-Modified-Since")
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(http.TimeFormat, raw)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
