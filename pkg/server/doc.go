// Package server exposes the document delivery engine over HTTP.
//
// Two endpoints are served:
//
//	GET /fan.did      -> the node's own DID document, unsigned
//	GET /user/{name}  -> the named user's document, as a signed token
//
// The Accept header selects the wire encoding (defaulting to
// application/json+did when absent) and If-Modified-Since, in the fixed
// "Mon, 02 Jan 2006 15:04:05 GMT" form, drives cache validation. A current
// client copy gets an empty 304; otherwise the body is served with status
// 200 and a Content-Type of the negotiated canonical media type for the
// root document, or application/jose for user documents.
//
// Engine failures map onto protocol codes: unknown documents to 404, bad
// user names to 400, unsupported media types to 415 and everything else to
// 500. The response body never echoes internal error detail; that goes to
// the structured log, keyed by request id.
package server
