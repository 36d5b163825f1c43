// Package storage implements the document delivery engine.
//
// The engine answers the two questions the HTTP layer asks ("give me the
// node's own document", "give me this user's document") and folds three
// protocols into each answer:
//
//   - cache validation: a client-supplied If-Modified-Since timestamp is
//     compared against the source's last-modification time, and no body is
//     produced when the client's copy is current (equal timestamps count
//     as current);
//   - content negotiation: the Accept media type selects one of the two
//     wire encodings, used consistently for the inner document and, for
//     user documents, the outer envelope;
//   - signing: user documents are always wrapped in a compact signed
//     token; the root document is always served bare.
//
// Documents come from a Driver, a pluggable source with exactly two read
// operations. FilesystemDriver reads them from a directory tree; other
// backends can be substituted without touching the engine.
//
//	driver := storage.NewFilesystemDriver("/etc/fan/root", false)
//	engine := storage.New(driver, signingKey)
//
//	res, err := engine.FetchUser(ctx, "alice", ims, accept)
//	if err != nil { ... }
//	if !res.Modified {
//	    // 304, empty body
//	}
//
// Each fetch is a one-shot, side-effect-free read: there is no retry
// logic, no partial result, and no state carried between requests. The
// engine is safe for concurrent use as long as its Driver is.
package storage
