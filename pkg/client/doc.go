// Package client consumes a FAN node from the holder's side: it fetches
// the root document bare and user documents as signed tokens, verifying
// them against the node's public key before handing back the decoded
// document.
//
//	c := client.New("https://node.example", nodeKey.Public(), nil)
//	doc, err := c.GetUser(ctx, "alice", nil)
//
// Conditional fetches use FetchOptions.IfModifiedSince; a current cached
// copy surfaces as ErrNotModified rather than an empty document.
package client
