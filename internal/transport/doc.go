// Package transport speaks just enough of Git's smart-HTTP protocol to
// clone a single branch: ref discovery against /info/refs and a fixed
// want/done exchange against /git-upload-pack. It does not negotiate haves,
// authenticate, or support any transport besides HTTP(S).
//
// Example usage:
//
//	refs, err := transport.DiscoverRefs(ctx, client, "https://example.com/repo.git")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	body, err := transport.FetchPack(ctx, client, "https://example.com/repo.git", refs[len(refs)-1].CommitHash)
package transport
