package transport

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-vc/vc/internal/core/objects"
)

// DefaultClient is the HTTP client used when callers don't supply their own.
var DefaultClient = &http.Client{Timeout: 30 * time.Second}

const userAgent = "vc/1.0 (git-http-transport)"

// Ref is one branch advertised by a ref-discovery response.
type Ref struct {
	Mode       string
	CommitHash objects.ObjectID
	BranchName string
}

// DiscoverRefs performs GET <repoURI>/info/refs?service=git-upload-pack and
// parses the smart-HTTP ref advertisement, keeping only refs/heads/* entries
// in the order the server sent them.
//
// The response body is pkt-line framed: byte 4 must be '#', and the first
// 34 bytes (the "001e# service=git-upload-pack\n" pkt-line plus its "0000"
// flush-pkt) are discarded, leaving one '\n'-separated line per ref. Each
// ref line is "<4-hex pkt-len><40-hex commit hash> refs/heads/<branch>\n",
// with the hash at byte offset 4 and the refname starting at offset 45. The
// first line after the discarded bytes is the HEAD/capability advertisement
// and is skipped; lines naming refs outside refs/heads/ are skipped; the
// terminating "0000" flush-pkt ends the list. This exact byte layout is
// what original_source/clone.rs validates and slices, rather than the
// generic pkt-line scanner a general-purpose Git client would need.
func DiscoverRefs(ctx context.Context, client *http.Client, repoURI string) ([]Ref, error) {
	if client == nil {
		client = DefaultClient
	}

	url := repoURI + "/info/refs?service=git-upload-pack"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building ref discovery request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discovering references: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discovering references: unexpected status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading ref discovery response: %w", err)
	}

	if !validateHeader(body) {
		return nil, fmt.Errorf("invalid ref discovery header")
	}

	return parseRefDiscoveryResponse(body[34:])
}

func validateHeader(body []byte) bool {
	if len(body) < 5 {
		return false
	}
	return body[4] == '#'
}

func parseRefDiscoveryResponse(body []byte) ([]Ref, error) {
	lines := bytes.Split(body, []byte("\n"))
	var refs []Ref

	for _, line := range lines[1:] {
		if string(line) == "0000" {
			break
		}
		if len(line) < 45 {
			continue
		}

		mode := string(line[0:4])

		hashBytes, err := hex.DecodeString(string(line[4:44]))
		if err != nil {
			return nil, fmt.Errorf("decoding ref commit hash: %w", err)
		}
		var commitHash objects.ObjectID
		copy(commitHash[:], hashBytes)

		rest := line[45:]
		parts := bytes.SplitN(rest, []byte("/"), 3)
		if len(parts) < 2 || string(parts[1]) != "heads" {
			continue
		}
		branchName := string(parts[len(parts)-1])

		refs = append(refs, Ref{Mode: mode, CommitHash: commitHash, BranchName: branchName})
	}

	return refs, nil
}

// FetchPack requests a single commit and its history via the fixed
// want/done exchange original_source/clone.rs uses: one "want" line for
// commitHash and no "have" lines, since this client never already holds
// part of the remote's history. Returns the raw response body, starting
// with the smart-HTTP service framing and PACK header that internal/pack
// decodes.
func FetchPack(ctx context.Context, client *http.Client, repoURI string, commitHash objects.ObjectID) ([]byte, error) {
	if client == nil {
		client = DefaultClient
	}

	body := fmt.Sprintf("0032want %s\n00000009done\n", commitHash.String())

	url := repoURI + "/git-upload-pack"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBufferString(body))
	if err != nil {
		return nil, fmt.Errorf("building upload-pack request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/x-git-upload-pack-request")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching packfile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching packfile: unexpected status code %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
