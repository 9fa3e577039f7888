package pack

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-vc/vc/internal/core/objects"
)

// Header is the fixed-size preamble of an upload-pack response body: an
// 8-byte pkt-line service marker, the literal "PACK" signature, a
// big-endian format version, and a big-endian object count.
type Header struct {
	Marker      [8]byte
	Version     uint32
	ObjectCount uint32
}

// Entry is one reconstructed object produced by decoding a packfile.
type Entry struct {
	Type    objects.ObjectType
	Content []byte
}

// Index maps object IDs (computed over the reconstructed, type-tagged
// content) to their decoded entries, mirroring original_source/clone.rs's
// in-memory GitObjects map, except each entry retains the object's actual
// resolved type rather than assuming blob for every delta result.
type Index map[objects.ObjectID]Entry

// Decode parses a full upload-pack response body, including its leading
// smart-HTTP framing, and returns every object it contains. ofs-delta
// entries are unsupported and return ErrOfsDeltaUnsupported, matching
// original_source's handle_ofs_delta.
func Decode(body []byte) (Index, error) {
	r := bytes.NewReader(body)

	hdr, err := readHeader(r)
	if err != nil {
		return nil, fmt.Errorf("reading packfile header: %w", err)
	}

	index := make(Index, hdr.ObjectCount)

	for i := uint32(0); i < hdr.ObjectCount; i++ {
		objType, size, err := readTypeAndSize(r)
		if err != nil {
			return nil, fmt.Errorf("reading object %d header: %w", i, err)
		}

		switch objType {
		case TypeCommit, TypeTree, TypeBlob, TypeTag:
			content, err := readZlibObject(r, int(size))
			if err != nil {
				return nil, fmt.Errorf("decoding object %d: %w", i, err)
			}
			coreType := coreObjectType(objType)
			id := objects.ComputeHash(coreType, content)
			index[id] = Entry{Type: coreType, Content: content}

		case TypeRefDelta:
			entry, id, err := decodeRefDelta(r, index)
			if err != nil {
				return nil, fmt.Errorf("decoding object %d: %w", i, err)
			}
			index[id] = entry

		case TypeOfsDelta:
			return nil, ErrOfsDeltaUnsupported

		default:
			return nil, ErrUnknownType
		}
	}

	return index, nil
}

func readHeader(r *bytes.Reader) (Header, error) {
	var hdr Header
	if _, err := io.ReadFull(r, hdr.Marker[:]); err != nil {
		return hdr, err
	}

	var sig [4]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return hdr, err
	}
	if string(sig[:]) != "PACK" {
		return hdr, fmt.Errorf("bad packfile signature: %q", sig)
	}

	if err := binary.Read(r, binary.BigEndian, &hdr.Version); err != nil {
		return hdr, err
	}
	if err := binary.Read(r, binary.BigEndian, &hdr.ObjectCount); err != nil {
		return hdr, err
	}

	return hdr, nil
}

// readZlibObject decompresses one object's zlib stream from r. Because r is
// a *bytes.Reader (an io.ByteReader), compress/flate consumes it byte by
// byte rather than wrapping it in its own look-ahead buffer, so r's
// position after decompression already sits at the next object's header —
// no manual seek/backtrack is required, unlike a Cursor-based decoder
// driven through a non-byte-oriented reader.
func readZlibObject(r *bytes.Reader, sizeHint int) ([]byte, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening zlib stream: %w", err)
	}
	defer zr.Close()

	buf := bytes.NewBuffer(make([]byte, 0, sizeHint))
	if _, err := io.Copy(buf, zr); err != nil {
		return nil, fmt.Errorf("inflating object: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeRefDelta(r *bytes.Reader, index Index) (Entry, objects.ObjectID, error) {
	var baseHash [20]byte
	if _, err := io.ReadFull(r, baseHash[:]); err != nil {
		return Entry{}, objects.ObjectID{}, err
	}
	baseID := objects.ObjectID(baseHash)

	base, ok := index[baseID]
	if !ok {
		return Entry{}, objects.ObjectID{}, ErrMissingBase
	}

	zr, err := zlib.NewReader(r)
	if err != nil {
		return Entry{}, objects.ObjectID{}, fmt.Errorf("opening delta zlib stream: %w", err)
	}
	defer zr.Close()

	br := byteReader{zr}
	if _, err := readSizeEncoding(br); err != nil { // base size, unused: the base is already resolved
		return Entry{}, objects.ObjectID{}, fmt.Errorf("reading base size: %w", err)
	}
	resultSize, err := readSizeEncoding(br)
	if err != nil {
		return Entry{}, objects.ObjectID{}, fmt.Errorf("reading result size: %w", err)
	}

	content, err := ApplyDelta(base.Content, br, resultSize)
	if err != nil {
		return Entry{}, objects.ObjectID{}, err
	}

	id := objects.ComputeHash(base.Type, content)
	return Entry{Type: base.Type, Content: content}, id, nil
}

// byteReader adapts an io.Reader without native ReadByte support (such as a
// zlib decompressor) to io.ByteReader, one byte at a time.
type byteReader struct {
	io.Reader
}

func (b byteReader) ReadByte() (byte, error) {
	var buf [1]byte
	_, err := io.ReadFull(b, buf[:])
	return buf[0], err
}

func coreObjectType(t ObjectType) objects.ObjectType {
	switch t {
	case TypeCommit:
		return objects.TypeCommit
	case TypeTree:
		return objects.TypeTree
	case TypeBlob:
		return objects.TypeBlob
	case TypeTag:
		return objects.TypeTag
	default:
		return ""
	}
}
