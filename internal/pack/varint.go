package pack

import "io"

// Packfile object headers use a variable-length integer encoding: each byte
// contributes 7 bits of value, with the MSB signaling "more bytes follow".
// The first byte additionally steals 3 of its remaining bits for the
// object's type, leaving 4 size bits there and 7 in every byte after.
const (
	varintEncodingBits = 7
	varintContinueFlag = 1 << varintEncodingBits
	typeBits           = 3
	typeByteSizeBits   = varintEncodingBits - typeBits
)

// ObjectType is the 3-bit type tag carried in a packfile entry header.
type ObjectType uint8

const (
	TypeCommit   ObjectType = 1
	TypeTree     ObjectType = 2
	TypeBlob     ObjectType = 3
	TypeTag      ObjectType = 4
	TypeOfsDelta ObjectType = 6
	TypeRefDelta ObjectType = 7
)

func (t ObjectType) String() string {
	switch t {
	case TypeCommit:
		return "commit"
	case TypeTree:
		return "tree"
	case TypeBlob:
		return "blob"
	case TypeTag:
		return "tag"
	case TypeOfsDelta:
		return "ofs-delta"
	case TypeRefDelta:
		return "ref-delta"
	default:
		return "unknown"
	}
}

// readVarintByte reads one byte of a size-encoding varint, returning its
// 7-bit payload and whether another byte follows.
func readVarintByte(r io.ByteReader) (value byte, more bool, err error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, false, err
	}
	return b &^ varintContinueFlag, b&varintContinueFlag != 0, nil
}

// readSizeEncoding reads a plain little-endian base-128 varint with no type
// bits mixed in (used inside delta streams for base/result sizes).
func readSizeEncoding(r io.ByteReader) (uint64, error) {
	var value uint64
	var shift uint
	for {
		b, more, err := readVarintByte(r)
		if err != nil {
			return 0, err
		}
		value |= uint64(b) << shift
		if !more {
			return value, nil
		}
		shift += varintEncodingBits
	}
}

func keepBits(value uint64, bits uint) uint64 {
	return value & ((1 << bits) - 1)
}

// readTypeAndSize reads a packfile entry header: the first byte's low 4
// bits and 3 type bits, followed by as many 7-bit continuation bytes as
// needed for the rest of the (uncompressed) object size.
func readTypeAndSize(r io.ByteReader) (ObjectType, uint64, error) {
	value, err := readSizeEncoding(r)
	if err != nil {
		return 0, 0, err
	}
	objType := ObjectType(keepBits(value>>typeByteSizeBits, typeBits))
	size := keepBits(value, typeByteSizeBits) | (value >> varintEncodingBits << typeByteSizeBits)
	return objType, size, nil
}

// readPartialInt reads up to `count` little-endian bytes, one per set bit
// in presentBytes (lowest bit first), shifting presentBytes right as it
// consumes each bit. Bytes whose bit is clear contribute 0 and are not
// read from the stream. This is the bitmask-compressed integer format
// used by copy instructions in a delta stream.
func readPartialInt(r io.ByteReader, count uint8, presentBytes *uint8) (uint64, error) {
	var value uint64
	for i := uint8(0); i < count; i++ {
		if *presentBytes&1 != 0 {
			b, err := r.ReadByte()
			if err != nil {
				return 0, err
			}
			value |= uint64(b) << (i * 8)
		}
		*presentBytes >>= 1
	}
	return value, nil
}
