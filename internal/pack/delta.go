package pack

import (
	"bytes"
	"io"
)

// Delta instruction opcodes, per http://git.rsbx.net/Documents/Git_Data_Formats.txt
const (
	copyInstructionFlag = 1 << 7
	copyOffsetBytes     = 4
	copySizeBytes       = 3
	copyZeroSize        = 0x10000 // a zero-encoded size means 65536
)

// ApplyDelta replays a ref-delta instruction stream against base, returning
// the reconstructed object content. instructions must start immediately
// after the delta's base-size and result-size varints (the caller already
// consumed those to size its output buffer, matching
// original_source/process_packfile.rs's apply_delta_instruction loop).
func ApplyDelta(base []byte, instructions io.ByteReader, resultSizeHint uint64) ([]byte, error) {
	result := bytes.NewBuffer(make([]byte, 0, resultSizeHint))

	for {
		more, err := applyOneInstruction(instructions, base, result)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}

	return result.Bytes(), nil
}

// applyOneInstruction applies a single copy-or-insert instruction, returning
// false (with a nil error) once the stream is exhausted.
func applyOneInstruction(r io.ByteReader, base []byte, result *bytes.Buffer) (bool, error) {
	instruction, err := r.ReadByte()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if instruction&copyInstructionFlag == 0 {
		if instruction == 0 {
			return false, ErrBadDelta
		}
		for i := byte(0); i < instruction; i++ {
			b, err := r.ReadByte()
			if err != nil {
				return false, ErrBadDelta
			}
			result.WriteByte(b)
		}
		return true, nil
	}

	nonzeroBytes := instruction
	offset, err := readPartialInt(r, copyOffsetBytes, &nonzeroBytes)
	if err != nil {
		return false, ErrBadDelta
	}
	size, err := readPartialInt(r, copySizeBytes, &nonzeroBytes)
	if err != nil {
		return false, ErrBadDelta
	}
	if size == 0 {
		size = copyZeroSize
	}

	end := offset + size
	if end > uint64(len(base)) || offset > end {
		return false, ErrBadCopyRange
	}
	result.Write(base[offset:end])
	return true, nil
}
