package png

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"
)

// Chunk is a single PNG chunk. CRC holds the stored checksum when the chunk
// was read from a stream; the writer computes checksums on the fly.
type Chunk struct {
	Type string
	Data []byte
	CRC  uint32
}

var (
	// ErrBadSignature is returned when a stream does not open with the PNG
	// signature.
	ErrBadSignature = errors.New("png: missing or corrupt signature")

	// ErrBadChecksum is returned when a chunk's stored CRC does not match a
	// recomputation over its type and data.
	ErrBadChecksum = errors.New("png: chunk checksum mismatch")

	// ErrBadLayout is returned when the chunk sequence violates layout
	// rules: IHDR first, IEND last and empty, nothing after IEND.
	ErrBadLayout = errors.New("png: invalid chunk layout")
)

// chunkCRC computes the CRC32 (IEEE polynomial) over the chunk type and data.
func chunkCRC(typ string, data []byte) uint32 {
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	return crc.Sum32()
}

// writeChunk appends one chunk to buf: data length and type, the data
// itself, then the CRC over type and data. Integers are big-endian.
func writeChunk(buf *bytes.Buffer, typ string, data []byte) {
	var header [8]byte
	binary.BigEndian.PutUint32(header[0:4], uint32(len(data)))
	copy(header[4:8], typ)
	buf.Write(header[:])
	buf.Write(data)

	var crc [4]byte
	binary.BigEndian.PutUint32(crc[:], chunkCRC(typ, data))
	buf.Write(crc[:])
}

// ReadChunks parses a PNG stream into its chunk sequence. It verifies the
// signature, each chunk's stored CRC, and the layout rules. Chunk data is
// returned as-is; pixel data is not inflated.
func ReadChunks(r io.Reader) ([]Chunk, error) {
	var sig [8]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	if !bytes.Equal(sig[:], Signature) {
		return nil, ErrBadSignature
	}

	var chunks []Chunk
	sawIEND := false

	for {
		var header [8]byte
		if _, err := io.ReadFull(r, header[:]); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read chunk header: %w", err)
		}
		if sawIEND {
			return nil, fmt.Errorf("%w: data after IEND", ErrBadLayout)
		}

		length := binary.BigEndian.Uint32(header[0:4])
		typ := string(header[4:8])
		if length > math.MaxInt32 {
			return nil, fmt.Errorf("%w: %s length %d exceeds 2^31-1", ErrBadLayout, typ, length)
		}

		data := make([]byte, length)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, fmt.Errorf("failed to read %s data: %w", typ, err)
		}

		var stored [4]byte
		if _, err := io.ReadFull(r, stored[:]); err != nil {
			return nil, fmt.Errorf("failed to read %s checksum: %w", typ, err)
		}
		crc := binary.BigEndian.Uint32(stored[:])
		if crc != chunkCRC(typ, data) {
			return nil, fmt.Errorf("%w: %s", ErrBadChecksum, typ)
		}

		switch typ {
		case "IHDR":
			if len(chunks) != 0 {
				return nil, fmt.Errorf("%w: IHDR is not the first chunk", ErrBadLayout)
			}
		case "IEND":
			if length != 0 {
				return nil, fmt.Errorf("%w: IEND carries %d bytes of data", ErrBadLayout, length)
			}
			sawIEND = true
		default:
			if len(chunks) == 0 {
				return nil, fmt.Errorf("%w: first chunk is %s, want IHDR", ErrBadLayout, typ)
			}
		}

		chunks = append(chunks, Chunk{Type: typ, Data: data, CRC: crc})
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no chunks", ErrBadLayout)
	}
	if !sawIEND {
		return nil, fmt.Errorf("%w: missing IEND", ErrBadLayout)
	}

	return chunks, nil
}
