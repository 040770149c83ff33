// Package png assembles and inspects PNG containers for solid-colour images.
//
// The encoder builds the byte stream directly rather than going through an
// image buffer: signature, IHDR, optional tEXt metadata, a single IDAT
// holding the zlib-compressed scanlines, and IEND. Every chunk carries a
// CRC32 (IEEE polynomial) over its type and data. Pixel data is always
// 8-bit truecolour (colour type 2) with filter type 0 on every scanline.
package png

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/klauspost/compress/zlib"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Signature is the 8-byte sequence that opens every PNG stream.
var Signature = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

var (
	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("png: width and height must be positive")

	// ErrImageTooLarge is returned when a dimension exceeds the PNG limit of
	// 2^31-1 or the scanline buffer for the requested dimensions would
	// overflow.
	ErrImageTooLarge = errors.New("png: image dimensions too large")
)

// bytesPerPixel is the size of one truecolour pixel at bit depth 8.
const bytesPerPixel = 3

// EncodeSolid renders a width x height image filled with a single colour and
// returns the complete PNG stream.
func EncodeSolid(width, height int, c colour.RGB) ([]byte, error) {
	return encode(width, height, c, nil)
}

// EncodeSolidWithText renders the same image as EncodeSolid, with one tEXt
// chunk per entry in text written between IHDR and IDAT in key order.
// A nil or empty map produces the exact chunk sequence of EncodeSolid.
func EncodeSolidWithText(width, height int, c colour.RGB, text map[string]string) ([]byte, error) {
	return encode(width, height, c, text)
}

func encode(width, height int, c colour.RGB, text map[string]string) ([]byte, error) {
	payload, err := scanlines(width, height, c)
	if err != nil {
		return nil, err
	}

	idat, err := deflate(payload)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write(Signature)
	writeChunk(&buf, "IHDR", ihdrData(width, height))

	for _, key := range sortedKeys(text) {
		data, err := textData(key, text[key])
		if err != nil {
			return nil, err
		}
		writeChunk(&buf, "tEXt", data)
	}

	writeChunk(&buf, "IDAT", idat)
	writeChunk(&buf, "IEND", nil)

	return buf.Bytes(), nil
}

// scanlines builds the raw pixel payload: height rows, each one filter byte
// (0, "none") followed by width repetitions of the colour triple.
func scanlines(width, height int, c colour.RGB) ([]byte, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	// IHDR stores each dimension as a u32 capped at 2^31-1.
	if width > math.MaxInt32 || height > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %dx%d exceeds 2^31-1", ErrImageTooLarge, width, height)
	}
	if width > (math.MaxInt-1)/bytesPerPixel {
		return nil, fmt.Errorf("%w: width %d", ErrImageTooLarge, width)
	}
	rowSize := 1 + bytesPerPixel*width
	if height > math.MaxInt/rowSize {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, width, height)
	}

	row := make([]byte, rowSize)
	row[0] = 0 // filter type: none
	for x := 0; x < width; x++ {
		off := 1 + bytesPerPixel*x
		row[off] = c.R
		row[off+1] = c.G
		row[off+2] = c.B
	}

	return bytes.Repeat(row, height), nil
}

// ihdrData packs the 13 IHDR bytes: width and height big-endian, then bit
// depth 8, colour type 2 (truecolour), compression 0, filter 0, interlace 0.
func ihdrData(width, height int) []byte {
	data := make([]byte, 13)
	binary.BigEndian.PutUint32(data[0:4], uint32(width))
	binary.BigEndian.PutUint32(data[4:8], uint32(height))
	data[8] = 8
	data[9] = 2
	return data
}

// deflate compresses the scanline payload into the IDAT body.
func deflate(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(payload); err != nil {
		zw.Close()
		return nil, fmt.Errorf("failed to compress pixel data: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalise pixel data: %w", err)
	}
	return buf.Bytes(), nil
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
