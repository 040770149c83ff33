package png

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"
)

// IHDR holds the decoded image header fields.
type IHDR struct {
	Width       uint32
	Height      uint32
	BitDepth    uint8
	ColourType  uint8
	Compression uint8
	Filter      uint8
	Interlace   uint8
}

// ErrBadHeader is returned when IHDR data fails validation.
var ErrBadHeader = errors.New("png: invalid IHDR")

// colourDepths maps each colour type to its legal bit depths.
var colourDepths = map[uint8][]uint8{
	0: {1, 2, 4, 8, 16}, // greyscale
	2: {8, 16},          // truecolour
	3: {1, 2, 4, 8},     // indexed
	4: {8, 16},          // greyscale with alpha
	6: {8, 16},          // truecolour with alpha
}

// ParseIHDR decodes and validates the 13-byte IHDR chunk data.
func ParseIHDR(data []byte) (IHDR, error) {
	if len(data) != 13 {
		return IHDR{}, fmt.Errorf("%w: length %d, want 13", ErrBadHeader, len(data))
	}

	hdr := IHDR{
		Width:       binary.BigEndian.Uint32(data[0:4]),
		Height:      binary.BigEndian.Uint32(data[4:8]),
		BitDepth:    data[8],
		ColourType:  data[9],
		Compression: data[10],
		Filter:      data[11],
		Interlace:   data[12],
	}

	if hdr.Width == 0 || hdr.Height == 0 {
		return IHDR{}, fmt.Errorf("%w: zero dimension %dx%d", ErrBadHeader, hdr.Width, hdr.Height)
	}
	if hdr.Width > math.MaxInt32 || hdr.Height > math.MaxInt32 {
		return IHDR{}, fmt.Errorf("%w: dimension %dx%d exceeds 2^31-1", ErrBadHeader, hdr.Width, hdr.Height)
	}

	depths, ok := colourDepths[hdr.ColourType]
	if !ok {
		return IHDR{}, fmt.Errorf("%w: unknown colour type %d", ErrBadHeader, hdr.ColourType)
	}
	if !slices.Contains(depths, hdr.BitDepth) {
		return IHDR{}, fmt.Errorf("%w: bit depth %d invalid for colour type %d", ErrBadHeader, hdr.BitDepth, hdr.ColourType)
	}

	if hdr.Compression != 0 {
		return IHDR{}, fmt.Errorf("%w: unknown compression method %d", ErrBadHeader, hdr.Compression)
	}
	if hdr.Filter != 0 {
		return IHDR{}, fmt.Errorf("%w: unknown filter method %d", ErrBadHeader, hdr.Filter)
	}
	if hdr.Interlace > 1 {
		return IHDR{}, fmt.Errorf("%w: unknown interlace method %d", ErrBadHeader, hdr.Interlace)
	}

	return hdr, nil
}
