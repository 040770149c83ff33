package icon

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/png"
)

// icoHeaderSize and icoEntrySize are the fixed ICONDIR and ICONDIRENTRY
// lengths. All ICO integers are little-endian.
const (
	icoHeaderSize = 6
	icoEntrySize  = 16
)

// buildICO assembles a Windows ICO container holding one PNG-compressed
// image per size. Vista and later read PNG entries directly; a size of 256
// is stored as 0 in the directory per the format.
func buildICO(c colour.RGB, sizes []int) ([]byte, error) {
	images := make([][]byte, 0, len(sizes))
	for _, n := range sizes {
		if n < 1 || n > 256 {
			return nil, fmt.Errorf("ico member size %d out of range 1-256", n)
		}
		data, err := png.EncodeSolid(n, n, c)
		if err != nil {
			return nil, err
		}
		images = append(images, data)
	}

	var buf bytes.Buffer

	// ICONDIR: reserved (0), type (1 = icon), image count.
	var header [icoHeaderSize]byte
	binary.LittleEndian.PutUint16(header[2:4], 1)
	binary.LittleEndian.PutUint16(header[4:6], uint16(len(sizes)))
	buf.Write(header[:])

	// One ICONDIRENTRY per image, then the image data back to back.
	offset := icoHeaderSize + icoEntrySize*len(sizes)
	for i, n := range sizes {
		var entry [icoEntrySize]byte
		if n < 256 {
			entry[0] = byte(n)
			entry[1] = byte(n)
		}
		binary.LittleEndian.PutUint16(entry[4:6], 1)   // colour planes
		binary.LittleEndian.PutUint16(entry[6:8], 32)  // bits per pixel
		binary.LittleEndian.PutUint32(entry[8:12], uint32(len(images[i])))
		binary.LittleEndian.PutUint32(entry[12:16], uint32(offset))
		buf.Write(entry[:])
		offset += len(images[i])
	}

	for _, img := range images {
		buf.Write(img)
	}

	return buf.Bytes(), nil
}
