package png

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	stdpng "image/png"
	"io"
	"math"
	"testing"

	"github.com/jmylchreest/swatch/internal/colour"
)

func TestEncodeSolidSignature(t *testing.T) {
	out, err := EncodeSolid(2, 2, colour.RGB{R: 10, G: 20, B: 30})
	if err != nil {
		t.Fatalf("EncodeSolid() error = %v", err)
	}

	want := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	if !bytes.Equal(out[:8], want) {
		t.Errorf("signature = % x, want % x", out[:8], want)
	}
}

func TestEncodeSolidIHDR(t *testing.T) {
	out, err := EncodeSolid(640, 480, colour.RGB{R: 1, G: 2, B: 3})
	if err != nil {
		t.Fatalf("EncodeSolid() error = %v", err)
	}

	// First chunk starts directly after the signature.
	if got := binary.BigEndian.Uint32(out[8:12]); got != 13 {
		t.Errorf("IHDR length = %d, want 13", got)
	}
	if got := string(out[12:16]); got != "IHDR" {
		t.Fatalf("first chunk type = %s, want IHDR", got)
	}
	if got := binary.BigEndian.Uint32(out[16:20]); got != 640 {
		t.Errorf("IHDR width = %d, want 640", got)
	}
	if got := binary.BigEndian.Uint32(out[20:24]); got != 480 {
		t.Errorf("IHDR height = %d, want 480", got)
	}

	// Bit depth 8, colour type 2, then compression, filter and interlace
	// all zero.
	tail := out[24:29]
	want := []byte{8, 2, 0, 0, 0}
	if !bytes.Equal(tail, want) {
		t.Errorf("IHDR tail = %v, want %v", tail, want)
	}
}

func TestEncodeSolidScanlines(t *testing.T) {
	out, err := EncodeSolid(2, 2, colour.RGB{R: 10, G: 20, B: 30})
	if err != nil {
		t.Fatalf("EncodeSolid() error = %v", err)
	}

	chunks, err := ReadChunks(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("ReadChunks() error = %v", err)
	}

	var idat []byte
	for _, c := range chunks {
		if c.Type == "IDAT" {
			idat = c.Data
		}
	}
	if idat == nil {
		t.Fatal("no IDAT chunk found")
	}

	// Inflate with the standard library so the compressed stream is checked
	// against an independent implementation.
	zr, err := zlib.NewReader(bytes.NewReader(idat))
	if err != nil {
		t.Fatalf("zlib.NewReader() error = %v", err)
	}
	defer zr.Close()

	payload, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("inflate error = %v", err)
	}

	want := []byte{
		0, 10, 20, 30, 10, 20, 30,
		0, 10, 20, 30, 10, 20, 30,
	}
	if !bytes.Equal(payload, want) {
		t.Errorf("scanlines = %v, want %v", payload, want)
	}
}

func TestEncodeSolidChunkChecksums(t *testing.T) {
	out, err := EncodeSolid(16, 16, colour.RGB{R: 200, G: 100, B: 50})
	if err != nil {
		t.Fatalf("EncodeSolid() error = %v", err)
	}

	// Walk the raw bytes rather than using ReadChunks, so the stored
	// checksums are compared against a recomputation directly.
	offset := 8
	seen := 0
	for offset < len(out) {
		length := int(binary.BigEndian.Uint32(out[offset : offset+4]))
		typ := string(out[offset+4 : offset+8])
		stored := binary.BigEndian.Uint32(out[offset+8+length : offset+12+length])

		computed := crc32.Checksum(out[offset+4:offset+8+length], crc32.IEEETable)
		if stored != computed {
			t.Errorf("%s checksum = %08x, want %08x", typ, stored, computed)
		}

		offset += 12 + length
		seen++
	}

	if offset != len(out) {
		t.Errorf("chunk walk ended at %d, want %d", offset, len(out))
	}
	if seen != 3 {
		t.Errorf("chunk count = %d, want 3", seen)
	}
}

func TestEncodeSolidIEND(t *testing.T) {
	out, err := EncodeSolid(4, 4, colour.RGB{R: 0, G: 0, B: 0})
	if err != nil {
		t.Fatalf("EncodeSolid() error = %v", err)
	}

	chunks, err := ReadChunks(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("ReadChunks() error = %v", err)
	}

	last := chunks[len(chunks)-1]
	if last.Type != "IEND" {
		t.Errorf("last chunk type = %s, want IEND", last.Type)
	}
	if len(last.Data) != 0 {
		t.Errorf("IEND data length = %d, want 0", len(last.Data))
	}

	// The stream ends exactly at the IEND chunk: length, type and CRC.
	tail := out[len(out)-12:]
	want := []byte{0, 0, 0, 0, 'I', 'E', 'N', 'D', 0xae, 0x42, 0x60, 0x82}
	if !bytes.Equal(tail, want) {
		t.Errorf("trailing bytes = % x, want % x", tail, want)
	}
}

func TestEncodeSolidDecode(t *testing.T) {
	out, err := EncodeSolid(2, 2, colour.RGB{R: 10, G: 20, B: 30})
	if err != nil {
		t.Fatalf("EncodeSolid() error = %v", err)
	}

	img, err := stdpng.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 2 || bounds.Dy() != 2 {
		t.Fatalf("decoded bounds = %dx%d, want 2x2", bounds.Dx(), bounds.Dy())
	}

	assertUniform(t, img, colour.RGB{R: 10, G: 20, B: 30})
}

func TestEncodeSolidDefaultIcon(t *testing.T) {
	out, err := EncodeSolid(512, 512, colour.RGB{R: 0, G: 150, B: 255})
	if err != nil {
		t.Fatalf("EncodeSolid() error = %v", err)
	}

	img, err := stdpng.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 512 || bounds.Dy() != 512 {
		t.Fatalf("decoded bounds = %dx%d, want 512x512", bounds.Dx(), bounds.Dy())
	}

	assertUniform(t, img, colour.RGB{R: 0, G: 150, B: 255})
}

func TestEncodeSolidDeterministic(t *testing.T) {
	first, err := EncodeSolid(32, 16, colour.RGB{R: 7, G: 77, B: 177})
	if err != nil {
		t.Fatalf("EncodeSolid() error = %v", err)
	}
	second, err := EncodeSolid(32, 16, colour.RGB{R: 7, G: 77, B: 177})
	if err != nil {
		t.Fatalf("EncodeSolid() error = %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("identical inputs produced different streams")
	}
}

func TestEncodeSolidInvalidDimensions(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{name: "zero width", width: 0, height: 1},
		{name: "zero height", width: 1, height: 0},
		{name: "both zero", width: 0, height: 0},
		{name: "negative width", width: -1, height: 5},
		{name: "negative height", width: 5, height: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeSolid(tt.width, tt.height, colour.RGB{})
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("EncodeSolid(%d, %d) error = %v, want ErrInvalidDimensions", tt.width, tt.height, err)
			}
		})
	}
}

func TestEncodeSolidTooLarge(t *testing.T) {
	_, err := EncodeSolid(math.MaxInt/2, 2, colour.RGB{})
	if !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("EncodeSolid() error = %v, want ErrImageTooLarge", err)
	}

	_, err = EncodeSolid(1<<20, math.MaxInt/2, colour.RGB{})
	if !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("EncodeSolid() error = %v, want ErrImageTooLarge", err)
	}
}

func TestEncodeSolidFormatLimit(t *testing.T) {
	// Dimensions past 2^31-1 no longer fit an IHDR field and must be
	// rejected, not truncated into a header that contradicts the pixel data.
	tests := []struct {
		name   string
		width  int64
		height int64
	}{
		{name: "width one past limit", width: math.MaxInt32 + 1, height: 1},
		{name: "height one past limit", width: 1, height: math.MaxInt32 + 1},
		{name: "width wraps u32", width: 1<<32 + 2, height: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.width > math.MaxInt || tt.height > math.MaxInt {
				t.Skip("dimension not representable as int on this platform")
			}
			_, err := EncodeSolid(int(tt.width), int(tt.height), colour.RGB{})
			if !errors.Is(err, ErrImageTooLarge) {
				t.Errorf("EncodeSolid(%d, %d) error = %v, want ErrImageTooLarge", tt.width, tt.height, err)
			}
		})
	}
}

func TestEncodeSolidWithText(t *testing.T) {
	text := map[string]string{
		"Software": "swatch",
		"Comment":  "placeholder icon",
	}

	out, err := EncodeSolidWithText(8, 8, colour.RGB{R: 1, G: 2, B: 3}, text)
	if err != nil {
		t.Fatalf("EncodeSolidWithText() error = %v", err)
	}

	chunks, err := ReadChunks(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("ReadChunks() error = %v", err)
	}

	types := make([]string, 0, len(chunks))
	for _, c := range chunks {
		types = append(types, c.Type)
	}
	want := []string{"IHDR", "tEXt", "tEXt", "IDAT", "IEND"}
	if len(types) != len(want) {
		t.Fatalf("chunk sequence = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("chunk sequence = %v, want %v", types, want)
		}
	}

	// Entries are written in key order.
	key, value, err := ParseText(chunks[1])
	if err != nil {
		t.Fatalf("ParseText() error = %v", err)
	}
	if key != "Comment" || value != "placeholder icon" {
		t.Errorf("first tEXt = %s=%s, want Comment=placeholder icon", key, value)
	}

	key, value, err = ParseText(chunks[2])
	if err != nil {
		t.Fatalf("ParseText() error = %v", err)
	}
	if key != "Software" || value != "swatch" {
		t.Errorf("second tEXt = %s=%s, want Software=swatch", key, value)
	}

	// The image itself still decodes.
	if _, err := stdpng.Decode(bytes.NewReader(out)); err != nil {
		t.Errorf("png.Decode() error = %v", err)
	}
}

func TestEncodeSolidWithTextEmpty(t *testing.T) {
	plain, err := EncodeSolid(4, 4, colour.RGB{R: 9, G: 9, B: 9})
	if err != nil {
		t.Fatalf("EncodeSolid() error = %v", err)
	}
	withNil, err := EncodeSolidWithText(4, 4, colour.RGB{R: 9, G: 9, B: 9}, nil)
	if err != nil {
		t.Fatalf("EncodeSolidWithText() error = %v", err)
	}

	if !bytes.Equal(plain, withNil) {
		t.Error("nil text map changed the output stream")
	}
}

func TestEncodeSolidWithTextInvalid(t *testing.T) {
	tests := []struct {
		name string
		text map[string]string
	}{
		{name: "empty keyword", text: map[string]string{"": "v"}},
		{name: "oversized keyword", text: map[string]string{string(bytes.Repeat([]byte{'k'}, 80)): "v"}},
		{name: "NUL in keyword", text: map[string]string{"a\x00b": "v"}},
		{name: "NUL in value", text: map[string]string{"key": "a\x00b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeSolidWithText(2, 2, colour.RGB{}, tt.text)
			if !errors.Is(err, ErrBadText) {
				t.Errorf("EncodeSolidWithText() error = %v, want ErrBadText", err)
			}
		})
	}
}

// assertUniform checks that every pixel of img matches the expected colour.
func assertUniform(t *testing.T, img image.Image, want colour.RGB) {
	t.Helper()

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			got := colour.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
			if got != want {
				t.Fatalf("pixel (%d, %d) = %s, want %s", x, y, got, want)
			}
		}
	}
}
