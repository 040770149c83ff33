// Package colour provides the RGB colour type used by the renderer.
package colour

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB represents a colour in 8-bit-per-channel RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Set parses a colour specification and replaces the receiver's value.
// Together with String and Type this satisfies the flag value interface,
// so an RGB can bind directly to a command-line flag.
func (rgb *RGB) Set(s string) error {
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*rgb = parsed
	return nil
}

// Type returns the flag value type name.
func (rgb *RGB) Type() string {
	return "colour"
}

// Parse parses a colour specification into an RGB struct.
// Supported formats: #RRGGBB, RRGGBB, #RGB, RGB, "rgb(r, g, b)" and the
// bare decimal triple "r,g,b".
func Parse(s string) (RGB, error) {
	spec := strings.TrimSpace(s)
	if spec == "" {
		return RGB{}, fmt.Errorf("empty colour specification")
	}
	if strings.Contains(spec, ",") {
		return parseTriple(spec)
	}
	return parseHex(spec)
}

// parseHex parses a hex colour string into an RGB struct.
// Supports formats: #RRGGBB, RRGGBB, #RGB, RGB.
func parseHex(hex string) (RGB, error) {
	// Remove # prefix if present.
	hex = strings.TrimPrefix(hex, "#")

	// Expand shorthand format (RGB -> RRGGBB).
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}

	// Validate length.
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour length: expected 6 characters, got %d", len(hex))
	}

	// Parse hex values.
	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid red component: %w", err)
	}

	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid green component: %w", err)
	}

	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid blue component: %w", err)
	}

	return RGB{
		R: uint8(r),
		G: uint8(g),
		B: uint8(b),
	}, nil
}

// parseTriple parses a decimal triple, with or without the rgb(...) wrapper.
func parseTriple(spec string) (RGB, error) {
	trimmed := strings.TrimSpace(spec)
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")") {
		trimmed = trimmed[4 : len(trimmed)-1]
	}

	parts := strings.Split(trimmed, ",")
	if len(parts) != 3 {
		return RGB{}, fmt.Errorf("invalid colour triple: expected 3 components, got %d", len(parts))
	}

	values := make([]uint8, 3)
	names := []string{"red", "green", "blue"}
	for i, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("invalid %s component: %w", names[i], err)
		}
		values[i] = uint8(v)
	}

	return RGB{R: values[0], G: values[1], B: values[2]}, nil
}
