// Package icon renders solid-colour icon sets: a primary PNG, optional
// square size variants, and an optional Windows ICO container.
package icon

import (
	"fmt"
	"sort"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/png"
)

// DefaultOutput is the filename of the primary PNG when none is given.
const DefaultOutput = "app-icon.png"

// Spec describes one icon set render.
type Spec struct {
	// Width and Height of the primary PNG.
	Width  int
	Height int

	// Colour fills every image in the set.
	Colour colour.RGB

	// Output is the primary PNG filename. Empty means DefaultOutput.
	Output string

	// Sizes lists extra square variants; each size n produces an
	// nxn.png alongside the primary output.
	Sizes []int

	// ICO assembles an icon.ico from the square sizes (capped at 256,
	// the PNG-in-ICO ceiling). Without explicit sizes a standard set
	// of 16, 32, 48 and 256 is used.
	ICO bool

	// Text entries are stamped into each PNG as tEXt chunks.
	Text map[string]string
}

// DefaultSpec returns the render performed when no options are given: a
// single 512x512 #0096ff app-icon.png.
func DefaultSpec() Spec {
	return Spec{
		Width:  512,
		Height: 512,
		Colour: colour.RGB{R: 0, G: 150, B: 255},
		Output: DefaultOutput,
	}
}

// icoSizes are the variants bundled into icon.ico when the spec names no
// usable sizes of its own.
var icoSizes = []int{16, 32, 48, 256}

// Build renders the icon set and returns a map of filename to encoded bytes.
func Build(spec Spec) (map[string][]byte, error) {
	output := spec.Output
	if output == "" {
		output = DefaultOutput
	}

	files := make(map[string][]byte)

	primary, err := png.EncodeSolidWithText(spec.Width, spec.Height, spec.Colour, spec.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", output, err)
	}
	files[output] = primary

	for _, n := range variantSizes(spec.Sizes) {
		name := fmt.Sprintf("%dx%d.png", n, n)
		if _, exists := files[name]; exists {
			continue
		}
		data, err := png.EncodeSolidWithText(n, n, spec.Colour, spec.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", name, err)
		}
		files[name] = data
	}

	if spec.ICO {
		ico, err := buildICO(spec.Colour, icoMemberSizes(spec.Sizes))
		if err != nil {
			return nil, fmt.Errorf("failed to assemble icon.ico: %w", err)
		}
		files["icon.ico"] = ico
	}

	return files, nil
}

// variantSizes returns the requested sizes sorted and deduplicated.
func variantSizes(sizes []int) []int {
	if len(sizes) == 0 {
		return nil
	}
	out := append([]int(nil), sizes...)
	sort.Ints(out)
	dedup := out[:0]
	for i, n := range out {
		if i == 0 || n != out[i-1] {
			dedup = append(dedup, n)
		}
	}
	return dedup
}

// icoMemberSizes selects the sizes that go into the ICO container: the
// requested sizes up to 256, or the standard set when none qualify.
func icoMemberSizes(sizes []int) []int {
	var members []int
	for _, n := range variantSizes(sizes) {
		if n <= 256 {
			members = append(members, n)
		}
	}
	if len(members) == 0 {
		return icoSizes
	}
	return members
}
