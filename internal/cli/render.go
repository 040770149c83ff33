package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/compression"
	"github.com/jmylchreest/swatch/internal/icon"
	"github.com/jmylchreest/swatch/internal/png"
)

// runRender executes the root command: render the icon set and write it out.
func runRender(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")
	logger := newLogger(verbose, quiet)
	out := cmd.OutOrStdout()

	// Paths are expanded once here so previews, writes and bundles all see
	// the same resolved location. The output flag carries both the primary
	// filename and the directory the rest of the set lands in.
	output, err := expandPath(renderOutput)
	if err != nil {
		return err
	}
	outDir := filepath.Dir(output)

	spec := icon.Spec{
		Width:  renderWidth,
		Height: renderHeight,
		Colour: renderColour,
		Output: filepath.Base(output),
		Sizes:  renderSizes,
		ICO:    renderICO,
		Text:   renderText,
	}

	logger.Debug("rendering icon set",
		"size", fmt.Sprintf("%dx%d", spec.Width, spec.Height),
		"colour", spec.Colour.Hex(),
		"variants", len(spec.Sizes),
		"ico", spec.ICO)

	files, err := icon.Build(spec)
	if err != nil {
		return fmt.Errorf("failed to render icon set: %w", err)
	}

	if renderBundle != "" {
		bundle, err := expandPath(renderBundle)
		if err != nil {
			return err
		}
		return writeBundle(logger, out, quiet, bundle, files)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	if renderDryRun {
		for _, name := range names {
			fmt.Fprintf(out, "Would write: %s (%d bytes)\n", filepath.Join(outDir, name), len(files[name]))
		}
		return nil
	}

	for _, name := range names {
		path := filepath.Join(outDir, name)
		if err := writeFile(path, files[name]); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Debug("wrote file", "path", path, "bytes", len(files[name]))
	}

	if !quiet {
		printSummary(out, outDir, names, files)
		fmt.Fprintf(out, "✓ Wrote %d file(s)\n", len(names))
	}

	return nil
}

// writeBundle writes the rendered set into a single archive at path instead
// of loose files.
func writeBundle(logger hclog.Logger, out io.Writer, quiet bool, path string, files map[string][]byte) error {
	if renderDryRun {
		data, err := compression.Encode(filepath.Base(path), files)
		if err != nil {
			return fmt.Errorf("failed to encode bundle: %w", err)
		}
		fmt.Fprintf(out, "Would write: %s (%d bytes, %d files)\n", path, len(data), len(files))
		return nil
	}

	if err := compression.CreateArchive(path, files); err != nil {
		return fmt.Errorf("failed to write bundle: %w", err)
	}
	logger.Debug("wrote bundle", "path", path, "files", len(files))

	if !quiet {
		fmt.Fprintf(out, "✓ Wrote %s (%d files)\n", path, len(files))
	}
	return nil
}

// printSummary renders a table of written files.
func printSummary(out io.Writer, dir string, names []string, files map[string][]byte) {
	table := NewTable([]string{"File", "Dimensions", "Size"})
	for _, name := range names {
		table.AddRow([]string{
			filepath.Join(dir, name),
			describeDimensions(files[name]),
			fmt.Sprintf("%d B", len(files[name])),
		})
	}
	if width, ok := terminalWidth(); ok {
		table.SetMaxWidth(width)
	}
	fmt.Fprint(out, table.Render())
}

// describeDimensions reads WxH out of a rendered PNG; non-PNG members of
// the set (the ICO container) report "-".
func describeDimensions(data []byte) string {
	chunks, err := png.ReadChunks(bytes.NewReader(data))
	if err != nil || len(chunks) == 0 {
		return "-"
	}
	hdr, err := png.ParseIHDR(chunks[0].Data)
	if err != nil {
		return "-"
	}
	return fmt.Sprintf("%dx%d", hdr.Width, hdr.Height)
}

// newLogger builds the operational logger: Debug when verbose, errors only
// when quiet, Info otherwise. Output goes to stderr so renders stay
// pipeable.
func newLogger(verbose, quiet bool) hclog.Logger {
	level := hclog.Info
	if quiet {
		level = hclog.Error
	}
	if verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "swatch",
		Output: os.Stderr,
		Level:  level,
		Color:  hclog.AutoColor,
	})
}

// expandPath expands a leading ~/ to the user's home directory.
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// writeFile writes content to an already expanded path, creating directories
// as needed. An existing file is silently overwritten.
func writeFile(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
